// utils/archive.go
package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var archiveClient *s3.Client
var archiveBucket string

// InitArchive sets up the R2 client used to archive pruned battles.
func InitArchive() error {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	archiveBucket = os.Getenv("R2_ARCHIVE_BUCKET")

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load archive storage config: %w", err)
	}

	archiveClient = s3.NewFromConfig(cfg)
	return nil
}

// ArchiveBattles uploads a batch of battles about to be pruned as a single
// JSON object. Key layout: archives/<userID>/<tag>/<cutoff RFC3339>.json.
// Callers must treat an error as "do not delete" — the prune is destructive.
func ArchiveBattles(ctx context.Context, userID, playerTag string, cutoff time.Time, battles interface{}) (string, error) {
	if archiveClient == nil {
		return "", fmt.Errorf("archive storage not initialized")
	}

	body, err := json.Marshal(battles)
	if err != nil {
		return "", fmt.Errorf("failed to encode archive batch: %w", err)
	}

	// '#' is stripped from the tag for a clean object key
	key := fmt.Sprintf("archives/%s/%s/%s.json",
		userID,
		strings.TrimPrefix(playerTag, "#"),
		cutoff.UTC().Format(time.RFC3339),
	)

	_, err = archiveClient.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(archiveBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload archive batch: %w", err)
	}

	return key, nil
}
