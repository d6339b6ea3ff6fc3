// workers/battle_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"battle-analytics-system/engine"
	"battle-analytics-system/services"
)

// battlelogResponse is the top-level shape of the game API battlelog endpoint.
// The items are consumed as opaque JSON with only the fields the engine reads.
type battlelogResponse struct {
	Items []engine.RawBattle `json:"items"`
}

// BattleSyncWorker pulls raw battlelogs from the external game API and hands
// them to the battle service for idempotent ingestion.
type BattleSyncWorker struct {
	battles    *services.BattleService
	baseURL    string // e.g. "https://api.clashroyale.com/v1"
	apiToken   string
	httpClient *http.Client
}

func NewBattleSyncWorker(battles *services.BattleService) *BattleSyncWorker {
	baseURL := os.Getenv("GAME_API_URL")
	if baseURL == "" {
		log.Fatal("GAME_API_URL environment variable is required")
	}
	token := os.Getenv("GAME_API_TOKEN")
	if token == "" {
		log.Fatal("GAME_API_TOKEN environment variable is required for battle sync")
	}

	return &BattleSyncWorker{
		battles:  battles,
		baseURL:  baseURL,
		apiToken: token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SyncPlayer fetches the current battlelog for one linked player and ingests
// it. Safe to call repeatedly or concurrently: the content-addressed battle
// key makes re-ingestion a no-op.
func (w *BattleSyncWorker) SyncPlayer(ctx context.Context, userID, playerTag string) error {
	raws, err := w.fetchBattlelog(ctx, playerTag)
	if err != nil {
		return err
	}
	if len(raws) == 0 {
		log.Printf("[SYNC] ✅ No battles in battlelog for %s", playerTag)
		return nil
	}

	inserted, err := w.battles.IngestRawBattles(userID, playerTag, raws)
	if err != nil {
		return err
	}
	log.Printf("[SYNC] ✅ Synced %s: %d battle(s) fetched, %d new", playerTag, len(raws), inserted)
	return nil
}

// fetchBattlelog calls GET /players/{tag}/battlelog on the game API.
func (w *BattleSyncWorker) fetchBattlelog(ctx context.Context, playerTag string) ([]engine.RawBattle, error) {
	base, err := url.Parse(w.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid game API URL '%s': %w", w.baseURL, err)
	}

	// Tags carry a '#' — JoinPath escapes it for the path segment.
	endpointURL := base.JoinPath("players", playerTag, "battlelog")
	finalURL := endpointURL.String()

	req, err := http.NewRequestWithContext(ctx, "GET", finalURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request to %s: %w", finalURL, err)
	}
	req.Header.Set("Authorization", "Bearer "+w.apiToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("game API request failed: %w", err)
	}
	defer func() {
		// Always drain & close to prevent connection leaks
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("game API returned %d for %s: %s", resp.StatusCode, playerTag, string(body))
	}

	// Some deployments return a bare array rather than {items: [...]}.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read battlelog response: %w", err)
	}

	var wrapped battlelogResponse
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Items != nil {
		return wrapped.Items, nil
	}

	var list []engine.RawBattle
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to decode battlelog response: %w", err)
	}
	return list, nil
}
