// services/users.go
package services

import (
	"strconv"
	"strings"

	"battle-analytics-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/unidecode"
)

// SearchUsers searches the local AnalyticsUser mirror.
// Queries are folded to ASCII first so "Wjatscheslaw" finds "Wjatschesław".
func (s *PlayerService) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q", "")
	limitStr := c.Query("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	var users []models.AnalyticsUser
	db := s.DB.Model(&models.AnalyticsUser{}).Limit(limit)

	if query != "" {
		folded := unidecode.Unidecode(strings.TrimSpace(query))
		searchTerm := "%" + strings.ToLower(folded) + "%"
		db = db.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ?",
			searchTerm, searchTerm,
		)
	}

	if err := db.Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "search failed", "details": err.Error()})
	}

	// Minimal response shape — don't expose the whole mirror row
	type UserSummary struct {
		ID             string `json:"id"`
		ExternalUserID string `json:"external_user_id"`
		Username       string `json:"username"`
		Tier           string `json:"tier"`
	}

	res := make([]UserSummary, len(users))
	for i, u := range users {
		res[i] = UserSummary{
			ID:             u.ID,
			ExternalUserID: u.ExternalUserID,
			Username:       u.Username,
			Tier:           u.Tier,
		}
	}

	return c.JSON(res)
}
