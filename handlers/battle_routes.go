// handlers/battle_routes.go
package handlers

import (
	"strconv"
	"time"

	"battle-analytics-system/engine"
	"battle-analytics-system/middleware"
	"battle-analytics-system/services"
	"battle-analytics-system/workers"

	"github.com/gofiber/fiber/v2"
)

func SetupBattleRoutes(app *fiber.App, battleService *services.BattleService, syncWorker *workers.BattleSyncWorker) {
	// 🔐 Secured routes — require user context from the gateway
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	// requireTag normalizes the tag query param; an invalid tag refuses the
	// request rather than running an unscoped battle query.
	requireTag := func(c *fiber.Ctx) (string, bool) {
		tag, ok := engine.NormalizeTag(c.Query("tag"))
		if !ok {
			_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid or missing player tag",
			})
			return "", false
		}
		return tag, true
	}

	securedGroup.Get("/battles/history", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		tag, ok := requireTag(c)
		if !ok {
			return nil
		}

		battles, err := battleService.History(userID, tag, c.Query("days"), c.Query("limit"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load battle history",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"battles": battles,
			"count":   len(battles),
		})
	})

	securedGroup.Get("/battles/sessions", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		tag, ok := requireTag(c)
		if !ok {
			return nil
		}

		cfg := engine.DefaultSessionConfig
		if gap, err := strconv.Atoi(c.Query("gap")); err == nil && gap > 0 {
			cfg.MaxGapMinutes = gap
		}
		if min, err := strconv.Atoi(c.Query("min")); err == nil && min > 0 {
			cfg.MinBattles = min
		}

		sessions, err := battleService.Sessions(userID, tag, cfg)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute sessions",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"sessions": sessions,
			"count":    len(sessions),
		})
	})

	securedGroup.Get("/battles/tilt", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		tag, ok := requireTag(c)
		if !ok {
			return nil
		}

		state, err := battleService.TiltState(userID, tag, time.Now())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute tilt state",
				"cause": err.Error(),
			})
		}
		return c.JSON(state)
	})

	securedGroup.Post("/battles/sync", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		tag, ok := requireTag(c)
		if !ok {
			return nil
		}

		if err := syncWorker.SyncPlayer(c.Context(), userID, tag); err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "battle sync failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"message": "battle sync completed",
			"tag":     tag,
		})
	})
}
