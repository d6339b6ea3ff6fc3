// handlers/player_routes.go
package handlers

import (
	"battle-analytics-system/middleware"
	"battle-analytics-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService) {
	// 🔓 Public routes — no user context, but still behind Gateway auth
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/users/search", playerService.SearchUsers)

	// 🔐 Secured routes
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/players/linked", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		players, err := playerService.LinkedPlayers(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list linked players",
				"cause": err.Error(),
			})
		}
		return c.JSON(players)
	})

	secured.Post("/players/link", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Tag        string `json:"tag"`
			PlayerName string `json:"player_name"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		linked, err := playerService.LinkPlayer(userID, req.Tag, req.PlayerName)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to link player",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(linked)
	})

	secured.Delete("/players/link", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := playerService.UnlinkPlayer(userID, c.Query("tag")); err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player link not found"})
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to unlink player",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "player unlinked"})
	})
}
