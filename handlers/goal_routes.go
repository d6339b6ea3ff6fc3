// handlers/goal_routes.go
package handlers

import (
	"battle-analytics-system/middleware"
	"battle-analytics-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupGoalRoutes(app *fiber.App, goalService *services.GoalService) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	securedGroup.Get("/goals", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		goals, err := goalService.ListGoals(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list goals",
				"cause": err.Error(),
			})
		}
		return c.JSON(goals)
	})

	securedGroup.Post("/goals", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Name         string `json:"name"`
			Type         string `json:"type"`
			TargetValue  int    `json:"target_value"`
			CurrentValue int    `json:"current_value"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		goal, err := goalService.CreateGoal(userID, req.Name, req.Type, req.TargetValue, req.CurrentValue)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to create goal",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(goal)
	})

	securedGroup.Put("/goals/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Name         *string `json:"name"`
			TargetValue  *int    `json:"target_value"`
			CurrentValue *int    `json:"current_value"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		goal, err := goalService.UpdateGoal(userID, c.Params("id"), req.Name, req.TargetValue, req.CurrentValue)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "goal not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update goal",
				"cause": err.Error(),
			})
		}
		return c.JSON(goal)
	})

	securedGroup.Delete("/goals/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := goalService.DeleteGoal(userID, c.Params("id")); err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "goal not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to delete goal",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "goal deleted"})
	})

	securedGroup.Post("/goals/sync", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		updated, err := goalService.SyncGoals(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to sync goals",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"updated": updated,
			"count":   len(updated),
		})
	})
}
