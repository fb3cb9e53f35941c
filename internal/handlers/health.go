package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Root godoc
// @Summary Service banner
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "D8 ideas API",
	})
}

// HealthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
