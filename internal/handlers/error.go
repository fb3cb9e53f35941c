package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tvonkoch-eng/D8-sub000/internal/geocode"
	"github.com/tvonkoch-eng/D8-sub000/internal/store"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is the custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error: message,
	})
}

// statusFor maps domain sentinels onto HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, geocode.ErrLocationUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
