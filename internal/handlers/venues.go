package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tvonkoch-eng/D8-sub000/internal/logger"
	"github.com/tvonkoch-eng/D8-sub000/internal/models"
	"github.com/tvonkoch-eng/D8-sub000/internal/services"
)

type VenuesHandler struct {
	service *services.VenueService
}

func NewVenuesHandler(service *services.VenueService) *VenuesHandler {
	return &VenuesHandler{service: service}
}

func SetupVenueRoutes(router fiber.Router, service *services.VenueService) {
	h := NewVenuesHandler(service)

	router.Get("/venues", h.List)
	router.Get("/venues/:id", h.Get)
	router.Post("/venues/:id/view", h.RecordView)
	router.Post("/venues/:id/enhance", h.Enhance)
}

// List godoc
// @Summary Query venues
// @Description Filters by location, cuisine, free-text query or popularity; one filter per request
// @Tags venues
// @Produce json
// @Param location query string false "Location key substring"
// @Param cuisine query string false "Cuisine type"
// @Param q query string false "Free-text search over name and description"
// @Param popular query int false "Return the N most viewed venues"
// @Param limit query int false "Result limit (default 20, max 50)"
// @Success 200 {array} models.Venue
// @Router /v1/venues [get]
func (h *VenuesHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	var (
		venues []models.Venue
		err    error
	)
	switch {
	case c.Query("location") != "":
		venues, err = h.service.ByLocation(c.Context(), c.Query("location"), limit)
	case c.Query("cuisine") != "":
		venues, err = h.service.ByCuisine(c.Context(), c.Query("cuisine"), limit)
	case c.Query("q") != "":
		venues, err = h.service.Search(c.Context(), c.Query("q"), limit)
	case c.Query("popular") != "":
		n, _ := strconv.Atoi(c.Query("popular"))
		venues, err = h.service.Popular(c.Context(), n)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "one of location, cuisine, q or popular is required",
		})
	}
	if err != nil {
		return c.Status(statusFor(err)).JSON(ErrorResponse{Error: err.Error()})
	}
	return c.JSON(venues)
}

// Get godoc
// @Summary Get venue by ID
// @Tags venues
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} models.Venue
// @Failure 404 {object} ErrorResponse
// @Router /v1/venues/{id} [get]
func (h *VenuesHandler) Get(c *fiber.Ctx) error {
	v, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(statusFor(err)).JSON(ErrorResponse{Error: "Venue not found"})
	}
	return c.JSON(v)
}

// RecordView godoc
// @Summary Record a venue view
// @Tags venues
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /v1/venues/{id}/view [post]
func (h *VenuesHandler) RecordView(c *fiber.Ctx) error {
	if err := h.service.RecordView(c.Context(), c.Params("id")); err != nil {
		return c.Status(statusFor(err)).JSON(ErrorResponse{Error: "Venue not found"})
	}
	return c.JSON(fiber.Map{"status": "recorded"})
}

// Enhance godoc
// @Summary Trigger venue detail enhancement
// @Description Fetches richer details once per venue; repeat calls are no-ops
// @Tags venues
// @Produce json
// @Param id path string true "Venue ID"
// @Success 202 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /v1/venues/{id}/enhance [post]
func (h *VenuesHandler) Enhance(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.service.Get(c.Context(), id); err != nil {
		return c.Status(statusFor(err)).JSON(ErrorResponse{Error: "Venue not found"})
	}

	// Enhancement runs in the background with its own context; the
	// request context is recycled when the handler returns
	go func() {
		log := logger.GetLogger("venues")
		if err := h.service.Enhance(context.Background(), id); err != nil {
			log.Warnf("background enhancement failed for %s: %v", id, err)
		}
	}()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "enhancement scheduled"})
}
