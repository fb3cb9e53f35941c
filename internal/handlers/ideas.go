package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tvonkoch-eng/D8-sub000/internal/images"
	"github.com/tvonkoch-eng/D8-sub000/internal/models"
	"github.com/tvonkoch-eng/D8-sub000/internal/services"
)

type IdeasHandler struct {
	service *services.IdeasService
	chain   *images.Chain
}

func NewIdeasHandler(service *services.IdeasService, chain *images.Chain) *IdeasHandler {
	return &IdeasHandler{service: service, chain: chain}
}

func SetupIdeaRoutes(router fiber.Router, service *services.IdeasService, chain *images.Chain) {
	h := NewIdeasHandler(service, chain)

	router.Post("/ideas", h.GetIdeas)
	router.Post("/ideas/refresh", h.RefreshIdeas)
	router.Get("/image-service-status", h.ImageServiceStatus)
}

// GetIdeas godoc
// @Summary Get date ideas for a coordinate and day
// @Description Serves the cached idea set for the resolved location and date, generating a fresh one on a miss
// @Tags ideas
// @Accept json
// @Produce json
// @Param request body models.IdeaRequest true "Idea request"
// @Success 200 {object} models.IdeaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /v1/ideas [post]
func (h *IdeasHandler) GetIdeas(c *fiber.Ctx) error {
	req, ok := parseIdeaRequest(c)
	if !ok {
		return nil
	}

	resp, err := h.service.GetIdeas(c.Context(), req)
	if err != nil {
		return c.Status(statusFor(err)).JSON(ErrorResponse{Error: err.Error()})
	}
	return c.JSON(resp)
}

// RefreshIdeas godoc
// @Summary Regenerate the idea set, bypassing the cache
// @Tags ideas
// @Accept json
// @Produce json
// @Param request body models.IdeaRequest true "Idea request"
// @Success 200 {object} models.IdeaResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /v1/ideas/refresh [post]
func (h *IdeasHandler) RefreshIdeas(c *fiber.Ctx) error {
	req, ok := parseIdeaRequest(c)
	if !ok {
		return nil
	}

	resp, err := h.service.RefreshIdeas(c.Context(), req)
	if err != nil {
		return c.Status(statusFor(err)).JSON(ErrorResponse{Error: err.Error()})
	}
	return c.JSON(resp)
}

// ImageServiceStatus godoc
// @Summary Photo provider quota status
// @Tags ideas
// @Produce json
// @Success 200 {object} map[string]images.ProviderStatus
// @Router /v1/image-service-status [get]
func (h *IdeasHandler) ImageServiceStatus(c *fiber.Ctx) error {
	return c.JSON(h.chain.Status())
}

// parseIdeaRequest decodes and validates the body; on failure the 400
// response is already written and ok is false
func parseIdeaRequest(c *fiber.Ctx) (*models.IdeaRequest, bool) {
	var req models.IdeaRequest
	if err := c.BodyParser(&req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return nil, false
	}
	if req.Latitude == 0 && req.Longitude == 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "latitude and longitude are required",
		})
		return nil, false
	}
	return &req, true
}
