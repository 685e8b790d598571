package handler

import (
	"strconv"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const msgInvalidAdID = "Invalid advertisement ID"

// AdminAdDeps groups dependencies required by the advertisement admin handlers.
type AdminAdDeps struct {
	Logger *zap.Logger
	Ads    service.AdvertisementService
}

// AdminAdHandler implements advertisement management for administrators.
type AdminAdHandler struct {
	logger *zap.Logger
	ads    service.AdvertisementService
}

// NewAdminAdHandler creates an advertisement admin handler.
func NewAdminAdHandler(deps AdminAdDeps) *AdminAdHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminAdHandler{logger: logger, ads: deps.Ads}
}

// Register wires the advertisement routes onto an authenticated admin router.
func (h *AdminAdHandler) Register(router fiber.Router) {
	ads := router.Group("/advertisements")
	{
		ads.Get("/", h.List)
		ads.Post("/", h.Create)
		ads.Get("/:id", h.Get)
		ads.Put("/:id", h.Update)
		ads.Delete("/:id", h.Delete)
	}
}

// AdvertisementRequest is the JSON body of an advertisement create.
type AdvertisementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	LinkURL     string `json:"link_url"`
	Category    string `json:"category"`
	IsActive    *bool  `json:"is_active"`
}

// List handles GET /api/admin/advertisements with optional active and category filters.
func (h *AdminAdHandler) List(c *fiber.Ctx) error {
	var filter repository.AdvertisementFilter
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "active must be true or false")
		}
		filter.Active = &active
	}
	if raw := c.Query("category"); raw != "" {
		category, ok := model.ParseCategory(raw)
		if !ok {
			return badRequest(c, "invalid category")
		}
		filter.Category = &category
	}

	ads, err := h.ads.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch advertisements")
	}
	return c.JSON(ads)
}

// Create handles POST /api/admin/advertisements
func (h *AdminAdHandler) Create(c *fiber.Ctx) error {
	var req AdvertisementRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	ad, err := h.ads.Create(c.UserContext(), service.AdvertisementInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
		Category:    req.Category,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create advertisement")
	}
	h.logger.Info("Advertisement created", zap.Uint("id", ad.ID), actor(c))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Advertisement created successfully",
		"data":    ad,
	})
}

// Get handles GET /api/admin/advertisements/:id
func (h *AdminAdHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, msgInvalidAdID)
	}

	ad, err := h.ads.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch advertisement")
	}
	return c.JSON(ad)
}

// Update handles PUT /api/admin/advertisements/:id. A body carrying only
// is_active toggles the status; anything else is a full replacement.
func (h *AdminAdHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, msgInvalidAdID)
	}

	var patch service.AdvertisementPatch
	if err := parseBody(c, &patch); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	ad, err := h.ads.Update(c.UserContext(), id, patch)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to update advertisement")
	}
	h.logger.Info("Advertisement updated",
		zap.Uint("id", ad.ID),
		zap.Bool("status_only", patch.StatusOnly()),
		actor(c),
	)

	message := "Advertisement updated successfully"
	if patch.StatusOnly() {
		message = "Advertisement status updated successfully"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    ad,
	})
}

// Delete handles DELETE /api/admin/advertisements/:id
func (h *AdminAdHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, msgInvalidAdID)
	}

	if err := h.ads.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.logger, err, "Failed to delete advertisement")
	}
	h.logger.Info("Advertisement deleted", zap.Uint("id", id), actor(c))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Advertisement deleted successfully",
	})
}
