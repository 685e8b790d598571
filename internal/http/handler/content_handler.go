package handler

import (
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ContentDeps groups dependencies required by the testimonial and work handlers.
type ContentDeps struct {
	Logger  *zap.Logger
	Content service.ContentService
}

// ContentHandler serves testimonials and portfolio works.
type ContentHandler struct {
	logger  *zap.Logger
	content service.ContentService
}

// NewContentHandler creates a content handler.
func NewContentHandler(deps ContentDeps) *ContentHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentHandler{logger: logger, content: deps.Content}
}

// Register wires the public list routes onto the /api router.
func (h *ContentHandler) Register(router fiber.Router) {
	router.Get("/testimonials", h.ListTestimonials)
	router.Get("/works", h.ListWorks)
}

// RegisterAdmin wires the management routes onto an authenticated admin router.
func (h *ContentHandler) RegisterAdmin(router fiber.Router) {
	testimonials := router.Group("/testimonials")
	{
		testimonials.Get("/", h.ListTestimonials)
		testimonials.Post("/", h.CreateTestimonial)
		testimonials.Put("/:id", h.UpdateTestimonial)
		testimonials.Delete("/:id", h.DeleteTestimonial)
	}

	works := router.Group("/works")
	{
		works.Get("/", h.ListWorks)
		works.Post("/", h.CreateWork)
		works.Put("/:id", h.UpdateWork)
		works.Delete("/:id", h.DeleteWork)
	}
}

// ListTestimonials handles GET /api/testimonials and its admin twin.
func (h *ContentHandler) ListTestimonials(c *fiber.Ctx) error {
	items, err := h.content.ListTestimonials(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch testimonials")
	}
	return c.JSON(items)
}

// CreateTestimonial handles POST /api/admin/testimonials
func (h *ContentHandler) CreateTestimonial(c *fiber.Ctx) error {
	var input service.TestimonialInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	item, err := h.content.CreateTestimonial(c.UserContext(), input)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create testimonial")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Testimonial created successfully",
		"data":    item,
	})
}

// UpdateTestimonial handles PUT /api/admin/testimonials/:id
func (h *ContentHandler) UpdateTestimonial(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid testimonial ID")
	}

	var input service.TestimonialInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	item, err := h.content.UpdateTestimonial(c.UserContext(), id, input)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to update testimonial")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Testimonial updated successfully",
		"data":    item,
	})
}

// DeleteTestimonial handles DELETE /api/admin/testimonials/:id
func (h *ContentHandler) DeleteTestimonial(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid testimonial ID")
	}

	if err := h.content.DeleteTestimonial(c.UserContext(), id); err != nil {
		return writeError(c, h.logger, err, "Failed to delete testimonial")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Testimonial deleted successfully",
	})
}

// ListWorks handles GET /api/works and its admin twin.
func (h *ContentHandler) ListWorks(c *fiber.Ctx) error {
	items, err := h.content.ListWorks(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch works")
	}
	return c.JSON(items)
}

// CreateWork handles POST /api/admin/works
func (h *ContentHandler) CreateWork(c *fiber.Ctx) error {
	var input service.WorkInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	item, err := h.content.CreateWork(c.UserContext(), input)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create work")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Work created successfully",
		"data":    item,
	})
}

// UpdateWork handles PUT /api/admin/works/:id
func (h *ContentHandler) UpdateWork(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid work ID")
	}

	var input service.WorkInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	item, err := h.content.UpdateWork(c.UserContext(), id, input)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to update work")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Work updated successfully",
		"data":    item,
	})
}

// DeleteWork handles DELETE /api/admin/works/:id
func (h *ContentHandler) DeleteWork(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid work ID")
	}

	if err := h.content.DeleteWork(c.UserContext(), id); err != nil {
		return writeError(c, h.logger, err, "Failed to delete work")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Work deleted successfully",
	})
}
