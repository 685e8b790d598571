package handler

import (
	"strconv"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	httpUtil "github.com/clooyzi-tech/clooyzi-web-solutions/internal/http/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

const msgAdIDRequired = "Advertisement ID is required"

// AdDeps groups dependencies required by the public ad handlers.
type AdDeps struct {
	Logger    *zap.Logger
	Selection service.SelectionService
	Clicks    service.ClickService
	// FallbackURL receives redirect clicks that cannot be resolved.
	FallbackURL string
}

// AdHandler serves advertisements to publisher sites and tracks their clicks.
type AdHandler struct {
	logger      *zap.Logger
	selection   service.SelectionService
	clicks      service.ClickService
	fallbackURL string
}

// NewAdHandler creates an ad handler with the provided dependencies.
func NewAdHandler(deps AdDeps) *AdHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fallback := deps.FallbackURL
	if fallback == "" {
		fallback = "/"
	}
	return &AdHandler{
		logger:      logger,
		selection:   deps.Selection,
		clicks:      deps.Clicks,
		fallbackURL: fallback,
	}
}

// Register wires the public ad routes onto the /api router.
func (h *AdHandler) Register(router fiber.Router) {
	ads := router.Group("/ads")
	{
		ads.Get("/", h.ServeAds)
		ads.Post("/", h.ServeAdsFromBody)
		ads.Post("/click", h.TrackClick)
		ads.Get("/click", h.RedirectClick)
	}
}

// ServeAds handles GET /api/ads
func (h *AdHandler) ServeAds(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return h.serve(c, service.SelectionRequest{
		Category:      c.Query("category"),
		PageType:      c.Query("pageType"),
		PublisherSite: c.Query("publisherSite"),
		Limit:         limit,
	})
}

// AdRequest is the JSON body of POST /api/ads. Limit may be a number or a numeric string.
type AdRequest struct {
	Category      string `json:"category"`
	PageType      string `json:"pageType"`
	PublisherSite string `json:"publisherSite"`
	Limit         any    `json:"limit"`
}

// ServeAdsFromBody handles POST /api/ads
func (h *AdHandler) ServeAdsFromBody(c *fiber.Ctx) error {
	var req AdRequest
	if err := parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   msgInvalidBody,
		})
	}
	return h.serve(c, service.SelectionRequest{
		Category:      req.Category,
		PageType:      req.PageType,
		PublisherSite: req.PublisherSite,
		Limit:         looseInt(req.Limit),
	})
}

func (h *AdHandler) serve(c *fiber.Ctx, req service.SelectionRequest) error {
	result, err := h.selection.Select(c.UserContext(), req)
	if err != nil {
		return writePublicError(c, h.logger, err, "Failed to fetch advertisements")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": result.Message,
		"ads":     result.Ads,
		"meta":    result.Meta,
	})
}

// ClickRequest is the JSON body of POST /api/ads/click.
type ClickRequest struct {
	AdID          any    `json:"adId"`
	PublisherSite string `json:"publisherSite"`
	PageType      string `json:"pageType"`
}

// TrackClick handles POST /api/ads/click
func (h *AdHandler) TrackClick(c *fiber.Ctx) error {
	var req ClickRequest
	if err := parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   msgInvalidBody,
		})
	}

	adID, present, ok := looseUint(req.AdID)
	if !present {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   msgAdIDRequired,
		})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   service.MsgAdUnavailable,
		})
	}

	result, err := h.clicks.Track(c.UserContext(), h.clickRequest(c, adID, req.PublisherSite, req.PageType))
	if err != nil {
		return writePublicError(c, h.logger, err, "Failed to track click")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Click tracked successfully",
		"redirectUrl": result.RedirectURL,
		"adDetails": fiber.Map{
			"id":       result.Ad.ID,
			"title":    result.Ad.Title,
			"category": result.Ad.Category,
		},
	})
}

// RedirectClick handles GET /api/ads/click. Every failure redirects to the
// fallback URL instead of rendering an error.
func (h *AdHandler) RedirectClick(c *fiber.Ctx) error {
	adID, _, ok := looseUint(c.Query("adId"))
	if !ok {
		return c.Redirect(h.fallbackURL, fiber.StatusFound)
	}

	result, err := h.clicks.Track(c.UserContext(), h.clickRequest(c, adID, c.Query("publisherSite"), c.Query("pageType")))
	if err != nil {
		if statusFor(err) >= fiber.StatusInternalServerError {
			h.logger.Error("click redirect failed", zap.Uint("ad_id", adID), zap.Error(err))
		}
		return c.Redirect(h.fallbackURL, fiber.StatusFound)
	}

	return c.Redirect(result.RedirectURL, fiber.StatusFound)
}

func (h *AdHandler) clickRequest(c *fiber.Ctx, adID uint, publisherSite, pageType string) service.ClickRequest {
	return service.ClickRequest{
		AdID:          adID,
		PublisherSite: utils.CopyString(publisherSite),
		PageType:      utils.CopyString(pageType),
		ReferrerURL:   utils.CopyString(c.Get(fiber.HeaderReferer)),
		UserIP:        utils.CopyString(httpUtil.ClientIP(c)),
		UserAgent:     utils.CopyString(c.Get(fiber.HeaderUserAgent)),
	}
}
