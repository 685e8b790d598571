package handler

import (
	"time"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthDeps groups dependencies required by the admin session handlers.
type AuthDeps struct {
	Logger       *zap.Logger
	Auth         service.AuthService
	CookieName   string
	CookieSecure bool
}

// AuthHandler opens and closes admin sessions.
type AuthHandler struct {
	logger       *zap.Logger
	auth         service.AuthService
	cookieName   string
	cookieSecure bool
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(deps AuthDeps) *AuthHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	name := deps.CookieName
	if name == "" {
		name = "adminToken"
	}
	return &AuthHandler{
		logger:       logger,
		auth:         deps.Auth,
		cookieName:   name,
		cookieSecure: deps.CookieSecure,
	}
}

// Register wires login and logout onto the /api router. It must run before
// the authenticated admin group is mounted on the same prefix.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/admin/login", h.Login)
	router.Post("/admin/logout", h.Logout)
}

// LoginRequest is the JSON body of POST /api/admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeError(c, h.logger, err, "Internal server error")
	}

	ttl := h.auth.TokenTTL()
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
	})
}

// Logout handles POST /api/admin/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}
