package handler

import (
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MessageDeps groups dependencies required by the email-backed endpoints.
type MessageDeps struct {
	Logger  *zap.Logger
	OTP     service.OTPService
	Contact service.ContactService
}

// MessageHandler issues one-time codes and relays contact form submissions.
type MessageHandler struct {
	logger  *zap.Logger
	otp     service.OTPService
	contact service.ContactService
}

func NewMessageHandler(deps MessageDeps) *MessageHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageHandler{logger: logger, otp: deps.OTP, contact: deps.Contact}
}

// Register wires the email routes onto the /api router.
func (h *MessageHandler) Register(router fiber.Router) {
	router.Post("/send-otp", h.SendOTP)
	router.Post("/verify-otp", h.VerifyOTP)
	router.Post("/send-email", h.SendContact)
}

// OTPRequest is the JSON body of the OTP endpoints; OTP is ignored by send.
type OTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// SendOTP handles POST /api/send-otp
func (h *MessageHandler) SendOTP(c *fiber.Ctx) error {
	var req OTPRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	if err := h.otp.Send(c.UserContext(), req.Email); err != nil {
		return writeError(c, h.logger, err, "Failed to send OTP")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP sent successfully",
	})
}

// VerifyOTP handles POST /api/verify-otp
func (h *MessageHandler) VerifyOTP(c *fiber.Ctx) error {
	var req OTPRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	if err := h.otp.Verify(c.UserContext(), req.Email, req.OTP); err != nil {
		return writeError(c, h.logger, err, "Failed to verify OTP")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP verified successfully",
	})
}

// SendContact handles POST /api/send-email
func (h *MessageHandler) SendContact(c *fiber.Ctx) error {
	var input service.ContactInput
	if err := parseBody(c, &input); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	if err := h.contact.Submit(c.UserContext(), input); err != nil {
		return writeError(c, h.logger, err, "Failed to send email")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Email sent successfully",
	})
}
