package service

import (
	"context"
	"strings"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/view"
	appmail "github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/mail"
	"go.uber.org/zap"
)

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
}

// ContactService forwards contact form submissions to the site owner.
type ContactService interface {
	Submit(ctx context.Context, input ContactInput) error
}

type contactService struct {
	mailer Mailer
	to     string
	log    *zap.Logger
}

func NewContactService(mailer Mailer, to string, log *zap.Logger) ContactService {
	if log == nil {
		log = zap.NewNop()
	}
	return &contactService{mailer: mailer, to: to, log: log}
}

func (s *contactService) Submit(ctx context.Context, input ContactInput) error {
	data := view.ContactMailData{
		Name:    strings.TrimSpace(input.Name),
		Phone:   strings.TrimSpace(input.Phone),
		Company: strings.TrimSpace(input.Company),
		Message: strings.TrimSpace(input.Message),
	}
	if data.Name == "" || data.Message == "" {
		return validationError("Name, email and message are required")
	}
	email, err := normalizeEmail(input.Email, "Name, email and message are required")
	if err != nil {
		return err
	}
	data.Email = email

	body, err := view.RenderContactMail(data)
	if err != nil {
		return storeError("Failed to send email", err)
	}

	if err := s.mailer.Send(ctx, appmail.Message{
		FromName: data.Name,
		To:       s.to,
		ReplyTo:  data.Email,
		Subject:  "New Contact Form Submission from " + data.Name,
		HTML:     body,
	}); err != nil {
		return storeError("Failed to send email", err)
	}

	s.log.Info("contact form forwarded", zap.String("from", data.Email))
	return nil
}
