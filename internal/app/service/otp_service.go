package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/view"
	appmail "github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/mail"
	"go.uber.org/zap"
)

const (
	defaultOTPLength = 6
	defaultOTPTTL    = 5 * time.Minute
)

// Mailer delivers an HTML email.
type Mailer interface {
	Send(ctx context.Context, msg appmail.Message) error
}

// OTPService issues and verifies one-time email codes.
type OTPService interface {
	Send(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
}

// OTPDeps wires the collaborators of the OTP service.
type OTPDeps struct {
	Store    repository.OTPStore
	Mailer   Mailer
	TTL      time.Duration
	Length   int
	Logger   *zap.Logger
	Generate func(length int) (string, error)
}

type otpService struct {
	store    repository.OTPStore
	mailer   Mailer
	ttl      time.Duration
	length   int
	log      *zap.Logger
	generate func(length int) (string, error)
}

func NewOTPService(deps OTPDeps) OTPService {
	s := &otpService{
		store:    deps.Store,
		mailer:   deps.Mailer,
		ttl:      deps.TTL,
		length:   deps.Length,
		log:      deps.Logger,
		generate: deps.Generate,
	}
	if s.ttl <= 0 {
		s.ttl = defaultOTPTTL
	}
	if s.length <= 0 {
		s.length = defaultOTPLength
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.generate == nil {
		s.generate = GenerateCode
	}
	return s
}

func (s *otpService) Send(ctx context.Context, email string) error {
	email, err := normalizeEmail(email, "Email is required")
	if err != nil {
		return err
	}

	code, err := s.generate(s.length)
	if err != nil {
		return storeError("Failed to send OTP", err)
	}

	if err := s.store.Save(ctx, email, code, s.ttl); err != nil {
		return storeError("Failed to store OTP", err)
	}

	body, err := view.RenderOTPMail(view.OTPMailData{Code: code, ExpiryMinutes: int(s.ttl.Minutes())})
	if err != nil {
		return storeError("Failed to send OTP", err)
	}

	if err := s.mailer.Send(ctx, appmail.Message{
		To:      email,
		Subject: "Email Verification OTP - Clooyzi",
		HTML:    body,
	}); err != nil {
		return storeError("Failed to send OTP", err)
	}

	s.log.Info("otp sent", zap.String("email", email))
	return nil
}

// Verify consumes the code on success. A wrong code leaves it in place until it expires.
func (s *otpService) Verify(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return validationError("Email and OTP are required")
	}

	stored, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return validationError("OTP not found or expired")
		}
		return storeError("Failed to verify OTP", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return validationError("Invalid OTP")
	}

	if err := s.store.Delete(ctx, email); err != nil {
		s.log.Warn("failed to delete used otp", zap.String("email", email), zap.Error(err))
	}
	return nil
}

// GenerateCode returns a uniformly random decimal code of the given length.
func GenerateCode(length int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", length, n.Int64()), nil
}

func normalizeEmail(raw, requiredMsg string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", validationError("%s", requiredMsg)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", validationError("Invalid email address")
	}
	return email, nil
}
