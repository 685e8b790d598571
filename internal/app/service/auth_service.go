package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL = 24 * time.Hour
	tokenIssuer     = "clooyzi"
)

// MsgInvalidCredentials is the single message for any failed login.
const MsgInvalidCredentials = "Invalid credentials"

// AdminClaims are the JWT claims of an admin session.
type AdminClaims struct {
	AdminID uint   `json:"adminId"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService authenticates admins and verifies their session tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (*AdminClaims, error)
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)
	TokenTTL() time.Duration
}

// AuthDeps wires the collaborators of the auth service.
type AuthDeps struct {
	Admins     repository.AdminUserRepository
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
	Logger     *zap.Logger
	Now        func() time.Time
}

type authService struct {
	admins     repository.AdminUserRepository
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	log        *zap.Logger
	now        func() time.Time
}

func NewAuthService(deps AuthDeps) AuthService {
	s := &authService{
		admins:     deps.Admins,
		secret:     deps.Secret,
		ttl:        deps.TokenTTL,
		bcryptCost: deps.BcryptCost,
		log:        deps.Logger,
		now:        deps.Now,
	}
	if s.ttl <= 0 {
		s.ttl = defaultTokenTTL
	}
	if s.bcryptCost == 0 {
		s.bcryptCost = bcrypt.DefaultCost
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *authService) TokenTTL() time.Duration { return s.ttl }

// Login checks the credentials and returns a signed session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", validationError("Email and password required")
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			s.log.Info("login rejected", zap.String("email", email), zap.String("reason", "unknown admin"))
			return "", unauthorizedError(MsgInvalidCredentials)
		}
		return "", storeError("Internal server error", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.log.Info("login rejected", zap.String("email", email), zap.String("reason", "password mismatch"))
		return "", unauthorizedError(MsgInvalidCredentials)
	}

	token, err := s.sign(admin)
	if err != nil {
		return "", storeError("Internal server error", err)
	}

	s.log.Info("admin logged in", zap.Uint("admin_id", admin.ID))
	return token, nil
}

func (s *authService) sign(admin *model.AdminUser) (string, error) {
	now := s.now()
	claims := AdminClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   admin.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates an HS256 token and returns its claims.
func (s *authService) ParseToken(tokenString string) (*AdminClaims, error) {
	if tokenString == "" {
		return nil, unauthorizedError("Unauthorized")
	}

	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, &Error{Kind: ErrUnauthorized, Message: "Unauthorized", Err: err}
	}
	return claims, nil
}

// EnsureAdmin creates the admin account unless one already exists for email.
func (s *authService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, validationError("Email and password required")
	}

	_, err := s.admins.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrAdminNotFound) {
		return false, storeError("Failed to look up admin", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	if err := s.admins.Create(ctx, &model.AdminUser{Email: email, PasswordHash: string(hash)}); err != nil {
		return false, storeError("Failed to create admin", err)
	}
	return true, nil
}
