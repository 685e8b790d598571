package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrOTPNotFound signals that no live code exists for the address.
	ErrOTPNotFound = errors.New("otp not found or expired")
)

const otpKeyPrefix = "otp:"

// OTPStore keeps one-time codes keyed by email address with a bounded lifetime.
type OTPStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

type redisOTPStore struct {
	client *redis.Client
}

// NewRedisOTPStore returns an OTPStore that relies on Redis key expiry.
func NewRedisOTPStore(client *redis.Client) OTPStore {
	return &redisOTPStore{client: client}
}

// OTPKey returns the storage key for an email address.
func OTPKey(email string) string {
	return otpKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (s *redisOTPStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, OTPKey(email), code, ttl).Err()
}

func (s *redisOTPStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, OTPKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrOTPNotFound
		}
		return "", err
	}
	return code, nil
}

func (s *redisOTPStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, OTPKey(email)).Err()
}
