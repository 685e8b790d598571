package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	digits := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateCode(6)
		require.NoError(t, err)
		assert.Regexp(t, digits, code)
	}
}

func TestOTPService_SendAndVerify(t *testing.T) {
	store := &mockOTPStore{}
	mailer := &mockMailer{}
	svc := NewOTPService(OTPDeps{
		Store:    store,
		Mailer:   mailer,
		TTL:      5 * time.Minute,
		Generate: func(int) (string, error) { return "042137", nil },
	})
	ctx := context.Background()

	require.NoError(t, svc.Send(ctx, " User@Example.com "))
	assert.Equal(t, "042137", store.codes["user@example.com"])
	assert.Equal(t, 5*time.Minute, store.ttl)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "user@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].HTML, "042137")
	assert.Contains(t, mailer.sent[0].HTML, "5 minutes")

	err := svc.Verify(ctx, "user@example.com", "000000")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Invalid OTP", Message(err, ""))
	assert.Contains(t, store.codes, "user@example.com")

	require.NoError(t, svc.Verify(ctx, "user@example.com", "042137"))
	assert.NotContains(t, store.codes, "user@example.com")

	err = svc.Verify(ctx, "user@example.com", "042137")
	assert.Equal(t, "OTP not found or expired", Message(err, ""))
}

func TestOTPService_Send_Validation(t *testing.T) {
	svc := NewOTPService(OTPDeps{Store: &mockOTPStore{}, Mailer: &mockMailer{}})

	err := svc.Send(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Email is required", Message(err, ""))

	err = svc.Send(context.Background(), "not-an-email")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOTPService_Send_Failures(t *testing.T) {
	svc := NewOTPService(OTPDeps{Store: &mockOTPStore{saveErr: errors.New("redis down")}, Mailer: &mockMailer{}})
	err := svc.Send(context.Background(), "a@example.com")
	assert.ErrorIs(t, err, ErrStore)
	assert.Equal(t, "Failed to store OTP", Message(err, ""))

	svc = NewOTPService(OTPDeps{Store: &mockOTPStore{}, Mailer: &mockMailer{err: errors.New("smtp")}})
	err = svc.Send(context.Background(), "a@example.com")
	assert.Equal(t, "Failed to send OTP", Message(err, ""))
}

func TestOTPService_Verify_RequiresBothFields(t *testing.T) {
	svc := NewOTPService(OTPDeps{Store: &mockOTPStore{}, Mailer: &mockMailer{}})
	err := svc.Verify(context.Background(), "a@example.com", " ")
	assert.Equal(t, "Email and OTP are required", Message(err, ""))
}
