package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T, now func() time.Time) (AuthService, *mockAdminRepository) {
	t.Helper()
	repo := &mockAdminRepository{}
	svc := NewAuthService(AuthDeps{
		Admins:     repo,
		Secret:     []byte("test-secret"),
		BcryptCost: bcrypt.MinCost,
		Now:        now,
	})
	created, err := svc.EnsureAdmin(context.Background(), " Admin@Example.com ", "hunter2")
	require.NoError(t, err)
	require.True(t, created)
	return svc, repo
}

func TestAuthService_LoginAndParse(t *testing.T) {
	svc, _ := newTestAuth(t, nil)

	token, err := svc.Login(context.Background(), "admin@example.com", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.AdminID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, 24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc, _ := newTestAuth(t, nil)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "x")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, MsgInvalidCredentials, Message(err, ""))

	_, err = svc.Login(ctx, "nobody@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, MsgInvalidCredentials, Message(err, ""))
}

func TestAuthService_Login_StoreError(t *testing.T) {
	svc := NewAuthService(AuthDeps{Admins: &mockAdminRepository{err: errors.New("down")}, Secret: []byte("s")})
	_, err := svc.Login(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrStore)
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	issued := time.Now().Add(-48 * time.Hour)
	svc, _ := newTestAuth(t, func() time.Time { return issued })
	expired, err := svc.Login(context.Background(), "admin@example.com", "hunter2")
	require.NoError(t, err)

	fresh := NewAuthService(AuthDeps{Admins: &mockAdminRepository{}, Secret: []byte("test-secret")})
	_, err = fresh.ParseToken(expired)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = fresh.ParseToken("")
	assert.ErrorIs(t, err, ErrUnauthorized)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{AdminID: 1})
	signed, err := other.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = fresh.ParseToken(signed)
	assert.ErrorIs(t, err, ErrUnauthorized)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, AdminClaims{AdminID: 1})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = fresh.ParseToken(unsigned)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_EnsureAdmin_Idempotent(t *testing.T) {
	svc, repo := newTestAuth(t, nil)

	created, err := svc.EnsureAdmin(context.Background(), "admin@example.com", "other")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.users, 1)
	assert.NotEqual(t, "hunter2", repo.users["admin@example.com"].PasswordHash)
}
