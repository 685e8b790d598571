package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticParser struct {
	valid string
}

func (p staticParser) ParseToken(token string) (*service.AdminClaims, error) {
	if token == "" || token != p.valid {
		return nil, service.ErrUnauthorized
	}
	return &service.AdminClaims{AdminID: 1, Email: "admin@example.com"}, nil
}

func TestAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", Auth(staticParser{valid: "good"}, "adminToken"), func(c *fiber.Ctx) error {
		return c.SendString(AdminClaims(c).Email)
	})

	tests := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{"no credentials", "", "", fiber.StatusUnauthorized},
		{"bearer", "Bearer good", "", fiber.StatusOK},
		{"lowercase scheme", "bearer good", "", fiber.StatusOK},
		{"cookie", "", "good", fiber.StatusOK},
		{"bad bearer", "Bearer nope", "", fiber.StatusUnauthorized},
		{"basic scheme ignored", "Basic good", "", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.Header.Set("Cookie", "adminToken="+tt.cookie)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			if tt.status == fiber.StatusOK {
				assert.Equal(t, "admin@example.com", string(body))
			} else {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, string(body))
			}
		})
	}
}

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func (f *fakeCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	return f.counts[key], nil
}

func TestRateLimit(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{}}
	app := fiber.New()
	app.Use(RateLimit(counter, RateLimitConfig{MaxRequests: 2, Window: time.Minute}, zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	var codes []int
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
	require.Len(t, counter.counts, 1)
	for key, n := range counter.counts {
		assert.True(t, strings.HasPrefix(key, "ratelimit:"))
		assert.Equal(t, int64(3), n)
	}
}

func TestRateLimit_IgnoresForwardedForFromPeer(t *testing.T) {
	tests := []struct {
		name   string
		config fiber.Config
	}{
		{name: "no proxy header", config: fiber.Config{}},
		{name: "untrusted peer", config: fiber.Config{
			ProxyHeader:             fiber.HeaderXForwardedFor,
			EnableTrustedProxyCheck: true,
			TrustedProxies:          []string{"10.10.10.10"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := &fakeCounter{counts: map[string]int64{}}
			app := fiber.New(tt.config)
			app.Use(RateLimit(counter, RateLimitConfig{MaxRequests: 1, Window: time.Minute}, zap.NewNop()))
			app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

			allowed := 0
			for i := 0; i < 20; i++ {
				req := httptest.NewRequest("GET", "/", nil)
				req.Header.Set(fiber.HeaderXForwardedFor, "10.0.0."+strconv.Itoa(i))
				resp, err := app.Test(req)
				require.NoError(t, err)
				if resp.StatusCode == fiber.StatusOK {
					allowed++
				} else {
					assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
				}
			}
			assert.Equal(t, 1, allowed)
			assert.Len(t, counter.counts, 1)
		})
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit(&fakeCounter{err: errors.New("redis down")}, RateLimitConfig{MaxRequests: 1}, zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestRecovery(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID(), Recovery(zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetRequestID(c)) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "abc-123", string(body))
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS(nil))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("OPTIONS", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	restricted := fiber.New()
	restricted.Use(CORS([]string{"https://admin.example"}))
	restricted.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://admin.example")
	resp, err = restricted.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "https://admin.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err = restricted.Test(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
