package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func do(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func newAdApp(selection *mockSelection, clicks *mockClicks) *fiber.App {
	app := fiber.New()
	NewAdHandler(AdDeps{
		Selection:   selection,
		Clicks:      clicks,
		FallbackURL: "https://clooyzi.example/",
	}).Register(app.Group("/api"))
	return app
}

func TestServeAds_Query(t *testing.T) {
	selection := &mockSelection{}
	selection.On("Select", mock.Anything, service.SelectionRequest{
		Category:      "Tech",
		PageType:      "blog",
		PublisherSite: "news.example",
		Limit:         0,
	}).Return(&service.SelectionResult{
		Message: "Advertisement served successfully",
		Ads:     []model.Advertisement{{ID: 1, Title: "A", Category: model.CategoryTech}},
		Meta:    service.SelectionMeta{Category: "tech", Count: 1, TotalAvailable: 3},
	}, nil)

	app := newAdApp(selection, &mockClicks{})
	resp, body := do(t, app, "GET", "/api/ads?category=Tech&pageType=blog&publisherSite=news.example&limit=abc", "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["ads"], 1)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(3), meta["totalAvailable"])
	selection.AssertExpectations(t)
}

func TestServeAds_BodyAcceptsStringLimit(t *testing.T) {
	selection := &mockSelection{}
	selection.On("Select", mock.Anything, service.SelectionRequest{Category: "tech", Limit: 3}).
		Return(&service.SelectionResult{Ads: []model.Advertisement{}}, nil)

	app := newAdApp(selection, &mockClicks{})
	resp, body := do(t, app, "POST", "/api/ads", `{"category":"tech","limit":"3"}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{}, body["ads"])
	selection.AssertExpectations(t)
}

func TestServeAds_StoreError(t *testing.T) {
	selection := &mockSelection{}
	selection.On("Select", mock.Anything, mock.Anything).
		Return(nil, &service.Error{Kind: service.ErrStore, Message: "Failed to fetch advertisements", Err: errors.New("conn reset")})

	resp, body := do(t, newAdApp(selection, &mockClicks{}), "GET", "/api/ads", "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to fetch advertisements", body["error"])
}

func TestTrackClick(t *testing.T) {
	clicks := &mockClicks{}
	clicks.On("Track", mock.Anything, mock.MatchedBy(func(req service.ClickRequest) bool {
		return req.AdID == 5 && req.UserIP == "198.51.100.7" && req.PublisherSite == "blog.example" &&
			req.ReferrerURL == "https://blog.example/post" && req.UserAgent == "test-agent"
	})).Return(&service.ClickResult{
		RedirectURL: "https://example.com",
		Ad:          &model.Advertisement{ID: 5, Title: "Five", Category: model.CategoryBusiness},
	}, nil)

	app := newAdApp(&mockSelection{}, clicks)
	resp, body := do(t, app, "POST", "/api/ads/click", `{"adId":5,"publisherSite":"blog.example"}`,
		"X-Forwarded-For", "198.51.100.7, 10.0.0.1",
		"Referer", "https://blog.example/post",
		"User-Agent", "test-agent",
	)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "https://example.com", body["redirectUrl"])
	details := body["adDetails"].(map[string]any)
	assert.Equal(t, float64(5), details["id"])
	assert.Equal(t, "business", details["category"])
	clicks.AssertExpectations(t)
}

func TestTrackClick_AdIDValidation(t *testing.T) {
	clicks := &mockClicks{}
	app := newAdApp(&mockSelection{}, clicks)

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"missing", `{}`, fiber.StatusBadRequest, msgAdIDRequired},
		{"empty string", `{"adId":""}`, fiber.StatusBadRequest, msgAdIDRequired},
		{"no body", "", fiber.StatusBadRequest, msgAdIDRequired},
		{"not a number", `{"adId":"abc"}`, fiber.StatusNotFound, service.MsgAdUnavailable},
		{"negative", `{"adId":-4}`, fiber.StatusNotFound, service.MsgAdUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, app, "POST", "/api/ads/click", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["error"])
		})
	}
	clicks.AssertNotCalled(t, "Track", mock.Anything, mock.Anything)
}

func TestTrackClick_Unavailable(t *testing.T) {
	clicks := &mockClicks{}
	clicks.On("Track", mock.Anything, mock.Anything).
		Return(nil, &service.Error{Kind: service.ErrNotFound, Message: service.MsgAdUnavailable})

	resp, body := do(t, newAdApp(&mockSelection{}, clicks), "POST", "/api/ads/click", `{"adId":"2"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, service.MsgAdUnavailable, body["error"])
}

func TestRedirectClick(t *testing.T) {
	clicks := &mockClicks{}
	clicks.On("Track", mock.Anything, mock.MatchedBy(func(req service.ClickRequest) bool { return req.AdID == 1 })).
		Return(&service.ClickResult{RedirectURL: "https://example.com/landing", Ad: &model.Advertisement{ID: 1}}, nil)
	clicks.On("Track", mock.Anything, mock.MatchedBy(func(req service.ClickRequest) bool { return req.AdID == 2 })).
		Return(nil, &service.Error{Kind: service.ErrNotFound, Message: service.MsgAdUnavailable})

	app := newAdApp(&mockSelection{}, clicks)

	resp, _ := do(t, app, "GET", "/api/ads/click?adId=1&publisherSite=a.example", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://example.com/landing", resp.Header.Get("Location"))

	resp, _ = do(t, app, "GET", "/api/ads/click?adId=2", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://clooyzi.example/", resp.Header.Get("Location"))

	resp, _ = do(t, app, "GET", "/api/ads/click", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://clooyzi.example/", resp.Header.Get("Location"))

	clicks.AssertNumberOfCalls(t, "Track", 2)
}
