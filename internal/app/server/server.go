package server

import (
	"context"
	"errors"

	"github.com/clooyzi-tech/clooyzi-web-solutions/config"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	inthttp "github.com/clooyzi-tech/clooyzi-web-solutions/internal/http/handler"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/http/middleware"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Dependencies bundles the stores and adapters the HTTP server is built from.
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Ads          repository.AdvertisementRepository
	Testimonials repository.TestimonialRepository
	Works        repository.WorkRepository
	Admins       repository.AdminUserRepository
	Analytics    repository.AnalyticsRepository
	OTPs         repository.OTPStore

	// Clicks stores tracked clicks, inline or through JetStream.
	Clicks    service.ClickRecorder
	UserAgent service.UserAgentParser
	Mailer    service.Mailer
	Random    service.Randomizer

	// RateLimiter enables per-client limits on the /api routes when set.
	RateLimiter middleware.Counter
	Checks      []inthttp.Check
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
	auth service.AuthService
}

// New creates the HTTP server with every route registered.
func New(deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	cfg := config.Config{}
	if deps.Config != nil {
		cfg = *deps.Config
	}
	if cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = "adminToken"
	}
	deps.Config = &cfg

	// Immutable: request values outlive the handler in the memory store and the click publisher.
	app := fiber.New(fiber.Config{
		AppName:                 deps.Config.App.Name,
		Immutable:               true,
		ProxyHeader:             deps.Config.App.ProxyHeader,
		EnableTrustedProxyCheck: len(deps.Config.App.TrustedProxies) > 0,
		TrustedProxies:          deps.Config.App.TrustedProxies,
		JSONEncoder:             json.Marshal,
		JSONDecoder:             json.Unmarshal,
		ErrorHandler:            errorHandler(deps.Logger),
	})

	s := &Server{
		app:  app,
		deps: deps,
		auth: service.NewAuthService(service.AuthDeps{
			Admins:     deps.Admins,
			Secret:     []byte(deps.Config.Auth.JWTSecret),
			TokenTTL:   deps.Config.Auth.TokenTTL,
			BcryptCost: deps.Config.Auth.BcryptCost,
			Logger:     deps.Logger.Named("auth"),
		}),
	}

	s.registerMiddleware()
	s.registerRoutes()
	return s
}

// App exposes the Fiber application, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Auth returns the auth service the admin routes verify tokens with.
func (s *Server) Auth() service.AuthService {
	return s.auth
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerMiddleware() {
	s.app.Use(
		middleware.Recovery(s.deps.Logger),
		middleware.RequestID(),
		middleware.Logger(s.deps.Logger),
		middleware.CORS(s.deps.Config.App.CORSOrigins),
		middleware.Metrics(),
	)
}

func (s *Server) registerRoutes() {
	cfg := s.deps.Config
	log := s.deps.Logger

	inthttp.NewHealthHandler(cfg.App.Name, s.deps.Checks, log).Register(s.app)

	api := s.app.Group("/api")
	if s.deps.RateLimiter != nil {
		api.Use(middleware.RateLimit(s.deps.RateLimiter, middleware.RateLimitConfig{
			MaxRequests: cfg.RateLimit.MaxRequests,
			Window:      cfg.RateLimit.Window,
		}, log))
	}

	inthttp.NewAdHandler(inthttp.AdDeps{
		Logger: log,
		Selection: service.NewSelectionService(service.SelectionDeps{
			Repo:       s.deps.Ads,
			Random:     s.deps.Random,
			MaxResults: cfg.Ads.MaxResults,
			Logger:     log.Named("selection"),
		}),
		Clicks: service.NewClickService(service.ClickDeps{
			Ads:      s.deps.Ads,
			Recorder: s.deps.Clicks,
			Parser:   s.deps.UserAgent,
			Logger:   log.Named("clicks"),
		}),
		FallbackURL: cfg.Ads.FallbackURL,
	}).Register(api)

	content := inthttp.NewContentHandler(inthttp.ContentDeps{
		Logger:  log,
		Content: service.NewContentService(s.deps.Testimonials, s.deps.Works),
	})
	content.Register(api)

	inthttp.NewMessageHandler(inthttp.MessageDeps{
		Logger: log,
		OTP: service.NewOTPService(service.OTPDeps{
			Store:  s.deps.OTPs,
			Mailer: s.deps.Mailer,
			TTL:    cfg.OTP.TTL,
			Length: cfg.OTP.Length,
			Logger: log.Named("otp"),
		}),
		Contact: service.NewContactService(s.deps.Mailer, cfg.Mail.ContactTo, log.Named("contact")),
	}).Register(api)

	// Login and logout stay reachable without a token, so they are
	// registered before the authenticated group claims the /admin prefix.
	inthttp.NewAuthHandler(inthttp.AuthDeps{
		Logger:       log,
		Auth:         s.auth,
		CookieName:   cfg.Auth.CookieName,
		CookieSecure: cfg.Auth.CookieSecure || !cfg.App.IsDevelopment(),
	}).Register(api)

	admin := api.Group("/admin", middleware.Auth(s.auth, cfg.Auth.CookieName))
	inthttp.NewAdminAdHandler(inthttp.AdminAdDeps{
		Logger: log,
		Ads:    service.NewAdvertisementService(s.deps.Ads, log.Named("advertisements")),
	}).Register(admin)
	content.RegisterAdmin(admin)
	inthttp.NewAnalyticsHandler(service.NewAnalyticsService(s.deps.Analytics), log).Register(admin)
}

// errorHandler renders errors that escape handlers, such as unknown routes.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			log.Error("unhandled error",
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.String("request_id", middleware.GetRequestID(c)),
			)
		}

		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}
