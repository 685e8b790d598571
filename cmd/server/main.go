package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/clooyzi-tech/clooyzi-web-solutions/config"
	apprepository "github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository/memory"
	appserver "github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/server"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	inthttp "github.com/clooyzi-tech/clooyzi-web-solutions/internal/http/handler"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/http/middleware"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/logger"
	infraMail "github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/mail"
	infraNATS "github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/nats"
	infraPrometheus "github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/prometheus"
	infraRedis "github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/redis"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/useragent"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.MustInit(logger.FromApp(cfg.App))
	defer func() { _ = logger.Sync() }()

	log.Info("Configuration loaded successfully",
		zap.String("env", cfg.App.Env),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("nats_enabled", cfg.NATS.Enabled),
		zap.Bool("clicks_async", cfg.Clicks.Async),
		zap.Bool("prometheus_enabled", cfg.Prometheus.Enabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := appserver.Dependencies{Config: cfg, Logger: log}

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open storage", zap.Error(err))
	}
	defer st.Close()
	st.apply(&deps)

	if cfg.Redis.Enabled {
		redisClient, err := infraRedis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		log.Info("Connected to Redis successfully", zap.String("addr", infraRedis.Addr(cfg.Redis)))

		deps.OTPs = apprepository.NewRedisOTPStore(redisClient)
		deps.RateLimiter = middleware.NewRedisCounter(redisClient)
		deps.Checks = append(deps.Checks, inthttp.Check{
			Name:  "redis",
			Probe: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	} else {
		deps.OTPs = memory.NewOTPStore()
	}

	deps.Clicks = service.NewRepositoryRecorder(st.clicks)
	if cfg.NATS.Enabled {
		natsConn, js, err := infraNATS.Connect(cfg.NATS, cfg.App.Name, log.Named("nats"))
		if err != nil {
			log.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer natsConn.Drain()
		log.Info("Connected to NATS successfully", zap.String("url", infraNATS.URL(cfg.NATS)))

		deps.Checks = append(deps.Checks, inthttp.Check{
			Name: "nats",
			Probe: func(context.Context) error {
				if status := natsConn.Status(); status != nats.CONNECTED {
					return fmt.Errorf("nats status %s", status)
				}
				return nil
			},
		})

		if cfg.Clicks.Async {
			consumer := service.NewClickConsumer(js, log.Named("click-consumer"), st.clicks)
			if err := consumer.Start(ctx); err != nil {
				log.Fatal("Failed to start click consumer", zap.Error(err))
			}
			defer consumer.Stop()
			deps.Clicks = service.NewClickPublisher(js)
		}
	}

	uaParser, err := useragent.NewParser(cfg.UserAgent.RegexesPath, log.Named("useragent"))
	if err != nil {
		log.Fatal("Failed to load user agent definitions", zap.Error(err))
	}
	deps.UserAgent = uaParser

	if cfg.Mail.Host != "" {
		deps.Mailer = infraMail.NewSMTPMailer(cfg.Mail)
	} else {
		log.Warn("mail.host is empty, outgoing mail is only logged")
		deps.Mailer = infraMail.NewLogMailer(log.Named("mail"))
	}

	if cfg.Prometheus.Enabled {
		promServer := infraPrometheus.NewServer(cfg.Prometheus)
		go func() {
			log.Info("Starting Prometheus metrics server", zap.Int("port", cfg.Prometheus.Port))
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Prometheus metrics server stopped unexpectedly", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
			defer cancel()
			if err := promServer.Shutdown(shutdownCtx); err != nil {
				log.Warn("Failed to stop Prometheus server", zap.Error(err))
			}
		}()
	}

	server := appserver.New(deps)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		log.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- server.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Fiber server exited", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Graceful shutdown failed", zap.Error(err))
		}
	}
}
