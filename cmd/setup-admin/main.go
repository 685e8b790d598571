// Command setup-admin creates the first admin account in the Postgres store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/clooyzi-tech/clooyzi-web-solutions/config"
	appmodel "github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	apprepository "github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/logger"
	infraPostgres "github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/postgres"
	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email (env ADMIN_EMAIL)")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (env ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.MustInit(logger.FromApp(cfg.App)).Named("setup-admin")
	defer func() { _ = logger.Sync() }()

	if cfg.Storage.Driver != "postgres" {
		log.Fatal("setup-admin needs storage.driver=postgres", zap.String("driver", cfg.Storage.Driver))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := infraPostgres.NewGorm(cfg.Postgres, false)
	if err != nil {
		log.Fatal("Failed to open GORM connection", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to access underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := infraPostgres.AutoMigrate(ctx, db, &appmodel.AdminUser{}); err != nil {
		log.Fatal("Failed to migrate admin table", zap.Error(err))
	}

	auth := service.NewAuthService(service.AuthDeps{
		Admins:     apprepository.NewAdminUserRepository(db),
		Secret:     []byte(cfg.Auth.JWTSecret),
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     log,
	})

	created, err := auth.EnsureAdmin(ctx, *email, *password)
	if err != nil {
		log.Fatal("Failed to create admin", zap.String("reason", service.Message(err, err.Error())), zap.Error(err))
	}
	if !created {
		log.Info("Admin already exists", zap.String("email", *email))
		return
	}
	log.Info("Admin created", zap.String("email", *email))
}
