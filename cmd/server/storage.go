package main

import (
	"context"
	"fmt"

	"github.com/clooyzi-tech/clooyzi-web-solutions/config"
	appmodel "github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	apprepository "github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository/memory"
	appserver "github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/server"
	inthttp "github.com/clooyzi-tech/clooyzi-web-solutions/internal/http/handler"
	infraPostgres "github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/postgres"
	"go.uber.org/zap"
)

// storage is the set of repositories chosen by storage.driver.
type storage struct {
	ads          apprepository.AdvertisementRepository
	clicks       apprepository.ClickEventRepository
	testimonials apprepository.TestimonialRepository
	works        apprepository.WorkRepository
	admins       apprepository.AdminUserRepository
	analytics    apprepository.AnalyticsRepository
	checks       []inthttp.Check
	closers      []func()
}

func (s *storage) apply(deps *appserver.Dependencies) {
	deps.Ads = s.ads
	deps.Testimonials = s.testimonials
	deps.Works = s.works
	deps.Admins = s.admins
	deps.Analytics = s.analytics
	deps.Checks = append(deps.Checks, s.checks...)
}

// Close releases connections in reverse order of opening.
func (s *storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn("Using in-memory storage, data is lost on restart")
		store := memory.New()
		return &storage{
			ads:          store.Advertisements(),
			clicks:       store.Clicks(),
			testimonials: store.Testimonials(),
			works:        store.Works(),
			admins:       store.Admins(),
			analytics:    store.Analytics(),
		}, nil
	}

	st := &storage{}

	gormDB, err := infraPostgres.NewGorm(cfg.Postgres, cfg.App.IsDevelopment())
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("access underlying sql db: %w", err)
	}
	st.closers = append(st.closers, func() { _ = sqlDB.Close() })

	if err := infraPostgres.AutoMigrate(ctx, gormDB,
		&appmodel.Advertisement{},
		&appmodel.ClickEvent{},
		&appmodel.Testimonial{},
		&appmodel.Work{},
		&appmodel.AdminUser{},
	); err != nil {
		st.Close()
		return nil, err
	}

	pool, err := infraPostgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		st.Close()
		return nil, err
	}
	st.closers = append(st.closers, pool.Close)

	log.Info("Connected to Postgres successfully",
		zap.String("host", cfg.Postgres.Host),
		zap.Int("port", cfg.Postgres.Port),
		zap.String("database", cfg.Postgres.Database),
	)

	st.ads = apprepository.NewAdvertisementRepository(gormDB)
	st.clicks = apprepository.NewClickEventRepository(gormDB)
	st.testimonials = apprepository.NewTestimonialRepository(gormDB)
	st.works = apprepository.NewWorkRepository(gormDB)
	st.admins = apprepository.NewAdminUserRepository(gormDB)
	st.analytics = apprepository.NewAnalyticsRepository(pool)
	st.checks = []inthttp.Check{{Name: "postgres", Probe: pool.Ping}}
	return st, nil
}
