package service

import (
	"context"
	"strings"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/repository"
)

// Report types accepted by AnalyticsService.Report.
const (
	ReportOverview   = "overview"
	ReportPublishers = "publishers"
	ReportCategories = "categories"
	ReportAds        = "ads"
)

// PublisherReport counts clicks per requesting site.
type PublisherReport struct {
	PublisherStats map[string]int64 `json:"publisherStats"`
}

// CategoryReport counts clicks per category of the clicked advertisement.
type CategoryReport struct {
	CategoryStats map[string]int64 `json:"categoryStats"`
}

// AdPerformanceReport lists click counts per advertisement.
type AdPerformanceReport struct {
	AdPerformance []model.AdPerformance `json:"adPerformance"`
}

// AnalyticsService computes click aggregates on demand.
type AnalyticsService interface {
	Report(ctx context.Context, reportType string) (any, error)
}

type analyticsService struct {
	repo repository.AnalyticsRepository
}

func NewAnalyticsService(repo repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{repo: repo}
}

// Report returns the aggregate named by reportType; an empty type means overview.
func (s *analyticsService) Report(ctx context.Context, reportType string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(reportType)) {
	case "", ReportOverview:
		overview, err := s.repo.Overview(ctx)
		if err != nil {
			return nil, storeError("Failed to compute overview", err)
		}
		return overview, nil
	case ReportPublishers:
		stats, err := s.repo.ClicksByPublisher(ctx)
		if err != nil {
			return nil, storeError("Failed to compute publisher stats", err)
		}
		return PublisherReport{PublisherStats: nonNil(stats)}, nil
	case ReportCategories:
		stats, err := s.repo.ClicksByCategory(ctx)
		if err != nil {
			return nil, storeError("Failed to compute category stats", err)
		}
		return CategoryReport{CategoryStats: nonNil(stats)}, nil
	case ReportAds:
		perf, err := s.repo.AdPerformance(ctx)
		if err != nil {
			return nil, storeError("Failed to compute ad performance", err)
		}
		if perf == nil {
			perf = []model.AdPerformance{}
		}
		return AdPerformanceReport{AdPerformance: perf}, nil
	default:
		return nil, validationError("Invalid report type")
	}
}

func nonNil(m map[string]int64) map[string]int64 {
	if m == nil {
		return map[string]int64{}
	}
	return m
}
