package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/model"
	"github.com/jackc/pgx/v5"
)

const (
	clicksTable = "ad_clicks"
	adsTable    = "advertisements"
)

// AnalyticsRepository computes click aggregates on demand.
type AnalyticsRepository interface {
	Overview(ctx context.Context) (*model.Overview, error)
	ClicksByPublisher(ctx context.Context) (map[string]int64, error)
	ClicksByCategory(ctx context.Context) (map[string]int64, error)
	AdPerformance(ctx context.Context) ([]model.AdPerformance, error)
}

// Querier is the read subset of pgxpool.Pool used for aggregates.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type analyticsRepository struct {
	db   Querier
	psql sq.StatementBuilderType
}

// NewAnalyticsRepository returns a pgx-backed AnalyticsRepository.
func NewAnalyticsRepository(db Querier) AnalyticsRepository {
	return &analyticsRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *analyticsRepository) Overview(ctx context.Context) (*model.Overview, error) {
	var (
		overview model.Overview
		err      error
	)

	if overview.TotalClicks, err = r.count(ctx, r.psql.Select("COUNT(*)").From(clicksTable)); err != nil {
		return nil, fmt.Errorf("count clicks: %w", err)
	}
	if overview.TotalAds, err = r.count(ctx, r.psql.Select("COUNT(*)").From(adsTable)); err != nil {
		return nil, fmt.Errorf("count ads: %w", err)
	}
	if overview.ActiveAds, err = r.count(ctx, r.psql.Select("COUNT(*)").From(adsTable).Where(sq.Eq{"is_active": true})); err != nil {
		return nil, fmt.Errorf("count active ads: %w", err)
	}

	return &overview, nil
}

func (r *analyticsRepository) ClicksByPublisher(ctx context.Context) (map[string]int64, error) {
	query := r.psql.
		Select(fmt.Sprintf("COALESCE(NULLIF(TRIM(publisher_site), ''), '%s') AS site", model.UnknownPublisher), "COUNT(*)").
		From(clicksTable).
		GroupBy("site")

	return r.groupCount(ctx, query)
}

// ClicksByCategory joins each click to its advertisement; clicks on deleted ads drop out of the join.
func (r *analyticsRepository) ClicksByCategory(ctx context.Context) (map[string]int64, error) {
	query := r.psql.
		Select("a.category", "COUNT(*)").
		From(clicksTable + " c").
		Join(adsTable + " a ON a.id = c.ad_id").
		GroupBy("a.category")

	return r.groupCount(ctx, query)
}

func (r *analyticsRepository) AdPerformance(ctx context.Context) ([]model.AdPerformance, error) {
	sqlQuery, args, err := r.psql.
		Select("a.id", "a.title", "a.category", "COUNT(c.id) AS clicks").
		From(clicksTable + " c").
		Join(adsTable + " a ON a.id = c.ad_id").
		GroupBy("a.id", "a.title", "a.category").
		OrderBy("clicks DESC", "a.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ad performance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query ad performance: %w", err)
	}
	defer rows.Close()

	result := make([]model.AdPerformance, 0)
	for rows.Next() {
		var (
			id       int64
			category string
			item     model.AdPerformance
		)
		if err := rows.Scan(&id, &item.Title, &category, &item.Clicks); err != nil {
			return nil, fmt.Errorf("scan ad performance: %w", err)
		}
		item.AdID = uint(id)
		item.Category = model.Category(category)
		result = append(result, item)
	}

	return result, rows.Err()
}

func (r *analyticsRepository) count(ctx context.Context, query sq.SelectBuilder) (int64, error) {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := r.db.QueryRow(ctx, sqlQuery, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *analyticsRepository) groupCount(ctx context.Context, query sq.SelectBuilder) (map[string]int64, error) {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build aggregate query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query aggregate: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var (
			key   string
			count int64
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		result[key] = count
	}

	return result, rows.Err()
}
