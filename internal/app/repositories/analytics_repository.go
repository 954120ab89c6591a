package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/db"
)

// AnalyticsRepository runs read-only rollups over persisted ledger and community state
type AnalyticsRepository struct {
	db *db.PostgresDB
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(database *db.PostgresDB) *AnalyticsRepository {
	return &AnalyticsRepository{db: database}
}

// FundingTotals returns the capital committed to the startup, its round count and distinct investors
func (r *AnalyticsRepository) FundingTotals(ctx context.Context, startupID int64) (decimal.Decimal, int, int, error) {
	var raised decimal.Decimal
	var rounds, investors int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COALESCE((SELECT SUM(amount) FROM investments WHERE startup_id = $1), 0),
		       (SELECT COUNT(*) FROM funding_rounds WHERE startup_id = $1),
		       (SELECT COUNT(DISTINCT investor_id) FROM investments WHERE startup_id = $1)`,
		startupID,
	).Scan(&raised, &rounds, &investors)
	if err != nil {
		return decimal.Zero, 0, 0, fmt.Errorf("error querying funding totals: %w", err)
	}
	return raised, rounds, investors, nil
}

// Likes returns the number of users who favorited the startup
func (r *AnalyticsRepository) Likes(ctx context.Context, startupID int64) (int, error) {
	var n int
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM favorites WHERE startup_id = $1`, startupID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("error querying likes: %w", err)
	}
	return n, nil
}

// RatingStats returns the rating count and the average score rounded to two places
func (r *AnalyticsRepository) RatingStats(ctx context.Context, startupID int64) (int, decimal.Decimal, error) {
	var n int
	var avg decimal.Decimal
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(ROUND(AVG(score)::numeric, 2), 0)
		FROM ratings WHERE startup_id = $1`, startupID,
	).Scan(&n, &avg)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("error querying rating stats: %w", err)
	}
	return n, avg, nil
}

// Leaderboard ranks startups by total committed capital. Startups with nothing raised are omitted.
func (r *AnalyticsRepository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT s.startup_id, s.name, s.logo_url, s.sector, s.status, SUM(i.amount) AS total_raised
		FROM startups s
		JOIN investments i ON i.startup_id = s.startup_id
		GROUP BY s.startup_id, s.name, s.logo_url, s.sector, s.status
		ORDER BY total_raised DESC, s.startup_id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying leaderboard: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LeaderboardEntry, error) {
		var e models.LeaderboardEntry
		err := row.Scan(&e.StartupID, &e.Name, &e.LogoURL, &e.Sector, &e.Status, &e.TotalRaised)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning leaderboard: %w", err)
	}
	return entries, nil
}
