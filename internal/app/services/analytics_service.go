package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	"golang.org/x/sync/errgroup"
)

// DefaultLeaderboardSize is used when no size is configured
const DefaultLeaderboardSize = 5

// AnalyticsService defines read-only rollups over the ledger and community data
type AnalyticsService interface {
	StartupAnalytics(ctx context.Context, startupID int64) (*models.StartupAnalytics, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
}

type analyticsServiceImpl struct {
	store           AnalyticsStore
	startups        StartupLookup
	leaderboardSize int
	logger          zerolog.Logger
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService(store AnalyticsStore, startups StartupLookup, leaderboardSize int, logger zerolog.Logger) AnalyticsService {
	if leaderboardSize <= 0 {
		leaderboardSize = DefaultLeaderboardSize
	}
	return &analyticsServiceImpl{
		store:           store,
		startups:        startups,
		leaderboardSize: leaderboardSize,
		logger:          logger,
	}
}

// StartupAnalytics gathers funding, likes and rating figures concurrently
func (s *analyticsServiceImpl) StartupAnalytics(ctx context.Context, startupID int64) (*models.StartupAnalytics, error) {
	exists, err := s.startups.Exists(ctx, startupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewCustomError(apperrors.ErrStartupNotFound, "startup not found")
	}

	out := &models.StartupAnalytics{StartupID: startupID}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		out.TotalRaised, out.RoundCount, out.InvestorCount, err = s.store.FundingTotals(gctx, startupID)
		return err
	})
	g.Go(func() error {
		var err error
		out.Likes, err = s.store.Likes(gctx, startupID)
		return err
	})
	g.Go(func() error {
		var err error
		out.RatingCount, out.RatingAverage, err = s.store.RatingStats(gctx, startupID)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int64("startupID", startupID).Msg("Failed to compute startup analytics")
		return nil, err
	}
	return out, nil
}

// Leaderboard returns the top startups by committed capital
func (s *analyticsServiceImpl) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	entries, err := s.store.Leaderboard(ctx, s.leaderboardSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute leaderboard")
		return nil, err
	}
	return entries, nil
}
