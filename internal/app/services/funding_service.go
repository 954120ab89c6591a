package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// FundingService defines the funding round operations
type FundingService interface {
	OpenRound(ctx context.Context, actorID int64, req *dto.OpenRoundRequest) (*models.FundingRound, error)
	GetHistory(ctx context.Context, startupID int64) (*dto.FundingHistoryResponse, error)
	AuditLedger(ctx context.Context) (*models.LedgerAuditReport, error)
}

type fundingServiceImpl struct {
	rounds   FundingRoundStore
	startups StartupLookup
	authz    Authorizer
	now      func() time.Time
	logger   zerolog.Logger
}

// NewFundingService creates a new funding service instance
func NewFundingService(rounds FundingRoundStore, startups StartupLookup, authz Authorizer, logger zerolog.Logger) FundingService {
	return &fundingServiceImpl{
		rounds:   rounds,
		startups: startups,
		authz:    authz,
		now:      time.Now,
		logger:   logger,
	}
}

var roundDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseRoundDate(s string) (time.Time, bool) {
	for _, layout := range roundDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// OpenRound validates the request, checks the actor founded the startup and
// persists the round under the next sequence number.
func (s *fundingServiceImpl) OpenRound(ctx context.Context, actorID int64, req *dto.OpenRoundRequest) (*models.FundingRound, error) {
	if req == nil || req.StartupID == nil || *req.StartupID <= 0 {
		return nil, apperrors.NewValidationError("startup_id is required")
	}
	if req.Amount == nil {
		return nil, apperrors.NewValidationError("amount is required")
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be a positive number")
	}
	if !models.FitsAmount(*req.Amount) {
		return nil, apperrors.NewValidationError(errAmountPrecision)
	}

	date := s.now().UTC()
	if d := strings.TrimSpace(req.Date); d != "" {
		parsed, ok := parseRoundDate(d)
		if !ok {
			return nil, apperrors.NewValidationError("date must be YYYY-MM-DD or RFC3339")
		}
		date = parsed
	}

	if err := s.authz.ValidateOwnership(ctx, actorID, *req.StartupID); err != nil {
		return nil, err
	}

	round, err := s.rounds.Open(ctx, models.FundingRound{
		StartupID: *req.StartupID,
		Label:     strings.TrimSpace(req.Label),
		Amount:    *req.Amount,
		Date:      date,
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnexpected {
			s.logger.Error().Err(err).Int64("startupID", *req.StartupID).Msg("Failed to open funding round")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("startupID", round.StartupID).
		Int("roundSeq", round.RoundSeq).
		Str("amount", round.Amount.String()).
		Int64("actorID", actorID).
		Msg("Funding round opened")
	return round, nil
}

// GetHistory returns every round of the startup with freshly computed aggregates
func (s *fundingServiceImpl) GetHistory(ctx context.Context, startupID int64) (*dto.FundingHistoryResponse, error) {
	exists, err := s.startups.Exists(ctx, startupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewCustomError(apperrors.ErrStartupNotFound, "startup not found")
	}

	rounds, err := s.rounds.History(ctx, startupID)
	if err != nil {
		s.logger.Error().Err(err).Int64("startupID", startupID).Msg("Failed to load funding history")
		return nil, err
	}
	return &dto.FundingHistoryResponse{StartupID: startupID, Rounds: rounds}, nil
}

// AuditLedger runs a read-only consistency pass over all rounds
func (s *fundingServiceImpl) AuditLedger(ctx context.Context) (*models.LedgerAuditReport, error) {
	report, err := s.rounds.Audit(ctx)
	if err != nil {
		return nil, err
	}

	for _, gap := range report.SequenceGaps {
		s.logger.Warn().
			Int64("startupID", gap.StartupID).
			Int("roundCount", gap.RoundCount).
			Int("maxSeq", gap.MaxSeq).
			Msg("Funding round sequence is not contiguous")
	}
	return report, nil
}
