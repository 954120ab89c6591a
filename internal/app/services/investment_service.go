package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// InvestmentService defines the investment operations
type InvestmentService interface {
	Invest(ctx context.Context, actorID int64, req *dto.InvestRequest) (*dto.InvestmentConfirmation, error)
	GetPortfolio(ctx context.Context, investorID int64) ([]models.PortfolioEntry, error)
}

type investmentServiceImpl struct {
	investments InvestmentStore
	authz       Authorizer
	logger      zerolog.Logger
}

// NewInvestmentService creates a new investment service instance
func NewInvestmentService(investments InvestmentStore, authz Authorizer, logger zerolog.Logger) InvestmentService {
	return &investmentServiceImpl{
		investments: investments,
		authz:       authz,
		logger:      logger,
	}
}

const (
	errAmountPrecision = "amount must have at most 2 decimal places and be below 10^16"
	errEquityPrecision = "equity_share must have at most 4 decimal places and be below 10^5"
)

func validateInvestRequest(req *dto.InvestRequest) error {
	if req == nil || req.StartupID == nil || *req.StartupID <= 0 {
		return apperrors.NewValidationError("startup_id is required")
	}
	if req.RoundSeq == nil || *req.RoundSeq <= 0 {
		return apperrors.NewValidationError("round_seq is required")
	}
	if req.Amount == nil {
		return apperrors.NewValidationError("amount is required")
	}
	if !req.Amount.IsPositive() {
		return apperrors.NewValidationError("amount must be a positive number")
	}
	if !models.FitsAmount(*req.Amount) {
		return apperrors.NewValidationError(errAmountPrecision)
	}
	if req.EquityShare != nil {
		if req.EquityShare.IsNegative() {
			return apperrors.NewValidationError("equity_share cannot be negative")
		}
		if !models.FitsEquity(*req.EquityShare) {
			return apperrors.NewValidationError(errEquityPrecision)
		}
	}
	return nil
}

// Invest records a commitment. Checks run in a fixed order and the first
// failure wins: request shape, investor membership, then round existence
// (enforced by the store inside the write transaction).
func (s *investmentServiceImpl) Invest(ctx context.Context, actorID int64, req *dto.InvestRequest) (*dto.InvestmentConfirmation, error) {
	if err := validateInvestRequest(req); err != nil {
		return nil, err
	}

	if err := s.authz.ValidateRole(ctx, actorID, models.RoleInvestor); err != nil {
		return nil, err
	}

	equity := decimal.Zero
	if req.EquityShare != nil {
		equity = *req.EquityShare
	}

	total, err := s.investments.Record(ctx, models.Investment{
		InvestorID:  actorID,
		StartupID:   *req.StartupID,
		RoundSeq:    *req.RoundSeq,
		Amount:      *req.Amount,
		EquityShare: equity,
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnexpected {
			s.logger.Error().Err(err).
				Int64("investorID", actorID).
				Int64("startupID", *req.StartupID).
				Int("roundSeq", *req.RoundSeq).
				Msg("Failed to record investment")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("investorID", actorID).
		Int64("startupID", total.StartupID).
		Int("roundSeq", total.RoundSeq).
		Str("amount", req.Amount.String()).
		Str("totalAmount", total.Amount.String()).
		Msg("Investment recorded")

	return &dto.InvestmentConfirmation{
		InvestorID:       actorID,
		StartupID:        total.StartupID,
		RoundSeq:         total.RoundSeq,
		Amount:           *req.Amount,
		EquityShare:      equity,
		TotalAmount:      total.Amount,
		TotalEquityShare: total.EquityShare,
	}, nil
}

// GetPortfolio lists the investor's positions
func (s *investmentServiceImpl) GetPortfolio(ctx context.Context, investorID int64) ([]models.PortfolioEntry, error) {
	entries, err := s.investments.Portfolio(ctx, investorID)
	if err != nil {
		s.logger.Error().Err(err).Int64("investorID", investorID).Msg("Failed to load portfolio")
		return nil, err
	}
	return entries, nil
}
