package dto

import (
	"github.com/shopspring/decimal"
	"github.com/yigit/launchpad/internal/app/models"
)

// OpenRoundRequest opens the next funding round of a startup.
// Pointer fields distinguish an omitted value from a zero one.
type OpenRoundRequest struct {
	StartupID *int64           `json:"startup_id"`
	Amount    *decimal.Decimal `json:"amount"`
	Date      string           `json:"date,omitempty" example:"2025-03-01"`
	Label     string           `json:"label,omitempty" binding:"omitempty,max=120"`
}

// InvestRequest commits capital to an existing funding round
type InvestRequest struct {
	StartupID   *int64           `json:"startup_id"`
	RoundSeq    *int             `json:"round_seq"`
	Amount      *decimal.Decimal `json:"amount"`
	EquityShare *decimal.Decimal `json:"equity_share,omitempty"`
}

// InvestmentConfirmation echoes the amounts committed by this call and
// reports the investor's resulting position in the round.
type InvestmentConfirmation struct {
	InvestorID       int64           `json:"investor_id"`
	StartupID        int64           `json:"startup_id"`
	RoundSeq         int             `json:"round_seq"`
	Amount           decimal.Decimal `json:"amount"`
	EquityShare      decimal.Decimal `json:"equity_share"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TotalEquityShare decimal.Decimal `json:"total_equity_share"`
}

// FundingHistoryResponse lists a startup's rounds with their aggregates
type FundingHistoryResponse struct {
	StartupID int64                 `json:"startup_id"`
	Rounds    []models.RoundSummary `json:"rounds"`
}
