package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FundingRound is one sequence-numbered round of a startup. Rounds are immutable once created.
type FundingRound struct {
	StartupID int64           `json:"startup_id" db:"startup_id"`
	RoundSeq  int             `json:"round_seq" db:"round_seq"`
	Label     string          `json:"label" db:"label"`
	Amount    decimal.Decimal `json:"amount" db:"amount"` // target
	Date      time.Time       `json:"date" db:"date"`
}

// Storage scale of money and equity columns.
const (
	AmountScale = 2
	EquityScale = 4
)

var (
	amountLimit = decimal.New(1, 16) // NUMERIC(18,2)
	equityLimit = decimal.New(1, 5)  // NUMERIC(9,4)
)

// FitsAmount reports whether d can be stored as an amount without rounding or overflow.
func FitsAmount(d decimal.Decimal) bool {
	return fitsColumn(d, AmountScale, amountLimit)
}

// FitsEquity reports whether d can be stored as an equity share without rounding or overflow.
func FitsEquity(d decimal.Decimal) bool {
	return fitsColumn(d, EquityScale, equityLimit)
}

func fitsColumn(d decimal.Decimal, scale int32, limit decimal.Decimal) bool {
	return d.Equal(d.Round(scale)) && d.Abs().LessThan(limit)
}

// DefaultRoundLabel is the label given to a round opened without one.
func DefaultRoundLabel(seq int) string {
	return fmt.Sprintf("Round %d", seq)
}

// RoundSummary is a funding round with its aggregate investment figures.
type RoundSummary struct {
	FundingRound
	RaisedAmount  decimal.Decimal `json:"raised_amount"`
	InvestorCount int             `json:"investor_count"`
	TargetMet     bool            `json:"target_met"`
}

// ComputeTargetMet applies the target rule: a round with no investors never meets its target.
func ComputeTargetMet(target, raised decimal.Decimal, investorCount int) bool {
	return investorCount > 0 && raised.GreaterThanOrEqual(target)
}

// Investment is an investor's cumulative position in one round.
type Investment struct {
	InvestorID  int64           `json:"investor_id" db:"investor_id"`
	StartupID   int64           `json:"startup_id" db:"startup_id"`
	RoundSeq    int             `json:"round_seq" db:"round_seq"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	EquityShare decimal.Decimal `json:"equity_share" db:"equity_share"`
}

// PortfolioEntry is an investment joined with its startup and round.
type PortfolioEntry struct {
	StartupID     int64           `json:"startup_id"`
	StartupName   string          `json:"startup_name"`
	LogoURL       *string         `json:"logo_url,omitempty"`
	StartupStatus StartupStatus   `json:"status"`
	RoundSeq      int             `json:"round_seq"`
	RoundLabel    string          `json:"round_label"`
	RoundDate     time.Time       `json:"round_date"`
	Amount        decimal.Decimal `json:"amount"`
	EquityShare   decimal.Decimal `json:"equity_share"`
}

// LedgerAuditReport is the result of one consistency pass over the ledger.
type LedgerAuditReport struct {
	CheckedAt       time.Time
	StartupsChecked int
	SequenceGaps    []SequenceGap
	RoundsTargetMet int
	TotalCommitted  decimal.Decimal
}

// SequenceGap marks a startup whose round numbers are not exactly 1..N.
type SequenceGap struct {
	StartupID  int64
	RoundCount int
	MaxSeq     int
}
