package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/db"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	"github.com/yigit/launchpad/internal/pkg/dberrors"
)

// InvestmentRepository records investor commitments
type InvestmentRepository struct {
	db *db.PostgresDB
}

// NewInvestmentRepository creates a new InvestmentRepository
func NewInvestmentRepository(database *db.PostgresDB) *InvestmentRepository {
	return &InvestmentRepository{db: database}
}

func roundNotFound() error {
	return apperrors.NewCustomError(apperrors.ErrRoundNotFound, "funding round not found")
}

// Record adds inv.Amount and inv.EquityShare to the investor's position in the round,
// creating the position on first commit. It returns the cumulative position.
// The round check and the upsert share one transaction; the upsert itself is a
// single statement so concurrent commits to the same key never lose an update.
func (r *InvestmentRepository) Record(ctx context.Context, inv models.Investment) (*models.Investment, error) {
	total := models.Investment{
		InvestorID: inv.InvestorID,
		StartupID:  inv.StartupID,
		RoundSeq:   inv.RoundSeq,
	}

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var one int
		err := tx.QueryRow(ctx,
			`SELECT 1 FROM funding_rounds WHERE startup_id = $1 AND round_seq = $2 FOR KEY SHARE`,
			inv.StartupID, inv.RoundSeq,
		).Scan(&one)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return roundNotFound()
			}
			return fmt.Errorf("error checking funding round: %w", err)
		}

		return tx.QueryRow(ctx, `
			INSERT INTO investments (investor_id, startup_id, round_seq, amount, equity_share)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (investor_id, startup_id, round_seq) DO UPDATE
			SET amount       = investments.amount + EXCLUDED.amount,
			    equity_share = investments.equity_share + EXCLUDED.equity_share,
			    updated_at   = NOW()
			RETURNING amount, equity_share`,
			inv.InvestorID, inv.StartupID, inv.RoundSeq, inv.Amount, inv.EquityShare,
		).Scan(&total.Amount, &total.EquityShare)
	})
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, roundNotFound()
		}
		if dberrors.IsNumericOverflow(err) {
			return nil, apperrors.NewValidationError("investment total exceeds the largest storable amount")
		}
		return nil, err
	}

	return &total, nil
}

// Portfolio lists the investor's positions, newest round date first
func (r *InvestmentRepository) Portfolio(ctx context.Context, investorID int64) ([]models.PortfolioEntry, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT s.startup_id, s.name, s.logo_url, s.status,
		       fr.round_seq, fr.label, fr.date,
		       i.amount, i.equity_share
		FROM investments i
		JOIN startups s ON s.startup_id = i.startup_id
		JOIN funding_rounds fr ON fr.startup_id = i.startup_id AND fr.round_seq = i.round_seq
		WHERE i.investor_id = $1
		ORDER BY fr.date DESC, fr.round_seq DESC, s.startup_id`, investorID)
	if err != nil {
		return nil, fmt.Errorf("error querying portfolio: %w", err)
	}
	defer rows.Close()

	entries := []models.PortfolioEntry{}
	for rows.Next() {
		var e models.PortfolioEntry
		if err := rows.Scan(
			&e.StartupID, &e.StartupName, &e.LogoURL, &e.StartupStatus,
			&e.RoundSeq, &e.RoundLabel, &e.RoundDate,
			&e.Amount, &e.EquityShare,
		); err != nil {
			return nil, fmt.Errorf("error scanning portfolio: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio: %w", err)
	}

	return entries, nil
}
