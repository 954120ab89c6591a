package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/db"
	"github.com/yigit/launchpad/internal/pkg/logger"
)

// FundingRoundRepository persists funding rounds and computes their aggregates
type FundingRoundRepository struct {
	db        *db.PostgresDB
	allocator *SequenceAllocator
}

// NewFundingRoundRepository creates a new FundingRoundRepository
func NewFundingRoundRepository(database *db.PostgresDB, allocator *SequenceAllocator) *FundingRoundRepository {
	return &FundingRoundRepository{
		db:        database,
		allocator: allocator,
	}
}

// Open allocates the next round number for round.StartupID and inserts the round
// in one transaction. An empty label becomes "Round N".
func (r *FundingRoundRepository) Open(ctx context.Context, round models.FundingRound) (*models.FundingRound, error) {
	var created models.FundingRound

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		seq, err := r.allocator.Next(ctx, tx, round.StartupID)
		if err != nil {
			return err
		}

		label := round.Label
		if label == "" {
			label = models.DefaultRoundLabel(seq)
		}

		return tx.QueryRow(ctx, `
			INSERT INTO funding_rounds (startup_id, round_seq, label, amount, date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING startup_id, round_seq, label, amount, date`,
			round.StartupID, seq, label, round.Amount, round.Date,
		).Scan(&created.StartupID, &created.RoundSeq, &created.Label, &created.Amount, &created.Date)
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Int64("startupID", created.StartupID).Int("roundSeq", created.RoundSeq).Msg("Funding round inserted")
	return &created, nil
}

// History returns every round of the startup in ascending round order with its
// raised amount and distinct investor count, recomputed on every call.
func (r *FundingRoundRepository) History(ctx context.Context, startupID int64) ([]models.RoundSummary, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT fr.startup_id, fr.round_seq, fr.label, fr.amount, fr.date,
		       COALESCE(SUM(i.amount), 0) AS raised_amount,
		       COUNT(DISTINCT i.investor_id) AS investor_count
		FROM funding_rounds fr
		LEFT JOIN investments i
		       ON i.startup_id = fr.startup_id AND i.round_seq = fr.round_seq
		WHERE fr.startup_id = $1
		GROUP BY fr.startup_id, fr.round_seq, fr.label, fr.amount, fr.date
		ORDER BY fr.round_seq ASC`, startupID)
	if err != nil {
		return nil, fmt.Errorf("error querying funding history: %w", err)
	}
	defer rows.Close()

	history := []models.RoundSummary{}
	for rows.Next() {
		var s models.RoundSummary
		if err := rows.Scan(
			&s.StartupID, &s.RoundSeq, &s.Label, &s.Amount, &s.Date,
			&s.RaisedAmount, &s.InvestorCount,
		); err != nil {
			return nil, fmt.Errorf("error scanning funding history: %w", err)
		}
		s.TargetMet = models.ComputeTargetMet(s.Amount, s.RaisedAmount, s.InvestorCount)
		history = append(history, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating funding history: %w", err)
	}

	return history, nil
}

// Exists reports whether the given round exists
func (r *FundingRoundRepository) Exists(ctx context.Context, startupID int64, roundSeq int) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM funding_rounds WHERE startup_id = $1 AND round_seq = $2)`,
		startupID, roundSeq,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking funding round: %w", err)
	}
	return exists, nil
}

// Audit gathers a read-only consistency snapshot of the whole ledger.
func (r *FundingRoundRepository) Audit(ctx context.Context) (*models.LedgerAuditReport, error) {
	report := &models.LedgerAuditReport{CheckedAt: time.Now().UTC()}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT startup_id, COUNT(*) AS round_count, MAX(round_seq) AS max_seq, MIN(round_seq) AS min_seq
		FROM funding_rounds
		GROUP BY startup_id
		ORDER BY startup_id`)
	if err != nil {
		return nil, fmt.Errorf("error auditing round sequences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var gap models.SequenceGap
		var minSeq int
		if err := rows.Scan(&gap.StartupID, &gap.RoundCount, &gap.MaxSeq, &minSeq); err != nil {
			return nil, fmt.Errorf("error scanning round sequences: %w", err)
		}
		report.StartupsChecked++
		if minSeq != 1 || gap.MaxSeq != gap.RoundCount {
			report.SequenceGaps = append(report.SequenceGaps, gap)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating round sequences: %w", err)
	}

	var total decimal.Decimal
	err = r.db.Pool.QueryRow(ctx, `
		WITH per_round AS (
			SELECT fr.amount AS target, COALESCE(SUM(i.amount), 0) AS raised, COUNT(i.investor_id) AS investors
			FROM funding_rounds fr
			LEFT JOIN investments i ON i.startup_id = fr.startup_id AND i.round_seq = fr.round_seq
			GROUP BY fr.startup_id, fr.round_seq, fr.amount
		)
		SELECT COUNT(*) FILTER (WHERE investors > 0 AND raised >= target),
		       COALESCE(SUM(raised), 0)
		FROM per_round`).Scan(&report.RoundsTargetMet, &total)
	if err != nil {
		return nil, fmt.Errorf("error auditing round totals: %w", err)
	}
	report.TotalCommitted = total

	return report, nil
}
