package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// SequenceAllocator hands out per-startup funding round numbers.
//
// Next must run inside the transaction that inserts the round. It takes a row
// lock on the startup, which serialises every allocation for that startup until
// the transaction ends, so two concurrent callers can never observe the same
// MAX(round_seq). Allocations for different startups do not contend.
type SequenceAllocator struct{}

// NewSequenceAllocator creates a new SequenceAllocator
func NewSequenceAllocator() *SequenceAllocator {
	return &SequenceAllocator{}
}

// Next locks the startup row and returns MAX(round_seq)+1, starting at 1.
func (a *SequenceAllocator) Next(ctx context.Context, tx pgx.Tx, startupID int64) (int, error) {
	var locked int64
	err := tx.QueryRow(ctx,
		`SELECT startup_id FROM startups WHERE startup_id = $1 FOR NO KEY UPDATE`,
		startupID,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewCustomError(apperrors.ErrStartupNotFound, "startup not found")
		}
		return 0, fmt.Errorf("error locking startup %d: %w", startupID, err)
	}

	var maxSeq int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(round_seq), 0) FROM funding_rounds WHERE startup_id = $1`,
		startupID,
	).Scan(&maxSeq)
	if err != nil {
		return 0, fmt.Errorf("error reading round sequence: %w", err)
	}

	return maxSeq + 1, nil
}
