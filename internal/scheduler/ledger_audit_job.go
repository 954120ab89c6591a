package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models"
)

// LedgerAuditor runs a read-only consistency pass over the funding ledger
type LedgerAuditor interface {
	AuditLedger(ctx context.Context) (*models.LedgerAuditReport, error)
}

// LedgerAuditJob periodically reports sequence gaps and met targets
type LedgerAuditJob struct {
	auditor  LedgerAuditor
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewLedgerAuditJob creates the audit job
func NewLedgerAuditJob(auditor LedgerAuditor, interval time.Duration, logger zerolog.Logger) *LedgerAuditJob {
	timeout := interval
	if timeout > time.Minute {
		timeout = time.Minute
	}
	return &LedgerAuditJob{
		auditor:  auditor,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

func (j *LedgerAuditJob) Name() string { return "ledger_audit" }

func (j *LedgerAuditJob) Definition() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute runs one audit pass and logs its summary
func (j *LedgerAuditJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	report, err := j.auditor.AuditLedger(ctx)
	if err != nil {
		j.logger.Error().Err(err).Msg("Ledger audit failed")
		return
	}

	event := j.logger.Info()
	if len(report.SequenceGaps) > 0 {
		event = j.logger.Warn()
	}
	event.
		Int("startupsChecked", report.StartupsChecked).
		Int("sequenceGaps", len(report.SequenceGaps)).
		Int("roundsTargetMet", report.RoundsTargetMet).
		Str("totalCommitted", report.TotalCommitted.StringFixed(2)).
		Msg("Ledger audit completed")
}
