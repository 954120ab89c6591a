package scheduler

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/launchpad/internal/app/models"
)

type stubAuditor struct {
	calls  atomic.Int32
	report *models.LedgerAuditReport
	err    error
}

func (s *stubAuditor) AuditLedger(ctx context.Context) (*models.LedgerAuditReport, error) {
	s.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("audit context has no deadline")
	}
	return s.report, s.err
}

func TestLedgerAuditJobLogsGaps(t *testing.T) {
	var buf bytes.Buffer
	auditor := &stubAuditor{report: &models.LedgerAuditReport{
		StartupsChecked: 3,
		SequenceGaps:    []models.SequenceGap{{StartupID: 7, RoundCount: 2, MaxSeq: 3}},
		RoundsTargetMet: 1,
		TotalCommitted:  decimal.RequireFromString("110000"),
	}}
	job := NewLedgerAuditJob(auditor, time.Minute, zerolog.New(&buf))

	job.Execute()

	assert.EqualValues(t, 1, auditor.calls.Load())
	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"sequenceGaps":1`)
	assert.Contains(t, out, `"totalCommitted":"110000.00"`)
}

func TestLedgerAuditJobLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	auditor := &stubAuditor{err: errors.New("connection refused")}
	job := NewLedgerAuditJob(auditor, time.Minute, zerolog.New(&buf))

	job.Execute()

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "connection refused")
}

func TestManagerRunsRegisteredJob(t *testing.T) {
	auditor := &stubAuditor{report: &models.LedgerAuditReport{TotalCommitted: decimal.Zero}}
	job := NewLedgerAuditJob(auditor, 50*time.Millisecond, zerolog.Nop())

	m, err := NewManager(zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Register(job))
	assert.Equal(t, []string{"ledger_audit"}, m.Jobs())

	m.Start()
	assert.Eventually(t, func() bool { return auditor.calls.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, m.Stop())
}
