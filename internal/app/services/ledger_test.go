package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

type positionKey struct {
	investor, startup int64
	seq               int
}

// memLedger is an in-memory FundingRoundStore, InvestmentStore and StartupLookup
// with one lock per startup for round allocation.
type memLedger struct {
	mu          sync.Mutex
	startupLock map[int64]*sync.Mutex
	rounds      map[int64][]models.FundingRound
	positions   map[positionKey]*models.Investment
}

func newMemLedger(startupIDs ...int64) *memLedger {
	l := &memLedger{
		startupLock: map[int64]*sync.Mutex{},
		rounds:      map[int64][]models.FundingRound{},
		positions:   map[positionKey]*models.Investment{},
	}
	for _, id := range startupIDs {
		l.startupLock[id] = &sync.Mutex{}
	}
	return l
}

func (l *memLedger) Exists(_ context.Context, id int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.startupLock[id]
	return ok, nil
}

func (l *memLedger) Open(_ context.Context, round models.FundingRound) (*models.FundingRound, error) {
	l.mu.Lock()
	lock, ok := l.startupLock[round.StartupID]
	l.mu.Unlock()
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrStartupNotFound, "startup not found")
	}

	lock.Lock()
	defer lock.Unlock()

	l.mu.Lock()
	maxSeq := 0
	for _, r := range l.rounds[round.StartupID] {
		if r.RoundSeq > maxSeq {
			maxSeq = r.RoundSeq
		}
	}
	l.mu.Unlock()

	// widen the window between read and write
	time.Sleep(time.Microsecond)

	round.RoundSeq = maxSeq + 1
	if round.Label == "" {
		round.Label = models.DefaultRoundLabel(round.RoundSeq)
	}

	l.mu.Lock()
	l.rounds[round.StartupID] = append(l.rounds[round.StartupID], round)
	l.mu.Unlock()
	return &round, nil
}

func (l *memLedger) History(_ context.Context, startupID int64) ([]models.RoundSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []models.RoundSummary{}
	for _, r := range l.rounds[startupID] {
		s := models.RoundSummary{FundingRound: r, RaisedAmount: decimal.Zero}
		investors := map[int64]struct{}{}
		for k, p := range l.positions {
			if k.startup == startupID && k.seq == r.RoundSeq {
				s.RaisedAmount = s.RaisedAmount.Add(p.Amount)
				investors[k.investor] = struct{}{}
			}
		}
		s.InvestorCount = len(investors)
		s.TargetMet = models.ComputeTargetMet(r.Amount, s.RaisedAmount, s.InvestorCount)
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoundSeq < out[j].RoundSeq })
	return out, nil
}

func (l *memLedger) Audit(context.Context) (*models.LedgerAuditReport, error) {
	return &models.LedgerAuditReport{}, nil
}

func (l *memLedger) Record(_ context.Context, inv models.Investment) (*models.Investment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	found := false
	for _, r := range l.rounds[inv.StartupID] {
		if r.RoundSeq == inv.RoundSeq {
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.NewCustomError(apperrors.ErrRoundNotFound, "funding round not found")
	}

	key := positionKey{inv.InvestorID, inv.StartupID, inv.RoundSeq}
	p, ok := l.positions[key]
	if !ok {
		p = &models.Investment{InvestorID: inv.InvestorID, StartupID: inv.StartupID, RoundSeq: inv.RoundSeq}
		l.positions[key] = p
	}
	p.Amount = p.Amount.Add(inv.Amount)
	p.EquityShare = p.EquityShare.Add(inv.EquityShare)

	cp := *p
	return &cp, nil
}

func (l *memLedger) Portfolio(context.Context, int64) ([]models.PortfolioEntry, error) {
	return nil, nil
}

func (l *memLedger) positionCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.positions)
}

// tableAuthz grants roles and ownership from fixed tables
type tableAuthz struct {
	founders  map[int64]int64 // founder -> startup
	investors map[int64]bool
}

func (a tableAuthz) ValidateRole(_ context.Context, userID int64, role models.Role) error {
	if role == models.RoleInvestor && a.investors[userID] {
		return nil
	}
	if role == models.RoleFounder {
		if _, ok := a.founders[userID]; ok {
			return nil
		}
	}
	return apperrors.NewForbiddenError("only registered investors may invest")
}

func (a tableAuthz) ValidateOwnership(_ context.Context, userID, startupID int64) error {
	if s, ok := a.founders[userID]; ok && s == startupID {
		return nil
	}
	return apperrors.NewForbiddenError("you are not a founder of this startup")
}

const (
	founderA  int64 = 1
	investorX int64 = 10
	investorY int64 = 11
	outsider  int64 = 99
	startupS  int64 = 100
)

func newLedgerServices(ledger *memLedger) (FundingService, InvestmentService) {
	authz := tableAuthz{
		founders:  map[int64]int64{founderA: startupS},
		investors: map[int64]bool{investorX: true, investorY: true},
	}
	return NewFundingService(ledger, ledger, authz, zerolog.Nop()),
		NewInvestmentService(ledger, authz, zerolog.Nop())
}

func TestLedger_ConcurrentOpenRoundIsGapless(t *testing.T) {
	ledger := newMemLedger(startupS, 200)
	funding, _ := newLedgerServices(ledger)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	seqs := make(chan int, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := funding.OpenRound(ctx, founderA, &dto.OpenRoundRequest{StartupID: int64Ptr(startupS), Amount: decPtr("1000")})
			if err != nil {
				errs <- err
				return
			}
			seqs <- r.RoundSeq
		}()
	}
	wg.Wait()
	close(seqs)
	close(errs)

	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}

	got := []int{}
	for s := range seqs {
		got = append(got, s)
	}
	sort.Ints(got)

	want := make([]int, n)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, got)

	history, err := funding.GetHistory(ctx, startupS)
	require.NoError(t, err)
	assert.Len(t, history.Rounds, n)

	other, err := funding.GetHistory(ctx, 200)
	require.NoError(t, err)
	assert.Empty(t, other.Rounds)
}

func TestLedger_NonOwnerCannotOpenRound(t *testing.T) {
	ledger := newMemLedger(startupS)
	funding, _ := newLedgerServices(ledger)
	ctx := context.Background()

	_, err := funding.OpenRound(ctx, outsider, &dto.OpenRoundRequest{StartupID: int64Ptr(startupS), Amount: decPtr("1000")})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	history, err := funding.GetHistory(ctx, startupS)
	require.NoError(t, err)
	assert.Empty(t, history.Rounds)
}

func TestLedger_NonInvestorWritesNothing(t *testing.T) {
	ledger := newMemLedger(startupS)
	funding, invest := newLedgerServices(ledger)
	ctx := context.Background()

	_, err := funding.OpenRound(ctx, founderA, &dto.OpenRoundRequest{StartupID: int64Ptr(startupS), Amount: decPtr("1000")})
	require.NoError(t, err)

	_, err = invest.Invest(ctx, outsider, &dto.InvestRequest{StartupID: int64Ptr(startupS), RoundSeq: intPtr(1), Amount: decPtr("10")})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	assert.Equal(t, 0, ledger.positionCount())
}

func TestLedger_InvestInMissingRound(t *testing.T) {
	ledger := newMemLedger(startupS)
	_, invest := newLedgerServices(ledger)

	_, err := invest.Invest(context.Background(), investorX, &dto.InvestRequest{
		StartupID: int64Ptr(startupS), RoundSeq: intPtr(3), Amount: decPtr("10"),
	})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, 0, ledger.positionCount())
}

func TestLedger_TwoInvestorsMeetTarget(t *testing.T) {
	ledger := newMemLedger(startupS)
	funding, invest := newLedgerServices(ledger)
	ctx := context.Background()

	round, err := funding.OpenRound(ctx, founderA, &dto.OpenRoundRequest{StartupID: int64Ptr(startupS), Amount: decPtr("100000")})
	require.NoError(t, err)
	assert.Equal(t, 1, round.RoundSeq)
	assert.Equal(t, "Round 1", round.Label)

	_, err = invest.Invest(ctx, investorX, &dto.InvestRequest{StartupID: int64Ptr(startupS), RoundSeq: intPtr(1), Amount: decPtr("40000")})
	require.NoError(t, err)
	_, err = invest.Invest(ctx, investorY, &dto.InvestRequest{StartupID: int64Ptr(startupS), RoundSeq: intPtr(1), Amount: decPtr("70000")})
	require.NoError(t, err)

	history, err := funding.GetHistory(ctx, startupS)
	require.NoError(t, err)
	require.Len(t, history.Rounds, 1)
	r := history.Rounds[0]
	assert.True(t, r.RaisedAmount.Equal(decimal.NewFromInt(110000)))
	assert.Equal(t, 2, r.InvestorCount)
	assert.True(t, r.TargetMet)
}

func TestLedger_RepeatInvestAccumulates(t *testing.T) {
	ledger := newMemLedger(startupS)
	funding, invest := newLedgerServices(ledger)
	ctx := context.Background()

	_, err := funding.OpenRound(ctx, founderA, &dto.OpenRoundRequest{StartupID: int64Ptr(startupS), Amount: decPtr("50000")})
	require.NoError(t, err)

	first, err := invest.Invest(ctx, investorX, &dto.InvestRequest{
		StartupID: int64Ptr(startupS), RoundSeq: intPtr(1), Amount: decPtr("10000"), EquityShare: decPtr("1.0"),
	})
	require.NoError(t, err)
	assert.True(t, first.TotalAmount.Equal(decimal.NewFromInt(10000)))

	second, err := invest.Invest(ctx, investorX, &dto.InvestRequest{
		StartupID: int64Ptr(startupS), RoundSeq: intPtr(1), Amount: decPtr("5000"), EquityShare: decPtr("0.5"),
	})
	require.NoError(t, err)
	assert.True(t, second.Amount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, second.TotalAmount.Equal(decimal.NewFromInt(15000)))
	assert.True(t, second.TotalEquityShare.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, 1, ledger.positionCount())

	history, err := funding.GetHistory(ctx, startupS)
	require.NoError(t, err)
	assert.Equal(t, 1, history.Rounds[0].InvestorCount)
	assert.True(t, history.Rounds[0].RaisedAmount.Equal(decimal.NewFromInt(15000)))
	assert.False(t, history.Rounds[0].TargetMet)
}

func TestLedger_TargetBoundary(t *testing.T) {
	ledger := newMemLedger(startupS)
	funding, invest := newLedgerServices(ledger)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := funding.OpenRound(ctx, founderA, &dto.OpenRoundRequest{StartupID: int64Ptr(startupS), Amount: decPtr("1000")})
		require.NoError(t, err)
	}
	_, err := invest.Invest(ctx, investorX, &dto.InvestRequest{StartupID: int64Ptr(startupS), RoundSeq: intPtr(1), Amount: decPtr("1000")})
	require.NoError(t, err)
	_, err = invest.Invest(ctx, investorX, &dto.InvestRequest{StartupID: int64Ptr(startupS), RoundSeq: intPtr(2), Amount: decPtr("999")})
	require.NoError(t, err)

	history, err := funding.GetHistory(ctx, startupS)
	require.NoError(t, err)
	require.Len(t, history.Rounds, 2)
	assert.True(t, history.Rounds[0].TargetMet)
	assert.False(t, history.Rounds[1].TargetMet)
}

func TestLedger_ConcurrentInvestNeverLosesUpdates(t *testing.T) {
	ledger := newMemLedger(startupS)
	funding, invest := newLedgerServices(ledger)
	ctx := context.Background()

	_, err := funding.OpenRound(ctx, founderA, &dto.OpenRoundRequest{StartupID: int64Ptr(startupS), Amount: decPtr("1000000")})
	require.NoError(t, err)

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := invest.Invest(ctx, investorX, &dto.InvestRequest{
				StartupID: int64Ptr(startupS), RoundSeq: intPtr(1), Amount: decPtr("25.50"),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	history, err := funding.GetHistory(ctx, startupS)
	require.NoError(t, err)
	assert.True(t, history.Rounds[0].RaisedAmount.Equal(decimal.RequireFromString("1020")))
	assert.Equal(t, 1, history.Rounds[0].InvestorCount)
}
