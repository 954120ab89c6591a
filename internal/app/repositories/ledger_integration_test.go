package repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/launchpad/internal/app/migrations"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/db"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// openTestDB connects to LAUNCHPAD_TEST_DATABASE_URL and applies migrations,
// skipping the test when no database is configured.
func openTestDB(t *testing.T) *db.PostgresDB {
	t.Helper()
	url := os.Getenv("LAUNCHPAD_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("LAUNCHPAD_TEST_DATABASE_URL not set")
	}

	database, err := db.NewPostgresDBFromURL(url)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	_, err = migrations.NewMigrator(database.Pool, zerolog.Nop()).
		MigrateFromDirectory(context.Background(), filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	return database
}

func createUser(t *testing.T, repos *Repositories, role models.Role) int64 {
	t.Helper()
	u := &models.User{
		Name:         string(role),
		Email:        fmt.Sprintf("%s-%d@example.test", role, time.Now().UnixNano()),
		PasswordHash: "x",
	}
	require.NoError(t, repos.UserRepository.CreateWithRoles(context.Background(), u, []models.Role{role}, nil))
	return u.ID
}

func createStartup(t *testing.T, repos *Repositories, founderID int64) int64 {
	t.Helper()
	s := &models.Startup{Name: fmt.Sprintf("startup-%d", time.Now().UnixNano()), Status: models.StartupStatusActive}
	require.NoError(t, repos.StartupRepository.Create(context.Background(), founderID, s, "CEO"))
	t.Cleanup(func() { _ = repos.StartupRepository.Delete(context.Background(), s.ID) })
	return s.ID
}

func TestFundingLedgerPostgres(t *testing.T) {
	database := openTestDB(t)
	repos := NewRepositories(database)
	ctx := context.Background()

	founder := createUser(t, repos, models.RoleFounder)
	investor := createUser(t, repos, models.RoleInvestor)
	startupID := createStartup(t, repos, founder)

	t.Run("concurrent opens are gapless", func(t *testing.T) {
		const n = 12
		var wg sync.WaitGroup
		seqs := make([]int, n)
		errs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				r, err := repos.FundingRoundRepository.Open(ctx, models.FundingRound{
					StartupID: startupID,
					Amount:    decimal.NewFromInt(1000),
					Date:      time.Now().UTC(),
				})
				errs[i] = err
				if err == nil {
					seqs[i] = r.RoundSeq
				}
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}
		sort.Ints(seqs)
		for i, seq := range seqs {
			assert.Equal(t, i+1, seq)
		}
	})

	t.Run("repeat investments accumulate", func(t *testing.T) {
		inv := models.Investment{
			InvestorID:  investor,
			StartupID:   startupID,
			RoundSeq:    1,
			Amount:      decimal.NewFromInt(10000),
			EquityShare: decimal.RequireFromString("1.0"),
		}
		_, err := repos.InvestmentRepository.Record(ctx, inv)
		require.NoError(t, err)

		inv.Amount = decimal.NewFromInt(5000)
		inv.EquityShare = decimal.RequireFromString("0.5")
		total, err := repos.InvestmentRepository.Record(ctx, inv)
		require.NoError(t, err)
		assert.True(t, total.Amount.Equal(decimal.NewFromInt(15000)), total.Amount.String())
		assert.True(t, total.EquityShare.Equal(decimal.RequireFromString("1.5")), total.EquityShare.String())

		history, err := repos.FundingRoundRepository.History(ctx, startupID)
		require.NoError(t, err)
		require.NotEmpty(t, history)
		assert.Equal(t, 1, history[0].InvestorCount)
		assert.True(t, history[0].TargetMet)
		assert.False(t, history[1].TargetMet)
	})

	t.Run("concurrent investments sum exactly", func(t *testing.T) {
		const n = 20
		backer := createUser(t, repos, models.RoleInvestor)
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = repos.InvestmentRepository.Record(ctx, models.Investment{
					InvestorID:  backer,
					StartupID:   startupID,
					RoundSeq:    2,
					Amount:      decimal.NewFromInt(1),
					EquityShare: decimal.RequireFromString("0.01"),
				})
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}
		total, err := repos.InvestmentRepository.Record(ctx, models.Investment{
			InvestorID:  backer,
			StartupID:   startupID,
			RoundSeq:    2,
			Amount:      decimal.NewFromInt(1),
			EquityShare: decimal.Zero,
		})
		require.NoError(t, err)
		assert.True(t, total.Amount.Equal(decimal.NewFromInt(n+1)), total.Amount.String())
		assert.True(t, total.EquityShare.Equal(decimal.RequireFromString("0.2")), total.EquityShare.String())
	})

	t.Run("delete racing round opens", func(t *testing.T) {
		doomed := createStartup(t, repos, founder)
		const n = 8
		var wg sync.WaitGroup
		errs := make([]error, n)
		var deleteErr error
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = repos.FundingRoundRepository.Open(ctx, models.FundingRound{
					StartupID: doomed,
					Amount:    decimal.NewFromInt(500),
					Date:      time.Now().UTC(),
				})
			}(i)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			deleteErr = repos.StartupRepository.Delete(ctx, doomed)
		}()
		wg.Wait()

		require.NoError(t, deleteErr)
		for _, err := range errs {
			if err != nil {
				assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err), err.Error())
			}
		}
		_, err := repos.StartupRepository.GetByID(ctx, doomed)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("missing round", func(t *testing.T) {
		_, err := repos.InvestmentRepository.Record(ctx, models.Investment{
			InvestorID:  investor,
			StartupID:   startupID,
			RoundSeq:    999,
			Amount:      decimal.NewFromInt(1),
			EquityShare: decimal.Zero,
		})
		assert.ErrorIs(t, err, apperrors.ErrRoundNotFound)
	})
}
