package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/yigit/launchpad/internal/app/models"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) CreateWithRoles(ctx context.Context, user *models.User, roles []models.Role, investor *models.InvestorProfile) error {
	args := m.Called(ctx, user, roles, investor)
	return args.Error(0)
}

func (m *mockUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id int64, name, bio, photoURL *string) error {
	return m.Called(ctx, id, name, bio, photoURL).Error(0)
}

func (m *mockUserStore) AddRole(ctx context.Context, userID int64, role models.Role, investor *models.InvestorProfile) error {
	return m.Called(ctx, userID, role, investor).Error(0)
}

func (m *mockUserStore) ReplaceFounderPhones(ctx context.Context, userID int64, phones []string) error {
	return m.Called(ctx, userID, phones).Error(0)
}

func (m *mockUserStore) ReplaceMentorExpertise(ctx context.Context, userID int64, expertise []string) error {
	return m.Called(ctx, userID, expertise).Error(0)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) GenerateAccessToken(userID int64, email string, roles []string) (string, int, error) {
	args := m.Called(userID, email, roles)
	return args.String(0), args.Int(1), args.Error(2)
}

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (stubHasher) Compare(hashed, password string) bool { return hashed == "hashed:"+password }

type mockAuthorizer struct {
	mock.Mock
}

func (m *mockAuthorizer) ValidateRole(ctx context.Context, userID int64, role models.Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *mockAuthorizer) ValidateOwnership(ctx context.Context, userID, startupID int64) error {
	return m.Called(ctx, userID, startupID).Error(0)
}

type mockRoundStore struct {
	mock.Mock
}

func (m *mockRoundStore) Open(ctx context.Context, round models.FundingRound) (*models.FundingRound, error) {
	args := m.Called(ctx, round)
	if r := args.Get(0); r != nil {
		return r.(*models.FundingRound), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoundStore) History(ctx context.Context, startupID int64) ([]models.RoundSummary, error) {
	args := m.Called(ctx, startupID)
	if h := args.Get(0); h != nil {
		return h.([]models.RoundSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoundStore) Audit(ctx context.Context) (*models.LedgerAuditReport, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.(*models.LedgerAuditReport), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockInvestmentStore struct {
	mock.Mock
}

func (m *mockInvestmentStore) Record(ctx context.Context, inv models.Investment) (*models.Investment, error) {
	args := m.Called(ctx, inv)
	if r := args.Get(0); r != nil {
		return r.(*models.Investment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInvestmentStore) Portfolio(ctx context.Context, investorID int64) ([]models.PortfolioEntry, error) {
	args := m.Called(ctx, investorID)
	if p := args.Get(0); p != nil {
		return p.([]models.PortfolioEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockStartupStore struct {
	mock.Mock
}

func (m *mockStartupStore) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockStartupStore) Create(ctx context.Context, founderID int64, s *models.Startup, roleLabel string) error {
	return m.Called(ctx, founderID, s, roleLabel).Error(0)
}

func (m *mockStartupStore) GetByID(ctx context.Context, id int64) (*models.Startup, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.Startup), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStartupStore) List(ctx context.Context, filter models.StartupFilter, offset uint64, limit int) ([]models.Startup, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	return args.Get(0).([]models.Startup), args.Get(1).(int64), args.Error(2)
}

func (m *mockStartupStore) ListByFounder(ctx context.Context, founderID int64) ([]models.Startup, error) {
	args := m.Called(ctx, founderID)
	return args.Get(0).([]models.Startup), args.Error(1)
}

func (m *mockStartupStore) Update(ctx context.Context, id int64, upd models.StartupUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *mockStartupStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStartupStore) Sectors(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStartupStore) Tags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type mockCommunityStore struct {
	mock.Mock
}

func (m *mockCommunityStore) AddComment(ctx context.Context, c *models.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCommunityStore) ListComments(ctx context.Context, startupID int64) ([]models.Comment, error) {
	args := m.Called(ctx, startupID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *mockCommunityStore) UpsertRating(ctx context.Context, r *models.Rating) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockCommunityStore) ListRatings(ctx context.Context, startupID int64) ([]models.Rating, error) {
	args := m.Called(ctx, startupID)
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *mockCommunityStore) ToggleFavorite(ctx context.Context, userID, startupID int64) (bool, error) {
	args := m.Called(ctx, userID, startupID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCommunityStore) CountFavorites(ctx context.Context, startupID int64) (int, error) {
	args := m.Called(ctx, startupID)
	return args.Int(0), args.Error(1)
}

func (m *mockCommunityStore) ListFavorites(ctx context.Context, userID int64) ([]models.FavoriteStartup, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.FavoriteStartup), args.Error(1)
}

type mockAnalyticsStore struct {
	mock.Mock
}

func (m *mockAnalyticsStore) FundingTotals(ctx context.Context, startupID int64) (decimal.Decimal, int, int, error) {
	args := m.Called(ctx, startupID)
	return args.Get(0).(decimal.Decimal), args.Int(1), args.Int(2), args.Error(3)
}

func (m *mockAnalyticsStore) Likes(ctx context.Context, startupID int64) (int, error) {
	args := m.Called(ctx, startupID)
	return args.Int(0), args.Error(1)
}

func (m *mockAnalyticsStore) RatingStats(ctx context.Context, startupID int64) (int, decimal.Decimal, error) {
	args := m.Called(ctx, startupID)
	return args.Int(0), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *mockAnalyticsStore) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.LeaderboardEntry), args.Error(1)
}
