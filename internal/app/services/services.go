package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yigit/launchpad/internal/app/models"
)

// Services defined in this package:
// - AuthService: registration and login
// - UserService: profile and role memberships
// - StartupService: the startup registry
// - FundingService: funding round lifecycle and history
// - InvestmentService: investment recording and portfolios
// - CommunityService: comments, ratings and favorites
// - AnalyticsService: read-only rollups and the leaderboard
//
// Each service depends on the narrow store interfaces below, which the
// repositories package satisfies.

// UserStore persists users and their memberships
type UserStore interface {
	CreateWithRoles(ctx context.Context, user *models.User, roles []models.Role, investor *models.InvestorProfile) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, id int64) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, id int64, name, bio, photoURL *string) error
	AddRole(ctx context.Context, userID int64, role models.Role, investor *models.InvestorProfile) error
	ReplaceFounderPhones(ctx context.Context, userID int64, phones []string) error
	ReplaceMentorExpertise(ctx context.Context, userID int64, expertise []string) error
}

// StartupLookup resolves whether a startup exists
type StartupLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// StartupStore persists startups, tags and ownership links
type StartupStore interface {
	StartupLookup
	Create(ctx context.Context, founderID int64, s *models.Startup, roleLabel string) error
	GetByID(ctx context.Context, id int64) (*models.Startup, error)
	List(ctx context.Context, filter models.StartupFilter, offset uint64, limit int) ([]models.Startup, int64, error)
	ListByFounder(ctx context.Context, founderID int64) ([]models.Startup, error)
	Update(ctx context.Context, id int64, upd models.StartupUpdate) error
	Delete(ctx context.Context, id int64) error
	Sectors(ctx context.Context) ([]string, error)
	Tags(ctx context.Context) ([]string, error)
}

// FundingRoundStore is the funding ledger's persistence
type FundingRoundStore interface {
	Open(ctx context.Context, round models.FundingRound) (*models.FundingRound, error)
	History(ctx context.Context, startupID int64) ([]models.RoundSummary, error)
	Audit(ctx context.Context) (*models.LedgerAuditReport, error)
}

// InvestmentStore records commitments and returns cumulative positions
type InvestmentStore interface {
	Record(ctx context.Context, inv models.Investment) (*models.Investment, error)
	Portfolio(ctx context.Context, investorID int64) ([]models.PortfolioEntry, error)
}

// CommunityStore persists comments, ratings and favorites
type CommunityStore interface {
	AddComment(ctx context.Context, c *models.Comment) error
	ListComments(ctx context.Context, startupID int64) ([]models.Comment, error)
	UpsertRating(ctx context.Context, r *models.Rating) error
	ListRatings(ctx context.Context, startupID int64) ([]models.Rating, error)
	ToggleFavorite(ctx context.Context, userID, startupID int64) (bool, error)
	CountFavorites(ctx context.Context, startupID int64) (int, error)
	ListFavorites(ctx context.Context, userID int64) ([]models.FavoriteStartup, error)
}

// AnalyticsStore runs read-only rollups
type AnalyticsStore interface {
	FundingTotals(ctx context.Context, startupID int64) (decimal.Decimal, int, int, error)
	Likes(ctx context.Context, startupID int64) (int, error)
	RatingStats(ctx context.Context, startupID int64) (int, decimal.Decimal, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

// Authorizer performs role and ownership checks, returning a forbidden error on failure
type Authorizer interface {
	ValidateRole(ctx context.Context, userID int64, role models.Role) error
	ValidateOwnership(ctx context.Context, userID, startupID int64) error
}

// TokenIssuer signs access tokens
type TokenIssuer interface {
	GenerateAccessToken(userID int64, email string, roles []string) (string, int, error)
}
