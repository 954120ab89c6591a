package repositories

import (
	"github.com/yigit/launchpad/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	StartupRepository      *StartupRepository
	FundingRoundRepository *FundingRoundRepository
	InvestmentRepository   *InvestmentRepository
	CommunityRepository    *CommunityRepository
	AnalyticsRepository    *AnalyticsRepository
}

// NewRepositories initializes all repositories on the shared pool
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(database),
		StartupRepository:      NewStartupRepository(database),
		FundingRoundRepository: NewFundingRoundRepository(database, NewSequenceAllocator()),
		InvestmentRepository:   NewInvestmentRepository(database),
		CommunityRepository:    NewCommunityRepository(database),
		AnalyticsRepository:    NewAnalyticsRepository(database),
	}
}
