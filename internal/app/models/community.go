package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Comment is a free-text comment left on a startup
type Comment struct {
	ID        int64     `json:"comment_id" db:"comment_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	StartupID int64     `json:"startup_id" db:"startup_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UserName  string    `json:"user_name"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
}

// Rating is a user's single score for a startup; re-rating replaces it
type Rating struct {
	UserID    int64     `json:"user_id" db:"user_id"`
	StartupID int64     `json:"startup_id" db:"startup_id"`
	Score     int       `json:"score" db:"score"`
	Feedback  *string   `json:"feedback,omitempty" db:"feedback"`
	Date      time.Time `json:"date" db:"date"`
	UserName  string    `json:"user_name"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
}

// FavoriteStartup is a startup on a user's favorites list
type FavoriteStartup struct {
	StartupID int64         `json:"startup_id"`
	Name      string        `json:"name"`
	LogoURL   *string       `json:"logo_url,omitempty"`
	Sector    *string       `json:"sector,omitempty"`
	Status    StartupStatus `json:"status"`
	AddedAt   time.Time     `json:"added_at"`
}

// StartupAnalytics is the community and funding rollup of one startup
type StartupAnalytics struct {
	StartupID     int64           `json:"startup_id"`
	TotalRaised   decimal.Decimal `json:"funding"`
	Likes         int             `json:"likes"`
	RatingCount   int             `json:"rating_count"`
	RatingAverage decimal.Decimal `json:"rating_average"`
	RoundCount    int             `json:"round_count"`
	InvestorCount int             `json:"investor_count"`
}

// LeaderboardEntry is one startup ranked by total capital raised
type LeaderboardEntry struct {
	StartupID   int64           `json:"startup_id"`
	Name        string          `json:"name"`
	LogoURL     *string         `json:"logo_url,omitempty"`
	Sector      *string         `json:"sector,omitempty"`
	Status      StartupStatus   `json:"status"`
	TotalRaised decimal.Decimal `json:"total_raised"`
}
