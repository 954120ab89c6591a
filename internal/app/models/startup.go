package models

import "time"

// Startup defines the startup model based on the 'startups' table
type Startup struct {
	ID           int64         `json:"startup_id" db:"startup_id"`
	Name         string        `json:"name" db:"name"`
	Description  *string       `json:"description,omitempty" db:"description"`
	LogoURL      *string       `json:"logo_url,omitempty" db:"logo_url"`
	FoundingDate *time.Time    `json:"founding_date,omitempty" db:"founding_date"`
	Status       StartupStatus `json:"status" db:"status"`
	Sector       *string       `json:"sector,omitempty" db:"sector"`
	Location     *string       `json:"location,omitempty" db:"location"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	Tags         []string      `json:"tags"`
	Founders     []FounderLink `json:"founders,omitempty"`
}

// FounderLink is an ownership link between a founder and a startup
type FounderLink struct {
	UserID     int64     `json:"user_id" db:"founder_id"`
	Name       string    `json:"name" db:"name"`
	PhotoURL   *string   `json:"photo_url,omitempty" db:"photo_url"`
	RoleLabel  string    `json:"role" db:"role_label"`
	JoinedDate time.Time `json:"joined_date" db:"joined_date"`
}

// StartupFilter narrows a startup listing. Empty fields are ignored.
type StartupFilter struct {
	Sector string
	Name   string
	Status string
	Tag    string
}

// StartupUpdate carries a partial update; nil fields are left untouched.
// A nil Tags slice keeps the current tags, an empty one clears them.
type StartupUpdate struct {
	Name        *string
	Description *string
	LogoURL     *string
	Status      *StartupStatus
	Sector      *string
	Location    *string
	Tags        []string
}
