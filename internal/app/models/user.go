package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // excluded from JSON
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	PhotoURL     *string   `json:"photo_url,omitempty" db:"photo_url"`
	JoinDate     time.Time `json:"join_date" db:"join_date"`
	Roles        RoleSet   `json:"-"`
}

// InvestorProfile holds the optional details of an investor membership
type InvestorProfile struct {
	UserID   int64   `json:"-" db:"user_id"`
	Type     *string `json:"type,omitempty" db:"type"`
	Website  *string `json:"website,omitempty" db:"website"`
	Location *string `json:"location,omitempty" db:"location"`
}

// UserProfile is a user together with the details of every membership it holds
type UserProfile struct {
	User
	Investor  *InvestorProfile
	Phones    []string
	Expertise []string
}
