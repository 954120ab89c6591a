package dto

import (
	"time"

	"github.com/yigit/launchpad/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID       int64     `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Bio      *string   `json:"bio,omitempty"`
	PhotoURL *string   `json:"photo_url,omitempty"`
	JoinDate time.Time `json:"join_date"`
	Roles    []string  `json:"roles"`
}

// ProfileResponse is a user with the details of each membership held
type ProfileResponse struct {
	UserResponse
	Investor  *InvestorDetails `json:"investor,omitempty"`
	Phones    []string         `json:"phones,omitempty"`
	Expertise []string         `json:"expertise,omitempty"`
}

// UpdateProfileRequest represents profile update data. Omitted fields are kept.
type UpdateProfileRequest struct {
	Name      *string  `json:"name,omitempty" binding:"omitempty,min=1,max=120"`
	Bio       *string  `json:"bio,omitempty"`
	PhotoURL  *string  `json:"photo_url,omitempty" binding:"omitempty,url"`
	Phones    []string `json:"phones,omitempty" binding:"omitempty,dive,phone"`
	Expertise []string `json:"expertise,omitempty" binding:"omitempty,dive,max=80"`
}

// AddRoleRequest grants the caller another membership
type AddRoleRequest struct {
	Role     string           `json:"role" binding:"required,oneof=founder investor mentor"`
	Investor *InvestorDetails `json:"investor,omitempty"`
}

func roleStrings(set models.RoleSet) []string {
	out := []string{}
	for _, r := range set.Slice() {
		out = append(out, string(r))
	}
	return out
}

// NewUserResponse converts a user model
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Bio:      u.Bio,
		PhotoURL: u.PhotoURL,
		JoinDate: u.JoinDate,
		Roles:    roleStrings(u.Roles),
	}
}

// NewProfileResponse converts a profile model
func NewProfileResponse(p *models.UserProfile) ProfileResponse {
	resp := ProfileResponse{
		UserResponse: NewUserResponse(&p.User),
		Phones:       p.Phones,
		Expertise:    p.Expertise,
	}
	if p.Investor != nil {
		resp.Investor = &InvestorDetails{
			Type:     p.Investor.Type,
			Website:  p.Investor.Website,
			Location: p.Investor.Location,
		}
	}
	return resp
}
