package dto

import "github.com/yigit/launchpad/internal/app/models"

// CreateStartupRequest represents startup creation data
type CreateStartupRequest struct {
	Name         string   `json:"name" binding:"required,max=160"`
	Description  *string  `json:"description,omitempty"`
	LogoURL      *string  `json:"logo_url,omitempty" binding:"omitempty,url"`
	FoundingDate *string  `json:"founding_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Status       string   `json:"status,omitempty" binding:"omitempty,oneof=Active Acquired Closed"`
	Sector       *string  `json:"sector,omitempty" binding:"omitempty,max=80"`
	Location     *string  `json:"location,omitempty" binding:"omitempty,max=120"`
	Tags         []string `json:"tags,omitempty" binding:"omitempty,dive,tag"`
	RoleLabel    string   `json:"role,omitempty" binding:"omitempty,max=60"`
}

// UpdateStartupRequest represents a partial startup update. Omitted fields are kept.
type UpdateStartupRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,min=1,max=160"`
	Description *string  `json:"description,omitempty"`
	LogoURL     *string  `json:"logo_url,omitempty" binding:"omitempty,url"`
	Status      *string  `json:"status,omitempty" binding:"omitempty,oneof=Active Acquired Closed"`
	Sector      *string  `json:"sector,omitempty" binding:"omitempty,max=80"`
	Location    *string  `json:"location,omitempty" binding:"omitempty,max=120"`
	Tags        []string `json:"tags" binding:"omitempty,dive,tag"`
}

// StartupListRequest holds the query parameters of a startup listing
type StartupListRequest struct {
	Sector string `form:"sector"`
	Name   string `form:"name"`
	Status string `form:"status" binding:"omitempty,oneof=Active Acquired Closed"`
	Tag    string `form:"tag"`
}

// Filter converts the query into a repository filter
func (r StartupListRequest) Filter() models.StartupFilter {
	return models.StartupFilter{
		Sector: r.Sector,
		Name:   r.Name,
		Status: r.Status,
		Tag:    r.Tag,
	}
}

// StartupListResponse is one page of startups
type StartupListResponse struct {
	Startups   []models.Startup `json:"startups"`
	Pagination PaginationInfo   `json:"pagination"`
}
