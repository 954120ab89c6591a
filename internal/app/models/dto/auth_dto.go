package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int64  `json:"expires_in"`
}

// InvestorDetails are the optional attributes of an investor membership
type InvestorDetails struct {
	Type     *string `json:"type,omitempty"`
	Website  *string `json:"website,omitempty"`
	Location *string `json:"location,omitempty"`
}

// RegisterRequest creates an account holding one or more roles
type RegisterRequest struct {
	Name     string           `json:"name" binding:"required,max=120"`
	Email    string           `json:"email" binding:"required,email"`
	Password string           `json:"password" binding:"required,min=8"`
	Roles    []string         `json:"roles" binding:"required,min=1,dive,oneof=founder investor mentor"`
	Bio      *string          `json:"bio,omitempty"`
	PhotoURL *string          `json:"photo_url,omitempty" binding:"omitempty,url"`
	Investor *InvestorDetails `json:"investor,omitempty"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
