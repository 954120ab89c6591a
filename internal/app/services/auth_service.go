package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	"github.com/yigit/launchpad/internal/pkg/auth"
)

// AuthService handles registration and login
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authServiceImpl struct {
	users  UserStore
	tokens TokenIssuer
	hasher auth.PasswordHasher
	logger zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, tokens TokenIssuer, hasher auth.PasswordHasher, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parseRoles(raw []string) ([]models.Role, error) {
	if len(raw) == 0 {
		return nil, apperrors.NewValidationError("at least one role is required")
	}
	set := models.NewRoleSet()
	for _, r := range raw {
		role, ok := models.ParseRole(r)
		if !ok {
			return nil, apperrors.NewValidationError("unknown role: " + r)
		}
		set.Add(role)
	}
	return set.Slice(), nil
}

func investorProfileFrom(d *dto.InvestorDetails) *models.InvestorProfile {
	if d == nil {
		return nil
	}
	return &models.InvestorProfile{Type: d.Type, Website: d.Website, Location: d.Location}
}

// Register creates the account with its initial memberships and signs a token
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required")
	}

	roles, err := parseRoles(req.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Bio:          req.Bio,
		PhotoURL:     req.PhotoURL,
	}
	if err := s.users.CreateWithRoles(ctx, user, roles, investorProfileFrom(req.Investor)); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "email already registered")
		}
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to create user")
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Strs("roles", dto.NewUserResponse(user).Roles).Msg("User registered")
	return s.issue(user)
}

// Login verifies credentials and signs a token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Compare(user.PasswordHash, req.Password) {
		s.logger.Debug().Int64("userID", user.ID).Msg("Password mismatch")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *authServiceImpl) issue(user *models.User) (*dto.AuthResponse, error) {
	userResp := dto.NewUserResponse(user)
	token, expiresIn, err := s.tokens.GenerateAccessToken(user.ID, user.Email, userResp.Roles)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to sign access token")
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expiresIn),
		},
		User: userResp,
	}, nil
}
