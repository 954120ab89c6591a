package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// UserService defines profile and membership operations
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	AddRole(ctx context.Context, userID int64, req *dto.AddRoleRequest) (*dto.ProfileResponse, error)
}

type userServiceImpl struct {
	users  UserStore
	logger zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(users UserStore, logger zerolog.Logger) UserService {
	return &userServiceImpl{users: users, logger: logger}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewProfileResponse(profile)
	return &resp, nil
}

// UpdateProfile changes the basic fields and, for the matching memberships,
// the founder phone list and mentor expertise list.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, apperrors.NewValidationError("name cannot be empty")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Phones != nil && !user.Roles.Has(models.RoleFounder) {
		return nil, apperrors.NewValidationError("phones can only be set by founders")
	}
	if req.Expertise != nil && !user.Roles.Has(models.RoleMentor) {
		return nil, apperrors.NewValidationError("expertise can only be set by mentors")
	}

	if err := s.users.UpdateProfile(ctx, userID, req.Name, req.Bio, req.PhotoURL); err != nil {
		return nil, err
	}
	if req.Phones != nil {
		if err := s.users.ReplaceFounderPhones(ctx, userID, req.Phones); err != nil {
			return nil, err
		}
	}
	if req.Expertise != nil {
		if err := s.users.ReplaceMentorExpertise(ctx, userID, req.Expertise); err != nil {
			return nil, err
		}
	}

	s.logger.Debug().Int64("userID", userID).Msg("Profile updated")
	return s.GetProfile(ctx, userID)
}

// AddRole grants another membership to the user
func (s *userServiceImpl) AddRole(ctx context.Context, userID int64, req *dto.AddRoleRequest) (*dto.ProfileResponse, error) {
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, apperrors.NewValidationError("unknown role: " + req.Role)
	}

	if err := s.users.AddRole(ctx, userID, role, investorProfileFrom(req.Investor)); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Str("role", string(role)).Msg("Failed to add role")
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Str("role", string(role)).Msg("Role added")
	return s.GetProfile(ctx, userID)
}
