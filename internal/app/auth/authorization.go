package auth

import (
	"context"
	"fmt"

	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	"github.com/yigit/launchpad/internal/pkg/logger"
)

// RoleStore answers role-membership questions
type RoleStore interface {
	HasRole(ctx context.Context, userID int64, role models.Role) (bool, error)
}

// OwnershipStore answers startup ownership questions
type OwnershipStore interface {
	IsFounder(ctx context.Context, userID, startupID int64) (bool, error)
}

var roleDeniedMessages = map[models.Role]string{
	models.RoleFounder:  "only registered founders may perform this action",
	models.RoleInvestor: "only registered investors may invest",
	models.RoleMentor:   "only registered mentors may perform this action",
}

// AuthorizationService handles authorization checks. Every call reads the
// store; nothing is cached.
type AuthorizationService struct {
	roles  RoleStore
	owners OwnershipStore
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(roles RoleStore, owners OwnershipStore) *AuthorizationService {
	return &AuthorizationService{
		roles:  roles,
		owners: owners,
	}
}

// HasRole checks if the user currently holds role
func (s *AuthorizationService) HasRole(ctx context.Context, userID int64, role models.Role) (bool, error) {
	ok, err := s.roles.HasRole(ctx, userID, role)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Str("role", string(role)).Msg("Error checking role membership")
		return false, fmt.Errorf("checking role %s: %w", role, err)
	}
	return ok, nil
}

// IsOwnerOf checks if the user is linked as a founder of the startup
func (s *AuthorizationService) IsOwnerOf(ctx context.Context, userID, startupID int64) (bool, error) {
	ok, err := s.owners.IsFounder(ctx, userID, startupID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("startupID", startupID).Msg("Error checking startup ownership")
		return false, fmt.Errorf("checking ownership: %w", err)
	}
	return ok, nil
}

// ValidateRole returns a forbidden error unless the user holds role
func (s *AuthorizationService) ValidateRole(ctx context.Context, userID int64, role models.Role) error {
	ok, err := s.HasRole(ctx, userID, role)
	if err != nil {
		return err
	}
	if !ok {
		msg, known := roleDeniedMessages[role]
		if !known {
			msg = "missing required role"
		}
		return apperrors.NewForbiddenError(msg)
	}
	return nil
}

// ValidateOwnership returns a forbidden error unless the user founded the startup
func (s *AuthorizationService) ValidateOwnership(ctx context.Context, userID, startupID int64) error {
	ok, err := s.IsOwnerOf(ctx, userID, startupID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewForbiddenError("you are not a founder of this startup")
	}
	return nil
}
