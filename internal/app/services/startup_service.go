package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	"github.com/yigit/launchpad/internal/pkg/helpers"
)

// StartupService defines startup registry operations
type StartupService interface {
	Create(ctx context.Context, founderID int64, req *dto.CreateStartupRequest) (*models.Startup, error)
	GetByID(ctx context.Context, id int64) (*models.Startup, error)
	List(ctx context.Context, req dto.StartupListRequest, page, size int) (*dto.StartupListResponse, error)
	ListMine(ctx context.Context, founderID int64) ([]models.Startup, error)
	Update(ctx context.Context, actorID, id int64, req *dto.UpdateStartupRequest) (*models.Startup, error)
	Delete(ctx context.Context, actorID, id int64) error
	Sectors(ctx context.Context) ([]string, error)
	Tags(ctx context.Context) ([]string, error)
}

type startupServiceImpl struct {
	startups StartupStore
	authz    Authorizer
	logger   zerolog.Logger
}

// NewStartupService creates a new startup service instance
func NewStartupService(startups StartupStore, authz Authorizer, logger zerolog.Logger) StartupService {
	return &startupServiceImpl{
		startups: startups,
		authz:    authz,
		logger:   logger,
	}
}

func parseStatus(raw string) (models.StartupStatus, error) {
	status := models.StartupStatus(raw)
	if !status.Valid() {
		return "", apperrors.NewValidationError("status must be one of Active, Acquired, Closed")
	}
	return status, nil
}

// Create registers a startup owned by the founder
func (s *startupServiceImpl) Create(ctx context.Context, founderID int64, req *dto.CreateStartupRequest) (*models.Startup, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}

	startup := &models.Startup{
		Name:        name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Status:      models.StartupStatusActive,
		Sector:      req.Sector,
		Location:    req.Location,
		Tags:        req.Tags,
	}
	if req.Status != "" {
		status, err := parseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		startup.Status = status
	}
	if req.FoundingDate != nil && *req.FoundingDate != "" {
		d, err := time.Parse("2006-01-02", *req.FoundingDate)
		if err != nil {
			return nil, apperrors.NewValidationError("founding_date must be YYYY-MM-DD")
		}
		startup.FoundingDate = &d
	}

	if err := s.authz.ValidateRole(ctx, founderID, models.RoleFounder); err != nil {
		return nil, err
	}

	if err := s.startups.Create(ctx, founderID, startup, strings.TrimSpace(req.RoleLabel)); err != nil {
		s.logger.Error().Err(err).Int64("founderID", founderID).Msg("Failed to create startup")
		return nil, err
	}

	s.logger.Info().Int64("startupID", startup.ID).Int64("founderID", founderID).Msg("Startup created")
	return s.startups.GetByID(ctx, startup.ID)
}

func (s *startupServiceImpl) GetByID(ctx context.Context, id int64) (*models.Startup, error) {
	return s.startups.GetByID(ctx, id)
}

// List returns one page of the filtered registry
func (s *startupServiceImpl) List(ctx context.Context, req dto.StartupListRequest, page, size int) (*dto.StartupListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	startups, total, err := s.startups.List(ctx, req.Filter(), offset, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list startups")
		return nil, err
	}
	return &dto.StartupListResponse{
		Startups:   startups,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

func (s *startupServiceImpl) ListMine(ctx context.Context, founderID int64) ([]models.Startup, error) {
	return s.startups.ListByFounder(ctx, founderID)
}

func (s *startupServiceImpl) requireOwned(ctx context.Context, actorID, id int64) error {
	exists, err := s.startups.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewCustomError(apperrors.ErrStartupNotFound, "startup not found")
	}
	return s.authz.ValidateOwnership(ctx, actorID, id)
}

// Update applies a partial update; only a linked founder may change the startup
func (s *startupServiceImpl) Update(ctx context.Context, actorID, id int64, req *dto.UpdateStartupRequest) (*models.Startup, error) {
	upd := models.StartupUpdate{
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Sector:      req.Sector,
		Location:    req.Location,
		Tags:        req.Tags,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty")
		}
		upd.Name = &name
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		upd.Status = &status
	}

	if err := s.requireOwned(ctx, actorID, id); err != nil {
		return nil, err
	}

	if err := s.startups.Update(ctx, id, upd); err != nil {
		s.logger.Error().Err(err).Int64("startupID", id).Msg("Failed to update startup")
		return nil, err
	}
	return s.startups.GetByID(ctx, id)
}

// Delete removes the startup together with its rounds, investments and community data
func (s *startupServiceImpl) Delete(ctx context.Context, actorID, id int64) error {
	if err := s.requireOwned(ctx, actorID, id); err != nil {
		return err
	}

	if err := s.startups.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("startupID", id).Msg("Failed to delete startup")
		return err
	}

	s.logger.Info().Int64("startupID", id).Int64("actorID", actorID).Msg("Startup deleted")
	return nil
}

func (s *startupServiceImpl) Sectors(ctx context.Context) ([]string, error) {
	return s.startups.Sectors(ctx)
}

func (s *startupServiceImpl) Tags(ctx context.Context) ([]string, error) {
	return s.startups.Tags(ctx)
}
