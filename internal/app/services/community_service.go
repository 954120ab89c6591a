package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

// CommunityService defines comment, rating and favorite operations
type CommunityService interface {
	AddComment(ctx context.Context, userID, startupID int64, req *dto.CommentRequest) (*models.Comment, error)
	ListComments(ctx context.Context, startupID int64) ([]models.Comment, error)
	Rate(ctx context.Context, userID, startupID int64, req *dto.RateRequest) (*models.Rating, error)
	ListRatings(ctx context.Context, startupID int64) ([]models.Rating, error)
	ToggleFavorite(ctx context.Context, userID, startupID int64) (*dto.FavoriteResponse, error)
	FavoriteCount(ctx context.Context, startupID int64) (*dto.FavoriteResponse, error)
	MyFavorites(ctx context.Context, userID int64) ([]models.FavoriteStartup, error)
}

type communityServiceImpl struct {
	community CommunityStore
	startups  StartupLookup
	logger    zerolog.Logger
}

// NewCommunityService creates a new community service instance
func NewCommunityService(community CommunityStore, startups StartupLookup, logger zerolog.Logger) CommunityService {
	return &communityServiceImpl{
		community: community,
		startups:  startups,
		logger:    logger,
	}
}

func (s *communityServiceImpl) requireStartup(ctx context.Context, startupID int64) error {
	exists, err := s.startups.Exists(ctx, startupID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewCustomError(apperrors.ErrStartupNotFound, "startup not found")
	}
	return nil
}

func (s *communityServiceImpl) AddComment(ctx context.Context, userID, startupID int64, req *dto.CommentRequest) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewValidationError("content is required")
	}
	if err := s.requireStartup(ctx, startupID); err != nil {
		return nil, err
	}

	c := &models.Comment{UserID: userID, StartupID: startupID, Content: content}
	if err := s.community.AddComment(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("commentID", c.ID).Int64("startupID", startupID).Msg("Comment added")
	return c, nil
}

func (s *communityServiceImpl) ListComments(ctx context.Context, startupID int64) ([]models.Comment, error) {
	if err := s.requireStartup(ctx, startupID); err != nil {
		return nil, err
	}
	return s.community.ListComments(ctx, startupID)
}

// Rate records the user's score, replacing an earlier one
func (s *communityServiceImpl) Rate(ctx context.Context, userID, startupID int64, req *dto.RateRequest) (*models.Rating, error) {
	if req.Score < 1 || req.Score > 10 {
		return nil, apperrors.NewValidationError("score must be between 1 and 10")
	}
	if err := s.requireStartup(ctx, startupID); err != nil {
		return nil, err
	}

	r := &models.Rating{UserID: userID, StartupID: startupID, Score: req.Score, Feedback: req.Feedback}
	if err := s.community.UpsertRating(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *communityServiceImpl) ListRatings(ctx context.Context, startupID int64) ([]models.Rating, error) {
	if err := s.requireStartup(ctx, startupID); err != nil {
		return nil, err
	}
	return s.community.ListRatings(ctx, startupID)
}

// ToggleFavorite flips the favorite state and reports the new count
func (s *communityServiceImpl) ToggleFavorite(ctx context.Context, userID, startupID int64) (*dto.FavoriteResponse, error) {
	if err := s.requireStartup(ctx, startupID); err != nil {
		return nil, err
	}

	favorited, err := s.community.ToggleFavorite(ctx, userID, startupID)
	if err != nil {
		return nil, err
	}
	likes, err := s.community.CountFavorites(ctx, startupID)
	if err != nil {
		return nil, err
	}
	return &dto.FavoriteResponse{StartupID: startupID, Favorited: &favorited, Likes: likes}, nil
}

func (s *communityServiceImpl) FavoriteCount(ctx context.Context, startupID int64) (*dto.FavoriteResponse, error) {
	if err := s.requireStartup(ctx, startupID); err != nil {
		return nil, err
	}
	likes, err := s.community.CountFavorites(ctx, startupID)
	if err != nil {
		return nil, err
	}
	return &dto.FavoriteResponse{StartupID: startupID, Likes: likes}, nil
}

func (s *communityServiceImpl) MyFavorites(ctx context.Context, userID int64) ([]models.FavoriteStartup, error) {
	return s.community.ListFavorites(ctx, userID)
}
