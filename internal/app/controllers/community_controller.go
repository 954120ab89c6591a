package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/app/services"
	"github.com/yigit/launchpad/internal/middleware"
	"github.com/yigit/launchpad/internal/pkg/helpers"
)

// CommunityController handles comments, ratings, favorites and analytics
type CommunityController struct {
	communityService services.CommunityService
	analyticsService services.AnalyticsService
	logger           zerolog.Logger
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService services.CommunityService, analyticsService services.AnalyticsService, logger zerolog.Logger) *CommunityController {
	return &CommunityController{
		communityService: communityService,
		analyticsService: analyticsService,
		logger:           logger,
	}
}

func startupParam(ctx *gin.Context) (int64, bool) {
	id, err := helpers.ParseIDParam(ctx, "startupId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, false
	}
	return id, true
}

// ListComments returns a startup's comments
// @Summary List comments
// @Tags community
// @Produce json
// @Param startupId path int true "Startup ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Comment}
// @Router /community/{startupId}/comments [get]
func (c *CommunityController) ListComments(ctx *gin.Context) {
	startupID, ok := startupParam(ctx)
	if !ok {
		return
	}

	comments, err := c.communityService.ListComments(ctx.Request.Context(), startupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, comments)
}

// AddComment posts a comment
// @Summary Comment on a startup
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param startupId path int true "Startup ID"
// @Param request body dto.CommentRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=models.Comment}
// @Router /community/{startupId}/comments [post]
func (c *CommunityController) AddComment(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	startupID, ok := startupParam(ctx)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	comment, err := c.communityService.AddComment(ctx.Request.Context(), userID, startupID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, comment)
}

// ListRatings returns a startup's ratings
// @Summary List ratings
// @Tags community
// @Produce json
// @Param startupId path int true "Startup ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Rating}
// @Router /community/{startupId}/rates [get]
func (c *CommunityController) ListRatings(ctx *gin.Context) {
	startupID, ok := startupParam(ctx)
	if !ok {
		return
	}

	ratings, err := c.communityService.ListRatings(ctx.Request.Context(), startupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, ratings)
}

// Rate scores a startup from 1 to 10
// @Summary Rate a startup
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param startupId path int true "Startup ID"
// @Param request body dto.RateRequest true "Rating"
// @Success 200 {object} dto.APIResponse{data=models.Rating}
// @Router /community/{startupId}/rates [post]
func (c *CommunityController) Rate(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	startupID, ok := startupParam(ctx)
	if !ok {
		return
	}

	var req dto.RateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	rating, err := c.communityService.Rate(ctx.Request.Context(), userID, startupID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, rating)
}

// FavoriteCount returns how many users favorited a startup
// @Summary Favorite count
// @Tags community
// @Produce json
// @Param startupId path int true "Startup ID"
// @Success 200 {object} dto.APIResponse{data=dto.FavoriteResponse}
// @Router /community/{startupId}/favorites [get]
func (c *CommunityController) FavoriteCount(ctx *gin.Context) {
	startupID, ok := startupParam(ctx)
	if !ok {
		return
	}

	resp, err := c.communityService.FavoriteCount(ctx.Request.Context(), startupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, resp)
}

// ToggleFavorite adds or removes a startup from the caller's favorites
// @Summary Toggle favorite
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param startupId path int true "Startup ID"
// @Success 200 {object} dto.APIResponse{data=dto.FavoriteResponse}
// @Router /community/{startupId}/favorites [post]
func (c *CommunityController) ToggleFavorite(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	startupID, ok := startupParam(ctx)
	if !ok {
		return
	}

	resp, err := c.communityService.ToggleFavorite(ctx.Request.Context(), userID, startupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, resp)
}

// MyFavorites lists the caller's favorite startups
// @Summary My favorites
// @Tags community
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.FavoriteStartup}
// @Router /community/me/favorites [get]
func (c *CommunityController) MyFavorites(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	favs, err := c.communityService.MyFavorites(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, favs)
}

// Leaderboard ranks startups by committed capital
// @Summary Funding leaderboard
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.LeaderboardEntry}
// @Router /analytics/leaderboard [get]
func (c *CommunityController) Leaderboard(ctx *gin.Context) {
	entries, err := c.analyticsService.Leaderboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, entries)
}

// StartupAnalytics returns funding, likes and rating figures for one startup
// @Summary Startup analytics
// @Tags analytics
// @Produce json
// @Param startupId path int true "Startup ID"
// @Success 200 {object} dto.APIResponse{data=models.StartupAnalytics}
// @Failure 404 {object} dto.ErrorResponse
// @Router /analytics/{startupId} [get]
func (c *CommunityController) StartupAnalytics(ctx *gin.Context) {
	startupID, ok := startupParam(ctx)
	if !ok {
		return
	}

	analytics, err := c.analyticsService.StartupAnalytics(ctx.Request.Context(), startupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, analytics)
}
