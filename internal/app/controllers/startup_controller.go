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

// StartupController handles the startup registry endpoints
type StartupController struct {
	startupService services.StartupService
	logger         zerolog.Logger
}

// NewStartupController creates a new StartupController
func NewStartupController(startupService services.StartupService, logger zerolog.Logger) *StartupController {
	return &StartupController{startupService: startupService, logger: logger}
}

// List returns a filtered, paginated list of startups
// @Summary List startups
// @Tags startups
// @Produce json
// @Param sector query string false "Sector"
// @Param name query string false "Name contains"
// @Param status query string false "Active, Acquired or Closed"
// @Param tag query string false "Tag contains"
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.StartupListResponse}
// @Router /startups [get]
func (c *StartupController) List(ctx *gin.Context) {
	var req dto.StartupListRequest
	if !middleware.BindQuery(ctx, &req) {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.startupService.List(ctx.Request.Context(), req, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, resp)
}

// Get returns one startup with its tags and founders
// @Summary Get a startup
// @Tags startups
// @Produce json
// @Param id path int true "Startup ID"
// @Success 200 {object} dto.APIResponse{data=models.Startup}
// @Failure 404 {object} dto.ErrorResponse
// @Router /startups/{id} [get]
func (c *StartupController) Get(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	startup, err := c.startupService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, startup)
}

// Mine returns the startups the caller founded
// @Summary List my startups
// @Tags startups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Startup}
// @Router /startups/me [get]
func (c *StartupController) Mine(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	startups, err := c.startupService.ListMine(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, startups)
}

// Create registers a startup owned by the caller
// @Summary Create a startup
// @Tags startups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStartupRequest true "Startup"
// @Success 201 {object} dto.APIResponse{data=models.Startup}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Caller is not a founder"
// @Router /startups [post]
func (c *StartupController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateStartupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	startup, err := c.startupService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, startup)
}

// Update changes a startup the caller founded
// @Summary Update a startup
// @Tags startups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Startup ID"
// @Param request body dto.UpdateStartupRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Startup}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /startups/{id} [put]
func (c *StartupController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateStartupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	startup, err := c.startupService.Update(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, startup)
}

// Delete removes a startup the caller founded, with all dependent records
// @Summary Delete a startup
// @Tags startups
// @Security BearerAuth
// @Param id path int true "Startup ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /startups/{id} [delete]
func (c *StartupController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.startupService.Delete(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "startup deleted"})
}

// Sectors lists the distinct sectors in use
// @Summary List sectors
// @Tags startups
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Router /startups/sectors [get]
func (c *StartupController) Sectors(ctx *gin.Context) {
	sectors, err := c.startupService.Sectors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, sectors)
}

// Tags lists every known tag
// @Summary List tags
// @Tags startups
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Router /startups/tags [get]
func (c *StartupController) Tags(ctx *gin.Context) {
	tags, err := c.startupService.Tags(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, tags)
}
