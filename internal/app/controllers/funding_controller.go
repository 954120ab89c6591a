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

// FundingController handles funding rounds and investments
type FundingController struct {
	fundingService    services.FundingService
	investmentService services.InvestmentService
	logger            zerolog.Logger
}

// NewFundingController creates a new FundingController
func NewFundingController(fundingService services.FundingService, investmentService services.InvestmentService, logger zerolog.Logger) *FundingController {
	return &FundingController{
		fundingService:    fundingService,
		investmentService: investmentService,
		logger:            logger,
	}
}

// OpenRound opens the next funding round of a startup the caller founded
// @Summary Open a funding round
// @Description The round number is assigned by the server. Label defaults to "Round N" and date to now.
// @Tags funding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OpenRoundRequest true "Round"
// @Success 201 {object} dto.APIResponse{data=models.FundingRound}
// @Failure 400 {object} dto.ErrorResponse "Missing startup_id or non-positive amount"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a founder of the startup"
// @Failure 404 {object} dto.ErrorResponse "Startup not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /funding-rounds [post]
func (c *FundingController) OpenRound(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.OpenRoundRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	round, err := c.fundingService.OpenRound(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, round)
}

// History returns every round of a startup with its raised amount and investor count
// @Summary Funding history
// @Tags funding
// @Produce json
// @Param startupId path int true "Startup ID"
// @Success 200 {object} dto.APIResponse{data=dto.FundingHistoryResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /funding-rounds/{startupId} [get]
func (c *FundingController) History(ctx *gin.Context) {
	startupID, err := helpers.ParseIDParam(ctx, "startupId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	history, err := c.fundingService.GetHistory(ctx.Request.Context(), startupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, history)
}

// Invest commits capital to a funding round
// @Summary Invest in a round
// @Description Repeat investments by the same investor in the same round accumulate.
// @Tags funding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InvestRequest true "Investment"
// @Success 201 {object} dto.APIResponse{data=dto.InvestmentConfirmation}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Caller is not an investor"
// @Failure 404 {object} dto.ErrorResponse "Funding round not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /invests [post]
func (c *FundingController) Invest(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.InvestRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	conf, err := c.investmentService.Invest(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, conf)
}

// Portfolio lists the caller's investments
// @Summary My investments
// @Tags funding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.PortfolioEntry}
// @Router /invests/me [get]
func (c *FundingController) Portfolio(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	entries, err := c.investmentService.GetPortfolio(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, entries)
}
