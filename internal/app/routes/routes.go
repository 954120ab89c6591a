package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/launchpad/internal/app/controllers"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/middleware"
)

// Controllers groups the handlers mounted under /api/v1
type Controllers struct {
	Auth      *controllers.AuthController
	User      *controllers.UserController
	Startup   *controllers.StartupController
	Funding   *controllers.FundingController
	Community *controllers.CommunityController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")
	jwt := authMiddleware.JWTAuth()

	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
	}

	users := v1.Group("/users/me", jwt)
	{
		users.GET("", ctrl.User.GetMe)
		users.PUT("", ctrl.User.UpdateMe)
		users.POST("/roles", ctrl.User.AddRole)
	}

	startups := v1.Group("/startups")
	{
		startups.GET("", ctrl.Startup.List)
		startups.GET("/sectors", ctrl.Startup.Sectors)
		startups.GET("/tags", ctrl.Startup.Tags)
		startups.GET("/me", jwt, ctrl.Startup.Mine)
		startups.GET("/:id", ctrl.Startup.Get)
		startups.POST("", jwt, ctrl.Startup.Create)
		startups.PUT("/:id", jwt, ctrl.Startup.Update)
		startups.DELETE("/:id", jwt, ctrl.Startup.Delete)
	}

	// Funding ledger
	rounds := v1.Group("/funding-rounds")
	{
		rounds.POST("", jwt, ctrl.Funding.OpenRound)
		rounds.GET("/:startupId", ctrl.Funding.History)
	}

	invests := v1.Group("/invests", jwt)
	{
		invests.POST("", ctrl.Funding.Invest)
		invests.GET("/me", ctrl.Funding.Portfolio)
	}

	community := v1.Group("/community")
	{
		community.GET("/me/favorites", jwt, ctrl.Community.MyFavorites)
		community.GET("/:startupId/comments", ctrl.Community.ListComments)
		community.POST("/:startupId/comments", jwt, ctrl.Community.AddComment)
		community.GET("/:startupId/rates", ctrl.Community.ListRatings)
		community.POST("/:startupId/rates", jwt, ctrl.Community.Rate)
		community.GET("/:startupId/favorites", ctrl.Community.FavoriteCount)
		community.POST("/:startupId/favorites", jwt, ctrl.Community.ToggleFavorite)
	}

	analytics := v1.Group("/analytics")
	{
		analytics.GET("/leaderboard", ctrl.Community.Leaderboard)
		analytics.GET("/:startupId", ctrl.Community.StartupAnalytics)
	}

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	}
	v1.GET("/health", health)
	router.GET("/health", health)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
}
