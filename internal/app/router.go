package app

import (
	"culturefit_backend/docs"
	"culturefit_backend/internal/config"
	"culturefit_backend/internal/middleware"
	"culturefit_backend/internal/model"

	"culturefit_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerCandidateRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerRecruiterRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

// Candidate routes are public; the invite token in the path is the
// only credential.
func (a *App) registerCandidateRoutes(router *gin.Engine, c *controllers) {
	assessment := router.Group("/api/assessment")
	{
		assessment.GET("/:token/questions", c.assessment.GetQuestions)
		assessment.POST("/:token/partial", c.assessment.SavePartial)
		assessment.POST("/:token/complete", c.assessment.Complete)
	}
}

func (a *App) registerRecruiterRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	campaigns := rg.Group("/campaigns")
	{
		campaigns.POST("", c.campaign.CreateCampaign)
		campaigns.GET("", c.campaign.ListCampaigns)
		campaigns.GET("/:id", c.campaign.GetCampaign)
		campaigns.PUT("/:id", c.campaign.UpdateCampaign)
		campaigns.DELETE("/:id", c.campaign.DeleteCampaign)
		campaigns.GET("/:id/summary", c.campaign.GetSummary)
		campaigns.POST("/:id/invites", c.invite.CreateInvites)
		campaigns.GET("/:id/invites", c.invite.ListInvites)
		campaigns.POST("/:id/export", c.report.ExportCSV)
	}

	rg.POST("/invites/:id/resend", c.invite.ResendInvite)

	rg.GET("/candidates", c.candidate.ListCandidates)
	rg.GET("/candidates/:id", c.candidate.GetCandidate)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/users", c.user.AddUser)
		admin.GET("/users", c.user.ListUsers)
		admin.POST("/users/:id/disable", c.user.DisableUser)

		admin.POST("/questions", c.question.CreateQuestion)
		admin.GET("/questions", c.question.ListQuestions)
		admin.PUT("/questions/:id", c.question.UpdateQuestion)
		admin.DELETE("/questions/:id", c.question.DeleteQuestion)
	}
}
