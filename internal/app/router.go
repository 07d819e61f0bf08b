package app

import (
	"bizcanvas_backend/docs"
	"bizcanvas_backend/internal/config"
	"bizcanvas_backend/internal/middleware"
	"bizcanvas_backend/internal/model"
	"bizcanvas_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerAssessmentRoutes(authGroup, c)
		a.registerReportRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Question bank is public so the assessment form renders before login.
		public.GET("/categories", c.reference.ListCategories)
		public.GET("/questions", c.reference.ListQuestions)
		public.GET("/preambles", c.reference.ListPreambles)
	}
}

func (a *App) registerAssessmentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	assessments := rg.Group("/assessments")
	{
		assessments.POST("", c.assessment.Create)
		assessments.GET("", c.assessment.List)
		assessments.GET("/:id", c.assessment.Get)
		assessments.PUT("/:id/answers/:questionId", c.assessment.SaveAnswer)
		assessments.POST("/:id/answers/:questionId/draft", c.assessment.StageAnswer)
		assessments.POST("/:id/complete", c.assessment.Complete)
	}
}

func (a *App) registerReportRoutes(rg *gin.RouterGroup, c *controllers) {
	reports := rg.Group("/reports")
	{
		reports.GET("", c.report.ListReports)
		reports.GET("/:id", c.report.GetReport)
		reports.GET("/:id/analytics", c.report.GetAnalytics)
		reports.GET("/:id/insights", c.report.GetInsights)
		reports.POST("/:id/insights/regenerate", c.report.RegenerateInsights)
		reports.POST("/:id/export", c.report.ExportReport)
		reports.GET("/:id/exports", c.report.ListExports)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/categories", c.reference.CreateCategory)
		admin.PUT("/categories/:id", c.reference.UpdateCategory)
		admin.DELETE("/categories/:id", c.reference.DeleteCategory)

		admin.POST("/questions", c.reference.CreateQuestion)
		admin.PUT("/questions/:id", c.reference.UpdateQuestion)
		admin.DELETE("/questions/:id", c.reference.DeleteQuestion)

		admin.POST("/preambles", c.reference.CreatePreamble)
	}
}
