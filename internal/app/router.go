package app

import (
	"studytrack_backend/internal/config"
	"studytrack_backend/internal/middleware"
	"studytrack_backend/pkg/monitoring"
	"time"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		authGroup.POST("/submissions/task", c.submission.SubmitTask)
		authGroup.POST("/submissions/sheet", c.submission.SubmitSheet)
		authGroup.GET("/submissions/recent", c.submission.ListRecent)

		authGroup.GET("/statistics", c.statistics.GetStatistics)
		authGroup.GET("/statistics/progress", c.statistics.GetProgress)

		exportWindow := time.Duration(cfg.RateLimit.ExportWindowHours) * time.Hour
		authGroup.GET("/statistics/export",
			middleware.ExportRateLimit(s.rateLimit, int64(cfg.RateLimit.ExportLimit), exportWindow),
			c.statistics.ExportStatistics)
	}
}
