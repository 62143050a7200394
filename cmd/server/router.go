package main

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/fin-planner-api/internal/config"
	"github.com/user/fin-planner-api/internal/handlers"
	"github.com/user/fin-planner-api/internal/middleware"
	"go.uber.org/zap"
)

// newRouter собирает маршруты приложения
func newRouter(cfg config.ServerConfig, planHandler *handlers.PlanHandler, reportHandler *handlers.ReportHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())

	// Страницы фронтенда
	router.StaticFile("/", filepath.Join(cfg.StaticDir, "index.html"))
	router.StaticFile("/report.html", filepath.Join(cfg.StaticDir, "report.html"))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Маршруты API
	api := router.Group("/api")
	{
		api.POST("/get-plan", planHandler.GetPlan)
		api.POST("/translate-plan", planHandler.TranslatePlan)
		api.POST("/plan-report", reportHandler.PlanReport)
		api.GET("/health", planHandler.Health)
	}

	return router
}
