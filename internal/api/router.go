package api

import (
	"fmt"
	"time"

	"gastroguide/internal/api/handlers/health"
	recipeHandler "gastroguide/internal/api/handlers/recipe"
	"gastroguide/internal/api/middleware"
	"gastroguide/internal/core/ai/provider"
	recipeService "gastroguide/internal/core/recipe"
	"gastroguide/internal/core/session"
	"gastroguide/internal/infrastructure/config"
	"gastroguide/internal/infrastructure/monitoring"
	"gastroguide/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由；回傳的 cleanup 需在關閉時呼叫
func SetupRouter(cfg *config.Config, p provider.Provider, sessions session.Store) (*gin.Engine, func(), error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := recipeHandler.RegisterValidators(); err != nil {
		return nil, nil, fmt.Errorf("failed to register validators: %w", err)
	}

	metrics := monitoring.NewMetrics()
	dedup := middleware.NewDeduplicator(cfg.DedupWindow)

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", middleware.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", middleware.SessionHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(metrics.Middleware())
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	svc := recipeService.NewService(p, cfg.OpenAI.Temperature)
	healthHandler := health.NewHandler(cfg.App.Version, p.GetModel(), sessions)
	handler := recipeHandler.NewHandler(svc, sessions, metrics, cfg.App.Debug)

	// 健康檢查路由
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API 路由組
	apiGroup := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		apiGroup.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	apiGroup.Use(middleware.Session(int(cfg.Session.TTL.Seconds())))
	apiGroup.Use(dedup.Middleware())
	apiGroup.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	{
		recipeGroup := apiGroup.Group("/recipe")
		{
			recipeGroup.GET("/options", handler.HandleOptions)
			recipeGroup.POST("/generate", handler.HandleGenerate)
			recipeGroup.POST("/analyze", handler.HandleAnalyze)
			recipeGroup.GET("/last", handler.HandleLast)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.String("model", p.GetModel()),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, dedup.Close, nil
}
