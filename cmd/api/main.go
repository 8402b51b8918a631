package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gastroguide/internal/api"
	"gastroguide/internal/core/ai/openai"
	"gastroguide/internal/core/session"
	"gastroguide/internal/infrastructure/config"
	"gastroguide/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（包含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		// 缺少 API 金鑰時訊息本身即為提示
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("openai_key", config.MaskAPIKey(cfg.OpenAI.APIKey)),
		zap.String("openai_model", cfg.OpenAI.Model),
		zap.Float64("temperature", cfg.OpenAI.Temperature),
		zap.String("session_backend", cfg.Session.Backend),
	)

	// 初始化會話儲存
	initCtx, initCancel := context.WithTimeout(context.Background(), 5*time.Second)
	sessions, err := session.NewStore(initCtx, &cfg.Session)
	initCancel()
	if err != nil {
		common.LogFatal("Failed to initialize session store", zap.Error(err))
	}
	defer sessions.Close()

	client := openai.NewClient(&cfg.OpenAI)
	defer client.Close()

	router, cleanup, err := api.SetupRouter(cfg, client, sessions)
	if err != nil {
		common.LogFatal("Failed to setup router", zap.Error(err))
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.String("addr", srv.Addr),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
