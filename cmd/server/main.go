package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/fin-planner-api/internal/config"
	"github.com/user/fin-planner-api/internal/handlers"
	"github.com/user/fin-planner-api/internal/logger"
	"github.com/user/fin-planner-api/internal/services/ai"
	"github.com/user/fin-planner-api/internal/services/planner"
	"github.com/user/fin-planner-api/internal/services/report"
	"go.uber.org/zap"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализация AI клиента
	generator, err := ai.NewGenerator(ctx, cfg.AI, zapLogger)
	if err != nil {
		zapLogger.Fatal("Ошибка инициализации AI", zap.Error(err))
	}
	defer func() {
		if err := ai.Close(generator); err != nil {
			zapLogger.Warn("Ошибка закрытия AI клиента", zap.Error(err))
		}
	}()

	// Инициализация сервисов
	plannerService := planner.NewService(generator, planner.Options{
		CredentialConfigured: cfg.AI.HasCredential(),
		RequestTimeout:       cfg.AI.RequestTimeout,
	}, zapLogger)
	pdfGenerator := report.NewPDFGenerator(cfg.Report.FontPath)

	// Инициализация HTTP-сервера
	gin.SetMode(cfg.Server.Mode)
	router := newRouter(cfg.Server,
		handlers.NewPlanHandler(plannerService, zapLogger),
		handlers.NewReportHandler(pdfGenerator, zapLogger),
		zapLogger,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Сервер запущен",
			zap.String("port", cfg.Server.Port),
			zap.String("provider", cfg.AI.Provider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Остановка сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Ошибка остановки сервера", zap.Error(err))
	}
}
