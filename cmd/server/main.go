package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/nursultanov/budgetbook/config"
	"github.com/nursultanov/budgetbook/internal/auth"
	"github.com/nursultanov/budgetbook/internal/email"
	"github.com/nursultanov/budgetbook/internal/health"
	"github.com/nursultanov/budgetbook/internal/infrastructure/postgres"
	"github.com/nursultanov/budgetbook/internal/janitor"
	ctxlog "github.com/nursultanov/budgetbook/internal/log"
	"github.com/nursultanov/budgetbook/internal/metrics"
	httptransport "github.com/nursultanov/budgetbook/internal/transport/http"
	"github.com/nursultanov/budgetbook/internal/transport/http/handler"
	"github.com/nursultanov/budgetbook/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrations: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)

	hasher := auth.NewBcryptHasher()
	codec := auth.NewTokenCodec([]byte(cfg.JWTSecret))
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, codec, sender, logger, cfg.FrontendBase)
	budgetUsecase := usecase.NewBudgetUsecase(budgetRepo)
	expenseUsecase := usecase.NewExpenseUsecase(expenseRepo)

	authHandler := handler.NewAuthHandler(authUsecase, logger, cfg.EchoConfirmationCode())
	budgetHandler := handler.NewBudgetHandler(budgetUsecase, logger)
	expenseHandler := handler.NewExpenseHandler(expenseUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, budgetHandler, expenseHandler, codec, userRepo, budgetRepo, expenseRepo),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	purger := janitor.New(userRepo, logger)
	if err := purger.Start(); err != nil {
		stop()
		log.Fatalf("janitor: %v", err)
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
	select {
	case <-purger.Stop().Done():
	case <-shutdownCtx.Done():
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
