package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emsana-backend/internal/config"
	"emsana-backend/internal/database"
	"emsana-backend/internal/handlers"
	"emsana-backend/internal/logger"
	"emsana-backend/internal/routes"
	"emsana-backend/internal/server"
	"emsana-backend/internal/service"
	"emsana-backend/internal/store"
	"emsana-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat, "emsana")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		db *gorm.DB
		st store.Store
	)
	if cfg.DBEnabled {
		db, err = database.Open(cfg, zl)
		if err != nil {
			zl.Fatal("Database connection failed", zap.Error(err))
		}
		if err := database.Migrate(ctx, db); err != nil {
			zl.Fatal("Schema creation failed", zap.Error(err))
		}
		st = store.NewGormStore(db)
	} else {
		zl.Warn("DB disabled, serving from in-memory store; data is lost on exit")
		st = store.NewMemoryStore()
	}

	auth := service.NewAuth(st, utils.NewPasswordHasher(cfg.BcryptCost), cfg.LoginIdentifier, zl)
	h := handlers.New(auth, service.NewRecords(st), zl)
	router := routes.NewRouter(cfg, h, zl)

	srv := server.New(cfg.ListenAddr(), router, zl)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zl.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			zl.Error("HTTP server failed", zap.Error(err))
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		zl.Warn("HTTP server shutdown incomplete", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		zl.Warn("Database close failed", zap.Error(err))
	}
}
