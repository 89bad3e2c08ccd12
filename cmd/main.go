package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/config"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/container"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/engine"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/interface/middleware"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/router"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/helpers"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/pkg/validation"

	// storage engines register themselves with the selector
	_ "github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/mongodb"
	_ "github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/infrastructure/postgres"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	startCtx, cancelStart := context.WithTimeout(context.Background(), time.Minute)
	store, err := engine.Select(startCtx, cfg, logger)
	cancelStart()
	if err != nil {
		helpers.LogError(logger, "storage initialization failed", err, nil)
		os.Exit(1)
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil && !cfg.RateLimitEnabled {
		_ = rdb.Close()
		rdb = nil
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetStorage(store)
	container.SetRedis(rdb)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer))

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	if err := router.InitModules(reg); err != nil {
		helpers.LogError(logger, "router initialization failed", err, nil)
		_ = store.Close(context.Background())
		os.Exit(1)
	}
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithField("engine", store.Name()).Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		helpers.LogError(logger, "server forced to shutdown", err, nil)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := store.Close(ctxShutdown); err != nil {
		helpers.LogError(logger, "storage close failed", err, nil)
	}
	logger.Info("server exited properly")
}
