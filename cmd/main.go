package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/bootcamp-directory/config"
	"github.com/oksasatya/bootcamp-directory/internal/container"
	"github.com/oksasatya/bootcamp-directory/internal/infrastructure/geocoder"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/bootcamp-directory/internal/router"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.DBDriver, err)
	}
	defer func() {
		if store.Close != nil {
			_ = store.Close(context.Background())
		}
	}()

	// Redis; nil when REDIS_ADDR is empty
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	blobStore, closeBlob, err := openBlob(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to init %s file storage: %v", cfg.FileUploadDriver, err)
	}
	defer closeBlob()

	mail, closeMail, err := openMailer(cfg, logger)
	if err != nil {
		log.Fatalf("failed to init %s mailer: %v", cfg.MailTransport, err)
	}
	defer closeMail()

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetStore(store)
	container.SetRedis(rdb)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTExpire))
	container.SetBlob(blobStore)
	container.SetMailer(mail)
	if cfg.GeocoderAPIKey != "" {
		container.SetGeocoder(geocoder.NewMapQuest(cfg.GeocoderBaseURL, cfg.GeocoderAPIKey))
	} else {
		logger.Warn("GEOCODER_API_KEY not set; bootcamp create and radius search will fail")
	}
	if idx := openSearch(cfg, logger); idx != nil {
		container.SetSearch(idx)
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.IsDevelopment() {
		r.Use(gin.Logger())
	}
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.ErrorHandler(logger))
	if cfg.FileUploadDriver == "local" {
		r.Static("/uploads", cfg.FileUploadPath)
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s (%s store)", cfg.Port, cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
