package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/justute/tutorboard-api/internal/handler"
	"github.com/justute/tutorboard-api/internal/middleware"
	"github.com/justute/tutorboard-api/internal/repository"
	"github.com/justute/tutorboard-api/internal/service"
	"github.com/justute/tutorboard-api/pkg/cache"
	"github.com/justute/tutorboard-api/pkg/config"
	"github.com/justute/tutorboard-api/pkg/database"
	"github.com/justute/tutorboard-api/pkg/logger"
	corsmiddleware "github.com/justute/tutorboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/justute/tutorboard-api/pkg/middleware/requestid"
	"github.com/justute/tutorboard-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Agenda.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, agenda caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Agenda.CacheTTL, logr, true)
		}
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	studentRepo := repository.NewStudentRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:     cfg.JWT.Secret,
		AccessTokenExpiry:     cfg.JWT.Expiration,
		RefreshTokenExpiry:    cfg.JWT.RefreshExpiration,
		RememberRefreshExpiry: cfg.JWT.RememberRefreshExpiration,
		Issuer:                cfg.JWT.Issuer,
	})
	sessionSvc := service.NewSessionService(sessionRepo, studentRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	agendaSvc := service.NewAgendaService(sessionRepo, cacheSvc, logr)

	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		store, err := storage.NewLocalStorage(cfg.Export.Dir)
		if err != nil {
			logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.JWT.Secret, cfg.Export.ResultTTL)
		exportSvc = service.NewExportService(sessionRepo, store, signer, service.ExportServiceConfig{
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Export.ResultTTL,
			Workers:   cfg.Export.Workers,
		}, validate, logr)
		exportSvc.Start(context.Background())
		defer exportSvc.Stop()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	handlers := handler.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Session: handler.NewSessionHandler(sessionSvc, agendaSvc),
		Student: handler.NewStudentHandler(studentSvc),
		Agenda:  handler.NewAgendaHandler(agendaSvc, cfg.Export.Enabled),
		Metrics: handler.NewMetricsHandler(metricsSvc),
	}
	if exportSvc != nil {
		handlers.Export = handler.NewExportHandler(exportSvc)
	}
	handler.Register(r, cfg.APIPrefix, authSvc, handlers)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
