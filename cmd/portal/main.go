package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/dmiher/complaint-portal/api/swagger"
	"github.com/dmiher/complaint-portal/internal/handler"
	"github.com/dmiher/complaint-portal/internal/middleware"
	"github.com/dmiher/complaint-portal/internal/seed"
	"github.com/dmiher/complaint-portal/internal/service"
	"github.com/dmiher/complaint-portal/internal/store"
	"github.com/dmiher/complaint-portal/internal/store/jsonfile"
	mongostore "github.com/dmiher/complaint-portal/internal/store/mongo"
	"github.com/dmiher/complaint-portal/internal/store/postgres"
	"github.com/dmiher/complaint-portal/pkg/cache"
	"github.com/dmiher/complaint-portal/pkg/config"
	appErrors "github.com/dmiher/complaint-portal/pkg/errors"
	"github.com/dmiher/complaint-portal/pkg/logger"
	corsmiddleware "github.com/dmiher/complaint-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/dmiher/complaint-portal/pkg/middleware/requestid"
	"github.com/dmiher/complaint-portal/pkg/response"
)

// @title DMIHER Complaint Portal API
// @version 1.0.0
// @description Complaint management portal for students and faculty
// @BasePath /api
// @schemes http

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

	st, err := openStore(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to open store", "driver", cfg.Store.Driver, "error", err)
	}
	defer st.Close() //nolint:errcheck

	if cfg.Seed.Enabled {
		if err := seed.Run(context.Background(), st, logr); err != nil {
			logr.Sugar().Fatalw("failed to seed default data", "error", err)
		}
	}

	var complaintCache service.ComplaintCache
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		complaintCache = service.NewRedisComplaintCache(redisClient, cfg.Cache.TTL, logr)
	}

	metricsSvc := service.NewMetricsService()
	st = store.WithMetrics(st, cfg.Store.Driver, metricsSvc.ObserveStoreOperation)
	authSvc := service.NewAuthService(st.Faculty(), st.Students(), nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	studentSvc := service.NewStudentService(st.Students(), nil, logr)
	complaintSvc := service.NewComplaintService(st.Complaints(), nil, complaintCache, metricsSvc, nil, logr)

	router := buildRouter(cfg, logr, st, metricsSvc, authSvc, studentSvc, complaintSvc)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "driver", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.Database)
	case config.DriverMongo:
		return mongostore.Open(cfg.Mongo)
	case config.DriverJSONFile:
		return jsonfile.Open(cfg.JSONFile.Dir)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

func buildRouter(
	cfg *config.Config,
	logr *zap.Logger,
	st store.Store,
	metricsSvc *service.MetricsService,
	authSvc *service.AuthService,
	studentSvc *service.StudentService,
	complaintSvc *service.ComplaintService,
) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.Timeout(cfg.Request.Timeout))
	if cfg.Request.MaxBodySize > 0 {
		r.Use(func(c *gin.Context) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.Request.MaxBodySize)
			c.Next()
		})
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrStorageUnavailable.Code, appErrors.ErrStorageUnavailable.Status, appErrors.ErrStorageUnavailable.Message))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	complaintHandler := handler.NewComplaintHandler(complaintSvc)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/login", authHandler.Login)
		api.POST("/student/register", studentHandler.Register)
		api.GET("/complaints", complaintHandler.List)
		api.POST("/complaints", complaintHandler.Submit)

		faculty := api.Group("")
		faculty.Use(middleware.JWT(authSvc), middleware.RequireFaculty())
		{
			faculty.GET("/students", studentHandler.List)
			faculty.PUT("/complaints/:id", complaintHandler.Respond)
			faculty.DELETE("/complaints/:id", complaintHandler.Delete)
			faculty.GET("/complaints/export", complaintHandler.Export)
		}
	}

	return r
}
