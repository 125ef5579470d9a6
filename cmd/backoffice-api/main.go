package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/academy-backoffice-api/api/swagger"
	"github.com/noah-isme/academy-backoffice-api/internal/handler"
	internalmiddleware "github.com/noah-isme/academy-backoffice-api/internal/middleware"
	"github.com/noah-isme/academy-backoffice-api/internal/repository"
	"github.com/noah-isme/academy-backoffice-api/internal/service"
	"github.com/noah-isme/academy-backoffice-api/pkg/cache"
	"github.com/noah-isme/academy-backoffice-api/pkg/config"
	"github.com/noah-isme/academy-backoffice-api/pkg/cron"
	"github.com/noah-isme/academy-backoffice-api/pkg/database"
	"github.com/noah-isme/academy-backoffice-api/pkg/jobs"
	"github.com/noah-isme/academy-backoffice-api/pkg/logger"
	"github.com/noah-isme/academy-backoffice-api/pkg/mailer"
	corsmiddleware "github.com/noah-isme/academy-backoffice-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/academy-backoffice-api/pkg/middleware/requestid"
	"github.com/noah-isme/academy-backoffice-api/pkg/storage"
)

// @title Academy Backoffice API
// @version 1.0.0
// @description Scheduling, coach payroll and location operations for a martial arts academy.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	checks := map[string]handler.Pinger{"postgres": db}
	var cacheRepo service.CacheRepository
	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, membership dashboard cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient, "academy", logr)
		checks["redis"] = redisPing(redisClient)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Memberships.CacheTTL, logr, cacheRepo != nil)

	users := repository.NewUserRepository(db)
	locations := repository.NewLocationRepository(db)
	coaches := repository.NewCoachRepository(db)
	templates := repository.NewClassTemplateRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	privateClasses := repository.NewPrivateClassRepository(db)
	rates := repository.NewRateRepository(db)
	payments := repository.NewPaymentRepository(db)
	memberships := repository.NewMembershipRepository(db)
	inventory := repository.NewInventoryRepository(db)

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare export storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	queue := jobs.NewQueue("backoffice", jobs.QueueConfig{
		Workers:    cfg.Queue.Workers,
		MaxRetries: cfg.Queue.MaxRetries,
		RetryDelay: cfg.Queue.RetryDelay,
		MaxBackoff: cfg.Queue.MaxBackoff,
		Logger:     logr,
	})

	authSvc := service.NewAuthService(users, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            "academy-backoffice-api",
		Audience:          []string{"academy-backoffice"},
	})
	directorySvc := service.NewDirectoryService(locations, coaches, logr)
	templateSvc := service.NewClassTemplateService(templates, validate, logr)
	scheduleSvc := service.NewScheduleService(templates, assignments, validate, logr)
	assignmentSvc := service.NewAssignmentService(assignments, templates, validate, logr)
	privateSvc := service.NewPrivateClassService(privateClasses, rates, validate, logr)
	rateSvc := service.NewRateService(rates, logr)
	payrollSvc := service.NewPayrollService(coaches, assignments, privateClasses, rates, validate, metrics, logr)
	ledgerSvc := service.NewPaymentLedgerService(payments, payrollSvc, validate, logr)
	exportSvc := service.NewPayrollExportService(payrollSvc, exportStore, signer, service.PayrollExportConfig{
		PublicURL: cfg.PublicURL,
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, metrics, logr)
	membershipSvc := service.NewMembershipService(memberships, cacheSvc, service.MembershipServiceConfig{
		CacheTTL:       cfg.Memberships.CacheTTL,
		MaxUploadBytes: cfg.Memberships.MaxUploadBytes,
	}, logr)
	inventorySvc := service.NewInventoryService(inventory, validate, logr)

	var sender mailer.Sender = mailer.NewLogSender(logr)
	if cfg.Mail.ResendAPIKey != "" {
		sender = mailer.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.From, logr)
	}
	digestSvc := service.NewPayrollDigestService(payrollSvc, sender, queue, cfg.Mail.DigestRecipients, metrics, logr)
	queue.Register(service.DigestJobType, digestSvc.HandleJob)

	scheduler := cron.NewScheduler(logr)
	scheduler.AddJob(cron.Job{
		Name:     "export-cleanup",
		Interval: cfg.Exports.CleanupInterval,
		Fn:       exportSvc.Cleanup,
	})
	if cfg.Mail.DigestEnabled {
		scheduler.AddJob(cron.Job{
			Name:     "payroll-digest",
			Interval: cfg.Mail.DigestInterval,
			Fn:       digestSvc.Schedule,
		})
	}

	queue.Start(ctx)
	scheduler.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(internalmiddleware.WithResponseMeta())

	ops := handler.NewMetricsHandler(metrics, checks, logr).WithQueue(queue.Stats)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), authSvc, handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Directory:    handler.NewDirectoryHandler(directorySvc),
		Templates:    handler.NewTemplateHandler(templateSvc),
		Schedule:     handler.NewScheduleHandler(scheduleSvc, assignmentSvc),
		PrivateClass: handler.NewPrivateClassHandler(privateSvc, rateSvc),
		Payroll:      handler.NewPayrollHandler(payrollSvc, exportSvc),
		Payments:     handler.NewPaymentHandler(ledgerSvc),
		Memberships:  handler.NewMembershipHandler(membershipSvc),
		Inventory:    handler.NewInventoryHandler(inventorySvc),
		System:       ops,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	scheduler.Stop()
	if err := queue.Drain(shutdownCtx); err != nil {
		logr.Warn("background jobs still running at shutdown", zap.Error(err))
	}
	queue.Stop()
}

func redisPing(client *redis.Client) handler.PingFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
