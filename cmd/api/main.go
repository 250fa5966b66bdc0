package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-scheduler/internal/audit"
	"github.com/BruksfildServices01/tutor-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/tutor-scheduler/internal/db"
	"github.com/BruksfildServices01/tutor-scheduler/internal/entitlement"
	infraRepo "github.com/BruksfildServices01/tutor-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/tutor-scheduler/internal/logger"
	"github.com/BruksfildServices01/tutor-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// DATABASE
	// ======================================================
	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	if err := dbpkg.Migrate(ctx, db, log); err != nil {
		log.Fatal("migrations", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("database handle", zap.Error(err))
	}

	// ======================================================
	// ENTITLEMENT (postgres + optional redis cache)
	// ======================================================
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, entitlement cache disabled", zap.Error(err))
			_ = rdb.Close()
			rdb = nil
		}
	}

	subscriptions := entitlement.NewGormChecker(db)
	checker := entitlement.NewCachedChecker(subscriptions, rdb, cfg.EntitlementCacheTTL, log)

	// ======================================================
	// AUDIT (database + optional S3 archive)
	// ======================================================
	auditStore := audit.NewStore(db)
	sinks := []audit.Sink{auditStore}

	var (
		archiver  *audit.Archiver
		scheduler *cron.Cron
	)
	if cfg.AuditArchiveEnabled() {
		archiver = audit.NewArchiver(audit.NewS3Client(cfg), cfg.AuditArchiveBucket, log)
		sinks = append(sinks, archiver)

		scheduler = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
		if err := archiver.Schedule(scheduler, cfg.AuditArchiveSchedule); err != nil {
			log.Fatal("audit archive schedule", zap.Error(err))
		}
		scheduler.Start()
		log.Info("audit archive enabled",
			zap.String("bucket", cfg.AuditArchiveBucket),
			zap.String("schedule", cfg.AuditArchiveSchedule),
		)
	}

	dispatcher := audit.NewDispatcher(cfg.AuditQueueSize, log, sinks...)

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	err = routes.RegisterRoutes(r, routes.Deps{
		Config: cfg,
		Log:    log,

		Users:        infraRepo.NewUserGormRepository(db),
		Availability: infraRepo.NewAvailabilityGormRepository(db),
		Bookings:     infraRepo.NewBookingGormRepository(db),
		Requests:     infraRepo.NewRequestGormRepository(db),
		Calendar:     infraRepo.NewCalendarGormSource(db),

		Entitlement:      checker,
		EntitlementCache: checker,
		Subscriptions:    subscriptions,

		Audit:     dispatcher,
		AuditLogs: auditStore,

		Ping: sqlDB.PingContext,
	})
	if err != nil {
		log.Fatal("routes", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	// ======================================================
	// SHUTDOWN
	// ======================================================
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("audit queue not drained", zap.Error(err))
	}
	if archiver != nil {
		if err := archiver.Flush(shutdownCtx); err != nil {
			log.Warn("final audit archive flush failed", zap.Error(err))
		}
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("database close", zap.Error(err))
	}
}
