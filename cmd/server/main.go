package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Nishasathish105/ai-compliance-platform/internal/alerts"
	"github.com/Nishasathish105/ai-compliance-platform/internal/analytics"
	"github.com/Nishasathish105/ai-compliance-platform/internal/blob"
	"github.com/Nishasathish105/ai-compliance-platform/internal/cases"
	"github.com/Nishasathish105/ai-compliance-platform/internal/config"
	"github.com/Nishasathish105/ai-compliance-platform/internal/events"
	"github.com/Nishasathish105/ai-compliance-platform/internal/migrate"
	"github.com/Nishasathish105/ai-compliance-platform/internal/pkg/logger"
	"github.com/Nishasathish105/ai-compliance-platform/internal/pkg/telemetry"
	"github.com/Nishasathish105/ai-compliance-platform/internal/store"
	"github.com/Nishasathish105/ai-compliance-platform/internal/store/postgres"
	"github.com/Nishasathish105/ai-compliance-platform/internal/store/rediscache"
	transport "github.com/Nishasathish105/ai-compliance-platform/internal/transport/http"
	"github.com/Nishasathish105/ai-compliance-platform/internal/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	log, err := logger.New(cfg.Telemetry.ServiceName, cfg.Telemetry.Environment, cfg.Telemetry.Environment != "production")
	if err != nil {
		zap.NewExample().Fatal("failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, &cfg.Telemetry)
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
		shutdownTracing = func(context.Context) error { return nil }
	}
	defer shutdownTracing(context.Background())

	if err := migrate.Up(ctx, cfg.Database.DSN()); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	records := &store.RecordStore{
		Documents:     postgres.NewDocumentRepo(db),
		Verifications: postgres.NewVerificationRepo(db),
		Cases:         postgres.NewCaseRepo(db),
		Alerts:        postgres.NewAlertRepo(db),
		Audit:         postgres.NewAuditRepo(db),
	}

	blobs, err := blob.NewFilesystemStore(cfg.Storage.RootDir, cfg.Storage.PublicURL)
	if err != nil {
		log.Fatal("failed to initialize blob storage", zap.Error(err))
	}

	alertCache := rediscache.New(&cfg.Redis)

	var publisher events.Publisher
	kafka, err := events.NewKafkaPublisher(&cfg.Kafka)
	if err != nil {
		log.Warn("kafka unavailable, events disabled", zap.Error(err))
		publisher = events.NopPublisher{}
	} else {
		publisher = kafka
		defer kafka.Close()
	}

	verificationSvc := verification.NewService(
		records,
		blobs,
		verification.NewSimulatedAssessor(),
		publisher,
		alertCache,
		&cfg.Verification,
		log,
	)
	caseSvc := cases.NewService(records, log)
	alertSvc := alerts.NewService(records, alertCache, log)
	analyticsSvc := analytics.NewService(records, log)

	handler := transport.NewHandler(
		records,
		verificationSvc,
		caseSvc,
		alertSvc,
		analyticsSvc,
		&cfg.Storage,
		cfg.Verification.AuditLimit,
	)
	server := transport.NewServer(cfg, handler)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()
	log.Info("server started", zap.Int("port", cfg.Server.Port))

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server exited")
}
