package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Yeralkhan06/MyProfile3/adapters/event"
	"github.com/Yeralkhan06/MyProfile3/adapters/media_storage"
	"github.com/Yeralkhan06/MyProfile3/adapters/pdf"
	"github.com/Yeralkhan06/MyProfile3/adapters/persistence"
	"github.com/Yeralkhan06/MyProfile3/internal/application/service"
	resumeUC "github.com/Yeralkhan06/MyProfile3/internal/application/usecase/resume"
	"github.com/Yeralkhan06/MyProfile3/internal/config"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/resume"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
	"github.com/Yeralkhan06/MyProfile3/pkg/tracing"
)

func main() {
	fmt.Println("Starting MyProfile Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatalf("FATAL: KAFKA_BROKERS is empty, nothing to consume")
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	shutdownTracing, err := tracing.Init(cfg, appLogger, "myprofile-worker")
	if err != nil {
		appLogger.Fatal("Cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	renderer, err := pdf.NewRenderer(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init resume renderer", err)
	}

	// Worker Use Case
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	resumeUseCase := resumeUC.NewResumeUseCase(profileRepo, renderer, uploader, resume.ParseLocale(cfg.Resume.Locale), appLogger)

	// Kafka Consumer
	reader := event.NewProfileReader(cfg.Kafka.Brokers)
	defer reader.Close()

	consumer := event.NewProfileConsumer(reader, func(ctx context.Context, ev service.ProfileEvent) error {
		out, err := resumeUseCase.ExecuteArchive(ctx, resumeUC.ArchiveInput{PreviousFilename: ev.PreviousResume})
		if err != nil {
			return err
		}
		appLogger.Info("Resume archived", zap.Int64("profile_id", ev.ProfileID), zap.String("url", out.URL), zap.String("removed", out.Removed))
		return nil
	}, appLogger)

	if err := consumer.Run(ctx); err != nil {
		appLogger.Error("Consumer stopped", err)
	}
	appLogger.Info("Worker stopped")
}
