package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Yeralkhan06/MyProfile3/adapters/cache"
	"github.com/Yeralkhan06/MyProfile3/adapters/event"
	githubAdapter "github.com/Yeralkhan06/MyProfile3/adapters/github"
	httpAdapter "github.com/Yeralkhan06/MyProfile3/adapters/http"
	"github.com/Yeralkhan06/MyProfile3/adapters/pdf"
	"github.com/Yeralkhan06/MyProfile3/adapters/persistence"
	authUC "github.com/Yeralkhan06/MyProfile3/internal/application/usecase/auth"
	githubUC "github.com/Yeralkhan06/MyProfile3/internal/application/usecase/github"
	profileUC "github.com/Yeralkhan06/MyProfile3/internal/application/usecase/profile"
	resumeUC "github.com/Yeralkhan06/MyProfile3/internal/application/usecase/resume"
	"github.com/Yeralkhan06/MyProfile3/internal/config"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/github"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/resume"
	"github.com/Yeralkhan06/MyProfile3/pkg/auth"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
	"github.com/Yeralkhan06/MyProfile3/pkg/tracing"
)

func main() {
	fmt.Println("Start MyProfile API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	shutdownTracing, err := tracing.Init(cfg, appLogger, "myprofile-api")
	if err != nil {
		appLogger.Fatal("Cannot init tracing", err)
	}

	ctx := context.Background()

	// Initialize dependencies
	if cfg.DB.AutoMigrate {
		if err := persistence.RunMigrations(cfg.DB.DSN, appLogger); err != nil {
			appLogger.Fatal("Cannot run migrations", err)
		}
	}

	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}

	publisher := event.NewEventPublisher(cfg, appLogger)
	if kafkaClient, ok := publisher.(*event.KafkaProducerClient); ok {
		defer kafkaClient.Close()
	}

	renderer, err := pdf.NewRenderer(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init resume renderer", err)
	}

	// Repositories and sources
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)

	var repoSource github.RepoSource = githubAdapter.NewClient(cfg, appLogger)
	if redisClient != nil {
		defer redisClient.Close()
		repoSource = cache.NewGitHubCache(repoSource, redisClient, cfg.GitHub.CacheTTL, appLogger)
	}

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, publisher, appLogger)
	listReposUseCase := githubUC.NewListReposUseCase(repoSource)
	resumeUseCase := resumeUC.NewResumeUseCase(profileRepo, renderer, nil, resume.ParseLocale(cfg.Resume.Locale), appLogger)

	// HTTP Handlers
	deps := httpAdapter.RouterDeps{
		Logger:         appLogger,
		ProfileHandler: httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		GitHubHandler:  httpAdapter.NewGitHubHandler(listReposUseCase),
		ResumeHandler:  httpAdapter.NewResumeHandler(resumeUseCase),
	}
	if cfg.AuthEnabled() {
		jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
		owner := authUC.Owner{Email: cfg.Auth.OwnerEmail, PasswordHash: cfg.Auth.OwnerPasswordHash}
		deps.JWTService = jwtSvc
		deps.AuthHandler = httpAdapter.NewAuthHandler(authUC.NewLoginUseCase(owner, jwtSvc, appLogger), appLogger)
	} else {
		appLogger.Warn("JWT_SECRET is empty, profile updates are not authenticated")
	}

	router := httpAdapter.NewRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           httpAdapter.WithCORS(router, cfg.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLogger.Error("Failed to flush traces", err)
	}
}
