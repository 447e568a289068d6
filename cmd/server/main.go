package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"anchorlog/internal/auth"
	"anchorlog/internal/config"
	apphttp "anchorlog/internal/http"
	"anchorlog/internal/repository/sqlite"
	"anchorlog/internal/service"
	"anchorlog/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}
	if cfg.Auth.TokenTTLMinutes <= 0 {
		logger.Fatalf("auth token ttl must be positive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	boundaryRepo := sqlite.NewBoundaryRepository(db)
	diaryCardRepo := sqlite.NewDiaryCardRepository(db)
	physicalGoalRepo := sqlite.NewPhysicalGoalRepository(db)
	therapyGoalRepo := sqlite.NewTherapyGoalRepository(db)
	valueRepo := sqlite.NewValueRepository(db)
	problemRepo := sqlite.NewProblemRepository(db)

	for _, repo := range []interface {
		Init(context.Context) error
	}{userRepo, boundaryRepo, diaryCardRepo, physicalGoalRepo, therapyGoalRepo, valueRepo, problemRepo} {
		if err := repo.Init(ctx); err != nil {
			logger.Fatalf("init repository: %v", err)
		}
	}

	userService := service.NewUserService(userRepo)
	trackerService := service.NewTrackerService(
		boundaryRepo,
		diaryCardRepo,
		physicalGoalRepo,
		therapyGoalRepo,
		valueRepo,
		problemRepo,
	)

	var exportService *service.ExportService
	if cfg.Storage.Bucket != "" {
		storageSvc, err := buildStorage(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("setup storage: %v", err)
		}
		exportService = service.NewExportService(
			userService,
			trackerService,
			storageSvc,
			cfg.Storage.Bucket,
			cfg.Storage.KeyPrefix,
		)
	} else {
		logger.Info("no storage bucket configured, export endpoints disabled")
	}

	tokens := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, trackerService, exportService, tokens, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
