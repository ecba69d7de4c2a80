package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/adapter/email"
	mongoadapter "github.com/MohammadBTelfah/Damanah-sub000/internal/adapter/mongo"
	natsadapter "github.com/MohammadBTelfah/Damanah-sub000/internal/adapter/nats"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/adapter/ocr"
	redisadapter "github.com/MohammadBTelfah/Damanah-sub000/internal/adapter/redis"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/adapter/storage"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/config"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/platform/logger"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/platform/metrics"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/platform/tracer"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/http/handler"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/http/router"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/usecase"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const serviceName = "damanah"

// App wires every adapter, usecase and handler together and owns the
// lifecycle of the external connections.
type App struct {
	cfg            *config.Config
	log            *zap.Logger
	httpServer     *http.Server
	metricsManager *metrics.Manager
	tracerProvider *sdktrace.TracerProvider
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	natsPublisher  *natsadapter.Publisher
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Logger initialized", zap.String("env", cfg.Env))

	tp := tracer.InitTracer(serviceName, cfg.Tracing.OTLPEndpoint, log)
	metricsManager := metrics.NewManager(serviceName)

	log.Info("Initializing MongoDB client...")
	mongoClient, err := mongoadapter.NewConnection(&cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)
	log.Info("MongoDB client initialized")

	log.Info("Initializing Redis client...")
	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	log.Info("Redis client initialized")

	natsPublisher, err := natsadapter.NewPublisher(&cfg.NATS, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize NATS publisher: %w", err)
	}

	documentStore, err := storage.NewMinioStorage(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	mailer, err := email.NewSMTPSender(cfg.SMTP, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SMTP sender: %w", err)
	}

	ocrClient := ocr.NewClient(cfg.OCR, log)

	clientRepo := mongoadapter.NewClientRepository(db, log)
	contractorRepo := mongoadapter.NewContractorRepository(db, log)
	adminRepo := mongoadapter.NewAdminRepository(db, log)
	directory := mongoadapter.NewAccountDirectory(clientRepo, contractorRepo, adminRepo)
	materialRepo := mongoadapter.NewMaterialRepository(db, log)
	projectRepo := mongoadapter.NewProjectRepository(db, log)
	sessionStore := redisadapter.NewSessionStore(redisClient)

	registration := usecase.NewRegistrationUsecase(
		clientRepo, contractorRepo, adminRepo, directory,
		documentStore, ocrClient, mailer, natsPublisher,
		metricsManager, log, cfg.App.BaseURL,
	)
	verification := usecase.NewVerificationUsecase(
		clientRepo, contractorRepo, adminRepo, directory,
		mailer, natsPublisher, metricsManager, log, cfg.App.BaseURL,
	)
	auth := usecase.NewAuthUsecase(directory, sessionStore, log, cfg.JWT.Secret, cfg.JWT.TokenTTL)
	admin := usecase.NewAdminUsecase(clientRepo, contractorRepo, natsPublisher, metricsManager, log)
	catalog := usecase.NewCatalogUsecase(materialRepo, log)
	estimates := usecase.NewEstimateUsecase(materialRepo, projectRepo, metricsManager, log)

	mux := router.New(router.Deps{
		Accounts:  handler.NewAccountHandler(registration, verification, auth, log),
		Admin:     handler.NewAdminHandler(admin, log),
		Catalog:   handler.NewCatalogHandler(catalog, log),
		Estimates: handler.NewEstimateHandler(estimates, log),
		Metrics:   metricsManager,
		Logger:    log,
		JWTSecret: cfg.JWT.Secret,
		Service:   serviceName,
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &App{
		cfg:            cfg,
		log:            log,
		httpServer:     httpServer,
		metricsManager: metricsManager,
		tracerProvider: tp,
		mongoClient:    mongoClient,
		redisClient:    redisClient,
		natsPublisher:  natsPublisher,
	}, nil
}

// Run starts the HTTP and metrics servers and blocks until SIGINT/SIGTERM.
func (a *App) Run() {
	go func() {
		if err := metrics.StartServer(a.cfg.Metrics.Port, a.log, a.metricsManager.Registry); err != nil && err != http.ErrServerClosed {
			a.log.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	go func() {
		a.log.Info("HTTP server starting", zap.String("port", a.cfg.HTTP.Port))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.log.Info("Received shutdown signal, shutting down...", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Error during HTTP server shutdown", zap.Error(err))
	} else {
		a.log.Info("HTTP server stopped")
	}

	a.natsPublisher.Close()

	if err := a.redisClient.Close(); err != nil {
		a.log.Error("Error closing Redis client", zap.Error(err))
	}
	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.log.Error("Error disconnecting from MongoDB", zap.Error(err))
	}
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(shutdownCtx); err != nil {
			a.log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}

	a.log.Info("Application shut down successfully")
	_ = a.log.Sync()
}
