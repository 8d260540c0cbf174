package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/premialabs/premia/internal/application/usecase"
	"github.com/premialabs/premia/internal/auth"
	"github.com/premialabs/premia/internal/domain/model"
	"github.com/premialabs/premia/internal/domain/port"
	"github.com/premialabs/premia/internal/infrastructure/config"
	"github.com/premialabs/premia/internal/infrastructure/kafka"
	"github.com/premialabs/premia/internal/infrastructure/postgres"
	"github.com/premialabs/premia/internal/ml"
	"github.com/premialabs/premia/internal/ml/artifact"
	"github.com/premialabs/premia/internal/ml/dataset"
	"github.com/premialabs/premia/internal/observability"
	grpcpresentation "github.com/premialabs/premia/internal/presentation/grpc"
	"github.com/premialabs/premia/internal/presentation/rest"
	"github.com/premialabs/premia/internal/presentation/rest/middleware"

	inframl "github.com/premialabs/premia/internal/infrastructure/ml"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Initialize structured logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	logger.Info("starting premia",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: "premia",
		Endpoint:    cfg.Trace.Endpoint,
		Insecure:    cfg.Trace.Insecure,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer shutdownTracer(context.Background()) //nolint:errcheck
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "premia",
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer meterProvider.Shutdown(context.Background()) //nolint:errcheck

	instruments, err := observability.NewInstruments(meterProvider)
	if err != nil {
		logger.Error("failed to create instruments", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := postgres.NewPool(dbCtx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := postgres.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	// Event publisher.
	var publisher port.EventPublisher
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close() //nolint:errcheck
		publisher = kafka.NewPublisher(producer, logger)
		logger.Info("kafka publisher enabled", "topic", cfg.Kafka.Topic)
	} else {
		publisher = kafka.NewNoopPublisher(logger)
	}

	// Prediction engine.
	store := artifact.NewStore(cfg.ML.ArtifactDir)
	datasetCfg := dataset.Config{Rows: cfg.ML.DatasetRows, Seed: cfg.ML.DatasetSeed}
	snapshotPath := filepath.Join(cfg.ML.DataDir, "insurance.csv")
	trainer := ml.NewTrainer(datasetCfg, ml.DefaultConfigs(), store, snapshotPath, logger)
	engine := ml.NewEngine(store, trainer, ml.DefaultConfigs(), logger)
	estimator := inframl.NewEstimator(engine, instruments)

	// Warm the engine in the background so the first quote does not pay
	// the training cost. Readiness reports not-ready until this finishes.
	go func() {
		if err := estimator.EnsureReady(ctx); err != nil {
			logger.Error("model warm-up failed", "error", err)
		}
	}()

	// Session tokens.
	tokens, err := auth.NewService(auth.Config{
		Secret:     cfg.Auth.JWTSecret,
		Issuer:     cfg.Auth.JWTIssuer,
		Expiration: cfg.Auth.TokenTTL,
	})
	if err != nil {
		logger.Error("failed to initialize token service", "error", err)
		os.Exit(1)
	}

	// Wire infrastructure adapters.
	users := postgres.NewUserRepository(pool)
	predictions := postgres.NewPredictionRepository(pool)

	if err := bootstrapAdmin(ctx, users, cfg.Auth, logger); err != nil {
		logger.Error("failed to bootstrap admin account", "error", err)
		os.Exit(1)
	}

	// Wire use cases.
	registerUC := usecase.NewRegisterUser(users, publisher)
	loginUC := usecase.NewAuthenticateUser(users, tokens)
	quoteUC := usecase.NewRequestQuote(predictions, estimator, publisher)
	historyUC := usecase.NewGetQuoteHistory(predictions)
	getQuoteUC := usecase.NewGetQuote(predictions)
	profileUC := usecase.NewGetUserProfile(users, predictions)
	updateProfileUC := usecase.NewUpdateUserProfile(users)
	deleteQuoteUC := usecase.NewDeleteQuote(predictions)
	statsUC := usecase.NewGetAdminStats(users, predictions)
	analyticsUC := usecase.NewGetAdminAnalytics(predictions)
	listUsersUC := usecase.NewListUsers(users)
	deleteUserUC := usecase.NewDeleteUser(users)
	exportUC := usecase.NewExportQuotes(users, predictions)
	retrainUC := usecase.NewRetrainModels(estimator, publisher, cfg.ML.DatasetRows)
	reportUC := usecase.NewGetModelReport(estimator)

	// gRPC server.
	grpcHandler := grpcpresentation.NewQuoteServiceHandler(quoteUC, reportUC, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, ":"+cfg.GRPCPort, logger, tokens)

	// HTTP server.
	mux := http.NewServeMux()
	rest.NewHealthHandler(pool, estimator, logger).RegisterRoutes(mux)
	rest.NewAuthHandler(registerUC, loginUC, cfg.Auth.TokenTTL, logger).RegisterRoutes(mux)
	rest.NewQuoteHandler(quoteUC, historyUC, getQuoteUC, deleteQuoteUC, logger).RegisterRoutes(mux)
	rest.NewProfileHandler(profileUC, updateProfileUC).RegisterRoutes(mux)
	rest.NewModelHandler(reportUC).RegisterRoutes(mux)
	rest.NewAdminHandler(statsUC, analyticsUC, listUsersUC, deleteUserUC, exportUC, retrainUC, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	// Build middleware chain (applied in reverse order).
	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger, instruments)(handler)
	handler = middleware.RateLimitMiddleware(middleware.NewRateLimiter(cfg.Rate.MaxTokens, cfg.Rate.RefillRate))(handler)
	handler = middleware.AuthMiddleware(tokens, []string{
		"/healthz",
		"/readyz",
		"/metrics",
		"/api/v1/auth/register",
		"/api/v1/auth/login",
	})(handler)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("premia started", "environment", cfg.Environment)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down premia")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("premia stopped")
}

// bootstrapAdmin creates the initial admin account if it does not exist.
func bootstrapAdmin(ctx context.Context, users port.UserRepository, cfg config.AuthConfig, logger *slog.Logger) error {
	existing, err := users.FindByUsername(ctx, cfg.AdminUsername)
	if err != nil {
		return fmt.Errorf("checking admin account: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin, err := model.NewUser(cfg.AdminUsername, cfg.AdminEmail, hash)
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}
	admin.PromoteToAdmin()
	admin.DomainEvents() // drop the registration event for the seed account

	if err := users.Save(ctx, admin); err != nil {
		return fmt.Errorf("saving admin account: %w", err)
	}

	logger.Info("bootstrap admin account created", "username", cfg.AdminUsername)
	return nil
}
