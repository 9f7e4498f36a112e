package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/poule-tournament/brackets"
	"github.com/Dosada05/poule-tournament/config"
	"github.com/Dosada05/poule-tournament/db"
	"github.com/Dosada05/poule-tournament/handlers"
	"github.com/Dosada05/poule-tournament/repositories"
	api "github.com/Dosada05/poule-tournament/routes"
	"github.com/Dosada05/poule-tournament/services"
	"github.com/Dosada05/poule-tournament/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.Bool("r2_enabled", cfg.R2Enabled()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище снимков: Postgres, если задан DATABASE_URL, иначе память процесса
	var tournamentRepo repositories.TournamentRepository
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}()
		if err := db.Migrate(ctx, dbConn); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		tournamentRepo = repositories.NewPostgresTournamentRepository(dbConn)
		logger.Info("database connection established")
	} else {
		tournamentRepo = repositories.NewMemoryTournamentRepository()
		logger.Warn("DATABASE_URL not set, tournaments are kept in memory only")
	}

	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	}

	rnd := brackets.SystemRandom()
	if cfg.RandomSeed != nil {
		rnd = brackets.SeededRandom(*cfg.RandomSeed)
		logger.Info("using seeded draws", slog.Uint64("seed", *cfg.RandomSeed))
	}

	wsHub := brackets.NewHub(logger)
	tournamentService := services.NewTournamentService(tournamentRepo, uploader, wsHub, rnd, logger)

	if uploader != nil && cfg.BackupInterval > 0 {
		sched, err := services.StartBackupScheduler(tournamentService, cfg.BackupInterval, logger)
		if err != nil {
			return fmt.Errorf("failed to start backup scheduler: %w", err)
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				logger.Error("failed to stop backup scheduler", slog.Any("error", err))
			}
		}()
		logger.Info("tournament backup scheduler started", slog.Duration("interval", cfg.BackupInterval))
	}

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		handlers.NewTournamentHandler(tournamentService),
		handlers.NewWebSocketHandler(wsHub, tournamentService, logger),
		cfg.CORSAllowedOrigins,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wsHub.Run(gCtx)
		return nil
	})
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}
