package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskkeeper/taskkeeper/internal/application/task"
	"github.com/taskkeeper/taskkeeper/internal/config"
	apihttp "github.com/taskkeeper/taskkeeper/internal/infrastructure/http"
	"github.com/taskkeeper/taskkeeper/internal/infrastructure/http/handler"
	"github.com/taskkeeper/taskkeeper/internal/infrastructure/observability"
	"github.com/taskkeeper/taskkeeper/internal/infrastructure/persistence/postgres"
	"github.com/taskkeeper/taskkeeper/internal/infrastructure/persistence/sqlite"
	"github.com/taskkeeper/taskkeeper/internal/storage/fs"
	"github.com/taskkeeper/taskkeeper/internal/storage/gcs"
	"github.com/taskkeeper/taskkeeper/internal/storage/memory"
	"github.com/taskkeeper/taskkeeper/internal/storage/snapshot"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Root context for all normal operations; cancels on SIGTERM/SIGINT.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Init Observability (Logger, Tracer, Meter)
	// Configuration via OTEL_* env vars (endpoint, headers, resource attributes)
	otelCfg := observability.Config{
		Enabled:     cfg.OTelEnabled,
		ServiceName: observability.DefaultServiceName,
	}

	lp, logger, err := observability.InitLogger(ctx, otelCfg)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		// Use a timeout to prevent hanging if collector is unreachable
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lp.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown logger provider", "error", err)
		}
	}()
	slog.SetDefault(logger)

	tp, err := observability.InitTracerProvider(ctx, otelCfg)
	if err != nil {
		return fmt.Errorf("failed to init tracer provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown tracer provider", "error", err)
		}
	}()

	mp, err := observability.InitMeterProvider(ctx, otelCfg)
	if err != nil {
		return fmt.Errorf("failed to init meter provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown meter provider", "error", err)
		}
	}()

	slog.InfoContext(ctx, "starting taskkeeper service", "env", cfg.Env)

	// Init Storage
	repo, closeRepo, err := newRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer closeRepo()

	// Init Snapshot Store (optional)
	opts := []task.Option{}
	snapStore, closeSnap, err := newSnapshotStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create snapshot store: %w", err)
	}
	if snapStore != nil {
		opts = append(opts, task.WithSnapshotStore(snapStore))
		defer closeSnap()
	}

	// Init Service and HTTP server
	svc := task.NewService(repo, opts...)
	server := apihttp.NewAPIServer(handler.NewRouter(svc), apihttp.ServerConfig{
		Host:         cfg.Host,
		Port:         cfg.Port,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})

	errResult := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(shutdownCtx, "HTTP server shutdown timed out", "error", err)
		} else {
			slog.InfoContext(shutdownCtx, "HTTP server shutdown complete")
		}
		return nil
	case err := <-errResult:
		return err
	}
}

// newRepository builds the task repository selected by the configuration.
// The returned func releases the backend's resources.
func newRepository(ctx context.Context, cfg *config.Config) (task.Repository, func(), error) {
	switch cfg.StorageType {
	case config.StoragePostgres:
		store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			return nil, nil, err
		}
		slog.InfoContext(ctx, "storage initialized", "type", cfg.StorageType, "dsn", maskPassword(cfg.DSN))
		return store, func() { _ = store.Close() }, nil

	case config.StorageSQLite:
		store, err := sqlite.NewStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		slog.InfoContext(ctx, "storage initialized", "type", cfg.StorageType, "path", cfg.SQLitePath)
		return store, func() { _ = store.Close() }, nil

	case config.StorageMemory:
		slog.InfoContext(ctx, "storage initialized", "type", cfg.StorageType)
		return memory.NewStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage type: %s", cfg.StorageType)
	}
}

// newSnapshotStore builds the optional snapshot store. A nil store means the
// snapshot endpoints report an error when called.
func newSnapshotStore(ctx context.Context, cfg *config.Config) (snapshot.Store, func(), error) {
	switch cfg.SnapshotType {
	case config.SnapshotNone:
		return nil, nil, nil
	case config.SnapshotFS:
		store, err := fs.NewStore(cfg.FSDir)
		if err != nil {
			return nil, nil, err
		}
		slog.InfoContext(ctx, "snapshot store initialized", "type", cfg.SnapshotType, "dir", cfg.FSDir)
		return store, func() {}, nil
	case config.SnapshotGCS:
		store, err := gcs.NewStore(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, nil, err
		}
		slog.InfoContext(ctx, "snapshot store initialized", "type", cfg.SnapshotType, "bucket", cfg.GCSBucket)
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown snapshot type: %s", cfg.SnapshotType)
	}
}

// maskPassword masks the password in a connection string for logging.
func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		// If parsing fails, fall back to full redaction to be safe
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}
