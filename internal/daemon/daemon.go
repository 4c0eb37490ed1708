package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moodmuse-app/moodmuse/internal/api"
	"github.com/moodmuse-app/moodmuse/internal/app/journal"
	"github.com/moodmuse-app/moodmuse/internal/app/tracking"
	"github.com/moodmuse-app/moodmuse/internal/health"
	"github.com/moodmuse-app/moodmuse/internal/infra/catalog"
	_ "github.com/moodmuse-app/moodmuse/internal/infra/metrics" // Register Prometheus metrics
	"github.com/moodmuse-app/moodmuse/internal/infra/reflection"
	"github.com/moodmuse-app/moodmuse/internal/infra/sqlite"
)

// Version is stamped by the CLI at startup.
var Version = "dev"

// Daemon is the core MoodMuse runtime. It wires together all services.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Tracker *tracking.Tracker
	Journal *journal.Service
	Server  *api.Server
	Health  *health.Checker
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dataDir := cfg.Journal.DataDir
	if dataDir == "" {
		dataDir = moodmuseHome()
	}

	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	userKey := cfg.Journal.UserKey
	if userKey == "" {
		userKey = "default"
	}

	tracker, err := tracking.NewTracker(db, userKey, catalog.Lookup)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init tracker: %w", err)
	}

	timeout := time.Duration(cfg.Reflection.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	reflector := reflection.New(cfg.Reflection.Endpoint, cfg.Reflection.Model, timeout)

	jrnl := journal.NewService(db, reflector)

	srv := api.NewServer(tracker, jrnl, Version)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	checker := health.NewChecker(db, dataDir, userKey)
	srv.SetChecker(checker)

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Tracker: tracker,
		Journal: jrnl,
		Server:  srv,
		Health:  checker,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker (always runs)
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = d.Tracker.Flush()
		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("MoodMuse serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.Tracker != nil {
		_ = d.Tracker.Flush()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
