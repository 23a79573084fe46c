package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/questforge/questforge/internal/api"
	"github.com/questforge/questforge/internal/app/engine"
	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/store"
	qsync "github.com/questforge/questforge/internal/sync"
)

// Daemon is the core QuestForge runtime. It wires together all services.
type Daemon struct {
	Config      Config
	Store       *store.Store
	Coordinator *qsync.Coordinator
	Engine      *engine.Service
	Server      *api.Server

	scheduler   gocron.Scheduler
	unsubscribe func()
	cancel      context.CancelFunc
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
	// Open SQLite
	st, err := store.Open(questforgeHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Load the saved snapshot, or start a fresh character.
	ctx, loadCancel := context.WithTimeout(context.Background(), 10*time.Second)
	state, found, err := st.Get(ctx, cfg.User.ID)
	loadCancel()
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("load user state: %w", err)
	}
	if !found {
		state = domain.NewUserState(cfg.User.Name)
	}

	// Write coordinator
	notifier := domain.NotifierFunc(func(n domain.Notification) {
		log.Printf("[%s] %s: %s", n.Type, n.Title, n.Message)
	})
	coord := qsync.New(st, cfg.User.ID,
		qsync.WithDebounce(time.Duration(cfg.Sync.DebounceMS)*time.Millisecond),
		qsync.WithWarnNotifier(notifier),
	)

	// Reward engine
	eng := engine.New(cfg.User.ID, state, coord, st,
		engine.WithNotifier(notifier),
	)

	// Remote writes flow back into the engine, last-writer-wins.
	unsub := coord.Subscribe(eng.ApplyRemote)

	// API server
	srv := api.NewServer(eng, st, cfg.User.ID)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	d := &Daemon{
		Config:      cfg,
		Store:       st,
		Coordinator: coord,
		Engine:      eng,
		Server:      srv,
		unsubscribe: unsub,
	}

	// Maintenance sweep: recurring quest resets, boost expiry, streak
	// breaks. Runs even when nobody is completing quests.
	sched, err := gocron.NewScheduler()
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	interval := time.Duration(cfg.Sync.SweepIntervalS) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(eng.Sweep),
	); err != nil {
		d.Close()
		return nil, fmt.Errorf("schedule sweep: %w", err)
	}
	d.scheduler = sched

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.scheduler.Start()
	d.Engine.Sweep() // Catch up on time passed while the daemon was down

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
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

		_ = httpServer.Shutdown(shutdownCtx)
	}()

	fmt.Printf("QuestForge serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	err := httpServer.ListenAndServe()
	d.Close()
	if err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources. Pending debounced writes are
// flushed before the store closes.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.scheduler != nil {
		_ = d.scheduler.Shutdown()
	}
	if d.unsubscribe != nil {
		d.unsubscribe()
	}
	if d.Coordinator != nil {
		_ = d.Coordinator.Close()
	}
	if d.Store != nil {
		_ = d.Store.Close()
	}
}
