package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jask/spawncodes/internal/config"
	"github.com/jask/spawncodes/internal/database"
	"github.com/jask/spawncodes/internal/database/repository"
	"github.com/jask/spawncodes/internal/prefs"
	"github.com/jask/spawncodes/internal/service"
	"github.com/jask/spawncodes/internal/spawngen"
)

func main() {
	Execute()
}

// env is everything a command needs, built from config.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *service.LocationStore
	session  *service.Session
	exporter *service.FileExporter
	closers  []func() error
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i]()
	}
}

// setup loads config and opens the location store. When logToFile is set
// logs go to the configured file so they do not draw over the TUI.
func setup(ctx context.Context, logToFile bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	e := &env{cfg: cfg}

	var out io.Writer = os.Stderr
	if logToFile && cfg.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		e.closers = append(e.closers, f.Close)
		out = f
	}
	e.logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}))
	slog.SetDefault(e.logger)

	backend, err := openBackend(ctx, e)
	if err != nil {
		e.Close()
		return nil, err
	}
	store, err := service.OpenLocationStore(ctx, backend)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.store = store
	e.exporter = &service.FileExporter{Format: cfg.Export.Format, Header: cfg.Export.Header}
	e.session = &service.Session{
		Generator: spawngen.New(),
		Writer:    e.exporter,
		Logger:    e.logger,
	}
	return e, nil
}

func openBackend(ctx context.Context, e *env) (service.LocationBackend, error) {
	if err := os.MkdirAll(filepath.Dir(e.cfg.Store.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir store dir: %w", err)
	}
	if e.cfg.Store.Backend != "sqlite" {
		return &prefs.LocationsFile{Path: e.cfg.Store.Path}, nil
	}

	db, err := database.Open(e.cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	e.closers = append(e.closers, db.Close)
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	importFileLocations(ctx, e, db)
	return repository.NewLocationRepo(db), nil
}

// importFileLocations carries shortcuts over from the JSON store the first
// time the sqlite backend is used.
func importFileLocations(ctx context.Context, e *env, db *sql.DB) {
	path := config.DefaultStorePath("file")
	locs, err := (&prefs.LocationsFile{Path: path}).Load(ctx)
	if err != nil {
		e.logger.Warn("skip importing file locations", "path", path, "err", err)
		return
	}
	seeded, err := database.SeedLocations(ctx, db, locs)
	if err != nil {
		e.logger.Warn("import file locations", "err", err)
		return
	}
	if seeded {
		e.logger.Info("imported saved locations", "count", len(locs), "from", path)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
