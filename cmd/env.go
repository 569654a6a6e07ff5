package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/careerpath/advisor/internal/config"
	"github.com/careerpath/advisor/internal/llm"
	"github.com/careerpath/advisor/internal/logging"
	"github.com/careerpath/advisor/internal/profile"
	"github.com/careerpath/advisor/internal/store"
)

// errNoDatabase is returned by commands that need the SQLite store when
// running ephemeral or when the database could not be opened.
var errNoDatabase = errors.New("database not available (running with --ephemeral or the database failed to open)")

// appEnv is what every command needs: resolved config, a logger, and the
// profile store with its backing database.
type appEnv struct {
	cfg      config.Config
	logger   *slog.Logger
	logFile  io.Closer
	db       *store.Store
	profiles *profile.Store

	// storage names where the profile lives, for messages.
	storage string
}

func mustBind(key string, f *pflag.Flag) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", f.Name, err))
	}
}

// setup loads configuration and opens storage. A database that cannot be
// opened is not fatal: the profile falls back to unavailable storage and
// the funnel starts at login, as it would for a new user.
func setup(cmd *cobra.Command) (*appEnv, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, file)
	if err != nil {
		return nil, err
	}
	if !cfg.LLM.Enabled() {
		if discovered, ok := llm.DiscoverConfig(os.Getenv); ok {
			cfg.LLM = discovered
		}
	}

	rt := &appEnv{cfg: cfg}
	rt.logger = rt.openLogger()
	rt.logger = rt.logger.With("session_id", uuid.NewString())
	if cfg.File != "" {
		rt.logger.Debug("config loaded", "file", cfg.File)
	}

	backend, err := rt.openBackend()
	if err != nil {
		return nil, err
	}
	rt.profiles = profile.New(backend, profile.WithLogger(rt.logger))
	return rt, nil
}

// openLogger logs to a file because the terminal UI owns the screen.
func (rt *appEnv) openLogger() *slog.Logger {
	path := rt.cfg.LogFile
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return logging.Discard()
		}
		path = filepath.Join(dir, "advisor.log")
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		return logging.Discard()
	}
	rt.logFile = f
	return logging.New(logging.Config{
		Level:  rt.cfg.LogLevel,
		Format: rt.cfg.LogFormat,
		Output: f,
	})
}

func (rt *appEnv) openBackend() (profile.Backend, error) {
	if rt.cfg.Ephemeral {
		rt.logger.Info("using in-memory profile storage")
		rt.storage = "in-memory storage"
		return profile.NewMemoryBackend(nil), nil
	}

	var backend profile.Backend
	dbPath, err := resolveDBPath(rt.cfg.DBPath)
	if err == nil {
		rt.db, err = store.Open(dbPath)
	}
	if err != nil {
		rt.logger.Warn("profile storage unavailable", "error", err)
		backend = profile.Unavailable{Cause: err}
		rt.storage = "unavailable storage"
	} else {
		rt.logger.Debug("database opened", "path", dbPath)
		backend = rt.db.ProfileBackend()
		rt.storage = dbPath
	}

	if rt.cfg.CacheSize <= 0 {
		return backend, nil
	}
	cached, err := profile.NewCachedBackend(backend, rt.cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create profile cache: %w", err)
	}
	return cached, nil
}

// events returns the LLM event repository, or nil without a database.
func (rt *appEnv) events() store.EventRepo {
	if rt.db == nil {
		return nil
	}
	return rt.db.EventRepo()
}

func (rt *appEnv) Close() {
	if rt.db != nil {
		if err := rt.db.Close(); err != nil {
			rt.logger.Warn("close database", "error", err)
		}
	}
	if rt.logFile != nil {
		rt.logFile.Close()
	}
}

// resolveDBPath returns the --db/ADVISOR_DB path when set, otherwise the
// default XDG path.
func resolveDBPath(p string) (string, error) {
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
