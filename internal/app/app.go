package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/findash/internal/auth"
	"github.com/hance08/findash/internal/cache"
	"github.com/hance08/findash/internal/client/api"
	"github.com/hance08/findash/internal/config"
	"github.com/hance08/findash/internal/constants"
	"github.com/hance08/findash/internal/logger"
	"github.com/hance08/findash/internal/routine"
	"github.com/hance08/findash/internal/service"
	"github.com/hance08/findash/internal/store"
	"github.com/rs/zerolog"
)

const backgroundWorkers = 2

type App struct {
	Service *service.Service
	Store   store.Repository
	Config  *config.Config
	Log     zerolog.Logger

	AppDir    string
	DBPath    string
	LogPath   string
	AssumeYes bool
}

// Options carry command-line choices that affect wiring.
type Options struct {
	Debug        bool
	AssumeYes    bool
	Confirmer    service.Confirmer
	DevicePrompt auth.PromptFunc
}

// NewApp opens local storage and the log file, then wires every collaborator
// into the services. The returned cleanup releases both.
func NewApp(cfg *config.Config, migrationFS fs.FS, opts Options) (*App, func(), error) {
	appDir, err := GetAppDataDir()
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create app directory: %w", err)
	}

	dbPath, err := resolvePath(cfg.Database.Path, appDir, "findash.db")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid database path: %w", err)
	}

	logPath, err := resolvePath(cfg.Log.Path, appDir, "findash.log")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log path: %w", err)
	}

	log, logCloser, err := logger.New(logger.Options{Level: cfg.Log.Level, Path: logPath, Debug: opts.Debug})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	dbStore, err := store.NewStore(dbPath, migrationFS)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	provider := NewAuthProvider(cfg, dbStore, opts.DevicePrompt, log)

	svc := service.NewService(service.Deps{
		API:     api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, provider, log.With().Str("component", "api").Logger()),
		Cache:   cache.New(dbStore, cfg.Cache.TTL, log.With().Str("component", "cache").Logger()),
		Auth:    provider,
		Confirm: opts.Confirmer,
		Runner:  routine.NewManager(backgroundWorkers, log.With().Str("component", "routine").Logger()),
		Log:     log.With().Str("component", "service").Logger(),
	}, cfg)

	log.Debug().Str("db", dbPath).Str("auth_mode", cfg.Auth.Mode).Msg("application initialized")

	cleanup := func() {
		svc.Transaction.Close()
		if err := svc.Transaction.Wait(); err != nil {
			log.Warn().Err(err).Msg("background work finished with errors")
		}
		if err := dbStore.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
		_ = logCloser.Close()
	}

	return &App{
		Service:   svc,
		Store:     dbStore,
		Config:    cfg,
		Log:       log,
		AppDir:    appDir,
		DBPath:    dbPath,
		LogPath:   logPath,
		AssumeYes: opts.AssumeYes,
	}, cleanup, nil
}

// NewAuthProvider picks the credential source for the configured auth mode.
// Anything other than static uses the device code flow.
func NewAuthProvider(cfg *config.Config, repo store.Repository, prompt auth.PromptFunc, log zerolog.Logger) auth.Provider {
	overrides := auth.Overrides{ID: cfg.Auth.ID, Name: cfg.Auth.Name, Email: cfg.Auth.Email}

	if strings.EqualFold(cfg.Auth.Mode, constants.AuthModeStatic) {
		return auth.NewStaticProvider(cfg.Auth.Token, overrides)
	}
	return auth.NewDeviceProvider(cfg.Auth, repo, prompt, log.With().Str("component", "auth").Logger())
}

func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".findash"), nil
	}

	return filepath.Join(configDir, "findash"), nil
}

func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}

func resolvePath(raw, appDir, fallback string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return filepath.Join(appDir, fallback), nil
	}
	return ExpandPath(raw)
}
