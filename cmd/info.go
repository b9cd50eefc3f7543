package cmd

import (
	"os"

	"github.com/hance08/findash/internal/app"
	"github.com/hance08/findash/internal/cache"
	"github.com/hance08/findash/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:         "info",
		Short:       "Display application information",
		Long:        `Display current configuration, database path, and system details.`,
		Annotations: map[string]string{skipWizard: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: application,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	cfg := r.app.Config

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	dbPath := r.app.Store.Path()
	dbExists := false
	if _, err := os.Stat(dbPath); err == nil {
		dbExists = true
	}

	cachedLists := 0
	if keys, err := r.app.Store.Keys(cache.KeyPrefix); err == nil {
		cachedLists = len(keys)
	}

	authMode := cfg.Auth.Mode
	if authMode == "" {
		authMode = "(not configured)"
	}

	items := views.SystemInfoItem{
		ConfigPath:  configPath,
		DBPath:      dbPath,
		DBExists:    dbExists,
		LogPath:     r.app.LogPath,
		APIBaseURL:  cfg.API.BaseURL,
		CacheTTL:    cfg.Cache.TTL.String(),
		CachedLists: cachedLists,
		AuthMode:    authMode,
		Timezone:    cfg.Dashboard.Location().String(),
		AppDataDir:  r.app.AppDir,
	}

	return views.RenderSystemInfo(items)
}
