package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/hance08/findash/cmd/transaction"
	"github.com/hance08/findash/internal/app"
	"github.com/hance08/findash/internal/config"
	"github.com/hance08/findash/internal/constants"
	"github.com/hance08/findash/internal/errhandler"
	"github.com/hance08/findash/internal/logger"
	"github.com/hance08/findash/internal/service"
	"github.com/hance08/findash/internal/ui"
	"github.com/hance08/findash/internal/ui/prompts"
	"github.com/hance08/findash/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// skipWizard marks commands that must work before sign-in is configured.
const skipWizard = "skip-wizard"

type rootFlags struct {
	ConfigFile string
	Debug      bool
	Yes        bool
}

var cfg *config.Config

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	flags := &rootFlags{}
	application := &app.App{}
	cleanup := func() {}

	rootCmd := &cobra.Command{
		Use:   "findash",
		Short: "findash is a terminal dashboard for your fintech transactions",
		Long: `findash signs you in, fetches your transactions and renders KPIs,
an hourly activity chart and the latest transfers in the terminal.

Transactions can be created, edited and deleted through interactive forms.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(flags.ConfigFile); err != nil {
				return err
			}

			if cfg.Auth.Mode == "" && cmd.Annotations[skipWizard] == "" {
				if err := initWizard(flags.Yes); err != nil {
					return err
				}
			}

			var confirmer service.Confirmer = ui.SurveyConfirmer{}
			if flags.Yes {
				confirmer = ui.AutoConfirmer{}
			}

			built, release, err := app.NewApp(cfg, migrations, app.Options{
				Debug:        flags.Debug,
				AssumeYes:    flags.Yes,
				Confirmer:    confirmer,
				DevicePrompt: views.RenderDeviceCode,
			})
			if err != nil {
				return err
			}

			*application = *built
			cleanup = release
			cmd.SetContext(logger.WithContext(cmd.Context(), built.Log))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "set the config file path")
	rootCmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "also write logs to stderr")
	rootCmd.PersistentFlags().BoolVarP(&flags.Yes, "yes", "y", false, "answer yes to every confirmation")

	rootCmd.AddCommand(NewDashCmd(application))
	rootCmd.AddCommand(transaction.NewTransactionCmd(application))
	rootCmd.AddCommand(NewLogoutCmd(application))
	rootCmd.AddCommand(NewInfoCmd(application))

	err := rootCmd.ExecuteContext(ctx)
	cleanup()

	if code := errhandler.HandleError(err); code != 0 {
		os.Exit(code)
	}
}

func initConfig(cfgFile string) error {
	v := viper.GetViper()
	config.RegisterDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.GetAppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		v.AddConfigPath(appDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if err := createDefaultConfig(v, appDir); err != nil {
			return fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	v.SetEnvPrefix("FINDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // allow using environment variables to override

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = v.ConfigFileUsed()

	return nil
}

// initWizard runs on first use and stores the chosen sign-in mode.
func initWizard(assumeYes bool) error {
	mode, token := constants.AuthModeDevice, ""

	if !assumeYes {
		var err error
		mode, token, err = prompts.PromptInitAuth(constants.AuthModeDevice)
		if err != nil {
			return err
		}
	}

	viper.Set("auth.mode", mode)
	if token != "" {
		viper.Set("auth.token", token)
	}

	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}

	cfg.Auth.Mode = mode
	cfg.Auth.Token = token

	pterm.Success.Printf("Configuration saved. Sign-in mode set to: %s\n", mode)
	return nil
}

func createDefaultConfig(v *viper.Viper, appDir string) error {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
