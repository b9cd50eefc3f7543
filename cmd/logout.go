package cmd

import (
	"context"

	"github.com/hance08/findash/internal/app"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type logoutRunner struct {
	app *app.App
}

func NewLogoutCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear cached transactions",
		Long: `Remove the stored credential and every cached transaction list on
this device. The next command will ask you to sign in again.`,
		Annotations: map[string]string{skipWizard: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &logoutRunner{
				app: application,
			}
			return runner.Run(cmd.Context())
		},
	}
}

func (r *logoutRunner) Run(ctx context.Context) error {
	if err := r.app.Service.Session.Logout(ctx); err != nil {
		return err
	}

	pterm.Success.Println("Signed out. Cached transactions were removed.")
	return nil
}
