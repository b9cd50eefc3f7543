package transaction

import (
	"context"

	"github.com/hance08/findash/internal/app"
	"github.com/hance08/findash/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type globalRunner struct {
	app *app.App
}

func NewGlobalCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "global",
		Short: "List every user's transactions (admin)",
		Long: `List the transactions of every user.

Requires an account with the admin permission on the API.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &globalRunner{
				app: application,
			}
			return runner.Run(cmd.Context())
		},
	}
}

func (r *globalRunner) Run(ctx context.Context) error {
	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Loading global transactions...")
	txs, err := r.app.Service.Transaction.GlobalTransactions(ctx)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		return err
	}

	return views.NewTransactionListView(r.app.Config.Dashboard.Location()).RenderGlobal(txs)
}
