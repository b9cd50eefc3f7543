package transaction

import (
	"context"
	"fmt"

	"github.com/hance08/findash/internal/app"
	"github.com/hance08/findash/internal/ui/views"
	"github.com/spf13/cobra"
)

type ShowCommandRunner struct {
	app *app.App
}

func NewShowCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction-id>",
		Short: "Show transaction details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ShowCommandRunner{
				app: application,
			}
			return runner.Run(cmd.Context(), args[0])
		},
	}
}

func (r *ShowCommandRunner) Run(ctx context.Context, id string) error {
	ts := r.app.Service.Transaction

	if err := loadTransactions(ctx, ts); err != nil {
		return err
	}

	for i, tx := range ts.Snapshot().Transactions {
		if tx.ID == id {
			return views.RenderTransactionDetail(tx, i, r.app.Config.Dashboard.Location())
		}
	}

	return fmt.Errorf("transaction '%s' not found", id)
}
