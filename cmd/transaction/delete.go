package transaction

import (
	"context"

	"github.com/hance08/findash/internal/app"
	"github.com/hance08/findash/internal/ui/views"
	"github.com/spf13/cobra"
)

type deleteRunner struct {
	app *app.App
}

func NewDeleteCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete [transaction-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Long:    `Delete a transaction. This action cannot be undone.`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &deleteRunner{
				app: application,
			}
			return runner.Run(cmd.Context(), args)
		},
	}
}

func (r *deleteRunner) Run(ctx context.Context, args []string) error {
	ts := r.app.Service.Transaction

	if err := loadTransactions(ctx, ts); err != nil {
		return err
	}

	tx, err := resolveTransaction(r.app, args, "Select the transaction to delete")
	if err != nil {
		return err
	}

	views.RenderTransactionDeletePreview(tx, r.app.Config.Dashboard.Location())

	msg, err := ts.Delete(ctx, tx.ID)
	if err != nil {
		return err
	}

	views.RenderTransactionDeleteSuccess(msg)
	return nil
}
