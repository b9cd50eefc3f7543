package transaction

import (
	"context"

	"github.com/hance08/findash/internal/app"
	"github.com/hance08/findash/internal/ui"
	"github.com/hance08/findash/internal/ui/prompts"
	"github.com/hance08/findash/internal/ui/views"
	"github.com/spf13/cobra"
)

type editRunner struct {
	app *app.App
}

func NewEditCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [transaction-id]",
		Short: "Change the amount or timestamp of a transaction",
		Long: `Change the amount or timestamp of a transaction.

Without an id, pick the transaction from a list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &editRunner{
				app: application,
			}
			return runner.Run(cmd.Context(), args)
		},
	}
}

func (r *editRunner) Run(ctx context.Context, args []string) error {
	ts := r.app.Service.Transaction
	loc := r.app.Config.Dashboard.Location()

	if err := loadTransactions(ctx, ts); err != nil {
		return err
	}

	tx, err := resolveTransaction(r.app, args, "Select the transaction to edit")
	if err != nil {
		return err
	}

	ui.PrintL1Title("Edit Transaction")
	if err := views.RenderTransactionDetail(tx, 0, loc); err != nil {
		return err
	}

	in, err := prompts.PromptUpdateTransaction(ts.Rules(), tx, loc)
	if err != nil {
		return err
	}

	updated, err := ts.Update(ctx, tx.ID, in)
	if err != nil {
		return err
	}

	views.RenderTransactionSaved("updated", updated)
	return nil
}
