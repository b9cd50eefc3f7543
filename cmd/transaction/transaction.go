package transaction

import (
	"context"
	"fmt"

	"github.com/hance08/findash/internal/app"
	"github.com/hance08/findash/internal/model"
	"github.com/hance08/findash/internal/service"
	"github.com/hance08/findash/internal/ui"
	"github.com/hance08/findash/internal/ui/prompts"
	"github.com/spf13/cobra"
)

// NewTransactionCmd groups the transaction subcommands.
func NewTransactionCmd(application *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
		Long:    "Manage transactions: list, view details, create, edit or delete transfers.",
	}

	cmd.AddCommand(NewListCmd(application))
	cmd.AddCommand(NewShowCmd(application))
	cmd.AddCommand(NewCreateCmd(application))
	cmd.AddCommand(NewEditCmd(application))
	cmd.AddCommand(NewDeleteCmd(application))
	cmd.AddCommand(NewGlobalCmd(application))

	return cmd
}

// loadTransactions fills the store, spinning while it is Loading.
func loadTransactions(ctx context.Context, ts *service.TransactionService) error {
	spinner := ui.NewLoadingSpinner("Loading transactions...").Attach(ts)
	defer spinner.Stop()

	return ts.Load(ctx)
}

// resolveTransaction returns the transaction named in args, or asks the user
// to pick one.
func resolveTransaction(application *app.App, args []string, message string) (model.Transaction, error) {
	ts := application.Service.Transaction

	id := ""
	if len(args) > 0 {
		id = args[0]
	} else {
		selected, err := prompts.PromptTransactionSelection(message, ts.Snapshot().Transactions, application.Config.Dashboard.Location())
		if err != nil {
			return model.Transaction{}, err
		}
		id = selected
	}

	tx, ok := ts.Find(id)
	if !ok {
		return model.Transaction{}, fmt.Errorf("transaction '%s' not found", id)
	}
	return tx, nil
}
