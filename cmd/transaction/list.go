package transaction

import (
	"context"

	"github.com/hance08/findash/internal/app"
	"github.com/hance08/findash/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type listFlags struct {
	Page int
	Size int
}

type listRunner struct {
	app   *app.App
	flags *listFlags
}

func NewListCmd(application *app.App) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List your transactions, newest first",
		Long: `List your transactions, newest first.

This command displays a table of transactions with their details including
date, recipient, description, type, amount, and status.`,
		Example: `  # First page
  findash tx list

  # Third page with 25 rows
  findash tx list -p 3 -s 25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &listRunner{
				app:   application,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&flags.Page, "page", "p", 1, "Page number to display")
	cmd.Flags().IntVarP(&flags.Size, "size", "s", 0, "Rows per page (default from config)")

	return cmd
}

func (r *listRunner) Run(ctx context.Context) error {
	ts := r.app.Service.Transaction

	if err := loadTransactions(ctx, ts); err != nil {
		return err
	}

	view := ts.List(r.flags.Page, r.flags.Size)
	if view.Identity.Name != "" {
		pterm.Info.Printf("Showing transactions for %s\n\n", view.Identity.Name)
	}

	return views.NewTransactionListView(r.app.Config.Dashboard.Location()).RenderPage(view.Page)
}
