package transaction

import (
	"context"

	"github.com/hance08/findash/internal/app"
	"github.com/hance08/findash/internal/service"
	"github.com/hance08/findash/internal/ui"
	"github.com/hance08/findash/internal/ui/prompts"
	"github.com/hance08/findash/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type createFlags struct {
	To          string
	Amount      string
	Description string
}

type createRunner struct {
	app   *app.App
	flags *createFlags
}

func NewCreateCmd(application *app.App) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add", "new"},
		Short:   "Send a new transfer",
		Long: `Send a new transfer through an interactive form.

Flags pre-fill the form. With --yes and every required flag set, the form
is skipped.`,
		Example: `  # Interactive
  findash tx create

  # Non-interactive
  findash tx create --to ana@uacj.mx --amount 150.50 -y`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &createRunner{
				app:   application,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.To, "to", "t", "", "Recipient email")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Amount to send")
	cmd.Flags().StringVarP(&flags.Description, "description", "d", "", "Optional description")

	return cmd
}

func (r *createRunner) Run(ctx context.Context) error {
	ts := r.app.Service.Transaction

	in := service.CreateInput{
		Recipient:   r.flags.To,
		Amount:      r.flags.Amount,
		Description: r.flags.Description,
	}

	if !r.app.AssumeYes || in.Recipient == "" || in.Amount == "" {
		ui.PrintL1Title("New Transfer")
		var err error
		in, err = prompts.PromptCreateTransaction(ts.Rules(), in)
		if err != nil {
			return err
		}
	}

	views.RenderTransactionSummary(in)

	if !r.app.AssumeYes {
		ok, err := prompts.PromptConfirm("Send this transfer?", true)
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Transfer cancelled")
			return nil
		}
	}

	tx, err := ts.Create(ctx, in)
	if err != nil {
		return err
	}

	views.RenderTransactionSaved("created", tx)
	return nil
}
