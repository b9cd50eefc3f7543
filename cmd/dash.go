package cmd

import (
	"context"

	"github.com/hance08/findash/internal/app"
	"github.com/hance08/findash/internal/errhandler"
	"github.com/hance08/findash/internal/errs"
	"github.com/hance08/findash/internal/logger"
	"github.com/hance08/findash/internal/service"
	"github.com/hance08/findash/internal/ui"
	"github.com/hance08/findash/internal/ui/prompts"
	"github.com/hance08/findash/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type dashRunner struct {
	app *app.App
}

func NewDashCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:     "dash",
		Aliases: []string{"d", "dashboard"},
		Short:   "Show the transaction dashboard",
		Long: `Show KPIs, the hourly activity chart and the latest transactions.

Cached data is shown immediately when it is fresh and refreshed in the
background; otherwise the transactions are fetched before rendering.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &dashRunner{
				app: application,
			}
			return runner.Run(cmd.Context())
		},
	}
}

func (r *dashRunner) Run(ctx context.Context) error {
	ts := r.app.Service.Transaction

	spinner := ui.NewLoadingSpinner("Loading transactions...").Attach(ts)
	defer spinner.Stop()

	if err := r.load(ctx, ts); err != nil {
		return err
	}

	loc := r.app.Config.Dashboard.Location()
	view := ts.Dashboard(ts.Now())
	if err := views.NewDashboardView(loc).Render(view); err != nil {
		return err
	}

	if !view.FromCache {
		return nil
	}

	// Let the background refresh land so the next run starts from a warm cache.
	if err := ts.Wait(); err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Msg("background refresh failed")
		return nil
	}
	if snap := ts.Snapshot(); !snap.FromCache {
		pterm.Info.Printf("Cache refreshed, %d transactions loaded\n", len(snap.Transactions))
	}
	return nil
}

// load offers a retry after each retryable failure.
func (r *dashRunner) load(ctx context.Context, ts *service.TransactionService) error {
	err := ts.Load(ctx)
	for err != nil {
		if r.app.AssumeYes || errs.IsAuth(err) || !ts.Snapshot().CanRetry {
			return err
		}

		pterm.Error.Println(errhandler.Capitalize(err.Error()))
		retry, perr := prompts.PromptConfirm("Retry?", true)
		if perr != nil {
			return perr
		}
		if !retry {
			return errs.ErrCancelled
		}

		err = ts.Retry(ctx)
	}
	return nil
}
