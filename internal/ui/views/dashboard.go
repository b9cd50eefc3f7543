package views

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hance08/findash/internal/logic/metrics"
	"github.com/hance08/findash/internal/service"
	"github.com/hance08/findash/internal/ui"
	"github.com/hance08/findash/internal/utils"
	"github.com/pterm/pterm"
)

type DashboardView struct {
	loc *time.Location
}

func NewDashboardView(loc *time.Location) *DashboardView {
	return &DashboardView{loc: loc}
}

func (v *DashboardView) Render(view service.DashboardView) error {
	v.renderHeader(view)

	if err := v.renderKPIs(view); err != nil {
		return err
	}
	if err := v.renderChart(view); err != nil {
		return err
	}
	return v.renderRecent(view)
}

func (v *DashboardView) renderHeader(view service.DashboardView) {
	name := view.Identity.Name
	if name == "" {
		name = "Dashboard"
	}
	ui.PrintL1Title("%s", name)

	pterm.Println(pterm.Gray(fmt.Sprintf("%s  ·  %s", orDash(view.Identity.Email), orDash(view.Identity.ID))))
	if view.FromCache {
		pterm.Info.Printf("Served from cache (updated %s), refreshing in the background\n", humanize.Time(view.CachedAt))
	}
	pterm.Println()
}

func (v *DashboardView) renderKPIs(view service.DashboardView) error {
	ui.PrintL2Title("Overview")

	k := view.KPIs
	tableData := pterm.TableData{
		{"Total Volume", "Transactions", "Average", "Last 24h"},
		{
			pterm.Cyan(utils.FormatMoney(k.TotalVolume)),
			pterm.Cyan(humanize.Comma(int64(k.TotalCount))),
			pterm.Cyan(utils.FormatMoney(k.AvgTransaction)),
			pterm.Cyan(humanize.Comma(int64(k.RecentCount))),
		},
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithBoxed().
		WithData(tableData).
		Render()
}

func (v *DashboardView) renderChart(view service.DashboardView) error {
	pterm.Println()
	ui.PrintL2Title("Activity, last %d hours", len(view.Buckets))

	count, volume := metrics.Total(view.Buckets)
	if count == 0 {
		pterm.Println(pterm.Gray("No activity in this window"))
		return nil
	}

	bars := make(pterm.Bars, 0, len(view.Buckets))
	for _, b := range view.Buckets {
		bars = append(bars, pterm.Bar{
			Label: b.Label,
			Value: int(b.Volume.Round(0).IntPart()),
		})
	}

	if err := pterm.DefaultBarChart.
		WithBars(bars).
		WithHorizontal().
		WithShowValue().
		Render(); err != nil {
		return err
	}

	pterm.Println(pterm.Gray(fmt.Sprintf("%d transactions, %s", count, utils.FormatMoney(volume))))
	return nil
}

func (v *DashboardView) renderRecent(view service.DashboardView) error {
	pterm.Println()
	ui.PrintL2Title("Recent transactions")

	if len(view.Recent) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	tableData := pterm.TableData{{"Date", "Recipient", "Description", "Amount", "Status"}}
	for i, tx := range view.Recent {
		date := utils.FormatDate(tx.Timestamp, v.loc)
		if ts, ok := tx.Time(); ok {
			date += pterm.Gray(" (" + humanize.Time(ts) + ")")
		}
		tableData = append(tableData, []string{
			date,
			orDash(tx.Recipient),
			tx.DisplayDescription(i),
			ColoredAmount(tx),
			StatusLabel(tx.Status),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
