package views

import (
	"github.com/hance08/findash/internal/model"
	"github.com/hance08/findash/internal/service"
	"github.com/hance08/findash/internal/ui"
	"github.com/hance08/findash/internal/utils"
	"github.com/pterm/pterm"
)

// RenderTransactionSummary previews a transfer before it is sent.
func RenderTransactionSummary(in service.CreateInput) {
	pterm.DefaultSection.Println("Transfer Summary")

	description := in.Description
	if description == "" {
		description = model.DefaultDescription(in.Recipient) + pterm.Gray(" (default)")
	}

	amount := in.Amount
	if parsed, err := utils.ParseAmount(in.Amount); err == nil {
		amount = utils.FormatMoney(parsed)
	}

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"Recipient", in.Recipient},
		{"Amount", amount},
		{"Description", description},
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func RenderTransactionSaved(action string, tx model.Transaction) {
	ui.Separator()

	tableData := pterm.TableData{
		{pterm.Blue("Transaction ID"), orDash(tx.ID)},
		{pterm.Blue("Amount"), utils.FormatMoney(tx.Amount)},
		{pterm.Blue("Status"), StatusLabel(tx.Status)},
	}
	_ = pterm.DefaultTable.WithData(tableData).Render()

	pterm.Success.Printf("Transaction %s successfully!\n", action)
}
