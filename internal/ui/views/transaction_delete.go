package views

import (
	"time"

	"github.com/hance08/findash/internal/model"
	"github.com/hance08/findash/internal/ui"
	"github.com/hance08/findash/internal/utils"
	"github.com/pterm/pterm"
)

func RenderTransactionDeletePreview(tx model.Transaction, loc *time.Location) {
	pterm.Warning.Printf("About to delete transaction %s:\n", tx.ID)

	deletionInfo := pterm.TableData{
		{"Date", utils.FormatDate(tx.Timestamp, loc)},
		{"Recipient", orDash(tx.Recipient)},
		{"Description", orDash(tx.Description)},
		{"Amount", utils.FormatMoney(tx.Amount)},
	}

	_ = pterm.DefaultTable.WithData(deletionInfo).Render()
	pterm.Warning.Println("This action cannot be undone!")
}

func RenderTransactionDeleteSuccess(message string) {
	pterm.Success.Println(message)
	ui.Separator()
}
