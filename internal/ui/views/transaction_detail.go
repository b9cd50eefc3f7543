package views

import (
	"time"

	"github.com/hance08/findash/internal/model"
	"github.com/hance08/findash/internal/ui"
	"github.com/hance08/findash/internal/utils"
	"github.com/pterm/pterm"
)

func RenderTransactionDetail(tx model.Transaction, index int, loc *time.Location) error {
	pterm.Println()
	ui.PrintL2Title("Transaction Info")
	infoData := pterm.TableData{
		{"Field", "Value"},
		{"ID", orDash(tx.ID)},
		{"Date", utils.FormatDate(tx.Timestamp, loc)},
		{"Description", tx.DisplayDescription(index)},
		{"Type", TypeLabel(tx.Type)},
		{"Amount", ColoredAmount(tx)},
		{"Status", StatusLabel(tx.Status)},
	}
	if tx.UpdatedAt != "" {
		infoData = append(infoData, []string{"Updated", utils.FormatDate(tx.UpdatedAt, loc)})
	}

	if err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(infoData).
		Render(); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL2Title("Parties")
	partyData := pterm.TableData{
		{"Role", "Name", "Email / Account"},
		{"From", orDash(tx.FromAccountName), orDash(tx.FromAccountEmail)},
		{"To", "-", orDash(tx.Recipient)},
	}
	if err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(partyData).
		Render(); err != nil {
		return err
	}

	if flow := tx.Flow(); flow != "" {
		pterm.Println(pterm.Gray(flow))
	}
	return nil
}
