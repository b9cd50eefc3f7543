package views

import (
	"time"

	"github.com/hance08/findash/internal/logic/metrics"
	"github.com/hance08/findash/internal/model"
	"github.com/hance08/findash/internal/utils"
	"github.com/pterm/pterm"
)

type TransactionListView struct {
	loc *time.Location
}

func NewTransactionListView(loc *time.Location) *TransactionListView {
	return &TransactionListView{loc: loc}
}

// RenderPage shows one page of the user's transactions.
func (v *TransactionListView) RenderPage(page metrics.Page) error {
	if page.TotalItems == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Printf("Transactions (page %d of %d)", page.Number, page.TotalPages)
	offset := (page.Number - 1) * page.Size
	if err := v.renderTable(page.Items, offset, false); err != nil {
		return err
	}

	pterm.Info.Printf("Showing %d of %d transactions\n", len(page.Items), page.TotalItems)
	return nil
}

// RenderGlobal shows every user's transactions, with the originator column.
func (v *TransactionListView) RenderGlobal(txs []model.Transaction) error {
	if len(txs) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Printf("Global transactions")
	if err := v.renderTable(txs, 0, true); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d transactions\n", len(txs))
	return nil
}

func (v *TransactionListView) renderTable(txs []model.Transaction, offset int, withOriginator bool) error {
	header := []string{"ID", "Date", "Recipient", "Description", "Amount", "Status"}
	if withOriginator {
		header = append([]string{header[0], header[1], "From"}, header[2:]...)
	}
	tableData := pterm.TableData{header}

	for i, tx := range txs {
		row := []string{
			orDash(tx.ID),
			utils.FormatDate(tx.Timestamp, v.loc),
			orDash(tx.Recipient),
			tx.DisplayDescription(offset + i),
			ColoredAmount(tx),
			StatusLabel(tx.Status),
		}
		if withOriginator {
			from := tx.FromAccountName
			if from == "" {
				from = tx.FromAccountEmail
			}
			row = append([]string{row[0], row[1], orDash(from)}, row[2:]...)
		}
		tableData = append(tableData, row)
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
