package views

import (
	"github.com/hance08/findash/internal/model"
	"github.com/hance08/findash/internal/utils"
	"github.com/pterm/pterm"
)

func StatusLabel(status model.TxStatus) string {
	switch status {
	case model.TxStatusCompleted:
		return pterm.Green("Completed")
	case model.TxStatusPending:
		return pterm.Yellow("Pending")
	case model.TxStatusFailed:
		return pterm.Red("Failed")
	default:
		return pterm.Gray("-")
	}
}

func TypeLabel(t model.TxType) string {
	switch t {
	case model.TxTypeCredit:
		return "Credit"
	case model.TxTypeDebit:
		return "Debit"
	default:
		return "-"
	}
}

// ColoredAmount shows the magnitude, with the direction carried by color and sign.
func ColoredAmount(tx model.Transaction) string {
	amount := utils.FormatMoney(tx.Amount)
	switch tx.Type {
	case model.TxTypeCredit:
		return pterm.Green("+" + amount)
	case model.TxTypeDebit:
		return pterm.Red("-" + amount)
	default:
		return amount
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
