package prompts

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/hance08/findash/internal/constants"
	"github.com/hance08/findash/internal/model"
	"github.com/hance08/findash/internal/service"
	"github.com/hance08/findash/internal/utils"
	"github.com/hance08/findash/internal/validation"
)

// PromptCreateTransaction runs the transfer form. Each field is validated
// inline with the same rules the service applies.
func PromptCreateTransaction(rules *validation.Rules, preset service.CreateInput) (service.CreateInput, error) {
	in := preset

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Recipient email").
				Description(fmt.Sprintf("Allowed domains: %s", strings.Join(rules.AllowedDomains, ", "))).
				Placeholder("name@uacj.mx").
				Value(&in.Recipient).
				Validate(rules.ValidateRecipientEmail),
			huh.NewInput().
				Title("Amount").
				Description(fmt.Sprintf("Between %s and %s", utils.FormatMoney(rules.MinAmount), utils.FormatMoney(rules.MaxAmount))).
				Placeholder("0.00").
				Value(&in.Amount).
				Validate(rules.ValidateAmount),
			huh.NewText().
				Title("Description (optional)").
				Placeholder("Transferencia a ...").
				CharLimit(rules.MaxDescriptionLength).
				Value(&in.Description).
				Validate(rules.ValidateDescription),
		),
	)

	if err := form.Run(); err != nil {
		return service.CreateInput{}, err
	}

	in.Recipient = strings.TrimSpace(in.Recipient)
	in.Description = strings.TrimSpace(in.Description)
	return in, nil
}

// PromptUpdateTransaction asks for the new amount and timestamp of tx.
func PromptUpdateTransaction(rules *validation.Rules, tx model.Transaction, loc *time.Location) (service.UpdateInput, error) {
	amount, err := PromptAmount(
		fmt.Sprintf("New amount (current: %s)", utils.FormatMoney(tx.Amount)),
		"Leave empty to keep the current amount",
		func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			return rules.ValidateAmount(s)
		},
	)
	if err != nil {
		return service.UpdateInput{}, err
	}
	if strings.TrimSpace(amount) == "" {
		amount = tx.Amount.StringFixed(2)
	}

	now := time.Now().In(loc).Format(constants.DateTimeFormat)
	raw, err := PromptDate(
		"Timestamp (dd/mm/yyyy HH:mm:ss)",
		now,
		"Press Enter for now",
	)
	if err != nil {
		return service.UpdateInput{}, err
	}

	stamp, err := time.ParseInLocation(constants.DateTimeFormat, strings.TrimSpace(raw), loc)
	if err != nil {
		return service.UpdateInput{}, fmt.Errorf("invalid timestamp '%s', expected dd/mm/yyyy HH:mm:ss", raw)
	}

	return service.UpdateInput{Amount: amount, Timestamp: stamp}, nil
}

// PromptTransactionSelection lets the user pick one of txs and returns its id.
func PromptTransactionSelection(message string, txs []model.Transaction, loc *time.Location) (string, error) {
	if len(txs) == 0 {
		return "", fmt.Errorf("no transactions available")
	}

	opts := make([]huh.Option[string], 0, len(txs))
	for i, tx := range txs {
		label := fmt.Sprintf("%s  %s  %s  %s",
			utils.FormatDate(tx.Timestamp, loc),
			utils.FormatMoney(tx.Amount),
			tx.Recipient,
			tx.DisplayDescription(i),
		)
		opts = append(opts, huh.NewOption(label, tx.ID))
	}

	var selected string
	err := huh.NewSelect[string]().
		Title(message).
		Options(opts...).
		Value(&selected).
		Height(15).
		Run()

	return selected, err
}
