package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/hance08/findash/internal/constants"
	"github.com/shopspring/decimal"
)

type TxType string

const (
	TxTypeCredit TxType = constants.TypeCredit
	TxTypeDebit  TxType = constants.TypeDebit
)

type TxStatus string

const (
	TxStatusCompleted TxStatus = constants.StatusCompleted
	TxStatusPending   TxStatus = constants.StatusPending
	TxStatusFailed    TxStatus = constants.StatusFailed
)

// Transaction is the canonical record used everywhere past the API boundary.
// Amount is always a non-negative magnitude; direction lives in Type.
type Transaction struct {
	ID               string          `json:"id,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Type             TxType          `json:"type,omitempty"`
	Description      string          `json:"description,omitempty"`
	Recipient        string          `json:"toAccount,omitempty"`
	FromAccountID    string          `json:"fromAccountId,omitempty"`
	FromAccountName  string          `json:"fromAccountName,omitempty"`
	FromAccountEmail string          `json:"fromAccountEmail,omitempty"`
	Timestamp        string          `json:"timestamp,omitempty"`
	UpdatedAt        string          `json:"updatedAt,omitempty"`
	Status           TxStatus        `json:"status,omitempty"`
}

// Time parses Timestamp. ok is false when the record has no usable timestamp.
func (t Transaction) Time() (time.Time, bool) {
	return ParseTimestamp(t.Timestamp)
}

// Signed returns the amount with a negative sign for debits.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TxTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t Transaction) IsCredit() bool {
	return t.Type == TxTypeCredit
}

// DisplayDescription falls back to a positional label for records without a description.
func (t Transaction) DisplayDescription(index int) string {
	if strings.TrimSpace(t.Description) != "" {
		return t.Description
	}
	return fmt.Sprintf("Transaction #%d", index+1)
}

// Flow describes the originator and destination of the transaction.
func (t Transaction) Flow() string {
	switch {
	case t.FromAccountName != "" && t.Recipient != "":
		return fmt.Sprintf("From: %s → To: %s", t.FromAccountName, t.Recipient)
	case t.Recipient != "":
		return fmt.Sprintf("To: %s", t.Recipient)
	case t.FromAccountName != "":
		return fmt.Sprintf("From: %s", t.FromAccountName)
	default:
		return ""
	}
}

func DefaultDescription(recipient string) string {
	return constants.DefaultDescriptionPrefix + recipient
}

func ParseType(raw string) TxType {
	switch TxType(strings.ToLower(strings.TrimSpace(raw))) {
	case TxTypeCredit:
		return TxTypeCredit
	case TxTypeDebit:
		return TxTypeDebit
	default:
		return ""
	}
}

func ParseStatus(raw string) TxStatus {
	switch TxStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case TxStatusCompleted:
		return TxStatusCompleted
	case TxStatusPending:
		return TxStatusPending
	case TxStatusFailed:
		return TxStatusFailed
	default:
		return ""
	}
}
