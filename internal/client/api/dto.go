package api

import (
	"encoding/json"
	"time"

	"github.com/hance08/findash/internal/model"
	"github.com/shopspring/decimal"
)

// apiTransaction is the wire shape. Field presence varies between API
// versions; toModel is the only place that deals with it.
type apiTransaction struct {
	ID               string          `json:"id"`
	Amount           decimal.Decimal `json:"amount"`
	Type             string          `json:"type"`
	Description      string          `json:"description"`
	ToAccount        string          `json:"toAccount"`
	Recipient        string          `json:"recipient"`
	FromAccountID    string          `json:"fromAccountId"`
	AccountID        string          `json:"accountId"`
	FromAccountName  string          `json:"fromAccountName"`
	FromAccountEmail string          `json:"fromAccountEmail"`
	Timestamp        string          `json:"timestamp"`
	UpdatedAt        string          `json:"updatedAt"`
	Status           string          `json:"status"`
}

type listEnvelope struct {
	Transactions []apiTransaction `json:"transactions"`
}

type singleEnvelope struct {
	Transaction *apiTransaction `json:"transaction"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

// CreateRequest carries the user's input plus the originator stamped by the caller.
type CreateRequest struct {
	Recipient        string
	Amount           decimal.Decimal
	Description      string
	FromAccountID    string
	FromAccountName  string
	FromAccountEmail string
	Timestamp        time.Time
}

type UpdateRequest struct {
	Amount    decimal.Decimal
	Timestamp time.Time
}

type createBody struct {
	Recipient        string      `json:"recipient"`
	ToAccount        string      `json:"toAccount"`
	Amount           json.Number `json:"amount"`
	Description      string      `json:"description"`
	FromAccountID    string      `json:"fromAccountId,omitempty"`
	FromAccountName  string      `json:"fromAccountName,omitempty"`
	FromAccountEmail string      `json:"fromAccountEmail,omitempty"`
	Timestamp        string      `json:"timestamp"`
	Type             string      `json:"type"`
}

type updateBody struct {
	Amount    json.Number `json:"amount"`
	Timestamp string      `json:"timestamp"`
}

func newCreateBody(req CreateRequest) createBody {
	return createBody{
		Recipient:        req.Recipient,
		ToAccount:        req.Recipient,
		Amount:           json.Number(req.Amount.String()),
		Description:      req.Description,
		FromAccountID:    req.FromAccountID,
		FromAccountName:  req.FromAccountName,
		FromAccountEmail: req.FromAccountEmail,
		Timestamp:        req.Timestamp.UTC().Format(time.RFC3339),
		Type:             string(model.TxTypeDebit),
	}
}

func newUpdateBody(req UpdateRequest) updateBody {
	return updateBody{
		Amount:    json.Number(req.Amount.String()),
		Timestamp: req.Timestamp.UTC().Format(time.RFC3339),
	}
}

// toModel normalizes one wire record. A negative amount means a debit and is
// stored as its magnitude; an untyped positive amount is a credit.
func toModel(a apiTransaction) model.Transaction {
	amount := a.Amount
	typ := model.ParseType(a.Type)

	switch {
	case amount.IsNegative():
		amount = amount.Abs()
		typ = model.TxTypeDebit
	case typ == "" && amount.IsPositive():
		typ = model.TxTypeCredit
	}

	recipient := a.ToAccount
	if recipient == "" {
		recipient = a.Recipient
	}

	fromID := a.FromAccountID
	if fromID == "" {
		fromID = a.AccountID
	}

	return model.Transaction{
		ID:               a.ID,
		Amount:           amount,
		Type:             typ,
		Description:      a.Description,
		Recipient:        recipient,
		FromAccountID:    fromID,
		FromAccountName:  a.FromAccountName,
		FromAccountEmail: a.FromAccountEmail,
		Timestamp:        a.Timestamp,
		UpdatedAt:        a.UpdatedAt,
		Status:           model.ParseStatus(a.Status),
	}
}

func toModels(in []apiTransaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(in))
	for _, a := range in {
		out = append(out, toModel(a))
	}
	return out
}
