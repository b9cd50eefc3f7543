package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hance08/findash/internal/errs"
	"github.com/hance08/findash/internal/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) AccessToken(ctx context.Context) (string, error) {
	return s.token, s.err
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second, staticTokens{token: "tok"}, zerolog.Nop())
}

func TestListNormalizes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/transactions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing bearer token")
		}
		if r.Header.Get(HeaderCorrelationID) == "" {
			t.Errorf("missing correlation id")
		}
		_, _ = io.WriteString(w, `{"transactions": [
			{"id": "1", "amount": -42.5, "recipient": "a@uacj.mx", "timestamp": "2024-03-10T10:00:00Z", "status": "completed"},
			{"id": "2", "amount": "100", "type": "", "toAccount": "b@uacj.mx", "accountId": "acc-1"},
			{"id": "3", "amount": 5, "type": "DEBIT", "status": "weird"}
		]}`)
	})

	txs, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}

	first := txs[0]
	if !first.Amount.Equal(decimal.RequireFromString("42.5")) || first.Type != model.TxTypeDebit {
		t.Fatalf("negative amount should become a debit magnitude, got %s %s", first.Amount, first.Type)
	}
	if first.Recipient != "a@uacj.mx" || first.Status != model.TxStatusCompleted {
		t.Fatalf("unexpected first record %+v", first)
	}

	second := txs[1]
	if second.Type != model.TxTypeCredit || second.Recipient != "b@uacj.mx" || second.FromAccountID != "acc-1" {
		t.Fatalf("unexpected second record %+v", second)
	}

	third := txs[2]
	if third.Type != model.TxTypeDebit || third.Status != "" {
		t.Fatalf("unexpected third record %+v", third)
	}
}

func TestListAcceptsBareArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id": "1", "amount": 1}]`)
	})

	txs, err := c.List(context.Background())
	if err != nil || len(txs) != 1 {
		t.Fatalf("expected one transaction, got %d (%v)", len(txs), err)
	}
}

func TestCreateBody(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"transaction": {"id": "new", "amount": 250, "type": "debit", "status": "pending"}}`)
	})

	tx, err := c.Create(context.Background(), CreateRequest{
		Recipient:        "prof@uacj.mx",
		Amount:           decimal.RequireFromString("250.00"),
		Description:      "Lunch",
		FromAccountID:    "oid-1",
		FromAccountName:  "Ana",
		FromAccountEmail: "ana@uacj.mx",
		Timestamp:        time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tx.ID != "new" || tx.Status != model.TxStatusPending {
		t.Fatalf("unexpected created transaction %+v", tx)
	}

	if got["recipient"] != "prof@uacj.mx" || got["toAccount"] != "prof@uacj.mx" {
		t.Fatalf("expected recipient stamped twice, got %v", got)
	}
	if got["amount"] != float64(250) {
		t.Fatalf("expected numeric amount, got %#v", got["amount"])
	}
	if got["type"] != "debit" || got["fromAccountId"] != "oid-1" || got["timestamp"] != "2024-03-10T12:00:00Z" {
		t.Fatalf("unexpected originator fields %v", got)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			if r.URL.Path != "/transactions/abc" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["amount"] != 99.5 {
				t.Errorf("unexpected amount %#v", body["amount"])
			}
			_, _ = io.WriteString(w, `{"id": "abc", "amount": 99.5, "updatedAt": "2024-03-11T00:00:00Z"}`)
		case http.MethodDelete:
			_, _ = io.WriteString(w, `{"message": "Transaction abc deleted"}`)
		}
	})

	tx, err := c.Update(context.Background(), "abc", UpdateRequest{
		Amount:    decimal.RequireFromString("99.5"),
		Timestamp: time.Now(),
	})
	if err != nil || tx.UpdatedAt == "" {
		t.Fatalf("Update: %+v %v", tx, err)
	}

	msg, err := c.Delete(context.Background(), "abc")
	if err != nil || msg != "Transaction abc deleted" {
		t.Fatalf("Delete: %q %v", msg, err)
	}

	if _, err := c.Delete(context.Background(), " "); !errs.IsValidation(err) {
		t.Fatalf("expected validation error for empty id, got %v", err)
	}
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		check  func(error) bool
		msg    string
	}{
		{http.StatusUnauthorized, errs.IsAuth, errs.MsgCredentialRejected},
		{http.StatusForbidden, errs.IsAuth, errs.MsgInsufficientPermission},
		{http.StatusInternalServerError, errs.IsNetwork, "server error, try again later (status 500)"},
	}

	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})

		_, err := c.ListGlobal(context.Background())
		if !tc.check(err) {
			t.Fatalf("status %d: unexpected error type %T", tc.status, err)
		}
		if err.Error() != tc.msg {
			t.Fatalf("status %d: expected %q, got %q", tc.status, tc.msg, err.Error())
		}
	}
}

func TestInvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	})

	_, err := c.List(context.Background())
	var netErr *errs.NetworkError
	if !errors.As(err, &netErr) || netErr.Message != errs.MsgInvalidResponse {
		t.Fatalf("expected invalid response error, got %v", err)
	}
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond, staticTokens{token: "tok"}, zerolog.Nop())
	_, err := c.List(context.Background())

	var netErr *errs.NetworkError
	if !errors.As(err, &netErr) || !netErr.Timeout {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, staticTokens{token: "tok"}, zerolog.Nop())
	_, err := c.List(context.Background())
	if !errs.IsNetwork(err) || err.Error() != errs.MsgConnectionFailed {
		t.Fatalf("expected connection failure, got %v", err)
	}
}

func TestMissingCredential(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, staticTokens{}, zerolog.Nop())
	_, err := c.List(context.Background())

	var authErr *errs.AuthError
	if !errors.As(err, &authErr) || authErr.Kind != errs.AuthMissing {
		t.Fatalf("expected missing credential, got %v", err)
	}
	if called {
		t.Fatalf("no request should be sent without a credential")
	}
}

func TestDeleteWithoutMessageFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `"ok"`)
	}))
	defer srv.Close()

	buf := &bytes.Buffer{}
	log := zerolog.New(buf).Level(zerolog.DebugLevel)
	c := NewClient(srv.URL, time.Second, staticTokens{token: "tok"}, log)

	msg, err := c.Delete(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if msg != defaultDeleteMessage {
		t.Fatalf("expected default message, got %q", msg)
	}
	if !strings.Contains(buf.String(), "delete response has no message") {
		t.Fatalf("expected the decode failure to be logged, got %s", buf.String())
	}
}
