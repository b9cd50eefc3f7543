// Package api is the HTTP client for the remote transaction API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hance08/findash/internal/constants"
	"github.com/hance08/findash/internal/errs"
	"github.com/hance08/findash/internal/model"
	"github.com/rs/zerolog"
)

const (
	HeaderCorrelationID = "X-Correlation-ID"

	defaultDeleteMessage = "transaction deleted"
	maxErrorBodyBytes    = 4 * 1024
)

// TokenSource yields the bearer credential for the current session.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     zerolog.Logger
	newID   func() string
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = constants.DefaultAPITimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
		newID:   uuid.NewString,
	}
}

// List fetches the current user's transactions in API order.
func (c *Client) List(ctx context.Context) ([]model.Transaction, error) {
	return c.list(ctx, constants.EndpointTransactions)
}

// ListGlobal fetches every user's transactions. Requires an admin credential.
func (c *Client) ListGlobal(ctx context.Context) ([]model.Transaction, error) {
	return c.list(ctx, constants.EndpointGlobalTransactions)
}

func (c *Client) Create(ctx context.Context, req CreateRequest) (model.Transaction, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, constants.EndpointTransactions, newCreateBody(req), &raw); err != nil {
		return model.Transaction{}, err
	}
	return decodeOne(raw)
}

func (c *Client) Update(ctx context.Context, id string, req UpdateRequest) (model.Transaction, error) {
	path, err := transactionPath(id)
	if err != nil {
		return model.Transaction{}, err
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, path, newUpdateBody(req), &raw); err != nil {
		return model.Transaction{}, err
	}
	return decodeOne(raw)
}

// Delete returns the server's confirmation message.
func (c *Client) Delete(ctx context.Context, id string) (string, error) {
	path, err := transactionPath(id)
	if err != nil {
		return "", err
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodDelete, path, nil, &raw); err != nil {
		return "", err
	}

	var msg messageEnvelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.Debug().Err(err).Str("id", id).Msg("delete response has no message, using default")
		}
	}
	if msg.Message == "" {
		return defaultDeleteMessage, nil
	}
	return msg.Message, nil
}

func (c *Client) list(ctx context.Context, path string) ([]model.Transaction, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []apiTransaction
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, errs.NewNetworkError(http.StatusOK, errs.MsgInvalidResponse, err)
		}
		return toModels(items), nil
	}

	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, errs.NewNetworkError(http.StatusOK, errs.MsgInvalidResponse, err)
	}
	return toModels(env.Transactions), nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out *json.RawMessage) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return errs.NewAuthError(errs.AuthMissing, errs.MsgNotAuthenticated, nil)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	cid := c.newID()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderCorrelationID, cid)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().
			Str("method", method).
			Str("path", path).
			Str("cid", cid).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("request failed")
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	c.log.Info().
		Str("method", method).
		Str("path", path).
		Str("cid", cid).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.log.Debug().Str("cid", cid).Bytes("body", snippet).Msg("error response body")
		return errs.FromStatus(resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(err)
	}
	if len(bytes.TrimSpace(data)) > 0 && !json.Valid(data) {
		return errs.NewNetworkError(resp.StatusCode, errs.MsgInvalidResponse, errors.New("response is not valid JSON"))
	}
	*out = data
	return nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.NewTimeoutError(err)
	}
	return errs.NewNetworkError(0, errs.MsgConnectionFailed, err)
}

func decodeOne(raw json.RawMessage) (model.Transaction, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return model.Transaction{}, nil
	}

	var env singleEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Transaction != nil {
		return toModel(*env.Transaction), nil
	}

	var item apiTransaction
	if err := json.Unmarshal(raw, &item); err != nil {
		return model.Transaction{}, errs.NewNetworkError(http.StatusOK, errs.MsgInvalidResponse, err)
	}
	return toModel(item), nil
}

func transactionPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errs.NewValidationError("id", "transaction id is required")
	}
	return constants.EndpointTransactions + "/" + url.PathEscape(id), nil
}
