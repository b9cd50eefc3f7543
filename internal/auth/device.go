package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hance08/findash/internal/config"
	"github.com/hance08/findash/internal/errs"
	"github.com/hance08/findash/internal/model"
	"github.com/hance08/findash/internal/store"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// TokenKey is where the device flow credential is persisted.
const TokenKey = "auth:token"

var defaultScopes = []string{"openid", "profile", "offline_access"}

// PromptFunc shows the verification URL and user code to the user.
type PromptFunc func(resp *oauth2.DeviceAuthResponse)

type storedToken struct {
	Token   *oauth2.Token `json:"token"`
	IDToken string        `json:"idToken,omitempty"`
}

// DeviceProvider signs in with the OAuth2 device authorization grant and
// keeps the refreshable credential in the local store.
type DeviceProvider struct {
	mu        sync.Mutex
	oauth     *oauth2.Config
	repo      store.Repository
	prompt    PromptFunc
	overrides Overrides
	log       zerolog.Logger
	current   *storedToken
}

func NewDeviceProvider(cfg config.AuthConfig, repo store.Repository, prompt PromptFunc, log zerolog.Logger) *DeviceProvider {
	scopes := append([]string(nil), cfg.Scopes...)
	scopes = append(scopes, defaultScopes...)

	return &DeviceProvider{
		oauth: &oauth2.Config{
			ClientID: cfg.ClientID,
			Scopes:   scopes,
			Endpoint: oauth2.Endpoint{
				DeviceAuthURL: cfg.DeviceEndpoint(),
				TokenURL:      cfg.TokenEndpoint(),
				AuthStyle:     oauth2.AuthStyleInParams,
			},
		},
		repo:      repo,
		prompt:    prompt,
		overrides: Overrides{ID: cfg.ID, Name: cfg.Name, Email: cfg.Email},
		log:       log,
	}
}

func (p *DeviceProvider) AccessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tok, err := p.token(ctx)
	if err != nil {
		return "", err
	}
	return tok.Token.AccessToken, nil
}

// Identity prefers the ID token's claims and falls back to the access token.
func (p *DeviceProvider) Identity(ctx context.Context) (model.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tok, err := p.token(ctx)
	if err != nil {
		return model.Identity{}, err
	}

	id, err := IdentityFromToken(tok.IDToken)
	if err != nil {
		id, _ = IdentityFromToken(tok.Token.AccessToken)
	}
	return p.overrides.apply(id), nil
}

func (p *DeviceProvider) Logout(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = nil
	if err := p.repo.Delete(TokenKey); err != nil {
		return fmt.Errorf("failed to remove stored credential: %w", err)
	}
	return nil
}

// token returns a valid credential, refreshing or signing in as needed.
// Callers hold p.mu.
func (p *DeviceProvider) token(ctx context.Context) (*storedToken, error) {
	if p.current == nil {
		p.current = p.load()
	}

	if p.current != nil && p.current.Token.Valid() {
		return p.current, nil
	}

	if p.current != nil && p.current.Token.RefreshToken != "" {
		refreshed, err := p.oauth.TokenSource(ctx, p.current.Token).Token()
		if err == nil {
			next := &storedToken{Token: refreshed, IDToken: idTokenOf(refreshed, p.current.IDToken)}
			p.save(next)
			return next, nil
		}
		p.log.Warn().Err(err).Msg("token refresh failed, starting device sign-in")
	}

	return p.signIn(ctx)
}

func (p *DeviceProvider) signIn(ctx context.Context) (*storedToken, error) {
	if p.prompt == nil {
		return nil, errs.NewAuthError(errs.AuthMissing, errs.MsgNotAuthenticated, nil)
	}

	resp, err := p.oauth.DeviceAuth(ctx)
	if err != nil {
		return nil, errs.NewAuthError(errs.AuthMissing, "failed to start device sign-in", err)
	}
	p.prompt(resp)

	tok, err := p.oauth.DeviceAccessToken(ctx, resp)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "expired_token" {
			return nil, errs.NewAuthError(errs.AuthExpired, "device code expired, sign in again", err)
		}
		return nil, errs.NewAuthError(errs.AuthMissing, "device sign-in failed", err)
	}

	next := &storedToken{Token: tok, IDToken: idTokenOf(tok, "")}
	p.save(next)
	p.log.Info().Msg("device sign-in completed")
	return next, nil
}

func (p *DeviceProvider) load() *storedToken {
	raw, err := p.repo.Get(TokenKey)
	if err != nil {
		if !errors.Is(err, store.ErrRecordNotFound) {
			p.log.Warn().Err(err).Msg("failed to read stored credential")
		}
		return nil
	}

	var st storedToken
	if err := json.Unmarshal([]byte(raw), &st); err != nil || st.Token == nil {
		p.log.Warn().Msg("stored credential is unreadable, ignoring it")
		return nil
	}
	return &st
}

func (p *DeviceProvider) save(st *storedToken) {
	p.current = st

	data, err := json.Marshal(st)
	if err != nil {
		p.log.Warn().Err(err).Msg("failed to encode credential")
		return
	}
	if err := p.repo.Set(TokenKey, string(data)); err != nil {
		p.log.Warn().Err(err).Msg("failed to persist credential")
	}
}

func idTokenOf(tok *oauth2.Token, fallback string) string {
	if v, ok := tok.Extra("id_token").(string); ok && v != "" {
		return v
	}
	return fallback
}
