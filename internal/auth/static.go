package auth

import (
	"context"

	"github.com/hance08/findash/internal/errs"
	"github.com/hance08/findash/internal/model"
)

// StaticProvider serves a pre-issued bearer token from configuration.
type StaticProvider struct {
	token     string
	overrides Overrides
}

func NewStaticProvider(token string, overrides Overrides) *StaticProvider {
	return &StaticProvider{token: token, overrides: overrides}
}

func (p *StaticProvider) AccessToken(ctx context.Context) (string, error) {
	if p.token == "" {
		return "", errs.NewAuthError(errs.AuthMissing, errs.MsgNotAuthenticated, nil)
	}
	return p.token, nil
}

// Identity merges token claims with configured overrides. An opaque token
// is fine as long as overrides name the user.
func (p *StaticProvider) Identity(ctx context.Context) (model.Identity, error) {
	if p.token == "" {
		return model.Identity{}, errs.NewAuthError(errs.AuthMissing, errs.MsgNotAuthenticated, nil)
	}

	id, _ := IdentityFromToken(p.token)
	return p.overrides.apply(id), nil
}

// Logout forgets the token for this process; the config file is left alone.
func (p *StaticProvider) Logout(ctx context.Context) error {
	p.token = ""
	return nil
}
