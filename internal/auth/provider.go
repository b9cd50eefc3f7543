// Package auth supplies the bearer credential and the signed-in identity.
package auth

import (
	"context"

	"github.com/hance08/findash/internal/model"
)

type Provider interface {
	AccessToken(ctx context.Context) (string, error)
	Identity(ctx context.Context) (model.Identity, error)
	Logout(ctx context.Context) error
}

// Overrides fill identity fields the token does not carry.
type Overrides struct {
	ID    string
	Name  string
	Email string
}

func (o Overrides) apply(id model.Identity) model.Identity {
	if o.ID != "" {
		id.ID = o.ID
	}
	if o.Name != "" {
		id.Name = o.Name
	}
	if o.Email != "" {
		id.Email = o.Email
	}
	return id
}
