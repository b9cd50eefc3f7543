package service

import (
	"context"
	"fmt"

	"github.com/hance08/findash/internal/auth"
	"github.com/hance08/findash/internal/errs"
	"github.com/hance08/findash/internal/model"
	"github.com/rs/zerolog"
)

// SessionCache is the transaction cache plus device-wide cleanup.
type SessionCache interface {
	TransactionCache
	Purge() int64
}

type SessionService struct {
	auth    auth.Provider
	cache   SessionCache
	confirm Confirmer
	tx      *TransactionService
	log     zerolog.Logger
}

func NewSessionService(deps Deps, tx *TransactionService) *SessionService {
	return &SessionService{
		auth:    deps.Auth,
		cache:   deps.Cache,
		confirm: deps.Confirm,
		tx:      tx,
		log:     deps.Log,
	}
}

func (ss *SessionService) Identity(ctx context.Context) (model.Identity, error) {
	return ss.tx.resolveIdentity(ctx)
}

// Logout asks for confirmation, then drops the stored credential and every
// cached transaction list on this device.
func (ss *SessionService) Logout(ctx context.Context) error {
	if ss.confirm == nil {
		return errs.ErrCancelled
	}
	ok, err := ss.confirm.Confirm(ctx, "Are you sure you want to sign out?")
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrCancelled
	}

	if ss.auth == nil {
		return errs.NewAuthError(errs.AuthMissing, errs.MsgNotAuthenticated, nil)
	}

	ss.tx.discard()
	purged := ss.cache.Purge()

	if err := ss.auth.Logout(ctx); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}

	ss.log.Info().Int64("purged", purged).Msg("signed out")
	return nil
}
