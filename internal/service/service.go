package service

import (
	"github.com/hance08/findash/internal/auth"
	"github.com/hance08/findash/internal/config"
	"github.com/rs/zerolog"
)

// Deps are the collaborators shared by the services.
type Deps struct {
	API     TransactionAPI
	Cache   SessionCache
	Auth    auth.Provider
	Confirm Confirmer
	Runner  Runner
	Log     zerolog.Logger
}

type Service struct {
	Transaction *TransactionService
	Session     *SessionService
}

func NewService(deps Deps, cfg *config.Config) *Service {
	tx := NewTransactionService(deps, cfg)
	return &Service{
		Transaction: tx,
		Session:     NewSessionService(deps, tx),
	}
}
