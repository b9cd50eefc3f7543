package service

import (
	"context"
	"time"

	"github.com/hance08/findash/internal/client/api"
	"github.com/hance08/findash/internal/logic/metrics"
	"github.com/hance08/findash/internal/model"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// TransactionAPI is the remote side of the transaction store.
type TransactionAPI interface {
	List(ctx context.Context) ([]model.Transaction, error)
	ListGlobal(ctx context.Context) ([]model.Transaction, error)
	Create(ctx context.Context, req api.CreateRequest) (model.Transaction, error)
	Update(ctx context.Context, id string, req api.UpdateRequest) (model.Transaction, error)
	Delete(ctx context.Context, id string) (string, error)
}

type TransactionCache interface {
	ReadCache(key string) *model.CacheEntry
	WriteCache(key string, txs []model.Transaction)
	Invalidate(key string)
}

type IdentitySource interface {
	Identity(ctx context.Context) (model.Identity, error)
}

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// Runner schedules background work.
type Runner interface {
	Go(ctx context.Context, name string, f func(ctx context.Context) error)
	Wait() error
}

// CreateInput is raw form input; it is validated before anything is sent.
type CreateInput struct {
	Recipient   string
	Amount      string
	Description string
}

type UpdateInput struct {
	Amount    string
	Timestamp time.Time
}

// Snapshot is a consistent copy of the store's state.
type Snapshot struct {
	State        State
	Identity     model.Identity
	Transactions []model.Transaction
	FromCache    bool
	CachedAt     time.Time
	Err          error
	CanRetry     bool
}

type DashboardView struct {
	Identity  model.Identity
	KPIs      model.KPISnapshot
	Buckets   []model.HourlyBucket
	Recent    []model.Transaction
	FromCache bool
	CachedAt  time.Time
}

type ListView struct {
	Identity model.Identity
	Page     metrics.Page
}
