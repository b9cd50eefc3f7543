package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hance08/findash/internal/cache"
	"github.com/hance08/findash/internal/config"
	"github.com/hance08/findash/internal/errs"
	"github.com/hance08/findash/internal/logic/metrics"
	"github.com/hance08/findash/internal/model"
	"github.com/hance08/findash/internal/validation"
	"github.com/rs/zerolog"
)

// TransactionService is the transaction store: cache-first loading with a
// background refresh, and mutations that always re-fetch.
//
// Every list fetch takes a sequence number; a result is applied only if no
// later fetch has been applied already.
type TransactionService struct {
	api      TransactionAPI
	cache    TransactionCache
	identity IdentitySource
	confirm  Confirmer
	runner   Runner
	rules    *validation.Rules
	config   *config.Config
	log      zerolog.Logger
	nowFn    func() time.Time

	seq atomic.Uint64

	mu        sync.Mutex
	state     State
	txs       []model.Transaction
	fromCache bool
	cachedAt  time.Time
	applied   uint64
	closed    bool
	discarded bool
	lastErr   error
	retry     func(ctx context.Context) error
	who       *model.Identity
	observer  func(State)
}

func NewTransactionService(deps Deps, cfg *config.Config) *TransactionService {
	return &TransactionService{
		api:      deps.API,
		cache:    deps.Cache,
		identity: deps.Auth,
		confirm:  deps.Confirm,
		runner:   deps.Runner,
		rules:    validation.NewRules(cfg.Validation),
		config:   cfg,
		log:      deps.Log,
		nowFn:    time.Now,
		state:    StateIdle,
	}
}

func (ts *TransactionService) Rules() *validation.Rules {
	return ts.rules
}

// OnStateChange registers a callback for state transitions. It may be
// called from a background goroutine.
func (ts *TransactionService) OnStateChange(fn func(State)) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.observer = fn
}

func (ts *TransactionService) State() State {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.state
}

func (ts *TransactionService) Snapshot() Snapshot {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	snap := Snapshot{
		State:        ts.state,
		Transactions: metrics.SortNewestFirst(ts.txs),
		FromCache:    ts.fromCache,
		CachedAt:     ts.cachedAt,
		Err:          ts.lastErr,
		CanRetry:     ts.retry != nil,
	}
	if ts.who != nil {
		snap.Identity = *ts.who
	}
	return snap
}

// Find looks a transaction up in the loaded list.
func (ts *TransactionService) Find(id string) (model.Transaction, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for _, tx := range ts.txs {
		if tx.ID == id {
			return tx, true
		}
	}
	return model.Transaction{}, false
}

// Close stops in-flight results from reaching the session. A fresh server
// list still refreshes the cache; network calls are left to finish.
func (ts *TransactionService) Close() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.closed = true
}

// discard closes the session and keeps late results out of the cache too.
func (ts *TransactionService) discard() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.closed = true
	ts.discarded = true
}

// Wait blocks until background refreshes have finished. Their errors are
// already logged and are returned for diagnostics only.
func (ts *TransactionService) Wait() error {
	return ts.runner.Wait()
}

func (ts *TransactionService) resolveIdentity(ctx context.Context) (model.Identity, error) {
	ts.mu.Lock()
	if ts.who != nil {
		id := *ts.who
		ts.mu.Unlock()
		return id, nil
	}
	ts.mu.Unlock()

	if ts.identity == nil {
		return model.Identity{}, errs.NewAuthError(errs.AuthMissing, errs.MsgNotAuthenticated, nil)
	}

	id, err := ts.identity.Identity(ctx)
	if err != nil {
		return model.Identity{}, err
	}

	ts.mu.Lock()
	ts.who = &id
	ts.mu.Unlock()
	return id, nil
}

func (ts *TransactionService) cacheKey(ctx context.Context) (string, error) {
	id, err := ts.resolveIdentity(ctx)
	if err != nil {
		return "", err
	}
	return cache.Key(id.ID), nil
}

// setState updates the state and notifies the observer outside the lock.
func (ts *TransactionService) setState(state State) {
	ts.mu.Lock()
	ts.state = state
	observer := ts.observer
	ts.mu.Unlock()

	if observer != nil {
		observer(state)
	}
}

// fail moves to Error and remembers how to retry.
func (ts *TransactionService) fail(err error, retry func(ctx context.Context) error) {
	ts.mu.Lock()
	ts.state = StateError
	ts.lastErr = err
	ts.retry = retry
	observer := ts.observer
	ts.mu.Unlock()

	if observer != nil {
		observer(StateError)
	}
}

// recordFailure keeps the current state; mutations leave prior state untouched.
func (ts *TransactionService) recordFailure(err error, retry func(ctx context.Context) error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.lastErr = err
	ts.retry = retry
}

func (ts *TransactionService) clearFailure() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.lastErr = nil
	ts.retry = nil
}

// apply installs a fetched list unless a newer fetch was applied first.
// The cache write happens under the same lock. Once the session is closed
// a fresh server list still reaches the cache but the in-memory state is
// left alone.
func (ts *TransactionService) apply(key string, seq uint64, txs []model.Transaction, fromCache bool, cachedAt time.Time) bool {
	ts.mu.Lock()
	if ts.closed {
		kept := !ts.discarded && !fromCache && seq > ts.applied
		if kept {
			ts.applied = seq
			ts.cache.WriteCache(key, txs)
		}
		ts.mu.Unlock()
		ts.log.Debug().Uint64("seq", seq).Bool("cached", kept).Msg("session closed, result not shown")
		return false
	}
	if seq <= ts.applied {
		applied := ts.applied
		ts.mu.Unlock()
		ts.log.Debug().Uint64("seq", seq).Uint64("applied", applied).Msg("stale fetch discarded")
		return false
	}

	ts.applied = seq
	ts.txs = txs
	ts.fromCache = fromCache
	ts.cachedAt = cachedAt
	ts.state = StateReady
	if !fromCache {
		ts.cache.WriteCache(key, txs)
	}
	observer := ts.observer
	ts.mu.Unlock()

	if observer != nil {
		observer(StateReady)
	}
	return true
}
