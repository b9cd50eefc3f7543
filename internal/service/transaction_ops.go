package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hance08/findash/internal/client/api"
	"github.com/hance08/findash/internal/errs"
	"github.com/hance08/findash/internal/logic/metrics"
	"github.com/hance08/findash/internal/model"
	"github.com/hance08/findash/internal/utils"
)

// ErrNothingToRetry is returned by Retry when no operation has failed.
var ErrNothingToRetry = errors.New("nothing to retry")

// Load resolves the identity, enters Loading and tries the cache first.
// A hit goes straight to Ready and refreshes in the background; a miss
// fetches synchronously. Sign-in prompts happen before Loading.
func (ts *TransactionService) Load(ctx context.Context) error {
	key, err := ts.cacheKey(ctx)
	if err != nil {
		ts.fail(err, ts.Load)
		return err
	}

	ts.setState(StateLoading)

	if entry := ts.cache.ReadCache(key); entry != nil {
		ts.apply(key, ts.seq.Add(1), entry.Transactions, true, time.UnixMilli(entry.CachedAt))
		ts.clearFailure()
		ts.log.Debug().Str("key", key).Int("count", len(entry.Transactions)).Msg("served from cache")
		ts.refreshInBackground(ctx, key)
		return nil
	}

	if err := ts.fetch(ctx, key); err != nil {
		ts.fail(err, ts.Load)
		return err
	}
	ts.clearFailure()
	return nil
}

// Refresh re-fetches in the foreground.
func (ts *TransactionService) Refresh(ctx context.Context) error {
	key, err := ts.cacheKey(ctx)
	if err != nil {
		ts.fail(err, ts.Refresh)
		return err
	}

	if err := ts.fetch(ctx, key); err != nil {
		ts.fail(err, ts.Refresh)
		return err
	}
	ts.clearFailure()
	return nil
}

// Retry re-runs the last failed foreground operation.
func (ts *TransactionService) Retry(ctx context.Context) error {
	ts.mu.Lock()
	retry := ts.retry
	ts.mu.Unlock()

	if retry == nil {
		return ErrNothingToRetry
	}
	return retry(ctx)
}

// Create validates locally, posts with the originator stamped in and
// re-fetches the list so server-assigned fields are picked up.
func (ts *TransactionService) Create(ctx context.Context, in CreateInput) (model.Transaction, error) {
	recipient := strings.TrimSpace(in.Recipient)
	description := strings.TrimSpace(in.Description)

	if err := ts.rules.ValidateCreate(recipient, in.Amount, description); err != nil {
		return model.Transaction{}, err
	}

	amount, err := utils.ParseAmount(in.Amount)
	if err != nil {
		return model.Transaction{}, errs.NewValidationError("amount", err.Error())
	}

	who, err := ts.resolveIdentity(ctx)
	if err != nil {
		return model.Transaction{}, err
	}

	if description == "" {
		description = model.DefaultDescription(recipient)
	}

	created, err := ts.api.Create(ctx, api.CreateRequest{
		Recipient:        recipient,
		Amount:           amount,
		Description:      description,
		FromAccountID:    who.ID,
		FromAccountName:  who.Name,
		FromAccountEmail: who.Email,
		Timestamp:        ts.nowFn(),
	})
	if err != nil {
		ts.recordFailure(err, func(ctx context.Context) error {
			_, err := ts.Create(ctx, in)
			return err
		})
		return model.Transaction{}, err
	}

	ts.log.Info().Str("id", created.ID).Msg("transaction created")
	ts.afterMutation(ctx)
	return created, nil
}

// Update asks for confirmation, then replaces amount and timestamp.
func (ts *TransactionService) Update(ctx context.Context, id string, in UpdateInput) (model.Transaction, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Transaction{}, errs.NewValidationError("id", "transaction id is required")
	}
	if err := ts.rules.ValidateUpdate(in.Amount); err != nil {
		return model.Transaction{}, err
	}

	amount, err := utils.ParseAmount(in.Amount)
	if err != nil {
		return model.Transaction{}, errs.NewValidationError("amount", err.Error())
	}

	prompt := fmt.Sprintf("Update transaction %s to %s?", id, utils.FormatMoney(amount))
	if err := ts.confirmOrCancel(ctx, prompt); err != nil {
		return model.Transaction{}, err
	}

	stamp := in.Timestamp
	if stamp.IsZero() {
		stamp = ts.nowFn()
	}

	updated, err := ts.api.Update(ctx, id, api.UpdateRequest{Amount: amount, Timestamp: stamp})
	if err != nil {
		ts.recordFailure(err, func(ctx context.Context) error {
			_, err := ts.Update(ctx, id, in)
			return err
		})
		return model.Transaction{}, err
	}

	ts.log.Info().Str("id", id).Msg("transaction updated")
	ts.afterMutation(ctx)
	return updated, nil
}

// Delete asks for confirmation, then removes the transaction.
func (ts *TransactionService) Delete(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errs.NewValidationError("id", "transaction id is required")
	}

	prompt := fmt.Sprintf("Delete transaction %s? This action cannot be undone.", id)
	if tx, ok := ts.Find(id); ok {
		prompt = fmt.Sprintf("Delete transaction %s (%s to %s)? This action cannot be undone.",
			id, utils.FormatMoney(tx.Amount), tx.Recipient)
	}
	if err := ts.confirmOrCancel(ctx, prompt); err != nil {
		return "", err
	}

	msg, err := ts.api.Delete(ctx, id)
	if err != nil {
		ts.recordFailure(err, func(ctx context.Context) error {
			_, err := ts.Delete(ctx, id)
			return err
		})
		return "", err
	}

	ts.log.Info().Str("id", id).Msg("transaction deleted")
	ts.afterMutation(ctx)
	return msg, nil
}

// GlobalTransactions reads every user's transactions. 401 and 403 surface
// as distinct auth errors.
func (ts *TransactionService) GlobalTransactions(ctx context.Context) ([]model.Transaction, error) {
	txs, err := ts.api.ListGlobal(ctx)
	if err != nil {
		ts.recordFailure(err, func(ctx context.Context) error {
			_, err := ts.GlobalTransactions(ctx)
			return err
		})
		return nil, err
	}
	return metrics.SortNewestFirst(txs), nil
}

func (ts *TransactionService) confirmOrCancel(ctx context.Context, prompt string) error {
	if ts.confirm == nil {
		return errs.ErrCancelled
	}

	ok, err := ts.confirm.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrCancelled
	}
	return nil
}

// afterMutation drops the cached list and re-fetches. A failed re-fetch
// leaves the cache invalidated and is recorded for Retry.
func (ts *TransactionService) afterMutation(ctx context.Context) {
	key, err := ts.cacheKey(ctx)
	if err != nil {
		ts.recordFailure(err, ts.Refresh)
		return
	}

	ts.cache.Invalidate(key)
	if err := ts.fetch(ctx, key); err != nil {
		ts.log.Warn().Err(err).Msg("re-fetch after mutation failed")
		ts.recordFailure(err, ts.Refresh)
		return
	}
	ts.clearFailure()
}

func (ts *TransactionService) fetch(ctx context.Context, key string) error {
	seq := ts.seq.Add(1)

	txs, err := ts.api.List(ctx)
	if err != nil {
		return err
	}

	ts.apply(key, seq, txs, false, ts.nowFn())
	return nil
}

// refreshInBackground keeps the cache warm. Failures are logged only and
// never change the state.
func (ts *TransactionService) refreshInBackground(ctx context.Context, key string) {
	seq := ts.seq.Add(1)

	ts.runner.Go(context.WithoutCancel(ctx), "background-refresh", func(ctx context.Context) error {
		txs, err := ts.api.List(ctx)
		if err != nil {
			ts.log.Warn().Err(err).Str("key", key).Msg("background refresh failed")
			return err
		}

		if ts.apply(key, seq, txs, false, ts.nowFn()) {
			ts.log.Debug().Str("key", key).Int("count", len(txs)).Msg("background refresh applied")
		}
		return nil
	})
}
