// Package cache keeps the last fetched transaction list per identity in the
// local key/value store, valid for a fixed TTL.
package cache

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/hance08/findash/internal/errs"
	"github.com/hance08/findash/internal/model"
	"github.com/hance08/findash/internal/store"
	"github.com/rs/zerolog"
)

// KeyPrefix starts every cached transaction list key.
const KeyPrefix = "transactions"

// Key scopes the cache entry to one identity.
func Key(identityID string) string {
	if identityID == "" {
		return KeyPrefix
	}
	return KeyPrefix + ":" + identityID
}

type Option func(*Cache)

// WithNow replaces the clock.
func WithNow(now func() time.Time) Option {
	return func(c *Cache) {
		c.nowFn = now
	}
}

type Cache struct {
	repo  store.Repository
	ttl   time.Duration
	log   zerolog.Logger
	nowFn func() time.Time
}

func New(repo store.Repository, ttl time.Duration, log zerolog.Logger, opts ...Option) *Cache {
	c := &Cache{
		repo:  repo,
		ttl:   ttl,
		log:   log,
		nowFn: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// ReadCache returns nil on a miss: no entry, undecodable data, or an entry
// at least TTL old. It never returns an error.
func (c *Cache) ReadCache(key string) *model.CacheEntry {
	raw, err := c.repo.Get(key)
	if err != nil {
		if !errors.Is(err, store.ErrRecordNotFound) {
			c.logFailure(errs.NewCacheError("read", err), key)
		}
		return nil
	}

	var entry model.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.logFailure(errs.NewCacheError("decode", err), key)
		return nil
	}
	if entry.CachedAt <= 0 {
		c.log.Debug().Str("key", key).Msg("cache entry has no timestamp")
		return nil
	}

	age := c.nowFn().Sub(time.UnixMilli(entry.CachedAt))
	if age >= c.ttl {
		c.log.Debug().Str("key", key).Dur("age", age).Msg("cache entry expired")
		return nil
	}

	if entry.Transactions == nil {
		entry.Transactions = []model.Transaction{}
	}
	return &entry
}

// WriteCache overwrites the entry for key stamped with the current time.
// Failures are logged and swallowed.
func (c *Cache) WriteCache(key string, txs []model.Transaction) {
	if txs == nil {
		txs = []model.Transaction{}
	}

	data, err := json.Marshal(model.CacheEntry{
		Transactions: txs,
		CachedAt:     c.nowFn().UnixMilli(),
	})
	if err != nil {
		c.logFailure(errs.NewCacheError("encode", err), key)
		return
	}

	if err := c.repo.Set(key, string(data)); err != nil {
		c.logFailure(errs.NewCacheError("write", err), key)
		return
	}
	c.log.Debug().Str("key", key).Int("count", len(txs)).Msg("cache written")
}

// Invalidate drops the entry for key. Failures are logged and swallowed.
func (c *Cache) Invalidate(key string) {
	if err := c.repo.Delete(key); err != nil {
		c.logFailure(errs.NewCacheError("invalidate", err), key)
	}
}

// Purge removes every cached transaction list on this device.
func (c *Cache) Purge() int64 {
	n, err := c.repo.DeletePrefix(KeyPrefix)
	if err != nil {
		c.logFailure(errs.NewCacheError("purge", err), KeyPrefix)
		return 0
	}
	return n
}

func (c *Cache) logFailure(err *errs.CacheError, key string) {
	c.log.Warn().Err(err.Err).Str("op", err.Op).Str("key", key).Msg("cache failure ignored")
}
