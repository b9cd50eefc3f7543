package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hance08/findash/internal/cache"
	"github.com/hance08/findash/internal/client/api"
	"github.com/hance08/findash/internal/config"
	"github.com/hance08/findash/internal/errs"
	"github.com/hance08/findash/internal/model"
	"github.com/hance08/findash/internal/routine"
	"github.com/hance08/findash/internal/store"
	"github.com/hance08/findash/internal/validation"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type memRepo struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memRepo) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", store.ErrRecordNotFound
	}
	return v, nil
}

func (m *memRepo) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memRepo) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memRepo) DeletePrefix(prefix string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
			n++
		}
	}
	return n, nil
}

func (m *memRepo) Keys(prefix string) ([]string, error) { return nil, nil }
func (m *memRepo) Path() string                         { return "" }
func (m *memRepo) Close() error                         { return nil }

type fakeAPI struct {
	mu          sync.Mutex
	listFn      func(call int) ([]model.Transaction, error)
	listCalls   int
	globalErr   error
	createErr   error
	created     []api.CreateRequest
	updated     []string
	deleted     []string
	globalCalls int
}

func (f *fakeAPI) List(ctx context.Context) ([]model.Transaction, error) {
	f.mu.Lock()
	f.listCalls++
	call := f.listCalls
	fn := f.listFn
	f.mu.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(call)
}

func (f *fakeAPI) ListGlobal(ctx context.Context) ([]model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.globalCalls++
	if f.globalErr != nil {
		return nil, f.globalErr
	}
	return []model.Transaction{
		txAt("old", "2024-03-10T08:00:00Z"),
		txAt("new", "2024-03-10T11:00:00Z"),
	}, nil
}

func (f *fakeAPI) Create(ctx context.Context, req api.CreateRequest) (model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.Transaction{}, f.createErr
	}
	f.created = append(f.created, req)
	return model.Transaction{ID: "srv-1", Amount: req.Amount, Type: model.TxTypeDebit}, nil
}

func (f *fakeAPI) Update(ctx context.Context, id string, req api.UpdateRequest) (model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, id)
	return model.Transaction{ID: id, Amount: req.Amount}, nil
}

func (f *fakeAPI) Delete(ctx context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return "deleted", nil
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

type fakeAuth struct {
	id         model.Identity
	err        error
	loggedOut  bool
	identities int
	onIdentity func()
}

func (f *fakeAuth) AccessToken(ctx context.Context) (string, error) { return "tok", nil }

func (f *fakeAuth) Identity(ctx context.Context) (model.Identity, error) {
	f.identities++
	if f.onIdentity != nil {
		f.onIdentity()
	}
	return f.id, f.err
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.loggedOut = true
	return nil
}

type fakeConfirm struct {
	answer bool
	asked  []string
}

func (f *fakeConfirm) Confirm(ctx context.Context, message string) (bool, error) {
	f.asked = append(f.asked, message)
	return f.answer, nil
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	svc     *Service
	api     *fakeAPI
	auth    *fakeAuth
	confirm *fakeConfirm
	cache   *cache.Cache
	repo    *memRepo
	clock   *clock
	states  *[]State
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.NewDefault()
	cfg.Dashboard.Timezone = "UTC"

	clk := &clock{now: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	repo := &memRepo{data: make(map[string]string)}
	c := cache.New(repo, cfg.Cache.TTL, zerolog.Nop(), cache.WithNow(clk.Now))
	fa := &fakeAPI{}
	auth := &fakeAuth{id: model.Identity{ID: "oid-1", Name: "Ana", Email: "ana@uacj.mx"}}
	confirm := &fakeConfirm{answer: true}

	svc := NewService(Deps{
		API:     fa,
		Cache:   c,
		Auth:    auth,
		Confirm: confirm,
		Runner:  routine.NewManager(2, zerolog.Nop()),
		Log:     zerolog.Nop(),
	}, cfg)
	svc.Transaction.nowFn = clk.Now

	var mu sync.Mutex
	states := []State{}
	svc.Transaction.OnStateChange(func(s State) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, s)
	})

	return &harness{svc: svc, api: fa, auth: auth, confirm: confirm, cache: c, repo: repo, clock: clk, states: &states}
}

func txAt(id, ts string) model.Transaction {
	return model.Transaction{ID: id, Amount: decimal.NewFromInt(10), Type: model.TxTypeDebit, Timestamp: ts}
}

func ids(txs []model.Transaction) string {
	parts := make([]string, 0, len(txs))
	for _, tx := range txs {
		parts = append(parts, tx.ID)
	}
	return strings.Join(parts, ",")
}

func TestLoadExpiredCacheFetchesSynchronously(t *testing.T) {
	h := newHarness(t)
	key := cache.Key("oid-1")

	h.cache.WriteCache(key, []model.Transaction{txAt("cached", "2024-03-10T10:00:00Z")})
	h.clock.Advance(40 * time.Minute)

	h.api.listFn = func(call int) ([]model.Transaction, error) {
		return []model.Transaction{txAt("fresh", "2024-03-10T12:30:00Z")}, nil
	}

	if err := h.svc.Transaction.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := *h.states; len(got) != 2 || got[0] != StateLoading || got[1] != StateReady {
		t.Fatalf("expected Loading -> Ready, got %v", got)
	}

	snap := h.svc.Transaction.Snapshot()
	if snap.FromCache || ids(snap.Transactions) != "fresh" {
		t.Fatalf("expected the fetched list, got %+v", snap)
	}

	entry := h.cache.ReadCache(key)
	if entry == nil || ids(entry.Transactions) != "fresh" {
		t.Fatalf("expected the fresh list cached, got %+v", entry)
	}
	if entry.CachedAt != h.clock.Now().UnixMilli() {
		t.Fatalf("expected a new cache timestamp, got %d", entry.CachedAt)
	}
	if h.api.calls() != 1 {
		t.Fatalf("expected exactly one fetch, got %d", h.api.calls())
	}
}

func TestLoadCacheHitRefreshesInBackground(t *testing.T) {
	h := newHarness(t)
	key := cache.Key("oid-1")

	h.cache.WriteCache(key, []model.Transaction{txAt("cached", "2024-03-10T10:00:00Z")})
	h.clock.Advance(5 * time.Minute)

	release := make(chan struct{})
	h.api.listFn = func(call int) ([]model.Transaction, error) {
		<-release
		return []model.Transaction{txAt("fresh", "2024-03-10T12:01:00Z")}, nil
	}

	if err := h.svc.Transaction.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	snap := h.svc.Transaction.Snapshot()
	if snap.State != StateReady || !snap.FromCache || ids(snap.Transactions) != "cached" {
		t.Fatalf("expected cached data before the refresh completes, got %+v", snap)
	}

	close(release)
	if err := h.svc.Transaction.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	snap = h.svc.Transaction.Snapshot()
	if snap.FromCache || ids(snap.Transactions) != "fresh" {
		t.Fatalf("expected the refreshed list, got %+v", snap)
	}
	if entry := h.cache.ReadCache(key); entry == nil || ids(entry.Transactions) != "fresh" {
		t.Fatalf("expected the refreshed list cached, got %+v", entry)
	}
}

func TestBackgroundFailureKeepsReady(t *testing.T) {
	h := newHarness(t)
	h.cache.WriteCache(cache.Key("oid-1"), []model.Transaction{txAt("cached", "2024-03-10T10:00:00Z")})

	h.api.listFn = func(call int) ([]model.Transaction, error) {
		return nil, errs.NewNetworkError(0, errs.MsgConnectionFailed, errors.New("offline"))
	}

	if err := h.svc.Transaction.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := h.svc.Transaction.Wait(); err == nil {
		t.Fatalf("expected the background error to be collected")
	}

	snap := h.svc.Transaction.Snapshot()
	if snap.State != StateReady || snap.Err != nil || ids(snap.Transactions) != "cached" {
		t.Fatalf("background failure must not surface, got %+v", snap)
	}
}

func TestSlowBackgroundRefreshIsDiscarded(t *testing.T) {
	h := newHarness(t)
	key := cache.Key("oid-1")
	h.cache.WriteCache(key, []model.Transaction{txAt("cached", "2024-03-10T10:00:00Z")})

	release := make(chan struct{})
	started := make(chan struct{})
	h.api.listFn = func(call int) ([]model.Transaction, error) {
		if call == 1 {
			close(started)
			<-release
			return []model.Transaction{txAt("stale", "2024-03-10T11:00:00Z")}, nil
		}
		return []model.Transaction{txAt("fresh", "2024-03-10T12:00:00Z"), txAt("srv-1", "2024-03-10T12:00:00Z")}, nil
	}

	if err := h.svc.Transaction.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	<-started

	if _, err := h.svc.Transaction.Create(context.Background(), CreateInput{
		Recipient: "prof@uacj.mx",
		Amount:    "25",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	close(release)
	_ = h.svc.Transaction.Wait()

	snap := h.svc.Transaction.Snapshot()
	if ids(snap.Transactions) != "fresh,srv-1" {
		t.Fatalf("expected the mutation's re-fetch to win, got %s", ids(snap.Transactions))
	}
	if entry := h.cache.ReadCache(key); entry == nil || ids(entry.Transactions) != "fresh,srv-1" {
		t.Fatalf("stale background result must not reach the cache, got %+v", entry)
	}
}

func TestCloseAbandonsInFlightResults(t *testing.T) {
	h := newHarness(t)
	h.cache.WriteCache(cache.Key("oid-1"), []model.Transaction{txAt("cached", "2024-03-10T10:00:00Z")})

	release := make(chan struct{})
	h.api.listFn = func(call int) ([]model.Transaction, error) {
		<-release
		return []model.Transaction{txAt("late", "2024-03-10T11:00:00Z")}, nil
	}

	if err := h.svc.Transaction.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	h.svc.Transaction.Close()
	close(release)
	_ = h.svc.Transaction.Wait()

	if got := ids(h.svc.Transaction.Snapshot().Transactions); got != "cached" {
		t.Fatalf("expected the late result to be abandoned, got %s", got)
	}
}

func TestCloseStillWarmsCacheFromBackgroundRefresh(t *testing.T) {
	h := newHarness(t)
	key := cache.Key("oid-1")
	h.cache.WriteCache(key, []model.Transaction{txAt("cached", "2024-03-10T10:00:00Z")})
	h.clock.Advance(25 * time.Minute)

	release := make(chan struct{})
	h.api.listFn = func(call int) ([]model.Transaction, error) {
		<-release
		return []model.Transaction{txAt("fresh", "2024-03-10T12:20:00Z")}, nil
	}

	if err := h.svc.Transaction.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	h.svc.Transaction.Close()
	close(release)
	_ = h.svc.Transaction.Wait()

	if got := ids(h.svc.Transaction.Snapshot().Transactions); got != "cached" {
		t.Fatalf("expected the closed session to keep showing the cached list, got %s", got)
	}

	h.clock.Advance(6 * time.Minute)
	entry := h.cache.ReadCache(key)
	if entry == nil || ids(entry.Transactions) != "fresh" {
		t.Fatalf("expected the background result in the cache after close, got %+v", entry)
	}
	if h.api.calls() != 1 {
		t.Fatalf("expected one list call, got %d", h.api.calls())
	}
}

func TestLoadFailureAndRetry(t *testing.T) {
	h := newHarness(t)

	fail := true
	h.api.listFn = func(call int) ([]model.Transaction, error) {
		if fail {
			return nil, errs.NewTimeoutError(context.DeadlineExceeded)
		}
		return []model.Transaction{txAt("ok", "2024-03-10T11:00:00Z")}, nil
	}

	err := h.svc.Transaction.Load(context.Background())
	if !errs.IsNetwork(err) {
		t.Fatalf("expected a network error, got %v", err)
	}

	snap := h.svc.Transaction.Snapshot()
	if snap.State != StateError || !snap.CanRetry || snap.Err == nil {
		t.Fatalf("expected a retryable error state, got %+v", snap)
	}

	fail = false
	if err := h.svc.Transaction.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}

	snap = h.svc.Transaction.Snapshot()
	if snap.State != StateReady || snap.CanRetry || ids(snap.Transactions) != "ok" {
		t.Fatalf("expected Ready after retry, got %+v", snap)
	}

	if err := h.svc.Transaction.Retry(context.Background()); !errors.Is(err, ErrNothingToRetry) {
		t.Fatalf("expected ErrNothingToRetry, got %v", err)
	}
}

func TestLoadResolvesIdentityBeforeLoading(t *testing.T) {
	h := newHarness(t)

	var seen State
	h.auth.onIdentity = func() { seen = h.svc.Transaction.State() }

	if err := h.svc.Transaction.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if seen != StateIdle {
		t.Fatalf("expected sign-in to run before Loading, state was %s", seen)
	}
	if got := *h.states; len(got) == 0 || got[0] != StateLoading {
		t.Fatalf("expected Loading as the first transition, got %v", got)
	}
}

func TestLoadWithoutIdentity(t *testing.T) {
	h := newHarness(t)
	h.auth.err = errs.NewAuthError(errs.AuthMissing, errs.MsgNotAuthenticated, nil)

	if err := h.svc.Transaction.Load(context.Background()); !errs.IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if h.api.calls() != 0 {
		t.Fatalf("no fetch should happen without an identity")
	}
}

func TestCreateValidationBlocksNetwork(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Transaction.Create(context.Background(), CreateInput{
		Recipient: "prof@gmail.com",
		Amount:    "0",
	})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	fields := validation.FieldErrors(err)
	if _, ok := fields[validation.FieldRecipient]; !ok {
		t.Fatalf("expected recipient error, got %v", fields)
	}
	if _, ok := fields[validation.FieldAmount]; !ok {
		t.Fatalf("expected amount error, got %v", fields)
	}
	if len(h.api.created) != 0 || h.api.calls() != 0 {
		t.Fatalf("validation failure must not reach the network")
	}
}

func TestCreateStampsOriginatorAndRefetches(t *testing.T) {
	h := newHarness(t)
	h.api.listFn = func(call int) ([]model.Transaction, error) {
		return []model.Transaction{txAt("srv-1", "2024-03-10T12:00:00Z")}, nil
	}

	created, err := h.svc.Transaction.Create(context.Background(), CreateInput{
		Recipient: " prof@uacj.mx ",
		Amount:    "1,250.50",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "srv-1" {
		t.Fatalf("unexpected created transaction %+v", created)
	}

	req := h.api.created[0]
	if req.Recipient != "prof@uacj.mx" || req.FromAccountID != "oid-1" || req.FromAccountEmail != "ana@uacj.mx" {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.Description != "Transferencia a prof@uacj.mx" {
		t.Fatalf("expected default description, got %q", req.Description)
	}
	if !req.Amount.Equal(decimal.RequireFromString("1250.50")) || !req.Timestamp.Equal(h.clock.Now()) {
		t.Fatalf("unexpected amount or timestamp %+v", req)
	}

	if h.api.calls() != 1 {
		t.Fatalf("expected a re-fetch after create, got %d", h.api.calls())
	}
	if entry := h.cache.ReadCache(cache.Key("oid-1")); entry == nil || ids(entry.Transactions) != "srv-1" {
		t.Fatalf("expected the re-fetched list cached, got %+v", entry)
	}
}

func TestCreateFailureLeavesStateUntouched(t *testing.T) {
	h := newHarness(t)
	h.api.listFn = func(call int) ([]model.Transaction, error) {
		return []model.Transaction{txAt("a", "2024-03-10T11:00:00Z")}, nil
	}
	if err := h.svc.Transaction.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	h.api.createErr = errs.NewNetworkError(500, "server error, try again later (status 500)", nil)
	_, err := h.svc.Transaction.Create(context.Background(), CreateInput{Recipient: "prof@uacj.mx", Amount: "10"})
	if !errs.IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}

	snap := h.svc.Transaction.Snapshot()
	if snap.State != StateReady || ids(snap.Transactions) != "a" || !snap.CanRetry {
		t.Fatalf("expected prior state and a retry action, got %+v", snap)
	}
	if h.api.calls() != 1 {
		t.Fatalf("a failed create must not re-fetch")
	}
}

func TestDeclinedConfirmationSkipsNetwork(t *testing.T) {
	h := newHarness(t)
	h.confirm.answer = false

	if _, err := h.svc.Transaction.Delete(context.Background(), "t1"); !errors.Is(err, errs.ErrCancelled) {
		t.Fatalf("expected ErrCancelled from delete, got %v", err)
	}
	if _, err := h.svc.Transaction.Update(context.Background(), "t1", UpdateInput{Amount: "20"}); !errors.Is(err, errs.ErrCancelled) {
		t.Fatalf("expected ErrCancelled from update, got %v", err)
	}

	if len(h.api.deleted) != 0 || len(h.api.updated) != 0 || h.api.calls() != 0 {
		t.Fatalf("declined confirmation must not reach the network")
	}
	if len(h.confirm.asked) != 2 {
		t.Fatalf("expected two confirmations, got %d", len(h.confirm.asked))
	}
}

func TestUpdateValidatesBeforeConfirming(t *testing.T) {
	h := newHarness(t)

	if _, err := h.svc.Transaction.Update(context.Background(), "t1", UpdateInput{Amount: "10000.01"}); !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(h.confirm.asked) != 0 {
		t.Fatalf("invalid input must not prompt")
	}
}

func TestUpdateAndDeleteRefetch(t *testing.T) {
	h := newHarness(t)
	h.api.listFn = func(call int) ([]model.Transaction, error) {
		return []model.Transaction{txAt("t1", "2024-03-10T11:00:00Z")}, nil
	}

	if _, err := h.svc.Transaction.Update(context.Background(), "t1", UpdateInput{Amount: "20"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	msg, err := h.svc.Transaction.Delete(context.Background(), "t1")
	if err != nil || msg != "deleted" {
		t.Fatalf("Delete: %q %v", msg, err)
	}

	if h.api.calls() != 2 {
		t.Fatalf("expected a re-fetch after each mutation, got %d", h.api.calls())
	}
	if !strings.Contains(h.confirm.asked[1], "$10.00") {
		t.Fatalf("expected the delete prompt to describe the transaction, got %q", h.confirm.asked[1])
	}
}

func TestGlobalTransactions(t *testing.T) {
	h := newHarness(t)

	txs, err := h.svc.Transaction.GlobalTransactions(context.Background())
	if err != nil {
		t.Fatalf("GlobalTransactions: %v", err)
	}
	if ids(txs) != "new,old" {
		t.Fatalf("expected newest first, got %s", ids(txs))
	}

	for status, kind := range map[int]errs.AuthKind{401: errs.AuthExpired, 403: errs.AuthForbidden} {
		h.api.globalErr = errs.FromStatus(status)

		_, err := h.svc.Transaction.GlobalTransactions(context.Background())
		var authErr *errs.AuthError
		if !errors.As(err, &authErr) || authErr.Kind != kind {
			t.Fatalf("status %d: expected %s, got %v", status, kind, err)
		}
	}

	h.api.globalErr = errs.FromStatus(502)
	if _, err := h.svc.Transaction.GlobalTransactions(context.Background()); !errs.IsNetwork(err) {
		t.Fatalf("expected generic server error, got %v", err)
	}
}

func TestDashboardAndList(t *testing.T) {
	h := newHarness(t)
	h.api.listFn = func(call int) ([]model.Transaction, error) {
		var txs []model.Transaction
		for i := 0; i < 12; i++ {
			ts := h.clock.Now().Add(-time.Duration(i) * time.Hour).Format(time.RFC3339)
			txs = append(txs, txAt(string(rune('a'+i)), ts))
		}
		return txs, nil
	}
	if err := h.svc.Transaction.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	view := h.svc.Transaction.Dashboard(h.clock.Now())
	if len(view.Buckets) != 12 || view.Buckets[11].Label != "12:00" {
		t.Fatalf("unexpected buckets %+v", view.Buckets)
	}
	if view.KPIs.TotalCount != 12 || len(view.Recent) != 8 || view.Recent[0].ID != "a" {
		t.Fatalf("unexpected dashboard %+v", view)
	}
	if view.Identity.Name != "Ana" {
		t.Fatalf("expected identity in the view, got %+v", view.Identity)
	}

	list := h.svc.Transaction.List(2, 0)
	if list.Page.Size != 10 || len(list.Page.Items) != 2 {
		t.Fatalf("unexpected page %+v", list.Page)
	}
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.cache.WriteCache(cache.Key("oid-1"), []model.Transaction{txAt("a", "2024-03-10T11:00:00Z")})
	h.repo.data["auth:token"] = "secret"

	h.confirm.answer = false
	if err := h.svc.Session.Logout(context.Background()); !errors.Is(err, errs.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if h.auth.loggedOut {
		t.Fatalf("declined logout must keep the credential")
	}

	h.confirm.answer = true
	if err := h.svc.Session.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if !h.auth.loggedOut {
		t.Fatalf("expected the provider to be signed out")
	}
	if h.cache.ReadCache(cache.Key("oid-1")) != nil {
		t.Fatalf("expected cached transactions to be purged")
	}
}

func TestLogoutKeepsLateRefreshOutOfCache(t *testing.T) {
	h := newHarness(t)
	key := cache.Key("oid-1")
	h.cache.WriteCache(key, []model.Transaction{txAt("cached", "2024-03-10T10:00:00Z")})

	release := make(chan struct{})
	h.api.listFn = func(call int) ([]model.Transaction, error) {
		<-release
		return []model.Transaction{txAt("late", "2024-03-10T11:00:00Z")}, nil
	}

	if err := h.svc.Transaction.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := h.svc.Session.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	close(release)
	_ = h.svc.Transaction.Wait()

	if entry := h.cache.ReadCache(key); entry != nil {
		t.Fatalf("expected no cache entry after sign-out, got %+v", entry)
	}
}
