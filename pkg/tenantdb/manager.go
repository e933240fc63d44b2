package tenantdb

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Manager owns one connection pool per tenant. Pools are created lazily on
// first use, configured identically from the shared Config, and live until
// closed explicitly or evicted after the configured idle period.
//
// All registry mutation goes through the Manager's mutex: concurrent
// first-time requests for the same tenant produce exactly one pool.
type Manager struct {
	cfg        Config
	log        *slog.Logger
	evictAfter time.Duration

	mu     sync.RWMutex
	pools  map[string]*poolEntry
	closed bool

	stop chan struct{}
	done chan struct{}
}

type poolEntry struct {
	pool *pgxpool.Pool

	mu       sync.Mutex
	lastUsed time.Time
}

func (e *poolEntry) touch(now time.Time) {
	e.mu.Lock()
	e.lastUsed = now
	e.mu.Unlock()
}

func (e *poolEntry) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastUsed
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger supplies the logger used for asynchronous pool errors and
// eviction events. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithIdleEviction closes tenant pools that have not been used for ttl.
// Off by default: with a small, stable tenant count pools should live for
// the whole process. Enable it when tenant cardinality is large or dynamic.
func WithIdleEviction(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.evictAfter = ttl
		}
	}
}

// NewManager creates a Manager with an empty registry. No database
// connections are opened until the first session is requested.
func NewManager(cfg Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:   cfg,
		log:   slog.Default(),
		pools: make(map[string]*poolEntry),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.evictAfter > 0 {
		go m.janitor()
	} else {
		close(m.done)
	}
	return m
}

// Pool returns the tenant's connection pool, creating and registering it on
// first use. Creation is idempotent per tenant: the check and insert happen
// under one lock, so racing first-time callers all receive the same pool.
func (m *Manager) Pool(ctx context.Context, tenantID string) (*pgxpool.Pool, error) {
	if err := ValidateTenantID(tenantID); err != nil {
		return nil, err
	}

	now := time.Now()

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return nil, ErrManagerClosed
	}
	if e, ok := m.pools[tenantID]; ok {
		m.mu.RUnlock()
		e.touch(now)
		return e.pool, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrManagerClosed
	}
	if e, ok := m.pools[tenantID]; ok {
		e.touch(now)
		return e.pool, nil
	}

	pool, err := m.newPool(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	m.pools[tenantID] = &poolEntry{pool: pool, lastUsed: now}
	m.log.InfoContext(ctx, "created tenant pool", "tenant_id", tenantID)
	return pool, nil
}

// newPool builds a pgx pool from the shared connection parameters. Backend
// errors and notices raised outside any specific checkout are routed to the
// logger so a dropped idle connection never crashes the process.
func (m *Manager) newPool(ctx context.Context, tenantID string) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(m.cfg.connString())
	if err != nil {
		return nil, errors.Join(ErrFailedToParsePoolConfig, err)
	}
	pc.MaxConns = maxConnsPerTenant
	pc.MaxConnIdleTime = maxConnIdleTime

	log := m.log
	pc.ConnConfig.OnPgError = func(_ *pgconn.PgConn, pgErr *pgconn.PgError) bool {
		log.Error("asynchronous pool error",
			"tenant_id", tenantID,
			"severity", pgErr.Severity,
			"code", pgErr.Code,
			"message", pgErr.Message,
		)
		// Keep default connection handling: the error only affects future
		// checkouts from this pool, never an unrelated in-flight caller.
		return true
	}
	pc.ConnConfig.OnNotice = func(_ *pgconn.PgConn, n *pgconn.Notice) {
		log.Debug("backend notice", "tenant_id", tenantID, "message", n.Message)
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, errors.Join(ErrFailedToParsePoolConfig, err)
	}
	return pool, nil
}

// WithSession checks out one connection from the tenant's pool, configures
// its row-level-security context, and runs fn with it. The connection is
// released on every exit path, whether fn succeeds, fn fails, or the session
// setup itself fails. Errors from setup and fn are propagated unchanged after
// release.
//
// Acquisition waits at most 10 seconds for a free connection; ctx may impose
// a shorter deadline, and the same ctx flows into fn so callers can bound the
// whole session.
func (m *Manager) WithSession(ctx context.Context, tenantID string, fn func(ctx context.Context, conn *pgxpool.Conn) error) error {
	pool, err := m.Pool(ctx, tenantID)
	if err != nil {
		return err
	}

	acquireCtx, cancel := context.WithTimeout(ctx, acquireTimeout)
	conn, err := pool.Acquire(acquireCtx)
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return errors.Join(ErrAcquireTimeout, err)
		}
		return err
	}
	defer conn.Release()

	if err := configureSession(ctx, conn, tenantID, m.cfg.DisableRLS); err != nil {
		return errors.Join(ErrSessionSetup, err)
	}

	return fn(ctx, conn)
}

// Exec runs a single statement in its own scoped session. Each call is an
// independent session; there is no multi-statement transaction support here.
func (m *Manager) Exec(ctx context.Context, tenantID, sql string, args ...any) (pgconn.CommandTag, error) {
	var tag pgconn.CommandTag
	err := m.WithSession(ctx, tenantID, func(ctx context.Context, conn *pgxpool.Conn) error {
		var err error
		tag, err = conn.Exec(ctx, sql, args...)
		return err
	})
	return tag, err
}

// ClosePool closes and removes the tenant's pool. No-op when the tenant has
// no pool. Connections currently checked out are not revoked; pgxpool waits
// for them to be released before the close completes.
func (m *Manager) ClosePool(tenantID string) {
	m.mu.Lock()
	e, ok := m.pools[tenantID]
	if ok {
		delete(m.pools, tenantID)
	}
	m.mu.Unlock()

	if ok {
		e.pool.Close()
	}
}

// Close closes every registered pool concurrently, waits for all of them,
// and leaves the registry empty. The Manager is unusable afterwards; any
// later call fails with ErrManagerClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	entries := make([]*poolEntry, 0, len(m.pools))
	for _, e := range m.pools {
		entries = append(entries, e)
	}
	m.pools = make(map[string]*poolEntry)
	m.mu.Unlock()

	close(m.stop)
	<-m.done

	var wg sync.WaitGroup
	for _, e := range entries {
		wg.Add(1)
		go func(e *poolEntry) {
			defer wg.Done()
			e.pool.Close()
		}(e)
	}
	wg.Wait()
}

// janitor periodically closes pools idle beyond the eviction TTL.
func (m *Manager) janitor() {
	defer close(m.done)

	interval := m.evictAfter / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.evictIdle(now)
		}
	}
}

func (m *Manager) evictIdle(now time.Time) {
	type evicted struct {
		tenantID string
		entry    *poolEntry
	}

	var stale []evicted
	m.mu.Lock()
	for id, e := range m.pools {
		if now.Sub(e.idleSince()) >= m.evictAfter {
			stale = append(stale, evicted{tenantID: id, entry: e})
			delete(m.pools, id)
		}
	}
	m.mu.Unlock()

	for _, ev := range stale {
		// Close waits for checked-out connections, so it runs off the
		// janitor loop to keep eviction from stalling on a slow release.
		go func(ev evicted) {
			ev.entry.pool.Close()
			m.log.Info("evicted idle tenant pool", "tenant_id", ev.tenantID)
		}(ev)
	}
}

// Len reports the number of registered tenant pools.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pools)
}
