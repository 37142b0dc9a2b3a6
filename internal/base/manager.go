package base

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ErikMN/dnf-ui/internal/dnf"
)

// Manager owns at most one live engine handle and mediates all access to it.
//
// Reads share the handle through View and proceed in parallel; Update and
// Rebuild are exclusive. The epoch counts rebuilds: work tagged with an
// earlier epoch was computed against a handle that no longer exists and must
// be discarded by whoever consumes it.
type Manager struct {
	eng dnf.Engine
	log *slog.Logger

	mu     sync.RWMutex
	handle dnf.Handle // nil until first use, and again after a failed rebuild

	epoch atomic.Uint64
}

// New returns a manager for eng. The handle is not opened until the first
// View, Update, or Rebuild needs it.
func New(eng dnf.Engine, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{eng: eng, log: log}
}

// Epoch returns the current epoch without blocking, even while a rebuild is
// in progress.
func (m *Manager) Epoch() uint64 {
	return m.epoch.Load()
}

// View runs fn with shared access to the handle and returns the epoch the
// handle belonged to, read under the same lock so the pair is coherent.
//
// If no handle exists yet, exactly one caller opens it while the others wait,
// then everyone proceeds. An open failure is returned to the caller that hit
// it and leaves the manager without a handle, so the next access retries.
func (m *Manager) View(ctx context.Context, fn func(dnf.Handle) error) (uint64, error) {
	for {
		epoch, ok, err := m.tryView(fn)
		if ok {
			return epoch, err
		}
		if err := m.init(ctx); err != nil {
			return 0, err
		}
	}
}

func (m *Manager) tryView(fn func(dnf.Handle) error) (uint64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.handle == nil {
		return 0, false, nil
	}
	return m.epoch.Load(), true, fn(m.handle)
}

// init opens the handle if it is still missing. Callers loop back to the read
// path afterwards rather than using the handle directly, because a rebuild
// may replace it between unlock and reacquire.
func (m *Manager) init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handle != nil {
		return nil
	}
	h, err := m.eng.Open(ctx)
	if err != nil {
		return fmt.Errorf("open engine: %w", err)
	}
	m.handle = h
	m.log.Debug("engine handle opened", "epoch", m.epoch.Load())
	return nil
}

// Update runs fn with exclusive access to the handle, opening it first if
// needed. No reader observes the handle while fn runs, which is what a
// mutating engine operation requires.
func (m *Manager) Update(ctx context.Context, fn func(dnf.Handle) error) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handle == nil {
		h, err := m.eng.Open(ctx)
		if err != nil {
			return 0, fmt.Errorf("open engine: %w", err)
		}
		m.handle = h
	}
	return m.epoch.Load(), fn(m.handle)
}

// Rebuild discards the current handle, increments the epoch exactly once,
// and opens a replacement before returning. It blocks until current readers
// finish and holds them out until done.
//
// The epoch moves even when the reopen fails: the old handle is gone either
// way, so in-flight work keyed to it is stale either way. After a failure the
// manager is handleless and the next access initializes again, at the new
// epoch.
func (m *Manager) Rebuild(ctx context.Context) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle != nil {
		if err := m.handle.Close(); err != nil {
			m.log.Warn("closing discarded handle", "err", err)
		}
		m.handle = nil
	}
	epoch := m.epoch.Add(1)

	h, err := m.eng.Open(ctx)
	if err != nil {
		m.log.Warn("rebuild failed", "epoch", epoch, "err", err)
		return epoch, fmt.Errorf("open engine: %w", err)
	}
	m.handle = h
	m.log.Info("engine handle rebuilt", "epoch", epoch)
	return epoch, nil
}

// Close releases the handle if one is open. The epoch is untouched; Close is
// shutdown, not invalidation.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handle == nil {
		return nil
	}
	err := m.handle.Close()
	m.handle = nil
	return err
}
