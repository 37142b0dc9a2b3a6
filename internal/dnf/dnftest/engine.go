// Package dnftest provides an in-memory Engine for tests. It keeps the
// package universe in maps, snapshots it into an Index on every Open the way
// the real engine does, and lets tests script open failures, open latency,
// and transaction outcomes.
package dnftest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ErikMN/dnf-ui/internal/dnf"
)

// Engine is a fake dnf.Engine. The zero value is not usable; call New.
//
// All methods are safe for concurrent use. Handles returned by Open serve
// reads from a snapshot taken at open time, so mutations through Apply only
// become visible to handles opened afterwards.
type Engine struct {
	mu sync.Mutex

	installed map[string]dnf.Package
	available map[string]dnf.Package
	files     map[string][]string
	changes   map[string][]dnf.ChangeEntry
	deps      map[string]dnf.Dependencies

	opens      int
	closes     int
	failOpens  []error
	openDelay  time.Duration
	privileged bool
	applyErr   error
}

var _ dnf.Engine = (*Engine)(nil)

// New returns an empty privileged engine.
func New() *Engine {
	return &Engine{
		installed:  make(map[string]dnf.Package),
		available:  make(map[string]dnf.Package),
		files:      make(map[string][]string),
		changes:    make(map[string][]dnf.ChangeEntry),
		deps:       make(map[string]dnf.Dependencies),
		privileged: true,
	}
}

// AddInstalled puts packages into the installed set.
func (e *Engine) AddInstalled(pkgs ...dnf.Package) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range pkgs {
		p.Installed = true
		e.installed[p.NEVRA()] = p
	}
}

// AddAvailable puts packages into the available set.
func (e *Engine) AddAvailable(pkgs ...dnf.Package) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range pkgs {
		e.available[p.NEVRA()] = p
	}
}

// SetFiles records the file list served for a NEVRA.
func (e *Engine) SetFiles(nevra string, files ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.files[nevra] = files
}

// SetChangelog records the changelog served for a NEVRA.
func (e *Engine) SetChangelog(nevra string, entries ...dnf.ChangeEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.changes[nevra] = entries
}

// SetDependencies records the dependency info served for a NEVRA.
func (e *Engine) SetDependencies(nevra string, deps dnf.Dependencies) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deps[nevra] = deps
}

// FailNextOpen queues an error for an upcoming Open call. Queued failures are
// consumed in order before any successful open.
func (e *Engine) FailNextOpen(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failOpens = append(e.failOpens, err)
}

// SetOpenDelay makes every Open sleep before returning, so tests can overlap
// an open with other calls. Open still honors context cancellation during the
// sleep.
func (e *Engine) SetOpenDelay(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.openDelay = d
}

// SetPrivileged controls CanApply.
func (e *Engine) SetPrivileged(ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.privileged = ok
}

// FailApply makes every Apply on every handle return err. Pass nil to clear.
func (e *Engine) FailApply(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyErr = err
}

// Opens returns the number of Open attempts, failed ones included.
func (e *Engine) Opens() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opens
}

// Closes returns the number of Close calls across all handles.
func (e *Engine) Closes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closes
}

// IsInstalled reports whether a NEVRA is currently in the installed set.
func (e *Engine) IsInstalled(nevra string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.installed[nevra]
	return ok
}

// CanApply reports the scripted privilege state.
func (e *Engine) CanApply() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.privileged
}

// Open counts the attempt, consumes a queued failure if one is pending, and
// otherwise snapshots the universe into a fresh handle.
func (e *Engine) Open(ctx context.Context) (dnf.Handle, error) {
	e.mu.Lock()
	delay := e.openDelay
	e.mu.Unlock()
	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.opens++
	if len(e.failOpens) > 0 {
		err := e.failOpens[0]
		e.failOpens = e.failOpens[1:]
		return nil, err
	}
	ix := dnf.NewIndex(collect(e.installed), collect(e.available))
	return &handle{eng: e, ix: ix}, nil
}

func collect(m map[string]dnf.Package) []dnf.Package {
	out := make([]dnf.Package, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	return out
}

type handle struct {
	eng *Engine
	ix  *dnf.Index
}

var _ dnf.Handle = (*handle)(nil)

func (h *handle) ListInstalled(ctx context.Context) ([]dnf.Package, error) {
	return h.ix.Installed(), nil
}

func (h *handle) Search(ctx context.Context, q dnf.Query) ([]dnf.Package, error) {
	return h.ix.Search(q), nil
}

func (h *handle) Describe(ctx context.Context, nevra string) (dnf.Package, error) {
	p, ok := h.ix.Get(nevra)
	if !ok {
		return dnf.Package{}, fmt.Errorf("describe %s: %w", nevra, dnf.ErrNotFound)
	}
	return p, nil
}

func (h *handle) Files(ctx context.Context, nevra string) ([]string, error) {
	p, ok := h.ix.Get(nevra)
	if !ok {
		return nil, fmt.Errorf("files %s: %w", nevra, dnf.ErrNotFound)
	}
	if !p.Installed {
		return nil, fmt.Errorf("files %s: %w", nevra, dnf.ErrNotInstalled)
	}
	h.eng.mu.Lock()
	defer h.eng.mu.Unlock()
	return h.eng.files[nevra], nil
}

func (h *handle) Dependencies(ctx context.Context, nevra string) (dnf.Dependencies, error) {
	if _, ok := h.ix.Get(nevra); !ok {
		return dnf.Dependencies{}, fmt.Errorf("dependencies %s: %w", nevra, dnf.ErrNotFound)
	}
	h.eng.mu.Lock()
	defer h.eng.mu.Unlock()
	return h.eng.deps[nevra], nil
}

func (h *handle) Changelog(ctx context.Context, nevra string) ([]dnf.ChangeEntry, error) {
	if _, ok := h.ix.Get(nevra); !ok {
		return nil, fmt.Errorf("changelog %s: %w", nevra, dnf.ErrNotFound)
	}
	h.eng.mu.Lock()
	defer h.eng.mu.Unlock()
	return h.eng.changes[nevra], nil
}

// Apply validates every NEVRA against the engine's current universe, then
// mutates the installed set in one step. Unknown names fail the whole
// transaction, matching how the real engine resolves before running.
func (h *handle) Apply(ctx context.Context, installs, removes []string) (dnf.TransactionResult, error) {
	if len(installs) == 0 && len(removes) == 0 {
		return dnf.TransactionResult{}, dnf.ErrNothingToDo
	}

	h.eng.mu.Lock()
	defer h.eng.mu.Unlock()

	if h.eng.applyErr != nil {
		return dnf.TransactionResult{}, h.eng.applyErr
	}
	for _, nevra := range installs {
		if _, ok := h.eng.available[nevra]; !ok {
			return dnf.TransactionResult{}, fmt.Errorf("no match for argument %s: %w", nevra, dnf.ErrUnresolved)
		}
	}
	for _, nevra := range removes {
		if _, ok := h.eng.installed[nevra]; !ok {
			return dnf.TransactionResult{}, fmt.Errorf("no match for argument %s: %w", nevra, dnf.ErrUnresolved)
		}
	}

	var result dnf.TransactionResult
	for _, nevra := range installs {
		if _, ok := h.eng.installed[nevra]; ok {
			continue
		}
		p := h.eng.available[nevra]
		p.Installed = true
		h.eng.installed[nevra] = p
		result.Installed = append(result.Installed, nevra)
	}
	for _, nevra := range removes {
		delete(h.eng.installed, nevra)
		result.Removed = append(result.Removed, nevra)
	}
	if len(result.Installed) == 0 && len(result.Removed) == 0 {
		return dnf.TransactionResult{}, dnf.ErrNothingToDo
	}
	return result, nil
}

func (h *handle) Close() error {
	h.eng.mu.Lock()
	defer h.eng.mu.Unlock()
	h.eng.closes++
	return nil
}
