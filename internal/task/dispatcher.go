package task

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ErikMN/dnf-ui/internal/base"
	"github.com/ErikMN/dnf-ui/internal/dnf"
)

// ErrBusy is returned by Exec while another exclusive task is still running.
var ErrBusy = errors.New("task: an exclusive operation is already running")

// Completion carries one finished task back to the coordinating thread.
type Completion struct {
	// ID matches the value returned when the task was dispatched.
	ID uuid.UUID
	// Label is the human-readable name given at dispatch, for logs and
	// status lines.
	Label string
	// Epoch is the manager epoch the result was computed against.
	Epoch uint64
	// Value is the task's payload on success, nil otherwise.
	Value any
	// Err is the task's failure, nil on success.
	Err error
	// Cached marks completions injected by Deliver. They never touched a
	// worker and do not participate in busy accounting.
	Cached bool
}

// Outcome classifies a completion at settle time.
type Outcome int

const (
	// OutcomeFresh means the result may be consumed.
	OutcomeFresh Outcome = iota
	// OutcomeStale means the epoch moved since dispatch; discard silently.
	OutcomeStale
	// OutcomeCanceled means the task's context was canceled; discard
	// without reporting an error.
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFresh:
		return "fresh"
	case OutcomeStale:
		return "stale"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Dispatcher runs engine work on worker goroutines and funnels results into
// a single completion channel for the coordinating thread to drain.
type Dispatcher struct {
	mgr *base.Manager
	log *slog.Logger

	done chan Completion
	busy atomic.Int64
	excl atomic.Bool
}

// completionBuffer absorbs bursts so workers rarely block on delivery while
// the UI is mid-render.
const completionBuffer = 16

// New returns a dispatcher delivering completions for work against mgr.
func New(mgr *base.Manager, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		mgr:  mgr,
		log:  log,
		done: make(chan Completion, completionBuffer),
	}
}

// Completions is the channel the coordinating thread receives on. Every
// dispatched or delivered task produces exactly one completion here.
func (d *Dispatcher) Completions() <-chan Completion {
	return d.done
}

// Busy returns the number of dispatched tasks not yet settled. The busy
// indicator should show whenever this is nonzero; a count rather than a flag
// keeps one task's completion from hiding the indicator while another still
// runs.
func (d *Dispatcher) Busy() int64 {
	return d.busy.Load()
}

// Query runs fn with shared access to the engine handle on a worker
// goroutine. The completion's epoch is the one the handle belonged to while
// fn ran.
func (d *Dispatcher) Query(ctx context.Context, label string, fn func(context.Context, dnf.Handle) (any, error)) uuid.UUID {
	id := uuid.New()
	d.busy.Add(1)
	d.log.Debug("task dispatched", "id", id, "label", label)

	go func() {
		start := time.Now()
		var value any
		epoch, err := d.mgr.View(ctx, func(h dnf.Handle) error {
			v, ferr := fn(ctx, h)
			value = v
			return ferr
		})
		if err != nil {
			value = nil
		}
		d.log.Debug("task finished", "id", id, "label", label, "err", err, "elapsed", time.Since(start))
		d.done <- Completion{ID: id, Label: label, Epoch: epoch, Value: value, Err: err}
	}()
	return id
}

// Exec runs fn exclusively on a worker goroutine. At most one exclusive task
// runs at a time; a second Exec before the first finishes returns ErrBusy
// without dispatching.
//
// fn reports the epoch its outcome belongs to. A transaction that rebuilds
// the handle returns the post-rebuild epoch, so its completion settles fresh.
func (d *Dispatcher) Exec(ctx context.Context, label string, fn func(context.Context) (any, uint64, error)) (uuid.UUID, error) {
	if !d.excl.CompareAndSwap(false, true) {
		return uuid.Nil, ErrBusy
	}

	id := uuid.New()
	d.busy.Add(1)
	d.log.Debug("exclusive task dispatched", "id", id, "label", label)

	go func() {
		start := time.Now()
		value, epoch, err := fn(ctx)
		d.excl.Store(false)
		if err != nil {
			value = nil
		}
		d.log.Debug("exclusive task finished", "id", id, "label", label, "err", err, "elapsed", time.Since(start))
		d.done <- Completion{ID: id, Label: label, Epoch: epoch, Value: value, Err: err}
	}()
	return id, nil
}

// Deliver injects a ready-made result, typically a cache hit, as a cached
// completion. No worker runs and the busy count is untouched, but the result
// still flows through the completion channel so consumers handle exactly one
// shape.
func (d *Dispatcher) Deliver(label string, epoch uint64, value any) uuid.UUID {
	id := uuid.New()
	d.log.Debug("cached result delivered", "id", id, "label", label)
	go func() {
		d.done <- Completion{ID: id, Label: label, Epoch: epoch, Value: value, Cached: true}
	}()
	return id
}

// Settle classifies a completion and maintains the busy count. Call it on
// the coordinating thread, once per completion, before acting on the value.
//
// Order matters: cancellation wins over staleness, staleness over the error
// or value. A canceled or stale completion must produce no state mutation
// beyond the busy release.
func (d *Dispatcher) Settle(c Completion) Outcome {
	if !c.Cached {
		d.busy.Add(-1)
	}
	if c.Err != nil && errors.Is(c.Err, context.Canceled) {
		return OutcomeCanceled
	}
	if c.Epoch != d.mgr.Epoch() {
		d.log.Debug("stale completion discarded", "id", c.ID, "label", c.Label,
			"taskEpoch", c.Epoch, "currentEpoch", d.mgr.Epoch())
		return OutcomeStale
	}
	return OutcomeFresh
}
