package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ErikMN/dnf-ui/internal/base"
	"github.com/ErikMN/dnf-ui/internal/cache"
	"github.com/ErikMN/dnf-ui/internal/config"
	"github.com/ErikMN/dnf-ui/internal/dnf"
	"github.com/ErikMN/dnf-ui/internal/history"
	"github.com/ErikMN/dnf-ui/internal/ledger"
	"github.com/ErikMN/dnf-ui/internal/task"
)

// Options configure the application core.
type Options struct {
	Config config.Config
	// Engine overrides the command line engine, mainly for tests. Nil
	// builds one from Config.
	Engine dnf.Engine
	// History persists search terms. Nil runs without history.
	History *history.Store
	Logger  *slog.Logger
}

// App owns the moving parts behind the UI: the handle manager, the task
// dispatcher, the caches, and the pending-action ledger. The UI dispatches
// work through App methods, drains Completions, and hands each one to Settle
// on its own update loop.
type App struct {
	eng       dnf.Engine
	mgr       *base.Manager
	tasks     *task.Dispatcher
	installed *cache.InstalledSet
	results   *cache.Results
	ledger    *ledger.Ledger
	history   *history.Store
	log       *slog.Logger
}

// New wires the application core together. Nothing touches the engine yet;
// the first dispatched task pays for the initial load.
func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	eng := opts.Engine
	if eng == nil {
		eng = dnf.NewCLI(dnf.CLIOptions{
			DNFBin: opts.Config.DNFBin,
			RPMBin: opts.Config.RPMBin,
			Logger: log.With(slog.String("component", "engine")),
		})
	}

	mgr := base.New(eng, log.With(slog.String("component", "manager")))
	return &App{
		eng:       eng,
		mgr:       mgr,
		tasks:     task.New(mgr, log.With(slog.String("component", "tasks"))),
		installed: cache.NewInstalledSet(),
		results:   cache.NewResults(opts.Config.CacheSize),
		ledger:    ledger.New(),
		history:   opts.History,
		log:       log,
	}
}

// Completions is the channel the UI drains; every dispatched operation ends
// up here exactly once.
func (a *App) Completions() <-chan task.Completion {
	return a.tasks.Completions()
}

// Busy returns the number of in-flight tasks.
func (a *App) Busy() int64 {
	return a.tasks.Busy()
}

// Epoch exposes the manager's current epoch.
func (a *App) Epoch() uint64 {
	return a.mgr.Epoch()
}

// Installed is the installed-set cache used for row highlighting.
func (a *App) Installed() *cache.InstalledSet {
	return a.installed
}

// CanApply reports whether transactions can run without prompting for
// credentials.
func (a *App) CanApply() bool {
	return a.eng.CanApply()
}

// ToggleInstall stages or unstages an install for nevra.
func (a *App) ToggleInstall(nevra string) {
	a.ledger.ToggleInstall(nevra)
}

// ToggleRemove stages or unstages a removal for nevra.
func (a *App) ToggleRemove(nevra string) {
	a.ledger.ToggleRemove(nevra)
}

// StagedKind returns the pending action for nevra, if any.
func (a *App) StagedKind(nevra string) (ledger.Kind, bool) {
	return a.ledger.Kind(nevra)
}

// Pending returns the staged actions in staging order.
func (a *App) Pending() []ledger.Entry {
	return a.ledger.Entries()
}

// HasPending reports whether anything is staged.
func (a *App) HasPending() bool {
	return !a.ledger.Empty()
}

// RecentSearches returns the persisted search history, most recent first.
// Without a history store it returns nothing.
func (a *App) RecentSearches(ctx context.Context) ([]string, error) {
	if a.history == nil {
		return nil, nil
	}
	return a.history.Recent(ctx)
}

// ClearResults empties the search result cache.
func (a *App) ClearResults() {
	a.results.Clear()
	a.log.Debug("result cache cleared")
}

// Close releases the engine handle and the history store.
func (a *App) Close() error {
	errs := []error{a.mgr.Close()}
	if a.history != nil {
		errs = append(errs, a.history.Close())
	}
	return errors.Join(errs...)
}
