package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ErikMN/dnf-ui/internal/cache"
	"github.com/ErikMN/dnf-ui/internal/dnf"
	"github.com/ErikMN/dnf-ui/internal/task"
)

// Fast-fail errors returned before any worker is dispatched.
var (
	// ErrNothingStaged means Apply was called with an empty ledger.
	ErrNothingStaged = errors.New("app: no pending actions to apply")
	// ErrPrivilege means transactions cannot run: not root and no cached
	// sudo credentials.
	ErrPrivilege = errors.New("app: applying changes requires elevated privileges")
)

// Completion payloads. The UI type-switches on Completion.Value after Settle
// reports the completion fresh.
type (
	// InstalledListing is the full installed package list.
	InstalledListing struct {
		Packages []dnf.Package
	}

	// SearchResult carries one search's matches along with the query that
	// produced them.
	SearchResult struct {
		Query    dnf.Query
		Packages []dnf.Package
	}

	// PackageDetails is the metadata for one package.
	PackageDetails struct {
		NEVRA   string
		Package dnf.Package
	}

	// FileListing is the file list of one installed package.
	FileListing struct {
		NEVRA string
		Files []string
	}

	// DependencyInfo is the relation sets of one package.
	DependencyInfo struct {
		NEVRA string
		Deps  dnf.Dependencies
	}

	// ChangelogInfo is the change history of one package.
	ChangelogInfo struct {
		NEVRA   string
		Entries []dnf.ChangeEntry
	}

	// RefreshDone reports a completed repository refresh. InstalledNow is
	// the listing from the rebuilt handle, nil if that listing failed.
	RefreshDone struct {
		InstalledNow []dnf.Package
	}

	// ApplyReport reports a fully successful transaction. InstalledNow is
	// the post-transaction listing, nil if it could not be read.
	ApplyReport struct {
		Result       dnf.TransactionResult
		InstalledNow []dnf.Package
	}
)

// ListInstalled dispatches a query for all installed packages.
func (a *App) ListInstalled(ctx context.Context) uuid.UUID {
	return a.tasks.Query(ctx, "Listing installed packages...", func(ctx context.Context, h dnf.Handle) (any, error) {
		pkgs, err := h.ListInstalled(ctx)
		if err != nil {
			return nil, err
		}
		return InstalledListing{Packages: pkgs}, nil
	})
}

// Search records the term in the history, then either serves the result from
// the cache or dispatches a live search. Cached hits arrive through the same
// completion channel, marked Cached, so the UI follows one path either way.
func (a *App) Search(ctx context.Context, q dnf.Query) uuid.UUID {
	a.rememberTerm(ctx, q.Term)

	label := fmt.Sprintf("Searching for '%s'...", q.Term)
	if pkgs, ok := a.results.Get(cache.KeyFor(q), a.mgr.Epoch()); ok {
		return a.tasks.Deliver(label, a.mgr.Epoch(), SearchResult{Query: q, Packages: pkgs})
	}

	return a.tasks.Query(ctx, label, func(ctx context.Context, h dnf.Handle) (any, error) {
		pkgs, err := h.Search(ctx, q)
		if err != nil {
			return nil, err
		}
		return SearchResult{Query: q, Packages: pkgs}, nil
	})
}

func (a *App) rememberTerm(ctx context.Context, term string) {
	if a.history == nil {
		return
	}
	if err := a.history.Add(ctx, term); err != nil {
		a.log.Warn("recording search history", "term", term, "err", err)
	}
}

// Describe dispatches a metadata lookup for one package.
func (a *App) Describe(ctx context.Context, nevra string) uuid.UUID {
	return a.tasks.Query(ctx, "Fetching package info...", func(ctx context.Context, h dnf.Handle) (any, error) {
		p, err := h.Describe(ctx, nevra)
		if err != nil {
			return nil, err
		}
		return PackageDetails{NEVRA: nevra, Package: p}, nil
	})
}

// Files dispatches a file list lookup for one package.
func (a *App) Files(ctx context.Context, nevra string) uuid.UUID {
	return a.tasks.Query(ctx, "Loading file list...", func(ctx context.Context, h dnf.Handle) (any, error) {
		files, err := h.Files(ctx, nevra)
		if err != nil {
			return nil, err
		}
		return FileListing{NEVRA: nevra, Files: files}, nil
	})
}

// Dependencies dispatches a relations lookup for one package.
func (a *App) Dependencies(ctx context.Context, nevra string) uuid.UUID {
	return a.tasks.Query(ctx, "Loading dependencies...", func(ctx context.Context, h dnf.Handle) (any, error) {
		deps, err := h.Dependencies(ctx, nevra)
		if err != nil {
			return nil, err
		}
		return DependencyInfo{NEVRA: nevra, Deps: deps}, nil
	})
}

// Changelog dispatches a change-history lookup for one package.
func (a *App) Changelog(ctx context.Context, nevra string) uuid.UUID {
	return a.tasks.Query(ctx, "Loading changelog...", func(ctx context.Context, h dnf.Handle) (any, error) {
		entries, err := h.Changelog(ctx, nevra)
		if err != nil {
			return nil, err
		}
		return ChangelogInfo{NEVRA: nevra, Entries: entries}, nil
	})
}

// RefreshRepos rebuilds the engine handle so new repository contents become
// visible. Exclusive; returns task.ErrBusy if a transaction or another
// refresh is still running.
func (a *App) RefreshRepos(ctx context.Context) (uuid.UUID, error) {
	return a.tasks.Exec(ctx, "Refreshing repositories...", func(ctx context.Context) (any, uint64, error) {
		epoch, err := a.mgr.Rebuild(ctx)
		if err != nil {
			return nil, epoch, err
		}
		return RefreshDone{InstalledNow: a.listAfterRebuild(ctx)}, epoch, nil
	})
}

// Apply snapshots the ledger and submits everything as one transaction.
//
// It fails fast, before dispatching, when nothing is staged or when
// privileges are missing. Engine-side failures (unresolved packages, an
// empty resolved transaction, a run failure) come back in the completion as
// typed errors; only full success clears the ledger, which happens in Settle
// when the report arrives.
func (a *App) Apply(ctx context.Context) (uuid.UUID, error) {
	if a.ledger.Empty() {
		return uuid.Nil, ErrNothingStaged
	}
	if !a.eng.CanApply() {
		return uuid.Nil, ErrPrivilege
	}

	installs, removes := a.ledger.Snapshot()
	return a.tasks.Exec(ctx, "Applying changes...", func(ctx context.Context) (any, uint64, error) {
		var result dnf.TransactionResult
		_, err := a.mgr.Update(ctx, func(h dnf.Handle) error {
			r, aerr := h.Apply(ctx, installs, removes)
			result = r
			return aerr
		})
		if err != nil {
			return nil, a.mgr.Epoch(), err
		}

		// The installed set changed; the loaded universe is stale.
		epoch, err := a.mgr.Rebuild(ctx)
		if err != nil {
			a.log.Warn("rebuild after transaction failed", "err", err)
			return ApplyReport{Result: result}, epoch, nil
		}
		return ApplyReport{Result: result, InstalledNow: a.listAfterRebuild(ctx)}, epoch, nil
	})
}

// listAfterRebuild reads the installed list from the fresh handle so the
// completion can refresh the installed-set cache in the same delivery. A
// failure here only degrades highlighting, so it is logged and swallowed.
func (a *App) listAfterRebuild(ctx context.Context) []dnf.Package {
	var pkgs []dnf.Package
	if _, err := a.mgr.View(ctx, func(h dnf.Handle) error {
		var err error
		pkgs, err = h.ListInstalled(ctx)
		return err
	}); err != nil {
		a.log.Warn("listing installed packages after rebuild", "err", err)
		return nil
	}
	return pkgs
}

// Settle classifies a completion and, when it is fresh, applies its standard
// side effects: installed listings refresh the installed-set cache, live
// search results enter the result cache, and a successful transaction clears
// the ledger. Stale and canceled completions mutate nothing.
//
// Call it on the coordinating thread for every completion, before rendering
// anything from it.
func (a *App) Settle(c task.Completion) task.Outcome {
	outcome := a.tasks.Settle(c)
	if outcome != task.OutcomeFresh || c.Err != nil {
		return outcome
	}

	switch v := c.Value.(type) {
	case InstalledListing:
		a.installed.Replace(v.Packages)
	case SearchResult:
		if !c.Cached {
			a.results.Put(cache.KeyFor(v.Query), c.Epoch, v.Packages)
		}
	case RefreshDone:
		if v.InstalledNow != nil {
			a.installed.Replace(v.InstalledNow)
		}
	case ApplyReport:
		a.ledger.Clear()
		if v.InstalledNow != nil {
			a.installed.Replace(v.InstalledNow)
		}
	}
	return outcome
}
