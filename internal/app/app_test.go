package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ErikMN/dnf-ui/internal/config"
	"github.com/ErikMN/dnf-ui/internal/dnf"
	"github.com/ErikMN/dnf-ui/internal/dnf/dnftest"
	"github.com/ErikMN/dnf-ui/internal/history"
	"github.com/ErikMN/dnf-ui/internal/task"
)

const (
	pkgA = "pkgA-1.0-1.x86_64"
	pkgB = "pkgB-2.0-1.x86_64"
)

func newTestApp(t *testing.T) (*dnftest.Engine, *App) {
	t.Helper()
	eng := dnftest.New()
	eng.AddInstalled(dnf.Package{Name: "pkgB", Version: "2.0", Release: "1", Arch: "x86_64"})
	eng.AddAvailable(
		dnf.Package{Name: "pkgA", Version: "1.0", Release: "1", Arch: "x86_64", Description: "the first test package"},
		dnf.Package{Name: "pkgB", Version: "2.0", Release: "1", Arch: "x86_64", Description: "the second test package"},
	)
	a := New(Options{Config: config.Config{CacheSize: 8}, Engine: eng})
	t.Cleanup(func() { a.Close() })
	return eng, a
}

func recv(t *testing.T, a *App) task.Completion {
	t.Helper()
	select {
	case c := <-a.Completions():
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a completion")
		return task.Completion{}
	}
}

func settleFresh(t *testing.T, a *App) task.Completion {
	t.Helper()
	c := recv(t, a)
	if outcome := a.Settle(c); outcome != task.OutcomeFresh {
		t.Fatalf("Settle = %v, want fresh (label %q, err %v)", outcome, c.Label, c.Err)
	}
	return c
}

func TestApplyClearsLedgerAndRefreshesInstalled(t *testing.T) {
	eng, a := newTestApp(t)
	ctx := context.Background()

	a.ToggleInstall(pkgA)
	a.ToggleRemove(pkgB)
	require.True(t, a.HasPending())
	before := a.Epoch()

	_, err := a.Apply(ctx)
	require.NoError(t, err)

	c := settleFresh(t, a)
	require.NoError(t, c.Err)
	report, ok := c.Value.(ApplyReport)
	require.True(t, ok, "value should be an ApplyReport, got %T", c.Value)
	assert.Equal(t, []string{pkgA}, report.Result.Installed)
	assert.Equal(t, []string{pkgB}, report.Result.Removed)

	assert.False(t, a.HasPending(), "full success must clear the ledger")
	assert.Equal(t, before+1, a.Epoch(), "a transaction rebuilds exactly once")
	assert.True(t, eng.IsInstalled(pkgA))
	assert.False(t, eng.IsInstalled(pkgB))
	assert.True(t, a.Installed().HasNEVRA(pkgA))
	assert.False(t, a.Installed().HasNEVRA(pkgB))
}

func TestApplyEmptyLedgerFailsFast(t *testing.T) {
	eng, a := newTestApp(t)

	_, err := a.Apply(context.Background())
	assert.ErrorIs(t, err, ErrNothingStaged)
	assert.Equal(t, int64(0), a.Busy(), "nothing may be dispatched")
	assert.Equal(t, 0, eng.Opens(), "the engine must not be touched")
}

func TestApplyWithoutPrivilegeFailsFast(t *testing.T) {
	eng, a := newTestApp(t)
	eng.SetPrivileged(false)

	a.ToggleInstall(pkgA)
	_, err := a.Apply(context.Background())
	assert.ErrorIs(t, err, ErrPrivilege)
	assert.Equal(t, 0, eng.Opens(), "privilege failures never reach the engine")
	assert.True(t, a.HasPending(), "the ledger keeps its entries")
}

func TestApplyFailureKeepsLedger(t *testing.T) {
	_, a := newTestApp(t)
	ctx := context.Background()

	a.ToggleInstall("ghost-1.0-1.x86_64")
	before := a.Epoch()

	_, err := a.Apply(ctx)
	require.NoError(t, err)

	c := settleFresh(t, a)
	assert.ErrorIs(t, c.Err, dnf.ErrUnresolved)
	assert.True(t, a.HasPending(), "a failed transaction must not clear the ledger")
	assert.Equal(t, before, a.Epoch(), "no rebuild without a successful transaction")
}

func TestApplyAlreadySatisfiedReportsNothingToDo(t *testing.T) {
	_, a := newTestApp(t)
	ctx := context.Background()

	// pkgB is already installed; the resolved transaction is empty.
	a.ToggleInstall(pkgB)
	_, err := a.Apply(ctx)
	require.NoError(t, err)

	c := settleFresh(t, a)
	assert.ErrorIs(t, c.Err, dnf.ErrNothingToDo)
	assert.True(t, a.HasPending())
}

func TestSearchCachesAndServesCachedResults(t *testing.T) {
	_, a := newTestApp(t)
	ctx := context.Background()
	q := dnf.Query{Term: "pkg"}

	a.Search(ctx, q)
	first := settleFresh(t, a)
	require.NoError(t, first.Err)
	assert.False(t, first.Cached)
	live := first.Value.(SearchResult)
	assert.Len(t, live.Packages, 2)

	a.Search(ctx, q)
	second := settleFresh(t, a)
	require.NoError(t, second.Err)
	assert.True(t, second.Cached, "repeating a search must hit the cache")
	cached := second.Value.(SearchResult)
	assert.Equal(t, live.Packages, cached.Packages)
	assert.Equal(t, int64(0), a.Busy())
}

func TestSearchCachesEmptyResults(t *testing.T) {
	_, a := newTestApp(t)
	ctx := context.Background()
	q := dnf.Query{Term: "zzz-impossible"}

	a.Search(ctx, q)
	first := settleFresh(t, a)
	require.NoError(t, first.Err)
	assert.False(t, first.Cached)
	assert.Empty(t, first.Value.(SearchResult).Packages)

	a.Search(ctx, q)
	second := settleFresh(t, a)
	assert.True(t, second.Cached, "an empty result is still a result worth caching")
	assert.Empty(t, second.Value.(SearchResult).Packages)
}

func TestSearchCacheExpiresWithEpoch(t *testing.T) {
	_, a := newTestApp(t)
	ctx := context.Background()
	q := dnf.Query{Term: "pkg"}

	a.Search(ctx, q)
	settleFresh(t, a)

	_, err := a.RefreshRepos(ctx)
	require.NoError(t, err)
	settleFresh(t, a)

	a.Search(ctx, q)
	after := settleFresh(t, a)
	assert.False(t, after.Cached, "a rebuild invalidates cached searches")
}

func TestStaleCompletionMutatesNothing(t *testing.T) {
	eng, a := newTestApp(t)
	ctx := context.Background()

	a.ListInstalled(ctx)
	stale := recv(t, a) // hold without settling

	// The universe moves on: one more package lands and a refresh rebuilds.
	eng.AddInstalled(dnf.Package{Name: "pkgC", Version: "3.0", Release: "1", Arch: "x86_64"})
	_, err := a.RefreshRepos(ctx)
	require.NoError(t, err)
	settleFresh(t, a)
	require.Equal(t, 2, a.Installed().Len())

	assert.Equal(t, task.OutcomeStale, a.Settle(stale))
	assert.Equal(t, 2, a.Installed().Len(), "a stale listing must not overwrite the installed set")
	assert.Equal(t, int64(0), a.Busy())
}

func TestListInstalledRefreshesCache(t *testing.T) {
	_, a := newTestApp(t)

	a.ListInstalled(context.Background())
	c := settleFresh(t, a)
	require.NoError(t, c.Err)

	listing := c.Value.(InstalledListing)
	assert.Len(t, listing.Packages, 1)
	assert.Equal(t, len(listing.Packages), a.Installed().Len())
	assert.True(t, a.Installed().HasName("pkgB"))
}

func TestDescribeUnknownPackage(t *testing.T) {
	_, a := newTestApp(t)

	a.Describe(context.Background(), "ghost-1.0-1.x86_64")
	c := settleFresh(t, a)
	assert.ErrorIs(t, c.Err, dnf.ErrNotFound)
	assert.Nil(t, c.Value)
}

func TestSearchRecordsHistory(t *testing.T) {
	eng := dnftest.New()
	eng.AddAvailable(dnf.Package{Name: "htop", Version: "3.3.0", Release: "2.fc40", Arch: "x86_64"})

	ctx := context.Background()
	store, err := history.Open(ctx, filepath.Join(t.TempDir(), "history.db"), 10)
	require.NoError(t, err)

	a := New(Options{Config: config.Config{CacheSize: 8}, Engine: eng, History: store})
	defer a.Close()

	a.Search(ctx, dnf.Query{Term: "htop"})
	settleFresh(t, a)

	terms, err := a.RecentSearches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"htop"}, terms)
}

func TestRefreshSurfacesFailure(t *testing.T) {
	eng, a := newTestApp(t)
	ctx := context.Background()

	// Prime the handle so the refresh has something to discard.
	a.ListInstalled(ctx)
	settleFresh(t, a)

	boom := assert.AnError
	eng.FailNextOpen(boom)
	_, err := a.RefreshRepos(ctx)
	require.NoError(t, err)

	c := settleFresh(t, a)
	assert.ErrorIs(t, c.Err, boom)
	assert.Equal(t, uint64(1), a.Epoch(), "the old handle is gone even though the reopen failed")
}
