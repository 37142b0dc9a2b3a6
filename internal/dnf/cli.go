package dnf

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Field and record separators for the repoquery format. Descriptions contain
// newlines, so records cannot be line-delimited.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

var queryFormat = strings.Join([]string{
	"%{name}", "%{epoch}", "%{version}", "%{release}",
	"%{arch}", "%{reponame}", "%{summary}", "%{description}",
}, fieldSep) + recordSep

const (
	defaultDNFBin = "dnf5"
	defaultRPMBin = "rpm"
)

// CLIOptions configure the command line engine.
type CLIOptions struct {
	// DNFBin is the dnf executable. Defaults to dnf5.
	DNFBin string
	// RPMBin is the rpm executable, used for file lists and changelogs of
	// installed packages. Defaults to rpm.
	RPMBin string
	Logger *slog.Logger
}

// CLI is an Engine backed by the system dnf and rpm binaries. Open loads the
// whole package universe into an in-memory Index up front, so interactive
// listing and searching never wait on the package manager. File lists,
// changelogs, dependency queries, and transactions shell out per call.
type CLI struct {
	dnf string
	rpm string
	log *slog.Logger
}

var _ Engine = (*CLI)(nil)

// NewCLI returns an engine that drives the given binaries.
func NewCLI(opts CLIOptions) *CLI {
	e := &CLI{dnf: opts.DNFBin, rpm: opts.RPMBin, log: opts.Logger}
	if e.dnf == "" {
		e.dnf = defaultDNFBin
	}
	if e.rpm == "" {
		e.rpm = defaultRPMBin
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	return e
}

// Available reports whether the configured dnf binary is on PATH.
func (e *CLI) Available() bool {
	_, err := exec.LookPath(e.dnf)
	return err == nil
}

// CanApply reports whether transactions can run without prompting: either
// the process is root, or sudo credentials are already cached.
func (e *CLI) CanApply() bool {
	if os.Geteuid() == 0 {
		return true
	}
	return sudoCached()
}

// Open loads the installed and available package sets and snapshots them
// into an Index. This is the expensive step: dnf reads repository metadata
// for the whole universe, which can take seconds on a cold cache.
func (e *CLI) Open(ctx context.Context) (Handle, error) {
	if !e.Available() {
		return nil, fmt.Errorf("%s: not found in PATH", e.dnf)
	}

	start := time.Now()
	e.log.Debug("loading package universe", "dnf", e.dnf)

	installed, err := e.repoquery(ctx, "--installed")
	if err != nil {
		return nil, fmt.Errorf("load installed packages: %w", err)
	}
	available, err := e.repoquery(ctx, "--available")
	if err != nil {
		return nil, fmt.Errorf("load available packages: %w", err)
	}

	ix := NewIndex(installed, available)
	e.log.Info("package universe loaded",
		"installed", len(installed),
		"available", len(available),
		"elapsed", time.Since(start))

	return &cliHandle{eng: e, ix: ix}, nil
}

func (e *CLI) repoquery(ctx context.Context, selector string) ([]Package, error) {
	out, err := output(ctx, e.dnf, "repoquery", selector, "--queryformat", queryFormat)
	if err != nil {
		return nil, err
	}
	return parseRepoquery(out, selector == "--installed"), nil
}

// parseRepoquery splits repoquery output produced with queryFormat into
// packages. Malformed records are skipped rather than failing the load.
func parseRepoquery(out []byte, installed bool) []Package {
	var pkgs []Package
	for _, record := range strings.Split(string(out), recordSep) {
		if strings.TrimSpace(record) == "" {
			continue
		}
		fields := strings.Split(record, fieldSep)
		if len(fields) != 8 {
			continue
		}
		p := Package{
			Name:        strings.TrimSpace(fields[0]),
			Epoch:       normalizeEpoch(fields[1]),
			Version:     strings.TrimSpace(fields[2]),
			Release:     strings.TrimSpace(fields[3]),
			Arch:        strings.TrimSpace(fields[4]),
			Repo:        strings.TrimSpace(fields[5]),
			Summary:     strings.TrimSpace(fields[6]),
			Description: strings.TrimSpace(fields[7]),
			Installed:   installed,
		}
		if p.Name == "" || p.Version == "" {
			continue
		}
		pkgs = append(pkgs, p)
	}
	return pkgs
}

// rpm prints a literal "0" (or "(none)" in some versions) for packages
// without an epoch; treat all of those as empty.
func normalizeEpoch(s string) string {
	s = strings.TrimSpace(s)
	if s == "0" || s == "(none)" {
		return ""
	}
	return s
}

// cliHandle serves reads from the snapshot and mutations through dnf.
type cliHandle struct {
	eng *CLI
	ix  *Index
}

var _ Handle = (*cliHandle)(nil)

func (h *cliHandle) ListInstalled(ctx context.Context) ([]Package, error) {
	return h.ix.Installed(), nil
}

func (h *cliHandle) Search(ctx context.Context, q Query) ([]Package, error) {
	return h.ix.Search(q), nil
}

func (h *cliHandle) Describe(ctx context.Context, nevra string) (Package, error) {
	p, ok := h.ix.Get(nevra)
	if !ok {
		return Package{}, fmt.Errorf("describe %s: %w", nevra, ErrNotFound)
	}
	return p, nil
}

func (h *cliHandle) Files(ctx context.Context, nevra string) ([]string, error) {
	p, ok := h.ix.Get(nevra)
	if !ok {
		return nil, fmt.Errorf("files %s: %w", nevra, ErrNotFound)
	}
	if !p.Installed {
		return nil, fmt.Errorf("files %s: %w", nevra, ErrNotInstalled)
	}
	out, err := output(ctx, h.eng.rpm, "-ql", rpmName(p))
	if err != nil {
		return nil, fmt.Errorf("list files for %s: %w", nevra, err)
	}
	var files []string
	for _, line := range splitLines(out) {
		if line == "(contains no files)" {
			continue
		}
		files = append(files, line)
	}
	return files, nil
}

func (h *cliHandle) Dependencies(ctx context.Context, nevra string) (Dependencies, error) {
	p, ok := h.ix.Get(nevra)
	if !ok {
		return Dependencies{}, fmt.Errorf("dependencies %s: %w", nevra, ErrNotFound)
	}

	spec := p.NEVRA()
	var deps Dependencies
	for _, rel := range []struct {
		flag string
		dst  *[]string
	}{
		{"--requires", &deps.Requires},
		{"--provides", &deps.Provides},
		{"--conflicts", &deps.Conflicts},
		{"--obsoletes", &deps.Obsoletes},
	} {
		out, err := output(ctx, h.eng.dnf, "repoquery", rel.flag, spec)
		if err != nil {
			return Dependencies{}, fmt.Errorf("dependencies %s %s: %w", nevra, rel.flag, err)
		}
		*rel.dst = splitLines(out)
	}
	return deps, nil
}

func (h *cliHandle) Changelog(ctx context.Context, nevra string) ([]ChangeEntry, error) {
	p, ok := h.ix.Get(nevra)
	if !ok {
		return nil, fmt.Errorf("changelog %s: %w", nevra, ErrNotFound)
	}

	var out []byte
	var err error
	if p.Installed {
		out, err = output(ctx, h.eng.rpm, "-q", "--changelog", rpmName(p))
	} else {
		out, err = output(ctx, h.eng.dnf, "changelog", p.NEVRA())
	}
	if err != nil {
		return nil, fmt.Errorf("changelog %s: %w", nevra, err)
	}
	return ParseChangelog(out), nil
}

// Apply feeds a dnf shell script through stdin so installs and removes
// resolve and run as one transaction. Failures are classified from the
// command output into the package-level sentinel errors.
func (h *cliHandle) Apply(ctx context.Context, installs, removes []string) (TransactionResult, error) {
	if len(installs) == 0 && len(removes) == 0 {
		return TransactionResult{}, ErrNothingToDo
	}

	name, args := h.eng.applyCommand()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(transactionScript(installs, removes))

	h.eng.log.Info("running transaction", "installs", len(installs), "removes", len(removes))
	out, runErr := cmd.CombinedOutput()
	if err := classifyApply(string(out), runErr); err != nil {
		h.eng.log.Warn("transaction failed", "err", err)
		return TransactionResult{}, err
	}

	h.eng.log.Info("transaction complete", "installs", len(installs), "removes", len(removes))
	return TransactionResult{Installed: installs, Removed: removes}, nil
}

func (h *cliHandle) Close() error {
	return nil
}

// applyCommand wraps the transaction in sudo -n when not running as root.
// Non-interactive sudo is deliberate: a prompt cannot be answered from here,
// and CanApply has already verified credentials are cached.
func (e *CLI) applyCommand() (string, []string) {
	if os.Geteuid() == 0 {
		return e.dnf, []string{"shell", "--assumeyes"}
	}
	return "sudo", []string{"-n", e.dnf, "shell", "--assumeyes"}
}

func transactionScript(installs, removes []string) string {
	var b strings.Builder
	for _, nevra := range installs {
		b.WriteString("install ")
		b.WriteString(nevra)
		b.WriteByte('\n')
	}
	for _, nevra := range removes {
		b.WriteString("remove ")
		b.WriteString(nevra)
		b.WriteByte('\n')
	}
	b.WriteString("run\n")
	return b.String()
}

var unresolvedMarkers = []string{
	"no match for argument",
	"cannot resolve",
	"conflicting requests",
	"problem with installed package",
	"nothing provides",
	"cannot install both",
}

// classifyApply maps dnf output onto the sentinel errors. dnf reports an
// empty transaction with "Nothing to do" and exit code 0, so the text is
// checked before the exit status.
func classifyApply(out string, runErr error) error {
	lower := strings.ToLower(out)
	if strings.Contains(lower, "nothing to do") {
		return ErrNothingToDo
	}
	if runErr == nil {
		return nil
	}
	detail := tailLines(out, 4)
	for _, marker := range unresolvedMarkers {
		if strings.Contains(lower, marker) {
			return fmt.Errorf("%w: %s", ErrUnresolved, detail)
		}
	}
	if detail == "" {
		return fmt.Errorf("%w: %v", ErrTransactionFailed, runErr)
	}
	return fmt.Errorf("%w: %s", ErrTransactionFailed, detail)
}

// rpmName renders name-version-release.arch, the form rpm accepts for
// installed package queries regardless of epoch.
func rpmName(p Package) string {
	return p.Name + "-" + p.Version + "-" + p.Release + "." + p.Arch
}

func output(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s %s: %w: %s", name, args[0], err, tailLines(string(exitErr.Stderr), 2))
		}
		return nil, fmt.Errorf("%s %s: %w", name, args[0], err)
	}
	return out, nil
}

func splitLines(out []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// tailLines returns the last n non-empty lines of s joined by "; ", for
// compact error detail.
func tailLines(s string, n int) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "; ")
}
