package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/webtc/pkg/config"
	"github.com/arthur-debert/webtc/pkg/errors"
)

// Environment variable names
const (
	// EnvRoot overrides source root discovery
	EnvRoot = "WEBTC_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Paths provides the directories of one source checkout
type Paths interface {
	Root() string
	UsedFallback() bool
	WebDir() string
	AppsDir() string
	BuildDir() string
	Resolve(path string) string
	Rel(path string) (string, error)
}

type paths struct {
	root         string
	usedFallback bool

	web   string
	apps  string
	build string
}

// New creates a Paths for root. An empty root is discovered with FindRoot.
func New(root string, cfg config.Paths) (Paths, error) {
	usedFallback := false
	if root == "" {
		var err error
		root, usedFallback, err = FindRoot()
		if err != nil {
			return nil, err
		}
	}
	return FromRoot(root, usedFallback, cfg)
}

// FromRoot creates a Paths for a root found earlier with FindRoot.
func FromRoot(root string, usedFallback bool, cfg config.Paths) (Paths, error) {
	absRoot, err := filepath.Abs(expandHome(root))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for source root")
	}

	p := &paths{root: absRoot, usedFallback: usedFallback}
	p.web = p.Resolve(cfg.Web)
	p.apps = p.Resolve(cfg.Apps)
	p.build = p.Resolve(cfg.Build)
	if cfg.Build == "" {
		p.build = p.web
	}

	return p, nil
}

// FindRoot determines the source root:
// 1. WEBTC_ROOT environment variable (if set)
// 2. Git repository root
// 3. Current working directory (fallback)
//
// The bool result reports whether the fallback was used.
func FindRoot() (string, bool, error) {
	if root := os.Getenv(EnvRoot); root != "" {
		return expandHome(root), false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	if gitRoot, err := findGitRoot(cwd); err == nil {
		return gitRoot, false, nil
	}

	return cwd, true, nil
}

// findGitRoot returns the top level of the git work tree containing dir
func findGitRoot(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		// Not in a git repo or git not installed
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// expandHome expands a leading ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is left alone
	return path
}

func (p *paths) Root() string { return p.root }

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool { return p.usedFallback }

func (p *paths) WebDir() string   { return p.web }
func (p *paths) AppsDir() string  { return p.apps }
func (p *paths) BuildDir() string { return p.build }

// Resolve makes path absolute against the source root. Absolute paths and
// ~-prefixed paths are returned cleaned.
func (p *paths) Resolve(path string) string {
	path = expandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.root, path)
}

// Rel returns path relative to the source root, slash separated. Paths
// outside the root are an error.
func (p *paths) Rel(path string) (string, error) {
	rel, err := filepath.Rel(p.root, p.Resolve(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot relate %s to %s", path, p.root)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidInput, "%s is outside the source root %s", path, p.root).
			WithDetail("path", path)
	}
	return filepath.ToSlash(rel), nil
}
