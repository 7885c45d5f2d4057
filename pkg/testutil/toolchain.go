package testutil

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/webtc/pkg/errors"
)

// GulpCall is one recorded FakeToolchain.Gulp invocation.
type GulpCall struct {
	Dir  string
	Args []string
}

// FakeToolchain implements types.WebToolchain over a fixed app list.
type FakeToolchain struct {
	Root     string
	AppNames []string
	Calls    []GulpCall
	// Fail maps an app directory to the error its gulp run returns.
	Fail map[string]error
}

func (f *FakeToolchain) AppsDir() string { return filepath.Join(f.Root, "web", "apps") }

func (f *FakeToolchain) Apps() ([]string, error) {
	apps := append([]string(nil), f.AppNames...)
	sort.Strings(apps)
	return apps, nil
}

func (f *FakeToolchain) AppDir(app string) (string, error) {
	for _, name := range f.AppNames {
		if name == app {
			return filepath.Join(f.AppsDir(), app), nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidApp, "[%s] is not a valid application", app)
}

func (f *FakeToolchain) Gulp(ctx context.Context, dir string, args ...string) error {
	f.Calls = append(f.Calls, GulpCall{Dir: dir, Args: args})
	return f.Fail[dir]
}
