package build

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/arthur-debert/webtc/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_AllApps(t *testing.T) {
	tc := &testutil.FakeToolchain{Root: "/src", AppNames: []string{"rpcexplorer", "logs"}}

	result, err := Build(context.Background(), Options{Toolchain: tc, BuildDir: "/out"})
	require.NoError(t, err)

	assert.Equal(t, &Result{BuildDir: "/out", Apps: []string{"logs", "rpcexplorer"}}, result)
	assert.Equal(t, []testutil.GulpCall{
		{Dir: "/src/web/apps/logs", Args: []string{"--out", "/out"}},
		{Dir: "/src/web/apps/rpcexplorer", Args: []string{"--out", "/out"}},
	}, tc.Calls)
}

func TestBuild_SelectedApps(t *testing.T) {
	tc := &testutil.FakeToolchain{Root: "/src", AppNames: []string{"rpcexplorer", "logs"}}

	result, err := Build(context.Background(), Options{Toolchain: tc, Apps: []string{"rpcexplorer"}, BuildDir: "/out"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rpcexplorer"}, result.Apps)
	require.Len(t, tc.Calls, 1)
	assert.Equal(t, "/src/web/apps/rpcexplorer", tc.Calls[0].Dir)
}

func TestBuild_RelativeBuildDir(t *testing.T) {
	tc := &testutil.FakeToolchain{Root: "/src", AppNames: []string{"logs"}}

	result, err := Build(context.Background(), Options{Toolchain: tc, BuildDir: "out"})
	require.NoError(t, err)

	want, err := filepath.Abs("out")
	require.NoError(t, err)
	assert.Equal(t, want, result.BuildDir)
	assert.Equal(t, []string{"--out", want}, tc.Calls[0].Args)
}

func TestBuild_InvalidAppBuildsNothing(t *testing.T) {
	tc := &testutil.FakeToolchain{Root: "/src", AppNames: []string{"logs"}}

	_, err := Build(context.Background(), Options{Toolchain: tc, Apps: []string{"logs", "nope"}, BuildDir: "/out"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidApp))
	assert.Empty(t, tc.Calls)
}

func TestBuild_StopsAtFirstFailure(t *testing.T) {
	tc := &testutil.FakeToolchain{
		Root:     "/src",
		AppNames: []string{"a", "b", "c"},
		Fail:     map[string]error{"/src/web/apps/b": &errors.ExitError{Command: "gulp", Code: 5}},
	}

	result, err := Build(context.Background(), Options{Toolchain: tc, BuildDir: "/out"})
	assert.Equal(t, 5, errors.ExitCode(err))
	assert.Equal(t, []string{"a"}, result.Apps)
	assert.Len(t, tc.Calls, 2)
}

func TestBuild_NoBuildDir(t *testing.T) {
	_, err := Build(context.Background(), Options{Toolchain: &testutil.FakeToolchain{}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
