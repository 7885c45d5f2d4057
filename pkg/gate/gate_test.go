// pkg/gate/gate_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test install gate decisions, purge order and marker bookkeeping

package gate_test

import (
	"context"
	stderrors "errors"
	"os"
	"testing"

	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/arthur-debert/webtc/pkg/gate"
	"github.com/arthur-debert/webtc/pkg/testutil"
	"github.com/arthur-debert/webtc/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	specPath   = "/web/package.json"
	markerPath = "/web/.npm.installed"
	outDir     = "/web/node_modules"
	outFile    = "/web/npm-shrinkwrap.cache"
)

func npmSpec() gate.Spec {
	return gate.Spec{
		Name:        "npm",
		MarkerPath:  markerPath,
		SpecPath:    specPath,
		OutputPaths: []string{outDir, outFile},
	}
}

// counter is an Action that counts invocations and can be told to fail.
type counter struct {
	calls int
	err   error
	hook  func()
}

func (c *counter) run(ctx context.Context) error {
	c.calls++
	if c.hook != nil {
		c.hook()
	}
	return c.err
}

func setup(t *testing.T, spec string) (*testutil.RecordingFS, *gate.Gate) {
	t.Helper()

	mem := testutil.NewTestFS()
	require.NoError(t, mem.MkdirAll("/web", 0755))
	require.NoError(t, mem.WriteFile(specPath, []byte(spec), 0644))

	rfs := testutil.NewRecordingFS(mem)
	return rfs, gate.New(rfs)
}

func populate(t *testing.T, fs types.FS) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(outDir+"/gulp/bin", 0755))
	require.NoError(t, fs.WriteFile(outDir+"/gulp/bin/gulp.js", []byte("stale"), 0644))
	require.NoError(t, fs.WriteFile(outFile, []byte("stale"), 0644))
}

func readString(t *testing.T, fs types.FS, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func assertMissing(t *testing.T, fs types.FS, path string) {
	t.Helper()
	_, err := fs.Stat(path)
	assert.True(t, os.IsNotExist(err), "expected %s to be absent, got err=%v", path, err)
}

func TestEnsureInstalled_EndToEnd(t *testing.T) {
	rfs, g := setup(t, `{"x":1}`)
	populate(t, rfs)
	action := &counter{}

	outcome, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.NoError(t, err)
	assert.Equal(t, gate.OutcomeInstalled, outcome)
	assert.Equal(t, 1, action.calls)
	assertMissing(t, rfs, outDir)
	assert.Equal(t, `{"x":1}`, readString(t, rfs, markerPath))

	// Second call: nothing is touched and the action does not run.
	rfs.Reset()
	outcome, err = g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.NoError(t, err)
	assert.Equal(t, gate.OutcomeUpToDate, outcome)
	assert.Equal(t, 1, action.calls)
	assert.Empty(t, rfs.Calls())
}

func TestEnsureInstalled_ChangeTriggersReinstall(t *testing.T) {
	rfs, g := setup(t, `{"x":1}`)
	action := &counter{}

	_, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.NoError(t, err)
	require.Equal(t, 1, action.calls)

	// One byte differs: reordering or whitespace counts as a change.
	require.NoError(t, rfs.WriteFile(specPath, []byte(`{"x":1} `), 0644))
	populate(t, rfs)
	rfs.Reset()

	outcome, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.NoError(t, err)
	assert.Equal(t, gate.OutcomeInstalled, outcome)
	assert.Equal(t, 2, action.calls)
	assertMissing(t, rfs, outDir)
	assertMissing(t, rfs, outFile)
	assert.Equal(t, `{"x":1} `, readString(t, rfs, markerPath))
}

func TestEnsureInstalled_ForceOverridesCache(t *testing.T) {
	rfs, g := setup(t, `{"x":1}`)
	action := &counter{}

	for i := 1; i <= 3; i++ {
		outcome, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, true)
		require.NoError(t, err)
		assert.Equal(t, gate.OutcomeInstalled, outcome)
		assert.Equal(t, i, action.calls)
	}
	assert.Equal(t, `{"x":1}`, readString(t, rfs, markerPath))
}

func TestEnsureInstalled_FailureLeavesNoMarker(t *testing.T) {
	rfs, g := setup(t, `{"x":1}`)
	action := &counter{}

	// A successful install first, so there is a marker to lose.
	_, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.NoError(t, err)
	require.NoError(t, rfs.WriteFile(specPath, []byte(`{"x":2}`), 0644))

	installErr := &errors.ExitError{Command: "npm install", Code: 3}
	action.err = installErr

	_, err = g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.Error(t, err)
	assert.Same(t, installErr, err, "action errors are returned unchanged")
	assert.Equal(t, 3, errors.ExitCode(err))
	assertMissing(t, rfs, markerPath)

	// A retry without force runs the action again.
	action.err = nil
	outcome, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.NoError(t, err)
	assert.Equal(t, gate.OutcomeInstalled, outcome)
	assert.Equal(t, 3, action.calls)
	assert.Equal(t, `{"x":2}`, readString(t, rfs, markerPath))
}

func TestEnsureInstalled_MarkerContentExactness(t *testing.T) {
	content := "{\n  \"dependencies\": {\"gulp\": \"^4.0.0\"}\r\n}\n\x00\xff"
	rfs, g := setup(t, content)
	action := &counter{}

	_, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.NoError(t, err)
	assert.Equal(t, content, readString(t, rfs, markerPath))
}

func TestEnsureInstalled_SnapshotTakenBeforeAction(t *testing.T) {
	rfs, g := setup(t, `{"x":1}`)
	action := &counter{hook: func() {
		// An installer that rewrites its own manifest must not change what
		// the marker records for this run.
		_ = rfs.WriteFile(specPath, []byte(`{"x":1,"lock":true}`), 0644)
	}}

	_, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, readString(t, rfs, markerPath))
}

func TestEnsureInstalled_CleanupOrder(t *testing.T) {
	rfs, g := setup(t, `{"x":1}`)
	action := &counter{}
	_, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.NoError(t, err)

	populate(t, rfs)
	rfs.Reset()

	var callsAtAction []testutil.FSCall
	action.hook = func() { callsAtAction = rfs.Calls() }

	_, err = g.EnsureInstalled(context.Background(), npmSpec(), action.run, true)
	require.NoError(t, err)

	assert.Equal(t, []testutil.FSCall{
		{Op: "removeall", Path: outDir},
		{Op: "remove", Path: outFile},
		{Op: "remove", Path: markerPath},
	}, callsAtAction)
	assert.Equal(t, testutil.FSCall{Op: "write", Path: markerPath}, rfs.Calls()[len(rfs.Calls())-1])
}

func TestEnsureInstalled_AbsentOutputsAreSkipped(t *testing.T) {
	rfs, g := setup(t, `{"x":1}`)
	action := &counter{}

	_, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.NoError(t, err)

	// Only the marker write; nothing existed to purge.
	assert.Equal(t, []testutil.FSCall{{Op: "write", Path: markerPath}}, rfs.Calls())
}

func TestEnsureInstalled_MissingSpecIsFatal(t *testing.T) {
	mem := testutil.NewTestFS()
	rfs := testutil.NewRecordingFS(mem)
	g := gate.New(rfs)
	action := &counter{}

	_, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, true)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSpecRead))
	assert.Zero(t, action.calls)
	assert.Empty(t, rfs.Calls())
}

func TestEnsureInstalled_CleanupFailureAbortsBeforeAction(t *testing.T) {
	rfs, g := setup(t, `{"x":1}`)
	populate(t, rfs)
	rfs.FailOn("remove", outFile, stderrors.New("text file busy"))
	action := &counter{}

	_, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCleanup))
	assert.Equal(t, outFile, errors.GetErrorDetails(err)["path"])
	assert.Contains(t, err.Error(), outFile)
	assert.Zero(t, action.calls)
}

func TestEnsureInstalled_MarkerWriteFailure(t *testing.T) {
	rfs, g := setup(t, `{"x":1}`)
	rfs.FailOn("write", markerPath, stderrors.New("disk full"))
	action := &counter{}

	outcome, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMarkerWrite))
	assert.Equal(t, gate.OutcomeInstalled, outcome)
	assert.Equal(t, 1, action.calls)
	assertMissing(t, rfs, markerPath)
}

func TestEnsureInstalled_MarkerDirectoryIsStale(t *testing.T) {
	rfs, g := setup(t, `{"x":1}`)
	require.NoError(t, rfs.MkdirAll(markerPath, 0755))
	action := &counter{}

	outcome, err := g.EnsureInstalled(context.Background(), npmSpec(), action.run, false)
	require.NoError(t, err)
	assert.Equal(t, gate.OutcomeInstalled, outcome)
	assert.Equal(t, `{"x":1}`, readString(t, rfs, markerPath))
}

func TestEnsureInstalled_ContextReachesAction(t *testing.T) {
	_, g := setup(t, `{"x":1}`)

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "value")

	var got interface{}
	_, err := g.EnsureInstalled(ctx, npmSpec(), func(ctx context.Context) error {
		got = ctx.Value(key{})
		return nil
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestCheck(t *testing.T) {
	rfs, g := setup(t, `{"x":1}`)

	state, err := g.Check(npmSpec())
	require.NoError(t, err)
	assert.Equal(t, gate.StateMissing, state)

	_, err = g.EnsureInstalled(context.Background(), npmSpec(), (&counter{}).run, false)
	require.NoError(t, err)

	state, err = g.Check(npmSpec())
	require.NoError(t, err)
	assert.Equal(t, gate.StateCurrent, state)

	require.NoError(t, rfs.WriteFile(specPath, []byte(`{"x":2}`), 0644))
	rfs.Reset()

	state, err = g.Check(npmSpec())
	require.NoError(t, err)
	assert.Equal(t, gate.StateStale, state)
	assert.Empty(t, rfs.Calls())

	require.NoError(t, rfs.Remove(specPath))
	_, err = g.Check(npmSpec())
	assert.True(t, errors.IsErrorCode(err, errors.ErrSpecRead))
}

func TestEnsureInstalledFunc(t *testing.T) {
	rfs, _ := setup(t, `{"x":1}`)
	action := &counter{}

	for i := 0; i < 2; i++ {
		err := gate.EnsureInstalled(context.Background(), rfs, action.run, markerPath, specPath, []string{outDir}, false)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, action.calls)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "installed", gate.OutcomeInstalled.String())
	assert.Equal(t, "up-to-date", gate.OutcomeUpToDate.String())
	assert.Equal(t, "missing", gate.StateMissing.String())
	assert.Equal(t, "stale", gate.StateStale.String())
	assert.Equal(t, "current", gate.StateCurrent.String())
}
