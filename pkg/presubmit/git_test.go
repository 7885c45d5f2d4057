package presubmit

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/arthur-debert/webtc/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/common/a.go b/common/a.go
index 1111111..2222222 100644
--- a/common/a.go
+++ b/common/a.go
@@ -3 +3 @@ package a
-old
+new 
@@ -10,0 +11,2 @@ func f() {
+x
+y
@@ -20,2 +21,0 @@ func g() {
-gone
-gone
diff --git a/web/new.js b/web/new.js
new file mode 100644
--- /dev/null
+++ b/web/new.js
@@ -0,0 +1,3 @@
+a
+b
+c
diff --git a/only-deleted-lines.go b/only-deleted-lines.go
--- a/only-deleted-lines.go
+++ b/only-deleted-lines.go
@@ -1 +0,0 @@
-bye
`

func TestParseUnifiedDiff(t *testing.T) {
	changed := parseUnifiedDiff([]byte(sampleDiff))

	assert.Equal(t, map[string]map[int]bool{
		"common/a.go":           {3: true, 11: true, 12: true},
		"web/new.js":            {1: true, 2: true, 3: true},
		"only-deleted-lines.go": {},
	}, changed)
}

func TestParseUnifiedDiff_LongLine(t *testing.T) {
	diff := "--- a/a.js\n+++ b/a.js\n@@ -1 +1 @@\n-x\n+" + strings.Repeat("m", 2<<20) + "\n" +
		"--- a/b.go\n+++ b/b.go\n@@ -1,0 +2,2 @@\n+p \n+q\n"

	changed := parseUnifiedDiff([]byte(diff))

	assert.Equal(t, map[int]bool{1: true}, changed["a.js"])
	assert.Equal(t, map[int]bool{2: true, 3: true}, changed["b.go"])
}

func TestParseUnifiedDiff_HeaderLikeContent(t *testing.T) {
	diff := `diff --git a/a.go b/a.go
--- a/a.go
+++ b/a.go
@@ -1,0 +2 @@
+++ x
@@ -3 +4,0 @@
--- y
@@ -5,0 +7 @@
+y 
diff --git a/c.go b/c.go
--- a/c.go
+++ b/c.go
@@ -1 +1 @@
-old
\ No newline at end of file
+new
\ No newline at end of file
`

	changed := parseUnifiedDiff([]byte(diff))

	assert.Equal(t, map[string]map[int]bool{
		"a.go": {2: true, 7: true},
		"c.go": {1: true},
	}, changed)
}

func TestParseUnifiedDiff_NoTrailingNewline(t *testing.T) {
	changed := parseUnifiedDiff([]byte("--- a/a.go\n+++ b/a.go\n@@ -0,0 +1 @@\n+a"))
	assert.Equal(t, map[int]bool{1: true}, changed["a.go"])
}

func TestParseHunkHeader(t *testing.T) {
	tests := []struct {
		line         string
		start, count int
		ok           bool
	}{
		{"@@ -3 +3 @@", 3, 1, true},
		{"@@ -10,0 +11,2 @@ func f() {", 11, 2, true},
		{"@@ -1 +0,0 @@", 0, 0, true},
		{"@@ garbage", 0, 0, false},
		{"@@ -1 +x,2 @@", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			start, count, ok := parseHunkHeader(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.count, count)
		})
	}
}

func TestChangedFiles_Recorder(t *testing.T) {
	rec := &runner.Recorder{Outputs: map[string]string{
		"git diff --name-only --diff-filter=d origin/main": "common/a.go\n\nweb/new.js\n",
	}}

	files, err := ChangedFiles(context.Background(), rec, "/src", "origin/main")
	require.NoError(t, err)
	assert.Equal(t, []string{"common/a.go", "web/new.js"}, files)
	assert.Equal(t, "/src", rec.Commands[0].Dir)
}

func TestChangedFiles_GitFailure(t *testing.T) {
	rec := &runner.Recorder{Script: []error{&errors.ExitError{Command: "git diff", Code: 128}}}

	_, err := ChangedFiles(context.Background(), rec, "/src", "HEAD")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPresubmitFailed))
	assert.Equal(t, 128, errors.ExitCode(err))
}

func TestChangedLines_Git(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	t.Setenv("GIT_AUTHOR_NAME", "webtc")
	t.Setenv("GIT_AUTHOR_EMAIL", "webtc@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "webtc")
	t.Setenv("GIT_COMMITTER_EMAIL", "webtc@example.com")
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")

	repo := t.TempDir()
	git := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = repo
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}

	write := func(name, content string) {
		t.Helper()
		path := filepath.Join(repo, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	git("init", "-q")
	write("a.go", "one\ntwo\nthree\n")
	write("gone.go", "bye\n")
	git("add", ".")
	git("commit", "-q", "-m", "initial")

	write("a.go", "one\nTWO \nthree\nfour\n")
	write("web/b.js", "new\n")
	require.NoError(t, os.Remove(filepath.Join(repo, "gone.go")))
	git("add", "-A")

	r := runner.NewExec(&bytes.Buffer{})
	files, err := ChangedFiles(context.Background(), r, repo, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "web/b.js"}, files)

	changed, err := ChangedLines(context.Background(), r, repo, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{2: true, 4: true}, changed["a.go"])
	assert.Equal(t, map[int]bool{1: true}, changed["web/b.js"])
	assert.NotContains(t, changed, "gone.go")
}
