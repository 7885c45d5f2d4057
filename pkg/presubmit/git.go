package presubmit

import (
	"bufio"
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/arthur-debert/webtc/pkg/errors"
	"github.com/arthur-debert/webtc/pkg/runner"
)

// ChangedFiles lists the files changed against base, skipping deletions.
func ChangedFiles(ctx context.Context, r runner.Runner, root, base string) ([]string, error) {
	out, err := r.Output(ctx, runner.Command{
		Name: "git",
		Args: []string{"diff", "--name-only", "--diff-filter=d", base},
		Dir:  root,
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPresubmitFailed, "failed to list files changed against %s", base)
	}

	var files []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// ChangedLines maps each file changed against base to the line numbers its
// new version adds or modifies.
func ChangedLines(ctx context.Context, r runner.Runner, root, base string) (map[string]map[int]bool, error) {
	out, err := r.Output(ctx, runner.Command{
		Name: "git",
		Args: []string{"diff", "-U0", "--no-color", "--no-ext-diff", "--diff-filter=d", base},
		Dir:  root,
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPresubmitFailed, "failed to diff against %s", base)
	}
	return parseUnifiedDiff(out), nil
}

// parseUnifiedDiff reads the added line ranges of a zero-context diff.
// Hunk bodies are consumed by their header counts, so content lines that
// look like file headers are never mistaken for one.
func parseUnifiedDiff(diff []byte) map[string]map[int]bool {
	changed := make(map[string]map[int]bool)

	var current string
	// Lines still owed to the current hunk, per side.
	var oldLeft, newLeft int
	reader := bufio.NewReader(bytes.NewReader(diff))
	for {
		line, err := reader.ReadString('\n')
		if line == "" && err != nil {
			break
		}
		line = strings.TrimSuffix(line, "\n")

		if oldLeft > 0 || newLeft > 0 {
			switch {
			case strings.HasPrefix(line, "+"):
				newLeft--
			case strings.HasPrefix(line, "-"):
				oldLeft--
			case strings.HasPrefix(line, " "):
				oldLeft--
				newLeft--
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "+++ "):
			current = ""
			if name := strings.TrimPrefix(line, "+++ "); strings.HasPrefix(name, "b/") {
				current = strings.TrimPrefix(name, "b/")
				if changed[current] == nil {
					changed[current] = make(map[int]bool)
				}
			}
		case strings.HasPrefix(line, "@@ "):
			fields := strings.Fields(line)
			if len(fields) < 3 {
				continue
			}
			_, oldCount, ok := parseRange(fields[1], "-")
			if !ok {
				continue
			}
			start, count, ok := parseRange(fields[2], "+")
			if !ok {
				continue
			}
			oldLeft, newLeft = oldCount, count
			if current == "" {
				continue
			}
			for n := start; n < start+count; n++ {
				changed[current][n] = true
			}
		}
	}
	return changed
}

// parseHunkHeader returns the new-file range of "@@ -a,b +c,d @@".
func parseHunkHeader(line string) (start, count int, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, 0, false
	}
	return parseRange(fields[2], "+")
}

// parseRange parses one side of a hunk header, "+c,d" or "+c".
func parseRange(field, sign string) (start, count int, ok bool) {
	if !strings.HasPrefix(field, sign) {
		return 0, 0, false
	}
	spec := strings.TrimPrefix(field, sign)
	count = 1
	if i := strings.IndexByte(spec, ','); i >= 0 {
		c, err := strconv.Atoi(spec[i+1:])
		if err != nil {
			return 0, 0, false
		}
		count = c
		spec = spec[:i]
	}
	start, err := strconv.Atoi(spec)
	if err != nil {
		return 0, 0, false
	}
	return start, count, true
}
