// Package presubmit implements the source policy checks run before a change
// is uploaded or committed.
//
// Three checks operate on the files a change touches:
//
//   - stray whitespace: changed lines must not end in whitespace
//   - license: every non-empty source file must carry the license header
//   - do-not-submit: the do-not-submit marker blocks commits
//
// Findings are errors when committing and warnings when uploading. The
// license header is described by a template whose first line may contain
// YEARPATTERN; HeaderPattern turns it into the regular expression searched
// for in each file.
package presubmit
