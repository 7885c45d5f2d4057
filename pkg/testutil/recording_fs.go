package testutil

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/arthur-debert/webtc/pkg/types"
)

// FSCall is one recorded mutating filesystem call.
type FSCall struct {
	Op   string
	Path string
}

func (c FSCall) String() string { return fmt.Sprintf("%s %s", c.Op, c.Path) }

// RecordingFS wraps a types.FS and records every mutating call. Reads pass
// through unrecorded. Failures can be injected per operation and path.
type RecordingFS struct {
	types.FS

	mu    sync.Mutex
	calls []FSCall
	fail  map[FSCall]error
}

// NewRecordingFS wraps inner.
func NewRecordingFS(inner types.FS) *RecordingFS {
	return &RecordingFS{FS: inner, fail: make(map[FSCall]error)}
}

// FailOn makes op on path return err instead of reaching the inner FS.
func (r *RecordingFS) FailOn(op, path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[FSCall{Op: op, Path: path}] = err
}

// Calls returns a copy of the recorded calls.
func (r *RecordingFS) Calls() []FSCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]FSCall(nil), r.calls...)
}

// Reset forgets the recorded calls.
func (r *RecordingFS) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *RecordingFS) record(op, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	call := FSCall{Op: op, Path: path}
	r.calls = append(r.calls, call)
	return r.fail[call]
}

func (r *RecordingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := r.record("write", name); err != nil {
		return err
	}
	return r.FS.WriteFile(name, data, perm)
}

func (r *RecordingFS) WriteFileAtomic(name string, data []byte, perm fs.FileMode) error {
	if err := r.record("write", name); err != nil {
		return err
	}
	return r.FS.WriteFileAtomic(name, data, perm)
}

func (r *RecordingFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := r.record("mkdir", path); err != nil {
		return err
	}
	return r.FS.MkdirAll(path, perm)
}

func (r *RecordingFS) Remove(name string) error {
	if err := r.record("remove", name); err != nil {
		return err
	}
	return r.FS.Remove(name)
}

func (r *RecordingFS) RemoveAll(path string) error {
	if err := r.record("removeall", path); err != nil {
		return err
	}
	return r.FS.RemoveAll(path)
}
