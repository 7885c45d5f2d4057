package filesystem

import (
	"bytes"
	"io/fs"
	"os"

	"github.com/arthur-debert/webtc/pkg/types"
	"github.com/natefinch/atomic"
)

// osFS implements types.FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (o *osFS) WriteFileAtomic(name string, data []byte, perm fs.FileMode) error {
	_, statErr := os.Stat(name)
	if err := atomic.WriteFile(name, bytes.NewReader(data)); err != nil {
		return err
	}
	// atomic keeps the mode of a replaced file; fresh files start at 0600.
	if os.IsNotExist(statErr) {
		return os.Chmod(name, perm)
	}
	return nil
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *osFS) Remove(name string) error {
	return os.Remove(name)
}

func (o *osFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
