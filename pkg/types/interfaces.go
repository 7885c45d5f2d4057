package types

import (
	"context"
	"io/fs"
)

// FS is the filesystem interface required for webtc operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// WriteFileAtomic replaces name with data so that readers observe either
	// the old content or the new content, never a partial write.
	WriteFileAtomic(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Removal
	Remove(name string) error
	RemoveAll(path string) error
}

// WebToolchain is the part of an initialized toolchain the web commands drive.
type WebToolchain interface {
	AppsDir() string
	Apps() ([]string, error)
	AppDir(app string) (string, error)
	Gulp(ctx context.Context, dir string, args ...string) error
}
