package storage

import (
	"context"
	"errors"
	"os"
	"time"
)

// ErrFileNotFound is returned by Get when nothing exists at the path
var ErrFileNotFound = errors.New("file not found")

// Driver defines the file operations the generators need
type Driver interface {
	// Basic file operations
	Put(ctx context.Context, path string, contents []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)

	// Directory operations
	Files(ctx context.Context, directory string) ([]FileInfo, error)
	MakeDirectory(ctx context.Context, path string) error
	IsDirectory(ctx context.Context, path string) (bool, error)

	// Path resolution
	Path(path string) string
}

// Config holds storage driver configuration
type Config struct {
	RootPath    string      `json:"root_path"`
	Permissions Permissions `json:"permissions"`
}

// Permissions for created files and directories
type Permissions struct {
	FileMode os.FileMode `json:"file_mode"`
	DirMode  os.FileMode `json:"dir_mode"`
}

// FileInfo contains information about a file
type FileInfo struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// DefaultConfig roots the driver at the working directory
func DefaultConfig() Config {
	return Config{
		RootPath:    ".",
		Permissions: DefaultPermissions(),
	}
}

// DefaultPermissions mirror what Laravel's filesystem uses for generated files
func DefaultPermissions() Permissions {
	return Permissions{
		FileMode: 0644,
		DirMode:  0755,
	}
}
