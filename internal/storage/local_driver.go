package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LocalDriver implements the Driver interface on the local filesystem,
// relative to a project root
type LocalDriver struct {
	rootPath    string
	permissions Permissions
}

// NewLocalDriver creates a new local storage driver
func NewLocalDriver(config Config) (*LocalDriver, error) {
	rootPath := config.RootPath
	if rootPath == "" {
		rootPath = "."
	}

	permissions := config.Permissions
	if permissions.FileMode == 0 {
		permissions.FileMode = DefaultPermissions().FileMode
	}
	if permissions.DirMode == 0 {
		permissions.DirMode = DefaultPermissions().DirMode
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("project root not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", rootPath)
	}

	return &LocalDriver{
		rootPath:    rootPath,
		permissions: permissions,
	}, nil
}

// Put stores content at the specified path, creating parent directories
func (ld *LocalDriver) Put(ctx context.Context, path string, contents []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	fullPath := ld.Path(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), ld.permissions.DirMode); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(fullPath, contents, ld.permissions.FileMode); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Get retrieves content from the specified path
func (ld *LocalDriver) Get(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	content, err := os.ReadFile(ld.Path(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return content, nil
}

// Exists checks if a file exists at the specified path
func (ld *LocalDriver) Exists(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	_, err := os.Stat(ld.Path(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// Files returns the files directly inside a directory, sorted by name.
// A missing directory has no files.
func (ld *LocalDriver) Files(ctx context.Context, directory string) ([]FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := os.ReadDir(ld.Path(directory))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(directory, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// MakeDirectory creates a directory and any missing parents
func (ld *LocalDriver) MakeDirectory(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return os.MkdirAll(ld.Path(path), ld.permissions.DirMode)
}

// IsDirectory reports whether path is an existing directory
func (ld *LocalDriver) IsDirectory(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	info, err := os.Stat(ld.Path(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// Path returns the filesystem path for a project-relative path
func (ld *LocalDriver) Path(path string) string {
	return filepath.Join(ld.rootPath, filepath.Clean(path))
}

var _ Driver = (*LocalDriver)(nil)
