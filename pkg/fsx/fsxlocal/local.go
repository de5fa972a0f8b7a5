// Package fsxlocal implements fsx interfaces on local disk, rooted at a
// base directory.
package fsxlocal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/WunderSocial/wunder-id/pkg/fsx"
)

// LocalFileSystem implements fsx.FileSystem using local disk.
type LocalFileSystem struct {
	basePath string
}

// NewLocalFileSystem creates a file system rooted at basePath, creating
// the directory when missing.
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return &LocalFileSystem{basePath: abs}, nil
}

// GetBasePath returns the resolved root directory.
func (fs *LocalFileSystem) GetBasePath() string { return fs.basePath }

func (fs *LocalFileSystem) fullPath(path string) string {
	return filepath.Join(fs.basePath, filepath.Clean("/"+path))
}

// ReadFile reads a file relative to the base path.
func (fs *LocalFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(fs.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Stat returns file metadata.
func (fs *LocalFileSystem) Stat(ctx context.Context, path string) (fsx.FileInfo, error) {
	info, err := os.Stat(fs.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return fsx.FileInfo{}, fmt.Errorf("file not found: %s", path)
		}
		return fsx.FileInfo{}, fmt.Errorf("failed to stat file: %w", err)
	}
	return fsx.FileInfo{
		Name:     info.Name(),
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Metadata: make(map[string]string),
	}, nil
}

// Exists reports whether a file exists.
func (fs *LocalFileSystem) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(fs.fullPath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check file: %w", err)
}

// WriteFile writes data, creating parent directories as needed.
func (fs *LocalFileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	full := fs.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// DeleteFile removes a file.
func (fs *LocalFileSystem) DeleteFile(ctx context.Context, path string) error {
	if err := os.Remove(fs.fullPath(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
