package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore implements the Store interface using local disk.
// It is the default when no S3 configuration is provided.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a new LocalStore rooted at dir.
// If dir is empty, a directory under os.TempDir() is used.
// The directory is created if it doesn't exist.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "adgen")
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}

	return &LocalStore{dir: dir}, nil
}

// Dir returns the artifact directory path.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put writes data to a file under the artifact directory and returns a
// file:// URI. Key path separators become subdirectories.
func (s *LocalStore) Put(ctx context.Context, key, _ string, data io.Reader) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("create artifact subdirectory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 - path is derived from a generated key
	if err != nil {
		return "", fmt.Errorf("create artifact file: %w", err)
	}

	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write artifact file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close artifact file: %w", err)
	}

	return "file://" + path, nil
}

// Compile-time check that LocalStore implements Store.
var _ Store = (*LocalStore)(nil)
