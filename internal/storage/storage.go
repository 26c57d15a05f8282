package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage persists payment proof files. Callers only ever hold the opaque
// key a Save returns.
type Storage interface {
	Save(reader io.Reader, originalName string) (string, error)
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
}

type localStorage struct {
	dir string
}

// NewLocalStorage stores files under dir, creating it if needed.
func NewLocalStorage(dir string) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localStorage{dir: dir}, nil
}

func (s *localStorage) Save(reader io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	key := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("create proof file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write proof file: %w", err)
	}
	return key, nil
}

func (s *localStorage) Open(key string) (io.ReadCloser, error) {
	// Keys are uuid-generated; reject anything trying to escape the dir.
	if key != filepath.Base(key) {
		return nil, fmt.Errorf("invalid file key")
	}
	return os.Open(filepath.Join(s.dir, key))
}

func (s *localStorage) Delete(key string) error {
	if key != filepath.Base(key) {
		return fmt.Errorf("invalid file key")
	}
	return os.Remove(filepath.Join(s.dir, key))
}
