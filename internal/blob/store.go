package blob

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store keeps capture images out of the database; rows carry only the
// returned reference.
type Store interface {
	Put(captureID uuid.UUID, data []byte) (string, error)
	Get(ref string) ([]byte, error)
}

type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Put(captureID uuid.UUID, data []byte) (string, error) {
	ref := fmt.Sprintf("%s.png", captureID)
	if err := os.WriteFile(filepath.Join(s.dir, ref), data, 0o640); err != nil {
		return "", err
	}
	return ref, nil
}

func (s *FileStore) Get(ref string) ([]byte, error) {
	clean := filepath.Base(ref)
	return os.ReadFile(filepath.Join(s.dir, clean))
}
