// Package preview keeps transient on-disk copies of staged images so they can
// be opened in an external viewer while a session is active.
package preview

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Veraticus/ecosort/internal/model"
	"github.com/Veraticus/ecosort/internal/session"
	"github.com/google/uuid"
)

// Manager creates preview files under a base directory.
type Manager struct {
	baseDir string
}

// NewManager creates a preview manager. An empty baseDir uses the OS temp dir.
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = filepath.Join(os.TempDir(), "ecosort")
	}
	return &Manager{baseDir: baseDir}
}

// BaseDir returns the directory preview files are written to.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// File is a preview copy of an image. Close removes it; closing twice is safe.
type File struct {
	path string
	once sync.Once
}

// Location returns the file path.
func (f *File) Location() string {
	return f.path
}

// Close removes the preview file.
func (f *File) Close() error {
	var err error
	f.once.Do(func() {
		if removeErr := os.Remove(f.path); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			err = fmt.Errorf("failed to remove preview: %w", removeErr)
		}
	})
	return err
}

// Create writes the image payload of in to a private file. Text inputs have no
// preview and yield a nil File.
func (m *Manager) Create(in model.Input) (*File, error) {
	if in.Kind != model.InputImage || in.Image == nil {
		return nil, nil
	}

	if err := os.MkdirAll(m.baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create preview directory: %w", err)
	}

	filename := fmt.Sprintf("preview_%s.%s", uuid.New().String(), in.Image.MediaType)
	path := filepath.Join(m.baseDir, filename)

	if err := os.WriteFile(path, in.Image.Data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write preview: %w", err)
	}

	return &File{path: path}, nil
}

// Factory adapts the manager to a session preview factory.
func (m *Manager) Factory() session.PreviewFactory {
	return func(in model.Input) (session.Preview, error) {
		f, err := m.Create(in)
		if err != nil || f == nil {
			return nil, err
		}
		return f, nil
	}
}
