// Package store persists the single story document as a JSON file.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ersonp/fable-core/internal/domain/entities"
)

// FileStore implements the StoryStore interface on the local filesystem.
type FileStore struct{}

// New creates a new file store.
func New() *FileStore {
	return &FileStore{}
}

// Load reads the story document at the given path.
func (f *FileStore) Load(path string) (*entities.Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading story document: %w", err)
	}
	story, err := entities.UnmarshalStory(data)
	if err != nil {
		return nil, fmt.Errorf("parsing story document: %w", err)
	}
	return story, nil
}

// Save writes the story document atomically: the document is written to a
// temporary file in the same directory, then renamed into place.
func (f *FileStore) Save(path string, story *entities.Story) error {
	data, err := story.Marshal()
	if err != nil {
		return fmt.Errorf("marshaling story document: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating story dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".story-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing story document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing story document: %w", err)
	}
	return nil
}

// Exists reports whether a story document is present at the path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
