package mocks

import (
	"fmt"

	"github.com/ersonp/fable-core/internal/domain/entities"
)

// StoryStore is an in-memory mock implementation of ports.StoryStore.
type StoryStore struct {
	// Documents maps path to serialized story JSON.
	Documents map[string][]byte
	// LoadErr, when set, is returned by Load.
	LoadErr error
	// SaveErr, when set, is returned by Save.
	SaveErr error
}

// Load reads the story document at the given path.
func (m *StoryStore) Load(path string) (*entities.Story, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	data, ok := m.Documents[path]
	if !ok {
		return nil, fmt.Errorf("no story document at %s", path)
	}
	return entities.UnmarshalStory(data)
}

// Save writes the story document to the given path.
func (m *StoryStore) Save(path string, story *entities.Story) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := story.Marshal()
	if err != nil {
		return err
	}
	if m.Documents == nil {
		m.Documents = make(map[string][]byte)
	}
	m.Documents[path] = data
	return nil
}
