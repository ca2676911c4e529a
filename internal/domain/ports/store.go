package ports

import "github.com/ersonp/fable-core/internal/domain/entities"

// StoryStore defines the interface for persisting the single story
// document. The document is the unit of persistence; there is no
// database behind it.
type StoryStore interface {
	// Load reads the story document at the given path.
	Load(path string) (*entities.Story, error)

	// Save writes the story document to the given path atomically.
	Save(path string, story *entities.Story) error
}
