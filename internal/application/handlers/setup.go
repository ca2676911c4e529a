// Package handlers exposes command-facing operations over the domain
// services.
package handlers

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ersonp/fable-core/internal/domain/entities"
	"github.com/ersonp/fable-core/internal/domain/ports"
	"github.com/ersonp/fable-core/internal/infrastructure/registry"
)

// SetupHandler handles the selection steps that precede generation. Each
// operation loads the story document, validates the selection against the
// reference data, applies it, and saves.
type SetupHandler struct {
	store     ports.StoryStore
	registry  *registry.Registry
	storyPath string
}

// NewSetupHandler creates a new setup handler.
func NewSetupHandler(store ports.StoryStore, reg *registry.Registry, storyPath string) *SetupHandler {
	return &SetupHandler{store: store, registry: reg, storyPath: storyPath}
}

// NewStory creates and persists an empty story document. An existing
// document is not overwritten.
func (h *SetupHandler) NewStory() (*entities.Story, error) {
	if _, err := h.store.Load(h.storyPath); err == nil {
		return nil, fmt.Errorf("a story already exists at %s", h.storyPath)
	}
	story := &entities.Story{ID: uuid.New().String()}
	if err := h.store.Save(h.storyPath, story); err != nil {
		return nil, fmt.Errorf("saving story: %w", err)
	}
	return story, nil
}

// withStory loads the story, applies fn, and saves when fn succeeds.
func (h *SetupHandler) withStory(fn func(*entities.Story) error) error {
	story, err := h.store.Load(h.storyPath)
	if err != nil {
		return fmt.Errorf("loading story: %w", err)
	}
	if err := fn(story); err != nil {
		return err
	}
	if err := h.store.Save(h.storyPath, story); err != nil {
		return fmt.Errorf("saving story: %w", err)
	}
	return nil
}

// SetStoryType records the story type with its subtype, theme, and arc.
func (h *SetupHandler) SetStoryType(storyType, subtype, theme, arc string) error {
	st, ok := h.registry.StoryType(storyType)
	if !ok {
		return fmt.Errorf("unknown story type %q", storyType)
	}
	if !h.registry.ValidSubtype(st.Name, subtype) {
		return fmt.Errorf("unknown subtype %q for story type %q", subtype, st.Name)
	}
	if !h.registry.ValidTheme(st.Name, theme) {
		return fmt.Errorf("unknown theme %q for story type %q", theme, st.Name)
	}
	if !h.registry.ValidArc(st.Name, arc) {
		return fmt.Errorf("unknown arc %q for story type %q", arc, st.Name)
	}
	return h.withStory(func(story *entities.Story) error {
		story.StoryType = st.Name
		story.StorySubtype = subtype
		story.Theme = theme
		story.Arc = arc
		return nil
	})
}

// SetGenre records the genre and sub-genre.
func (h *SetupHandler) SetGenre(genre, subGenre string) error {
	g, ok := h.registry.Genre(genre)
	if !ok {
		return fmt.Errorf("unknown genre %q", genre)
	}
	if !h.registry.ValidSubGenre(g.Name, subGenre) {
		return fmt.Errorf("unknown sub-genre %q for genre %q", subGenre, g.Name)
	}
	return h.withStory(func(story *entities.Story) error {
		story.Genre = g.Name
		story.SubGenre = subGenre
		return nil
	})
}

// SetWritingStyle records the writing style.
func (h *SetupHandler) SetWritingStyle(style string) error {
	ws, ok := h.registry.WritingStyle(style)
	if !ok {
		return fmt.Errorf("unknown writing style %q", style)
	}
	return h.withStory(func(story *entities.Story) error {
		story.WritingStyle = ws.Name
		return nil
	})
}

// SetArchetypes records the protagonist and secondary archetypes.
func (h *SetupHandler) SetArchetypes(protagonist, secondary string) error {
	p, ok := entities.ParseArchetype(protagonist)
	if !ok {
		return fmt.Errorf("unknown archetype %q", protagonist)
	}
	var s entities.Archetype
	if secondary != "" {
		s, ok = entities.ParseArchetype(secondary)
		if !ok {
			return fmt.Errorf("unknown archetype %q", secondary)
		}
	}
	return h.withStory(func(story *entities.Story) error {
		story.ProtagonistArchetype = string(p)
		story.SecondaryArchetype = string(s)
		return nil
	})
}

// SelectPlotLine records the chosen plot line.
func (h *SetupHandler) SelectPlotLine(name, description string) error {
	return h.withStory(func(story *entities.Story) error {
		if !story.SelectPlotLine(entities.PlotLine{Name: name, Description: description}) {
			return fmt.Errorf("plot line needs a name and a description")
		}
		return nil
	})
}
