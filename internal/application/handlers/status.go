package handlers

import (
	"fmt"

	"github.com/ersonp/fable-core/internal/domain/entities"
	"github.com/ersonp/fable-core/internal/domain/ports"
	"github.com/ersonp/fable-core/internal/domain/services"
)

// Status summarizes where a story stands.
type Status struct {
	Step              services.Step
	Story             *entities.Story
	ChapterCount      int
	GeneratedChapters int
	NextChapter       int
	PlanComplete      bool
}

// StatusHandler reports story progress.
type StatusHandler struct {
	store     ports.StoryStore
	storyPath string
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(store ports.StoryStore, storyPath string) *StatusHandler {
	return &StatusHandler{store: store, storyPath: storyPath}
}

// Handle resolves the story's next step and chapter progress.
func (h *StatusHandler) Handle() (*Status, error) {
	story, err := h.store.Load(h.storyPath)
	if err != nil {
		return nil, fmt.Errorf("loading story: %w", err)
	}

	status := &Status{
		Step:         services.ResolveStep(story),
		Story:        story,
		ChapterCount: len(story.Chapters),
	}
	for _, ch := range story.ChaptersOrdered() {
		if ch.Generated() {
			status.GeneratedChapters++
		}
	}
	if next, ok := story.NextUngeneratedChapter(); ok {
		status.NextChapter = next
	} else if status.ChapterCount > 0 {
		status.PlanComplete = true
	}
	return status, nil
}
