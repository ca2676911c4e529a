package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/fable-core/internal/domain/entities"
	"github.com/ersonp/fable-core/internal/domain/ports"
	"github.com/ersonp/fable-core/internal/domain/services"
)

// GenerateHandler handles the generation phases. Every operation loads
// the story document, runs one pipeline pass, and saves the result, so a
// failed call never loses already-generated content.
type GenerateHandler struct {
	store     ports.StoryStore
	service   *services.GenerationService
	storyPath string
}

// NewGenerateHandler creates a new generate handler.
func NewGenerateHandler(store ports.StoryStore, service *services.GenerationService, storyPath string) *GenerateHandler {
	return &GenerateHandler{store: store, service: service, storyPath: storyPath}
}

func (h *GenerateHandler) load() (*entities.Story, error) {
	story, err := h.store.Load(h.storyPath)
	if err != nil {
		return nil, fmt.Errorf("loading story: %w", err)
	}
	return story, nil
}

func (h *GenerateHandler) save(story *entities.Story) error {
	if err := h.store.Save(h.storyPath, story); err != nil {
		return fmt.Errorf("saving story: %w", err)
	}
	return nil
}

// PlotLines generates candidate plot lines. The story is read, not
// mutated; the user selects one afterwards.
func (h *GenerateHandler) PlotLines(ctx context.Context) ([]entities.PlotLine, error) {
	story, err := h.load()
	if err != nil {
		return nil, err
	}
	return h.service.GeneratePlotLines(ctx, story)
}

// Characters expands the plot line and generates the cast.
func (h *GenerateHandler) Characters(ctx context.Context) (*services.CastExpansion, error) {
	story, err := h.load()
	if err != nil {
		return nil, err
	}
	expansion, err := h.service.GenerateCharacters(ctx, story)
	if err != nil {
		return nil, err
	}
	if err := h.save(story); err != nil {
		return nil, err
	}
	return expansion, nil
}

// Outline generates the chapter plan.
func (h *GenerateHandler) Outline(ctx context.Context) ([]entities.Chapter, error) {
	story, err := h.load()
	if err != nil {
		return nil, err
	}
	added, err := h.service.GenerateChapterPlan(ctx, story)
	if err != nil {
		return nil, err
	}
	if err := h.save(story); err != nil {
		return nil, err
	}
	return added, nil
}

// Chapter generates the prose for one chapter. number 0 means the next
// ungenerated chapter.
func (h *GenerateHandler) Chapter(ctx context.Context, number int) (int, error) {
	story, err := h.load()
	if err != nil {
		return 0, err
	}
	if number == 0 {
		next, ok := story.NextUngeneratedChapter()
		if !ok {
			return 0, fmt.Errorf("all chapters are generated")
		}
		number = next
	}
	if err := h.service.GenerateChapter(ctx, story, number); err != nil {
		return 0, err
	}
	if err := h.save(story); err != nil {
		return 0, err
	}
	return number, nil
}

// AllChapters generates every remaining chapter in order. Chapters
// generated before an error are saved.
func (h *GenerateHandler) AllChapters(ctx context.Context) (int, error) {
	story, err := h.load()
	if err != nil {
		return 0, err
	}
	count, genErr := h.service.GenerateAllChapters(ctx, story)
	if count > 0 {
		if err := h.save(story); err != nil {
			return count, err
		}
	}
	return count, genErr
}

// RegenerateChapter re-generates a chapter with user feedback.
func (h *GenerateHandler) RegenerateChapter(ctx context.Context, number int, feedback string) error {
	story, err := h.load()
	if err != nil {
		return err
	}
	if err := h.service.RegenerateChapterWithFeedback(ctx, story, number, feedback); err != nil {
		return err
	}
	return h.save(story)
}
