package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/fable-core/internal/domain/entities"
	"github.com/ersonp/fable-core/internal/domain/ports"
)

// ErrNoStructuredData reports that a model response carried no parseable
// payload. Callers may retry the call or surface the message; the
// already-merged story state is untouched either way.
var ErrNoStructuredData = errors.New("no structured data found in model response")

// GenerationOptions configures the generation pipeline.
type GenerationOptions struct {
	// HitDelay is the artificial pause applied on a cache hit so
	// interactive latency stays consistent with a real call.
	HitDelay time.Duration

	// DebugDir, when set, receives a record of every failed invocation.
	DebugDir string
}

// GenerationService orchestrates one pipeline pass: assemble the phase
// prompt, consult the cache, invoke the model, extract the structured
// payload, and merge it into the story.
type GenerationService struct {
	llm     ports.LLMClient
	cache   ports.ResponseCache
	prompts *PromptService
	opts    GenerationOptions
	logger  *slog.Logger

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// NewGenerationService creates a new generation service. cache may be nil
// to disable response caching.
func NewGenerationService(llm ports.LLMClient, cache ports.ResponseCache, prompts *PromptService, opts GenerationOptions) *GenerationService {
	return &GenerationService{
		llm:     llm,
		cache:   cache,
		prompts: prompts,
		opts:    opts,
		logger:  slog.Default().With("component", "generation"),
		sleep:   time.Sleep,
	}
}

// GeneratePlotLines produces candidate plot lines for the user to choose
// from. The story is not mutated; selection is a separate user action.
func (s *GenerationService) GeneratePlotLines(ctx context.Context, story *entities.Story) ([]entities.PlotLine, error) {
	prompt, err := s.prompts.PlotLinesPrompt(story)
	if err != nil {
		return nil, err
	}
	raw, err := s.callModel(ctx, PhasePlotLines, prompt)
	if err != nil {
		return nil, err
	}
	lines := BuildPlotLines(raw)
	if len(lines) == 0 {
		return nil, fmt.Errorf("plot lines: %w", ErrNoStructuredData)
	}
	return lines, nil
}

// GenerateCharacters expands the selected plot line and builds the cast,
// merging both into the story. Characters with unknown taxonomy labels or
// names already in the cast are skipped. Returns the parsed expansion.
func (s *GenerationService) GenerateCharacters(ctx context.Context, story *entities.Story) (*CastExpansion, error) {
	prompt, err := s.prompts.CharactersPrompt(story)
	if err != nil {
		return nil, err
	}
	raw, err := s.callModel(ctx, PhaseCharacters, prompt)
	if err != nil {
		return nil, err
	}
	expansion, ok := BuildCastExpansion(raw)
	if !ok || len(expansion.Characters) == 0 {
		return nil, fmt.Errorf("characters: %w", ErrNoStructuredData)
	}

	if expansion.ExpandedPlotLine != "" {
		story.ExpandedPlotLine = expansion.ExpandedPlotLine
	}
	for _, c := range expansion.Characters {
		if !story.AddCharacter(c) {
			s.logger.Warn("skipping duplicate character", "name", c.Name)
		}
	}
	return expansion, nil
}

// GenerateChapterPlan produces the chapter outline and adds each valid
// chapter to the story. Entries with duplicate numbers are skipped, not
// fatal. Returns the chapters that were added.
func (s *GenerationService) GenerateChapterPlan(ctx context.Context, story *entities.Story) ([]entities.Chapter, error) {
	prompt, err := s.prompts.ChapterOutlinePrompt(story)
	if err != nil {
		return nil, err
	}
	raw, err := s.callModel(ctx, PhaseChapterOutline, prompt)
	if err != nil {
		return nil, err
	}
	chapters := BuildChapterPlan(raw)
	if len(chapters) == 0 {
		return nil, fmt.Errorf("chapter plan: %w", ErrNoStructuredData)
	}

	var added []entities.Chapter
	for _, ch := range chapters {
		if !story.AddChapter(ch) {
			s.logger.Warn("skipping conflicting chapter", "number", ch.Number)
			continue
		}
		added = append(added, ch)
	}
	return added, nil
}

// GenerateChapter produces the prose for one planned chapter and merges
// it, keeping the planned number, title, and overview.
func (s *GenerationService) GenerateChapter(ctx context.Context, story *entities.Story, number int) error {
	prompt, err := s.prompts.ChapterPrompt(story, number)
	if err != nil {
		return err
	}
	raw, err := s.callModel(ctx, PhaseChapter, prompt)
	if err != nil {
		return err
	}
	gen, ok := BuildGeneratedChapter(raw)
	if !ok {
		return fmt.Errorf("chapter %d: %w", number, ErrNoStructuredData)
	}
	if !story.MergeGeneratedChapter(number, *gen) {
		return fmt.Errorf("chapter %d is not in the plan", number)
	}
	return nil
}

// GenerateAllChapters generates every planned chapter that has no prose
// yet, in ascending order. Returns how many chapters were generated; on
// error the chapters generated so far are kept.
func (s *GenerationService) GenerateAllChapters(ctx context.Context, story *entities.Story) (int, error) {
	count := 0
	for {
		number, ok := story.NextUngeneratedChapter()
		if !ok {
			return count, nil
		}
		if err := s.GenerateChapter(ctx, story, number); err != nil {
			return count, err
		}
		count++
	}
}

// RegenerateChapterWithFeedback re-generates an already generated chapter
// with a user instruction, replaying the original exchange as history.
// History calls bypass the cache unconditionally.
func (s *GenerationService) RegenerateChapterWithFeedback(ctx context.Context, story *entities.Story, number int, feedback string) error {
	ch, ok := story.Chapter(number)
	if !ok {
		return fmt.Errorf("chapter %d is not in the plan", number)
	}
	if !ch.Generated() {
		return fmt.Errorf("chapter %d has not been generated yet", number)
	}

	prompt, err := s.prompts.ChapterPrompt(story, number)
	if err != nil {
		return err
	}
	prior, err := json.Marshal(map[string]string{
		"chapter_text":    ch.Text,
		"chapter_summary": ch.Summary,
	})
	if err != nil {
		return fmt.Errorf("encoding prior chapter: %w", err)
	}

	turns := []ports.Turn{
		{Role: ports.RoleUser, Content: prompt},
		{Role: ports.RoleAssistant, Content: string(prior)},
	}
	raw, err := s.llm.InvokeWithHistory(ctx, turns, feedback)
	if err != nil {
		s.writeDebugRecord(PhaseChapter, feedback, err)
		return fmt.Errorf("invoking model: %w", err)
	}

	gen, ok := BuildGeneratedChapter(raw)
	if !ok {
		return fmt.Errorf("chapter %d: %w", number, ErrNoStructuredData)
	}
	if !story.MergeGeneratedChapter(number, *gen) {
		return fmt.Errorf("chapter %d is not in the plan", number)
	}
	return nil
}

// callModel runs a single-shot invocation through the cache. Cache reads
// and writes only apply to single-shot prompts; a hit re-introduces a
// fixed delay to keep perceived latency consistent.
func (s *GenerationService) callModel(ctx context.Context, phase Phase, prompt string) (string, error) {
	if s.cache != nil {
		if response, ok := s.cache.Get(prompt); ok {
			s.logger.Debug("cache hit", "phase", string(phase), "prompt_length", len(prompt))
			s.sleep(s.opts.HitDelay)
			return response, nil
		}
	}

	response, err := s.llm.Invoke(ctx, prompt)
	if err != nil {
		s.writeDebugRecord(phase, prompt, err)
		return "", fmt.Errorf("invoking model: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(prompt, response); err != nil {
			s.logger.Warn("cache write failed", "phase", string(phase), "error", err)
		}
	}
	return response, nil
}

// debugRecord captures a failed invocation for diagnosis.
type debugRecord struct {
	ID        string    `json:"id"`
	Phase     string    `json:"phase"`
	Prompt    string    `json:"prompt"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *GenerationService) writeDebugRecord(phase Phase, prompt string, cause error) {
	if s.opts.DebugDir == "" {
		return
	}
	record := debugRecord{
		ID:        uuid.New().String(),
		Phase:     string(phase),
		Prompt:    prompt,
		Error:     cause.Error(),
		Timestamp: time.Now(),
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		s.logger.Warn("encoding debug record failed", "error", err)
		return
	}
	if err := os.MkdirAll(s.opts.DebugDir, 0o755); err != nil {
		s.logger.Warn("creating debug dir failed", "error", err)
		return
	}
	path := filepath.Join(s.opts.DebugDir, record.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Warn("writing debug record failed", "path", path, "error", err)
	}
}
