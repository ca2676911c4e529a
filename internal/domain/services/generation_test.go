package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/fable-core/internal/domain/entities"
	"github.com/ersonp/fable-core/internal/domain/mocks"
	"github.com/ersonp/fable-core/internal/domain/ports"
)

const plotLinesResponse = `<STRUCTURED_DATA>
{"plot_lines": [
  {"name": "The Debt", "description": "Mira owes the ferryman."},
  {"name": "The Flood", "description": "The river rises against the mill."}
]}
</STRUCTURED_DATA>`

const charactersResponse = `<STRUCTURED_DATA>
{
  "expanded_plot_line": "Mira's debt to the ferryman pulls her into the mill's history.",
  "characters": [
    {"name": "Mira", "archetype": "Hero", "functional_role": "Protagonist", "emotional_function": "Empathy Anchor"},
    {"name": "Ferryman", "archetype": "Ruler", "functional_role": "Antagonist", "emotional_function": "Tension Source"}
  ]
}
</STRUCTURED_DATA>`

const outlineResponse = `<STRUCTURED_DATA>
{"chapters": [
  {"chapter_number": 1, "title": "The Mill", "overview": "Mira finds the key."},
  {"chapter_number": 2, "title": "The Ferry", "overview": "Crossing at night."}
]}
</STRUCTURED_DATA>`

func chapterResponse(n int) string {
	return fmt.Sprintf(`<STRUCTURED_DATA>
{"chapter_text": "Prose for chapter %d.", "chapter_summary": "Summary %d."}
</STRUCTURED_DATA>`, n, n)
}

func newTestGeneration(t *testing.T, llm *mocks.LLMClient, cache ports.ResponseCache, opts GenerationOptions) (*GenerationService, *[]time.Duration) {
	t.Helper()
	svc := NewGenerationService(llm, cache, NewPromptService(stubFragments{}), opts)
	var slept []time.Duration
	svc.sleep = func(d time.Duration) { slept = append(slept, d) }
	return svc, &slept
}

func TestGenerationService_GeneratePlotLines(t *testing.T) {
	llm := &mocks.LLMClient{Responses: []string{plotLinesResponse}}
	cache := &mocks.ResponseCache{}
	svc, _ := newTestGeneration(t, llm, cache, GenerationOptions{})

	story := configuredStory(t)
	lines, err := svc.GeneratePlotLines(context.Background(), story)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "The Debt", lines[0].Name)

	assert.Equal(t, "The Debt", story.SelectedPlotLine.Name, "generating candidates never mutates the selection")
	assert.Equal(t, 1, cache.Sets, "response is cached after a live call")
	assert.Len(t, llm.Invocations, 1)
}

func TestGenerationService_CacheHitSkipsModelAndDelays(t *testing.T) {
	llm := &mocks.LLMClient{Responses: []string{plotLinesResponse}}
	cache := &mocks.ResponseCache{}
	svc, slept := newTestGeneration(t, llm, cache, GenerationOptions{HitDelay: 750 * time.Millisecond})

	story := configuredStory(t)
	_, err := svc.GeneratePlotLines(context.Background(), story)
	require.NoError(t, err)
	require.Len(t, llm.Invocations, 1)
	assert.Empty(t, *slept)

	// Same story, same prompt: served from cache with the artificial
	// delay, no second model call.
	_, err = svc.GeneratePlotLines(context.Background(), story)
	require.NoError(t, err)
	assert.Len(t, llm.Invocations, 1)
	assert.Equal(t, 1, cache.Hits)
	assert.Equal(t, []time.Duration{750 * time.Millisecond}, *slept)
}

func TestGenerationService_NilCache(t *testing.T) {
	llm := &mocks.LLMClient{Responses: []string{plotLinesResponse}}
	svc, _ := newTestGeneration(t, llm, nil, GenerationOptions{})

	_, err := svc.GeneratePlotLines(context.Background(), configuredStory(t))
	require.NoError(t, err)
	assert.Len(t, llm.Invocations, 1)
}

func TestGenerationService_CacheWriteFailureIsNotFatal(t *testing.T) {
	llm := &mocks.LLMClient{Responses: []string{plotLinesResponse}}
	cache := &mocks.ResponseCache{SetErr: errors.New("disk full")}
	svc, _ := newTestGeneration(t, llm, cache, GenerationOptions{})

	_, err := svc.GeneratePlotLines(context.Background(), configuredStory(t))
	assert.NoError(t, err)
}

func TestGenerationService_GenerateCharacters(t *testing.T) {
	llm := &mocks.LLMClient{Responses: []string{charactersResponse}}
	svc, _ := newTestGeneration(t, llm, &mocks.ResponseCache{}, GenerationOptions{})

	story := configuredStory(t)
	// "Mira" is already in the cast; the duplicate is skipped, not fatal.
	expansion, err := svc.GenerateCharacters(context.Background(), story)
	require.NoError(t, err)
	require.Len(t, expansion.Characters, 2)

	assert.Equal(t, "Mira's debt to the ferryman pulls her into the mill's history.", story.ExpandedPlotLine)
	require.Len(t, story.Characters, 2)
	_, ok := story.CharacterByName("Ferryman")
	assert.True(t, ok)
}

func TestGenerationService_GenerateChapterPlan(t *testing.T) {
	llm := &mocks.LLMClient{Responses: []string{outlineResponse}}
	svc, _ := newTestGeneration(t, llm, &mocks.ResponseCache{}, GenerationOptions{})

	story := configuredStory(t)
	added, err := svc.GenerateChapterPlan(context.Background(), story)
	require.NoError(t, err)
	assert.Len(t, added, 2)
	assert.Len(t, story.Chapters, 2)
}

func TestGenerationService_GenerateChapterPlan_SkipsConflicts(t *testing.T) {
	llm := &mocks.LLMClient{Responses: []string{outlineResponse}}
	svc, _ := newTestGeneration(t, llm, &mocks.ResponseCache{}, GenerationOptions{})

	story := configuredStory(t)
	addPlannedChapters(t, story, 1)

	added, err := svc.GenerateChapterPlan(context.Background(), story)
	require.NoError(t, err)
	assert.Len(t, added, 1)
	assert.Len(t, story.Chapters, 2)
}

func TestGenerationService_GenerateChapter_MergesKeepingPlan(t *testing.T) {
	llm := &mocks.LLMClient{Responses: []string{chapterResponse(1)}}
	svc, _ := newTestGeneration(t, llm, &mocks.ResponseCache{}, GenerationOptions{})

	story := configuredStory(t)
	addPlannedChapters(t, story, 1)

	require.NoError(t, svc.GenerateChapter(context.Background(), story, 1))

	ch, ok := story.Chapter(1)
	require.True(t, ok)
	assert.Equal(t, "Chapter Title 1", ch.Title)
	assert.Equal(t, "Overview 1.", ch.Overview)
	assert.Equal(t, "Prose for chapter 1.", ch.Text)
	assert.Equal(t, "Summary 1.", ch.Summary)
}

func TestGenerationService_GenerateChapter_NoStructuredData(t *testing.T) {
	llm := &mocks.LLMClient{Responses: []string{"I cannot write that chapter."}}
	svc, _ := newTestGeneration(t, llm, &mocks.ResponseCache{}, GenerationOptions{})

	story := configuredStory(t)
	addPlannedChapters(t, story, 1)

	err := svc.GenerateChapter(context.Background(), story, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoStructuredData)

	ch, _ := story.Chapter(1)
	assert.False(t, ch.Generated(), "story is untouched on extraction failure")
}

func TestGenerationService_GenerateAllChapters(t *testing.T) {
	llm := &mocks.LLMClient{Responses: []string{chapterResponse(1), chapterResponse(2), chapterResponse(3)}}
	svc, _ := newTestGeneration(t, llm, &mocks.ResponseCache{}, GenerationOptions{})

	story := configuredStory(t)
	addPlannedChapters(t, story, 3)

	count, err := svc.GenerateAllChapters(context.Background(), story)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	_, ok := story.NextUngeneratedChapter()
	assert.False(t, ok)
}

func TestGenerationService_GenerateAllChapters_KeepsPartialProgress(t *testing.T) {
	llm := &mocks.LLMClient{Responses: []string{chapterResponse(1), "no structure"}}
	svc, _ := newTestGeneration(t, llm, &mocks.ResponseCache{}, GenerationOptions{})

	story := configuredStory(t)
	addPlannedChapters(t, story, 2)

	count, err := svc.GenerateAllChapters(context.Background(), story)
	require.Error(t, err)
	assert.Equal(t, 1, count)

	first, _ := story.Chapter(1)
	assert.True(t, first.Generated())
	second, _ := story.Chapter(2)
	assert.False(t, second.Generated())
}

func TestGenerationService_RegenerateChapterWithFeedback(t *testing.T) {
	llm := &mocks.LLMClient{Responses: []string{chapterResponse(1)}}
	cache := &mocks.ResponseCache{}
	svc, _ := newTestGeneration(t, llm, cache, GenerationOptions{})

	story := configuredStory(t)
	addPlannedChapters(t, story, 1)
	require.True(t, story.MergeGeneratedChapter(1, entities.GeneratedChapter{
		Text:    "The first draft.",
		Summary: "Draft summary.",
	}))

	err := svc.RegenerateChapterWithFeedback(context.Background(), story, 1, "Make the pacing slower.")
	require.NoError(t, err)

	assert.Equal(t, 1, llm.HistoryCalls)
	assert.Empty(t, llm.Invocations, "regeneration never uses the single-shot path")
	assert.Equal(t, 0, cache.Sets, "history calls bypass the cache")

	ch, _ := story.Chapter(1)
	assert.Equal(t, "Prose for chapter 1.", ch.Text)
	assert.Equal(t, "Chapter Title 1", ch.Title)
}

func TestGenerationService_RegenerateChapterWithFeedback_RequiresProse(t *testing.T) {
	svc, _ := newTestGeneration(t, &mocks.LLMClient{}, &mocks.ResponseCache{}, GenerationOptions{})

	story := configuredStory(t)
	addPlannedChapters(t, story, 1)

	err := svc.RegenerateChapterWithFeedback(context.Background(), story, 1, "feedback")
	require.Error(t, err)

	err = svc.RegenerateChapterWithFeedback(context.Background(), story, 9, "feedback")
	require.Error(t, err)
}

func TestGenerationService_DebugRecordOnFailure(t *testing.T) {
	debugDir := filepath.Join(t.TempDir(), "debug")
	llm := &mocks.LLMClient{Err: errors.New("rate limited")}
	svc, _ := newTestGeneration(t, llm, &mocks.ResponseCache{}, GenerationOptions{DebugDir: debugDir})

	_, err := svc.GeneratePlotLines(context.Background(), configuredStory(t))
	require.Error(t, err)

	entries, err := os.ReadDir(debugDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(debugDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "rate limited")
	assert.Contains(t, string(data), `"phase": "plot_lines"`)
}
