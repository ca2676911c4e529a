package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/fable-core/internal/domain/entities"
	"github.com/ersonp/fable-core/internal/domain/mocks"
	"github.com/ersonp/fable-core/internal/domain/services"
)

func TestStatusHandler_Handle(t *testing.T) {
	store := &mocks.StoryStore{}
	story := &entities.Story{
		ID:                   "test",
		StoryType:            "Hero's Journey",
		StorySubtype:         "Reluctant Hero",
		Theme:                "Courage",
		Arc:                  "Rise",
		Genre:                "Fantasy",
		SubGenre:             "Dark Fantasy",
		WritingStyle:         "Spare",
		ProtagonistArchetype: "Hero",
	}
	require.True(t, story.SelectPlotLine(entities.PlotLine{Name: "The Debt", Description: "Mira owes the ferryman."}))
	require.True(t, story.AddCharacter(entities.Character{Name: "Mira"}))
	for i := 1; i <= 3; i++ {
		ch, err := entities.NewChapter(i, "Title", "Overview.")
		require.NoError(t, err)
		require.True(t, story.AddChapter(ch))
	}
	require.True(t, story.MergeGeneratedChapter(1, entities.GeneratedChapter{Text: "Prose."}))
	require.NoError(t, store.Save(testStoryPath, story))

	status, err := NewStatusHandler(store, testStoryPath).Handle()
	require.NoError(t, err)

	assert.Equal(t, services.StepChapterPlan, status.Step)
	assert.Equal(t, 3, status.ChapterCount)
	assert.Equal(t, 1, status.GeneratedChapters)
	assert.Equal(t, 2, status.NextChapter)
	assert.False(t, status.PlanComplete)
}

func TestStatusHandler_PlanComplete(t *testing.T) {
	store := &mocks.StoryStore{}
	story := &entities.Story{ID: "test"}
	ch, err := entities.NewChapter(1, "Title", "Overview.")
	require.NoError(t, err)
	require.True(t, story.AddChapter(ch))
	require.True(t, story.MergeGeneratedChapter(1, entities.GeneratedChapter{Text: "Prose."}))
	require.NoError(t, store.Save(testStoryPath, story))

	status, err := NewStatusHandler(store, testStoryPath).Handle()
	require.NoError(t, err)
	assert.True(t, status.PlanComplete)
	assert.Zero(t, status.NextChapter)
}

func TestStatusHandler_MissingStory(t *testing.T) {
	_, err := NewStatusHandler(&mocks.StoryStore{}, testStoryPath).Handle()
	assert.Error(t, err)
}
