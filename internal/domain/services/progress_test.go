package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/fable-core/internal/domain/entities"
)

func TestResolveStep(t *testing.T) {
	// Each mutation completes one rung; ResolveStep should advance one
	// step at a time as the story fills in.
	story := &entities.Story{}

	assert.Equal(t, StepStoryType, ResolveStep(story))

	story.StoryType = "Hero's Journey"
	assert.Equal(t, StepStoryType, ResolveStep(story), "subtype, theme, and arc are part of the first rung")

	story.StorySubtype = "Reluctant Hero"
	story.Theme = "Courage"
	story.Arc = "Rise"
	assert.Equal(t, StepGenreSelection, ResolveStep(story))

	story.Genre = "Fantasy"
	assert.Equal(t, StepSubgenreSelection, ResolveStep(story))

	story.SubGenre = "Dark Fantasy"
	assert.Equal(t, StepWritingStyle, ResolveStep(story))

	story.WritingStyle = "Spare"
	assert.Equal(t, StepArchetypeSelection, ResolveStep(story))

	story.ProtagonistArchetype = "Hero"
	assert.Equal(t, StepSecondaryArchetype, ResolveStep(story))

	require.True(t, story.SelectPlotLine(entities.PlotLine{Name: "The Debt", Description: "Mira owes the ferryman."}))
	assert.Equal(t, StepPlotLineSelected, ResolveStep(story))

	require.True(t, story.AddCharacter(entities.Character{Name: "Mira"}))
	assert.Equal(t, StepCompleteStory, ResolveStep(story))

	ch, err := entities.NewChapter(1, "The Mill", "Mira finds the key.")
	require.NoError(t, err)
	require.True(t, story.AddChapter(ch))
	assert.Equal(t, StepChapterPlan, ResolveStep(story))
}

func TestResolveStep_PureOverReload(t *testing.T) {
	story := &entities.Story{
		StoryType:    "Hero's Journey",
		StorySubtype: "Reluctant Hero",
		Theme:        "Courage",
		Arc:          "Rise",
		Genre:        "Fantasy",
	}
	assert.Equal(t, StepSubgenreSelection, ResolveStep(story))

	data, err := story.Marshal()
	require.NoError(t, err)
	reloaded, err := entities.UnmarshalStory(data)
	require.NoError(t, err)

	assert.Equal(t, ResolveStep(story), ResolveStep(reloaded))
}
