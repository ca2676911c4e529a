package services

import "github.com/ersonp/fable-core/internal/domain/entities"

// Step names the next action a story needs. The values mirror the
// interactive flow's screen identifiers, so a reloaded story resumes at
// the right place.
type Step string

// Step values, in ladder order.
const (
	StepStoryType          Step = "story_type"
	StepGenreSelection     Step = "genre_selection"
	StepSubgenreSelection  Step = "subgenre_selection"
	StepWritingStyle       Step = "writing_style_selection"
	StepArchetypeSelection Step = "archetype_selection"
	StepSecondaryArchetype Step = "secondary_archetype_selection"
	StepPlotLineSelected   Step = "plot_line_selected"
	StepCompleteStory      Step = "complete_story_selection"
	StepChapterPlan        Step = "chapter_plan"
)

// ResolveStep maps a story's completeness to the first unmet rung of the
// progress ladder. It is a pure function of the story document: resolving
// a freshly deserialized story yields the same step, which is what makes
// resume-after-reload correct.
func ResolveStep(story *entities.Story) Step {
	switch {
	case story.StoryType == "",
		story.StorySubtype == "" || story.Theme == "" || story.Arc == "":
		return StepStoryType
	case story.Genre == "":
		return StepGenreSelection
	case story.SubGenre == "":
		return StepSubgenreSelection
	case story.WritingStyle == "":
		return StepWritingStyle
	case story.ProtagonistArchetype == "":
		return StepArchetypeSelection
	case story.SelectedPlotLine == nil:
		return StepSecondaryArchetype
	case len(story.Characters) == 0:
		return StepPlotLineSelected
	case len(story.Chapters) == 0:
		return StepCompleteStory
	default:
		return StepChapterPlan
	}
}
