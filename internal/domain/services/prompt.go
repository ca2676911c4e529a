package services

import (
	"fmt"
	"strings"

	"github.com/ersonp/fable-core/internal/domain/entities"
)

// Phase identifies a prompt-generation context. Each phase has its own
// template fragments and field-visibility contract.
type Phase string

// Phase values.
const (
	PhasePlotLines      Phase = "plot_lines"
	PhaseCharacters     Phase = "characters"
	PhaseChapterOutline Phase = "chapter_outline"
	PhaseChapter        Phase = "chapter"
)

// FragmentSource supplies the static pre/post template fragments for a
// phase.
type FragmentSource interface {
	Fragment(phase Phase, kind string) (string, error)
}

// Fragment kinds.
const (
	FragmentPre  = "pre"
	FragmentPost = "post"
)

// PromptService assembles phase-specific prompts from story state. The
// projection deliberately hides already-fixed creative choices from later
// phases so the model cannot re-decide them.
type PromptService struct {
	fragments FragmentSource
}

// NewPromptService creates a new prompt service.
func NewPromptService(fragments FragmentSource) *PromptService {
	return &PromptService{fragments: fragments}
}

// projection controls which story fields are visible to a phase.
type projection struct {
	includeArchetypes   bool // protagonist/secondary archetype fields
	includeSelectedPlot bool // the selected plot line name/description
	chapterLimit        int  // 0 = all chapters; n = chapters below n only
	targetChapter       int  // 0 = no target marker
}

// PlotLinesPrompt builds the plot-line generation prompt. The full story
// state is visible.
func (p *PromptService) PlotLinesPrompt(story *entities.Story) (string, error) {
	return p.assemble(PhasePlotLines, story, projection{
		includeArchetypes:   true,
		includeSelectedPlot: true,
	})
}

// CharactersPrompt builds the character generation prompt. The full story
// state is visible.
func (p *PromptService) CharactersPrompt(story *entities.Story) (string, error) {
	return p.assemble(PhaseCharacters, story, projection{
		includeArchetypes:   true,
		includeSelectedPlot: true,
	})
}

// ChapterOutlinePrompt builds the chapter-outline prompt. The archetype
// fields and the selected plot line are hidden; the expanded plot line
// and the full cast are visible.
func (p *PromptService) ChapterOutlinePrompt(story *entities.Story) (string, error) {
	return p.assemble(PhaseChapterOutline, story, projection{})
}

// ChapterPrompt builds the single-chapter generation prompt for the given
// target chapter. Visibility matches the outline phase, except only
// chapters before the target appear, and for targets past the first a
// continuity recap of the previous chapter precedes the target marker.
func (p *PromptService) ChapterPrompt(story *entities.Story, target int) (string, error) {
	if _, ok := story.Chapter(target); !ok {
		return "", fmt.Errorf("chapter %d is not in the plan", target)
	}
	return p.assemble(PhaseChapter, story, projection{
		chapterLimit:  target,
		targetChapter: target,
	})
}

func (p *PromptService) assemble(phase Phase, story *entities.Story, proj projection) (string, error) {
	pre, err := p.fragments.Fragment(phase, FragmentPre)
	if err != nil {
		return "", fmt.Errorf("loading %s pre-text: %w", phase, err)
	}
	post, err := p.fragments.Fragment(phase, FragmentPost)
	if err != nil {
		return "", fmt.Errorf("loading %s post-text: %w", phase, err)
	}

	return joinParts(pre, renderProjection(story, proj), post), nil
}

// joinParts joins the non-empty parts with a single blank line. Parts
// that are empty after trimming never produce stray separators.
func joinParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "\n\n")
}

// renderProjection renders the visible story state in the fixed section
// order: Story Type, Genre, Writing Style, Character Archetypes, Plot
// Line, Chapter Structure.
func renderProjection(story *entities.Story, proj projection) string {
	return joinParts(
		renderStoryType(story),
		renderGenre(story),
		renderWritingStyle(story),
		renderCast(story, proj),
		renderPlotLine(story, proj),
		renderChapters(story, proj),
	)
}

func renderStoryType(story *entities.Story) string {
	if story.StoryType == "" {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Story Type: %s\n", story.StoryType)
	if story.StorySubtype != "" {
		fmt.Fprintf(&b, "Story Subtype: %s\n", story.StorySubtype)
	}
	if story.Theme != "" {
		fmt.Fprintf(&b, "Theme: %s\n", story.Theme)
	}
	if story.Arc != "" {
		fmt.Fprintf(&b, "Arc: %s\n", story.Arc)
	}
	return b.String()
}

func renderGenre(story *entities.Story) string {
	if story.Genre == "" {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Genre: %s\n", story.Genre)
	if story.SubGenre != "" {
		fmt.Fprintf(&b, "Sub-Genre: %s\n", story.SubGenre)
	}
	return b.String()
}

func renderWritingStyle(story *entities.Story) string {
	if story.WritingStyle == "" {
		return ""
	}
	return fmt.Sprintf("Writing Style: %s\n", story.WritingStyle)
}

func renderCast(story *entities.Story, proj projection) string {
	var b strings.Builder
	if proj.includeArchetypes {
		if story.ProtagonistArchetype != "" {
			fmt.Fprintf(&b, "Protagonist Archetype: %s\n", story.ProtagonistArchetype)
		}
		if story.SecondaryArchetype != "" {
			fmt.Fprintf(&b, "Secondary Archetype: %s\n", story.SecondaryArchetype)
		}
	}
	if len(story.Characters) > 0 {
		b.WriteString("Characters:\n")
		for _, c := range story.Characters {
			fmt.Fprintf(&b, "- %s (%s, %s, %s)", c.Name, c.Archetype, c.FunctionalRole, c.EmotionalFunction)
			if c.Arc != "" {
				fmt.Fprintf(&b, ": %s", c.Arc)
			}
			b.WriteString("\n")
			if c.Backstory != "" {
				fmt.Fprintf(&b, "  Backstory: %s\n", c.Backstory)
			}
		}
	}
	return b.String()
}

func renderPlotLine(story *entities.Story, proj projection) string {
	var b strings.Builder
	if proj.includeSelectedPlot && story.SelectedPlotLine != nil {
		fmt.Fprintf(&b, "Plot Line: %s\n%s\n", story.SelectedPlotLine.Name, story.SelectedPlotLine.Description)
	}
	if story.ExpandedPlotLine != "" {
		fmt.Fprintf(&b, "Expanded Plot Line:\n%s\n", story.ExpandedPlotLine)
	}
	return b.String()
}

func renderChapters(story *entities.Story, proj projection) string {
	var b strings.Builder
	wrote := false
	for _, ch := range story.ChaptersOrdered() {
		if proj.chapterLimit > 0 && ch.Number >= proj.chapterLimit {
			continue
		}
		if !wrote {
			b.WriteString("Chapter Structure:\n")
			wrote = true
		}
		fmt.Fprintf(&b, "Chapter %d: %s\n%s\n", ch.Number, ch.Title, ch.Overview)
		if ch.Summary != "" {
			fmt.Fprintf(&b, "Summary: %s\n", ch.Summary)
		}
	}

	if proj.targetChapter > 0 {
		if proj.targetChapter > 1 {
			if prev, ok := story.Chapter(proj.targetChapter - 1); ok {
				if wrote {
					b.WriteString("\n")
				}
				fmt.Fprintf(&b, "Continuity from Chapter %d:\n%s\n", prev.Number, prev.Continuity.Recap())
				wrote = true
			}
		}
		if target, ok := story.Chapter(proj.targetChapter); ok {
			if wrote {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "Chapter to Generate:\nChapter %d: %s\n%s\n", target.Number, target.Title, target.Overview)
		}
	}

	return b.String()
}
