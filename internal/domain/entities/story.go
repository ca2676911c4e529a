package entities

import (
	"encoding/json"
	"sort"
	"strings"
)

// Character is a cast entry fixed during character generation. Entries are
// essentially immutable once added to a story.
type Character struct {
	Name              string            `json:"name"`
	Archetype         Archetype         `json:"archetype"`
	FunctionalRole    FunctionalRole    `json:"functional_role"`
	EmotionalFunction EmotionalFunction `json:"emotional_function"`
	Backstory         string            `json:"backstory,omitempty"`
	Arc               string            `json:"arc,omitempty"`
}

// PlotLine is a candidate or selected plot line: a name plus a
// one-paragraph description.
type PlotLine struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GeneratedChapter is the result of a single-chapter generation call:
// prose plus an optional summary and continuity snapshot. The planned
// number, title, and overview are never carried here; merging preserves
// them.
type GeneratedChapter struct {
	Text       string
	Summary    string
	Continuity ContinuityState
}

// Story is the aggregate root: every creative selection plus the chapter
// plan. It owns its chapters and characters exclusively and is persisted
// as a single JSON document.
type Story struct {
	ID string `json:"id"`

	StoryType    string `json:"story_type"`
	StorySubtype string `json:"story_subtype"`
	Theme        string `json:"theme"`
	Arc          string `json:"arc"`

	Genre        string `json:"genre"`
	SubGenre     string `json:"sub_genre"`
	WritingStyle string `json:"writing_style"`

	ProtagonistArchetype string `json:"protagonist_archetype"`
	SecondaryArchetype   string `json:"secondary_archetype"`

	Characters []Character `json:"characters,omitempty"`

	SelectedPlotLine *PlotLine `json:"selected_plot_line,omitempty"`
	ExpandedPlotLine string    `json:"expanded_plot_line,omitempty"`

	Chapters []Chapter `json:"chapters,omitempty"`
}

// AddChapter adds a planned chapter. Returns false without mutating when
// the chapter is invalid or its number is already taken.
func (s *Story) AddChapter(ch Chapter) bool {
	if ch.Validate() != nil {
		return false
	}
	if _, ok := s.Chapter(ch.Number); ok {
		return false
	}
	s.Chapters = append(s.Chapters, ch)
	return true
}

// UpdateChapter replaces the chapter with the given number. The
// replacement must carry the same number; a mismatch is rejected to guard
// against accidental renumbering.
func (s *Story) UpdateChapter(number int, ch Chapter) bool {
	if ch.Number != number || ch.Validate() != nil {
		return false
	}
	for i := range s.Chapters {
		if s.Chapters[i].Number == number {
			s.Chapters[i] = ch
			return true
		}
	}
	return false
}

// Chapter looks up a chapter by number.
func (s *Story) Chapter(number int) (Chapter, bool) {
	for i := range s.Chapters {
		if s.Chapters[i].Number == number {
			return s.Chapters[i], true
		}
	}
	return Chapter{}, false
}

// RemoveChapter removes the chapter with the given number.
func (s *Story) RemoveChapter(number int) bool {
	for i := range s.Chapters {
		if s.Chapters[i].Number == number {
			s.Chapters = append(s.Chapters[:i], s.Chapters[i+1:]...)
			return true
		}
	}
	return false
}

// ChaptersOrdered returns the chapters sorted ascending by number.
// Insertion order is not chapter order; chapters may be added out of
// sequence.
func (s *Story) ChaptersOrdered() []Chapter {
	ordered := make([]Chapter, len(s.Chapters))
	copy(ordered, s.Chapters)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Number < ordered[j].Number
	})
	return ordered
}

// NextUngeneratedChapter returns the number of the first chapter in
// ascending order with no prose, or false when the whole plan is
// generated (or no chapters exist).
func (s *Story) NextUngeneratedChapter() (int, bool) {
	for _, ch := range s.ChaptersOrdered() {
		if !ch.Generated() {
			return ch.Number, true
		}
	}
	return 0, false
}

// MergeGeneratedChapter applies a generation result to a planned chapter.
// The planned number, title, and overview are kept; only the prose,
// summary, and continuity snapshot are overwritten. Returns false when no
// chapter with that number exists or the result has no prose.
func (s *Story) MergeGeneratedChapter(number int, gen GeneratedChapter) bool {
	if gen.Text == "" {
		return false
	}
	for i := range s.Chapters {
		if s.Chapters[i].Number == number {
			s.Chapters[i].Text = gen.Text
			s.Chapters[i].Summary = gen.Summary
			s.Chapters[i].Continuity = gen.Continuity
			return true
		}
	}
	return false
}

// AddCharacter appends a cast entry. Returns false when the name is empty
// or already taken (case-insensitive).
func (s *Story) AddCharacter(c Character) bool {
	if strings.TrimSpace(c.Name) == "" {
		return false
	}
	key := NormalizeName(c.Name)
	for i := range s.Characters {
		if NormalizeName(s.Characters[i].Name) == key {
			return false
		}
	}
	s.Characters = append(s.Characters, c)
	return true
}

// CharacterByName looks up a cast entry, case-insensitively.
func (s *Story) CharacterByName(name string) (Character, bool) {
	key := NormalizeName(name)
	for i := range s.Characters {
		if NormalizeName(s.Characters[i].Name) == key {
			return s.Characters[i], true
		}
	}
	return Character{}, false
}

// SelectPlotLine records the chosen plot line.
func (s *Story) SelectPlotLine(p PlotLine) bool {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Description) == "" {
		return false
	}
	s.SelectedPlotLine = &p
	return true
}

// Marshal serializes the story as its single persisted JSON document.
func (s *Story) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalStory deserializes a persisted story document.
func UnmarshalStory(data []byte) (*Story, error) {
	var story Story
	if err := json.Unmarshal(data, &story); err != nil {
		return nil, err
	}
	return &story, nil
}
