package entities

import (
	"errors"
	"strings"
)

// CharacterImpact records how a chapter affects one character.
type CharacterImpact struct {
	Character string `json:"character"`
	Effect    string `json:"effect"`
}

// Chapter is one entry in a story's chapter plan. A chapter is planned
// when it has a number, title, and overview; it is generated once Text is
// non-empty.
type Chapter struct {
	Number            int               `json:"chapter_number"`
	Title             string            `json:"title"`
	Overview          string            `json:"overview"`
	PointOfView       string            `json:"point_of_view,omitempty"`
	NarrativeFunction NarrativeFunction `json:"narrative_function,omitempty"`
	CharacterImpacts  []CharacterImpact `json:"character_impact,omitempty"`
	ForeshadowOrEcho  string            `json:"foreshadow_or_echo,omitempty"`
	SceneHighlights   string            `json:"scene_highlights,omitempty"`
	Summary           string            `json:"summary,omitempty"`
	Text              string            `json:"chapter_text,omitempty"`
	Continuity        ContinuityState   `json:"continuity_state,omitempty"`
}

// NewChapter validates and creates a planned chapter.
func NewChapter(number int, title, overview string) (Chapter, error) {
	ch := Chapter{Number: number, Title: title, Overview: overview}
	if err := ch.Validate(); err != nil {
		return Chapter{}, err
	}
	return ch, nil
}

// Validate checks the required planning fields.
func (c *Chapter) Validate() error {
	if c.Number < 1 {
		return errors.New("chapter number must be at least 1")
	}
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("chapter title is required")
	}
	if strings.TrimSpace(c.Overview) == "" {
		return errors.New("chapter overview is required")
	}
	return nil
}

// Generated reports whether the chapter's prose has been produced.
func (c *Chapter) Generated() bool {
	return c.Text != ""
}

// SetCharacterImpact records the chapter's effect on a character. Impacts
// are unique per character name (case-insensitive); re-setting overwrites
// the effect.
func (c *Chapter) SetCharacterImpact(character, effect string) {
	key := NormalizeName(character)
	if key == "" {
		return
	}
	for i := range c.CharacterImpacts {
		if NormalizeName(c.CharacterImpacts[i].Character) == key {
			c.CharacterImpacts[i].Effect = effect
			return
		}
	}
	c.CharacterImpacts = append(c.CharacterImpacts, CharacterImpact{
		Character: character,
		Effect:    effect,
	})
}

// CharacterImpact looks up the recorded effect for a character.
func (c *Chapter) CharacterImpact(character string) (string, bool) {
	key := NormalizeName(character)
	for i := range c.CharacterImpacts {
		if NormalizeName(c.CharacterImpacts[i].Character) == key {
			return c.CharacterImpacts[i].Effect, true
		}
	}
	return "", false
}
