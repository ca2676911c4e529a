// Package services contains domain business logic.
package services

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ersonp/fable-core/internal/domain/entities"
)

// Patterns for locating a JSON payload inside free-form model output.
var (
	reStructuredData = regexp.MustCompile(`(?s)<STRUCTURED_DATA>(.*?)</STRUCTURED_DATA>`)
	reJSONFence      = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	reAnyFence       = regexp.MustCompile("(?s)```[a-zA-Z0-9_-]*\\s*(.*?)```")
	reBraceSpan      = regexp.MustCompile(`(?s)\{.*\}`)
)

// ExtractJSON recovers a single JSON payload from raw model output. The
// attempt order is a contract: the same text can satisfy several patterns
// with different groups, so callers rely on this exact precedence.
//
//  1. the whole trimmed response
//  2. a <STRUCTURED_DATA>...</STRUCTURED_DATA> block
//  3. a fenced code block tagged json
//  4. any fenced code block
//  5. the first greedy {...} span
//
// Each failed parse falls through to the next attempt. When every attempt
// fails the second return is false; extraction never returns an error.
func ExtractJSON(raw string) (json.RawMessage, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}

	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), true
	}

	for _, re := range []*regexp.Regexp{reStructuredData, reJSONFence, reAnyFence} {
		if m := re.FindStringSubmatch(trimmed); m != nil {
			inner := strings.TrimSpace(m[1])
			if inner != "" && json.Valid([]byte(inner)) {
				return json.RawMessage(inner), true
			}
		}
	}

	if m := reBraceSpan.FindString(trimmed); m != "" && json.Valid([]byte(m)) {
		return json.RawMessage(m), true
	}

	return nil, false
}

// rawPlannedChapter is the JSON shape of one chapter-plan entry.
type rawPlannedChapter struct {
	ChapterNumber     int         `json:"chapter_number"`
	Title             string      `json:"title"`
	Overview          string      `json:"overview"`
	PointOfView       string      `json:"point_of_view"`
	NarrativeFunction string      `json:"narrative_function"`
	CharacterImpact   []rawImpact `json:"character_impact"`
	ForeshadowOrEcho  string      `json:"foreshadow_or_echo"`
	SceneHighlights   string      `json:"scene_highlights"`
}

type rawImpact struct {
	Character string `json:"character"`
	Effect    string `json:"effect"`
}

// BuildChapterPlan parses a chapter-outline response into planned
// chapters. Entries missing required fields are skipped; optional fields
// are best-effort, and an unrecognized narrative_function is dropped
// silently rather than failing the entry.
func BuildChapterPlan(raw string) []entities.Chapter {
	payload, ok := ExtractJSON(raw)
	if !ok {
		return nil
	}

	var batch struct {
		Chapters []rawPlannedChapter `json:"chapters"`
	}
	if err := json.Unmarshal(payload, &batch); err != nil {
		return nil
	}

	var chapters []entities.Chapter
	for _, rc := range batch.Chapters {
		ch, err := entities.NewChapter(rc.ChapterNumber, rc.Title, rc.Overview)
		if err != nil {
			continue
		}
		ch.PointOfView = rc.PointOfView
		if fn, ok := entities.ParseNarrativeFunction(rc.NarrativeFunction); ok {
			ch.NarrativeFunction = fn
		}
		ch.ForeshadowOrEcho = rc.ForeshadowOrEcho
		ch.SceneHighlights = rc.SceneHighlights
		for _, imp := range rc.CharacterImpact {
			ch.SetCharacterImpact(imp.Character, imp.Effect)
		}
		chapters = append(chapters, ch)
	}
	return chapters
}

// rawContinuity is the JSON shape of a nested continuity snapshot.
type rawContinuity struct {
	Characters []struct {
		Name            string   `json:"name"`
		CurrentLocation string   `json:"current_location"`
		Status          string   `json:"status"`
		Inventory       []string `json:"inventory"`
	} `json:"characters"`
	Objects []struct {
		Name     string `json:"name"`
		Holder   string `json:"holder"`
		Location string `json:"location"`
	} `json:"objects"`
	LocationsVisited []string `json:"locations_visited"`
	PlotThreads      []struct {
		ID          string `json:"id"`
		Description string `json:"description"`
		Status      string `json:"status"`
	} `json:"plot_threads"`
}

func buildContinuity(rc *rawContinuity) entities.ContinuityState {
	var state entities.ContinuityState
	if rc == nil {
		return state
	}
	for _, c := range rc.Characters {
		cc, err := entities.NewContinuityCharacter(c.Name, c.CurrentLocation, c.Status, c.Inventory)
		if err != nil {
			continue
		}
		state.AddOrUpdateCharacter(cc)
	}
	for _, o := range rc.Objects {
		co, err := entities.NewContinuityObject(o.Name, o.Holder, o.Location)
		if err != nil {
			continue
		}
		state.AddOrUpdateObject(co)
	}
	for _, loc := range rc.LocationsVisited {
		state.AddLocation(loc)
	}
	for _, t := range rc.PlotThreads {
		pt, err := entities.NewPlotThread(t.ID, t.Description, t.Status)
		if err != nil {
			continue
		}
		state.AddOrUpdatePlotThread(pt)
	}
	return state
}

// BuildGeneratedChapter parses a single-chapter generation response.
// chapter_text is the one mandatory field: without it the builder returns
// no result even when summary and continuity are present and well-formed.
func BuildGeneratedChapter(raw string) (*entities.GeneratedChapter, bool) {
	payload, ok := ExtractJSON(raw)
	if !ok {
		return nil, false
	}

	var rg struct {
		ChapterText    string         `json:"chapter_text"`
		ChapterSummary string         `json:"chapter_summary"`
		Continuity     *rawContinuity `json:"continuity_state"`
	}
	if err := json.Unmarshal(payload, &rg); err != nil {
		return nil, false
	}
	if strings.TrimSpace(rg.ChapterText) == "" {
		return nil, false
	}

	return &entities.GeneratedChapter{
		Text:       rg.ChapterText,
		Summary:    rg.ChapterSummary,
		Continuity: buildContinuity(rg.Continuity),
	}, true
}

// CastExpansion is the parsed result of a character generation response.
type CastExpansion struct {
	ExpandedPlotLine string
	Characters       []entities.Character
}

// BuildCastExpansion parses a character generation response. Every
// character requires a name plus archetype, functional_role, and
// emotional_function labels that resolve by exact value match; a
// character failing any of the three is dropped from the result.
func BuildCastExpansion(raw string) (*CastExpansion, bool) {
	payload, ok := ExtractJSON(raw)
	if !ok {
		return nil, false
	}

	var rc struct {
		ExpandedPlotLine string `json:"expanded_plot_line"`
		Characters       []struct {
			Name              string `json:"name"`
			Archetype         string `json:"archetype"`
			FunctionalRole    string `json:"functional_role"`
			EmotionalFunction string `json:"emotional_function"`
			Backstory         string `json:"backstory"`
			Arc               string `json:"arc"`
		} `json:"characters"`
	}
	if err := json.Unmarshal(payload, &rc); err != nil {
		return nil, false
	}

	result := &CastExpansion{ExpandedPlotLine: rc.ExpandedPlotLine}
	for _, c := range rc.Characters {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		archetype, ok := entities.ParseArchetype(c.Archetype)
		if !ok {
			continue
		}
		role, ok := entities.ParseFunctionalRole(c.FunctionalRole)
		if !ok {
			continue
		}
		emotion, ok := entities.ParseEmotionalFunction(c.EmotionalFunction)
		if !ok {
			continue
		}
		result.Characters = append(result.Characters, entities.Character{
			Name:              c.Name,
			Archetype:         archetype,
			FunctionalRole:    role,
			EmotionalFunction: emotion,
			Backstory:         c.Backstory,
			Arc:               c.Arc,
		})
	}
	return result, true
}

// BuildPlotLines parses a plot-line generation response into candidate
// plot lines. Entries missing a name or description are skipped.
func BuildPlotLines(raw string) []entities.PlotLine {
	payload, ok := ExtractJSON(raw)
	if !ok {
		return nil
	}

	var rp struct {
		PlotLines []entities.PlotLine `json:"plot_lines"`
	}
	if err := json.Unmarshal(payload, &rp); err != nil {
		return nil
	}

	var lines []entities.PlotLine
	for _, p := range rp.PlotLines {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Description) == "" {
			continue
		}
		lines = append(lines, p)
	}
	return lines
}
