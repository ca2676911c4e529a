// Package registry loads the static reference data the interactive flow
// selects from: story types, genres, and writing styles. Entries are
// simple keyed lookups; a reference file on disk overrides the embedded
// defaults.
package registry

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var defaultReference []byte

// StoryType describes one selectable story type and its sub-selections.
type StoryType struct {
	Name     string   `yaml:"name"`
	Subtypes []string `yaml:"subtypes"`
	Themes   []string `yaml:"themes"`
	Arcs     []string `yaml:"arcs"`
}

// Genre describes one selectable genre and its sub-genres.
type Genre struct {
	Name      string   `yaml:"name"`
	SubGenres []string `yaml:"sub_genres"`
}

// WritingStyle describes one selectable writing style.
type WritingStyle struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Registry holds the loaded reference data.
type Registry struct {
	StoryTypes    []StoryType    `yaml:"story_types"`
	Genres        []Genre        `yaml:"genres"`
	WritingStyles []WritingStyle `yaml:"writing_styles"`
}

// Load reads the registry from the given file, or the embedded defaults
// when path is empty.
func Load(path string) (*Registry, error) {
	data := defaultReference
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading reference file: %w", err)
		}
		data = fileData
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing reference data: %w", err)
	}
	return &reg, nil
}

// StoryType looks up a story type by name, case-insensitively.
func (r *Registry) StoryType(name string) (StoryType, bool) {
	for _, st := range r.StoryTypes {
		if strings.EqualFold(st.Name, name) {
			return st, true
		}
	}
	return StoryType{}, false
}

// Genre looks up a genre by name, case-insensitively.
func (r *Registry) Genre(name string) (Genre, bool) {
	for _, g := range r.Genres {
		if strings.EqualFold(g.Name, name) {
			return g, true
		}
	}
	return Genre{}, false
}

// WritingStyle looks up a writing style by name, case-insensitively.
func (r *Registry) WritingStyle(name string) (WritingStyle, bool) {
	for _, ws := range r.WritingStyles {
		if strings.EqualFold(ws.Name, name) {
			return ws, true
		}
	}
	return WritingStyle{}, false
}

// contains reports whether the list has the value, case-insensitively.
func contains(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

// ValidSubtype reports whether the subtype belongs to the story type.
func (r *Registry) ValidSubtype(storyType, subtype string) bool {
	st, ok := r.StoryType(storyType)
	return ok && contains(st.Subtypes, subtype)
}

// ValidTheme reports whether the theme belongs to the story type.
func (r *Registry) ValidTheme(storyType, theme string) bool {
	st, ok := r.StoryType(storyType)
	return ok && contains(st.Themes, theme)
}

// ValidArc reports whether the arc belongs to the story type.
func (r *Registry) ValidArc(storyType, arc string) bool {
	st, ok := r.StoryType(storyType)
	return ok && contains(st.Arcs, arc)
}

// ValidSubGenre reports whether the sub-genre belongs to the genre.
func (r *Registry) ValidSubGenre(genre, subGenre string) bool {
	g, ok := r.Genre(genre)
	return ok && contains(g.SubGenres, subGenre)
}
