// Package entities contains core domain data structures.
package entities

import (
	"errors"
	"strings"
)

// NormalizeName converts a name to lowercase for case-insensitive matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ContinuityCharacter tracks where a character is and what they carry
// as of a given chapter.
type ContinuityCharacter struct {
	Name            string   `json:"name"`
	CurrentLocation string   `json:"current_location"`
	Status          string   `json:"status"`
	Inventory       []string `json:"inventory,omitempty"`
}

// NewContinuityCharacter validates and creates a continuity character.
// Inventory items are de-duplicated case-insensitively, preserving order.
func NewContinuityCharacter(name, location, status string, inventory []string) (ContinuityCharacter, error) {
	if strings.TrimSpace(name) == "" {
		return ContinuityCharacter{}, errors.New("character name is required")
	}
	if strings.TrimSpace(location) == "" {
		return ContinuityCharacter{}, errors.New("character location is required")
	}
	if strings.TrimSpace(status) == "" {
		return ContinuityCharacter{}, errors.New("character status is required")
	}
	return ContinuityCharacter{
		Name:            name,
		CurrentLocation: location,
		Status:          status,
		Inventory:       dedupeOrdered(inventory),
	}, nil
}

// ContinuityObject tracks a significant object. Holder is a weak reference
// to a character name; it is not checked against the character list.
type ContinuityObject struct {
	Name     string `json:"name"`
	Holder   string `json:"holder,omitempty"`
	Location string `json:"location"`
}

// NewContinuityObject validates and creates a continuity object.
func NewContinuityObject(name, holder, location string) (ContinuityObject, error) {
	if strings.TrimSpace(name) == "" {
		return ContinuityObject{}, errors.New("object name is required")
	}
	if strings.TrimSpace(location) == "" {
		return ContinuityObject{}, errors.New("object location is required")
	}
	return ContinuityObject{Name: name, Holder: holder, Location: location}, nil
}

// PlotThread tracks an open or resolved narrative thread.
type PlotThread struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// NewPlotThread validates and creates a plot thread.
func NewPlotThread(id, description, status string) (PlotThread, error) {
	if strings.TrimSpace(id) == "" {
		return PlotThread{}, errors.New("plot thread id is required")
	}
	if strings.TrimSpace(description) == "" {
		return PlotThread{}, errors.New("plot thread description is required")
	}
	if strings.TrimSpace(status) == "" {
		return PlotThread{}, errors.New("plot thread status is required")
	}
	return PlotThread{ID: id, Description: description, Status: status}, nil
}

// ContinuityState is a snapshot of world state as of a chapter. Names and
// ids are unique case-insensitively; re-adding an existing key overwrites
// the mutable fields (last write wins).
type ContinuityState struct {
	Characters       []ContinuityCharacter `json:"characters,omitempty"`
	Objects          []ContinuityObject    `json:"objects,omitempty"`
	LocationsVisited []string              `json:"locations_visited,omitempty"`
	PlotThreads      []PlotThread          `json:"plot_threads,omitempty"`
}

// EmptyRecap is the recap text for a state with no content.
const EmptyRecap = "No specific continuity state to maintain."

// AddOrUpdateCharacter inserts the character, or overwrites the existing
// entry with the same name.
func (s *ContinuityState) AddOrUpdateCharacter(c ContinuityCharacter) {
	key := NormalizeName(c.Name)
	for i := range s.Characters {
		if NormalizeName(s.Characters[i].Name) == key {
			s.Characters[i].CurrentLocation = c.CurrentLocation
			s.Characters[i].Status = c.Status
			s.Characters[i].Inventory = c.Inventory
			return
		}
	}
	s.Characters = append(s.Characters, c)
}

// RemoveCharacter removes the character by name. Returns false if absent.
func (s *ContinuityState) RemoveCharacter(name string) bool {
	key := NormalizeName(name)
	for i := range s.Characters {
		if NormalizeName(s.Characters[i].Name) == key {
			s.Characters = append(s.Characters[:i], s.Characters[i+1:]...)
			return true
		}
	}
	return false
}

// Character looks up a character by name, case-insensitively.
func (s *ContinuityState) Character(name string) (ContinuityCharacter, bool) {
	key := NormalizeName(name)
	for i := range s.Characters {
		if NormalizeName(s.Characters[i].Name) == key {
			return s.Characters[i], true
		}
	}
	return ContinuityCharacter{}, false
}

// AddOrUpdateObject inserts the object, or overwrites holder/location on
// the existing entry with the same name.
func (s *ContinuityState) AddOrUpdateObject(o ContinuityObject) {
	key := NormalizeName(o.Name)
	for i := range s.Objects {
		if NormalizeName(s.Objects[i].Name) == key {
			s.Objects[i].Holder = o.Holder
			s.Objects[i].Location = o.Location
			return
		}
	}
	s.Objects = append(s.Objects, o)
}

// RemoveObject removes the object by name. Returns false if absent.
func (s *ContinuityState) RemoveObject(name string) bool {
	key := NormalizeName(name)
	for i := range s.Objects {
		if NormalizeName(s.Objects[i].Name) == key {
			s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
			return true
		}
	}
	return false
}

// Object looks up an object by name, case-insensitively.
func (s *ContinuityState) Object(name string) (ContinuityObject, bool) {
	key := NormalizeName(name)
	for i := range s.Objects {
		if NormalizeName(s.Objects[i].Name) == key {
			return s.Objects[i], true
		}
	}
	return ContinuityObject{}, false
}

// AddOrUpdatePlotThread inserts the thread, or overwrites
// description/status on the existing entry with the same id.
func (s *ContinuityState) AddOrUpdatePlotThread(t PlotThread) {
	key := NormalizeName(t.ID)
	for i := range s.PlotThreads {
		if NormalizeName(s.PlotThreads[i].ID) == key {
			s.PlotThreads[i].Description = t.Description
			s.PlotThreads[i].Status = t.Status
			return
		}
	}
	s.PlotThreads = append(s.PlotThreads, t)
}

// RemovePlotThread removes the thread by id. Returns false if absent.
func (s *ContinuityState) RemovePlotThread(id string) bool {
	key := NormalizeName(id)
	for i := range s.PlotThreads {
		if NormalizeName(s.PlotThreads[i].ID) == key {
			s.PlotThreads = append(s.PlotThreads[:i], s.PlotThreads[i+1:]...)
			return true
		}
	}
	return false
}

// PlotThread looks up a thread by id, case-insensitively.
func (s *ContinuityState) PlotThread(id string) (PlotThread, bool) {
	key := NormalizeName(id)
	for i := range s.PlotThreads {
		if NormalizeName(s.PlotThreads[i].ID) == key {
			return s.PlotThreads[i], true
		}
	}
	return PlotThread{}, false
}

// AddLocation records a visited location, skipping duplicates.
func (s *ContinuityState) AddLocation(location string) {
	if strings.TrimSpace(location) == "" {
		return
	}
	key := NormalizeName(location)
	for _, loc := range s.LocationsVisited {
		if NormalizeName(loc) == key {
			return
		}
	}
	s.LocationsVisited = append(s.LocationsVisited, location)
}

// IsEmpty reports whether the state has no content at all.
func (s *ContinuityState) IsEmpty() bool {
	return len(s.Characters) == 0 && len(s.Objects) == 0 &&
		len(s.LocationsVisited) == 0 && len(s.PlotThreads) == 0
}

// Recap renders the state as the recap text fed back into chapter prompts.
// Empty sections are omitted; a fully empty state renders EmptyRecap.
// Section order is fixed: Characters, Objects, Locations Visited, Open
// Plot Threads.
func (s *ContinuityState) Recap() string {
	if s.IsEmpty() {
		return EmptyRecap
	}

	var b strings.Builder

	if len(s.Characters) > 0 {
		b.WriteString("Characters:\n")
		for _, c := range s.Characters {
			b.WriteString("- ")
			b.WriteString(c.Name)
			b.WriteString(": Currently at ")
			b.WriteString(c.CurrentLocation)
			b.WriteString(", ")
			b.WriteString(c.Status)
			if len(c.Inventory) > 0 {
				b.WriteString(", carrying: ")
				b.WriteString(strings.Join(c.Inventory, ", "))
			}
			b.WriteString("\n")
		}
	}

	if len(s.Objects) > 0 {
		b.WriteString("Objects:\n")
		for _, o := range s.Objects {
			b.WriteString("- ")
			b.WriteString(o.Name)
			if o.Holder != "" {
				b.WriteString(": Held by ")
				b.WriteString(o.Holder)
			} else {
				b.WriteString(": Located at ")
				b.WriteString(o.Location)
			}
			b.WriteString("\n")
		}
	}

	if len(s.LocationsVisited) > 0 {
		b.WriteString("Locations Visited: ")
		b.WriteString(strings.Join(s.LocationsVisited, ", "))
		b.WriteString("\n")
	}

	if len(s.PlotThreads) > 0 {
		b.WriteString("Open Plot Threads:\n")
		for _, t := range s.PlotThreads {
			b.WriteString("- ")
			b.WriteString(t.Description)
			b.WriteString(" (Status: ")
			b.WriteString(t.Status)
			b.WriteString(")\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// dedupeOrdered removes duplicate entries case-insensitively, keeping the
// first occurrence and the original order.
func dedupeOrdered(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := NormalizeName(item)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
