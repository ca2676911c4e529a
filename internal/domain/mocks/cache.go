package mocks

import "github.com/ersonp/fable-core/internal/domain/ports"

// ResponseCache is an in-memory mock implementation of
// ports.ResponseCache.
type ResponseCache struct {
	// Entries maps prompt text to cached response.
	Entries map[string]string
	// SetErr, when set, is returned by Set.
	SetErr error

	// Hits counts successful Get calls.
	Hits int
	// Sets counts Set calls.
	Sets int
}

// Get returns the cached response for the prompt, if present.
func (m *ResponseCache) Get(prompt string) (string, bool) {
	response, ok := m.Entries[prompt]
	if ok {
		m.Hits++
	}
	return response, ok
}

// Set stores the response for the prompt.
func (m *ResponseCache) Set(prompt, response string) error {
	m.Sets++
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.Entries == nil {
		m.Entries = make(map[string]string)
	}
	m.Entries[prompt] = response
	return nil
}

// Clear removes all entries.
func (m *ResponseCache) Clear() (int, error) {
	n := len(m.Entries)
	m.Entries = nil
	return n, nil
}

// Stats reports the entry count.
func (m *ResponseCache) Stats() (ports.CacheStats, error) {
	stats := ports.CacheStats{Count: len(m.Entries)}
	for prompt, response := range m.Entries {
		stats.TotalSize += int64(len(prompt) + len(response))
	}
	return stats, nil
}
