package ports

// CacheStats summarizes the contents of a response cache.
type CacheStats struct {
	Count     int   `json:"count"`
	TotalSize int64 `json:"total_size"`
}

// ResponseCache defines the interface for the content-addressed response
// cache. Implementations key entries by a hash of the prompt text, so
// concurrent writers racing on one key write identical content.
type ResponseCache interface {
	// Get returns the cached response for the prompt, if present.
	Get(prompt string) (string, bool)

	// Set stores the response for the prompt.
	Set(prompt, response string) error

	// Clear removes all entries and returns how many were removed.
	Clear() (int, error)

	// Stats reports the entry count and total size on disk.
	Stats() (CacheStats, error)
}
