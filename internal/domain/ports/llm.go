// Package ports defines interfaces for external service communication.
package ports

import "context"

// Turn is one entry of a multi-turn conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Turn roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// LLMClient defines the interface for language model invocation. The
// pipeline treats it as an opaque collaborator; transport, auth, and
// retries live behind it.
type LLMClient interface {
	// Invoke sends a single-shot prompt and returns the raw response text.
	Invoke(ctx context.Context, prompt string) (string, error)

	// InvokeWithHistory sends a prompt preceded by prior conversation
	// turns. Calls carrying history are never cached.
	InvokeWithHistory(ctx context.Context, turns []Turn, prompt string) (string, error)
}
