// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/ersonp/fable-core/internal/domain/ports"
)

// LLMClient is a mock implementation of ports.LLMClient. Responses are
// served in order; the last one repeats once the queue is exhausted.
type LLMClient struct {
	// Responses are returned by Invoke / InvokeWithHistory in order.
	Responses []string
	// Err, when set, is returned instead of a response.
	Err error

	// Invocations records every single-shot prompt received.
	Invocations []string
	// HistoryCalls records the number of history-carrying calls.
	HistoryCalls int

	next int
}

// Invoke returns the next configured response or error.
func (m *LLMClient) Invoke(ctx context.Context, prompt string) (string, error) {
	m.Invocations = append(m.Invocations, prompt)
	return m.respond()
}

// InvokeWithHistory returns the next configured response or error.
func (m *LLMClient) InvokeWithHistory(ctx context.Context, turns []ports.Turn, prompt string) (string, error) {
	m.HistoryCalls++
	return m.respond()
}

func (m *LLMClient) respond() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	if m.next >= len(m.Responses) {
		return m.Responses[len(m.Responses)-1], nil
	}
	resp := m.Responses[m.next]
	m.next++
	return resp, nil
}
