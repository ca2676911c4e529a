package openai

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/fable-core/internal/domain/ports"
	"github.com/ersonp/fable-core/internal/infrastructure/config"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LLMConfig
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: config.LLMConfig{
				APIKey: "test-key",
			},
		},
		{
			name: "valid config with model and temperature",
			cfg: config.LLMConfig{
				APIKey:      "test-key",
				Model:       "gpt-4o",
				Temperature: 0.2,
			},
		},
		{
			name:    "missing API key",
			cfg:     config.LLMConfig{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, client)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(config.LLMConfig{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", client.model)
	assert.InDelta(t, 0.8, client.temperature, 0.001)

	client, err = NewClient(config.LLMConfig{APIKey: "test-key", Model: "gpt-4o", Temperature: 0.2})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", client.model)
	assert.InDelta(t, 0.2, client.temperature, 0.001)
}

func TestToOpenAIRole(t *testing.T) {
	tests := []struct {
		role     string
		expected string
	}{
		{ports.RoleSystem, openai.ChatMessageRoleSystem},
		{ports.RoleAssistant, openai.ChatMessageRoleAssistant},
		{ports.RoleUser, openai.ChatMessageRoleUser},
		{"unknown", openai.ChatMessageRoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.expected, toOpenAIRole(tt.role))
		})
	}
}
