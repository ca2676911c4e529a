// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for fable configuration.
	DefaultConfigDir = ".fable"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultStoryFile is the default story document file name.
	DefaultStoryFile = "story.json"
)

var validate = validator.New()

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	LLM    LLMConfig    `yaml:"llm,omitempty"`
	Cache  CacheConfig  `yaml:"cache,omitempty"`
	Story  StoryConfig  `yaml:"story,omitempty"`
	Prompt PromptConfig `yaml:"prompt,omitempty"`
	Debug  DebugConfig  `yaml:"debug,omitempty"`
}

// LLMConfig holds configuration for the LLM provider.
type LLMConfig struct {
	Provider    string  `yaml:"provider,omitempty" validate:"omitempty,oneof=openai"`
	Model       string  `yaml:"model,omitempty"`
	APIKey      string  `yaml:"api_key,omitempty"`
	Temperature float32 `yaml:"temperature,omitempty" validate:"gte=0,lte=2"`
}

// CacheConfig holds configuration for the response cache.
type CacheConfig struct {
	// Dir is the cache root. Empty means <base>/.fable/cache.
	Dir string `yaml:"dir,omitempty"`
	// HitDelayMS is the artificial delay applied on a cache hit, in
	// milliseconds.
	HitDelayMS int `yaml:"hit_delay_ms,omitempty" validate:"gte=0"`
	// Disabled turns off response caching entirely.
	Disabled bool `yaml:"disabled,omitempty"`
}

// StoryConfig holds configuration for story document persistence.
type StoryConfig struct {
	// Path is the story document location. Empty means
	// <base>/.fable/story.json.
	Path string `yaml:"path,omitempty"`
}

// PromptConfig holds configuration for prompt template fragments.
type PromptConfig struct {
	// Dir overrides the embedded template fragments with files on disk.
	Dir string `yaml:"dir,omitempty"`
}

// DebugConfig holds configuration for generation failure records.
type DebugConfig struct {
	// Dir receives a JSON record per failed invocation. Empty means
	// <base>/.fable/debug.
	Dir string `yaml:"dir,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Temperature: 0.8,
		},
		Cache: CacheConfig{
			HitDelayMS: 750,
		},
	}
}

// Load loads configuration from the .fable directory in the given path.
// A missing config file yields the defaults; fable works out of the box.
func Load(basePath string) (*Config, error) {
	cfg := Default()

	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
	data, err := os.ReadFile(configFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults(basePath)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = key
	}
	if model := os.Getenv("FABLE_MODEL"); model != "" {
		c.LLM.Model = model
	}
}

// applyDefaults fills in path defaults relative to the base directory.
func (c *Config) applyDefaults(basePath string) {
	if c.Cache.Dir == "" {
		c.Cache.Dir = filepath.Join(basePath, DefaultConfigDir, "cache")
	}
	if c.Story.Path == "" {
		c.Story.Path = filepath.Join(basePath, DefaultConfigDir, DefaultStoryFile)
	}
	if c.Debug.Dir == "" {
		c.Debug.Dir = filepath.Join(basePath, DefaultConfigDir, "debug")
	}
}

// ConfigDir returns the path to the .fable config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a fable config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
