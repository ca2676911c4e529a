package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ersonp/fable-core/internal/application/handlers"
	"github.com/ersonp/fable-core/internal/domain/ports"
	"github.com/ersonp/fable-core/internal/domain/services"
	"github.com/ersonp/fable-core/internal/infrastructure/cache"
	"github.com/ersonp/fable-core/internal/infrastructure/config"
	llm "github.com/ersonp/fable-core/internal/infrastructure/llm/openai"
	"github.com/ersonp/fable-core/internal/infrastructure/prompts"
	"github.com/ersonp/fable-core/internal/infrastructure/registry"
	"github.com/ersonp/fable-core/internal/infrastructure/store"
)

// Deps holds high-level dependencies for commands.
type Deps struct {
	Config   *config.Config
	Registry *registry.Registry
	Setup    *handlers.SetupHandler
	Status   *handlers.StatusHandler
	Cache    ports.ResponseCache
}

// withDeps loads config and builds the dependencies that do not need an
// LLM client, then calls the provided function.
func withDeps(fn func(*Deps) error) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	return fn(deps)
}

// withGenerateHandler additionally builds the LLM client and the
// generation pipeline. The client is only constructed for commands that
// actually invoke the model, so selection commands work without an API
// key.
func withGenerateHandler(fn func(*Deps, *handlers.GenerateHandler) error) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}

	client, err := llm.NewClient(deps.Config.LLM)
	if err != nil {
		return fmt.Errorf("creating llm client: %w", err)
	}

	promptService := services.NewPromptService(prompts.NewLoader(deps.Config.Prompt.Dir))
	generation := services.NewGenerationService(client, deps.Cache, promptService, services.GenerationOptions{
		HitDelay: time.Duration(deps.Config.Cache.HitDelayMS) * time.Millisecond,
		DebugDir: deps.Config.Debug.Dir,
	})
	handler := handlers.NewGenerateHandler(store.New(), generation, deps.Config.Story.Path)
	return fn(deps, handler)
}

func buildDeps() (*Deps, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reg, err := registry.Load("")
	if err != nil {
		return nil, fmt.Errorf("loading reference data: %w", err)
	}

	fileStore := store.New()

	var responseCache ports.ResponseCache
	if !cfg.Cache.Disabled {
		responseCache = cache.New(cfg.Cache.Dir)
	}

	return &Deps{
		Config:   cfg,
		Registry: reg,
		Setup:    handlers.NewSetupHandler(fileStore, reg, cfg.Story.Path),
		Status:   handlers.NewStatusHandler(fileStore, cfg.Story.Path),
		Cache:    responseCache,
	}, nil
}
