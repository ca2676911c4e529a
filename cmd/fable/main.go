// Package main provides the entry point for the fable CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "fable",
		Short:   "An interactive narrative builder powered by LLM generation",
		Version: version,
	}

	rootCmd.AddCommand(
		newNewCmd(),
		newStatusCmd(),
		newSetCmd(),
		newSelectPlotCmd(),
		newGenerateCmd(),
		newShowCmd(),
		newCacheCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
