package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ersonp/fable-core/internal/application/handlers"
)

func newGenerateCmd() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Run a generation phase",
	}
	generateCmd.AddCommand(
		newGeneratePlotLinesCmd(),
		newGenerateCharactersCmd(),
		newGenerateOutlineCmd(),
		newGenerateChapterCmd(),
		newGenerateAllCmd(),
		newRegenerateChapterCmd(),
	)
	return generateCmd
}

func newGeneratePlotLinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot-lines",
		Short: "Generate candidate plot lines to choose from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGenerateHandler(func(d *Deps, h *handlers.GenerateHandler) error {
				lines, err := h.PlotLines(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("Generated %d plot lines:\n\n", len(lines))
				for i, line := range lines {
					fmt.Printf("%d. %s\n   %s\n\n", i+1, line.Name, line.Description)
				}
				fmt.Println("Select one with: fable select-plot <name> --description \"...\"")
				return nil
			})
		},
	}
}

func newGenerateCharactersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "characters",
		Short: "Expand the plot line and generate the cast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGenerateHandler(func(d *Deps, h *handlers.GenerateHandler) error {
				expansion, err := h.Characters(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("Generated %d characters:\n", len(expansion.Characters))
				for _, c := range expansion.Characters {
					fmt.Printf("- %s (%s, %s, %s)\n", c.Name, c.Archetype, c.FunctionalRole, c.EmotionalFunction)
				}
				return nil
			})
		},
	}
}

func newGenerateOutlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outline",
		Short: "Generate the chapter plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGenerateHandler(func(d *Deps, h *handlers.GenerateHandler) error {
				chapters, err := h.Outline(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("Planned %d chapters:\n", len(chapters))
				for _, ch := range chapters {
					fmt.Printf("%d. %s\n", ch.Number, ch.Title)
				}
				return nil
			})
		},
	}
}

func newGenerateChapterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chapter [number]",
		Short: "Generate prose for a chapter (default: next ungenerated)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid chapter number %q", args[0])
				}
				number = n
			}
			return withGenerateHandler(func(d *Deps, h *handlers.GenerateHandler) error {
				generated, err := h.Chapter(cmd.Context(), number)
				if err != nil {
					return err
				}
				fmt.Printf("Generated chapter %d. View it with: fable show chapter %d\n", generated, generated)
				return nil
			})
		},
	}
}

func newGenerateAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Generate every remaining chapter in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGenerateHandler(func(d *Deps, h *handlers.GenerateHandler) error {
				count, err := h.AllChapters(cmd.Context())
				if count > 0 {
					fmt.Printf("Generated %d chapters\n", count)
				}
				return err
			})
		},
	}
}

func newRegenerateChapterCmd() *cobra.Command {
	var feedback string
	cmd := &cobra.Command{
		Use:   "retry <number>",
		Short: "Re-generate a chapter with feedback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid chapter number %q", args[0])
			}
			if feedback == "" {
				return fmt.Errorf("--feedback is required")
			}
			return withGenerateHandler(func(d *Deps, h *handlers.GenerateHandler) error {
				if err := h.RegenerateChapter(cmd.Context(), number, feedback); err != nil {
					return err
				}
				fmt.Printf("Re-generated chapter %d\n", number)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&feedback, "feedback", "", "Instruction for the re-generation")
	return cmd
}
