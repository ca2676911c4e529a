package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/fable-core/internal/domain/services"
)

// stepHints maps each progress step to the command that advances it.
var stepHints = map[services.Step]string{
	services.StepStoryType:          "fable set type <name> --subtype ... --theme ... --arc ...",
	services.StepGenreSelection:     "fable set genre <name> --subgenre ...",
	services.StepSubgenreSelection:  "fable set genre <name> --subgenre ...",
	services.StepWritingStyle:       "fable set style <name>",
	services.StepArchetypeSelection: "fable set archetypes <protagonist> [secondary]",
	services.StepSecondaryArchetype: "fable generate plot-lines, then fable select-plot",
	services.StepPlotLineSelected:   "fable generate characters",
	services.StepCompleteStory:      "fable generate outline",
	services.StepChapterPlan:        "fable generate chapter",
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show story progress and the next required step",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withDeps(func(d *Deps) error {
		status, err := d.Status.Handle()
		if err != nil {
			return err
		}

		fmt.Printf("Story: %s\n", status.Story.ID)
		fmt.Printf("Step: %s\n", status.Step)
		if hint, ok := stepHints[status.Step]; ok {
			fmt.Printf("Next: %s\n", hint)
		}
		if status.ChapterCount > 0 {
			fmt.Printf("Chapters: %d planned, %d generated\n", status.ChapterCount, status.GeneratedChapters)
			if status.PlanComplete {
				fmt.Println("All chapters are generated.")
			} else {
				fmt.Printf("Next chapter to generate: %d\n", status.NextChapter)
			}
		}
		return nil
	})
}
