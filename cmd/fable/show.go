package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display story content",
	}
	showCmd.AddCommand(newShowStoryCmd(), newShowChapterCmd(), newShowContinuityCmd())
	return showCmd
}

func newShowStoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "story",
		Short: "Display the story selections and chapter plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				status, err := d.Status.Handle()
				if err != nil {
					return err
				}
				story := status.Story
				fmt.Printf("Story Type: %s / %s (%s, %s)\n", story.StoryType, story.StorySubtype, story.Theme, story.Arc)
				fmt.Printf("Genre: %s / %s\n", story.Genre, story.SubGenre)
				fmt.Printf("Writing Style: %s\n", story.WritingStyle)
				if story.SelectedPlotLine != nil {
					fmt.Printf("Plot Line: %s\n", story.SelectedPlotLine.Name)
				}
				if len(story.Characters) > 0 {
					fmt.Println("Characters:")
					for _, c := range story.Characters {
						fmt.Printf("- %s (%s, %s, %s)\n", c.Name, c.Archetype, c.FunctionalRole, c.EmotionalFunction)
					}
				}
				for _, ch := range story.ChaptersOrdered() {
					marker := " "
					if ch.Generated() {
						marker = "*"
					}
					fmt.Printf("%s Chapter %d: %s\n", marker, ch.Number, ch.Title)
				}
				return nil
			})
		},
	}
}

func newShowChapterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chapter <number>",
		Short: "Display a chapter's prose",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid chapter number %q", args[0])
			}
			return withDeps(func(d *Deps) error {
				status, err := d.Status.Handle()
				if err != nil {
					return err
				}
				ch, ok := status.Story.Chapter(number)
				if !ok {
					return fmt.Errorf("chapter %d is not in the plan", number)
				}
				fmt.Printf("Chapter %d: %s\n\n", ch.Number, ch.Title)
				if !ch.Generated() {
					fmt.Printf("Not generated yet. Overview:\n%s\n", ch.Overview)
					return nil
				}
				fmt.Println(ch.Text)
				return nil
			})
		},
	}
}

func newShowContinuityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "continuity <number>",
		Short: "Display a chapter's continuity recap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid chapter number %q", args[0])
			}
			return withDeps(func(d *Deps) error {
				status, err := d.Status.Handle()
				if err != nil {
					return err
				}
				ch, ok := status.Story.Chapter(number)
				if !ok {
					return fmt.Errorf("chapter %d is not in the plan", number)
				}
				fmt.Println(ch.Continuity.Recap())
				return nil
			})
		},
	}
}
