package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create an empty story document",
		Args:  cobra.NoArgs,
		RunE:  runNew,
	}
}

func runNew(cmd *cobra.Command, args []string) error {
	return withDeps(func(d *Deps) error {
		story, err := d.Setup.NewStory()
		if err != nil {
			return err
		}
		fmt.Printf("Created story %s at %s\n", story.ID, d.Config.Story.Path)
		fmt.Println("Next: fable set type")
		return nil
	})
}
