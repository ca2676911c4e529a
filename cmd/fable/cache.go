package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the response cache",
	}
	cacheCmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show cache entry count and size",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(func(d *Deps) error {
					if d.Cache == nil {
						fmt.Println("Response cache is disabled.")
						return nil
					}
					stats, err := d.Cache.Stats()
					if err != nil {
						return err
					}
					fmt.Printf("Entries: %d\nTotal size: %d bytes\n", stats.Count, stats.TotalSize)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached responses",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(func(d *Deps) error {
					if d.Cache == nil {
						fmt.Println("Response cache is disabled.")
						return nil
					}
					removed, err := d.Cache.Clear()
					if err != nil {
						return err
					}
					fmt.Printf("Removed %d entries\n", removed)
					return nil
				})
			},
		},
	)
	return cacheCmd
}
