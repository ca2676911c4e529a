package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/fable-core/internal/domain/entities"
)

func newSetCmd() *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Record a creative selection",
	}
	setCmd.AddCommand(
		newSetTypeCmd(),
		newSetGenreCmd(),
		newSetStyleCmd(),
		newSetArchetypesCmd(),
	)
	return setCmd
}

func newSetTypeCmd() *cobra.Command {
	var subtype, theme, arc string
	cmd := &cobra.Command{
		Use:   "type <name>",
		Short: "Select the story type with its subtype, theme, and arc",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				if subtype == "" || theme == "" || arc == "" {
					if st, ok := d.Registry.StoryType(args[0]); ok {
						fmt.Printf("Story type %q needs --subtype, --theme, and --arc.\n", st.Name)
						fmt.Printf("  Subtypes: %s\n", strings.Join(st.Subtypes, ", "))
						fmt.Printf("  Themes: %s\n", strings.Join(st.Themes, ", "))
						fmt.Printf("  Arcs: %s\n", strings.Join(st.Arcs, ", "))
						return nil
					}
					return fmt.Errorf("unknown story type %q", args[0])
				}
				if err := d.Setup.SetStoryType(args[0], subtype, theme, arc); err != nil {
					return err
				}
				fmt.Printf("Story type set to %s / %s (%s, %s)\n", args[0], subtype, theme, arc)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&subtype, "subtype", "", "Story subtype")
	cmd.Flags().StringVar(&theme, "theme", "", "Story theme")
	cmd.Flags().StringVar(&arc, "arc", "", "Story arc")
	return cmd
}

func newSetGenreCmd() *cobra.Command {
	var subGenre string
	cmd := &cobra.Command{
		Use:   "genre <name>",
		Short: "Select the genre and sub-genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				if subGenre == "" {
					if g, ok := d.Registry.Genre(args[0]); ok {
						fmt.Printf("Genre %q needs --subgenre. Sub-genres: %s\n", g.Name, strings.Join(g.SubGenres, ", "))
						return nil
					}
					return fmt.Errorf("unknown genre %q", args[0])
				}
				if err := d.Setup.SetGenre(args[0], subGenre); err != nil {
					return err
				}
				fmt.Printf("Genre set to %s / %s\n", args[0], subGenre)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&subGenre, "subgenre", "", "Sub-genre")
	return cmd
}

func newSetStyleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "style <name>",
		Short: "Select the writing style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				if err := d.Setup.SetWritingStyle(args[0]); err != nil {
					return err
				}
				fmt.Printf("Writing style set to %s\n", args[0])
				return nil
			})
		},
	}
}

func newSetArchetypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archetypes <protagonist> [secondary]",
		Short: "Select the protagonist and optional secondary archetype",
		Long: "Select the protagonist and optional secondary archetype.\n\nKnown archetypes: " +
			archetypeList(),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				secondary := ""
				if len(args) == 2 {
					secondary = args[1]
				}
				if err := d.Setup.SetArchetypes(args[0], secondary); err != nil {
					return err
				}
				fmt.Printf("Archetypes set: protagonist %s", args[0])
				if secondary != "" {
					fmt.Printf(", secondary %s", secondary)
				}
				fmt.Println()
				return nil
			})
		},
	}
}

func archetypeList() string {
	names := make([]string, len(entities.Archetypes))
	for i, a := range entities.Archetypes {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

func newSelectPlotCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "select-plot <name>",
		Short: "Select a plot line produced by 'fable generate plot-lines'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				if err := d.Setup.SelectPlotLine(args[0], description); err != nil {
					return err
				}
				fmt.Printf("Plot line selected: %s\n", args[0])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "One-paragraph plot line description")
	return cmd
}
