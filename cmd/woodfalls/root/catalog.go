package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"woodfalls/internal/term"
)

func newCatalogCmd() *cobra.Command {
	var catalog string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the Pokédex and every species that can be spawned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalog)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, term.Heading(term.IconBall, "Pokédex"))
			for _, e := range cat.Entries() {
				fmt.Fprintf(out, "  %3d  %s\n", e.Number, e.Name)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, term.Heading(term.IconSparkle, "Species"))
			for _, name := range cat.SpeciesNames() {
				c, err := cat.Spawn(name)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, term.CreatureCard(c))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalog, "catalog", "", "species catalog YAML (default: built-in)")
	return cmd
}
