package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"woodfalls/internal/dex"
	"woodfalls/internal/term"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "woodfalls",
	Short:         "Wood Falls, a creature-collecting adventure",
	Long:          "Wood Falls starts a creature-collecting adventure in the terminal or serves it over a websocket.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newPlayCmd(),
		newServeCmd(),
		newCatalogCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, term.Bad.Render(term.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

// loadCatalog reads a catalog file, or returns the built-in one when path is empty.
func loadCatalog(path string) (*dex.Catalog, error) {
	if path == "" {
		return dex.Default(), nil
	}
	return dex.LoadCatalog(path)
}
