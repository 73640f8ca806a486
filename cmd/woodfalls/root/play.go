package root

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"woodfalls/internal/dex"
	"woodfalls/internal/game"
	"woodfalls/internal/session"
	"woodfalls/internal/term"
)

func newPlayCmd() *cobra.Command {
	var (
		delay   time.Duration
		tui     bool
		catalog string
		pdfPath string
		train   int
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start a new game in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if train < 0 {
				return fmt.Errorf("--train must not be negative, got %d", train)
			}
			cat, err := loadCatalog(catalog)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			opts := []term.Option{term.WithDelay(delay)}
			if tui {
				opts = append(opts, term.WithPicker())
			}
			p := term.NewPresenter(cmd.InOrStdin(), cmd.OutOrStdout(), opts...)
			progress := session.New()
			ctrl := game.NewController(cat, progress, p)

			if err := ctrl.StartGame(ctx); err != nil {
				return err
			}
			for i := 0; i < train; i++ {
				if err := ctrl.LevelUp(ctx, 0); err != nil {
					return err
				}
			}
			if err := ctrl.ShowPokedex(ctx); err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), cat, progress)

			if pdfPath != "" {
				return writeDexPDF(cat, progress, pdfPath)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", term.DefaultDelay, "pause between revealed characters")
	cmd.Flags().BoolVar(&tui, "tui", false, "pick options with an interactive list")
	cmd.Flags().StringVar(&catalog, "catalog", "", "species catalog YAML (default: built-in)")
	cmd.Flags().StringVar(&pdfPath, "dex-pdf", "", "write the Pokédex to this PDF file when the game ends")
	cmd.Flags().IntVar(&train, "train", 0, "level up the starter this many times after the rival's challenge")
	return cmd
}

// printSummary lists the species met so far and the party.
func printSummary(w io.Writer, cat *dex.Catalog, p *session.Progress) {
	fmt.Fprintln(w, term.Heading(term.IconBall, "Your journey"))
	for _, r := range dex.Rows(cat, p) {
		if r.Discovery != dex.Unknown {
			fmt.Fprintln(w, "  "+term.DiscoveryText(r))
		}
	}
	for _, c := range p.Party() {
		fmt.Fprintln(w, term.CreatureCard(c))
	}
}

func writeDexPDF(cat *dex.Catalog, p *session.Progress, path string) error {
	b, err := dex.ExportPDF(cat, p, p.Party(), "Wood Falls")
	if err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
