package root

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"woodfalls/internal/session"
	"woodfalls/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		addr    string
		catalog string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over a websocket, plus the Pokédex as text and PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalog)
			if err != nil {
				return err
			}

			srv := &web.Server{
				Catalog: cat,
				Store:   session.NewMemoryStore[*session.Progress](),
			}
			hs := &http.Server{Addr: addr, Handler: srv.Routes()}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = hs.Shutdown(shutdownCtx)
			}()

			log.Println("listening on", addr)
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&catalog, "catalog", "", "species catalog YAML (default: built-in)")
	return cmd
}
