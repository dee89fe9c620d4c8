package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON HTTP API",
	Long: `Serve the journal over HTTP until interrupted.

Endpoints:
  GET    /api/health
  GET    /api/trades?window=
  POST   /api/trades
  GET    /api/trades/{id}
  PUT    /api/trades/{id}
  DELETE /api/trades/{id}
  GET    /api/stats?window=
  GET    /api/stats/daily?window=
  GET    /api/equity?window=&start=

Example:
  tradejournal serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr(),
		Log:             log,
		Journal:         j,
		StartingBalance: cfg.Journal.StartingBalance,
		DevMode:         cfg.Server.DevMode,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Start()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}
