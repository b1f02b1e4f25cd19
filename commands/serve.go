package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"mercari-scraper/server"
)

var servePort string

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default HTTP_PORT).")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--port p]",
	Short: "Serves POST /scrape, running one scrape per request.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx, cfg, logger)
		if err != nil {
			logger.Error("Failed to open store: %v", err)
			return err
		}
		defer store.Close()

		driver, err := newDriver(cfg, logger)
		if err != nil {
			return err
		}

		port := servePort
		if port == "" {
			port = cfg.HTTPPort
		}
		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           server.New(newPipeline(driver, store, nil), cfg.CORSOrigins, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("[server] Listening on %s", srv.Addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("[server] Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
