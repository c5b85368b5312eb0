package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/banshee-data/minehint/internal/api"
	"github.com/banshee-data/minehint/internal/db"
	"github.com/banshee-data/minehint/internal/monitoring"
)

func serveCommand(ctx context.Context, args []string, stderr io.Writer) error {
	fs, flags := newFlagSet("serve", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := flags.resolve(fs)
	if err != nil {
		return err
	}

	var store *db.DB
	if path := cfg.GetDBPath(); path != "" {
		store, err = db.NewDB(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()
	}

	handler, err := api.NewServer(store, cfg.GetMaxCells()).Handler()
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:              cfg.GetListen(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serveUntilDone(ctx, server)
}

// serveUntilDone runs server until ctx is cancelled, then shuts it down.
func serveUntilDone(ctx context.Context, server *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		monitoring.Logf("listening on %s", server.Addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	monitoring.Logf("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("HTTP server shutdown error: %v", err)
		if err := server.Close(); err != nil {
			monitoring.Logf("HTTP server force close error: %v", err)
		}
	}
	monitoring.Logf("HTTP server stopped")
	return nil
}
