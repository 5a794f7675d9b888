package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mkraev/aeroticket/api"
	"github.com/mkraev/aeroticket/config"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, services api.Services) error {
	sessionTTL := time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute
	router := api.NewRouter(services, sessionTTL, cfg.HTTP.SwaggerDir)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
