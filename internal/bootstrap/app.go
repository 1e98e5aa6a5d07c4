package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/pollution"
	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/infra/config"
)

// App encapsulates the HTTP server lifecycle and the model refresh loop.
type App struct {
	cfg          *config.Config
	logger       *slog.Logger
	server       *http.Server
	pollutionSvc pollution.Service
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, pollutionSvc pollution.Service) *App {
	return &App{
		cfg:          cfg,
		logger:       logger.With("component", "bootstrap"),
		server:       server,
		pollutionSvc: pollutionSvc,
	}
}

// Run builds the initial pollution model, starts the refresh loop and the
// HTTP server, then blocks until shutdown. A failed initial build is logged
// but does not stop the server: requests answer model_unavailable until a
// refresh succeeds.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.pollutionSvc.Refresh(ctx); err != nil {
		a.logger.Error("initial pollution model build failed, serving without a model until a refresh succeeds", "error", err)
	}
	if a.cfg.AirQuality.RefreshInterval > 0 {
		go a.refreshLoop(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.AirQuality.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.pollutionSvc.Refresh(ctx); err != nil {
				a.logger.Error("scheduled model refresh failed, previous model keeps serving", "error", err)
			}
		}
	}
}
