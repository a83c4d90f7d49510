package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-erpx/pkg/erpx"
)

type serveCmd struct {
	Addr     string `help:"HTML UI listen address (overrides ERPX_HTTP_ADDR)."`
	APIAddr  string `name:"api-addr" help:"JSON API and /metrics listen address (overrides ERPX_API_ADDR)."`
	BasePath string `name:"base-path" help:"Mount path of the HTML UI (overrides ERPX_BASE_PATH)."`
}

func (cmd *serveCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := g.config()
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.HTTP.Addr = cmd.Addr
	}
	if cmd.APIAddr != "" {
		cfg.HTTP.APIAddr = cmd.APIAddr
	}
	if cmd.BasePath != "" {
		cfg.HTTP.BasePath = cmd.BasePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app, err := g.app(cfg)
	if err != nil {
		return err
	}
	log := app.Logger

	server := router.NewFiberAdapter(func(*fiber.App) *fiber.App {
		return fiber.New(fiber.Config{
			AppName:               cfg.App.ServiceName,
			DisableStartupMessage: true,
		})
	})
	if err := erpx.RegisterRoutes[*fiber.App](app, server.Router()); err != nil {
		return err
	}

	errs := make(chan error, 2)
	go func() {
		log.Info(log.WithField(ctx, "addr", cfg.HTTP.Addr), "html ui listening")
		errs <- server.Serve(cfg.HTTP.Addr)
	}()

	var api *http.Server
	if cfg.HTTP.APIAddr != "" {
		api = &http.Server{
			Addr:              cfg.HTTP.APIAddr,
			Handler:           app.APIHandler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.Info(log.WithField(ctx, "addr", cfg.HTTP.APIAddr), "api listening")
			if err := api.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info(ctx, "shutting down")
	case err = <-errs:
		log.Error(ctx, "server stopped", err)
	}
	if api != nil {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		err = errors.Join(err, api.Shutdown(shutdownCtx))
	}
	return err
}
