// Package erpx assembles the ERP demo from configuration so hosts and the CLI
// share one wiring.
package erpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	router "github.com/goliatone/go-router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-erpx/components/erp"
	"github.com/goliatone/go-erpx/components/erp/commands"
	"github.com/goliatone/go-erpx/components/erp/gorouter"
	"github.com/goliatone/go-erpx/components/erp/httpapi"
	"github.com/goliatone/go-erpx/components/erp/queries"
	"github.com/goliatone/go-erpx/pkg/activity"
	"github.com/goliatone/go-erpx/pkg/config"
	"github.com/goliatone/go-erpx/pkg/logger"
	"github.com/goliatone/go-erpx/pkg/metrics"
)

// Service exposes the underlying components/erp.Service type.
type Service = erp.Service

// Options re-export for convenience.
type Options = erp.Options

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return erp.NewService(opts)
}

// Option customizes App construction.
type Option func(*App)

// WithLogger replaces the logger built from config.
func WithLogger(l *logger.Logger) Option {
	return func(a *App) { a.Logger = l }
}

// WithRegistry sets the prometheus registry metrics register on.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *App) { a.Registry = reg }
}

// WithActivityHooks adds hooks that receive audit events.
func WithActivityHooks(hooks ...activity.Hook) Option {
	return func(a *App) { a.hooks = append(a.hooks, hooks...) }
}

// WithRenderer replaces the embedded template renderer.
func WithRenderer(r erp.Renderer) Option {
	return func(a *App) { a.renderer = r }
}

// WithRandom replaces the seeded random source.
func WithRandom(src erp.RandomSource) Option {
	return func(a *App) { a.random = src }
}

// App holds the service and every collaborator the transports need.
type App struct {
	Config     *config.Config
	Logger     *logger.Logger
	Registry   *prometheus.Registry
	Metrics    *metrics.ERPMetrics
	Activity   *activity.Emitter
	Broadcast  *erp.BroadcastHook
	Validator  *erp.JSONSchemaValidator
	Service    *erp.Service
	Commands   commands.Set
	Pages      *queries.PageQuery
	Controller *erp.Controller

	hooks    activity.Hooks
	renderer erp.Renderer
	random   erp.RandomSource
}

// New builds an App from cfg.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("erpx: config is required")
	}
	app := &App{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.Logger == nil {
		app.Logger = logger.New(logger.Options{
			ServiceName: cfg.App.ServiceName,
			Level:       logger.ParseLevel(cfg.App.LogLevel),
			Format:      cfg.App.LogFormat,
			WarnStack:   cfg.App.LogWarnStack,
		})
	}
	if app.Registry == nil {
		app.Registry = prometheus.NewRegistry()
	}

	fixtures := erp.DefaultFixtures()
	if cfg.Fixtures.Path != "" {
		loaded, err := erp.LoadFixtures(cfg.Fixtures.Path)
		if err != nil {
			return nil, err
		}
		fixtures = loaded
	}
	if app.random == nil {
		app.random = erp.NewRandomSource(cfg.Fixtures.Seed)
	}
	if app.renderer == nil {
		var tmplOpts []erp.TemplateOption
		if cfg.HTTP.TemplatesDir != "" {
			tmplOpts = append(tmplOpts, erp.WithTemplateFS(os.DirFS(cfg.HTTP.TemplatesDir)))
		}
		renderer, err := erp.NewTemplateRenderer(tmplOpts...)
		if err != nil {
			return nil, fmt.Errorf("erpx: template renderer: %w", err)
		}
		app.renderer = renderer
	}

	app.Metrics = metrics.NewERPMetrics(app.Registry)
	telemetry := erp.MultiTelemetry{app.Logger, app.Metrics}
	app.Activity = activity.NewEmitter(app.hooks, activity.Config{
		Enabled: cfg.Activity.Enabled,
		Channel: cfg.Activity.Channel,
	})
	app.Broadcast = erp.NewBroadcastHook()
	app.Validator = erp.NewJSONSchemaValidator()
	app.Service = erp.NewService(erp.Options{
		Fixtures: fixtures,
		Random:   app.random,
		Sessions: erp.NewInMemorySessionStore(cfg.Session.TTL),
		Charts: erp.NewSalesChart(
			erp.WithChartTheme(cfg.Chart.Theme),
			erp.WithChartCache(erp.NewChartCache(cfg.Chart.CacheTTL)),
		),
		RefreshHook: app.Broadcast,
		Telemetry:   telemetry,
		Activity:    app.Activity,
	})
	app.Commands = commands.NewSet(app.Service, telemetry)
	app.Pages = queries.NewPageQuery(app.Service)
	app.Controller = erp.NewController(erp.ControllerOptions{
		Pages:    app.Service,
		Renderer: app.renderer,
		BasePath: cfg.HTTP.BasePath,
	})
	return app, nil
}

// RegisterRoutes mounts the HTML UI on r under the configured base path.
func RegisterRoutes[T any](app *App, r router.Router[T]) error {
	if app == nil {
		return errors.New("erpx: app is required")
	}
	return gorouter.Register(gorouter.Config[T]{
		Router:     r,
		Controller: app.Controller,
		Commands:   app.Commands,
		Broadcast:  app.Broadcast,
		Validator:  app.Validator,
		BasePath:   app.Config.HTTP.BasePath,
	})
}

// APIHandler serves the JSON API plus /metrics.
func (a *App) APIHandler() http.Handler {
	api := &httpapi.Handlers{
		Commands:  a.Commands,
		Pages:     a.Pages,
		Validator: a.Validator,
		Broadcast: a.Broadcast,
		OnError: func(r *http.Request, err error) {
			a.Logger.Error(r.Context(), "api request failed", err)
		},
	}
	mux := http.NewServeMux()
	api.Routes(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
	return mux
}

// Snapshot opens a throwaway session, navigates to path, applies query on
// filterable views and returns the resulting page.
func (a *App) Snapshot(ctx context.Context, path, query, locale string) (erp.Page, error) {
	sid, err := a.Commands.OpenSession(ctx)
	if err != nil {
		return erp.Page{}, err
	}
	defer func() {
		_ = a.Commands.Close.Execute(context.WithoutCancel(ctx), commands.CloseSessionInput{SessionID: sid})
	}()
	if path != "" {
		if err := a.Commands.Navigate.Execute(ctx, commands.NavigateInput{SessionID: sid, Path: path}); err != nil {
			return erp.Page{}, err
		}
	}
	if query != "" {
		view, _ := erp.ParseView(path)
		switch view {
		case erp.ViewInventory:
			err = a.Commands.InventoryQuery.Execute(ctx, commands.InventoryQueryInput{SessionID: sid, Query: query})
		case erp.ViewHR:
			err = a.Commands.TeamQuery.Execute(ctx, commands.TeamQueryInput{SessionID: sid, Query: query})
		default:
			err = fmt.Errorf("%w: query applies to inventory and hr only", commands.ErrInvalidInput)
		}
		if err != nil {
			return erp.Page{}, err
		}
	}
	return a.Pages.Query(ctx, queries.PageInput{SessionID: sid, Locale: locale})
}
