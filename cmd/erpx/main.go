package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-erpx/components/erp"
	"github.com/goliatone/go-erpx/components/erp/tui"
	"github.com/goliatone/go-erpx/pkg/config"
	"github.com/goliatone/go-erpx/pkg/erpx"
	"github.com/goliatone/go-erpx/pkg/logger"
)

type cli struct {
	Globals

	Serve    serveCmd    `cmd:"" help:"Serve the HTML UI, the JSON API and metrics."`
	TUI      tuiCmd      `cmd:"" name:"tui" help:"Run the terminal UI against an in-process session."`
	Snapshot snapshotCmd `cmd:"" help:"Print one page as YAML."`
	Fixtures fixturesCmd `cmd:"" help:"Work with sample fixtures."`
}

// Globals override the ERPX_* environment for every command.
type Globals struct {
	LogLevel     string `name:"log-level" help:"Log level (trace, debug, info, warn, error)."`
	LogFormat    string `name:"log-format" help:"Log output format (json or console)."`
	FixturesPath string `name:"fixtures" type:"path" help:"Path to a fixtures YAML document."`
	Seed         uint64 `help:"Seed for the sample generator (0 uses the clock)."`
	Locale       string `help:"Locale for labels and number formatting."`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var c cli
	kctx := kong.Parse(&c,
		kong.Name("erpx"),
		kong.Description("Demo ERP front end: web UI, JSON API and terminal UI."),
		kong.UsageOnError(),
		kong.Bind(&c.Globals),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}

// config loads the environment and applies flag overrides.
func (g *Globals) config() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.App.LogLevel = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.App.LogFormat = g.LogFormat
	}
	if g.FixturesPath != "" {
		cfg.Fixtures.Path = g.FixturesPath
	}
	if g.Seed != 0 {
		cfg.Fixtures.Seed = g.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *Globals) app(cfg *config.Config, opts ...erpx.Option) (*erpx.App, error) {
	app, err := erpx.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("erpx: build app: %w", err)
	}
	return app, nil
}

type tuiCmd struct{}

func (cmd *tuiCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := g.config()
	if err != nil {
		return err
	}
	// The terminal owns stdout while the program runs.
	app, err := g.app(cfg, erpx.WithLogger(logger.Nop()))
	if err != nil {
		return err
	}
	return tui.Run(ctx, tui.Options{
		Commands: app.Commands,
		Pages:    app.Service,
		Locale:   g.Locale,
	})
}

type snapshotCmd struct {
	Path  string `default:"/" help:"View path to render (/, /inventory, /sales, /hr, /settings)."`
	Query string `help:"Filter applied on the inventory or hr view."`

	out io.Writer
}

func (cmd *snapshotCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := g.config()
	if err != nil {
		return err
	}
	app, err := g.app(cfg, erpx.WithLogger(logger.Nop()))
	if err != nil {
		return err
	}
	page, err := app.Snapshot(ctx, cmd.Path, cmd.Query, g.Locale)
	if err != nil {
		return err
	}
	return writePageYAML(cmd.writer(), page)
}

func (cmd *snapshotCmd) writer() io.Writer {
	if cmd.out != nil {
		return cmd.out
	}
	return os.Stdout
}

// writePageYAML encodes the page with its JSON field names.
func writePageYAML(w io.Writer, page erp.Page) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("erpx: encode page: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("erpx: encode page: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("erpx: encode page: %w", err)
	}
	return enc.Close()
}

type fixturesCmd struct {
	Export fixturesExportCmd `cmd:"" help:"Write the embedded default fixtures."`
}

type fixturesExportCmd struct {
	Out       string `type:"path" help:"Destination file (stdout when empty)."`
	Overwrite bool   `help:"Replace an existing file."`
}

func (cmd *fixturesExportCmd) Run() error {
	doc := erp.DefaultFixtures()
	if cmd.Out == "" {
		return erp.WriteFixtures(os.Stdout, doc)
	}
	if !cmd.Overwrite {
		if _, err := os.Stat(cmd.Out); err == nil {
			return fmt.Errorf("erpx: %s already exists (use --overwrite to replace)", cmd.Out)
		}
	}
	if err := os.MkdirAll(filepath.Dir(cmd.Out), 0o755); err != nil {
		return fmt.Errorf("erpx: create fixtures dir: %w", err)
	}
	f, err := os.Create(cmd.Out)
	if err != nil {
		return fmt.Errorf("erpx: create fixtures file: %w", err)
	}
	if err := erp.WriteFixtures(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote fixtures to %s\n", cmd.Out)
	return nil
}
