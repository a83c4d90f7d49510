package goadmin

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/goliatone/go-erpx/components/erp"
	activitypkg "github.com/goliatone/go-erpx/pkg/activity"
	erpxpkg "github.com/goliatone/go-erpx/pkg/erpx"
)

// MenuBuilder ensures ERP entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures ERP link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the ERP service and feature flags into an admin shell.
type Config struct {
	EnableERP   bool
	MenuCode    string
	MenuBuilder MenuBuilder
	Service     *erpxpkg.Service
	// BasePath prefixes the routes of the seeded menu items.
	BasePath string
	// Locale selects the menu labels.
	Locale         string
	PositionOffset int
	ActivityHooks  activitypkg.Hooks
	ActivityConfig activitypkg.Config
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg     Config
	emitter *activitypkg.Emitter
}

// New creates an Admin helper that can seed ERP menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableERP && cfg.Service == nil {
		return nil, errors.New("goadmin: erp service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.BasePath == "" {
		cfg.BasePath = "/erp"
	}
	return &Admin{
		cfg:     cfg,
		emitter: activitypkg.NewEmitter(cfg.ActivityHooks, cfg.ActivityConfig),
	}, nil
}

// ERP exposes the configured service when enabled.
func (a *Admin) ERP() *erpxpkg.Service {
	if !a.cfg.EnableERP {
		return nil
	}
	return a.cfg.Service
}

// Activity returns the emitter built from the activity hooks. Pass it as
// erp.Options.Activity so host hooks receive session audit events.
func (a *Admin) Activity() *activitypkg.Emitter {
	return a.emitter
}

// MenuItems lists one entry per ERP view in sidebar order.
func (a *Admin) MenuItems() []MenuItem {
	views := erp.Views()
	items := make([]MenuItem, 0, len(views))
	for i, view := range views {
		items = append(items, MenuItem{
			Label:    view.Label(a.cfg.Locale),
			Route:    path.Join(a.cfg.BasePath, view.Path()),
			Icon:     view.Icon(),
			Position: a.cfg.PositionOffset + i,
		})
	}
	return items
}

// Bootstrap seeds menu entries when ERP support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableERP || a.cfg.MenuBuilder == nil {
		return nil
	}
	var errs []error
	for _, item := range a.MenuItems() {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			errs = append(errs, fmt.Errorf("goadmin: ensure %s: %w", item.Label, err))
		}
	}
	return errors.Join(errs...)
}
