package erp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-erpx/pkg/activity"
)

// Options configures the ERP Service. Every collaborator is an interface so hosts
// can swap implementations; nil values fall back to in-memory defaults.
type Options struct {
	Fixtures    *Fixtures
	Random      RandomSource
	Sessions    SessionStore
	Charts      ChartRenderer
	RefreshHook RefreshHook
	Telemetry   Telemetry
	Activity    ActivityEmitter
}

// Service owns the samples and routes every session operation.
type Service struct {
	opts         Options
	seeds        seeds
	quickActions []QuickAction
}

// NewService builds a Service. The inventory sample is generated here, once per
// Service, and every inventory mount starts from a copy of it.
func NewService(opts Options) *Service {
	if opts.Fixtures == nil {
		opts.Fixtures = DefaultFixtures()
	}
	if opts.Random == nil {
		opts.Random = NewRandomSource(0)
	}
	opts.Random = newLockedRandom(opts.Random)
	if opts.Sessions == nil {
		opts.Sessions = NewInMemorySessionStore(0)
	}
	if opts.Charts == nil {
		opts.Charts = NewSalesChart()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Activity == nil {
		opts.Activity = noopActivity{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	fixtures := opts.Fixtures.clone()
	return &Service{
		opts: opts,
		seeds: seeds{
			fixtures:  fixtures,
			inventory: GenerateInventory(fixtures.Inventory, opts.Random),
			rng:       opts.Random,
		},
		quickActions: buildQuickActions(fixtures.QuickActions),
	}
}

// InventorySample returns a copy of the generated inventory.
func (s *Service) InventorySample() []InventoryItem {
	return cloneInventory(s.seeds.inventory)
}

// QuickActions lists the inert quick actions.
func (s *Service) QuickActions() []QuickAction {
	return append([]QuickAction(nil), s.quickActions...)
}

// OpenSession starts a session on the dashboard and returns its id.
func (s *Service) OpenSession(ctx context.Context) (string, error) {
	store, err := s.sessionStore()
	if err != nil {
		return "", err
	}
	session := &Session{
		ID:    uuid.NewString(),
		Shell: ShellState{CurrentUser: s.seeds.fixtures.User},
		Mount: s.seeds.mount(ViewDashboard),
	}
	if err := store.Create(ctx, session); err != nil {
		return "", fmt.Errorf("erp: create session: %w", err)
	}
	s.opts.Telemetry.Record(ctx, "erp.session.open", map[string]any{
		"session": SessionTag(session.ID),
	})
	return session.ID, nil
}

// CloseSession discards a session.
func (s *Service) CloseSession(ctx context.Context, sessionID string) error {
	store, err := s.sessionStore()
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.opts.Telemetry.Record(ctx, "erp.session.close", map[string]any{
		"session": SessionTag(sessionID),
	})
	return nil
}

// NavigateResult reports which view is mounted after navigation.
type NavigateResult struct {
	View      View `json:"view"`
	Remounted bool `json:"remounted"`
}

// Navigate mounts the view for path. Re-entering the mounted view keeps its state.
func (s *Service) Navigate(ctx context.Context, sessionID, path string) (NavigateResult, error) {
	var result NavigateResult
	err := s.mutate(ctx, sessionID, "navigate", func(session *Session) (map[string]any, error) {
		remounted, err := session.navigate(path, s.seeds)
		if err != nil {
			return nil, err
		}
		result = NavigateResult{View: session.Mount.View, Remounted: remounted}
		if !remounted {
			return nil, errUnchanged
		}
		return map[string]any{"path": path}, nil
	})
	return result, err
}

// ToggleSidebar flips the sidebar and returns the new collapsed flag.
func (s *Service) ToggleSidebar(ctx context.Context, sessionID string) (bool, error) {
	var collapsed bool
	err := s.mutate(ctx, sessionID, "shell.toggle", func(session *Session) (map[string]any, error) {
		session.Shell.ToggleCollapsed()
		collapsed = session.Shell.SidebarCollapsed
		return map[string]any{"collapsed": collapsed}, nil
	})
	return collapsed, err
}

// OpenQuickActions shows the quick actions overlay.
func (s *Service) OpenQuickActions(ctx context.Context, sessionID string) error {
	return s.mutate(ctx, sessionID, "shell.quick_actions.open", func(session *Session) (map[string]any, error) {
		session.Shell.OpenQuickActions()
		return nil, nil
	})
}

// CloseQuickActions hides the quick actions overlay.
func (s *Service) CloseQuickActions(ctx context.Context, sessionID string) error {
	return s.mutate(ctx, sessionID, "shell.quick_actions.close", func(session *Session) (map[string]any, error) {
		session.Shell.CloseQuickActions()
		return nil, nil
	})
}

// Logout acknowledges a logout request without ending the session.
func (s *Service) Logout(ctx context.Context, sessionID string) (string, error) {
	var ack string
	err := s.mutate(ctx, sessionID, "shell.logout", func(session *Session) (map[string]any, error) {
		ack = session.Shell.Logout()
		s.emit(ctx, activityEvent(ctx, session, "logout", "session", SessionTag(session.ID), nil))
		return nil, errUnchanged
	})
	return ack, err
}

// SetInventoryQuery replaces the inventory filter. Repeating the current
// query publishes nothing.
func (s *Service) SetInventoryQuery(ctx context.Context, sessionID, query string) error {
	return s.mutate(ctx, sessionID, "inventory.query", func(session *Session) (map[string]any, error) {
		if err := session.Mount.require(ViewInventory); err != nil {
			return nil, err
		}
		if session.Mount.Inventory.Query() == query {
			return nil, errUnchanged
		}
		session.Mount.Inventory.SetQuery(query)
		return map[string]any{"query": query}, nil
	})
}

// AdjustQuantity changes an item's quantity on the mounted inventory view.
// Unknown ids are a silent no-op; the bool reports whether an item matched.
func (s *Service) AdjustQuantity(ctx context.Context, sessionID, itemID string, delta int) (bool, error) {
	var matched bool
	err := s.mutate(ctx, sessionID, "inventory.adjust", func(session *Session) (map[string]any, error) {
		if err := session.Mount.require(ViewInventory); err != nil {
			return nil, err
		}
		matched = session.Mount.Inventory.AdjustQuantity(itemID, delta)
		if !matched {
			return nil, errUnchanged
		}
		payload := map[string]any{"item": itemID, "delta": delta}
		s.emit(ctx, activityEvent(ctx, session, "adjust", "inventory_item", itemID, payload))
		return payload, nil
	})
	return matched, err
}

// CreateTestOrder prepends a pending order on the mounted sales view.
func (s *Service) CreateTestOrder(ctx context.Context, sessionID string) (SalesOrder, error) {
	var order SalesOrder
	err := s.mutate(ctx, sessionID, "sales.create_order", func(session *Session) (map[string]any, error) {
		if err := session.Mount.require(ViewSales); err != nil {
			return nil, err
		}
		order = session.Mount.Sales.CreateTestOrder()
		payload := map[string]any{"order": order.ID, "total": order.Total.String()}
		s.emit(ctx, activityEvent(ctx, session, "create", "sales_order", order.ID, payload))
		return payload, nil
	})
	return order, err
}

// SetTeamQuery replaces the HR name filter. Like SetInventoryQuery, a
// repeated query is a no-op.
func (s *Service) SetTeamQuery(ctx context.Context, sessionID, query string) error {
	return s.mutate(ctx, sessionID, "hr.query", func(session *Session) (map[string]any, error) {
		if err := session.Mount.require(ViewHR); err != nil {
			return nil, err
		}
		if session.Mount.HR.Query() == query {
			return nil, errUnchanged
		}
		session.Mount.HR.SetQuery(query)
		return map[string]any{"query": query}, nil
	})
}

// UpdateSettings applies company name and currency changes on the mounted settings view.
// An update without fields is a no-op.
func (s *Service) UpdateSettings(ctx context.Context, sessionID string, update SettingsUpdate) (CompanySettings, error) {
	var settings CompanySettings
	err := s.mutate(ctx, sessionID, "settings.update", func(session *Session) (map[string]any, error) {
		if err := session.Mount.require(ViewSettings); err != nil {
			return nil, err
		}
		if update.Name == nil && update.Currency == nil {
			settings = session.Mount.Settings.Settings()
			return nil, errUnchanged
		}
		if err := session.Mount.Settings.Update(update); err != nil {
			return nil, err
		}
		settings = session.Mount.Settings.Settings()
		payload := map[string]any{"name": settings.Name, "currency": string(settings.Currency)}
		s.emit(ctx, activityEvent(ctx, session, "update", "company_settings", "company", payload))
		return payload, nil
	})
	return settings, err
}

// Page builds the view model for the session's current state.
func (s *Service) Page(ctx context.Context, sessionID string, opts PageOptions) (Page, error) {
	store, err := s.sessionStore()
	if err != nil {
		return Page{}, err
	}
	var page Page
	started := time.Now()
	err = store.Do(ctx, sessionID, func(session *Session) error {
		page = s.buildPage(ctx, session, opts)
		return nil
	})
	if err != nil {
		return Page{}, err
	}
	s.opts.Telemetry.Record(ctx, "erp.page.render", map[string]any{
		"session":  page.SessionTag,
		"view":     page.View.Code(),
		"duration": time.Since(started),
	})
	return page, nil
}

// errUnchanged lets a mutation succeed without publishing a state event.
var errUnchanged = errors.New("erp: unchanged")

// mutate runs fn under the session lock, then records telemetry and publishes a
// state event unless fn reports errUnchanged.
func (s *Service) mutate(ctx context.Context, sessionID, reason string, fn func(*Session) (map[string]any, error)) error {
	store, err := s.sessionStore()
	if err != nil {
		return err
	}
	var (
		payload map[string]any
		event   StateEvent
		changed = true
	)
	err = store.Do(ctx, sessionID, func(session *Session) error {
		p, err := fn(session)
		if errors.Is(err, errUnchanged) {
			changed = false
		} else if err != nil {
			return err
		}
		payload = p
		event = StateEvent{
			Session: SessionTag(session.ID),
			View:    session.Mount.View.Code(),
			Reason:  reason,
		}
		return nil
	})
	if err != nil {
		s.opts.Telemetry.Record(ctx, "erp."+reason+".failed", map[string]any{
			"session": SessionTag(sessionID),
			"error":   err.Error(),
		})
		return err
	}
	if payload == nil {
		payload = map[string]any{}
	}
	payload["session"] = event.Session
	payload["view"] = event.View
	s.opts.Telemetry.Record(ctx, "erp."+reason, payload)
	if !changed {
		return nil
	}
	if err := s.opts.RefreshHook.StateChanged(ctx, event); err != nil {
		return fmt.Errorf("erp: publish %s: %w", reason, err)
	}
	return nil
}

func (s *Service) emit(ctx context.Context, evt activity.Event) {
	if err := s.opts.Activity.Emit(ctx, evt); err != nil {
		s.opts.Telemetry.Record(ctx, "erp.activity.failed", map[string]any{
			"verb":  evt.Verb,
			"error": err.Error(),
		})
	}
}

func (s *Service) sessionStore() (SessionStore, error) {
	if s == nil || s.opts.Sessions == nil {
		return nil, errMissingSessionStore
	}
	return s.opts.Sessions, nil
}
