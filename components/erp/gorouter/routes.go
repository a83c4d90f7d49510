package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-erpx/components/erp"
	"github.com/goliatone/go-erpx/components/erp/commands"
	"github.com/goliatone/go-erpx/components/erp/httpapi"
)

// SessionResolver extracts the session id from a request. An empty result
// opens a new session.
type SessionResolver func(router.Context, url.Values) string

// Config wires go-router with the ERP controller, commands, and hooks.
type Config[T any] struct {
	Router          router.Router[T]
	Controller      *erp.Controller
	Commands        commands.Set
	Broadcast       *erp.BroadcastHook
	Validator       erp.PayloadValidator
	SessionResolver SessionResolver
	BasePath        string
	Routes          RouteConfig
}

// RouteConfig customizes the relative paths of the non-view endpoints.
type RouteConfig struct {
	Page              string
	ToggleSidebar     string
	QuickActionsOpen  string
	QuickActionsClose string
	Logout            string
	AdjustQuantity    string
	CreateOrder       string
	Settings          string
	WebSocket         string
}

// Register mounts the ERP pages, form actions and event socket on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	if cfg.Commands.Open == nil || cfg.Commands.Navigate == nil {
		return errors.New("gorouter: commands are required")
	}
	h := &handlers[T]{
		cfg:       cfg,
		routes:    defaultRouteConfig(cfg.Routes),
		validator: erp.NormalizeValidator(cfg.Validator),
		resolve:   cfg.SessionResolver,
	}
	if h.resolve == nil {
		h.resolve = defaultSessionResolver
	}
	base := cfg.BasePath
	if base == "" {
		base = "/erp"
	}
	group := cfg.Router.Group(base)

	for _, view := range erp.Views() {
		group.Get(view.Path(), router.WrapHandler(h.viewHandler(view)))
	}
	group.Get(h.routes.Page, router.WrapHandler(h.pagePayload))

	group.Post(h.routes.ToggleSidebar, router.WrapHandler(h.action("", func(ctx context.Context, sid string, _ url.Values) (string, error) {
		return "", cfg.Commands.ToggleSidebar.Execute(ctx, commands.ToggleSidebarInput{SessionID: sid})
	})))
	group.Post(h.routes.QuickActionsOpen, router.WrapHandler(h.action("", func(ctx context.Context, sid string, _ url.Values) (string, error) {
		return "", cfg.Commands.QuickActions.Execute(ctx, commands.QuickActionsInput{SessionID: sid, Open: true})
	})))
	group.Post(h.routes.QuickActionsClose, router.WrapHandler(h.action("", func(ctx context.Context, sid string, _ url.Values) (string, error) {
		return "", cfg.Commands.QuickActions.Execute(ctx, commands.QuickActionsInput{SessionID: sid})
	})))
	group.Post(h.routes.Logout, router.WrapHandler(h.action("", func(ctx context.Context, sid string, _ url.Values) (string, error) {
		var ack string
		err := cfg.Commands.Logout.Execute(ctx, commands.LogoutInput{SessionID: sid, Acknowledgement: &ack})
		return ack, err
	})))
	group.Post(h.routes.AdjustQuantity, router.WrapHandler(h.action(erp.ViewInventory.Path(), func(ctx context.Context, sid string, form url.Values) (string, error) {
		payload, err := adjustPayload(form)
		if err != nil {
			return "", err
		}
		if err := h.validate(erp.ActionInventoryAdjust, payload); err != nil {
			return "", err
		}
		return "", cfg.Commands.Adjust.Execute(ctx, commands.AdjustQuantityInput{
			SessionID: sid,
			ItemID:    form.Get("id"),
			Delta:     payload["delta"].(int),
		})
	})))
	group.Post(h.routes.CreateOrder, router.WrapHandler(h.action(erp.ViewSales.Path(), func(ctx context.Context, sid string, _ url.Values) (string, error) {
		return "", cfg.Commands.CreateOrder.Execute(ctx, commands.CreateOrderInput{SessionID: sid})
	})))
	group.Post(h.routes.Settings, router.WrapHandler(h.action(erp.ViewSettings.Path(), func(ctx context.Context, sid string, form url.Values) (string, error) {
		input := commands.UpdateSettingsInput{SessionID: sid}
		payload := map[string]any{}
		if form.Has("name") {
			name := form.Get("name")
			input.Name = &name
			payload["name"] = name
		}
		if form.Has("currency") {
			currency := form.Get("currency")
			input.Currency = &currency
			payload["currency"] = currency
		}
		if err := h.validate(erp.ActionSettingsUpdate, payload); err != nil {
			return "", err
		}
		return "", cfg.Commands.UpdateSettings.Execute(ctx, input)
	})))

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, h.routes.WebSocket)
	}
	return nil
}

type handlers[T any] struct {
	cfg       Config[T]
	routes    RouteConfig
	validator erp.PayloadValidator
	resolve   SessionResolver
}

// viewHandler navigates the session to view and renders it. Inventory and HR
// apply the q filter when the search form submits it.
func (h *handlers[T]) viewHandler(view erp.View) func(router.Context) error {
	return func(ctx router.Context) error {
		form := requestValues(ctx)
		sid, err := h.withSession(ctx, form, func(sid string) error {
			return h.navigate(ctx.Context(), sid, view.Path())
		})
		if err != nil {
			return respondError(ctx, err)
		}
		if form.Get("filter") != "" {
			q := form.Get("q")
			switch view {
			case erp.ViewInventory:
				err = h.cfg.Commands.InventoryQuery.Execute(ctx.Context(), commands.InventoryQueryInput{SessionID: sid, Query: q})
			case erp.ViewHR:
				err = h.cfg.Commands.TeamQuery.Execute(ctx.Context(), commands.TeamQueryInput{SessionID: sid, Query: q})
			}
			if err != nil {
				return respondError(ctx, err)
			}
		}
		return h.render(ctx, sid, "")
	}
}

// action runs fn for a form post and re-renders the page. When view is set the
// session is navigated there first so the action targets a mounted view.
func (h *handlers[T]) action(view string, fn func(context.Context, string, url.Values) (string, error)) func(router.Context) error {
	return func(ctx router.Context) error {
		form := requestValues(ctx)
		var notice string
		sid, err := h.withSession(ctx, form, func(sid string) error {
			if view != "" {
				if err := h.navigate(ctx.Context(), sid, view); err != nil {
					return err
				}
			}
			var err error
			notice, err = fn(ctx.Context(), sid, form)
			return err
		})
		if err != nil {
			return respondError(ctx, err)
		}
		return h.render(ctx, sid, notice)
	}
}

func (h *handlers[T]) pagePayload(ctx router.Context) error {
	var page erp.Page
	_, err := h.withSession(ctx, requestValues(ctx), func(sid string) error {
		var err error
		page, err = h.cfg.Controller.PagePayload(ctx.Context(), sid, erp.PageOptions{Locale: inferLocale(ctx)})
		return err
	})
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, page)
}

func (h *handlers[T]) render(ctx router.Context, sid, notice string) error {
	var buf bytes.Buffer
	opts := erp.PageOptions{Locale: inferLocale(ctx), Notice: notice}
	if err := h.cfg.Controller.RenderTemplate(ctx.Context(), sid, opts, &buf); err != nil {
		return respondError(ctx, err)
	}
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send(buf.Bytes())
}

// withSession runs fn against the resolved session. A missing or expired
// session is replaced by a new one and fn runs again against it.
func (h *handlers[T]) withSession(ctx router.Context, form url.Values, fn func(sid string) error) (string, error) {
	sid := h.resolve(ctx, form)
	if sid != "" {
		err := fn(sid)
		if !errors.Is(err, erp.ErrUnknownSession) {
			return sid, err
		}
	}
	sid, err := h.cfg.Commands.OpenSession(ctx.Context())
	if err != nil {
		return "", err
	}
	return sid, fn(sid)
}

func (h *handlers[T]) navigate(ctx context.Context, sid, path string) error {
	return h.cfg.Commands.Navigate.Execute(ctx, commands.NavigateInput{SessionID: sid, Path: path})
}

func (h *handlers[T]) validate(action string, payload map[string]any) error {
	if err := h.validator.Validate(action, payload); err != nil {
		return badRequest(err)
	}
	return nil
}

func registerWebSocket[T any](r router.Router[T], hook *erp.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		// Events carry session tags only; pages filter for their own tag.
		events, cancel := hook.Subscribe("")
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultSessionResolver(ctx router.Context, form url.Values) string {
	if sid := strings.TrimSpace(form.Get("sid")); sid != "" {
		return sid
	}
	if sid := strings.TrimSpace(ctx.Header(httpapi.SessionHeader)); sid != "" {
		return sid
	}
	if sid, ok := ctx.Locals("session_id").(string); ok {
		return sid
	}
	return ""
}

// requestValues merges query values with a form or JSON body.
func requestValues(ctx router.Context) url.Values {
	values := url.Values{}
	for _, key := range []string{"sid", "q", "filter", "locale"} {
		if v := ctx.Query(key); v != "" {
			values.Set(key, v)
		}
	}
	body, err := decodeBody(ctx.Body(), ctx.Header("Content-Type"))
	if err != nil {
		return values
	}
	for key, vals := range body {
		values[key] = vals
	}
	return values
}

func decodeBody(body []byte, contentType string) (url.Values, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return url.Values{}, nil
	}
	if strings.HasPrefix(strings.ToLower(contentType), "application/json") {
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, err
		}
		values := url.Values{}
		for key, v := range payload {
			switch t := v.(type) {
			case string:
				values.Set(key, t)
			case float64:
				values.Set(key, strconv.FormatFloat(t, 'f', -1, 64))
			case bool:
				values.Set(key, strconv.FormatBool(t))
			}
		}
		return values, nil
	}
	return url.ParseQuery(string(body))
}

func adjustPayload(form url.Values) (map[string]any, error) {
	delta, err := strconv.Atoi(strings.TrimSpace(form.Get("delta")))
	if err != nil {
		return nil, badRequest(errors.New("delta must be an integer"))
	}
	return map[string]any{"id": form.Get("id"), "delta": delta}, nil
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Param("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	return httpapi.ParseAcceptLanguage(ctx.Header("Accept-Language"))
}

type badRequestError struct{ err error }

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error { return &badRequestError{err: err} }

func statusFor(err error) int {
	var bad *badRequestError
	if errors.As(err, &bad) {
		return http.StatusBadRequest
	}
	return httpapi.StatusFor(err)
}

func respondError(ctx router.Context, err error) error {
	return ctx.JSON(statusFor(err), map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Page == "" {
		routes.Page = "/_page"
	}
	if routes.ToggleSidebar == "" {
		routes.ToggleSidebar = "/_shell/toggle"
	}
	if routes.QuickActionsOpen == "" {
		routes.QuickActionsOpen = "/_shell/quick-actions/open"
	}
	if routes.QuickActionsClose == "" {
		routes.QuickActionsClose = "/_shell/quick-actions/close"
	}
	if routes.Logout == "" {
		routes.Logout = "/_shell/logout"
	}
	if routes.AdjustQuantity == "" {
		routes.AdjustQuantity = "/inventory/adjust"
	}
	if routes.CreateOrder == "" {
		routes.CreateOrder = "/sales/orders"
	}
	if routes.Settings == "" {
		routes.Settings = "/settings"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/_events"
	}
	return routes
}
