package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-erpx/components/erp"
	"github.com/goliatone/go-erpx/components/erp/commands"
	"github.com/goliatone/go-erpx/components/erp/queries"
)

// SessionHeader carries the session id on API requests.
const SessionHeader = "X-Erpx-Session"

// Handlers exposes the JSON API backed by shared commands.
type Handlers struct {
	Commands  commands.Set
	Pages     gocommand.Querier[queries.PageInput, erp.Page]
	Validator erp.PayloadValidator
	Broadcast *erp.BroadcastHook
	// OnError observes 500 responses.
	OnError func(r *http.Request, err error)
}

// Routes mounts every endpoint on mux under /api.
func (h *Handlers) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", h.HandleOpenSession)
	mux.HandleFunc("GET /api/page", h.HandlePage)
	mux.HandleFunc("POST /api/navigate", h.HandleNavigate)
	mux.HandleFunc("POST /api/shell/toggle", h.HandleToggleSidebar)
	mux.HandleFunc("POST /api/shell/quick-actions", h.HandleQuickActions)
	mux.HandleFunc("POST /api/shell/logout", h.HandleLogout)
	mux.HandleFunc("POST /api/inventory/query", h.HandleInventoryQuery)
	mux.HandleFunc("POST /api/inventory/adjust", h.HandleAdjustQuantity)
	mux.HandleFunc("POST /api/sales/orders", h.HandleCreateOrder)
	mux.HandleFunc("POST /api/hr/query", h.HandleTeamQuery)
	mux.HandleFunc("POST /api/settings", h.HandleUpdateSettings)
	if h.Broadcast != nil {
		mux.HandleFunc("GET /api/events", h.Broadcast.ServeSSE)
		mux.HandleFunc("GET /api/ws", h.Broadcast.ServeWebSocket)
	}
}

// Handler returns a mux with every route mounted.
func (h *Handlers) Handler() http.Handler {
	mux := http.NewServeMux()
	h.Routes(mux)
	return mux
}

// ActionResponse is the body of every successful action.
type ActionResponse struct {
	Result any      `json:"result,omitempty"`
	Page   erp.Page `json:"page"`
}

func (h *Handlers) HandleOpenSession(w http.ResponseWriter, r *http.Request) {
	id, err := h.Commands.OpenSession(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r, nil)
	if path := r.URL.Query().Get("path"); path != "" {
		if err := h.validate(erp.ActionNavigate, map[string]any{"path": path}); err != nil {
			h.fail(w, r, err)
			return
		}
		if err := h.Commands.Navigate.Execute(r.Context(), commands.NavigateInput{SessionID: sid, Path: path}); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	h.respond(w, r, sid, nil, "")
}

func (h *Handlers) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r, erp.ActionNavigate)
	if !ok {
		return
	}
	sid := sessionID(r, payload)
	var result erp.NavigateResult
	path, _ := payload["path"].(string)
	if err := h.Commands.Navigate.Execute(r.Context(), commands.NavigateInput{SessionID: sid, Path: path, Result: &result}); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, sid, result, "")
}

func (h *Handlers) HandleToggleSidebar(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r, "")
	if !ok {
		return
	}
	sid := sessionID(r, payload)
	var collapsed bool
	if err := h.Commands.ToggleSidebar.Execute(r.Context(), commands.ToggleSidebarInput{SessionID: sid, Collapsed: &collapsed}); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, sid, map[string]bool{"collapsed": collapsed}, "")
}

func (h *Handlers) HandleQuickActions(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r, erp.ActionQuickActions)
	if !ok {
		return
	}
	sid := sessionID(r, payload)
	open, _ := payload["open"].(bool)
	if err := h.Commands.QuickActions.Execute(r.Context(), commands.QuickActionsInput{SessionID: sid, Open: open}); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, sid, nil, "")
}

func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r, "")
	if !ok {
		return
	}
	sid := sessionID(r, payload)
	var ack string
	if err := h.Commands.Logout.Execute(r.Context(), commands.LogoutInput{SessionID: sid, Actor: actor(r), Acknowledgement: &ack}); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, sid, map[string]string{"message": ack}, ack)
}

func (h *Handlers) HandleInventoryQuery(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r, erp.ActionInventoryQuery)
	if !ok {
		return
	}
	sid := sessionID(r, payload)
	q, _ := payload["q"].(string)
	if err := h.Commands.InventoryQuery.Execute(r.Context(), commands.InventoryQueryInput{SessionID: sid, Query: q}); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, sid, nil, "")
}

func (h *Handlers) HandleAdjustQuantity(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r, erp.ActionInventoryAdjust)
	if !ok {
		return
	}
	sid := sessionID(r, payload)
	id, _ := payload["id"].(string)
	delta, _ := payload["delta"].(float64)
	var matched bool
	input := commands.AdjustQuantityInput{SessionID: sid, ItemID: id, Delta: int(delta), Actor: actor(r), Matched: &matched}
	if err := h.Commands.Adjust.Execute(r.Context(), input); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, sid, map[string]bool{"matched": matched}, "")
}

func (h *Handlers) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r, "")
	if !ok {
		return
	}
	sid := sessionID(r, payload)
	var order erp.SalesOrder
	if err := h.Commands.CreateOrder.Execute(r.Context(), commands.CreateOrderInput{SessionID: sid, Actor: actor(r), Order: &order}); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respondStatus(w, r, http.StatusCreated, sid, order, "")
}

func (h *Handlers) HandleTeamQuery(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r, erp.ActionTeamQuery)
	if !ok {
		return
	}
	sid := sessionID(r, payload)
	q, _ := payload["q"].(string)
	if err := h.Commands.TeamQuery.Execute(r.Context(), commands.TeamQueryInput{SessionID: sid, Query: q}); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, sid, nil, "")
}

func (h *Handlers) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r, erp.ActionSettingsUpdate)
	if !ok {
		return
	}
	sid := sessionID(r, payload)
	input := commands.UpdateSettingsInput{SessionID: sid, Actor: actor(r)}
	if name, ok := payload["name"].(string); ok {
		input.Name = &name
	}
	if currency, ok := payload["currency"].(string); ok {
		input.Currency = &currency
	}
	var settings erp.CompanySettings
	input.Result = &settings
	if err := h.Commands.UpdateSettings.Execute(r.Context(), input); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, sid, settings, "")
}

// decode reads an optional JSON object body and validates it for action.
// The session_id key is stripped before validation.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, action string) (map[string]any, bool) {
	payload := map[string]any{}
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return nil, false
		}
	}
	sid, hasSID := payload["session_id"]
	delete(payload, "session_id")
	if action != "" {
		if err := h.validate(action, payload); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return nil, false
		}
	}
	if hasSID {
		payload["session_id"] = sid
	}
	return payload, true
}

func (h *Handlers) validate(action string, payload map[string]any) error {
	if err := erp.NormalizeValidator(h.Validator).Validate(action, payload); err != nil {
		return &badRequestError{err: err}
	}
	return nil
}

func (h *Handlers) respond(w http.ResponseWriter, r *http.Request, sid string, result any, notice string) {
	h.respondStatus(w, r, http.StatusOK, sid, result, notice)
}

func (h *Handlers) respondStatus(w http.ResponseWriter, r *http.Request, status int, sid string, result any, notice string) {
	if h.Pages == nil {
		h.fail(w, r, errors.New("httpapi: page query not configured"))
		return
	}
	page, err := h.Pages.Query(r.Context(), queries.PageInput{
		SessionID: sid,
		Locale:    locale(r),
		Notice:    notice,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, status, ActionResponse{Result: result, Page: page})
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError && h.OnError != nil {
		h.OnError(r, err)
	}
	writeError(w, status, err)
}

type badRequestError struct{ err error }

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

// StatusFor maps service errors onto HTTP status codes.
func StatusFor(err error) int {
	var bad *badRequestError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.Is(err, erp.ErrUnknownSession), errors.Is(err, erp.ErrUnknownView):
		return http.StatusNotFound
	case errors.Is(err, erp.ErrViewNotMounted):
		return http.StatusConflict
	case errors.Is(err, erp.ErrUnknownCurrency):
		return http.StatusBadRequest
	case errors.Is(err, commands.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func sessionID(r *http.Request, payload map[string]any) string {
	if sid := strings.TrimSpace(r.Header.Get(SessionHeader)); sid != "" {
		return sid
	}
	if sid, ok := payload["session_id"].(string); ok && sid != "" {
		return sid
	}
	return r.URL.Query().Get("sid")
}

func actor(r *http.Request) commands.Actor {
	return commands.Actor{
		ActorID:  r.Header.Get("X-Actor-Id"),
		TenantID: r.Header.Get("X-Tenant-Id"),
	}
}

func locale(r *http.Request) string {
	if l := strings.TrimSpace(r.URL.Query().Get("locale")); l != "" {
		return strings.ToLower(l)
	}
	return ParseAcceptLanguage(r.Header.Get("Accept-Language"))
}

// ParseAcceptLanguage returns the first language tag of an Accept-Language header.
func ParseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" && token != "*" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
