package erp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"testing"
)

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", r.err
}

func TestControllerRenderTemplate(t *testing.T) {
	svc := newTestService(Options{})
	id, err := svc.OpenSession(context.Background())
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}
	renderer := &stubRenderer{}
	controller := NewController(ControllerOptions{
		Pages:    svc,
		Renderer: renderer,
		BasePath: "/erp/",
	})

	var buf bytes.Buffer
	if err := controller.RenderTemplate(context.Background(), id, PageOptions{}, &buf); err != nil {
		t.Fatalf("RenderTemplate returned error: %v", err)
	}
	if renderer.lastTemplate != DefaultPageTemplate {
		t.Fatalf("expected %s template, got %s", DefaultPageTemplate, renderer.lastTemplate)
	}
	if renderer.lastPayload["base"] != "/erp" {
		t.Fatalf("expected trimmed base path, got %v", renderer.lastPayload["base"])
	}
	page, ok := renderer.lastPayload["page"].(map[string]any)
	if !ok {
		t.Fatalf("expected page data map")
	}
	if page["view"] != "dashboard" || page["session_id"] != id {
		t.Fatalf("unexpected page data: %v", page)
	}
	if _, ok := page["dashboard"]; !ok {
		t.Fatalf("expected dashboard section")
	}
	if buf.Len() == 0 {
		t.Fatalf("expected rendered output")
	}
}

func TestControllerPropagatesErrors(t *testing.T) {
	svc := newTestService(Options{})
	controller := NewController(ControllerOptions{Pages: svc, Renderer: &stubRenderer{}})
	err := controller.RenderTemplate(context.Background(), "missing", PageOptions{}, io.Discard)
	if !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}

	id, _ := svc.OpenSession(context.Background())
	controller = NewController(ControllerOptions{Pages: svc, Renderer: &stubRenderer{err: errors.New("bad template")}})
	if err := controller.RenderTemplate(context.Background(), id, PageOptions{}, io.Discard); err == nil {
		t.Fatalf("expected render error")
	}

	if err := NewController(ControllerOptions{}).RenderTemplate(context.Background(), id, PageOptions{}, io.Discard); err == nil {
		t.Fatalf("expected error without renderer")
	}
}

func TestEmbeddedTemplatesPresent(t *testing.T) {
	for _, name := range []string{
		"erp.html",
		"partials/dashboard.html",
		"partials/inventory.html",
		"partials/sales.html",
		"partials/hr.html",
		"partials/settings.html",
		"partials/quick_actions.html",
	} {
		if _, err := fs.ReadFile(Templates(), name); err != nil {
			t.Fatalf("expected %s to be embedded: %v", name, err)
		}
	}
}
