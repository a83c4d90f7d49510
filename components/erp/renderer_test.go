package erp

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestTemplateRendererIgnoresWorkingDirectory(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := NewTemplateRenderer(); err != nil {
		t.Fatalf("expected embedded templates to load outside the package dir: %v", err)
	}
}

func TestTemplateRendererUsesProvidedFS(t *testing.T) {
	fsys := fstest.MapFS{
		"erp.html":           {Data: []byte(`<h1>{{ title }}</h1>{% include "partials/foot.html" %}`)},
		"partials/foot.html": {Data: []byte(`<p>{{ title|lower }}</p>`)},
	}
	renderer, err := NewTemplateRenderer(WithTemplateFS(fsys))
	if err != nil {
		t.Fatalf("NewTemplateRenderer returned error: %v", err)
	}
	var out strings.Builder
	html, err := renderer.Render(DefaultPageTemplate, map[string]any{"title": "ERPX"}, &out)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	for _, want := range []string{"<h1>ERPX</h1>", "<p>erpx</p>"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in %q", want, html)
		}
	}
	if out.String() != html {
		t.Fatalf("expected writer to receive the rendered page")
	}
}

func TestTemplateRendererRequiresPageTemplate(t *testing.T) {
	fsys := fstest.MapFS{"partials/foot.html": {Data: []byte("x")}}
	if _, err := NewTemplateRenderer(WithTemplateFS(fsys)); err == nil {
		t.Fatalf("expected an error when erp.html is missing")
	}
}
