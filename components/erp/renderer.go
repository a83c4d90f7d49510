package erp

import (
	"embed"
	"fmt"
	"io"
	"io/fs"

	template "github.com/goliatone/go-template"
)

// Renderer describes the template renderer contract needed by the controller.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

//go:embed templates
var builtinTemplates embed.FS

// Templates returns the shipped page and partials: erp.html plus partials/.
func Templates() fs.FS {
	sub, err := fs.Sub(builtinTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// TemplateOption customizes NewTemplateRenderer.
type TemplateOption func(*templateSource)

type templateSource struct {
	fsys fs.FS
}

// WithTemplateFS renders from fsys instead of the shipped templates. fsys is
// laid out like Templates().
func WithTemplateFS(fsys fs.FS) TemplateOption {
	return func(s *templateSource) {
		if fsys != nil {
			s.fsys = fsys
		}
	}
}

// NewTemplateRenderer builds the go-template renderer for the ERP page. It
// reads only from the given file system, so the working directory is irrelevant.
func NewTemplateRenderer(opts ...TemplateOption) (Renderer, error) {
	src := templateSource{fsys: Templates()}
	for _, opt := range opts {
		opt(&src)
	}
	if _, err := fs.Stat(src.fsys, DefaultPageTemplate+".html"); err != nil {
		return nil, fmt.Errorf("erp: page template: %w", err)
	}
	return template.NewRenderer(
		template.WithFS(src.fsys),
		template.WithExtension(".html"),
	)
}
