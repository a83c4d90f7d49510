package erp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultPageTemplate is the template rendered for every view.
const DefaultPageTemplate = "erp"

// PageSource resolves the page view model for a session.
type PageSource interface {
	Page(ctx context.Context, sessionID string, opts PageOptions) (Page, error)
}

// ControllerOptions wires the controller collaborators.
type ControllerOptions struct {
	Pages    PageSource
	Renderer Renderer
	Template string
	// BasePath prefixes every link and form action in the rendered HTML.
	BasePath string
}

// Controller renders session pages for HTTP transports.
type Controller struct {
	pages    PageSource
	renderer Renderer
	template string
	basePath string
}

// NewController builds a controller, defaulting the template name.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = DefaultPageTemplate
	}
	return &Controller{
		pages:    opts.Pages,
		renderer: opts.Renderer,
		template: opts.Template,
		basePath: strings.TrimSuffix(opts.BasePath, "/"),
	}
}

// PagePayload returns the page as a JSON-friendly struct.
func (c *Controller) PagePayload(ctx context.Context, sessionID string, opts PageOptions) (Page, error) {
	if c.pages == nil {
		return Page{}, errors.New("erp: controller page source not configured")
	}
	return c.pages.Page(ctx, sessionID, opts)
}

// RenderTemplate writes the HTML page for the session.
func (c *Controller) RenderTemplate(ctx context.Context, sessionID string, opts PageOptions, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("erp: controller renderer not configured")
	}
	page, err := c.PagePayload(ctx, sessionID, opts)
	if err != nil {
		return err
	}
	if _, err := c.renderer.Render(c.template, map[string]any{
		"page": page.TemplateData(),
		"base": c.basePath,
	}, out); err != nil {
		return fmt.Errorf("erp: render %s: %w", c.template, err)
	}
	return nil
}
