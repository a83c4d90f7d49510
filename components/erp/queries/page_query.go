package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-erpx/components/erp"
)

// PageInput identifies the session and presentation options for a render.
type PageInput struct {
	SessionID string
	Locale    string
	Notice    string
}

type pageService interface {
	Page(ctx context.Context, sessionID string, opts erp.PageOptions) (erp.Page, error)
}

// PageQuery resolves the current page view model without mutating the session.
type PageQuery struct {
	service pageService
}

// NewPageQuery builds the query.
func NewPageQuery(service pageService) *PageQuery {
	return &PageQuery{service: service}
}

var _ gocommand.Querier[PageInput, erp.Page] = (*PageQuery)(nil)

// Query builds the page for the session.
func (q *PageQuery) Query(ctx context.Context, input PageInput) (erp.Page, error) {
	return q.service.Page(ctx, input.SessionID, erp.PageOptions{Locale: input.Locale, Notice: input.Notice})
}
