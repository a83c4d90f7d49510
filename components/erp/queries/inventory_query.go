package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-erpx/components/erp"
)

type sampleService interface {
	InventorySample() []erp.InventoryItem
}

// InventorySampleQuery returns the process-wide generated inventory.
type InventorySampleQuery struct {
	service sampleService
}

func NewInventorySampleQuery(service sampleService) *InventorySampleQuery {
	return &InventorySampleQuery{service: service}
}

var _ gocommand.Querier[struct{}, []erp.InventoryItem] = (*InventorySampleQuery)(nil)

func (q *InventorySampleQuery) Query(context.Context, struct{}) ([]erp.InventoryItem, error) {
	return q.service.InventorySample(), nil
}
