package erp

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SalesView lists orders, newest first.
type SalesView struct {
	orders []SalesOrder
	seed   NewOrderSeed
	rng    RandomSource
}

func newSalesView(orders []SalesOrder, seed NewOrderSeed, rng RandomSource) *SalesView {
	return &SalesView{
		orders: append([]SalesOrder(nil), orders...),
		seed:   seed,
		rng:    rng,
	}
}

// Orders returns the current order list.
func (v *SalesView) Orders() []SalesOrder {
	return append([]SalesOrder(nil), v.orders...)
}

// CreateTestOrder prepends a pending order for the placeholder customer.
func (v *SalesView) CreateTestOrder() SalesOrder {
	order := SalesOrder{
		ID:       fmt.Sprintf("%s%d", v.seed.IDPrefix, v.seed.IDBase+len(v.orders)+1),
		Customer: v.seed.Customer,
		Total:    decimal.NewFromInt(int64(v.rng.IntN(v.seed.MaxTotal))),
		Status:   OrderPending,
	}
	v.orders = append([]SalesOrder{order}, v.orders...)
	return order
}
