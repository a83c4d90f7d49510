package erp

import (
	"math"
	"strings"
)

// InventoryView owns a private copy of the inventory sample for one mount.
type InventoryView struct {
	items []InventoryItem
	query string
}

func newInventoryView(sample []InventoryItem) *InventoryView {
	return &InventoryView{items: cloneInventory(sample)}
}

// Query returns the current filter text.
func (v *InventoryView) Query() string { return v.query }

// SetQuery replaces the filter text.
func (v *InventoryView) SetQuery(query string) { v.query = query }

// Items returns every item regardless of the filter.
func (v *InventoryView) Items() []InventoryItem { return cloneInventory(v.items) }

// Visible returns items whose name or id contains the query, ignoring case.
func (v *InventoryView) Visible() []InventoryItem {
	needle := strings.ToLower(v.query)
	out := make([]InventoryItem, 0, len(v.items))
	for _, item := range v.items {
		if strings.Contains(strings.ToLower(item.Name), needle) || strings.Contains(strings.ToLower(item.ID), needle) {
			out = append(out, item)
		}
	}
	return out
}

// AdjustQuantity adds delta to the item's quantity, clamping at zero and
// saturating at math.MaxInt. Unknown ids are ignored; the return value reports
// whether an item matched.
func (v *InventoryView) AdjustQuantity(id string, delta int) bool {
	for i := range v.items {
		if v.items[i].ID != id {
			continue
		}
		v.items[i].Quantity = addQuantity(v.items[i].Quantity, delta)
		return true
	}
	return false
}

func addQuantity(qty, delta int) int {
	if delta > 0 && qty > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(0, qty+delta)
}
