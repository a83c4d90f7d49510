package erp

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []InventoryItem {
	return []InventoryItem{
		item("SKU-1000", "Plain Widget 1", 10, "1.50"),
		item("SKU-1001", "Super Bolt 2", 0, "12.00"),
		item("SKU-1002", "Nut Max 3", 5, "3.25"),
		item("SKU-1003", "Gizmo Pro 4", 7, "99.99"),
	}
}

func TestInventoryFilterMatchesNameOrID(t *testing.T) {
	view := newInventoryView(sampleItems())

	view.SetQuery("GIZMO")
	visible := view.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "SKU-1003", visible[0].ID)

	view.SetQuery("sku-100")
	assert.Len(t, view.Visible(), 4)

	view.SetQuery("1002")
	visible = view.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Nut Max 3", visible[0].Name)

	view.SetQuery("")
	assert.Len(t, view.Visible(), 4)

	view.SetQuery("nothing here")
	assert.Empty(t, view.Visible())
}

func TestInventoryFilterDoesNotMutate(t *testing.T) {
	view := newInventoryView(sampleItems())
	view.SetQuery("bolt")
	_ = view.Visible()
	view.SetQuery("")
	assert.Equal(t, sampleItems(), view.Items())
}

func TestInventoryMountCopiesSample(t *testing.T) {
	sample := sampleItems()
	view := newInventoryView(sample)
	view.AdjustQuantity("SKU-1000", 5)
	assert.Equal(t, 10, sample[0].Quantity, "sample must not be mutated by a mount")
}

func TestAdjustQuantityClampsAtZero(t *testing.T) {
	view := newInventoryView(sampleItems())
	require.True(t, view.AdjustQuantity("SKU-1002", -10))
	assert.Equal(t, 0, view.Items()[2].Quantity)
	require.True(t, view.AdjustQuantity("SKU-1002", 1))
	assert.Equal(t, 1, view.Items()[2].Quantity)
}

func TestAdjustQuantitySaturatesOnOverflow(t *testing.T) {
	view := newInventoryView(sampleItems())
	require.True(t, view.AdjustQuantity("SKU-1000", math.MaxInt))
	assert.Equal(t, math.MaxInt, view.Items()[0].Quantity)

	view = newInventoryView(sampleItems())
	view.AdjustQuantity("SKU-1000", math.MaxInt-5)
	view.AdjustQuantity("SKU-1000", 1)
	assert.Equal(t, math.MaxInt, view.Items()[0].Quantity)

	view.AdjustQuantity("SKU-1000", math.MinInt)
	assert.Equal(t, 0, view.Items()[0].Quantity)
}

func TestInventoryFilterIsIdempotent(t *testing.T) {
	for _, query := range []string{"", "gizmo", "GiZmO", "sku-100", "Sku-1002", "t", "nothing here"} {
		first := newInventoryView(sampleItems())
		first.SetQuery(query)
		once := first.Visible()

		second := newInventoryView(once)
		second.SetQuery(query)
		assert.Equal(t, once, second.Visible(), "query %q", query)
	}
}

func TestAdjustQuantityUnknownIDIsNoOp(t *testing.T) {
	view := newInventoryView(sampleItems())
	assert.False(t, view.AdjustQuantity("SKU-9999", 3))
	assert.Equal(t, sampleItems(), view.Items())
}

func TestAdjustQuantityNeverNegativeForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for run := 0; run < 50; run++ {
		view := newInventoryView(sampleItems())
		for step := 0; step < 40; step++ {
			id := sampleItems()[rng.IntN(4)].ID
			view.AdjustQuantity(id, rng.IntN(21)-10)
			for _, it := range view.Items() {
				if it.Quantity < 0 {
					t.Fatalf("run %d step %d: negative quantity %d for %s", run, step, it.Quantity, it.ID)
				}
			}
		}
	}
}
