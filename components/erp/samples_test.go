package erp

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInventoryFollowsSeed(t *testing.T) {
	seed := DefaultFixtures().Inventory
	rng := &sequenceRandom{ints: []int{5, 199}, floats: []float64{0.5, 0.99999}}
	items := GenerateInventory(seed, rng)
	require.Len(t, items, 12)

	assert.Equal(t, "SKU-1000", items[0].ID)
	assert.Equal(t, "SKU-1011", items[11].ID)
	assert.Equal(t, "Plain Widget 1", items[0].Name)
	assert.Equal(t, "Beta Plate 6", items[5].Name)
	assert.Equal(t, "Plain Widget 7", items[6].Name)
	assert.Equal(t, "A1", items[0].Location)
	assert.Equal(t, "A1", items[5].Location)
	assert.Equal(t, "E5", items[4].Location)

	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 199, items[1].Quantity)
	assert.Equal(t, "60.00", items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "120.00", items[1].UnitPrice.StringFixed(2))
}

func TestGenerateInventoryRanges(t *testing.T) {
	seed := DefaultFixtures().Inventory
	items := GenerateInventory(seed, newLockedRandom(NewRandomSource(42)))
	for _, it := range items {
		if it.Quantity < 0 || it.Quantity >= 200 {
			t.Fatalf("quantity out of range: %d", it.Quantity)
		}
		if it.UnitPrice.IsNegative() || it.UnitPrice.GreaterThan(decimal.NewFromInt(120)) {
			t.Fatalf("price out of range: %s", it.UnitPrice)
		}
		if !it.UnitPrice.Equal(it.UnitPrice.Round(2)) {
			t.Fatalf("price must have two decimals: %s", it.UnitPrice)
		}
	}
}

func TestGenerateInventoryEmptySeed(t *testing.T) {
	assert.Nil(t, GenerateInventory(InventorySeed{}, nil))
}
