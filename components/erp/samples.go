package erp

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GenerateInventory builds the sample inventory from the seed. Quantities fall in
// [0, MaxQuantity) and prices in [0, MaxPrice) rounded to cents.
func GenerateInventory(seed InventorySeed, rng RandomSource) []InventoryItem {
	if seed.Count <= 0 || len(seed.Names) == 0 || len(seed.Locations) == 0 {
		return nil
	}
	if rng == nil {
		rng = NewRandomSource(0)
	}
	items := make([]InventoryItem, seed.Count)
	for i := range items {
		price := seed.MaxPrice.Mul(decimal.NewFromFloat(rng.Float64())).Round(2)
		items[i] = InventoryItem{
			ID:        fmt.Sprintf("%s%d", seed.SKUPrefix, seed.SKUBase+i),
			Name:      fmt.Sprintf("%s %d", seed.Names[i%len(seed.Names)], i+1),
			Quantity:  rng.IntN(seed.MaxQuantity),
			UnitPrice: price,
			Location:  seed.Locations[i%len(seed.Locations)],
		}
	}
	return items
}

func cloneInventory(items []InventoryItem) []InventoryItem {
	return append([]InventoryItem(nil), items...)
}
