package commands

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"
)

type inventoryService interface {
	SetInventoryQuery(ctx context.Context, sessionID, query string) error
	AdjustQuantity(ctx context.Context, sessionID, itemID string, delta int) (bool, error)
}

// InventoryQueryInput replaces the inventory filter.
type InventoryQueryInput struct {
	SessionID string `json:"session_id"`
	Query     string `json:"q"`
}

// InventoryQueryCommand wraps Service.SetInventoryQuery.
type InventoryQueryCommand struct {
	service   inventoryService
	telemetry Telemetry
}

func NewInventoryQueryCommand(service inventoryService, telemetry Telemetry) *InventoryQueryCommand {
	return &InventoryQueryCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[InventoryQueryInput] = (*InventoryQueryCommand)(nil)

func (c *InventoryQueryCommand) Execute(ctx context.Context, msg InventoryQueryInput) error {
	if err := requireSession(c.service, msg.SessionID); err != nil {
		return err
	}
	if err := c.service.SetInventoryQuery(ctx, msg.SessionID, msg.Query); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "erp.command.inventory.query", map[string]any{"query": msg.Query})
	return nil
}

// AdjustQuantityInput changes one item's quantity. Matched, when set, reports
// whether the id was found.
type AdjustQuantityInput struct {
	SessionID string `json:"session_id"`
	ItemID    string `json:"id"`
	Delta     int    `json:"delta"`
	Actor     Actor  `json:"actor"`
	Matched   *bool  `json:"-"`
}

// AdjustQuantityCommand wraps Service.AdjustQuantity.
type AdjustQuantityCommand struct {
	service   inventoryService
	telemetry Telemetry
}

func NewAdjustQuantityCommand(service inventoryService, telemetry Telemetry) *AdjustQuantityCommand {
	return &AdjustQuantityCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AdjustQuantityInput] = (*AdjustQuantityCommand)(nil)

// Execute applies the delta. Unknown item ids succeed without changes.
func (c *AdjustQuantityCommand) Execute(ctx context.Context, msg AdjustQuantityInput) error {
	if err := requireSession(c.service, msg.SessionID); err != nil {
		return err
	}
	if msg.ItemID == "" {
		return fmt.Errorf("%w: adjust requires item id", ErrInvalidInput)
	}
	matched, err := c.service.AdjustQuantity(withActor(ctx, msg.Actor), msg.SessionID, msg.ItemID, msg.Delta)
	if err != nil {
		return err
	}
	if msg.Matched != nil {
		*msg.Matched = matched
	}
	c.telemetry.Record(ctx, "erp.command.inventory.adjust", map[string]any{
		"item":    msg.ItemID,
		"delta":   msg.Delta,
		"matched": matched,
	})
	return nil
}
