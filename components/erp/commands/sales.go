package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-erpx/components/erp"
)

type salesService interface {
	CreateTestOrder(ctx context.Context, sessionID string) (erp.SalesOrder, error)
}

// CreateOrderInput requests a pending test order. Order, when set, receives it.
type CreateOrderInput struct {
	SessionID string          `json:"session_id"`
	Actor     Actor           `json:"actor"`
	Order     *erp.SalesOrder `json:"-"`
}

// CreateOrderCommand wraps Service.CreateTestOrder.
type CreateOrderCommand struct {
	service   salesService
	telemetry Telemetry
}

func NewCreateOrderCommand(service salesService, telemetry Telemetry) *CreateOrderCommand {
	return &CreateOrderCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateOrderInput] = (*CreateOrderCommand)(nil)

func (c *CreateOrderCommand) Execute(ctx context.Context, msg CreateOrderInput) error {
	if err := requireSession(c.service, msg.SessionID); err != nil {
		return err
	}
	order, err := c.service.CreateTestOrder(withActor(ctx, msg.Actor), msg.SessionID)
	if err != nil {
		return err
	}
	if msg.Order != nil {
		*msg.Order = order
	}
	c.telemetry.Record(ctx, "erp.command.sales.create_order", map[string]any{"order": order.ID})
	return nil
}
