package commands

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"
)

type sessionService interface {
	OpenSession(ctx context.Context) (string, error)
	CloseSession(ctx context.Context, sessionID string) error
}

// OpenSessionInput starts a session. SessionID, when set, receives the new id.
type OpenSessionInput struct {
	SessionID *string `json:"-"`
}

// OpenSessionCommand wraps Service.OpenSession.
type OpenSessionCommand struct {
	service   sessionService
	telemetry Telemetry
}

func NewOpenSessionCommand(service sessionService, telemetry Telemetry) *OpenSessionCommand {
	return &OpenSessionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[OpenSessionInput] = (*OpenSessionCommand)(nil)

func (c *OpenSessionCommand) Execute(ctx context.Context, msg OpenSessionInput) error {
	if c.service == nil {
		return errMissingService
	}
	if msg.SessionID == nil {
		return fmt.Errorf("%w: open session requires a result pointer", ErrInvalidInput)
	}
	id, err := c.service.OpenSession(ctx)
	if err != nil {
		return err
	}
	*msg.SessionID = id
	c.telemetry.Record(ctx, "erp.command.session.open", nil)
	return nil
}

// CloseSessionInput discards a session.
type CloseSessionInput struct {
	SessionID string `json:"session_id"`
}

// CloseSessionCommand wraps Service.CloseSession.
type CloseSessionCommand struct {
	service   sessionService
	telemetry Telemetry
}

func NewCloseSessionCommand(service sessionService, telemetry Telemetry) *CloseSessionCommand {
	return &CloseSessionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CloseSessionInput] = (*CloseSessionCommand)(nil)

func (c *CloseSessionCommand) Execute(ctx context.Context, msg CloseSessionInput) error {
	if err := requireSession(c.service, msg.SessionID); err != nil {
		return err
	}
	if err := c.service.CloseSession(ctx, msg.SessionID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "erp.command.session.close", nil)
	return nil
}
