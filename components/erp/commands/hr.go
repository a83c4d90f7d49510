package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"
)

type teamService interface {
	SetTeamQuery(ctx context.Context, sessionID, query string) error
}

// TeamQueryInput replaces the HR name filter.
type TeamQueryInput struct {
	SessionID string `json:"session_id"`
	Query     string `json:"q"`
}

// TeamQueryCommand wraps Service.SetTeamQuery.
type TeamQueryCommand struct {
	service   teamService
	telemetry Telemetry
}

func NewTeamQueryCommand(service teamService, telemetry Telemetry) *TeamQueryCommand {
	return &TeamQueryCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[TeamQueryInput] = (*TeamQueryCommand)(nil)

func (c *TeamQueryCommand) Execute(ctx context.Context, msg TeamQueryInput) error {
	if err := requireSession(c.service, msg.SessionID); err != nil {
		return err
	}
	if err := c.service.SetTeamQuery(ctx, msg.SessionID, msg.Query); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "erp.command.hr.query", map[string]any{"query": msg.Query})
	return nil
}
