package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-erpx/components/erp"
)

// NavigateInput requests a view change. Result, when set, receives the mounted view.
type NavigateInput struct {
	SessionID string              `json:"session_id"`
	Path      string              `json:"path"`
	Result    *erp.NavigateResult `json:"-"`
}

type navigateService interface {
	Navigate(ctx context.Context, sessionID, path string) (erp.NavigateResult, error)
}

// NavigateCommand wraps Service.Navigate.
type NavigateCommand struct {
	service   navigateService
	telemetry Telemetry
}

// NewNavigateCommand creates the command.
func NewNavigateCommand(service navigateService, telemetry Telemetry) *NavigateCommand {
	return &NavigateCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[NavigateInput] = (*NavigateCommand)(nil)

// Execute mounts the requested view.
func (c *NavigateCommand) Execute(ctx context.Context, msg NavigateInput) error {
	if err := requireSession(c.service, msg.SessionID); err != nil {
		return err
	}
	res, err := c.service.Navigate(ctx, msg.SessionID, msg.Path)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = res
	}
	c.telemetry.Record(ctx, "erp.command.navigate", map[string]any{
		"path":      msg.Path,
		"remounted": res.Remounted,
	})
	return nil
}
