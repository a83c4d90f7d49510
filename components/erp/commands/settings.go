package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-erpx/components/erp"
)

type settingsService interface {
	UpdateSettings(ctx context.Context, sessionID string, update erp.SettingsUpdate) (erp.CompanySettings, error)
}

// UpdateSettingsInput carries optional name and currency changes.
type UpdateSettingsInput struct {
	SessionID string               `json:"session_id"`
	Name      *string              `json:"name,omitempty"`
	Currency  *string              `json:"currency,omitempty"`
	Actor     Actor                `json:"actor"`
	Result    *erp.CompanySettings `json:"-"`
}

// UpdateSettingsCommand wraps Service.UpdateSettings.
type UpdateSettingsCommand struct {
	service   settingsService
	telemetry Telemetry
}

// NewUpdateSettingsCommand creates the command.
func NewUpdateSettingsCommand(service settingsService, telemetry Telemetry) *UpdateSettingsCommand {
	return &UpdateSettingsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateSettingsInput] = (*UpdateSettingsCommand)(nil)

// Execute applies the update. An unknown currency leaves the settings untouched.
func (c *UpdateSettingsCommand) Execute(ctx context.Context, msg UpdateSettingsInput) error {
	if err := requireSession(c.service, msg.SessionID); err != nil {
		return err
	}
	settings, err := c.service.UpdateSettings(withActor(ctx, msg.Actor), msg.SessionID, erp.SettingsUpdate{
		Name:     msg.Name,
		Currency: msg.Currency,
	})
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = settings
	}
	c.telemetry.Record(ctx, "erp.command.settings.update", map[string]any{
		"currency": string(settings.Currency),
	})
	return nil
}
