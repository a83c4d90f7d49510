package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-erpx/components/erp"
)

type shellService interface {
	ToggleSidebar(ctx context.Context, sessionID string) (bool, error)
	OpenQuickActions(ctx context.Context, sessionID string) error
	CloseQuickActions(ctx context.Context, sessionID string) error
	Logout(ctx context.Context, sessionID string) (string, error)
}

// ToggleSidebarInput flips the sidebar. Collapsed, when set, receives the new flag.
type ToggleSidebarInput struct {
	SessionID string `json:"session_id"`
	Collapsed *bool  `json:"-"`
}

// ToggleSidebarCommand wraps Service.ToggleSidebar.
type ToggleSidebarCommand struct {
	service   shellService
	telemetry Telemetry
}

func NewToggleSidebarCommand(service shellService, telemetry Telemetry) *ToggleSidebarCommand {
	return &ToggleSidebarCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleSidebarInput] = (*ToggleSidebarCommand)(nil)

func (c *ToggleSidebarCommand) Execute(ctx context.Context, msg ToggleSidebarInput) error {
	if err := requireSession(c.service, msg.SessionID); err != nil {
		return err
	}
	collapsed, err := c.service.ToggleSidebar(ctx, msg.SessionID)
	if err != nil {
		return err
	}
	if msg.Collapsed != nil {
		*msg.Collapsed = collapsed
	}
	c.telemetry.Record(ctx, "erp.command.shell.toggle", map[string]any{"collapsed": collapsed})
	return nil
}

// QuickActionsInput shows or hides the quick actions overlay.
type QuickActionsInput struct {
	SessionID string `json:"session_id"`
	Open      bool   `json:"open"`
}

// QuickActionsCommand opens or closes the overlay.
type QuickActionsCommand struct {
	service   shellService
	telemetry Telemetry
}

func NewQuickActionsCommand(service shellService, telemetry Telemetry) *QuickActionsCommand {
	return &QuickActionsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[QuickActionsInput] = (*QuickActionsCommand)(nil)

func (c *QuickActionsCommand) Execute(ctx context.Context, msg QuickActionsInput) error {
	if err := requireSession(c.service, msg.SessionID); err != nil {
		return err
	}
	var err error
	if msg.Open {
		err = c.service.OpenQuickActions(ctx, msg.SessionID)
	} else {
		err = c.service.CloseQuickActions(ctx, msg.SessionID)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "erp.command.shell.quick_actions", map[string]any{"open": msg.Open})
	return nil
}

// LogoutInput requests the demo logout. Acknowledgement, when set, receives the notice.
type LogoutInput struct {
	SessionID       string  `json:"session_id"`
	Actor           Actor   `json:"actor"`
	Acknowledgement *string `json:"-"`
}

// LogoutCommand wraps Service.Logout.
type LogoutCommand struct {
	service   shellService
	telemetry Telemetry
}

func NewLogoutCommand(service shellService, telemetry Telemetry) *LogoutCommand {
	return &LogoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LogoutInput] = (*LogoutCommand)(nil)

func (c *LogoutCommand) Execute(ctx context.Context, msg LogoutInput) error {
	if err := requireSession(c.service, msg.SessionID); err != nil {
		return err
	}
	ack, err := c.service.Logout(withActor(ctx, msg.Actor), msg.SessionID)
	if err != nil {
		return err
	}
	if msg.Acknowledgement != nil {
		*msg.Acknowledgement = ack
	}
	c.telemetry.Record(ctx, "erp.command.shell.logout", nil)
	return nil
}

func withActor(ctx context.Context, actor Actor) context.Context {
	if actor == (Actor{}) {
		return ctx
	}
	return erp.ContextWithActivity(ctx, erp.ActivityContext{
		ActorID:  actor.ActorID,
		TenantID: actor.TenantID,
		Channel:  actor.Channel,
	})
}
