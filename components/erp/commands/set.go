package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-erpx/components/erp"
)

// Service is everything the command set needs from the ERP service.
type Service interface {
	sessionService
	navigateService
	shellService
	inventoryService
	salesService
	teamService
	settingsService
}

// Set bundles one commander per session action so transports share them.
type Set struct {
	Open           gocommand.Commander[OpenSessionInput]
	Close          gocommand.Commander[CloseSessionInput]
	Navigate       gocommand.Commander[NavigateInput]
	ToggleSidebar  gocommand.Commander[ToggleSidebarInput]
	QuickActions   gocommand.Commander[QuickActionsInput]
	Logout         gocommand.Commander[LogoutInput]
	InventoryQuery gocommand.Commander[InventoryQueryInput]
	Adjust         gocommand.Commander[AdjustQuantityInput]
	CreateOrder    gocommand.Commander[CreateOrderInput]
	TeamQuery      gocommand.Commander[TeamQueryInput]
	UpdateSettings gocommand.Commander[UpdateSettingsInput]
}

// NewSet wires every command against the service.
func NewSet(service Service, telemetry Telemetry) Set {
	return Set{
		Open:           NewOpenSessionCommand(service, telemetry),
		Close:          NewCloseSessionCommand(service, telemetry),
		Navigate:       NewNavigateCommand(service, telemetry),
		ToggleSidebar:  NewToggleSidebarCommand(service, telemetry),
		QuickActions:   NewQuickActionsCommand(service, telemetry),
		Logout:         NewLogoutCommand(service, telemetry),
		InventoryQuery: NewInventoryQueryCommand(service, telemetry),
		Adjust:         NewAdjustQuantityCommand(service, telemetry),
		CreateOrder:    NewCreateOrderCommand(service, telemetry),
		TeamQuery:      NewTeamQueryCommand(service, telemetry),
		UpdateSettings: NewUpdateSettingsCommand(service, telemetry),
	}
}

var _ Service = (*erp.Service)(nil)

// OpenSession runs the open command and returns the new id.
func (s Set) OpenSession(ctx context.Context) (string, error) {
	var id string
	if err := s.Open.Execute(ctx, OpenSessionInput{SessionID: &id}); err != nil {
		return "", err
	}
	return id, nil
}
