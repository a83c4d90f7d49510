package commands

import "context"

// Telemetry allows commands to emit structured events.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// Actor carries host supplied identity for audited commands.
type Actor struct {
	ActorID  string `json:"actor_id,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
	Channel  string `json:"channel,omitempty"`
}
