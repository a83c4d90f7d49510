package erp

import (
	"context"
	"maps"

	"github.com/goliatone/go-erpx/pkg/activity"
)

// ActivityEmitter receives audit events for session actions.
type ActivityEmitter interface {
	Emit(ctx context.Context, evt activity.Event) error
}

// ActivityContext captures actor/tenant identifiers supplied by a host application.
type ActivityContext struct {
	ActorID  string
	TenantID string
	Channel  string
}

type activityContextKey struct{}

// ContextWithActivity stores activity context on the provided context.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, activityContextKey{}, meta)
}

func activityContextFrom(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	if meta, ok := ctx.Value(activityContextKey{}).(ActivityContext); ok {
		return meta
	}
	return ActivityContext{}
}

// activityEvent fills identity fields from the session user and the context.
func activityEvent(ctx context.Context, session *Session, verb, objectType, objectID string, metadata map[string]any) activity.Event {
	meta := activityContextFrom(ctx)
	actor := meta.ActorID
	if actor == "" {
		actor = session.Shell.CurrentUser.ID
	}
	data := maps.Clone(metadata)
	if data == nil {
		data = map[string]any{}
	}
	data["session"] = SessionTag(session.ID)
	data["view"] = session.Mount.View.Code()
	return activity.Event{
		Verb:           verb,
		ActorID:        actor,
		UserID:         session.Shell.CurrentUser.ID,
		TenantID:       meta.TenantID,
		ObjectType:     objectType,
		ObjectID:       objectID,
		Channel:        meta.Channel,
		DefinitionCode: objectType + ":" + verb,
		Metadata:       data,
	}
}

type noopActivity struct{}

func (noopActivity) Emit(context.Context, activity.Event) error { return nil }
