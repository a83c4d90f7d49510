package activity

import (
	"context"
	"errors"
	"testing"
)

type recordingHook struct {
	events []Event
}

func (h *recordingHook) Notify(_ context.Context, evt Event) error {
	h.events = append(h.events, evt)
	return nil
}

func TestEmitterDefaultsChannelAndEmits(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true})
	if !em.Enabled() {
		t.Fatalf("expected emitter enabled")
	}
	err := em.Emit(context.Background(), Event{
		Verb:       "create",
		ObjectType: "sales_order",
		ObjectID:   "SO-1003",
	})
	if err != nil {
		t.Fatalf("emit returned error: %v", err)
	}
	if len(hook.events) != 1 {
		t.Fatalf("expected event emitted, got %d", len(hook.events))
	}
	if hook.events[0].Channel != DefaultChannel {
		t.Fatalf("expected default channel %s, got %q", DefaultChannel, hook.events[0].Channel)
	}
}

func TestEmitterKeepsExplicitChannel(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true, Channel: "admin"})
	_ = em.Emit(context.Background(), Event{Verb: "update", ObjectType: "settings", ObjectID: "company", Channel: "tui"})
	if len(hook.events) != 1 || hook.events[0].Channel != "tui" {
		t.Fatalf("expected explicit channel to win, got %+v", hook.events)
	}
}

func TestEmitterDisabledWithoutHooks(t *testing.T) {
	em := NewEmitter(nil, Config{Enabled: true})
	if em.Enabled() {
		t.Fatalf("expected emitter disabled without hooks")
	}
	var nilEmitter *Emitter
	if err := nilEmitter.Emit(context.Background(), Event{Verb: "logout"}); err != nil {
		t.Fatalf("nil emitter should be a no-op, got %v", err)
	}
}

func TestEmitterDisabledByConfig(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{})
	_ = em.Emit(context.Background(), Event{Verb: "logout", ObjectType: "session", ObjectID: "abc"})
	if len(hook.events) != 0 {
		t.Fatalf("expected no events when disabled")
	}
}

func TestHooksJoinErrors(t *testing.T) {
	boom := errors.New("boom")
	hooks := Hooks{
		HookFunc(func(context.Context, Event) error { return boom }),
		&recordingHook{},
	}
	err := hooks.Notify(context.Background(), Event{Verb: "adjust", ObjectType: "inventory_item", ObjectID: "SKU-1000"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to wrap boom, got %v", err)
	}
	if rec := hooks[1].(*recordingHook); len(rec.events) != 1 {
		t.Fatalf("expected later hooks to still run")
	}
}
