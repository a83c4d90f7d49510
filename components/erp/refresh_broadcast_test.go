package erp

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestBroadcastHookFiltersBySession(t *testing.T) {
	defer goleak.VerifyNone(t)

	hook := NewBroadcastHook()
	mine, cancelMine := hook.Subscribe("aaa")
	defer cancelMine()
	all, cancelAll := hook.Subscribe("")
	defer cancelAll()

	if err := hook.StateChanged(context.Background(), StateEvent{Session: "bbb", View: "sales", Reason: "navigate"}); err != nil {
		t.Fatalf("StateChanged returned error: %v", err)
	}
	select {
	case e := <-mine:
		t.Fatalf("unexpected event for other session: %+v", e)
	default:
	}
	select {
	case e := <-all:
		if e.Session != "bbb" {
			t.Fatalf("expected bbb, got %s", e.Session)
		}
	default:
		t.Fatalf("expected unfiltered subscriber to receive event")
	}
}

func TestBroadcastHookCancelClosesChannel(t *testing.T) {
	defer goleak.VerifyNone(t)

	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe("")
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	if hook.Subscribers() != 0 {
		t.Fatalf("expected no subscribers, got %d", hook.Subscribers())
	}
}

func TestBroadcastHookDropsWhenSubscriberIsFull(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe("")
	defer cancel()
	for i := 0; i < 32; i++ {
		if err := hook.StateChanged(context.Background(), StateEvent{Reason: "shell.toggle"}); err != nil {
			t.Fatalf("StateChanged returned error: %v", err)
		}
	}
}

func TestBroadcastHookServeSSE(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeSSE))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"?session=abc", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hook.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	_ = hook.StateChanged(context.Background(), StateEvent{Session: "other", Reason: "skip"})
	_ = hook.StateChanged(context.Background(), StateEvent{Session: "abc", View: "inventory", Reason: "inventory.adjust"})

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	var event StateEvent
	if err := json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &event); err != nil {
		t.Fatalf("decode event %q: %v", line, err)
	}
	if event.Session != "abc" || event.Reason != "inventory.adjust" {
		t.Fatalf("unexpected event %+v", event)
	}
}
