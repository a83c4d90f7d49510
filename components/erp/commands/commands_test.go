package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-erpx/components/erp"
	"github.com/goliatone/go-erpx/pkg/activity"
)

type stubTelemetry struct {
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.events = append(s.events, event)
}

type recordingActivity struct {
	events []activity.Event
}

func (r *recordingActivity) Emit(_ context.Context, evt activity.Event) error {
	r.events = append(r.events, evt)
	return nil
}

func newService(act erp.ActivityEmitter) *erp.Service {
	return erp.NewService(erp.Options{Random: erp.NewRandomSource(7), Activity: act})
}

func TestSetDrivesFullSession(t *testing.T) {
	ctx := context.Background()
	telemetry := &stubTelemetry{}
	set := NewSet(newService(nil), telemetry)

	id, err := set.OpenSession(ctx)
	if err != nil || id == "" {
		t.Fatalf("OpenSession returned %q, %v", id, err)
	}

	var collapsed bool
	if err := set.ToggleSidebar.Execute(ctx, ToggleSidebarInput{SessionID: id, Collapsed: &collapsed}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !collapsed {
		t.Fatalf("expected collapsed sidebar")
	}

	var nav erp.NavigateResult
	if err := set.Navigate.Execute(ctx, NavigateInput{SessionID: id, Path: "/sales", Result: &nav}); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if nav.View != erp.ViewSales || !nav.Remounted {
		t.Fatalf("unexpected navigate result %+v", nav)
	}

	var order erp.SalesOrder
	if err := set.CreateOrder.Execute(ctx, CreateOrderInput{SessionID: id, Order: &order}); err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID != "SO-1003" || order.Status != erp.OrderPending {
		t.Fatalf("unexpected order %+v", order)
	}

	var ack string
	if err := set.Logout.Execute(ctx, LogoutInput{SessionID: id, Acknowledgement: &ack}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if ack != erp.LogoutAcknowledgement {
		t.Fatalf("unexpected ack %q", ack)
	}
	if len(telemetry.events) != 5 {
		t.Fatalf("expected 5 command events, got %v", telemetry.events)
	}
}

func TestInventoryCommands(t *testing.T) {
	ctx := context.Background()
	svc := newService(nil)
	set := NewSet(svc, nil)
	id, _ := set.OpenSession(ctx)

	err := set.Adjust.Execute(ctx, AdjustQuantityInput{SessionID: id, ItemID: "SKU-1000", Delta: 1})
	if !errors.Is(err, erp.ErrViewNotMounted) {
		t.Fatalf("expected ErrViewNotMounted, got %v", err)
	}

	if err := set.Navigate.Execute(ctx, NavigateInput{SessionID: id, Path: "/inventory"}); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	var matched bool
	if err := set.Adjust.Execute(ctx, AdjustQuantityInput{SessionID: id, ItemID: "SKU-9999", Delta: 1, Matched: &matched}); err != nil {
		t.Fatalf("unknown id should be a no-op: %v", err)
	}
	if matched {
		t.Fatalf("expected unknown id not to match")
	}
	if err := set.InventoryQuery.Execute(ctx, InventoryQueryInput{SessionID: id, Query: "sku-1001"}); err != nil {
		t.Fatalf("query: %v", err)
	}
	page, err := svc.Page(ctx, id, erp.PageOptions{})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page.Inventory.Items) != 1 || page.Inventory.Items[0].ID != "SKU-1001" {
		t.Fatalf("unexpected filtered items %+v", page.Inventory.Items)
	}
	if err := set.Adjust.Execute(ctx, AdjustQuantityInput{SessionID: id}); err == nil {
		t.Fatalf("expected error without item id")
	}
}

func TestUpdateSettingsCarriesActor(t *testing.T) {
	ctx := context.Background()
	act := &recordingActivity{}
	set := NewSet(newService(act), nil)
	id, _ := set.OpenSession(ctx)
	_ = set.Navigate.Execute(ctx, NavigateInput{SessionID: id, Path: "/settings"})

	name, currency := "Acme", "PKR"
	var result erp.CompanySettings
	err := set.UpdateSettings.Execute(ctx, UpdateSettingsInput{
		SessionID: id,
		Name:      &name,
		Currency:  &currency,
		Actor:     Actor{ActorID: "admin-1", TenantID: "t-1"},
		Result:    &result,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if result.Name != "Acme" || result.Currency != erp.CurrencyPKR {
		t.Fatalf("unexpected settings %+v", result)
	}
	if len(act.events) != 1 || act.events[0].ActorID != "admin-1" || act.events[0].TenantID != "t-1" {
		t.Fatalf("unexpected activity %+v", act.events)
	}

	bad := "GBP"
	err = set.UpdateSettings.Execute(ctx, UpdateSettingsInput{SessionID: id, Currency: &bad})
	if !errors.Is(err, erp.ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestQuickActionsAndTeamQuery(t *testing.T) {
	ctx := context.Background()
	svc := newService(nil)
	set := NewSet(svc, nil)
	id, _ := set.OpenSession(ctx)

	if err := set.QuickActions.Execute(ctx, QuickActionsInput{SessionID: id, Open: true}); err != nil {
		t.Fatalf("open: %v", err)
	}
	page, _ := svc.Page(ctx, id, erp.PageOptions{})
	if !page.Shell.QuickActionsVisible {
		t.Fatalf("expected overlay to be visible")
	}
	if err := set.QuickActions.Execute(ctx, QuickActionsInput{SessionID: id}); err != nil {
		t.Fatalf("close: %v", err)
	}
	_ = set.Navigate.Execute(ctx, NavigateInput{SessionID: id, Path: "/hr"})
	if err := set.TeamQuery.Execute(ctx, TeamQueryInput{SessionID: id, Query: "zzz"}); err != nil {
		t.Fatalf("team query: %v", err)
	}
	page, _ = svc.Page(ctx, id, erp.PageOptions{})
	if page.Shell.QuickActionsVisible || len(page.HR.Members) != 0 {
		t.Fatalf("unexpected page state %+v", page.HR)
	}
}

func TestCommandsRequireServiceAndSession(t *testing.T) {
	ctx := context.Background()
	if err := NewNavigateCommand(nil, nil).Execute(ctx, NavigateInput{SessionID: "x"}); !errors.Is(err, errMissingService) {
		t.Fatalf("expected missing service, got %v", err)
	}
	set := NewSet(newService(nil), nil)
	if err := set.ToggleSidebar.Execute(ctx, ToggleSidebarInput{}); !errors.Is(err, errMissingSession) {
		t.Fatalf("expected missing session, got %v", err)
	}
	if err := set.Open.Execute(ctx, OpenSessionInput{}); err == nil {
		t.Fatalf("expected error without result pointer")
	}
	id, _ := set.OpenSession(ctx)
	if err := set.Close.Execute(ctx, CloseSessionInput{SessionID: id}); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := set.ToggleSidebar.Execute(ctx, ToggleSidebarInput{SessionID: id}); !errors.Is(err, erp.ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}
}
