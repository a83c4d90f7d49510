package goadmin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-erpx/pkg/activity"
	"github.com/goliatone/go-erpx/pkg/erpx"
	"github.com/goliatone/go-erpx/pkg/goadmin"
)

type stubMenuBuilder struct {
	items []goadmin.MenuItem
	fail  string
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, _ string, item goadmin.MenuItem) error {
	if item.Label == s.fail {
		return errors.New("boom")
	}
	s.items = append(s.items, item)
	return nil
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	service := erpx.NewService(erpx.Options{})
	admin, err := goadmin.New(goadmin.Config{
		EnableERP:      true,
		Service:        service,
		MenuBuilder:    builder,
		PositionOffset: 10,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(builder.items))
	}
	first, last := builder.items[0], builder.items[4]
	if first.Label != "Dashboard" || first.Route != "/erp" || first.Position != 10 {
		t.Fatalf("unexpected first item %+v", first)
	}
	if last.Label != "Settings" || last.Route != "/erp/settings" || last.Position != 14 {
		t.Fatalf("unexpected last item %+v", last)
	}
	if admin.ERP() == nil {
		t.Fatalf("expected erp service")
	}
}

func TestAdminMenuItemsLocalize(t *testing.T) {
	admin, err := goadmin.New(goadmin.Config{Locale: "es", BasePath: "/admin/erp"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	items := admin.MenuItems()
	if items[3].Label != "RR. HH." || items[3].Route != "/admin/erp/hr" {
		t.Fatalf("unexpected hr item %+v", items[3])
	}
}

func TestAdminBootstrapJoinsErrors(t *testing.T) {
	builder := &stubMenuBuilder{fail: "Sales"}
	admin, _ := goadmin.New(goadmin.Config{
		EnableERP:   true,
		Service:     erpx.NewService(erpx.Options{}),
		MenuBuilder: builder,
	})
	if err := admin.Bootstrap(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if len(builder.items) != 4 {
		t.Fatalf("expected remaining items to be seeded, got %d", len(builder.items))
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableERP:   false,
		MenuBuilder: builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 0 {
		t.Fatalf("expected 0 calls, got %d", len(builder.items))
	}
	if admin.ERP() != nil {
		t.Fatalf("expected nil service when disabled")
	}
}

func TestAdminRequiresServiceWhenEnabled(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableERP: true}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestAdminActivityReachesHooks(t *testing.T) {
	var got []activity.Event
	admin, _ := goadmin.New(goadmin.Config{
		ActivityHooks: activity.Hooks{activity.HookFunc(func(_ context.Context, evt activity.Event) error {
			got = append(got, evt)
			return nil
		})},
		ActivityConfig: activity.Config{Enabled: true, Channel: "admin"},
	})
	service := erpx.NewService(erpx.Options{Activity: admin.Activity()})
	ctx := context.Background()
	sid, err := service.OpenSession(ctx)
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}
	if _, err := service.Logout(ctx, sid); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(got) != 1 || got[0].Verb != "logout" || got[0].Channel != "admin" {
		t.Fatalf("unexpected events %+v", got)
	}
}
