package erp

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"
)

// Mount is the single view module currently mounted for a session. Exactly one of
// the view pointers is set and it matches View.
type Mount struct {
	View      View
	Dashboard *DashboardView
	Inventory *InventoryView
	Sales     *SalesView
	HR        *HRView
	Settings  *SettingsView
}

// Session is one viewer's shell plus mounted view.
type Session struct {
	ID        string
	Shell     ShellState
	Mount     Mount
	CreatedAt time.Time
	TouchedAt time.Time
}

// seeds are the process-wide samples every mount starts from.
type seeds struct {
	fixtures  *Fixtures
	inventory []InventoryItem
	rng       RandomSource
}

func (s seeds) mount(view View) Mount {
	m := Mount{View: view}
	switch view {
	case ViewInventory:
		m.Inventory = newInventoryView(s.inventory)
	case ViewSales:
		m.Sales = newSalesView(s.fixtures.Orders, s.fixtures.NewOrder, s.rng)
	case ViewHR:
		m.HR = newHRView(s.fixtures.Team)
	case ViewSettings:
		m.Settings = newSettingsView(s.fixtures.Company)
	default:
		m.View = ViewDashboard
		m.Dashboard = newDashboardView(s.fixtures.Sales, s.inventory)
	}
	return m
}

// navigate mounts the view for path. Staying on the mounted view keeps its state;
// switching views discards the old state and starts the new one from the samples.
func (s *Session) navigate(path string, src seeds) (remounted bool, err error) {
	view, ok := ParseView(path)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownView, path)
	}
	if s.Mount.View == view && s.Mount.mounted() {
		return false, nil
	}
	s.Mount = src.mount(view)
	return true, nil
}

func (m Mount) mounted() bool {
	switch m.View {
	case ViewDashboard:
		return m.Dashboard != nil
	case ViewInventory:
		return m.Inventory != nil
	case ViewSales:
		return m.Sales != nil
	case ViewHR:
		return m.HR != nil
	case ViewSettings:
		return m.Settings != nil
	default:
		return false
	}
}

func (m Mount) require(view View) error {
	if m.View != view || !m.mounted() {
		return fmt.Errorf("%w: %s (mounted %s)", ErrViewNotMounted, view, m.View)
	}
	return nil
}

// SessionTag is a short public fingerprint of a session id. Event streams carry
// the tag so the id itself never leaves its owner.
func SessionTag(id string) string {
	if id == "" {
		return ""
	}
	sum := sha1.Sum([]byte(id))
	return hex.EncodeToString(sum[:6])
}
