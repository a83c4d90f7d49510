package erp

import (
	"context"
	"strconv"
)

// PageOptions carries per-request presentation input.
type PageOptions struct {
	Locale string
	Notice string
}

// Page is the full view model for one render of a session.
type Page struct {
	SessionID    string         `json:"session_id"`
	SessionTag   string         `json:"session_tag"`
	Locale       string         `json:"locale,omitempty"`
	View         View           `json:"view"`
	Title        string         `json:"title"`
	Shell        ShellPage      `json:"shell"`
	Nav          []NavItem      `json:"nav"`
	QuickActions []QuickAction  `json:"quick_actions"`
	Notice       string         `json:"notice,omitempty"`
	Dashboard    *DashboardPage `json:"dashboard,omitempty"`
	Inventory    *InventoryPage `json:"inventory,omitempty"`
	Sales        *SalesPage     `json:"sales,omitempty"`
	HR           *HRPage        `json:"hr,omitempty"`
	Settings     *SettingsPage  `json:"settings,omitempty"`
}

// ShellPage is the sidebar and top bar state.
type ShellPage struct {
	SidebarCollapsed    bool   `json:"sidebar_collapsed"`
	QuickActionsVisible bool   `json:"quick_actions_visible"`
	User                User   `json:"user"`
	Greeting            string `json:"greeting"`
}

// NavItem is one sidebar link.
type NavItem struct {
	View   View   `json:"view"`
	Label  string `json:"label"`
	Path   string `json:"path"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

// DashboardPage carries the cards, chart and top products.
type DashboardPage struct {
	Summary        DashboardSummary `json:"summary"`
	Revenue        string           `json:"revenue"`
	Orders         string           `json:"orders"`
	AverageOrder   string           `json:"average_order"`
	InventoryValue string           `json:"inventory_value"`
	Sales          []MonthlySales   `json:"sales"`
	ChartHTML      string           `json:"chart_html,omitempty"`
	TopProducts    []InventoryItem  `json:"top_products"`
}

type InventoryPage struct {
	Query string          `json:"query"`
	Items []InventoryItem `json:"items"`
	Total int             `json:"total"`
}

type SalesPage struct {
	Orders []SalesOrder `json:"orders"`
}

type HRPage struct {
	Query   string       `json:"query"`
	Members []TeamMember `json:"members"`
}

type SettingsPage struct {
	Settings   CompanySettings `json:"settings"`
	Currencies []Currency      `json:"currencies"`
}

func (s *Service) buildPage(ctx context.Context, session *Session, opts PageOptions) Page {
	view := session.Mount.View
	page := Page{
		SessionID:  session.ID,
		SessionTag: SessionTag(session.ID),
		Locale:     opts.Locale,
		View:       view,
		Title:      view.Heading(opts.Locale),
		Shell: ShellPage{
			SidebarCollapsed:    session.Shell.SidebarCollapsed,
			QuickActionsVisible: session.Shell.QuickActionsVisible,
			User:                session.Shell.CurrentUser,
			Greeting:            session.Shell.Greeting(),
		},
		QuickActions: s.QuickActions(),
		Notice:       opts.Notice,
	}
	for _, v := range Views() {
		page.Nav = append(page.Nav, NavItem{
			View:   v,
			Label:  v.Label(opts.Locale),
			Path:   v.Path(),
			Icon:   v.Icon(),
			Active: v == view,
		})
	}

	switch m := session.Mount; view {
	case ViewDashboard:
		page.Dashboard = s.dashboardPage(ctx, m.Dashboard, opts.Locale)
	case ViewInventory:
		items := m.Inventory.Visible()
		page.Inventory = &InventoryPage{Query: m.Inventory.Query(), Items: items, Total: len(m.Inventory.items)}
	case ViewSales:
		page.Sales = &SalesPage{Orders: m.Sales.Orders()}
	case ViewHR:
		page.HR = &HRPage{Query: m.HR.Query(), Members: m.HR.Visible()}
	case ViewSettings:
		page.Settings = &SettingsPage{Settings: m.Settings.Settings(), Currencies: Currencies()}
	}
	return page
}

func (s *Service) dashboardPage(ctx context.Context, view *DashboardView, locale string) *DashboardPage {
	summary := view.Summary()
	sales := view.Sales()
	page := &DashboardPage{
		Summary:        summary,
		Revenue:        "$" + formatAmount(locale, summary.TotalRevenue),
		Orders:         strconv.FormatInt(summary.TotalOrders, 10),
		AverageOrder:   "$" + summary.AverageOrder.StringFixed(2),
		InventoryValue: "$" + formatAmount(locale, summary.InventoryValue),
		Sales:          sales,
		TopProducts:    view.TopProducts(),
	}
	html, err := s.opts.Charts.RenderSalesChart(ctx, sales, locale)
	if err != nil {
		s.opts.Telemetry.Record(ctx, "erp.chart.failed", map[string]any{"error": err.Error()})
		return page
	}
	page.ChartHTML = html
	return page
}

// TemplateData flattens the page into maps and strings for the template engine.
func (p Page) TemplateData() map[string]any {
	nav := make([]map[string]any, 0, len(p.Nav))
	for _, item := range p.Nav {
		nav = append(nav, map[string]any{
			"code":   item.View.Code(),
			"label":  item.Label,
			"path":   item.Path,
			"icon":   item.Icon,
			"active": item.Active,
		})
	}
	actions := make([]map[string]any, 0, len(p.QuickActions))
	for _, action := range p.QuickActions {
		actions = append(actions, map[string]any{"code": action.Code, "label": action.Label})
	}
	data := map[string]any{
		"session_id":    p.SessionID,
		"session_tag":   p.SessionTag,
		"view":          p.View.Code(),
		"title":         p.Title,
		"notice":        p.Notice,
		"nav":           nav,
		"quick_actions": actions,
		"shell":         map[string]any{
			"collapsed":     p.Shell.SidebarCollapsed,
			"quick_actions": p.Shell.QuickActionsVisible,
			"greeting":      p.Shell.Greeting,
			"user_name":     p.Shell.User.Name,
			"user_email":    p.Shell.User.Email,
		},
	}
	if d := p.Dashboard; d != nil {
		data["dashboard"] = map[string]any{
			"revenue":         d.Revenue,
			"orders":          d.Orders,
			"average_order":   d.AverageOrder,
			"inventory_value": d.InventoryValue,
			"chart_html":      d.ChartHTML,
			"top_products":    itemRows(d.TopProducts),
		}
	}
	if inv := p.Inventory; inv != nil {
		data["inventory"] = map[string]any{
			"query": inv.Query,
			"items": itemRows(inv.Items),
			"total": inv.Total,
		}
	}
	if sales := p.Sales; sales != nil {
		rows := make([]map[string]any, 0, len(sales.Orders))
		for _, order := range sales.Orders {
			rows = append(rows, map[string]any{
				"id":       order.ID,
				"customer": order.Customer,
				"total":    order.Total.String(),
				"status":   string(order.Status),
			})
		}
		data["sales"] = map[string]any{"orders": rows}
	}
	if hr := p.HR; hr != nil {
		rows := make([]map[string]any, 0, len(hr.Members))
		for _, member := range hr.Members {
			rows = append(rows, map[string]any{
				"id":    member.ID,
				"name":  member.Name,
				"role":  member.Role,
				"email": member.Email,
			})
		}
		data["hr"] = map[string]any{"query": hr.Query, "members": rows}
	}
	if st := p.Settings; st != nil {
		currencies := make([]map[string]any, 0, len(st.Currencies))
		for _, c := range st.Currencies {
			currencies = append(currencies, map[string]any{
				"code":     string(c),
				"selected": c == st.Settings.Currency,
			})
		}
		data["settings"] = map[string]any{
			"name":       st.Settings.Name,
			"currency":   string(st.Settings.Currency),
			"currencies": currencies,
		}
	}
	return data
}

func itemRows(items []InventoryItem) []map[string]any {
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]any{
			"id":       item.ID,
			"name":     item.Name,
			"qty":      item.Quantity,
			"price":    item.UnitPrice.StringFixed(2),
			"location": item.Location,
		})
	}
	return rows
}
