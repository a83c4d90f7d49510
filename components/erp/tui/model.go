package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-erpx/components/erp"
	"github.com/goliatone/go-erpx/components/erp/commands"
)

// Model is a bubbletea model driving one ERP session from the terminal.
type Model struct {
	ctx      context.Context
	commands commands.Set
	pages    erp.PageSource
	styles   Styles
	locale   string

	sessionID string
	page      erp.Page
	selected  int
	filtering bool
	filter    string
	notice    string
	err       error
	width     int
}

// Options configures a terminal model.
type Options struct {
	Commands commands.Set
	Pages    erp.PageSource
	Styles   *Styles
	Locale   string
}

// New opens a session and loads its first page.
func New(ctx context.Context, opts Options) (*Model, error) {
	if opts.Pages == nil || opts.Commands.Open == nil {
		return nil, errors.New("tui: commands and page source are required")
	}
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	sid, err := opts.Commands.OpenSession(ctx)
	if err != nil {
		return nil, err
	}
	m := &Model{
		ctx:       ctx,
		commands:  opts.Commands,
		pages:     opts.Pages,
		styles:    styles,
		locale:    opts.Locale,
		sessionID: sid,
	}
	m.reload()
	return m, m.err
}

// Run starts the program on the alternate screen and closes the session on exit.
func Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) error {
	m, err := New(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = opts.Commands.Close.Execute(context.WithoutCancel(ctx), commands.CloseSessionInput{SessionID: m.sessionID})
	}()
	programOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, programOpts...)
	_, err = tea.NewProgram(m, programOpts...).Run()
	return err
}

// SessionID returns the id of the session the model drives.
func (m *Model) SessionID() string { return m.sessionID }

// Page returns the last loaded page.
func (m *Model) Page() erp.Page { return m.page }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.filtering {
			m.updateFilter(msg)
			return m, nil
		}
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	m.notice = ""
	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "1", "2", "3", "4", "5":
		view := erp.Views()[int(key[0]-'1')]
		m.run(m.commands.Navigate.Execute(m.ctx, commands.NavigateInput{SessionID: m.sessionID, Path: view.Path()}))
		m.selected = 0
	case "[":
		m.run(m.commands.ToggleSidebar.Execute(m.ctx, commands.ToggleSidebarInput{SessionID: m.sessionID}))
	case "a":
		m.run(m.commands.QuickActions.Execute(m.ctx, commands.QuickActionsInput{SessionID: m.sessionID, Open: true}))
	case "esc":
		m.run(m.commands.QuickActions.Execute(m.ctx, commands.QuickActionsInput{SessionID: m.sessionID}))
	case "L":
		var ack string
		m.run(m.commands.Logout.Execute(m.ctx, commands.LogoutInput{SessionID: m.sessionID, Acknowledgement: &ack}))
		m.notice = ack
	case "/":
		switch m.page.View {
		case erp.ViewInventory:
			m.filtering, m.filter = true, m.page.Inventory.Query
		case erp.ViewHR:
			m.filtering, m.filter = true, m.page.HR.Query
		}
	case "j", "down":
		if m.selected < m.rows()-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "+", "=":
		m.adjust(1)
	case "-":
		m.adjust(-1)
	case "n":
		if m.page.View == erp.ViewSales {
			var order erp.SalesOrder
			m.run(m.commands.CreateOrder.Execute(m.ctx, commands.CreateOrderInput{SessionID: m.sessionID, Order: &order}))
			if m.err == nil {
				m.notice = "Created " + order.ID
			}
		}
	case "c":
		if m.page.View == erp.ViewSettings {
			next := string(nextCurrency(m.page.Settings.Settings.Currency))
			m.run(m.commands.UpdateSettings.Execute(m.ctx, commands.UpdateSettingsInput{SessionID: m.sessionID, Currency: &next}))
		}
	}
	return nil
}

// updateFilter edits the filter and applies it on every keystroke.
func (m *Model) updateFilter(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.filtering = false
		return
	case tea.KeyBackspace:
		if r := []rune(m.filter); len(r) > 0 {
			m.filter = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.filter += string(msg.Runes)
	default:
		return
	}
	m.selected = 0
	switch m.page.View {
	case erp.ViewInventory:
		m.run(m.commands.InventoryQuery.Execute(m.ctx, commands.InventoryQueryInput{SessionID: m.sessionID, Query: m.filter}))
	case erp.ViewHR:
		m.run(m.commands.TeamQuery.Execute(m.ctx, commands.TeamQueryInput{SessionID: m.sessionID, Query: m.filter}))
	}
}

func (m *Model) adjust(delta int) {
	if m.page.View != erp.ViewInventory || m.selected >= len(m.page.Inventory.Items) {
		return
	}
	id := m.page.Inventory.Items[m.selected].ID
	m.run(m.commands.Adjust.Execute(m.ctx, commands.AdjustQuantityInput{SessionID: m.sessionID, ItemID: id, Delta: delta}))
}

// run records err and reloads the page after a successful action.
func (m *Model) run(err error) {
	m.err = err
	if err == nil {
		m.reload()
	}
}

func (m *Model) reload() {
	page, err := m.pages.Page(m.ctx, m.sessionID, erp.PageOptions{Locale: m.locale})
	if err != nil {
		m.err = err
		return
	}
	m.page = page
	if rows := m.rows(); m.selected >= rows && rows > 0 {
		m.selected = rows - 1
	}
}

func (m *Model) rows() int {
	switch {
	case m.page.Inventory != nil:
		return len(m.page.Inventory.Items)
	case m.page.Sales != nil:
		return len(m.page.Sales.Orders)
	case m.page.HR != nil:
		return len(m.page.HR.Members)
	}
	return 0
}

func nextCurrency(current erp.Currency) erp.Currency {
	all := erp.Currencies()
	for i, c := range all {
		if c == current {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (m *Model) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.TopBar.Render(m.page.Shell.Greeting+"  ·  "+m.page.Shell.User.Name),
		m.styles.Title.Render(m.page.Title),
		m.content(),
	)
	if m.page.Shell.QuickActionsVisible {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.quickActions())
	}
	var status string
	switch {
	case m.err != nil:
		status = m.styles.Error.Render(m.err.Error())
	case m.notice != "":
		status = m.styles.Notice.Render(m.notice)
	case m.filtering:
		status = m.styles.Notice.Render("filter: " + m.filter + "█")
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), " ", body)
	return lipgloss.JoinVertical(lipgloss.Left, main, status, m.styles.Help.Render(m.help()))
}

func (m *Model) sidebar() string {
	lines := []string{lipgloss.NewStyle().Bold(true).Render(brand(m.page.Shell.SidebarCollapsed)), ""}
	for i, item := range m.page.Nav {
		label := fmt.Sprintf("%d %s", i+1, item.Label)
		if m.page.Shell.SidebarCollapsed {
			label = fmt.Sprintf("%d", i+1)
		}
		style := m.styles.NavItem
		if item.Active {
			style = m.styles.NavActive
		}
		lines = append(lines, style.Render(label))
	}
	return m.styles.Sidebar.Render(strings.Join(lines, "\n"))
}

func brand(collapsed bool) string {
	if collapsed {
		return "EX"
	}
	return "EX ERPX"
}

func (m *Model) content() string {
	switch p := m.page; {
	case p.Dashboard != nil:
		return m.dashboard(p.Dashboard)
	case p.Inventory != nil:
		if len(p.Inventory.Items) == 0 {
			return m.styles.Muted.Render(fmt.Sprintf("No items match %q.", p.Inventory.Query))
		}
		rows := []string{m.styles.Muted.Render(fmt.Sprintf("%-10s %-16s %-4s %5s %9s", "SKU", "Product", "Loc", "Qty", "Price"))}
		for i, it := range p.Inventory.Items {
			rows = append(rows, m.row(i, fmt.Sprintf("%-10s %-16s %-4s %5d %9s", it.ID, it.Name, it.Location, it.Quantity, "$"+it.UnitPrice.StringFixed(2))))
		}
		return strings.Join(rows, "\n")
	case p.Sales != nil:
		rows := make([]string, 0, len(p.Sales.Orders))
		for i, o := range p.Sales.Orders {
			rows = append(rows, m.row(i, fmt.Sprintf("%s  %-20s %-8s $%s", o.ID, o.Customer, o.Status, o.Total.String())))
		}
		return strings.Join(rows, "\n")
	case p.HR != nil:
		rows := make([]string, 0, len(p.HR.Members))
		for i, member := range p.HR.Members {
			rows = append(rows, m.row(i, fmt.Sprintf("%-18s %-22s %s", member.Name, member.Role, member.Email)))
		}
		return strings.Join(rows, "\n")
	case p.Settings != nil:
		return lipgloss.JoinHorizontal(lipgloss.Top,
			m.styles.Card.Render("Company Name\n"+p.Settings.Settings.Name),
			m.styles.Card.Render("Currency\n"+string(p.Settings.Settings.Currency)),
		)
	}
	return ""
}

func (m *Model) dashboard(d *erp.DashboardPage) string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Card.Render("Revenue (6m)\n"+d.Revenue),
		m.styles.Card.Render("Orders\n"+d.Orders),
		m.styles.Card.Render("Avg Order\n"+d.AverageOrder),
	)
	var sales strings.Builder
	for _, s := range d.Sales {
		fmt.Fprintf(&sales, "%-4s %7d %5d\n", s.Month, s.Revenue, s.Orders)
	}
	var top strings.Builder
	for _, it := range d.TopProducts {
		fmt.Fprintf(&top, "%-16s %s  qty %d\n", it.Name, it.ID, it.Quantity)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards, "",
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.styles.Card.Render("Sales (6 months)\n"+strings.TrimRight(sales.String(), "\n")),
			m.styles.Card.Render("Top Products\n"+strings.TrimRight(top.String(), "\n")),
		),
	)
}

func (m *Model) row(i int, text string) string {
	if i == m.selected {
		return m.styles.Selected.Render(text)
	}
	return text
}

func (m *Model) quickActions() string {
	labels := make([]string, 0, len(m.page.QuickActions))
	for _, a := range m.page.QuickActions {
		labels = append(labels, "["+a.Label+"]")
	}
	return m.styles.Overlay.Render("Quick Actions (esc to close)\n\n" + strings.Join(labels, "  "))
}

func (m *Model) help() string {
	keys := []string{"1-5 views", "[ sidebar", "a actions", "L logout"}
	switch m.page.View {
	case erp.ViewInventory:
		keys = append(keys, "/ filter", "j/k select", "+/- qty")
	case erp.ViewHR:
		keys = append(keys, "/ filter")
	case erp.ViewSales:
		keys = append(keys, "n new order")
	case erp.ViewSettings:
		keys = append(keys, "c currency")
	}
	return strings.Join(append(keys, "q quit"), " · ")
}
