package erp

// View identifies one of the routed screens.
type View int

const (
	ViewDashboard View = iota
	ViewInventory
	ViewSales
	ViewHR
	ViewSettings
)

// Views returns every view in navigation order.
func Views() []View {
	return []View{ViewDashboard, ViewInventory, ViewSales, ViewHR, ViewSettings}
}

// ParseView maps a path to its view. Matching is exact and case sensitive.
func ParseView(path string) (View, bool) {
	switch path {
	case "/":
		return ViewDashboard, true
	case "/inventory":
		return ViewInventory, true
	case "/sales":
		return ViewSales, true
	case "/hr":
		return ViewHR, true
	case "/settings":
		return ViewSettings, true
	default:
		return 0, false
	}
}

// Path returns the route path of the view.
func (v View) Path() string {
	switch v {
	case ViewInventory:
		return "/inventory"
	case ViewSales:
		return "/sales"
	case ViewHR:
		return "/hr"
	case ViewSettings:
		return "/settings"
	default:
		return "/"
	}
}

// Code is the stable lowercase identifier used in payloads, metrics and templates.
func (v View) Code() string {
	switch v {
	case ViewInventory:
		return "inventory"
	case ViewSales:
		return "sales"
	case ViewHR:
		return "hr"
	case ViewSettings:
		return "settings"
	default:
		return "dashboard"
	}
}

func (v View) String() string { return v.Code() }

// MarshalText encodes the view by code.
func (v View) MarshalText() ([]byte, error) {
	return []byte(v.Code()), nil
}

// Icon names the navigation icon for the view.
func (v View) Icon() string {
	switch v {
	case ViewInventory:
		return "box"
	case ViewSales:
		return "shopping-cart"
	case ViewHR:
		return "users"
	case ViewSettings:
		return "settings"
	default:
		return "home"
	}
}

// Label returns the navigation label for the locale, falling back to English.
func (v View) Label(locale string) string {
	return ResolveLocalizedValue(viewLabels[v], locale, viewLabels[v]["default"])
}

// Heading returns the page heading for the locale.
func (v View) Heading(locale string) string {
	return ResolveLocalizedValue(viewHeadings[v], locale, viewHeadings[v]["default"])
}

var viewLabels = map[View]map[string]string{
	ViewDashboard: {"default": "Dashboard", "es": "Panel"},
	ViewInventory: {"default": "Inventory", "es": "Inventario"},
	ViewSales:     {"default": "Sales", "es": "Ventas"},
	ViewHR:        {"default": "HR", "es": "RR. HH."},
	ViewSettings:  {"default": "Settings", "es": "Ajustes"},
}

var viewHeadings = map[View]map[string]string{
	ViewDashboard: {"default": "Dashboard", "es": "Panel"},
	ViewInventory: {"default": "Inventory", "es": "Inventario"},
	ViewSales:     {"default": "Sales Orders", "es": "Pedidos de venta"},
	ViewHR:        {"default": "Team", "es": "Equipo"},
	ViewSettings:  {"default": "Settings", "es": "Ajustes"},
}
