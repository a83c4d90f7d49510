package erp

import (
	"strings"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stock keeping unit shown by the dashboard and inventory views.
type InventoryItem struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Quantity  int             `json:"qty" yaml:"qty"`
	UnitPrice decimal.Decimal `json:"price" yaml:"price"`
	Location  string          `json:"location" yaml:"location"`
}

// Value returns quantity times unit price.
func (i InventoryItem) Value() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderStatus is the closed set of sales order states.
type OrderStatus string

const (
	OrderPaid    OrderStatus = "Paid"
	OrderPending OrderStatus = "Pending"
)

// SalesOrder is a customer order listed by the sales view.
type SalesOrder struct {
	ID       string          `json:"id" yaml:"id"`
	Customer string          `json:"customer" yaml:"customer"`
	Total    decimal.Decimal `json:"total" yaml:"total"`
	Status   OrderStatus     `json:"status" yaml:"status"`
}

// TeamMember is a read-only staff entry in the HR view.
type TeamMember struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Role  string `json:"role" yaml:"role"`
	Email string `json:"email" yaml:"email"`
}

// Currency is one of the supported settings currencies.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyPKR Currency = "PKR"
)

// Currencies lists the accepted currencies in display order.
func Currencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyEUR, CurrencyPKR}
}

// ParseCurrency accepts an exact currency code.
func ParseCurrency(value string) (Currency, bool) {
	for _, c := range Currencies() {
		if string(c) == value {
			return c, true
		}
	}
	return "", false
}

// CompanySettings holds the editable company profile.
type CompanySettings struct {
	Name     string   `json:"name" yaml:"name"`
	Currency Currency `json:"currency" yaml:"currency"`
}

// User is the signed-in demo user shown in the top bar.
type User struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// FirstName returns the first space separated token of the user's name.
func (u User) FirstName() string {
	fields := strings.Fields(u.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// MonthlySales is one point of the dashboard sales series.
type MonthlySales struct {
	Month   string `json:"month" yaml:"month"`
	Revenue int64  `json:"revenue" yaml:"revenue"`
	Orders  int64  `json:"orders" yaml:"orders"`
}

// QuickAction is an inert shortcut listed by the quick actions overlay.
type QuickAction struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
}
