package erp

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FixturesVersion is the current fixtures document format.
const FixturesVersion = "1"

//go:embed fixtures/sample.yaml
var embeddedFixtures []byte

// Fixtures is the sample data document every view is seeded from.
type Fixtures struct {
	Version      string          `json:"version" yaml:"version"`
	Company      CompanySettings `json:"company" yaml:"company"`
	User         User            `json:"user" yaml:"user"`
	Sales        []MonthlySales  `json:"sales" yaml:"sales"`
	Inventory    InventorySeed   `json:"inventory" yaml:"inventory"`
	Orders       []SalesOrder    `json:"orders" yaml:"orders"`
	NewOrder     NewOrderSeed    `json:"new_order" yaml:"new_order"`
	Team         []TeamMember    `json:"team" yaml:"team"`
	QuickActions []string        `json:"quick_actions" yaml:"quick_actions"`
	Source       string          `json:"-" yaml:"-"`
}

// InventorySeed describes how the sample inventory is generated.
type InventorySeed struct {
	Count       int             `json:"count" yaml:"count"`
	SKUPrefix   string          `json:"sku_prefix" yaml:"sku_prefix"`
	SKUBase     int             `json:"sku_base" yaml:"sku_base"`
	MaxQuantity int             `json:"max_quantity" yaml:"max_quantity"`
	MaxPrice    decimal.Decimal `json:"max_price" yaml:"max_price"`
	Names       []string        `json:"names" yaml:"names"`
	Locations   []string        `json:"locations" yaml:"locations"`
}

// NewOrderSeed describes the orders created by the sales view.
type NewOrderSeed struct {
	IDPrefix string `json:"id_prefix" yaml:"id_prefix"`
	IDBase   int    `json:"id_base" yaml:"id_base"`
	Customer string `json:"customer" yaml:"customer"`
	MaxTotal int    `json:"max_total" yaml:"max_total"`
}

// DefaultFixtures decodes the embedded sample data.
func DefaultFixtures() *Fixtures {
	doc, err := DecodeFixtures(bytes.NewReader(embeddedFixtures))
	if err != nil {
		panic(fmt.Errorf("erp: embedded fixtures are invalid: %w", err))
	}
	doc.Source = "embedded"
	return doc
}

// EmbeddedFixtures returns the raw embedded fixtures document.
func EmbeddedFixtures() []byte {
	return append([]byte(nil), embeddedFixtures...)
}

// LoadFixtures reads a fixtures document from disk.
func LoadFixtures(path string) (*Fixtures, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("erp: open fixtures %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("erp: decode fixtures %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeFixtures parses and validates a YAML fixtures document.
func DecodeFixtures(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Fixtures
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteFixtures encodes the document as YAML.
func WriteFixtures(w io.Writer, doc *Fixtures) error {
	if doc == nil {
		return errors.New("erp: fixtures document is nil")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("erp: encode fixtures: %w", err)
	}
	return enc.Close()
}

// Validate checks the document is usable for seeding views.
func (f *Fixtures) Validate() error {
	if f.Version != FixturesVersion {
		return fmt.Errorf("erp: unsupported fixtures version %q", f.Version)
	}
	var errs []error
	if _, ok := ParseCurrency(string(f.Company.Currency)); !ok {
		errs = append(errs, fmt.Errorf("company currency %q: %w", f.Company.Currency, ErrUnknownCurrency))
	}
	if f.Inventory.Count < 0 {
		errs = append(errs, errors.New("inventory count must not be negative"))
	}
	if f.Inventory.Count > 0 && (len(f.Inventory.Names) == 0 || len(f.Inventory.Locations) == 0) {
		errs = append(errs, errors.New("inventory names and locations are required"))
	}
	if f.Inventory.MaxQuantity <= 0 {
		errs = append(errs, errors.New("inventory max_quantity must be positive"))
	}
	if f.NewOrder.MaxTotal <= 0 {
		errs = append(errs, errors.New("new_order max_total must be positive"))
	}
	for _, order := range f.Orders {
		if order.Status != OrderPaid && order.Status != OrderPending {
			errs = append(errs, fmt.Errorf("order %s has unknown status %q", order.ID, order.Status))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("erp: invalid fixtures: %w", errors.Join(errs...))
	}
	return nil
}

func (f *Fixtures) clone() *Fixtures {
	if f == nil {
		return nil
	}
	out := *f
	out.Sales = append([]MonthlySales(nil), f.Sales...)
	out.Orders = append([]SalesOrder(nil), f.Orders...)
	out.Team = append([]TeamMember(nil), f.Team...)
	out.QuickActions = append([]string(nil), f.QuickActions...)
	out.Inventory.Names = append([]string(nil), f.Inventory.Names...)
	out.Inventory.Locations = append([]string(nil), f.Inventory.Locations...)
	return &out
}
