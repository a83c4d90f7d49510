package erp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaults(t *testing.T) {
	view := newSettingsView(DefaultFixtures().Company)
	assert.Equal(t, CompanySettings{Name: "ERPX Ltd", Currency: CurrencyUSD}, view.Settings())
}

func TestSettingsCurrencyEnumeration(t *testing.T) {
	view := newSettingsView(DefaultFixtures().Company)
	require.NoError(t, view.SetCurrency("PKR"))
	assert.Equal(t, CurrencyPKR, view.Settings().Currency)

	err := view.SetCurrency("usd")
	if !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
	assert.Equal(t, CurrencyPKR, view.Settings().Currency)
}

func TestSettingsNameAcceptsAnyText(t *testing.T) {
	view := newSettingsView(DefaultFixtures().Company)
	view.SetName("")
	assert.Equal(t, "", view.Settings().Name)
	view.SetName("  Über & Co <b>  ")
	assert.Equal(t, "  Über & Co <b>  ", view.Settings().Name)
}

func TestSettingsUpdateIsAtomicOnBadCurrency(t *testing.T) {
	view := newSettingsView(DefaultFixtures().Company)
	name, currency := "Acme", "GBP"
	err := view.Update(SettingsUpdate{Name: &name, Currency: &currency})
	require.ErrorIs(t, err, ErrUnknownCurrency)
	assert.Equal(t, "ERPX Ltd", view.Settings().Name)

	currency = "EUR"
	require.NoError(t, view.Update(SettingsUpdate{Name: &name, Currency: &currency}))
	assert.Equal(t, CompanySettings{Name: "Acme", Currency: CurrencyEUR}, view.Settings())
}
