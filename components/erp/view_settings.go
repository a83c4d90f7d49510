package erp

import "fmt"

// SettingsView edits the company profile for one mount.
type SettingsView struct {
	settings CompanySettings
}

// SettingsUpdate carries optional field changes.
type SettingsUpdate struct {
	Name     *string `json:"name,omitempty"`
	Currency *string `json:"currency,omitempty"`
}

func newSettingsView(defaults CompanySettings) *SettingsView {
	return &SettingsView{settings: defaults}
}

// Settings returns the current values.
func (v *SettingsView) Settings() CompanySettings { return v.settings }

// SetName accepts any text, including empty.
func (v *SettingsView) SetName(name string) { v.settings.Name = name }

// SetCurrency accepts USD, EUR or PKR and leaves the value unchanged otherwise.
func (v *SettingsView) SetCurrency(value string) error {
	currency, ok := ParseCurrency(value)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, value)
	}
	v.settings.Currency = currency
	return nil
}

// Update applies the provided fields. The currency is checked before anything changes.
func (v *SettingsView) Update(update SettingsUpdate) error {
	if update.Currency != nil {
		if err := v.SetCurrency(*update.Currency); err != nil {
			return err
		}
	}
	if update.Name != nil {
		v.SetName(*update.Name)
	}
	return nil
}
