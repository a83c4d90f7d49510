package erp

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ResolveLocalizedValue selects the best translation for the provided locale and falls back to the supplied value.
// Keys are matched case-insensitively, and language-region pairs (`es-mx`) fall back to their base language.
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		for key, value := range values {
			if strings.EqualFold(key, candidate) && value != "" {
				return value
			}
		}
	}
	return fallback
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return append(candidates, "default")
}

func normalizeLocale(locale string) string {
	return strings.TrimSpace(strings.ToLower(strings.ReplaceAll(locale, "_", "-")))
}

// formatAmount prints an integer with the locale's digit grouping.
func formatAmount(locale string, n int64) string {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil || normalizeLocale(locale) == "" {
		tag = language.English
	}
	return message.NewPrinter(tag).Sprintf("%d", n)
}
