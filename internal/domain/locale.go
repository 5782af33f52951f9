package domain

import "golang.org/x/text/language"

// Locale identifies one of the catalog's supported display languages.
type Locale string

const (
	LocaleUzbek   Locale = "uz"
	LocaleRussian Locale = "ru"

	// DefaultLocale is used when negotiation fails.
	DefaultLocale = LocaleUzbek
)

var localeMatcher = language.NewMatcher([]language.Tag{
	language.Uzbek,
	language.Russian,
})

// MatchLocale negotiates a supported locale from a BCP 47 tag or an
// Accept-Language value. Unknown or empty input falls back to the default.
func MatchLocale(tag string) Locale {
	if tag == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(tag)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, _ := localeMatcher.Match(tags...)
	if idx == 1 {
		return LocaleRussian
	}
	return LocaleUzbek
}

// Valid reports whether the locale is one the catalog supports.
func (l Locale) Valid() bool {
	return l == LocaleUzbek || l == LocaleRussian
}

// LocalizedText carries the per-locale variants of an upstream display field.
// Resolution is an explicit lookup so every consumer goes through the same
// table instead of assembling field names at runtime.
type LocalizedText struct {
	UZ string `json:"name_uz"`
	RU string `json:"name_ru"`
}

// Resolve returns the variant for the locale, falling back to the other
// variant when the requested one is empty.
func (t LocalizedText) Resolve(locale Locale) string {
	switch locale {
	case LocaleRussian:
		if t.RU != "" {
			return t.RU
		}
		return t.UZ
	default:
		if t.UZ != "" {
			return t.UZ
		}
		return t.RU
	}
}
