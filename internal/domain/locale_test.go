package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchLocale(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Locale
	}{
		{"uzbek tag", "uz", LocaleUzbek},
		{"russian tag", "ru", LocaleRussian},
		{"russian region", "ru-RU", LocaleRussian},
		{"accept-language list", "ru;q=0.9, uz;q=0.8", LocaleRussian},
		{"unsupported falls back", "en-US", LocaleUzbek},
		{"empty falls back", "", LocaleUzbek},
		{"garbage falls back", ";;;", LocaleUzbek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchLocale(tt.input))
		})
	}
}

func TestLocalizedText_Resolve(t *testing.T) {
	text := LocalizedText{UZ: "Kitob", RU: "Книга"}

	assert.Equal(t, "Kitob", text.Resolve(LocaleUzbek))
	assert.Equal(t, "Книга", text.Resolve(LocaleRussian))
}

func TestLocalizedText_Resolve_FallsBackAcrossLocales(t *testing.T) {
	onlyUZ := LocalizedText{UZ: "Kitob"}
	onlyRU := LocalizedText{RU: "Книга"}

	assert.Equal(t, "Kitob", onlyUZ.Resolve(LocaleRussian))
	assert.Equal(t, "Книга", onlyRU.Resolve(LocaleUzbek))
	assert.Equal(t, "", LocalizedText{}.Resolve(LocaleUzbek))
}

func TestOrderStatus_Partition(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusReady.IsActive())
	assert.False(t, StatusOnLoan.IsActive())

	assert.True(t, StatusOnLoan.IsArchived())
	assert.True(t, StatusReturned.IsArchived())
	assert.True(t, StatusCancelled.IsArchived())
	assert.False(t, StatusReady.IsArchived())
}
