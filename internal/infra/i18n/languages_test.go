package i18n_test

import (
	"testing"

	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/i18n"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLocaleFromLanguageCode(t *testing.T) {
	langs := i18n.NewLanguages([]string{"es", "en", "pt-BR"})

	locale, ok := langs.Locale("es")
	require.True(t, ok)
	require.Equal(t, "es_ES", locale)

	locale, ok = langs.Locale("EN")
	require.True(t, ok)
	require.Equal(t, "en_US", locale)

	locale, ok = langs.Locale("pt-br")
	require.True(t, ok)
	require.Equal(t, "pt_BR", locale)

	_, ok = langs.Locale("de")
	require.False(t, ok)

	require.Equal(t, "es", langs.Default())
	require.Equal(t, []string{"es_ES", "en_US", "pt_BR"}, langs.Locales())
}

func TestNewLanguagesSkipsInvalidCodes(t *testing.T) {
	langs := i18n.NewLanguages([]string{"not a language", "ca"})
	require.Equal(t, "ca", langs.Default())

	locale, ok := langs.Locale("ca")
	require.True(t, ok)
	require.Equal(t, "ca_ES", locale)
}

func TestLocale(t *testing.T) {
	require.Equal(t, "fr_FR", i18n.Locale(language.French))
}
