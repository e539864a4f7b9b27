package i18n

import (
	"log/slog"
	"strings"

	"golang.org/x/text/language"
)

// Languages is the set of languages the site serves under /:lang/.
type Languages struct {
	codes map[string]language.Tag
	order []string
}

func NewLanguages(codes []string) *Languages {
	l := &Languages{codes: make(map[string]language.Tag)}
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			slog.Warn("skipping unknown language", "code", code, "err", err)
			continue
		}
		key := strings.ToLower(code)
		if _, dup := l.codes[key]; dup {
			continue
		}
		l.codes[key] = tag
		l.order = append(l.order, key)
	}
	return l
}

// Default is the first configured language, used for links that have no request language.
func (l *Languages) Default() string {
	if len(l.order) == 0 {
		return ""
	}
	return l.order[0]
}

// Locales lists the locale of every served language in configuration order.
func (l *Languages) Locales() []string {
	locales := make([]string, 0, len(l.order))
	for _, code := range l.order {
		locales = append(locales, Locale(l.codes[code]))
	}
	return locales
}

// Locale maps a served language code to its locale, e.g. es -> es_ES.
func (l *Languages) Locale(code string) (string, bool) {
	tag, ok := l.codes[strings.ToLower(code)]
	if !ok {
		return "", false
	}
	return Locale(tag), true
}

func Locale(tag language.Tag) string {
	base, _ := tag.Base()
	region, _ := tag.Region()
	return base.String() + "_" + region.String()
}
