package frontend

import (
	"strings"

	"golang.org/x/text/language"
)

// normalizeLocale trims locale and replaces underscores with hyphens.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// primaryLanguage returns the language subtag of locale.
func primaryLanguage(locale string) string {
	short, _, _ := strings.Cut(locale, "-")
	return short
}

// localeParentChain lists the parents of locale from closest to root, using
// CLDR parent data when x/text can parse the tag and subtag trimming
// otherwise. The chain never contains "und".
func localeParentChain(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return nil
	}

	var chain []string
	seen := map[string]struct{}{locale: {}}
	add := func(code string) {
		if code == "" || code == "und" {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		chain = append(chain, code)
	}

	if tag, err := language.Parse(locale); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			add(parent.String())
		}
	}

	for current := locale; ; {
		idx := strings.LastIndex(current, "-")
		if idx <= 0 {
			break
		}
		current = current[:idx]
		add(current)
	}

	return chain
}
