package frontend

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func characterCountCatalog() Object {
	return MustObject(map[string]any{
		"charactersUnderLimit": map[string]any{
			"one":   "You have %{count} character remaining",
			"other": "You have %{count} characters remaining",
		},
		"charactersAtLimit": "You have 0 characters remaining",
		"charactersOverLimit": map[string]any{
			"one":   "You have %{count} character too many",
			"other": "You have %{count} characters too many",
		},
		"textareaDescription": map[string]any{"other": ""},
	})
}

func TestI18nCharacterCountPlurals(t *testing.T) {
	engines := map[string]*I18n{
		"native":   NewI18n(characterCountCatalog(), WithLocale("en")),
		"fallback": NewI18n(characterCountCatalog(), WithLocale("en"), WithoutNativePluralRules()),
	}

	tests := []struct {
		count any
		want  string
	}{
		{1, "You have 1 character remaining"},
		{5, "You have 5 characters remaining"},
		{0, "You have 0 characters remaining"},
		{int64(2), "You have 2 characters remaining"},
	}

	for name, engine := range engines {
		for _, tc := range tests {
			got, err := engine.T("charactersUnderLimit", Data{"count": tc.count})
			if err != nil {
				t.Fatalf("%s: T(count=%v): %v", name, tc.count, err)
			}
			if got != tc.want {
				t.Fatalf("%s: T(count=%v) = %q want %q", name, tc.count, got, tc.want)
			}
		}
	}
}

func TestI18nMissingKeyFallsBackToKey(t *testing.T) {
	engine := NewI18n(characterCountCatalog())

	got, err := engine.T("missingKey", nil)
	if err != nil || got != "missingKey" {
		t.Fatalf("T(missingKey) = %q,%v", got, err)
	}

	got, err = engine.T("textareaDescription", nil)
	if err != nil || got != "textareaDescription" {
		t.Fatalf("T(object without count) = %q,%v want the key", got, err)
	}
}

func TestI18nEmptyKey(t *testing.T) {
	_, err := NewI18n(nil).T("", nil)
	if !errors.Is(err, ErrTranslation) {
		t.Fatalf("expected translation error, got %v", err)
	}
	if err.Error() != "i18n: lookup key missing" {
		t.Fatalf("error = %q", err.Error())
	}
}

func TestI18nPlainStringAndDottedLookup(t *testing.T) {
	engine := NewI18n(MustObject(map[string]any{
		"hideSection":       "Hide",
		"accordion":         map[string]any{"showSection": "Show"},
		"accordion.literal": "Direct",
	}))

	tests := map[string]string{
		"hideSection":           "Hide",
		"accordion.showSection": "Show",
		"accordion.literal":     "Direct",
		"accordion.missing":     "accordion.missing",
	}
	for key, want := range tests {
		got, err := engine.T(key, nil)
		if err != nil || got != want {
			t.Fatalf("T(%q) = %q,%v want %q", key, got, err, want)
		}
	}
}

func TestI18nPlaceholders(t *testing.T) {
	engine := NewI18n(MustObject(map[string]any{
		"greeting": "Hello %{name}, you have %{count} messages",
		"flagged":  "Value: %{flag}%{obj}",
	}), WithLocale("en"))

	if _, err := engine.T("greeting", nil); err == nil || err.Error() != "i18n: cannot replace placeholders in string if no option data provided" {
		t.Fatalf("expected missing data error, got %v", err)
	}

	_, err := engine.T("greeting", Data{"name": "Ana"})
	if err == nil || err.Error() != "i18n: no data found to replace %{count} placeholder in string" {
		t.Fatalf("expected missing placeholder error, got %v", err)
	}

	got, err := engine.T("greeting", Data{"name": "Ana", "count": 1234})
	if err != nil {
		t.Fatalf("T(greeting): %v", err)
	}
	if got != "Hello Ana, you have 1,234 messages" {
		t.Fatalf("T(greeting) = %q", got)
	}

	got, err = engine.T("flagged", Data{"flag": false, "obj": map[string]any{"a": 1}})
	if err != nil || got != "Value: " {
		t.Fatalf("T(flagged) = %q,%v want suppressed values", got, err)
	}
}

func TestI18nReplacePlaceholdersPlainFormatting(t *testing.T) {
	engine := NewI18n(nil, WithLocale("not a locale"))

	got, err := engine.ReplacePlaceholders("%{count} files", Data{"count": 1234.5})
	if err != nil || got != "1234.5 files" {
		t.Fatalf("ReplacePlaceholders = %q,%v", got, err)
	}

	got, err = engine.ReplacePlaceholders("%{from}-%{to}", Data{"from": String("x"), "to": Number(2)})
	if err != nil || got != "x-2" {
		t.Fatalf("ReplacePlaceholders(Value) = %q,%v", got, err)
	}
}

func TestI18nSingleCharacterBracesAreLiteral(t *testing.T) {
	engine := NewI18n(MustObject(map[string]any{
		"formula": "Use %{n} for the count",
		"mixed":   "%{n} of %{total}",
	}), WithLocale("en"))

	got, err := engine.T("formula", nil)
	if err != nil || got != "Use %{n} for the count" {
		t.Fatalf("T(formula) = %q,%v want the string unchanged", got, err)
	}

	got, err = engine.T("mixed", Data{"total": 3})
	if err != nil || got != "%{n} of 3" {
		t.Fatalf("T(mixed) = %q,%v", got, err)
	}
}

func TestI18nLargeCountWithFallbackRules(t *testing.T) {
	engine := NewI18n(MustObject(map[string]any{
		"files": map[string]any{
			"zero":  "no files",
			"one":   "one file",
			"two":   "two files",
			"few":   "a few files",
			"many":  "many files",
			"other": "files",
		},
	}), WithLocale("ar"), WithoutNativePluralRules())

	for _, count := range []float64{1e30, -1e30} {
		if _, err := engine.T("files", Data{"count": count}); err != nil {
			t.Fatalf("T(files, %g): %v", count, err)
		}
	}

	got, err := engine.T("files", Data{"count": 1e15 + 42})
	if err != nil || got != "many files" {
		t.Fatalf("T(files, 1e15+42) = %q,%v want many files", got, err)
	}
}

func TestI18nPluralSuffix(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	engine := NewI18n(MustObject(map[string]any{
		"onlyOther": map[string]any{"other": "Other"},
		"noOther":   map[string]any{"one": "One"},
		"flat":      "Flat",
	}), WithLocale("en"), WithI18nLogger(zap.New(core)))

	got, err := engine.PluralSuffix("onlyOther", 1)
	if err != nil || got != PluralOther {
		t.Fatalf("PluralSuffix(onlyOther) = %q,%v", got, err)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
	want := `i18n: Missing plural form ".one" for "en" locale. Falling back to ".other".`
	if msg := logs.All()[0].Message; msg != want {
		t.Fatalf("warning = %q want %q", msg, want)
	}

	_, err = engine.PluralSuffix("noOther", 5)
	if err == nil || err.Error() != `i18n: Plural form ".other" is required for "en" locale` {
		t.Fatalf("expected missing other error, got %v", err)
	}

	if _, err := engine.PluralSuffix("flat", 2); err == nil {
		t.Fatal("plain strings have no plural forms")
	}

	for _, count := range []any{"abc", math.Inf(1), nil} {
		got, err := engine.PluralSuffix("missing", count)
		if err != nil || got != PluralOther {
			t.Fatalf("PluralSuffix(%v) = %q,%v want other", count, got, err)
		}
	}

	got, err = engine.PluralSuffix("noOther", "1")
	if err != nil || got != PluralOne {
		t.Fatalf("PluralSuffix(string count) = %q,%v want one", got, err)
	}
}

func TestI18nEmptyPluralFormFallsBackToKey(t *testing.T) {
	engine := NewI18n(MustObject(map[string]any{
		"label": map[string]any{"one": "", "other": "%{count} items"},
	}))

	got, err := engine.T("label", Data{"count": 1})
	if err != nil || got != "label" {
		t.Fatalf("T(label, 1) = %q,%v want the key", got, err)
	}
	got, err = engine.T("label", Data{"count": 3})
	if err != nil || got != "3 items" {
		t.Fatalf("T(label, 3) = %q,%v", got, err)
	}
}

func TestI18nNonNumericCountSkipsPlurals(t *testing.T) {
	engine := NewI18n(characterCountCatalog())
	got, err := engine.T("charactersUnderLimit", Data{"count": "1"})
	if err != nil || got != "charactersUnderLimit" {
		t.Fatalf("T(count string) = %q,%v want the key", got, err)
	}
}

func TestI18nLocaleAndRules(t *testing.T) {
	tests := []struct {
		locale   string
		family   string
		native   bool
		fallback PluralCategory
	}{
		{locale: "cy", family: "welsh", native: true, fallback: PluralMany},
		{locale: "pt_PT", family: "spanish", native: true, fallback: PluralOther},
		{locale: "pt-BR", family: "", native: true, fallback: PluralOther},
		{locale: "en-GB", family: "german", native: true, fallback: PluralOther},
		{locale: "not a locale", family: "", native: false, fallback: PluralOther},
	}

	for _, tc := range tests {
		engine := NewI18n(nil, WithLocale(tc.locale))
		if got := engine.PluralRulesForLocale(); got != tc.family {
			t.Fatalf("PluralRulesForLocale(%s) = %q want %q", tc.locale, got, tc.family)
		}
		if got := engine.HasNativePluralRules(); got != tc.native {
			t.Fatalf("HasNativePluralRules(%s) = %v want %v", tc.locale, got, tc.native)
		}
		if got := engine.SelectPluralFormUsingFallbackRules(6); got != tc.fallback {
			t.Fatalf("SelectPluralFormUsingFallbackRules(%s, 6) = %s want %s", tc.locale, got, tc.fallback)
		}
	}

	if got := NewI18n(nil).Locale(); got != DefaultLocale {
		t.Fatalf("default locale = %q", got)
	}
	if got := NewI18n(nil, WithoutNativePluralRules()).HasNativePluralRules(); got {
		t.Fatal("native rules should be disabled")
	}
}

func TestI18nWelshFallbackThroughEngine(t *testing.T) {
	engine := NewI18n(MustObject(map[string]any{
		"files": map[string]any{
			"zero":  "Dim ffeiliau",
			"one":   "%{count} ffeil",
			"two":   "%{count} ffeil",
			"few":   "%{count} ffeil",
			"many":  "%{count} ffeil",
			"other": "%{count} ffeil",
		},
	}), WithLocale("cy"), WithoutNativePluralRules())

	got, err := engine.T("files", Data{"count": 0})
	if err != nil || got != "Dim ffeiliau" {
		t.Fatalf("T(files, 0) = %q,%v", got, err)
	}
}
