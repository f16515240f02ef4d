package frontend

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Translations maps a locale code to its catalog.
type Translations map[string]Object

// Loader retrieves the translations used to seed a CatalogStore.
type Loader interface {
	Load() (Translations, error)
}

// LoaderFunc adapts a bare function to Loader.
type LoaderFunc func() (Translations, error)

// Load implements Loader for LoaderFunc
func (fn LoaderFunc) Load() (Translations, error) {
	return fn()
}

// FileLoader reads JSON and YAML catalog files shaped as
// {locale: {key: string | {category: string} | {nested keys}}}.
// Later files override earlier ones key by key.
type FileLoader struct {
	paths []string
}

var _ Loader = &FileLoader{}

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

// LoadCatalogFiles is NewFileLoader(paths...).Load().
func LoadCatalogFiles(paths ...string) (Translations, error) {
	return NewFileLoader(paths...).Load()
}

func (l *FileLoader) Load() (Translations, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, ErrNoCatalogPaths
	}

	out := make(Translations)
	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", path, err)
		}

		src, err := decodeTranslationFile(path, data)
		if err != nil {
			return nil, fmt.Errorf("i18n: decode %s: %w", path, err)
		}

		for locale, catalog := range src {
			out[locale] = MergeConfigs(out[locale], catalog)
		}
	}
	return out, nil
}

func decodeTranslationFile(path string, data []byte) (Translations, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var raw map[string]map[string]any
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	if len(raw) == 0 {
		return nil, errors.New("empty translations file")
	}

	result := make(Translations, len(raw))
	for locale, messages := range raw {
		code := normalizeLocale(locale)
		if code == "" {
			return nil, fmt.Errorf("empty locale in %s", path)
		}
		catalog, err := buildCatalog(messages)
		if err != nil {
			return nil, fmt.Errorf("%s/%w", code, err)
		}
		result[code] = catalog
	}
	return result, nil
}

func buildCatalog(messages map[string]any) (Object, error) {
	catalog := make(Object, len(messages))
	for key, value := range messages {
		if key == "" {
			return nil, errors.New("empty key")
		}
		entry, err := buildEntry(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		catalog[key] = entry
	}
	return catalog, nil
}

func buildEntry(value any) (Value, error) {
	switch v := value.(type) {
	case string:
		return String(v), nil
	case map[string]any:
		if isPluralForms(v) {
			return buildPluralForms(v)
		}
		nested, err := buildCatalog(v)
		if err != nil {
			return Undefined(), err
		}
		return ObjectValue(nested), nil
	default:
		return Undefined(), fmt.Errorf("unsupported message value type: %T", value)
	}
}

func isPluralForms(v map[string]any) bool {
	if len(v) == 0 {
		return false
	}
	for key := range v {
		if _, err := parsePluralCategory(key); err != nil {
			return false
		}
	}
	return true
}

// buildPluralForms requires an "other" form. A lone form of another
// category is promoted to "other".
func buildPluralForms(raw map[string]any) (Value, error) {
	forms := make(Object, len(raw))
	for category, template := range raw {
		cat, err := parsePluralCategory(category)
		if err != nil {
			return Undefined(), err
		}
		text, ok := template.(string)
		if !ok {
			return Undefined(), fmt.Errorf("plural variant %s must be a string, got %T", category, template)
		}
		forms[string(cat)] = String(text)
	}

	if !forms.Has(string(PluralOther)) {
		if len(forms) != 1 {
			return Undefined(), errors.New("missing 'other' plural form")
		}
		for _, category := range forms.Keys() {
			forms[string(PluralOther)] = forms[category]
			delete(forms, category)
		}
	}
	return ObjectValue(forms), nil
}
