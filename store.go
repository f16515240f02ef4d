package frontend

import (
	"sort"
)

// Store exposes read only access to translation catalogs.
type Store interface {
	// Catalog returns the catalog registered for locale and ok=false if missing
	Catalog(locale string) (Object, bool)
	// Get returns the entry for locale/key, walking the fallback chain
	Get(locale, key string) (Value, bool)
	// Locales returns the list of locales known to the store
	Locales() []string
}

// CatalogStore is an in memory store, read only after construction.
type CatalogStore struct {
	translations Translations
	locales      []string
	resolver     FallbackResolver
}

var _ Store = &CatalogStore{}

// StoreOption configures a CatalogStore.
type StoreOption func(*CatalogStore)

// WithFallbackResolver replaces the default parent chain resolver.
func WithFallbackResolver(resolver FallbackResolver) StoreOption {
	return func(s *CatalogStore) {
		if resolver != nil {
			s.resolver = resolver
		}
	}
}

// NewCatalogStore builds an immutable snapshot from data. Without a resolver
// option locales fall back through their CLDR parents to DefaultLocale.
func NewCatalogStore(data Translations, opts ...StoreOption) *CatalogStore {
	s := &CatalogStore{
		translations: make(Translations, len(data)),
		resolver:     NewParentChainResolver(DefaultLocale),
	}

	for locale, catalog := range data {
		if catalog == nil {
			continue
		}
		code := normalizeLocale(locale)
		s.translations[code] = catalog.Clone()
		s.locales = append(s.locales, code)
	}

	// make locales deterministic
	sort.Strings(s.locales)

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NewCatalogStoreFromLoader hydrates a CatalogStore using loader.
func NewCatalogStoreFromLoader(loader Loader, opts ...StoreOption) (*CatalogStore, error) {
	if loader == nil {
		return NewCatalogStore(nil, opts...), nil
	}

	translations, err := loader.Load()
	if err != nil {
		return nil, err
	}

	return NewCatalogStore(translations, opts...), nil
}

func (s *CatalogStore) Catalog(locale string) (Object, bool) {
	if s == nil {
		return nil, false
	}
	catalog, ok := s.translations[normalizeLocale(locale)]
	if !ok {
		return nil, false
	}
	return catalog.Clone(), true
}

// Get returns the entry for key in locale or the first fallback holding it.
func (s *CatalogStore) Get(locale, key string) (Value, bool) {
	if s == nil {
		return Undefined(), false
	}
	locale = normalizeLocale(locale)
	for _, code := range append([]string{locale}, s.resolver.Resolve(locale)...) {
		catalog, ok := s.translations[code]
		if !ok {
			continue
		}
		if v, ok := catalog[key]; ok {
			return v.clone(), true
		}
		if v, ok := catalog.Lookup(key); ok {
			return v.clone(), true
		}
	}
	return Undefined(), false
}

// Resolve merges the fallback chain for locale into one catalog, the
// requested locale taking precedence over its fallbacks.
func (s *CatalogStore) Resolve(locale string) Object {
	if s == nil {
		return Object{}
	}
	locale = normalizeLocale(locale)
	chain := append([]string{locale}, s.resolver.Resolve(locale)...)

	sources := make([]Object, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		if catalog, ok := s.translations[chain[i]]; ok {
			sources = append(sources, catalog)
		}
	}
	return MergeConfigs(sources...)
}

// I18n returns an engine for locale over the resolved catalog.
func (s *CatalogStore) I18n(locale string, opts ...I18nOption) *I18n {
	return NewI18n(s.Resolve(locale), append([]I18nOption{WithLocale(locale)}, opts...)...)
}

// Locales returns a slice with all locale codes
func (s *CatalogStore) Locales() []string {
	if s == nil || len(s.locales) == 0 {
		return nil
	}
	out := make([]string, len(s.locales))
	copy(out, s.locales)
	return out
}
