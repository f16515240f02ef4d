package frontend

import "sync"

// FallbackResolver resolves the locales consulted after the requested one.
type FallbackResolver interface {
	Resolve(locale string) []string
}

// FallbackResolverFunc adapts a function to FallbackResolver.
type FallbackResolverFunc func(locale string) []string

func (fn FallbackResolverFunc) Resolve(locale string) []string {
	return fn(locale)
}

// ParentChainResolver falls back through CLDR parents, then through the
// explicit fallbacks registered with Set, then to the default locale.
type ParentChainResolver struct {
	mu            sync.RWMutex
	defaultLocale string
	explicit      map[string][]string
}

var _ FallbackResolver = &ParentChainResolver{}

// NewParentChainResolver returns a resolver ending at defaultLocale.
func NewParentChainResolver(defaultLocale string) *ParentChainResolver {
	return &ParentChainResolver{
		defaultLocale: normalizeLocale(defaultLocale),
		explicit:      make(map[string][]string),
	}
}

// Set registers explicit fallbacks for locale.
func (r *ParentChainResolver) Set(locale string, fallbacks ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	normalized := make([]string, 0, len(fallbacks))
	for _, fallback := range fallbacks {
		if fallback = normalizeLocale(fallback); fallback != "" {
			normalized = append(normalized, fallback)
		}
	}
	r.explicit[normalizeLocale(locale)] = normalized
}

func (r *ParentChainResolver) Resolve(locale string) []string {
	locale = normalizeLocale(locale)

	r.mu.RLock()
	explicit := r.explicit[locale]
	r.mu.RUnlock()

	seen := map[string]struct{}{locale: {}}
	var chain []string
	add := func(code string) {
		if _, ok := seen[code]; ok || code == "" {
			return
		}
		seen[code] = struct{}{}
		chain = append(chain, code)
	}

	for _, parent := range localeParentChain(locale) {
		add(parent)
	}
	for _, fallback := range explicit {
		add(fallback)
	}
	add(r.defaultLocale)
	return chain
}
