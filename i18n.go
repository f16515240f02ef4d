package frontend

import (
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when neither an override nor a lang attribute is found.
const DefaultLocale = "en"

// Placeholder names are at least two characters long, so "%{n}" is literal text.
var placeholderPattern = regexp.MustCompile(`%\{([^\s}]{2,})\}`)

// Data carries placeholder values and the optional plural "count".
type Data map[string]any

// I18n translates component strings for a single locale. It is read only
// after construction.
type I18n struct {
	translations Object
	locale       string
	tag          language.Tag
	tagOK        bool
	native       bool
	logger       *zap.Logger
}

// I18nOption configures an I18n engine.
type I18nOption func(*I18n)

// WithLocale sets the engine locale.
func WithLocale(locale string) I18nOption {
	return func(i *I18n) {
		if locale = normalizeLocale(locale); locale != "" {
			i.locale = locale
		}
	}
}

// WithoutNativePluralRules forces the hardcoded fallback plural families.
func WithoutNativePluralRules() I18nOption {
	return func(i *I18n) {
		i.native = false
	}
}

// WithI18nLogger sets the logger used for plural form warnings.
func WithI18nLogger(logger *zap.Logger) I18nOption {
	return func(i *I18n) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewI18n returns an engine over translations.
func NewI18n(translations Object, opts ...I18nOption) *I18n {
	i := &I18n{
		translations: translations.Clone(),
		locale:       DefaultLocale,
		native:       true,
		logger:       zap.NewNop(),
	}
	if i.translations == nil {
		i.translations = Object{}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	if tag, err := language.Parse(i.locale); err == nil {
		i.tag, i.tagOK = tag, true
	}
	return i
}

// Locale returns the resolved locale.
func (i *I18n) Locale() string {
	return i.locale
}

func (i *I18n) lookup(key string) (Value, bool) {
	if v, ok := i.translations[key]; ok {
		return v, true
	}
	if strings.Contains(key, ".") {
		return i.translations.Lookup(key)
	}
	return Undefined(), false
}

// T translates key. When data carries a numeric "count" and the entry holds
// plural forms, the form for count is used. Unknown keys translate to the
// key itself.
func (i *I18n) T(key string, data Data) (string, error) {
	if key == "" {
		return "", translationError("lookup key missing")
	}

	translation, _ := i.lookup(key)

	if count, ok := numericCount(data); ok {
		if forms, isObj := translation.Obj(); isObj {
			suffix, err := i.PluralSuffix(key, count)
			if err != nil {
				return "", err
			}
			if form := forms.Get(string(suffix)); form.Truthy() {
				translation = form
			}
		}
	}

	text, ok := translation.Str()
	if !ok {
		return key, nil
	}
	if placeholderPattern.MatchString(text) {
		if data == nil {
			return "", translationError("cannot replace placeholders in string if no option data provided")
		}
		return i.ReplacePlaceholders(text, data)
	}
	return text, nil
}

// MustT is T for callers that log instead of propagating errors.
func (i *I18n) MustT(key string, data Data) string {
	out, err := i.T(key, data)
	if err != nil {
		i.logger.Error("translation failed", zap.String("key", key), zap.Error(err))
		return key
	}
	return out
}

// ReplacePlaceholders substitutes every %{name} in template. False and
// values that are neither strings nor numbers become empty; numbers are
// formatted for the engine locale.
func (i *I18n) ReplacePlaceholders(template string, data Data) (string, error) {
	var failure error
	out := placeholderPattern.ReplaceAllStringFunc(template, func(placeholder string) string {
		if failure != nil {
			return placeholder
		}
		name := placeholderPattern.FindStringSubmatch(placeholder)[1]
		raw, ok := data[name]
		if !ok {
			failure = translationError("no data found to replace %s placeholder in string", placeholder)
			return placeholder
		}
		if s, isString := placeholderString(raw); isString {
			return s
		}
		if n, isNumber := toFloat(raw); isNumber {
			return i.formatNumber(n)
		}
		return ""
	})
	if failure != nil {
		return "", failure
	}
	return out, nil
}

func (i *I18n) formatNumber(n float64) string {
	if !i.tagOK || !isFinite(n) {
		return formatNumber(n)
	}
	p := message.NewPrinter(i.tag)
	return p.Sprint(number.Decimal(n, number.MaxFractionDigits(3)))
}

// PluralSuffix returns the plural form to read for key. Non-finite counts
// resolve to "other"; a missing form falls back to "other" with a warning.
func (i *I18n) PluralSuffix(key string, count any) (PluralCategory, error) {
	n := toNumber(count)
	if !isFinite(n) {
		return PluralOther, nil
	}

	preferred := i.preferredForm(n)

	translation, _ := i.lookup(key)
	if forms, ok := translation.Obj(); ok {
		if forms.Has(string(preferred)) {
			return preferred, nil
		}
		if forms.Has(string(PluralOther)) {
			i.logger.Warn(`i18n: Missing plural form ".` + string(preferred) + `" for "` + i.locale + `" locale. Falling back to ".other".`)
			return PluralOther, nil
		}
	}

	return "", translationError(`Plural form ".other" is required for "%s" locale`, i.locale)
}

func (i *I18n) preferredForm(n float64) PluralCategory {
	if i.HasNativePluralRules() {
		return nativePluralForm(i.tag, n)
	}
	return i.SelectPluralFormUsingFallbackRules(n)
}

// HasNativePluralRules reports whether x/text CLDR data serves the locale.
func (i *I18n) HasNativePluralRules() bool {
	return i.native && i.tagOK
}

// SelectPluralFormUsingFallbackRules resolves count with the hardcoded
// family for the engine locale.
func (i *I18n) SelectPluralFormUsingFallbackRules(count float64) PluralCategory {
	return SelectPluralFormUsingFallbackRules(i.locale, count)
}

// PluralRulesForLocale names the fallback family for the engine locale, or
// returns "" when none applies.
func (i *I18n) PluralRulesForLocale() string {
	family, ok := PluralFamilyForLocale(i.locale)
	if !ok {
		return ""
	}
	return family.Name
}

func numericCount(data Data) (float64, bool) {
	if data == nil {
		return 0, false
	}
	raw, ok := data["count"]
	if !ok {
		return 0, false
	}
	return toFloat(raw)
}

func placeholderString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case Value:
		return v.Str()
	}
	return "", false
}

// toFloat accepts Go numeric kinds and numeric Values.
func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case Value:
		return v.Num()
	}
	return 0, false
}

// toNumber converts any count the way a numeric cast of untyped input does.
func toNumber(raw any) float64 {
	if n, ok := toFloat(raw); ok {
		return n
	}
	switch v := raw.(type) {
	case nil:
		return math.NaN()
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		return parseNumber(v)
	case Value:
		switch v.Kind() {
		case KindString:
			s, _ := v.Str()
			return parseNumber(s)
		case KindBoolean:
			b, _ := v.Boolean()
			return toNumber(b)
		}
	}
	return math.NaN()
}
