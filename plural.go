package frontend

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// PluralCategory is a CLDR cardinal plural category.
type PluralCategory string

const (
	PluralZero  PluralCategory = "zero"
	PluralOne   PluralCategory = "one"
	PluralTwo   PluralCategory = "two"
	PluralFew   PluralCategory = "few"
	PluralMany  PluralCategory = "many"
	PluralOther PluralCategory = "other"
)

// PluralRule maps a non-negative integer count to a category.
type PluralRule func(n int) PluralCategory

// PluralFamily groups the locales sharing one fallback plural rule.
type PluralFamily struct {
	Name    string
	Locales []string
	Rule    PluralRule
}

// Families are matched in this order, first on the full locale and then on
// its primary language subtag.
var pluralFamilies = []PluralFamily{
	{Name: "arabic", Locales: []string{"ar"}, Rule: arabicPlural},
	{Name: "chinese", Locales: []string{"my", "zh", "id", "ja", "jv", "ko", "ms", "th", "vi"}, Rule: chinesePlural},
	{Name: "french", Locales: []string{"hy", "bn", "fr", "gu", "hi", "fa", "pa", "zu"}, Rule: frenchPlural},
	{Name: "german", Locales: []string{
		"af", "sq", "az", "eu", "bg", "ca", "da", "nl", "en", "et", "fi", "ka", "de",
		"el", "hu", "lb", "no", "so", "sw", "sv", "ta", "te", "tr", "ur",
	}, Rule: germanPlural},
	{Name: "irish", Locales: []string{"ga"}, Rule: irishPlural},
	{Name: "russian", Locales: []string{"ru", "uk"}, Rule: russianPlural},
	{Name: "scottish", Locales: []string{"gd"}, Rule: scottishPlural},
	{Name: "spanish", Locales: []string{"pt-PT", "it", "es"}, Rule: spanishPlural},
	{Name: "welsh", Locales: []string{"cy"}, Rule: welshPlural},
}

// PluralFamilies returns the fallback rule families in match order.
func PluralFamilies() []PluralFamily {
	out := make([]PluralFamily, len(pluralFamilies))
	for i, family := range pluralFamilies {
		family.Locales = append([]string(nil), family.Locales...)
		out[i] = family
	}
	return out
}

// PluralFamilyForLocale returns the fallback family used by locale.
func PluralFamilyForLocale(locale string) (PluralFamily, bool) {
	short := primaryLanguage(locale)
	for _, family := range pluralFamilies {
		for _, code := range family.Locales {
			if code == locale || code == short {
				return family, true
			}
		}
	}
	return PluralFamily{}, false
}

// SelectPluralFormUsingFallbackRules resolves count with the hardcoded rule
// family for locale. Locales outside every family resolve to "other".
func SelectPluralFormUsingFallbackRules(locale string, count float64) PluralCategory {
	if !isFinite(count) {
		return PluralOther
	}
	n := ruleOperand(count)
	family, ok := PluralFamilyForLocale(locale)
	if !ok {
		return PluralOther
	}
	return family.Rule(n)
}

// ruleModulus is a power of ten above every exact value the rules compare
// against and a multiple of every modulus they use.
const ruleModulus = 1e12

// ruleOperand returns |floor(count)| as an int. Counts beyond ruleModulus are
// folded into [ruleModulus, 2*ruleModulus) so the low digits survive and the
// conversion cannot overflow.
func ruleOperand(count float64) int {
	n := math.Abs(math.Floor(count))
	if n >= ruleModulus {
		n = ruleModulus + math.Mod(n, ruleModulus)
	}
	return int(n)
}

func arabicPlural(n int) PluralCategory {
	if n >= 0 && n <= 2 {
		return []PluralCategory{PluralZero, PluralOne, PluralTwo}[n]
	}
	if n%100 >= 3 && n%100 <= 10 {
		return PluralFew
	}
	if n%100 >= 11 && n%100 <= 99 {
		return PluralMany
	}
	return PluralOther
}

func chinesePlural(int) PluralCategory {
	return PluralOther
}

func frenchPlural(n int) PluralCategory {
	if n == 0 || n == 1 {
		return PluralOne
	}
	return PluralOther
}

func germanPlural(n int) PluralCategory {
	if n == 1 {
		return PluralOne
	}
	return PluralOther
}

func irishPlural(n int) PluralCategory {
	switch {
	case n == 1:
		return PluralOne
	case n == 2:
		return PluralTwo
	case n >= 3 && n <= 6:
		return PluralFew
	case n >= 7 && n <= 10:
		return PluralMany
	default:
		return PluralOther
	}
}

func russianPlural(n int) PluralCategory {
	lastTwo := n % 100
	last := lastTwo % 10
	switch {
	case last == 1 && lastTwo != 11:
		return PluralOne
	case last >= 2 && last <= 4 && !(lastTwo >= 12 && lastTwo <= 14):
		return PluralFew
	case last == 0 || (last >= 5 && last <= 9) || (lastTwo >= 11 && lastTwo <= 14):
		return PluralMany
	default:
		// Unreachable for integers.
		return PluralOther
	}
}

func scottishPlural(n int) PluralCategory {
	switch {
	case n == 1 || n == 11:
		return PluralOne
	case n == 2 || n == 12:
		return PluralTwo
	case (n >= 3 && n <= 10) || (n >= 13 && n <= 19):
		return PluralFew
	default:
		return PluralOther
	}
}

func spanishPlural(n int) PluralCategory {
	if n == 1 {
		return PluralOne
	}
	if n%1000000 == 0 && n != 0 {
		return PluralMany
	}
	return PluralOther
}

func welshPlural(n int) PluralCategory {
	switch n {
	case 0:
		return PluralZero
	case 1:
		return PluralOne
	case 2:
		return PluralTwo
	case 3:
		return PluralFew
	case 6:
		return PluralMany
	default:
		return PluralOther
	}
}

// nativePluralForm resolves count with the CLDR data bundled in x/text,
// using at most three fraction digits.
func nativePluralForm(tag language.Tag, count float64) PluralCategory {
	digits := strconv.FormatFloat(math.Abs(count), 'f', -1, 64)
	if _, frac, ok := strings.Cut(digits, "."); ok && len(frac) > 3 {
		digits = strings.TrimRight(strconv.FormatFloat(math.Abs(count), 'f', 3, 64), "0")
		digits = strings.TrimSuffix(digits, ".")
	}

	intPart, frac, _ := strings.Cut(digits, ".")
	i, err := strconv.Atoi(intPart)
	if err != nil {
		return PluralOther
	}
	f := 0
	if frac != "" {
		f, _ = strconv.Atoi(frac)
	}
	v := len(frac)
	return fromForm(plural.Cardinal.MatchPlural(tag, i, v, v, f, f))
}

func fromForm(form plural.Form) PluralCategory {
	switch form {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}

func parsePluralCategory(raw string) (PluralCategory, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "zero":
		return PluralZero, nil
	case "one":
		return PluralOne, nil
	case "two":
		return PluralTwo, nil
	case "few":
		return PluralFew, nil
	case "many":
		return PluralMany, nil
	case "other":
		return PluralOther, nil
	default:
		return "", fmt.Errorf("unknown plural category %q", raw)
	}
}
