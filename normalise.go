package frontend

import (
	"math"
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// NormaliseString coerces a raw attribute value. With a property hint the
// value is converted to the hinted type; without one "true"/"false" become
// booleans and finite numeric strings become numbers. Anything else is
// returned untouched, surrounding whitespace included.
func NormaliseString(raw string, property *SchemaProperty) Value {
	trimmed := strings.TrimSpace(raw)

	var outputType PropertyType
	if property != nil {
		outputType = property.Type
	}
	if outputType == "" {
		if trimmed == "true" || trimmed == "false" {
			outputType = TypeBoolean
		}
		if trimmed != "" && isFinite(parseNumber(trimmed)) {
			outputType = TypeNumber
		}
	}

	switch outputType {
	case TypeBoolean:
		return Bool(trimmed == "true")
	case TypeNumber:
		return Number(parseNumber(trimmed))
	default:
		return String(raw)
	}
}

func isFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// parseNumber follows the string-to-number grammar of data attributes:
// optional sign, decimals with exponent, Infinity and 0x/0o/0b integers.
// The empty string is zero; anything unrecognised is NaN.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			if strings.ContainsAny(s[2:], "+-") {
				return math.NaN()
			}
			n, ok := new(big.Int).SetString(s[2:], base)
			if !ok {
				return math.NaN()
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	}

	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

// NormaliseDataset converts a root element dataset into a configuration
// object using the definition's schema. Object properties are filled from
// namespaced keys and always present.
func NormaliseDataset(def *Definition, dataset map[string]string) (Object, error) {
	if def == nil || def.Schema == nil {
		return nil, ConfigError(moduleName(def), "Config passed as parameter into constructor but no schema defined")
	}

	out := Object{}
	for _, field := range sortedProperties(def.Schema) {
		property := def.Schema.Properties[field]
		if raw, ok := dataset[field]; ok {
			out[field] = NormaliseString(raw, &property)
		}
		if property.Type == TypeObject {
			nested, _ := ExtractConfigByNamespace(def.Schema, dataset, field)
			out[field] = ObjectValue(nested)
		}
	}
	return out, nil
}

// ExtractConfigByNamespace builds the nested object for namespace from
// dotted dataset keys such as "i18n.showSection". It reports false when the
// schema does not declare namespace as an object property.
func ExtractConfigByNamespace(schema *Schema, dataset map[string]string, namespace string) (Object, bool) {
	if schema == nil {
		return nil, false
	}
	property, ok := schema.Properties[namespace]
	if !ok || property.Type != TypeObject {
		return nil, false
	}

	root := Object{}
	keys := make([]string, 0, len(dataset))
	for key := range dataset {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == namespace {
			continue
		}
		parts := strings.Split(key, ".")
		if parts[0] != namespace || len(parts) < 2 {
			continue
		}
		current := root
		for _, name := range parts[1 : len(parts)-1] {
			next, isObj := current[name].Obj()
			if !isObj {
				next = Object{}
				current[name] = ObjectValue(next)
			}
			current = next
		}
		current[parts[len(parts)-1]] = NormaliseString(dataset[key], nil)
	}
	return root, true
}

func sortedProperties(schema *Schema) []string {
	fields := make([]string, 0, len(schema.Properties))
	for field := range schema.Properties {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
