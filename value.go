package frontend

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindString
	KindBoolean
	KindNumber
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindObject:
		return "object"
	default:
		return "undefined"
	}
}

// Value is a configuration leaf or nested object.
type Value struct {
	kind Kind
	str  string
	b    bool
	num  float64
	obj  Object
}

// Object maps option names to values.
type Object map[string]Value

// Undefined returns the empty value. Merging an Undefined over a key replaces it.
func Undefined() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// ObjectValue wraps a nested object.
func ObjectValue(o Object) Value {
	if o == nil {
		o = Object{}
	}
	return Value{kind: KindObject, obj: o}
}

// Kind returns the variant.
func (v Value) Kind() Kind { return v.kind }

// IsUndefined reports whether the value is Undefined.
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

// Str returns the string payload.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Boolean returns the boolean payload.
func (v Value) Boolean() (bool, bool) { return v.b, v.kind == KindBoolean }

// Num returns the numeric payload.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Obj returns the object payload.
func (v Value) Obj() (Object, bool) { return v.obj, v.kind == KindObject }

// Truthy applies the truthiness rules used by the configuration validators.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindObject:
		return true
	default:
		return false
	}
}

// String renders the value the way string interpolation would.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.num)
	case KindObject:
		return "[object Object]"
	default:
		return "undefined"
	}
}

// Interface returns the Go representation: string, bool, float64,
// map[string]any or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.num
	case KindObject:
		return v.obj.Map()
	default:
		return nil
	}
}

func (v Value) clone() Value {
	if v.kind != KindObject {
		return v
	}
	return ObjectValue(v.obj.Clone())
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == math.Trunc(n) && math.Abs(n) < 1e21:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
}

// Get returns the value for key. Missing keys yield Undefined.
func (o Object) Get(key string) Value {
	if o == nil {
		return Undefined()
	}
	return o[key]
}

// Has reports whether key is present, including keys holding Undefined.
func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Lookup resolves a dotted path through nested objects.
func (o Object) Lookup(path string) (Value, bool) {
	current := o
	parts := strings.Split(path, ".")
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return Undefined(), false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, isObj := v.Obj()
		if !isObj {
			return Undefined(), false
		}
		current = next
	}
	return Undefined(), false
}

// String returns the string at key.
func (o Object) String(key string) (string, bool) {
	return o.Get(key).Str()
}

// Bool returns the boolean at key.
func (o Object) Bool(key string) bool {
	b, _ := o.Get(key).Boolean()
	return b
}

// Number returns the number at key.
func (o Object) Number(key string) (float64, bool) {
	return o.Get(key).Num()
}

// Object returns the nested object at key, or an empty object.
func (o Object) Object(key string) Object {
	obj, ok := o.Get(key).Obj()
	if !ok {
		return Object{}
	}
	return obj
}

// Keys returns the keys in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (o Object) Clone() Object {
	if o == nil {
		return nil
	}
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = v.clone()
	}
	return out
}

// Map converts the object to plain Go values.
func (o Object) Map() map[string]any {
	out := make(map[string]any, len(o))
	for k, v := range o {
		out[k] = v.Interface()
	}
	return out
}

// ValueOf converts a decoded JSON/YAML value into a Value.
func ValueOf(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Undefined(), nil
	case Value:
		return v.clone(), nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return Number(float64(v)), nil
	case int8:
		return Number(float64(v)), nil
	case int16:
		return Number(float64(v)), nil
	case int32:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case uint:
		return Number(float64(v)), nil
	case uint8:
		return Number(float64(v)), nil
	case uint16:
		return Number(float64(v)), nil
	case uint32:
		return Number(float64(v)), nil
	case uint64:
		return Number(float64(v)), nil
	case float32:
		return Number(float64(v)), nil
	case float64:
		return Number(v), nil
	case Object:
		return ObjectValue(v.Clone()), nil
	case map[string]any:
		obj, err := ObjectFrom(v)
		if err != nil {
			return Undefined(), err
		}
		return ObjectValue(obj), nil
	case map[string]string:
		obj := make(Object, len(v))
		for k, s := range v {
			obj[k] = String(s)
		}
		return ObjectValue(obj), nil
	default:
		return Undefined(), fmt.Errorf("frontend: unsupported config value type %T", raw)
	}
}

// ObjectFrom converts a decoded map into an Object.
func ObjectFrom(raw map[string]any) (Object, error) {
	out := make(Object, len(raw))
	for k, item := range raw {
		v, err := ValueOf(item)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// MustObject is ObjectFrom for literals known to be valid.
func MustObject(raw map[string]any) Object {
	obj, err := ObjectFrom(raw)
	if err != nil {
		panic(err)
	}
	return obj
}
