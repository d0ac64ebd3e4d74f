package tgskema

import "math"

// Kind classifies candidate values for constraints and diagnostics.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindString
	KindBoolean
	KindObject
	KindArray
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// numberLike matches json.Number from encoding/json and go-json alike.
type numberLike interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

// KindOf reports the kind of v. Numbers without a fractional part are
// integers regardless of their Go type, since JSON does not distinguish them.
func KindOf(v any) Kind {
	switch t := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case string:
		return KindString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger
	case float32:
		return floatKind(float64(t))
	case float64:
		return floatKind(t)
	case numberLike:
		if _, err := t.Int64(); err == nil {
			return KindInteger
		}
		if _, err := t.Float64(); err == nil {
			return KindFloat
		}
		return KindUnknown
	case Model, WireMap, map[string]any:
		return KindObject
	case []any, []Model, [][]Model, []string, []int64, []map[string]any:
		return KindArray
	default:
		return KindUnknown
	}
}

func floatKind(f float64) Kind {
	if isIntegral(f) {
		return KindInteger
	}
	return KindFloat
}

func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) && math.Abs(f) < 1<<63
}

// asInt64 converts integral values of any numeric representation.
func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), uint64(t) <= math.MaxInt64
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), t <= math.MaxInt64
	case float32:
		if isIntegral(float64(t)) {
			return int64(t), true
		}
	case float64:
		if isIntegral(t) {
			return int64(t), true
		}
	case numberLike:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
	}
	return 0, false
}

// asFloat64 converts any numeric representation.
func asFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case numberLike:
		f, err := t.Float64()
		return f, err == nil
	}
	if n, ok := asInt64(v); ok {
		return float64(n), true
	}
	return 0, false
}
