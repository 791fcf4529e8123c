package aioconf

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Kind identifies the value type of an option. It is a closed set: every
// supported kind carries its own parse and format behavior, selected by
// explicit switches rather than stored callables.
type Kind int

const (
	// KindString is the default kind; raw values are taken verbatim.
	KindString Kind = iota
	// KindInt coerces to int64.
	KindInt
	// KindFloat coerces to float64.
	KindFloat
	// KindBool coerces to bool using the token set {1, true, yes, on}.
	KindBool
)

// String returns the canonical name used in spec JSON documents.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "str"
	}
}

// KindFromName maps a canonical type name to its Kind. Unrecognized names
// fall back to KindString, keeping spec parsing tolerant.
func KindFromName(name string) Kind {
	switch name {
	case "int", "integer":
		return KindInt
	case "float", "double":
		return KindFloat
	case "bool", "boolean":
		return KindBool
	default:
		return KindString
	}
}

// trueTokens are the raw strings recognized as boolean true, compared
// case-insensitively. Any other string coerces to false without error.
var trueTokens = map[string]bool{
	"1":    true,
	"true": true,
	"yes":  true,
	"on":   true,
}

// isBoolToken reports whether s is a recognized boolean spelling. Used by the
// CLI extractor to decide whether a token following a bool flag is its value.
func isBoolToken(s string) bool {
	switch strings.ToLower(s) {
	case "1", "0", "true", "false", "yes", "no", "on", "off":
		return true
	}
	return false
}

// Parse converts a raw source string to the kind's canonical scalar type
// (string, int64, float64, or bool). Malformed numeric input is an error;
// boolean input never fails, unrecognized tokens are simply false.
func (k Kind) Parse(raw string) (any, error) {
	switch k {
	case KindInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as int: %w", raw, err)
		}
		return i, nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as float: %w", raw, err)
		}
		return f, nil
	case KindBool:
		return trueTokens[strings.ToLower(raw)], nil
	default:
		return raw, nil
	}
}

// Coerce converts an already-decoded value (from a JSON/YAML/TOML/INI parse,
// or a declared default) to the kind's canonical scalar type. Strings go
// through Parse; numeric types are widened or truncated as needed.
func (k Kind) Coerce(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch k {
	case KindString:
		return coerceString(v)
	case KindInt:
		return coerceInt(v)
	case KindFloat:
		return coerceFloat(v)
	case KindBool:
		return coerceBool(v)
	}
	return v, nil
}

// Format renders a canonical scalar back to text, the inverse of Parse.
func (k Kind) Format(v any) string {
	return formatScalar(v)
}

func coerceString(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	}
	return nil, fmt.Errorf("cannot coerce %T to string", v)
}

func coerceInt(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return KindInt.Parse(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot coerce %q to int: %w", val.String(), err)
		}
		return int64(f), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		// Truncate, matching text-to-number conversion of whole floats
		return int64(rv.Float()), nil
	}
	return nil, fmt.Errorf("cannot coerce %T to int", v)
}

func coerceFloat(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return KindFloat.Parse(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot coerce %q to float: %w", val.String(), err)
		}
		return f, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	}
	return nil, fmt.Errorf("cannot coerce %T to float", v)
}

func coerceBool(v any) (any, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		return trueTokens[strings.ToLower(val)], nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot coerce %q to bool: %w", val.String(), err)
		}
		return f != 0, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, nil
	}
	return nil, fmt.Errorf("cannot coerce %T to bool", v)
}

// formatScalar renders a resolved leaf value as text for INI output.
func formatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
