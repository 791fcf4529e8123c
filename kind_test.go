package aioconf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindNames(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
	}{
		{KindString, "str"},
		{KindInt, "int"},
		{KindFloat, "float"},
		{KindBool, "bool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.kind, KindFromName(tt.name))
		})
	}

	t.Run("UnknownNameFallsBackToString", func(t *testing.T) {
		assert.Equal(t, KindString, KindFromName("uuid"))
		assert.Equal(t, KindString, KindFromName(""))
	})
}

func TestKindParse(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		raw       string
		expect    any
		expectErr bool
	}{
		{"String", KindString, "hello", "hello", false},
		{"StringNumeric", KindString, "123", "123", false},
		{"Int", KindInt, "42", int64(42), false},
		{"IntNegative", KindInt, "-7", int64(-7), false},
		{"IntMalformed", KindInt, "4x2", nil, true},
		{"IntFloatInput", KindInt, "4.2", nil, true},
		{"Float", KindFloat, "3.25", 3.25, false},
		{"FloatWhole", KindFloat, "8", 8.0, false},
		{"FloatMalformed", KindFloat, "three", nil, true},
		{"BoolTrue", KindBool, "true", true, false},
		{"BoolOne", KindBool, "1", true, false},
		{"BoolYesUpper", KindBool, "YES", true, false},
		{"BoolOnMixed", KindBool, "On", true, false},
		{"BoolFalse", KindBool, "false", false, false},
		{"BoolZero", KindBool, "0", false, false},
		{"BoolArbitrary", KindBool, "banana", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := tt.kind.Parse(tt.raw)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, val)
		})
	}
}

func TestKindCoerce(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		input     any
		expect    any
		expectErr bool
	}{
		{"NilPassesThrough", KindInt, nil, nil, false},
		{"IntFromInt", KindInt, 9000, int64(9000), false},
		{"IntFromFloat", KindInt, 9000.0, int64(9000), false},
		{"IntFromJSONNumber", KindInt, json.Number("9000"), int64(9000), false},
		{"IntFromString", KindInt, "9000", int64(9000), false},
		{"IntFromBool", KindInt, true, nil, true},
		{"FloatFromInt", KindFloat, 3, 3.0, false},
		{"FloatFromJSONNumber", KindFloat, json.Number("0.5"), 0.5, false},
		{"BoolFromBool", KindBool, true, true, false},
		{"BoolFromTokenString", KindBool, "yes", true, false},
		{"BoolFromOtherString", KindBool, "nope", false, false},
		{"BoolFromNumber", KindBool, 1, true, false},
		{"BoolFromZero", KindBool, 0, false, false},
		{"StringFromString", KindString, "x", "x", false},
		{"StringFromInt", KindString, 12, "12", false},
		{"StringFromBool", KindString, false, "false", false},
		{"StringFromJSONNumber", KindString, json.Number("7"), "7", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := tt.kind.Coerce(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, val)
		})
	}
}

func TestFormatScalar(t *testing.T) {
	assert.Equal(t, "hello", formatScalar("hello"))
	assert.Equal(t, "42", formatScalar(int64(42)))
	assert.Equal(t, "0.5", formatScalar(0.5))
	assert.Equal(t, "true", formatScalar(true))
	assert.Equal(t, "", formatScalar(nil))
}
