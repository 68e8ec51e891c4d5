package lua

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	testCases := []struct {
		value Value
		str   string
	}{
		{nil, "nil"},
		{true, "true"},
		{false, "false"},
		{int64(42), "42"},
		{int64(-7), "-7"},
		{3.14, "3.14"},
		{1.0, "1.0"},
		{-0.5, "-0.5"},
		{100.0, "100.0"},
		{1e100, "1e+100"},
		{0.1 + 0.2, "0.3"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
		{"hello", "hello"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		assert.Equal(tc.str, ToString(tc.value))
	}
	assert.True(strings.HasPrefix(ToString(NewTable()), "table: 0x"))
	assert.True(strings.HasPrefix(ToString(&Closure{}), "function: 0x"))
	assert.True(strings.HasPrefix(ToString(NewBuiltin("print")), "builtin: 0x"))
}

func TestTypeName(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("nil", TypeName(nil))
	assert.Equal("boolean", TypeName(true))
	assert.Equal("number", TypeName(int64(1)))
	assert.Equal("number", TypeName(1.5))
	assert.Equal("string", TypeName(""))
	assert.Equal("table", TypeName(NewTable()))
	assert.Equal("function", TypeName(&Closure{}))
	assert.Equal("function", TypeName(NewBuiltin("f")))
}

func TestTruthy(t *testing.T) {
	assert := assert.New(t)
	assert.False(Truthy(nil))
	assert.False(Truthy(false))
	assert.True(Truthy(true))
	assert.True(Truthy(int64(0)))
	assert.True(Truthy(""))
	assert.True(Truthy(NewTable()))
}

func TestRawEqual(t *testing.T) {
	t1, t2 := NewTable(), NewTable()
	testCases := []struct {
		a, b  Value
		equal bool
	}{
		{nil, nil, true},
		{int64(1), 1.0, true},
		{1.0, int64(1), true},
		{int64(1), 1.5, false},
		{int64(1), "1", false},
		{"a", "a", true},
		{true, true, true},
		{true, int64(1), false},
		{math.NaN(), math.NaN(), false},
		{int64(math.MaxInt64), float64(math.MaxInt64), false},
		{t1, t1, true},
		{t1, t2, false},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		assert.Equal(tc.equal, RawEqual(tc.a, tc.b), "%v == %v", tc.a, tc.b)
	}
}

func TestStringToNumber(t *testing.T) {
	testCases := []struct {
		str   string
		value Value
		ok    bool
	}{
		{"10", int64(10), true},
		{"  10  ", int64(10), true},
		{"-10", int64(-10), true},
		{"+1.5", 1.5, true},
		{"0x1F", int64(31), true},
		{"1e2", 100.0, true},
		{"\t.5\n", 0.5, true},
		{"", nil, false},
		{"abc", nil, false},
		{"1 2", nil, false},
		{"--1", nil, false},
		{"1e", nil, false},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		value, ok := StringToNumber(tc.str)
		assert.Equal(tc.ok, ok, tc.str)
		assert.Equal(tc.value, value, tc.str)
	}
}

func TestParseNumeral(t *testing.T) {
	testCases := []struct {
		text  string
		value Value
	}{
		{"0", int64(0)},
		{"9223372036854775807", int64(math.MaxInt64)},
		{"9223372036854775808", 9223372036854775808.0},
		{"0x7fffffffffffffff", int64(math.MaxInt64)},
		{"0x10000000000000001", int64(1)},
		{"0xA", int64(10)},
		{"0x1p4", 16.0},
		{"0x.1", 0.0625},
		{"1e309", math.Inf(1)},
		{"2.5", 2.5},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		value, ok := parseNumeral(tc.text)
		assert.True(ok, tc.text)
		assert.Equal(tc.value, value, tc.text)
	}
}
