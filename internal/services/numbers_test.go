package services

import (
	"encoding/json"
	"math"
	"testing"

	"games_api/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"19.99", 19.99},
		{"  42", 42},
		{"-3.5", -3.5},
		{"+7", 7},
		{".5", 0.5},
		{"5.", 5},
		{"10.00 USD", 10},
		{"1e3", 1000},
		{"1e", 1},
		{"2E-2x", 0.02},
		{"0x10", 0},
		{"Infinity", math.Inf(1)},
		{"-Infinityyy", math.Inf(-1)},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseFloat(tc.in))
		})
	}

	for _, in := range []string{"", "abc", ".", "-", "e5", "  ", "free"} {
		t.Run("nan "+in, func(t *testing.T) {
			assert.True(t, math.IsNaN(ParseFloat(in)))
		})
	}
}

func TestParseID(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"1", 1, true},
		{"42abc", 42, true},
		{" 7", 7, true},
		{"-3", -3, true},
		{"1.9", 1, true},
		{"0x1f", 31, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"0x", 0, false},
		{"99999999999999999999", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseID(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPriceOf(t *testing.T) {
	assert.Equal(t, 19.99, PriceOf(models.StringField("19.99")))
	assert.Equal(t, 12.5, PriceOf(models.NewField(json.RawMessage(`12.5`))))
	assert.True(t, math.IsNaN(PriceOf(models.Field{})))
	assert.True(t, math.IsNaN(PriceOf(models.NewField(json.RawMessage(`null`)))))
	assert.True(t, math.IsNaN(PriceOf(models.NewField(json.RawMessage(`true`)))))
	assert.True(t, math.IsNaN(PriceOf(models.NewField(json.RawMessage(`{"a":1}`)))))
	assert.True(t, math.IsNaN(PriceOf(models.StringField("free"))))
}

func TestFormatFixed(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{19.99, "19.99"},
		{10, "10.00"},
		{0.125, "0.13"},
		{-0.125, "-0.13"},
		{1.005, "1.00"},
		{2.5, "2.50"},
		{1.0 / 3.0, "0.33"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{1e21, "1e+21"},
		{math.Copysign(0, -1), "0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatFixed(tc.in))
		})
	}
}
