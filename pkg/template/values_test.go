package template

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{42, "42"},
		{-1.5, "-1.5"},
		{0.1, "0.1"},
		{1e-6, "0.000001"},
		{1e-7, "1e-7"},
		{1.5e-7, "1.5e-7"},
		{123456789012345680000, "123456789012345680000"},
		{1e21, "1e+21"},
		{-2.5e25, "-2.5e+25"},
		{1e100, "1e+100"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in), "formatNumber(%v)", tt.in)
	}
}

func TestFormatValue_Integers(t *testing.T) {
	assert.Equal(t, "10000000000000000000", formatValue(uint64(1e19)))
	// Beyond 2^53 integers lose precision, as they do in JavaScript.
	assert.Equal(t, "9007199254740992", formatValue(int64(9007199254740993)))
	assert.Equal(t, "1e+21", formatValue(1e21))
}
