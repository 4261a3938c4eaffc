package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12.34", "12.34"},
		{"12.345", "12.35"},
		{"12.344", "12.34"},
		{"0.005", "0.01"},
		{"100", "100.00"},
	}
	for _, tc := range cases {
		got := Round(decimal.RequireFromString(tc.in))
		assert.Equal(t, tc.want, Format(got), tc.in)
	}
}

func TestIsPositive(t *testing.T) {
	assert.True(t, IsPositive(decimal.RequireFromString("0.01")))
	assert.False(t, IsPositive(decimal.RequireFromString("0.004")))
	assert.False(t, IsPositive(decimal.Zero))
	assert.False(t, IsPositive(decimal.RequireFromString("-3")))
}

func TestSum(t *testing.T) {
	assert.True(t, Sum().Equal(decimal.Zero))
	assert.Equal(t, "30.30", Format(Sum(decimal.RequireFromString("10.10"), decimal.RequireFromString("20.20"))))
}
