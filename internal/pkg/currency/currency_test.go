package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVNDNumber(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		expected string
	}{
		{"zero", 0, "0"},
		{"under one group", 999, "999"},
		{"exactly one group", 1000, "1.000"},
		{"typical price", 10000, "10.000"},
		{"two groups", 1250000, "1.250.000"},
		{"three groups", 1234567890, "1.234.567.890"},
		{"negative", -45000, "-45.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatVNDNumber(tt.amount))
		})
	}
}

func TestFormatVND(t *testing.T) {
	assert.Equal(t, "10.000 ₫", FormatVND(10000))
	assert.Equal(t, "0 ₫", FormatVND(0))
	assert.Equal(t, "-5.000 ₫", FormatVND(-5000))
}

func TestFormatVNDWithSuffix(t *testing.T) {
	assert.Equal(t, "10.000 VND", FormatVNDWithSuffix(10000, "VND"))
	assert.Equal(t, "29.000 đ", FormatVNDWithSuffix(29000, "đ"))
}
