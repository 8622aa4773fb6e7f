package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 14155.56, RoundWithTwoDecimalPlace(14155.556))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, -10.46, RoundWithTwoDecimalPlace(-10.455))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$14,155.56", FormatMoney(14155.556))
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "$999.99", FormatMoney(999.99))
	assert.Equal(t, "$1,000.00", FormatMoney(1000))
	assert.Equal(t, "$1,234,567.89", FormatMoney(1234567.89))
	assert.Equal(t, "-$1,415.50", FormatMoney(-1415.50))
}
