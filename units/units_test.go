package units_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lensorder/units"
)

func TestAmount(t *testing.T) {
	assert.Equal(t, "30,000원", units.Amount(decimal.NewFromInt(30000)))
	assert.Equal(t, "0원", units.Amount(decimal.Zero))
	assert.Equal(t, "1,234,567", units.Number(decimal.NewFromInt(1234567)))
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, "1.5", units.Quantity(decimal.RequireFromString("1.50")))
	assert.Equal(t, "2", units.Quantity(decimal.NewFromInt(4).Div(decimal.NewFromInt(2))))
	assert.Equal(t, "총 3개", units.Count(decimal.NewFromInt(3)))
}
