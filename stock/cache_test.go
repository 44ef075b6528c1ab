package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lensorder/diopter"
	"lensorder/model"
	"lensorder/stock"
)

func TestFlattenCanonicalizesKeys(t *testing.T) {
	resp := model.DiopterGridResponse{Grid: map[string]map[string]model.DiopterCell{
		"-1.5":  {"-0.25": {Stock: 3}, "0": {Stock: 7}},
		"+0.00": {"-0.00": {Stock: 1}},
		"bad":   {"0": {Stock: 9}},
	}}
	g := stock.Flatten(resp)
	assert.Equal(t, 3, g["-1.50"]["-0.25"])
	assert.Equal(t, 7, g["-1.50"]["+0.00"])
	assert.Equal(t, 1, g["+0.00"]["+0.00"])
	assert.NotContains(t, g, "bad")
}

func TestCacheDropsStaleResponses(t *testing.T) {
	c := stock.NewCache()
	first := c.Begin(1)
	second := c.Begin(2)

	late := stock.Grid{"+1.50": {"-0.25": 99}}
	assert.False(t, c.Apply(first, late), "response for the previous product is ignored")

	coord, ok := diopter.ToCoordinate(6, diopter.DividerCol+2)
	require.True(t, ok)
	_, found := c.Lookup(coord)
	assert.False(t, found)
	assert.True(t, c.Loading())

	assert.True(t, c.Apply(second, stock.Grid{"+1.50": {"-0.25": 4}}))
	n, found := c.Lookup(coord)
	assert.True(t, found)
	assert.Equal(t, 4, n)
	assert.Equal(t, 2, c.ProductID())
	assert.False(t, c.Loading())
}

func TestCacheBeginDiscardsPreviousGrid(t *testing.T) {
	c := stock.NewCache()
	g := c.Begin(1)
	c.Apply(g, stock.Grid{"+1.50": {"-0.25": 4}})
	c.Begin(2)

	coord, _ := diopter.ToCoordinate(6, diopter.DividerCol+2)
	_, found := c.Lookup(coord)
	assert.False(t, found, "stale entries are never merged into the new product")
}

func TestCacheFailDegradesToEmpty(t *testing.T) {
	c := stock.NewCache()
	g := c.Begin(1)
	assert.True(t, c.Fail(g))
	assert.False(t, c.Loading())

	coord, _ := diopter.ToCoordinate(0, diopter.DividerCol-1)
	_, found := c.Lookup(coord)
	assert.False(t, found)

	assert.False(t, c.Fail(g-1))
}
