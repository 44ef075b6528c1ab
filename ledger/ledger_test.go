package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"lensorder/diopter"
	"lensorder/ledger"
	"lensorder/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func coord(t *testing.T, row, col int) diopter.Coordinate {
	t.Helper()
	c, ok := diopter.ToCoordinate(row, col)
	require.True(t, ok)
	return c
}

func TestNormalizeQuantity(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1", "1"},
		{"1.1", "1.5"},
		{"2.5", "2.5"},
		{"0.1", "0.5"},
		{"0.5", "0.5"},
		{"1.51", "2"},
		{"0", "0"},
		{"-0.3", "0"},
	}
	for _, c := range cases {
		got := ledger.NormalizeQuantity(dec(c.in))
		assert.True(t, got.Equal(dec(c.want)), "%s -> %s, got %s", c.in, c.want, got)
	}
}

type LedgerSuite struct {
	suite.Suite
	l       *ledger.Ledger
	product model.LensProduct
	cell    diopter.Coordinate
}

func (s *LedgerSuite) SetupTest() {
	s.l = ledger.New()
	s.product = model.LensProduct{ID: 7, Name: "P", SellingPrice: decimal.NewFromInt(10000)}
	// +1.50 / -0.25
	s.cell = coord(s.T(), 6, diopter.DividerCol+2)
	s.Require().Equal("+1.50", s.cell.SphString())
	s.Require().Equal("-0.25", s.cell.CylString())
}

func (s *LedgerSuite) TestScenarioAddReplaceRemove() {
	r := s.l.Commit(s.product, s.cell, decimal.NewFromInt(1), ledger.Ask)
	s.Equal(ledger.Inserted, r.Outcome)
	s.Equal(1, s.l.Len())
	s.True(s.l.TotalAmount().Equal(decimal.NewFromInt(10000)))

	r = s.l.Commit(s.product, s.cell, decimal.NewFromInt(1), ledger.Add)
	s.Equal(ledger.Added, r.Outcome)
	s.True(r.Item.Quantity.Equal(decimal.NewFromInt(2)))
	s.True(s.l.TotalAmount().Equal(decimal.NewFromInt(20000)))

	r = s.l.Commit(s.product, s.cell, decimal.NewFromInt(3), ledger.Replace)
	s.Equal(ledger.Replaced, r.Outcome)
	s.True(s.l.TotalQuantity().Equal(decimal.NewFromInt(3)))
	s.True(s.l.TotalAmount().Equal(decimal.NewFromInt(30000)))

	s.True(s.l.Remove(s.product.ID, s.cell))
	s.Equal(0, s.l.Len())
	s.False(s.l.Remove(s.product.ID, s.cell), "remove is idempotent")
}

func (s *LedgerSuite) TestAskOnCollisionDoesNotMutate() {
	s.l.Commit(s.product, s.cell, decimal.NewFromInt(1), ledger.Ask)
	before := s.l.Items()

	r := s.l.Commit(s.product, s.cell, decimal.NewFromInt(2), ledger.Ask)
	s.Equal(ledger.Conflict, r.Outcome)
	s.True(r.Existing.Equal(decimal.NewFromInt(1)))
	s.True(r.Incoming.Equal(decimal.NewFromInt(2)))
	s.Equal(before, s.l.Items())
}

func (s *LedgerSuite) TestRejectsNonPositive() {
	r := s.l.Commit(s.product, s.cell, decimal.Zero, ledger.Ask)
	s.Equal(ledger.Rejected, r.Outcome)
	r = s.l.Commit(s.product, s.cell, dec("-1"), ledger.Replace)
	s.Equal(ledger.Rejected, r.Outcome)
	s.Equal(0, s.l.Len())
}

func (s *LedgerSuite) TestQuantityIsNormalizedOnCommit() {
	r := s.l.Commit(s.product, s.cell, dec("1.1"), ledger.Ask)
	s.True(r.Item.Quantity.Equal(dec("1.5")))
}

func (s *LedgerSuite) TestEditOperations() {
	r := s.l.Commit(s.product, s.cell, decimal.NewFromInt(1), ledger.Ask)
	id := r.Item.ID
	s.NotEmpty(id)

	s.NoError(s.l.SetQuantity(id, dec("2.2")))
	it, ok := s.l.Find(s.product.ID, s.cell)
	s.Require().True(ok)
	s.True(it.Quantity.Equal(dec("2.5")))

	s.ErrorIs(s.l.SetQuantity(id, decimal.Zero), ledger.ErrInvalidQuantity)
	s.ErrorIs(s.l.SetUnitPrice(id, dec("-1")), ledger.ErrInvalidPrice)
	s.NoError(s.l.SetUnitPrice(id, decimal.NewFromInt(8000)))

	it, _ = s.l.Find(s.product.ID, s.cell)
	s.True(it.PriceOverridden)
	s.True(s.l.TotalAmount().Equal(decimal.NewFromInt(20000)))

	s.ErrorIs(s.l.SetQuantity("missing", decimal.NewFromInt(1)), ledger.ErrItemNotFound)
	s.NoError(s.l.RemoveByID(id))
	s.ErrorIs(s.l.RemoveByID(id), ledger.ErrItemNotFound)
}

func (s *LedgerSuite) TestItemsIsACopy() {
	s.l.Commit(s.product, s.cell, decimal.NewFromInt(1), ledger.Ask)
	items := s.l.Items()
	items[0].Quantity = decimal.NewFromInt(99)
	it, _ := s.l.Find(s.product.ID, s.cell)
	s.True(it.Quantity.Equal(decimal.NewFromInt(1)))
}

func (s *LedgerSuite) TestClear() {
	s.l.Commit(s.product, s.cell, decimal.NewFromInt(1), ledger.Ask)
	s.l.Clear()
	s.Equal(0, s.l.Len())
	s.True(s.l.TotalAmount().IsZero())
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

// 임의의 커밋 순서에서도 (상품, SPH, CYL) 중복이 생기지 않는지 확인합니다.
func TestLedgerUniqueness(t *testing.T) {
	l := ledger.New()
	products := []model.LensProduct{
		{ID: 1, SellingPrice: decimal.NewFromInt(5000)},
		{ID: 2, SellingPrice: decimal.NewFromInt(7000)},
	}
	modes := []ledger.Mode{ledger.Ask, ledger.Add, ledger.Replace}

	n := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < diopter.Columns; col += 3 {
			c, ok := diopter.ToCoordinate(row, col)
			if !ok {
				continue
			}
			for _, p := range products {
				for _, m := range modes {
					n++
					l.Commit(p, c, decimal.NewFromInt(int64(n%4+1)), m)
				}
			}
		}
	}

	seen := map[string]bool{}
	for _, it := range l.Items() {
		key := it.Sph + "|" + it.Cyl + "|" + string(rune('0'+it.Product.ID))
		assert.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
		assert.True(t, it.Quantity.IsPositive())
	}
	assert.Equal(t, len(seen), l.Len())
}

func TestZeroSphFromBothHalvesSharesKey(t *testing.T) {
	l := ledger.New()
	p := model.LensProduct{ID: 1}
	minus := coord(t, 0, diopter.DividerCol-1)
	plus := coord(t, 0, diopter.DividerCol+1)

	l.Commit(p, minus, decimal.NewFromInt(1), ledger.Ask)
	r := l.Commit(p, plus, decimal.NewFromInt(1), ledger.Ask)
	assert.Equal(t, ledger.Conflict, r.Outcome)
	assert.Equal(t, 1, l.Len())
}
