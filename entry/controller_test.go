package entry

import (
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lensorder/api"
	"lensorder/diopter"
	"lensorder/model"
)

var (
	cellPlus150Cyl025 = GridCell{Row: 6, Col: diopter.DividerCol + 2}
	plusHalfCyl0      = diopter.DividerCol + 1
)

func testCatalog() model.ProductCatalog {
	return model.ProductCatalog{
		Brands: []model.Brand{{ID: 1, Name: "케미"}, {ID: 2, Name: "빈품목"}},
		Products: []model.LensProduct{
			{ID: 10, Name: "1.60 비구면", Brand: "케미", BrandID: 1, SellingPrice: decimal.NewFromInt(10000)},
			{ID: 11, Name: "1.67 비구면", Brand: "케미", BrandID: 1, SellingPrice: decimal.NewFromInt(20000)},
		},
	}
}

func testStores() []model.Store {
	return []model.Store{
		{ID: 1, Code: "S001", Name: "밝은안경", Phone: "02-555-1234", IsActive: true},
		{ID: 2, Code: "S002", Name: "맑은안경", Phone: "031-222-3333", IsActive: true},
	}
}

func press(c *Controller, keys ...Key) []Effect {
	var out []Effect
	for _, k := range keys {
		out = append(out, c.HandleKey(k)...)
	}
	return out
}

func typeText(c *Controller, s string) []Effect {
	var out []Effect
	for _, r := range s {
		out = append(out, c.HandleKey(Char(r))...)
	}
	return out
}

func findEffect[T Effect](effects []Effect) (T, bool) {
	for _, e := range effects {
		if v, ok := e.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// readyController 는 가맹점 S001, 상품 10 을 고른 상태입니다.
func readyController(t *testing.T) (*Controller, []Effect) {
	t.Helper()
	c := NewController()
	c.SetCatalog(testCatalog())
	c.SetStores(testStores())

	var effects []Effect
	effects = append(effects, typeText(c, "밝은")...)
	effects = append(effects, press(c, Press(KeyEnter))...)
	require.NotNil(t, c.Store())
	require.Equal(t, PaneBrand, c.Pane())

	effects = append(effects, press(c, Press(KeyEnter))...)
	require.Equal(t, PaneProduct, c.Pane())
	effects = append(effects, press(c, Press(KeyEnter))...)
	require.NotNil(t, c.Product())
	require.Equal(t, 10, c.Product().ID)
	return c, effects
}

func focusOf(t *testing.T, c *Controller) GridCell {
	t.Helper()
	cell, ok := c.Focus()
	require.True(t, ok, "expected a focused cell")
	return cell
}

func TestSelectCellRequiresStoreAndProduct(t *testing.T) {
	c := NewController()
	c.SetCatalog(testCatalog())

	effects := c.SelectCell(3, 3)
	_, focused := c.Focus()
	assert.False(t, focused)
	assert.Equal(t, noticeSelectFirst, c.Notice().Text)
	_, alerted := findEffect[Alert](effects)
	assert.True(t, alerted)
}

func TestSelectProductStartsStockLoadAndFocus(t *testing.T) {
	c, effects := readyController(t)

	load, ok := findEffect[LoadStock](effects)
	require.True(t, ok)
	assert.Equal(t, 10, load.ProductID)
	assert.Equal(t, StartCell(), focusOf(t, c))
	assert.Equal(t, PaneGrid, c.Pane())
	assert.True(t, c.StockLoading())
}

func TestDisabledCellNeverCommittable(t *testing.T) {
	c, _ := readyController(t)

	c.SelectCell(0, plusHalfCyl0)
	assert.Equal(t, StartCell(), focusOf(t, c), "click on disabled cell is ignored")
	c.SelectCell(5, diopter.DividerCol)
	assert.Equal(t, StartCell(), focusOf(t, c), "click on divider is ignored")

	press(c, Press(KeyRight))
	assert.Equal(t, StartCell(), focusOf(t, c), "right from row 0 into the plus half is blocked")

	c.SelectCell(1, plusHalfCyl0)
	press(c, Press(KeyUp))
	assert.Equal(t, GridCell{Row: 1, Col: plusHalfCyl0}, focusOf(t, c), "up into row 0 of the plus half is blocked")

	c.SelectCell(StartCell().Row, StartCell().Col)
	for col := diopter.DividerCol + 1; col <= diopter.MaxCol; col++ {
		c.SelectCell(0, col)
		require.Equal(t, StartCell(), focusOf(t, c))
	}
	typeText(c, "2")
	press(c, Press(KeyEnter))
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "+0.00", c.Items()[0].Sph)
	assert.Equal(t, "+0.00", c.Items()[0].Cyl)

	// 포커스가 어떻게든 비활성 셀에 놓여도 반영은 거부됩니다.
	c.focus = &GridCell{Row: 0, Col: plusHalfCyl0}
	typeText(c, "5")
	press(c, Press(KeyEnter))
	assert.Len(t, c.Items(), 1)
}

func TestArrowClamps(t *testing.T) {
	c, _ := readyController(t)

	c.SelectCell(5, diopter.DividerCol-1)
	press(c, Press(KeyRight))
	assert.Equal(t, GridCell{Row: 5, Col: diopter.DividerCol + 1}, focusOf(t, c), "right skips the divider")
	press(c, Press(KeyLeft))
	assert.Equal(t, GridCell{Row: 5, Col: diopter.DividerCol - 1}, focusOf(t, c), "left skips the divider")

	c.SelectCell(5, 0)
	press(c, Press(KeyLeft))
	assert.Equal(t, GridCell{Row: 5, Col: 0}, focusOf(t, c))

	c.SelectCell(diopter.MaxRow, diopter.MaxCol)
	press(c, Press(KeyDown), Press(KeyRight))
	assert.Equal(t, GridCell{Row: diopter.MaxRow, Col: diopter.MaxCol}, focusOf(t, c))

	c.SelectCell(0, 0)
	press(c, Press(KeyUp))
	assert.Equal(t, GridCell{Row: 0, Col: 0}, focusOf(t, c))
	press(c, Press(KeyDown))
	assert.Equal(t, GridCell{Row: 1, Col: 0}, focusOf(t, c))
}

func TestBufferEditing(t *testing.T) {
	c, _ := readyController(t)

	typeText(c, "1..5")
	assert.Equal(t, "1.5", c.Buffer(), "second decimal point is rejected")
	press(c, Press(KeyBackspace))
	assert.Equal(t, "1.", c.Buffer())
	press(c, Press(KeyDelete), Press(KeyDelete))
	assert.Equal(t, "", c.Buffer())
}

func TestEnterIgnoresUnparsableBuffer(t *testing.T) {
	c, _ := readyController(t)

	for _, buf := range []string{".", "0", "0.0"} {
		typeText(c, buf)
		press(c, Press(KeyEnter))
		assert.Equal(t, buf, c.Buffer(), "buffer %q is kept", buf)
		assert.Empty(t, c.Items())
		for range buf {
			press(c, Press(KeyBackspace))
		}
	}

	typeText(c, "1.1")
	press(c, Press(KeyEnter))
	assert.Equal(t, "", c.Buffer())
	require.Len(t, c.Items(), 1)
	assert.True(t, c.Items()[0].Quantity.Equal(decimal.RequireFromString("1.5")))
}

func TestScenarioAddReplaceRemove(t *testing.T) {
	c, _ := readyController(t)
	c.SelectCell(cellPlus150Cyl025.Row, cellPlus150Cyl025.Col)

	typeText(c, "1")
	press(c, Press(KeyEnter))
	require.Len(t, c.Items(), 1)
	it := c.Items()[0]
	assert.Equal(t, "+1.50", it.Sph)
	assert.Equal(t, "-0.25", it.Cyl)
	assert.Equal(t, model.DefaultAxis, it.Axis)
	assert.True(t, c.TotalAmount().Equal(decimal.NewFromInt(10000)))

	typeText(c, "1")
	press(c, Press(KeyEnter))
	o, ok := c.Overlay().(*ConflictOverlay)
	require.True(t, ok)
	assert.Equal(t, ChoiceAdd, o.Selection)
	assert.True(t, o.Existing.Equal(decimal.NewFromInt(1)))
	assert.True(t, o.Incoming.Equal(decimal.NewFromInt(1)))
	press(c, Press(KeyEnter))
	assert.Nil(t, c.Overlay())
	assert.True(t, c.Items()[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, c.TotalAmount().Equal(decimal.NewFromInt(20000)))

	typeText(c, "3")
	press(c, Press(KeyEnter), Press(KeyRight), Press(KeyEnter))
	assert.True(t, c.Items()[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, c.TotalAmount().Equal(decimal.NewFromInt(30000)))

	press(c, Press(KeyBackspace))
	assert.Empty(t, c.Items())
	assert.True(t, c.TotalAmount().IsZero())
}

func TestCommitBeforeMove(t *testing.T) {
	c, _ := readyController(t)
	start := cellPlus150Cyl025
	below := GridCell{Row: start.Row + 1, Col: start.Col}

	c.SelectCell(start.Row, start.Col)
	typeText(c, "1")
	press(c, Press(KeyEnter))

	typeText(c, "2")
	press(c, Press(KeyDown))
	o, ok := c.Overlay().(*ConflictOverlay)
	require.True(t, ok, "arrow commits the buffer first")
	assert.True(t, o.Existing.Equal(decimal.NewFromInt(1)))
	assert.True(t, o.Incoming.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, start, focusOf(t, c), "focus waits for the conflict")
	assert.Equal(t, "", c.Buffer())

	press(c, Press(KeyEnter))
	assert.Equal(t, below, focusOf(t, c))
	assert.True(t, c.Items()[0].Quantity.Equal(decimal.NewFromInt(3)))

	// 빈 셀에서는 바로 반영하고 이동합니다.
	typeText(c, "4")
	press(c, Press(KeyDown))
	assert.Nil(t, c.Overlay())
	assert.Len(t, c.Items(), 2)
	assert.Equal(t, GridCell{Row: below.Row + 1, Col: below.Col}, focusOf(t, c))

	// 취소해도 이동은 실행됩니다.
	press(c, Press(KeyUp))
	typeText(c, "9")
	press(c, Press(KeyRight))
	require.IsType(t, &ConflictOverlay{}, c.Overlay())
	press(c, Press(KeyEscape))
	assert.Nil(t, c.Overlay())
	assert.Equal(t, GridCell{Row: below.Row, Col: below.Col + 1}, focusOf(t, c))
	item, _ := c.ledger.Find(10, mustCoord(t, below))
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(4)), "cancel keeps the existing quantity")
}

func mustCoord(t *testing.T, cell GridCell) diopter.Coordinate {
	t.Helper()
	coord, ok := diopter.ToCoordinate(cell.Row, cell.Col)
	require.True(t, ok)
	return coord
}

func TestConflictWraparoundAndExclusivity(t *testing.T) {
	c, _ := readyController(t)
	typeText(c, "1")
	press(c, Press(KeyEnter))
	typeText(c, "1")
	press(c, Press(KeyEnter))

	o := c.Overlay().(*ConflictOverlay)
	press(c, Press(KeyLeft))
	assert.Equal(t, ChoiceCancel, o.Selection)
	press(c, Press(KeyRight))
	assert.Equal(t, ChoiceAdd, o.Selection)
	press(c, Press(KeyRight), Press(KeyRight))
	assert.Equal(t, ChoiceCancel, o.Selection)
	press(c, Press(KeyRight))
	assert.Equal(t, ChoiceAdd, o.Selection)

	press(c, Press(KeyF9), Char('5'), Press(KeyDown))
	assert.Equal(t, model.OrderTypeStock, c.OrderType(), "hotkeys are blocked while the dialog is open")
	assert.Equal(t, "", c.Buffer())
	assert.Equal(t, StartCell(), focusOf(t, c))

	c.ChooseConflict(ChoiceReplace)
	assert.Nil(t, c.Overlay())
	assert.True(t, c.Items()[0].Quantity.Equal(decimal.NewFromInt(1)))
}

func TestTwoStageEscape(t *testing.T) {
	c, _ := readyController(t)
	typeText(c, "2")
	press(c, Press(KeyEnter), Press(KeyF9))
	c.SetMemo("급함")
	typeText(c, "7")

	press(c, Press(KeyEscape))
	_, focused := c.Focus()
	assert.False(t, focused)
	assert.Equal(t, "", c.Buffer())
	assert.NotNil(t, c.Store())
	assert.NotNil(t, c.Product())
	assert.Equal(t, model.OrderTypeRx, c.OrderType())
	assert.Len(t, c.Items(), 1)
	assert.Equal(t, "급함", c.Memo())

	press(c, Press(KeyEscape))
	assert.Nil(t, c.Store())
	assert.Nil(t, c.Product())
	assert.Zero(t, c.BrandID())
	assert.Equal(t, model.OrderTypeStock, c.OrderType())
	assert.Empty(t, c.Items())
	assert.Equal(t, "", c.Memo())
	assert.Equal(t, PaneStore, c.Pane())
}

func TestIdleGridArrowReentersStartCell(t *testing.T) {
	c, _ := readyController(t)
	c.SelectCell(10, 3)
	press(c, Press(KeyEscape))
	require.Equal(t, PaneGrid, c.Pane())

	press(c, Press(KeyDown))
	assert.Equal(t, StartCell(), focusOf(t, c))
}

func TestFunctionKeys(t *testing.T) {
	c, _ := readyController(t)

	for key, want := range map[KeyCode]model.OrderType{
		KeyF8:  model.OrderTypeTinted,
		KeyF9:  model.OrderTypeRx,
		KeyF10: model.OrderTypeOther,
		KeyF7:  model.OrderTypeStock,
	} {
		press(c, Press(key))
		assert.Equal(t, want, c.OrderType())
	}

	press(c, Press(KeyF6))
	assert.Nil(t, c.Product())
	assert.Equal(t, PaneProduct, c.Pane())
	assert.Equal(t, 0, c.ProductCursor())
	_, focused := c.Focus()
	assert.False(t, focused)

	press(c, Press(KeyDown))
	effects := press(c, Press(KeyEnter))
	require.NotNil(t, c.Product())
	assert.Equal(t, 11, c.Product().ID)
	_, ok := findEffect[LoadStock](effects)
	assert.True(t, ok)

	press(c, Press(KeyF5))
	assert.Nil(t, c.Product())
	assert.Zero(t, c.BrandID())
	assert.Equal(t, PaneBrand, c.Pane())

	press(c, Press(KeyF6))
	assert.Equal(t, PaneBrand, c.Pane(), "no brand selected, stay on the brand selector")
	assert.NotNil(t, c.Store(), "F5 and F6 keep the store")
}

func TestBrandWithoutProductsStaysOnBrand(t *testing.T) {
	c, _ := readyController(t)
	press(c, Press(KeyF5), Press(KeyDown), Press(KeyEnter))
	assert.Equal(t, 2, c.BrandID())
	assert.Equal(t, PaneBrand, c.Pane())
	assert.Empty(t, c.Products())
}

func TestF2SubmitsOnlyWithStoreAndItems(t *testing.T) {
	c, _ := readyController(t)

	effects := press(c, Press(KeyF2))
	_, posted := findEffect[PostOrder](effects)
	assert.False(t, posted, "empty ledger")

	c.SelectCell(cellPlus150Cyl025.Row, cellPlus150Cyl025.Col)
	typeText(c, "2")
	press(c, Press(KeyEnter), Press(KeyF8))
	c.SetMemo("오후 배송")

	effects = press(c, Press(KeyF2))
	post, posted := findEffect[PostOrder](effects)
	require.True(t, posted)
	assert.True(t, c.Submitting())
	assert.Equal(t, 1, post.Request.StoreID)
	assert.Equal(t, model.OrderTypeTinted, post.Request.OrderType)
	assert.Equal(t, "오후 배송", post.Request.Memo)
	require.Len(t, post.Request.Items, 1)
	assert.Equal(t, model.CreateOrderItem{ProductID: 10, Quantity: 2, Sph: "+1.50", Cyl: "-0.25", Axis: "0"}, post.Request.Items[0])

	effects = press(c, Press(KeyF2))
	_, posted = findEffect[PostOrder](effects)
	assert.False(t, posted, "a submit is already in flight")
}

func TestSubmitPreconditions(t *testing.T) {
	c := NewController()
	effects, err := c.Submit()
	assert.ErrorIs(t, err, ErrNoStore)
	_, posted := findEffect[PostOrder](effects)
	assert.False(t, posted)
	assert.Equal(t, noticeSubmitNeeds, c.Notice().Text)

	c, _ = readyController(t)
	_, err = c.Submit()
	assert.ErrorIs(t, err, ErrEmptyLedger)

	typeText(c, "1")
	press(c, Press(KeyEnter))
	c.FocusPane(PaneStore)
	typeText(c, "x")
	require.Nil(t, c.Store(), "typing in the search box deselects the store")

	effects, err = c.Submit()
	assert.ErrorIs(t, err, ErrNoStore)
	_, posted = findEffect[PostOrder](effects)
	assert.False(t, posted)
	assert.Len(t, c.Items(), 1, "ledger is unchanged")
}

func TestFinishSubmit(t *testing.T) {
	c, _ := readyController(t)
	typeText(c, "1")
	press(c, Press(KeyEnter))
	_, err := c.Submit()
	require.NoError(t, err)

	effects := c.FinishSubmit(model.CreatedOrder{}, &api.StatusError{StatusCode: http.StatusBadRequest, Message: "비활성 가맹점입니다."})
	assert.False(t, c.Submitting())
	assert.Equal(t, NoticeError, c.Notice().Level)
	assert.Equal(t, "주문 생성 실패: 비활성 가맹점입니다.", c.Notice().Text)
	assert.Len(t, c.Items(), 1)
	assert.NotNil(t, c.Store())
	_, printed := findEffect[PrintOrder](effects)
	assert.False(t, printed)

	c.FinishSubmit(model.CreatedOrder{}, errors.New("connection refused"))
	assert.Equal(t, noticeSubmitFailed, c.Notice().Text)

	_, err = c.Submit()
	require.NoError(t, err)
	effects = c.FinishSubmit(model.CreatedOrder{ID: 7, OrderNo: "101"}, nil)
	p, printed := findEffect[PrintOrder](effects)
	require.True(t, printed)
	assert.Equal(t, PrintOrder{OrderID: 7, OrderNo: "101"}, p)
	assert.Empty(t, c.Items())
	assert.Nil(t, c.Store())
	assert.Nil(t, c.Product())
	assert.Equal(t, PaneStore, c.Pane())
	assert.Contains(t, c.Notice().Text, "101")
}

func TestLedgerPaneEditing(t *testing.T) {
	c, _ := readyController(t)
	typeText(c, "1")
	press(c, Press(KeyDown))
	typeText(c, "2")
	press(c, Press(KeyEnter))
	require.Len(t, c.Items(), 2)

	c.FocusPane(PaneLedger)
	press(c, Char('e'))
	edit, ok := c.Overlay().(*EditOverlay)
	require.True(t, ok)
	assert.Equal(t, EditQuantity, edit.Kind)
	typeText(c, "0")
	press(c, Press(KeyEnter))
	assert.NotNil(t, c.Overlay(), "zero quantity keeps the dialog open")
	press(c, Press(KeyBackspace))
	typeText(c, "2.2")
	press(c, Press(KeyEnter))
	assert.Nil(t, c.Overlay())
	assert.True(t, c.Items()[0].Quantity.Equal(decimal.RequireFromString("2.5")))

	press(c, Press(KeyDown), Char('p'))
	typeText(c, "8000")
	press(c, Press(KeyEnter))
	assert.True(t, c.Items()[1].PriceOverridden)
	assert.True(t, c.TotalAmount().Equal(decimal.NewFromInt(25000+16000)))

	effects, err := c.Submit()
	require.NoError(t, err)
	post, _ := findEffect[PostOrder](effects)
	assert.Nil(t, post.Request.Items[0].UnitPrice)
	require.NotNil(t, post.Request.Items[1].UnitPrice)
	assert.Equal(t, 8000.0, *post.Request.Items[1].UnitPrice)
	c.FinishSubmit(model.CreatedOrder{}, errors.New("offline"))

	press(c, Char('p'), Press(KeyEscape))
	assert.Nil(t, c.Overlay())

	press(c, Press(KeyDelete))
	assert.Len(t, c.Items(), 1)
	assert.Equal(t, 0, c.LedgerCursor())
	press(c, Char('c'))
	assert.Empty(t, c.Items())
	assert.NotNil(t, c.Store())
}

func TestTabCommitsBufferBeforeLeavingGrid(t *testing.T) {
	c, _ := readyController(t)
	typeText(c, "3")
	press(c, Press(KeyTab))
	assert.Equal(t, PaneLedger, c.Pane())
	require.Len(t, c.Items(), 1)
	assert.True(t, c.Items()[0].Quantity.Equal(decimal.NewFromInt(3)))

	press(c, Press(KeyBacktab))
	assert.Equal(t, PaneGrid, c.Pane())
	press(c, Press(KeyTab), Press(KeyTab))
	assert.Equal(t, PaneMemo, c.Pane())
	typeText(c, "내일")
	press(c, Press(KeyBackspace))
	assert.Equal(t, "내", c.Memo())
	press(c, Press(KeyTab))
	assert.Equal(t, PaneStore, c.Pane())
}

func TestStoreSearch(t *testing.T) {
	c := NewController()
	typeText(c, "555")
	assert.Empty(t, c.StoreResults(), "stores are not loaded yet")

	c.SetStores(testStores())
	require.Len(t, c.StoreResults(), 1)
	assert.Equal(t, "S001", c.StoreResults()[0].Code)

	press(c, Press(KeyBackspace), Press(KeyBackspace), Press(KeyBackspace))
	typeText(c, "안경")
	require.Len(t, c.StoreResults(), 2)
	press(c, Press(KeyDown), Press(KeyDown), Press(KeyDown))
	assert.Equal(t, 1, c.StoreCursor())
	press(c, Press(KeyEnter))
	require.NotNil(t, c.Store())
	assert.Equal(t, "S002", c.Store().Code)
	assert.Equal(t, "", c.StoreQuery())
	assert.Equal(t, PaneBrand, c.Pane())
}

func TestApplyStockDropsStaleGeneration(t *testing.T) {
	c, effects := readyController(t)
	first, _ := findEffect[LoadStock](effects)

	press(c, Press(KeyF6), Press(KeyDown))
	effects = press(c, Press(KeyEnter))
	second, _ := findEffect[LoadStock](effects)
	require.NotEqual(t, first.Generation, second.Generation)

	grid := func(stock int) model.DiopterGridResponse {
		return model.DiopterGridResponse{Grid: map[string]map[string]model.DiopterCell{
			"0": {"0": {Stock: stock}},
		}}
	}

	c.ApplyStock(first.Generation, grid(99), nil)
	_, ok := c.StockAt(StartCell())
	assert.False(t, ok, "late response for the previous product is dropped")
	assert.True(t, c.StockLoading())

	c.ApplyStock(second.Generation, grid(4), nil)
	n, ok := c.StockAt(StartCell())
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	effects = press(c, Press(KeyF6), Press(KeyEnter))
	third, _ := findEffect[LoadStock](effects)
	c.ApplyStock(third.Generation, model.DiopterGridResponse{}, errors.New("timeout"))
	_, ok = c.StockAt(StartCell())
	assert.False(t, ok)
	assert.False(t, c.StockLoading())
}
