// Package entry 는 판매전표 입력 화면의 상태 기계입니다.
// 화면 그리기와 네트워크는 다루지 않습니다. 외부 작업은 Effect 로 돌려주고
// 결과는 ApplyStock, FinishSubmit 등으로 다시 받습니다.
package entry

import (
	"github.com/shopspring/decimal"

	"lensorder/diopter"
	"lensorder/ledger"
	"lensorder/model"
	"lensorder/stock"
	"lensorder/store"
)

const (
	noticeSelectFirst  = "가맹점과 상품을 먼저 선택해주세요."
	noticeSubmitNeeds  = "가맹점과 상품을 선택해주세요."
	noticeSubmitFailed = "주문 생성 실패"
)

// Controller 는 주문 입력 화면의 모든 상태를 소유합니다.
// 상태는 이름 있는 전이 함수로만 바뀝니다. 동시 호출은 Session 이 직렬화합니다.
type Controller struct {
	catalog      model.ProductCatalog
	stores       []model.Store
	storesLoaded bool

	pane Pane

	storeQuery   string
	storeResults []model.Store
	storeCursor  int
	store        *model.Store

	brandCursor   int
	brandID       int
	productCursor int
	product       *model.LensProduct

	orderType model.OrderType
	memo      string

	focus   *GridCell
	buffer  string
	overlay Overlay

	ledger       *ledger.Ledger
	ledgerCursor int
	stock        *stock.Cache

	submitting bool
	notice     Notice
	effects    []Effect
}

func NewController() *Controller {
	return &Controller{
		pane:          PaneStore,
		storeCursor:   -1,
		productCursor: -1,
		orderType:     model.OrderTypeStock,
		ledger:        ledger.New(),
		stock:         stock.NewCache(),
	}
}

// SetCatalog 은 품목/상품 목록을 넣습니다.
func (c *Controller) SetCatalog(cat model.ProductCatalog) []Effect {
	c.catalog = cat
	c.brandCursor = 0
	return c.flush()
}

// SetStores 는 가맹점 목록을 넣습니다. 검색은 이 목록 안에서만 합니다.
func (c *Controller) SetStores(stores []model.Store) []Effect {
	c.stores = stores
	c.storesLoaded = true
	c.refreshStoreResults()
	return c.flush()
}

// LoadFailed 는 초기 목록 조회 실패를 알립니다.
func (c *Controller) LoadFailed(what string, err error) []Effect {
	c.notify(NoticeError, what+" 불러오기 실패: "+err.Error())
	return c.flush()
}

// HandleKey 는 키 하나를 처리합니다.
// 처리 순서는 대화상자, 도수표 포커스, 현재 영역, 전역 단축키입니다.
func (c *Controller) HandleKey(k Key) []Effect {
	switch {
	case c.overlay != nil:
		c.handleOverlayKey(k)
	case c.pane == PaneGrid && c.focus != nil && c.handleFocusKey(k):
	case c.handlePaneKey(k):
	default:
		c.handleHotkey(k)
	}
	return c.flush()
}

func (c *Controller) emit(e Effect) {
	c.effects = append(c.effects, e)
}

func (c *Controller) flush() []Effect {
	out := c.effects
	c.effects = nil
	return out
}

// notify 는 안내 문구를 바꿉니다. 경고 이상은 안내음도 요청합니다.
func (c *Controller) notify(level NoticeLevel, text string) {
	c.notice = Notice{Level: level, Text: text}
	if level != NoticeInfo {
		c.emit(Alert{Level: level})
	}
}

// clearFocus 는 도수표 포커스와 입력 버퍼를 비웁니다.
func (c *Controller) clearFocus() {
	c.focus = nil
	c.buffer = ""
}

// clearProduct 는 상품 선택을 해제합니다. 진행 중인 재고 조회 응답도 무효가 됩니다.
func (c *Controller) clearProduct() {
	c.product = nil
	c.productCursor = -1
	c.stock.Reset()
	c.clearFocus()
}

// reset 은 화면 전체를 처음 상태로 되돌립니다. (두 번째 Esc, 주문 등록 성공)
func (c *Controller) reset() {
	c.store = nil
	c.storeQuery = ""
	c.storeCursor = -1
	c.refreshStoreResults()
	c.brandID = 0
	c.brandCursor = 0
	c.clearProduct()
	c.orderType = model.OrderTypeStock
	c.ledger.Clear()
	c.ledgerCursor = 0
	c.memo = ""
	c.overlay = nil
	c.pane = PaneStore
}

func (c *Controller) Pane() Pane { return c.pane }
func (c *Controller) Buffer() string { return c.buffer }
func (c *Controller) Overlay() Overlay { return c.overlay }
func (c *Controller) OrderType() model.OrderType { return c.orderType }
func (c *Controller) Memo() string { return c.memo }
func (c *Controller) Notice() Notice { return c.notice }
func (c *Controller) Submitting() bool { return c.submitting }
func (c *Controller) StoreQuery() string { return c.storeQuery }
func (c *Controller) StoreResults() []model.Store { return c.storeResults }
func (c *Controller) StoreCursor() int { return c.storeCursor }
func (c *Controller) StoresLoaded() bool { return c.storesLoaded }
func (c *Controller) Brands() []model.Brand { return c.catalog.Brands }
func (c *Controller) BrandCursor() int { return c.brandCursor }
func (c *Controller) BrandID() int { return c.brandID }
func (c *Controller) ProductCursor() int { return c.productCursor }
func (c *Controller) LedgerCursor() int { return c.ledgerCursor }

// Products 는 선택된 품목의 상품 목록입니다.
func (c *Controller) Products() []model.LensProduct {
	return c.catalog.ProductsOfBrand(c.brandID)
}

// Store 는 선택된 가맹점입니다. 없으면 nil 입니다.
func (c *Controller) Store() *model.Store { return c.store }

// Product 는 선택된 상품입니다. 없으면 nil 입니다.
func (c *Controller) Product() *model.LensProduct { return c.product }

// Focus 는 포커스된 셀입니다. Idle 이면 false 입니다.
func (c *Controller) Focus() (GridCell, bool) {
	if c.focus == nil {
		return GridCell{}, false
	}
	return *c.focus, true
}

// Items 는 주문목록입니다. (복사본)
func (c *Controller) Items() []model.OrderLineItem { return c.ledger.Items() }

func (c *Controller) TotalQuantity() decimal.Decimal { return c.ledger.TotalQuantity() }
func (c *Controller) TotalAmount() decimal.Decimal { return c.ledger.TotalAmount() }

// QuantityAt 은 선택된 상품의 셀에 입력된 수량입니다.
func (c *Controller) QuantityAt(cell GridCell) (decimal.Decimal, bool) {
	coord, ok := diopter.ToCoordinate(cell.Row, cell.Col)
	if !ok || c.product == nil {
		return decimal.Zero, false
	}
	it, ok := c.ledger.Find(c.product.ID, coord)
	if !ok {
		return decimal.Zero, false
	}
	return it.Quantity, true
}

// StockAt 은 선택된 상품의 셀 재고입니다. 조회 전이거나 실패했으면 false 입니다.
func (c *Controller) StockAt(cell GridCell) (int, bool) {
	coord, ok := diopter.ToCoordinate(cell.Row, cell.Col)
	if !ok || c.product == nil {
		return 0, false
	}
	return c.stock.Lookup(coord)
}

// StockLoading 은 재고 조회가 진행 중인지 반환합니다.
func (c *Controller) StockLoading() bool { return c.stock.Loading() }

// FocusedCoordinate 는 포커스된 셀의 처방 좌표입니다.
func (c *Controller) FocusedCoordinate() (diopter.Coordinate, bool) {
	if c.focus == nil {
		return diopter.Coordinate{}, false
	}
	return diopter.ToCoordinate(c.focus.Row, c.focus.Col)
}

func (c *Controller) refreshStoreResults() {
	if !c.storesLoaded || c.storeQuery == "" {
		c.storeResults = nil
		return
	}
	c.storeResults = store.Search(c.stores, c.storeQuery)
}
