package entry

import (
	"unicode"

	"lensorder/model"
)

// handlePaneKey 는 현재 영역에 맞는 키 처리를 합니다. 처리하지 않은 키는 false 입니다.
func (c *Controller) handlePaneKey(k Key) bool {
	switch c.pane {
	case PaneStore:
		return c.handleStoreKey(k)
	case PaneBrand:
		return c.handleBrandKey(k)
	case PaneProduct:
		return c.handleProductKey(k)
	case PaneGrid:
		return c.handleIdleGridKey(k)
	case PaneLedger:
		return c.handleLedgerKey(k)
	case PaneMemo:
		return c.handleMemoKey(k)
	}
	return false
}

// handleStoreKey 는 가맹점 검색창입니다. 입력하면 선택된 가맹점은 해제됩니다.
func (c *Controller) handleStoreKey(k Key) bool {
	switch {
	case k.Code == KeyRune && unicode.IsPrint(k.Rune):
		c.setStoreQuery(c.storeQuery + string(k.Rune))
	case k.isErase():
		if c.storeQuery == "" {
			return true
		}
		q := []rune(c.storeQuery)
		c.setStoreQuery(string(q[:len(q)-1]))
	case k.Code == KeyDown:
		if c.store == nil && len(c.storeResults) > 0 {
			c.storeCursor = min(c.storeCursor+1, len(c.storeResults)-1)
		}
	case k.Code == KeyUp:
		if c.store == nil && len(c.storeResults) > 0 {
			c.storeCursor = max(c.storeCursor-1, 0)
		}
	case k.Code == KeyEnter:
		if c.store == nil && len(c.storeResults) > 0 {
			i := c.storeCursor
			if i < 0 {
				i = 0
			}
			c.selectStore(c.storeResults[i])
		}
	default:
		return false
	}
	return true
}

func (c *Controller) setStoreQuery(q string) {
	c.storeQuery = q
	c.storeCursor = -1
	c.store = nil
	c.refreshStoreResults()
}

// SelectStore 는 검색 결과를 마우스로 고른 경우입니다.
func (c *Controller) SelectStore(index int) []Effect {
	if c.overlay == nil && index >= 0 && index < len(c.storeResults) {
		c.selectStore(c.storeResults[index])
	}
	return c.flush()
}

func (c *Controller) selectStore(s model.Store) {
	c.store = &s
	c.storeQuery = ""
	c.storeCursor = -1
	c.refreshStoreResults()
	c.pane = PaneBrand
	c.notify(NoticeInfo, s.Name+" ("+s.Code+") 선택")
}

func (c *Controller) handleBrandKey(k Key) bool {
	brands := c.catalog.Brands
	switch k.Code {
	case KeyDown:
		if len(brands) > 0 {
			c.brandCursor = min(c.brandCursor+1, len(brands)-1)
		}
	case KeyUp:
		c.brandCursor = max(c.brandCursor-1, 0)
	case KeyEnter:
		if c.brandCursor >= 0 && c.brandCursor < len(brands) {
			c.selectBrand(brands[c.brandCursor].ID)
		}
	default:
		return false
	}
	return true
}

// SelectBrand 는 품목 선택입니다. 이전에 고른 상품은 해제됩니다.
func (c *Controller) SelectBrand(brandID int) []Effect {
	if c.overlay == nil {
		c.selectBrand(brandID)
	}
	return c.flush()
}

func (c *Controller) selectBrand(brandID int) {
	c.brandID = brandID
	for i, b := range c.catalog.Brands {
		if b.ID == brandID {
			c.brandCursor = i
		}
	}
	c.clearProduct()
	if len(c.Products()) > 0 {
		c.productCursor = 0
		c.pane = PaneProduct
	}
}

func (c *Controller) handleProductKey(k Key) bool {
	products := c.Products()
	switch k.Code {
	case KeyDown:
		if len(products) > 0 {
			c.productCursor = min(c.productCursor+1, len(products)-1)
		}
	case KeyUp:
		if len(products) > 0 {
			c.productCursor = max(c.productCursor-1, 0)
		}
	case KeyEnter:
		if c.productCursor >= 0 && c.productCursor < len(products) {
			c.selectProduct(products[c.productCursor])
		}
	default:
		return false
	}
	return true
}

// SelectProduct 는 상품 목록의 index 번째 상품을 고릅니다.
func (c *Controller) SelectProduct(index int) []Effect {
	products := c.Products()
	if c.overlay == nil && index >= 0 && index < len(products) {
		c.productCursor = index
		c.selectProduct(products[index])
	}
	return c.flush()
}

// selectProduct 는 재고 조회를 시작하고 도수표 시작 셀에 포커스를 둡니다.
func (c *Controller) selectProduct(p model.LensProduct) {
	c.clearFocus()
	c.product = &p
	gen := c.stock.Begin(p.ID)
	c.emit(LoadStock{ProductID: p.ID, Generation: gen})
	c.pane = PaneGrid
	c.focusCell(StartCell())
}

// handleIdleGridKey 는 포커스가 없는 도수표입니다. 방향키나 Enter 로 시작 셀에 들어갑니다.
func (c *Controller) handleIdleGridKey(k Key) bool {
	if !k.isArrow() && k.Code != KeyEnter {
		return false
	}
	c.focusCell(StartCell())
	return true
}

func (c *Controller) handleLedgerKey(k Key) bool {
	n := c.ledger.Len()
	switch {
	case k.Code == KeyDown:
		if n > 0 {
			c.ledgerCursor = min(c.ledgerCursor+1, n-1)
		}
	case k.Code == KeyUp:
		c.ledgerCursor = max(c.ledgerCursor-1, 0)
	case k.Code == KeyEnter, k.Code == KeyRune && k.Rune == 'e':
		c.openEdit(EditQuantity)
	case k.Code == KeyRune && k.Rune == 'p':
		c.openEdit(EditPrice)
	case k.isErase():
		c.removeLedgerLine(c.ledgerCursor)
	case k.Code == KeyRune && k.Rune == 'c':
		c.clearLedger()
	default:
		return false
	}
	return true
}

// RemoveItem 은 주문목록의 index 번째 줄을 삭제합니다.
func (c *Controller) RemoveItem(index int) []Effect {
	if c.overlay == nil {
		c.removeLedgerLine(index)
	}
	return c.flush()
}

func (c *Controller) removeLedgerLine(index int) {
	items := c.ledger.Items()
	if index < 0 || index >= len(items) {
		return
	}
	if err := c.ledger.RemoveByID(items[index].ID); err == nil {
		c.clampLedgerCursor()
	}
}

// ClearLedger 는 주문목록 초기화 버튼입니다. 가맹점과 상품 선택은 유지합니다.
func (c *Controller) ClearLedger() []Effect {
	if c.overlay == nil {
		c.clearLedger()
	}
	return c.flush()
}

func (c *Controller) clearLedger() {
	c.ledger.Clear()
	c.ledgerCursor = 0
}

func (c *Controller) clampLedgerCursor() {
	c.ledgerCursor = max(min(c.ledgerCursor, c.ledger.Len()-1), 0)
}

func (c *Controller) handleMemoKey(k Key) bool {
	switch {
	case k.Code == KeyRune && unicode.IsPrint(k.Rune):
		c.memo += string(k.Rune)
	case k.isErase():
		if r := []rune(c.memo); len(r) > 0 {
			c.memo = string(r[:len(r)-1])
		}
	default:
		return false
	}
	return true
}

// SetMemo 는 메모를 통째로 바꿉니다.
func (c *Controller) SetMemo(memo string) []Effect {
	c.memo = memo
	return c.flush()
}
