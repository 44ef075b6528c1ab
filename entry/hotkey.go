package entry

import "lensorder/model"

// handleHotkey 는 어느 영역도 가져가지 않은 키를 처리합니다.
func (c *Controller) handleHotkey(k Key) {
	switch k.Code {
	case KeyF2:
		if c.store != nil && c.ledger.Len() > 0 {
			c.beginSubmit()
		}
	case KeyF5:
		c.clearFocus()
		c.brandID = 0
		c.clearProduct()
		c.pane = PaneBrand
	case KeyF6:
		c.clearFocus()
		c.clearProduct()
		if len(c.Products()) > 0 {
			c.productCursor = 0
			c.pane = PaneProduct
		} else {
			c.pane = PaneBrand
		}
	case KeyF7:
		c.orderType = model.OrderTypeStock
	case KeyF8:
		c.orderType = model.OrderTypeTinted
	case KeyF9:
		c.orderType = model.OrderTypeRx
	case KeyF10:
		c.orderType = model.OrderTypeOther
	case KeyEscape:
		c.escape()
	case KeyTab:
		c.cyclePane(1)
	case KeyBacktab:
		c.cyclePane(-1)
	}
}

// escape 는 두 단계로 동작합니다. 포커스가 있으면 포커스만 풀고, 없으면 전체를 초기화합니다.
func (c *Controller) escape() {
	if c.focus != nil {
		c.clearFocus()
		return
	}
	c.reset()
}

// SetOrderType 은 주문 구분 버튼입니다.
func (c *Controller) SetOrderType(t model.OrderType) []Effect {
	c.orderType = t
	return c.flush()
}

// cyclePane 은 Tab 이동입니다. 도수표를 떠날 때는 버퍼를 먼저 반영합니다.
func (c *Controller) cyclePane(step int) {
	next := func() {
		i := 0
		for j, p := range paneCycle {
			if p == c.pane {
				i = j
			}
		}
		c.pane = paneCycle[(i+step+len(paneCycle))%len(paneCycle)]
	}
	if c.pane == PaneGrid && c.focus != nil {
		c.commitThen(next)
		return
	}
	next()
}

// FocusPane 은 마우스로 영역을 누른 경우입니다. 도수표를 떠날 때는 버퍼를 먼저 반영합니다.
func (c *Controller) FocusPane(p Pane) []Effect {
	if c.overlay != nil || p == c.pane {
		return c.flush()
	}
	if c.pane == PaneGrid && c.focus != nil {
		c.commitThen(func() { c.pane = p })
	} else {
		c.pane = p
	}
	return c.flush()
}
