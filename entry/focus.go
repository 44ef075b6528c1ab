package entry

import (
	"strings"

	"github.com/shopspring/decimal"

	"lensorder/diopter"
	"lensorder/ledger"
)

// SelectCell 은 셀 클릭입니다. 가맹점과 상품이 모두 선택되어 있어야 포커스가 잡힙니다.
func (c *Controller) SelectCell(row, col int) []Effect {
	if c.overlay == nil {
		c.focusCell(GridCell{Row: row, Col: col})
	}
	return c.flush()
}

// focusCell 은 Idle/Focused 에서 target 으로 포커스를 옮깁니다. 버퍼는 버립니다.
func (c *Controller) focusCell(target GridCell) bool {
	if c.store == nil || c.product == nil {
		c.notify(NoticeWarn, noticeSelectFirst)
		return false
	}
	if _, ok := diopter.ToCoordinate(target.Row, target.Col); !ok {
		return false
	}
	if diopter.IsDisabled(target.Row, target.Col) {
		return false
	}
	c.pane = PaneGrid
	c.focus = &target
	c.buffer = ""
	return true
}

// handleFocusKey 는 포커스된 도수표가 가져가는 키를 처리합니다.
func (c *Controller) handleFocusKey(k Key) bool {
	switch {
	case k.isNumeric():
		c.appendBuffer(k.Rune)
	case k.Code == KeyEnter:
		c.enter()
	case k.isArrow():
		code := k.Code
		c.commitThen(func() { c.move(code) })
	case k.isErase():
		c.erase()
	default:
		return false
	}
	return true
}

func (c *Controller) appendBuffer(r rune) {
	if r == '.' && strings.ContainsRune(c.buffer, '.') {
		return
	}
	c.buffer += string(r)
}

// enter 는 버퍼를 Ask 모드로 반영합니다. 해석할 수 없거나 0 이하면 버퍼를 그대로 둡니다.
func (c *Controller) enter() {
	qty, ok := parseQuantity(c.buffer)
	if !ok {
		return
	}
	c.buffer = ""
	c.commitAt(*c.focus, qty, nil)
}

// commitThen 은 버퍼가 있으면 먼저 반영하고 버퍼를 비운 뒤 then 을 실행합니다.
// 반영이 충돌을 만들면 then 은 충돌이 해소될 때까지 미뤄집니다.
func (c *Controller) commitThen(then func()) {
	qty, ok := parseQuantity(c.buffer)
	c.buffer = ""
	if !ok || c.focus == nil {
		then()
		return
	}
	c.commitAt(*c.focus, qty, then)
}

// commitAt 은 셀에 수량을 Ask 모드로 반영합니다.
// 비활성 셀(원시 영역 SPH 0.00)과 구분열은 거부합니다.
func (c *Controller) commitAt(cell GridCell, qty decimal.Decimal, then func()) {
	coord, ok := diopter.ToCoordinate(cell.Row, cell.Col)
	if !ok || diopter.IsDisabled(cell.Row, cell.Col) || c.store == nil || c.product == nil {
		runDeferred(then)
		return
	}

	res := c.ledger.Commit(*c.product, coord, qty, ledger.Ask)
	if res.Outcome == ledger.Conflict {
		c.overlay = &ConflictOverlay{
			Existing:   res.Existing,
			Incoming:   res.Incoming,
			Cell:       cell,
			Coordinate: coord,
			Product:    *c.product,
			then:       then,
		}
		return
	}
	runDeferred(then)
}

// move 는 포커스를 한 칸 옮깁니다.
// 구분열은 건너뛰고, 원시 영역의 SPH 0.00 행으로는 들어가지 않습니다.
func (c *Controller) move(code KeyCode) {
	if c.focus == nil {
		return
	}
	next := *c.focus
	switch code {
	case KeyDown:
		next.Row = min(next.Row+1, diopter.MaxRow)
	case KeyUp:
		next.Row = max(next.Row-1, 0)
		if diopter.IsDisabled(next.Row, next.Col) {
			return
		}
	case KeyRight:
		col := next.Col + 1
		if col == diopter.DividerCol {
			col++
		}
		if next.Row == 0 && col > diopter.DividerCol {
			return
		}
		next.Col = min(col, diopter.MaxCol)
	case KeyLeft:
		col := next.Col - 1
		if col == diopter.DividerCol {
			col--
		}
		next.Col = max(col, 0)
	}
	c.focus = &next
}

// erase 는 버퍼의 마지막 문자를 지웁니다. 버퍼가 비어 있으면 셀의 주문 줄을 바로 삭제합니다.
func (c *Controller) erase() {
	if c.buffer != "" {
		c.buffer = c.buffer[:len(c.buffer)-1]
		return
	}
	coord, ok := c.FocusedCoordinate()
	if !ok || c.product == nil {
		return
	}
	if c.ledger.Remove(c.product.ID, coord) {
		c.clampLedgerCursor()
	}
}

// parseQuantity 는 버퍼를 수량으로 읽습니다. "1." 과 ".5" 도 받습니다.
func parseQuantity(buf string) (decimal.Decimal, bool) {
	s := strings.TrimSuffix(buf, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if s == "" {
		return decimal.Zero, false
	}
	q, err := decimal.NewFromString(s)
	if err != nil || !q.IsPositive() {
		return decimal.Zero, false
	}
	return q, true
}

func runDeferred(fn func()) {
	if fn != nil {
		fn()
	}
}
