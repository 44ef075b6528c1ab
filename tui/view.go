package tui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"lensorder/diopter"
	"lensorder/entry"
	"lensorder/model"
	"lensorder/units"
)

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleActive   = tcell.StyleDefault.Reverse(true)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleDisabled = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleFocus    = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	styleQty      = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleWarn     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleBox      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
)

// hit 은 마우스로 누를 수 있는 영역입니다.
type hit struct {
	x, y, w int
	action  func(c *entry.Controller) []entry.Effect
}

// view 는 그리기 상태(스크롤 위치, 클릭 영역)를 보관합니다.
type view struct {
	rowStart int
	colStart int
	centered bool
	hits     []hit
}

func newView() *view {
	return &view{}
}

// text 는 문자열을 그리고 다음 x 를 반환합니다. 한글은 두 칸을 차지합니다.
func text(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// textFit 은 width 칸에 맞춰 자르거나 공백으로 채웁니다.
func textFit(s tcell.Screen, x, y, width int, str string, style tcell.Style) {
	if width <= 0 {
		return
	}
	str = runewidth.Truncate(str, width, "…")
	text(s, x, y, runewidth.FillRight(str, width), style)
}

func (v *view) addHit(x, y, w int, action func(c *entry.Controller) []entry.Effect) {
	v.hits = append(v.hits, hit{x: x, y: y, w: w, action: action})
}

// hitAt 은 (x, y) 를 덮는 마지막 영역입니다. 나중에 그린 것이 위에 있습니다.
func (v *view) hitAt(x, y int) (hit, bool) {
	for i := len(v.hits) - 1; i >= 0; i-- {
		h := v.hits[i]
		if y == h.y && x >= h.x && x < h.x+h.w {
			return h, true
		}
	}
	return hit{}, false
}

func (v *view) render(s tcell.Screen, c *entry.Controller) {
	s.Clear()
	v.hits = v.hits[:0]

	w, h := s.Size()
	l := newLayout(w, h)
	if l.tooSmall() {
		text(s, 0, 0, fmt.Sprintf("화면이 너무 작습니다 (%dx%d 이상)", minWidth, minHeight), styleWarn)
		return
	}

	v.drawHeader(s, l, c)
	v.drawLeft(s, l, c)
	v.drawGrid(s, l, c)
	v.drawBottom(s, l, c)
	v.drawStoreResults(s, c)
	v.drawOverlay(s, l, c)
}

func paneStyle(c *entry.Controller, p entry.Pane) tcell.Style {
	if c.Pane() == p {
		return styleActive
	}
	return styleTitle
}

func (v *view) drawHeader(s tcell.Screen, l layout, c *entry.Controller) {
	x := text(s, 0, 0, "판매전표 입력", styleTitle) + 2
	for i, t := range model.OrderTypes {
		label := fmt.Sprintf("[F%d %s]", 7+i, t)
		style := styleDefault
		if c.OrderType() == t {
			style = styleActive
		}
		start := x
		x = text(s, x, 0, label, style) + 1
		v.addHit(start, 0, x-start-1, func(c *entry.Controller) []entry.Effect { return c.SetOrderType(t) })
	}
	if c.Submitting() {
		text(s, x+1, 0, "주문 등록 중...", styleWarn)
	}

	label := " " + entry.PaneStore.String() + " "
	x = text(s, 0, 1, label, paneStyle(c, entry.PaneStore))
	v.addHit(0, 1, x, func(c *entry.Controller) []entry.Effect { return c.FocusPane(entry.PaneStore) })
	x++
	switch st := c.Store(); {
	case st != nil:
		info := fmt.Sprintf("%s (%s)", st.Name, st.Code)
		if st.Phone != "" {
			info += "  " + st.Phone
		}
		textFit(s, x, 1, l.width-x, info, styleQty)
	case c.Pane() == entry.PaneStore:
		textFit(s, x, 1, l.width-x, c.StoreQuery()+"_", styleDefault)
	case c.StoreQuery() != "":
		textFit(s, x, 1, l.width-x, c.StoreQuery(), styleDefault)
	default:
		textFit(s, x, 1, l.width-x, "거래처명, 코드, 전화번호로 검색...", styleDim)
	}

	textFit(s, 0, 2, l.width, "F5 품목  F6 상품  F2 주문등록  Esc 취소/초기화  Tab 영역 이동  Ctrl+C 종료", styleDim)
}

func (v *view) drawLeft(s tcell.Screen, l layout, c *entry.Controller) {
	top := headerHeight
	bottom := l.bottomY
	avail := bottom - top

	label := " " + entry.PaneBrand.String() + " "
	end := text(s, 0, top, label, paneStyle(c, entry.PaneBrand))
	v.addHit(0, top, end, func(c *entry.Controller) []entry.Effect { return c.FocusPane(entry.PaneBrand) })

	brands := c.Brands()
	brandRows := min(len(brands), max(avail/2-1, 1))
	bStart := scrollIntoView(0, max(c.BrandCursor(), 0), brandRows, len(brands))
	for i := 0; i < brandRows && bStart+i < len(brands); i++ {
		b := brands[bStart+i]
		y := top + 1 + i
		style := styleDefault
		if b.ID == c.BrandID() {
			style = styleQty
		}
		if c.Pane() == entry.PaneBrand && bStart+i == c.BrandCursor() {
			style = styleActive
		}
		textFit(s, 1, y, leftWidth-1, b.Name, style)
		id := b.ID
		v.addHit(1, y, leftWidth-1, func(c *entry.Controller) []entry.Effect { return c.SelectBrand(id) })
	}

	ptop := top + 1 + brandRows + 1
	label = " " + entry.PaneProduct.String() + " "
	end = text(s, 0, ptop, label, paneStyle(c, entry.PaneProduct))
	v.addHit(0, ptop, end, func(c *entry.Controller) []entry.Effect { return c.FocusPane(entry.PaneProduct) })

	products := c.Products()
	if c.BrandID() == 0 {
		textFit(s, 1, ptop+1, leftWidth-1, "품목을 선택하세요 (F5)", styleDim)
		return
	}
	rows := bottom - ptop - 1
	pStart := scrollIntoView(0, max(c.ProductCursor(), 0), rows, len(products))
	for i := 0; i < rows && pStart+i < len(products); i++ {
		idx := pStart + i
		p := products[idx]
		y := ptop + 1 + i
		style := styleDefault
		if sel := c.Product(); sel != nil && sel.ID == p.ID {
			style = styleQty
		}
		if c.Pane() == entry.PaneProduct && idx == c.ProductCursor() {
			style = styleActive
		}
		textFit(s, 1, y, leftWidth-1, p.Name, style)
		v.addHit(1, y, leftWidth-1, func(c *entry.Controller) []entry.Effect { return c.SelectProduct(idx) })
	}
}

func (v *view) drawGrid(s tcell.Screen, l layout, c *entry.Controller) {
	x0 := leftWidth + 1
	title := " " + entry.PaneGrid.String() + " "
	end := text(s, x0, headerHeight, title, paneStyle(c, entry.PaneGrid))
	if p := c.Product(); p != nil {
		info := p.Brand + " " + p.Name + "  " + units.Amount(p.SellingPrice)
		if c.StockLoading() {
			info += "  (재고 조회 중)"
		}
		textFit(s, end+1, headerHeight, l.width-end-1, info, styleDefault)
	} else {
		textFit(s, end+1, headerHeight, l.width-end-1, "상품을 선택하세요 (F6)", styleDim)
	}

	focus, focused := c.Focus()
	if !v.centered {
		v.colStart = centerOn(diopter.DividerCol, l.visCols, diopter.Columns)
		v.centered = true
	}
	if focused {
		v.rowStart = scrollIntoView(v.rowStart, focus.Row, l.visRows, diopter.SphRows)
		v.colStart = scrollIntoView(v.colStart, focus.Col, l.visCols, diopter.Columns)
	} else {
		v.rowStart = clampStart(v.rowStart, l.visRows, diopter.SphRows)
		v.colStart = clampStart(v.colStart, l.visCols, diopter.Columns)
	}

	// 열 머리글: CYL 크기. 구분열은 세로줄입니다.
	hy := l.gridY - 1
	textFit(s, x0, hy, rowLabelWidth, "S\\C", styleDim)
	for i := 0; i < l.visCols; i++ {
		col := v.colStart + i
		x := l.gridX + i*cellWidth
		rc, ok := diopter.ResolveColumn(col)
		if !ok {
			text(s, x+cellWidth/2, hy, "│", styleDim)
			continue
		}
		style := styleTitle
		if focused && focus.Col == col {
			style = styleActive
		}
		textFit(s, x, hy, cellWidth-1, alignRight(diopter.Legacy(rc.Cyl), cellWidth-1), style)
	}

	editing := c.Pane() == entry.PaneGrid
	for j := 0; j < l.visRows; j++ {
		row := v.rowStart + j
		y := l.gridY + j
		mag, _ := diopter.SphMagnitude(row)
		style := styleTitle
		if focused && focus.Row == row {
			style = styleActive
		}
		textFit(s, x0, y, rowLabelWidth-1, alignRight(diopter.Legacy(mag), rowLabelWidth-1), style)

		for i := 0; i < l.visCols; i++ {
			col := v.colStart + i
			x := l.gridX + i*cellWidth
			if col == diopter.DividerCol {
				text(s, x+cellWidth/2, y, "│", styleDim)
				continue
			}
			cell := entry.GridCell{Row: row, Col: col}
			label, style := cellLabel(c, cell)
			if focused && focus == cell {
				style = styleFocus
				if !editing {
					style = styleActive
				}
				if b := c.Buffer(); b != "" {
					label = b
				}
			}
			textFit(s, x, y, cellWidth-1, alignRight(label, cellWidth-1), style)
			if !diopter.IsDisabled(row, col) {
				r, cl := row, col
				v.addHit(x, y, cellWidth-1, func(c *entry.Controller) []entry.Effect { return c.SelectCell(r, cl) })
			}
		}
	}
}

// cellLabel 은 셀에 표시할 값입니다. 입력 수량이 재고보다 우선합니다.
func cellLabel(c *entry.Controller, cell entry.GridCell) (string, tcell.Style) {
	if diopter.IsDisabled(cell.Row, cell.Col) {
		return "×", styleDisabled
	}
	if q, ok := c.QuantityAt(cell); ok {
		return units.Quantity(q), styleQty
	}
	if n, ok := c.StockAt(cell); ok {
		return strconv.Itoa(n), styleDim
	}
	return "·", styleDisabled
}

func alignRight(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

func (v *view) drawBottom(s tcell.Screen, l layout, c *entry.Controller) {
	y := l.bottomY
	items := c.Items()

	label := fmt.Sprintf(" %s(%d) ", entry.PaneLedger, len(items))
	end := text(s, 0, y, label, paneStyle(c, entry.PaneLedger))
	v.addHit(0, y, end, func(c *entry.Controller) []entry.Effect { return c.FocusPane(entry.PaneLedger) })
	totals := units.Count(c.TotalQuantity()) + "  " + units.Amount(c.TotalAmount())
	text(s, max(l.width-runewidth.StringWidth(totals)-1, end+1), y, totals, styleTitle)
	if c.Pane() == entry.PaneLedger {
		text(s, end+1, y, "e 수량  p 단가  Del 삭제  c 초기화", styleDim)
	}

	start := scrollIntoView(0, c.LedgerCursor(), ledgerLines, len(items))
	for i := 0; i < ledgerLines; i++ {
		idx := start + i
		ly := y + 1 + i
		if idx >= len(items) {
			break
		}
		it := items[idx]
		price := units.Amount(it.Amount())
		if it.PriceOverridden {
			price += "*"
		}
		line := fmt.Sprintf("%-3d %s %s  %s %s  x%s  %s", idx+1, it.Product.Brand, it.Product.Name, it.Sph, it.Cyl, units.Quantity(it.Quantity), price)
		style := styleDefault
		if c.Pane() == entry.PaneLedger && idx == c.LedgerCursor() {
			style = styleActive
		}
		textFit(s, 1, ly, l.width-5, line, style)
		at := idx
		v.addHit(l.width-3, ly, 2, func(c *entry.Controller) []entry.Effect { return c.RemoveItem(at) })
		text(s, l.width-3, ly, "✕", styleWarn)
	}

	my := y + 1 + ledgerLines
	end = text(s, 0, my, " "+entry.PaneMemo.String()+" ", paneStyle(c, entry.PaneMemo))
	v.addHit(0, my, end, func(c *entry.Controller) []entry.Effect { return c.FocusPane(entry.PaneMemo) })
	memo := c.Memo()
	if c.Pane() == entry.PaneMemo {
		memo += "_"
	}
	textFit(s, end+1, my, l.width-end-1, memo, styleDefault)

	textFit(s, 0, my+1, l.width, readout(c), styleDefault)

	n := c.Notice()
	style := styleDefault
	switch n.Level {
	case entry.NoticeWarn:
		style = styleWarn
	case entry.NoticeError:
		style = styleError
	}
	textFit(s, 0, my+2, l.width, n.Text, style)
}

// readout 은 포커스된 셀의 좌표, 영역, 재고, 플러스 CYL 환산값입니다.
func readout(c *entry.Controller) string {
	coord, ok := c.FocusedCoordinate()
	if !ok {
		return "선택된 셀 없음"
	}
	cell, _ := c.Focus()
	half := diopter.Minus
	if rc, ok := diopter.ResolveColumn(cell.Col); ok {
		half = rc.Half
	}
	stock := "재고: -"
	if n, ok := c.StockAt(cell); ok {
		stock = fmt.Sprintf("재고: %d", n)
	}
	sph, cyl := coord.Legacy()
	out := fmt.Sprintf("SPH %s CYL %s (%s/%s)  %s  %s  플러스CYL %s",
		coord.SphString(), coord.CylString(), sph, cyl, half, stock, coord.PlusCylinderLegacy())
	if b := c.Buffer(); b != "" {
		out += "  입력: " + b
	}
	return out
}

func (v *view) drawStoreResults(s tcell.Screen, c *entry.Controller) {
	if c.Pane() != entry.PaneStore || c.Store() != nil || c.StoreQuery() == "" {
		return
	}
	const x, width = 2, 48
	y := 2
	switch {
	case !c.StoresLoaded():
		textFit(s, x, y, width, "가맹점 목록을 불러오는 중...", styleBox)
		return
	case len(c.StoreResults()) == 0:
		textFit(s, x, y, width, "검색 결과가 없습니다.", styleBox)
		return
	}
	for i, st := range c.StoreResults() {
		style := styleBox
		if i == c.StoreCursor() {
			style = styleActive
		}
		line := fmt.Sprintf("%s  %s  %s", st.Code, st.Name, st.Phone)
		textFit(s, x, y+i, width, line, style)
		idx := i
		v.addHit(x, y+i, width, func(c *entry.Controller) []entry.Effect { return c.SelectStore(idx) })
	}
}

func (v *view) drawOverlay(s tcell.Screen, l layout, c *entry.Controller) {
	const width = 44
	x := max((l.width-width)/2, 0)
	y := max(l.height/2-3, 0)

	switch o := c.Overlay().(type) {
	case *entry.ConflictOverlay:
		lines := []string{
			"",
			" 이미 입력된 수량이 있습니다",
			fmt.Sprintf(" %s  SPH %s / CYL %s", o.Product.Name, o.Coordinate.SphString(), o.Coordinate.CylString()),
			fmt.Sprintf(" 기존 %s  →  새 입력 %s", units.Quantity(o.Existing), units.Quantity(o.Incoming)),
			"",
			"",
		}
		for i, ln := range lines {
			textFit(s, x, y+i, width, ln, styleBox)
		}
		bx := x + 2
		by := y + len(lines) - 1
		for i := 0; i < 3; i++ {
			choice := entry.ConflictChoice(i)
			label := "[" + choice.String() + "]"
			style := styleBox
			if o.Selection == choice {
				style = styleActive
			}
			end := text(s, bx, by, label, style)
			v.addHit(bx, by, end-bx, func(c *entry.Controller) []entry.Effect { return c.ChooseConflict(choice) })
			bx = end + 2
		}
		text(s, bx, by, "←/→ Enter  Esc 취소", styleBox)

	case *entry.EditOverlay:
		lines := []string{
			"",
			" " + o.Kind.String() + " 수정",
			" 새 값: " + o.Value + "_",
			" Enter 확인  Esc 취소",
			"",
		}
		for i, ln := range lines {
			textFit(s, x, y+i, width, ln, styleBox)
		}
	}
}
