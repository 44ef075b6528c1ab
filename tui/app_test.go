package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lensorder/diopter"
	"lensorder/entry"
	"lensorder/model"
)

type stubBackend struct{}

func (stubBackend) Catalog(ctx context.Context) (model.ProductCatalog, error) {
	return model.ProductCatalog{
		Brands: []model.Brand{{ID: 1, Name: "케미"}},
		Products: []model.LensProduct{
			{ID: 10, Name: "1.60 비구면", Brand: "케미", BrandID: 1, SellingPrice: decimal.NewFromInt(10000)},
		},
	}, nil
}

func (stubBackend) Stores(ctx context.Context, limit int) ([]model.Store, error) {
	return []model.Store{{ID: 1, Code: "S001", Name: "밝은안경", Phone: "02-555-1234", IsActive: true}}, nil
}

func (stubBackend) DiopterGrid(ctx context.Context, productID int) (model.DiopterGridResponse, error) {
	return model.DiopterGridResponse{Grid: map[string]map[string]model.DiopterCell{"+1.50": {"-0.25": {Stock: 7}}}}, nil
}

func (stubBackend) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.CreatedOrder, error) {
	return model.CreatedOrder{ID: 1, OrderNo: "101"}, nil
}

type cellPos struct {
	r rune
	x int
}

func rowCells(s tcell.SimulationScreen, y int) []cellPos {
	w, _ := s.Size()
	var out []cellPos
	for x := 0; x < w; {
		r, _, _, width := s.GetContent(x, y)
		out = append(out, cellPos{r: r, x: x})
		x += max(width, 1)
	}
	return out
}

func rowText(s tcell.SimulationScreen, y int) string {
	var b strings.Builder
	for _, c := range rowCells(s, y) {
		b.WriteRune(c.r)
	}
	return b.String()
}

func screenText(s tcell.SimulationScreen) string {
	_, h := s.Size()
	lines := make([]string, h)
	for y := range h {
		lines[y] = rowText(s, y)
	}
	return strings.Join(lines, "\n")
}

// findText 는 str 이 그려진 첫 위치를 찾습니다.
func findText(s tcell.SimulationScreen, str string) (int, int, bool) {
	want := []rune(str)
	_, h := s.Size()
	for y := range h {
		cells := rowCells(s, y)
		for i := 0; i+len(want) <= len(cells); i++ {
			match := true
			for j, r := range want {
				if cells[i+j].r != r {
					match = false
					break
				}
			}
			if match {
				return cells[i].x, y, true
			}
		}
	}
	return 0, 0, false
}

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen, *entry.Session) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(120, 40)
	t.Cleanup(screen.Fini)

	session := entry.NewSession(context.Background(), stubBackend{})
	session.Start()
	session.Wait()
	return New(screen, session), screen, session
}

func TestTranslate(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want entry.Key
		ok   bool
	}{
		{tcell.KeyRune, '3', tcell.ModNone, entry.Char('3'), true},
		{tcell.KeyRune, '한', tcell.ModNone, entry.Char('한'), true},
		{tcell.KeyRune, 'c', tcell.ModAlt, entry.Key{}, false},
		{tcell.KeyBackspace2, 0, tcell.ModNone, entry.Press(entry.KeyBackspace), true},
		{tcell.KeyBacktab, 0, tcell.ModShift, entry.Press(entry.KeyBacktab), true},
		{tcell.KeyF10, 0, tcell.ModNone, entry.Press(entry.KeyF10), true},
		{tcell.KeyF3, 0, tcell.ModNone, entry.Key{}, false},
	}
	for _, tc := range cases {
		got, ok := translate(tc.key, tc.r, tc.mod)
		assert.Equal(t, tc.ok, ok)
		assert.Equal(t, tc.want, got)
	}
}

func TestScrollIntoView(t *testing.T) {
	assert.Equal(t, 0, scrollIntoView(0, 5, 10, 61))
	assert.Equal(t, 3, scrollIntoView(0, 12, 10, 61))
	assert.Equal(t, 4, scrollIntoView(8, 4, 10, 61))
	assert.Equal(t, 51, scrollIntoView(0, 60, 10, 61))
	assert.Equal(t, 0, scrollIntoView(5, 3, 80, 61), "everything fits")
	assert.Equal(t, 9, centerOn(diopter.DividerCol, 17, diopter.Columns))
}

func TestRenderOrderFlow(t *testing.T) {
	app, screen, session := newTestApp(t)

	app.draw()
	assert.Contains(t, rowText(screen, 0), "판매전표 입력")
	assert.Contains(t, rowText(screen, 0), "[F7 여벌]")

	for _, r := range "밝은" {
		session.HandleKey(entry.Char(r))
	}
	app.draw()
	assert.Contains(t, rowText(screen, 2), "밝은안경")

	for range 3 {
		session.HandleKey(entry.Press(entry.KeyEnter))
	}
	session.Wait()
	app.draw()
	assert.Contains(t, rowText(screen, 1), "밝은안경 (S001)")
	assert.Contains(t, rowText(screen, headerHeight), "1.60 비구면")

	l := newLayout(120, 40)
	x := l.gridX + (diopter.DividerCol+2-app.view.colStart)*cellWidth
	y := l.gridY + (6 - app.view.rowStart)
	app.click(x, y)
	app.draw()
	assert.Contains(t, screenText(screen), "SPH +1.50 CYL -0.25")
	assert.Contains(t, screenText(screen), "재고: 7")
	assert.Contains(t, screenText(screen), "원시(+)")

	session.HandleKey(entry.Char('2'))
	app.draw()
	assert.Contains(t, screenText(screen), "입력: 2")

	session.HandleKey(entry.Press(entry.KeyEnter))
	app.draw()
	assert.Contains(t, screenText(screen), "총 2개")
	assert.Contains(t, screenText(screen), "20,000원")

	session.HandleKey(entry.Char('1'))
	session.HandleKey(entry.Press(entry.KeyEnter))
	app.draw()
	assert.Contains(t, screenText(screen), "이미 입력된 수량이 있습니다")
	bx, by, ok := findText(screen, "[변경]")
	require.True(t, ok)

	app.click(bx+1, by)
	app.draw()
	assert.NotContains(t, screenText(screen), "이미 입력된 수량이 있습니다")
	assert.Contains(t, screenText(screen), "총 1개")
}

func TestRenderTooSmall(t *testing.T) {
	app, screen, _ := newTestApp(t)
	screen.SetSize(40, 10)
	app.draw()
	assert.Contains(t, rowText(screen, 0), "화면이 너무 작습니다")
}
