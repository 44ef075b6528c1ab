package tui

import "lensorder/diopter"

// 화면 배치 상수
const (
	headerHeight  = 3
	bottomHeight  = 8
	leftWidth     = 26
	rowLabelWidth = 5
	cellWidth     = 5
	ledgerLines   = 4
	minWidth      = 64
	minHeight     = 20
)

// layout 은 화면 크기로 계산한 영역 좌표입니다.
type layout struct {
	width, height int

	gridX, gridY int // 첫 셀의 좌상단
	visRows      int
	visCols      int
	bottomY      int
}

func newLayout(w, h int) layout {
	l := layout{width: w, height: h}
	l.bottomY = h - bottomHeight
	l.gridX = leftWidth + 1 + rowLabelWidth
	l.gridY = headerHeight + 2
	l.visRows = max(l.bottomY-l.gridY, 1)
	l.visCols = max((w-l.gridX)/cellWidth, 1)
	l.visRows = min(l.visRows, diopter.SphRows)
	l.visCols = min(l.visCols, diopter.Columns)
	return l
}

func (l layout) tooSmall() bool {
	return l.width < minWidth || l.height < minHeight
}

// scrollIntoView 는 focus 가 보이도록 시작 위치를 최소한으로 옮깁니다.
func scrollIntoView(start, focus, visible, count int) int {
	if focus < start {
		start = focus
	}
	if focus >= start+visible {
		start = focus - visible + 1
	}
	return clampStart(start, visible, count)
}

// centerOn 은 index 가 가운데 오도록 시작 위치를 정합니다.
func centerOn(index, visible, count int) int {
	return clampStart(index-visible/2, visible, count)
}

func clampStart(start, visible, count int) int {
	if visible >= count {
		return 0
	}
	return max(min(start, count-visible), 0)
}
