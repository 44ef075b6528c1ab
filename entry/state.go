package entry

import (
	"github.com/shopspring/decimal"

	"lensorder/diopter"
	"lensorder/model"
)

// Pane 은 키 입력을 받는 화면 영역입니다.
type Pane int

const (
	PaneStore Pane = iota
	PaneBrand
	PaneProduct
	PaneGrid
	PaneLedger
	PaneMemo
)

// paneCycle 은 Tab 이동 순서입니다.
var paneCycle = []Pane{PaneStore, PaneBrand, PaneProduct, PaneGrid, PaneLedger, PaneMemo}

func (p Pane) String() string {
	switch p {
	case PaneStore:
		return "가맹점"
	case PaneBrand:
		return "품목"
	case PaneProduct:
		return "상품"
	case PaneGrid:
		return "도수표"
	case PaneLedger:
		return "주문목록"
	case PaneMemo:
		return "메모"
	}
	return "?"
}

// GridCell 은 도수표의 (행, 열) 입니다.
type GridCell struct {
	Row int
	Col int
}

// StartCell 은 상품 선택 직후의 포커스 위치입니다. (SPH 0.00, 근시 영역 CYL 0.00)
func StartCell() GridCell {
	return GridCell{Row: 0, Col: diopter.DividerCol - 1}
}

// Overlay 는 화면 위에 떠 있는 대화상자입니다. 동시에 하나만 열립니다.
// *ConflictOverlay 또는 *EditOverlay 입니다.
type Overlay interface {
	isOverlay()
}

// ConflictChoice 는 수량 충돌 대화상자의 선택지입니다.
type ConflictChoice int

const (
	ChoiceAdd ConflictChoice = iota
	ChoiceReplace
	ChoiceCancel
)

const conflictChoices = 3

func (c ConflictChoice) String() string {
	switch c {
	case ChoiceAdd:
		return "추가"
	case ChoiceReplace:
		return "변경"
	default:
		return "취소"
	}
}

// ConflictOverlay 는 이미 수량이 있는 셀에 다시 입력했을 때 열립니다.
type ConflictOverlay struct {
	Existing   decimal.Decimal
	Incoming   decimal.Decimal
	Cell       GridCell
	Coordinate diopter.Coordinate
	Product    model.LensProduct
	Selection  ConflictChoice

	// then 은 충돌이 해소된 뒤 실행할 이동입니다. (방향키, Tab)
	then func()
}

func (*ConflictOverlay) isOverlay() {}

// EditKind 는 주문목록 수정 대화상자의 종류입니다.
type EditKind int

const (
	EditQuantity EditKind = iota
	EditPrice
)

func (k EditKind) String() string {
	if k == EditPrice {
		return "단가"
	}
	return "수량"
}

// EditOverlay 는 주문목록 한 줄의 수량 또는 단가를 고칩니다.
type EditOverlay struct {
	Kind   EditKind
	ItemID string
	Value  string
}

func (*EditOverlay) isOverlay() {}

// NoticeLevel 은 안내 문구의 수준입니다.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarn
	NoticeError
)

// Notice 는 상태줄에 표시하는 안내 문구입니다.
type Notice struct {
	Level NoticeLevel
	Text  string
}
