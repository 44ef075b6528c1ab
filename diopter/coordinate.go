package diopter

import (
	"github.com/shopspring/decimal"
)

// 도수표 치수. 행 = SPH 0.00~15.00, 열 = 왼쪽 CYL 4.00→0.00 | 구분열 | 오른쪽 CYL 0.00→4.00
const (
	SphRows    = 61
	CylSteps   = 17
	DividerCol = CylSteps
	Columns    = CylSteps*2 + 1
	MaxRow     = SphRows - 1
	MaxCol     = Columns - 1
)

// Step 은 0.25D 단위입니다.
var Step = decimal.New(25, -2)

// HalfPlane 은 열이 속한 SPH 부호 영역입니다.
type HalfPlane int

const (
	Minus HalfPlane = iota // 근시(-)
	Plus                   // 원시(+)
)

func (h HalfPlane) String() string {
	if h == Plus {
		return "원시(+)"
	}
	return "근시(-)"
}

// Column 은 열 인덱스를 해석한 결과입니다. Cyl 은 크기(0.00~4.00)입니다.
type Column struct {
	Half HalfPlane
	Cyl  decimal.Decimal
}

// Coordinate 는 처방 좌표입니다. Cyl 은 항상 0 이하입니다.
type Coordinate struct {
	Sph decimal.Decimal
	Cyl decimal.Decimal
}

// ResolveColumn 은 열 인덱스를 부호 영역과 CYL 크기로 변환합니다.
// 구분열과 범위 밖 인덱스는 false 를 반환합니다.
func ResolveColumn(col int) (Column, bool) {
	switch {
	case col < 0 || col > MaxCol:
		return Column{}, false
	case col < DividerCol:
		return Column{Half: Minus, Cyl: stepsOf(DividerCol - 1 - col)}, true
	case col == DividerCol:
		return Column{}, false
	default:
		return Column{Half: Plus, Cyl: stepsOf(col - DividerCol - 1)}, true
	}
}

// SphMagnitude 는 행 인덱스의 SPH 크기를 반환합니다.
func SphMagnitude(row int) (decimal.Decimal, bool) {
	if row < 0 || row > MaxRow {
		return decimal.Zero, false
	}
	return stepsOf(row), true
}

// ToCoordinate 는 (행, 열)을 부호 있는 처방 좌표로 변환합니다.
// 부호 결정은 이 함수에서만 합니다.
func ToCoordinate(row, col int) (Coordinate, bool) {
	mag, ok := SphMagnitude(row)
	if !ok {
		return Coordinate{}, false
	}
	c, ok := ResolveColumn(col)
	if !ok {
		return Coordinate{}, false
	}
	sph := mag
	if c.Half == Minus {
		sph = mag.Neg()
	}
	return Coordinate{Sph: sph, Cyl: c.Cyl.Neg()}, true
}

// IsDisabled 는 원시 영역의 SPH 0.00 행인지 확인합니다. (-0.00 과 +0.00 중복 방지)
func IsDisabled(row, col int) bool {
	c, ok := ResolveColumn(col)
	return ok && c.Half == Plus && row == 0
}

// CellOf 는 좌표를 그리드 셀로 역변환합니다. SPH 0.00 은 근시 영역으로 매핑됩니다.
func CellOf(c Coordinate) (row, col int, ok bool) {
	row, ok = stepIndex(c.Sph.Abs())
	if !ok || row > MaxRow {
		return 0, 0, false
	}
	if c.Cyl.IsPositive() {
		return 0, 0, false
	}
	m, ok := stepIndex(c.Cyl.Abs())
	if !ok || m >= CylSteps {
		return 0, 0, false
	}
	if c.Sph.IsPositive() {
		return row, DividerCol + 1 + m, true
	}
	return row, DividerCol - 1 - m, true
}

// SphString / CylString 은 원장 키로 쓰는 정규 문자열입니다.
func (c Coordinate) SphString() string { return Format(c.Sph) }
func (c Coordinate) CylString() string { return Format(c.Cyl) }

// Key 는 "sph/cyl" 형태의 표시용 키입니다.
func (c Coordinate) Key() string { return c.SphString() + "/" + c.CylString() }

// PlusCylinder 는 플러스 CYL 환산값입니다. newSPH = SPH + CYL, newCYL = -CYL
func (c Coordinate) PlusCylinder() Coordinate {
	return Coordinate{Sph: c.Sph.Add(c.Cyl), Cyl: c.Cyl.Neg()}
}

func stepsOf(n int) decimal.Decimal {
	return Step.Mul(decimal.NewFromInt(int64(n)))
}

func stepIndex(mag decimal.Decimal) (int, bool) {
	n := mag.Div(Step)
	if !n.Equal(n.Truncate(0)) {
		return 0, false
	}
	return int(n.IntPart()), true
}
