// Package ledger 는 주문 원장(입력 중인 주문 품목 목록)을 관리합니다.
package ledger

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lensorder/diopter"
	"lensorder/model"
)

var (
	ErrItemNotFound    = errors.New("order line item not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("unit price must not be negative")
)

// Mode 는 같은 칸에 이미 품목이 있을 때의 처리 방식입니다.
type Mode int

const (
	Ask     Mode = iota // 충돌이면 변경하지 않고 Conflict 를 반환
	Add                 // 기존 수량에 더함
	Replace             // 기존 수량을 덮어씀
)

// Outcome 은 Commit 의 결과 종류입니다.
type Outcome int

const (
	Rejected Outcome = iota
	Inserted
	Added
	Replaced
	Conflict
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Added:
		return "added"
	case Replaced:
		return "replaced"
	case Conflict:
		return "conflict"
	default:
		return "rejected"
	}
}

// Result 는 Commit 결과입니다.
// Conflict 일 때 Item 은 기존 품목이며 Existing/Incoming 에 두 수량이 들어갑니다.
type Result struct {
	Outcome  Outcome
	Item     model.OrderLineItem
	Existing decimal.Decimal
	Incoming decimal.Decimal
}

var two = decimal.NewFromInt(2)

// NormalizeQuantity 는 수량을 0.5 단위로 올림합니다. ceil(q*2)/2
func NormalizeQuantity(q decimal.Decimal) decimal.Decimal {
	return q.Mul(two).Ceil().Div(two)
}

// Ledger 는 (상품, SPH, CYL) 당 한 줄만 갖는 주문 원장입니다.
// 입력 순서를 유지합니다. 동시 사용은 고려하지 않습니다.
type Ledger struct {
	items []model.OrderLineItem
	newID func() string
}

// New 는 빈 원장을 만듭니다.
func New() *Ledger {
	return &Ledger{newID: uuid.NewString}
}

func (l *Ledger) indexOf(productID int, sph, cyl string) int {
	for i, it := range l.items {
		if it.Product.ID == productID && it.Sph == sph && it.Cyl == cyl {
			return i
		}
	}
	return -1
}

func (l *Ledger) indexByID(id string) int {
	for i, it := range l.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Commit 은 좌표에 수량을 기록합니다. 수량은 먼저 정규화되며 0 이하이면 Rejected 입니다.
func (l *Ledger) Commit(product model.LensProduct, c diopter.Coordinate, qty decimal.Decimal, mode Mode) Result {
	q := NormalizeQuantity(qty)
	if !q.IsPositive() {
		return Result{Outcome: Rejected, Incoming: q}
	}
	sph, cyl := c.SphString(), c.CylString()

	i := l.indexOf(product.ID, sph, cyl)
	if i < 0 {
		item := model.OrderLineItem{
			ID:       l.newID(),
			Product:  product,
			Sph:      sph,
			Cyl:      cyl,
			Axis:     model.DefaultAxis,
			Quantity: q,
		}
		l.items = append(l.items, item)
		return Result{Outcome: Inserted, Item: item, Incoming: q}
	}

	existing := l.items[i].Quantity
	switch mode {
	case Add:
		l.items[i].Quantity = existing.Add(q)
		return Result{Outcome: Added, Item: l.items[i], Existing: existing, Incoming: q}
	case Replace:
		l.items[i].Quantity = q
		return Result{Outcome: Replaced, Item: l.items[i], Existing: existing, Incoming: q}
	default:
		return Result{Outcome: Conflict, Item: l.items[i], Existing: existing, Incoming: q}
	}
}

// Remove 는 해당 칸의 품목을 지웁니다. 없으면 아무것도 하지 않습니다.
func (l *Ledger) Remove(productID int, c diopter.Coordinate) bool {
	i := l.indexOf(productID, c.SphString(), c.CylString())
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// RemoveByID 는 ID 로 품목을 지웁니다.
func (l *Ledger) RemoveByID(id string) error {
	i := l.indexByID(id)
	if i < 0 {
		return ErrItemNotFound
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// SetQuantity 는 수량 수정 창에서 호출됩니다.
func (l *Ledger) SetQuantity(id string, qty decimal.Decimal) error {
	i := l.indexByID(id)
	if i < 0 {
		return ErrItemNotFound
	}
	q := NormalizeQuantity(qty)
	if !q.IsPositive() {
		return ErrInvalidQuantity
	}
	l.items[i].Quantity = q
	return nil
}

// SetUnitPrice 는 단가 수정 창에서 호출됩니다. 수정된 줄은 주문 시 단가를 함께 보냅니다.
func (l *Ledger) SetUnitPrice(id string, price decimal.Decimal) error {
	i := l.indexByID(id)
	if i < 0 {
		return ErrItemNotFound
	}
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	l.items[i].Product.SellingPrice = price
	l.items[i].PriceOverridden = true
	return nil
}

// Find 는 해당 칸의 품목을 찾습니다.
func (l *Ledger) Find(productID int, c diopter.Coordinate) (model.OrderLineItem, bool) {
	i := l.indexOf(productID, c.SphString(), c.CylString())
	if i < 0 {
		return model.OrderLineItem{}, false
	}
	return l.items[i], true
}

// Items 는 입력 순서대로 복사본을 반환합니다.
func (l *Ledger) Items() []model.OrderLineItem {
	out := make([]model.OrderLineItem, len(l.items))
	copy(out, l.items)
	return out
}

// ForProduct 는 한 상품의 품목만 반환합니다. 도수표에 수량을 표시할 때 씁니다.
func (l *Ledger) ForProduct(productID int) []model.OrderLineItem {
	var out []model.OrderLineItem
	for _, it := range l.items {
		if it.Product.ID == productID {
			out = append(out, it)
		}
	}
	return out
}

func (l *Ledger) Len() int { return len(l.items) }

func (l *Ledger) Clear() { l.items = nil }

// TotalQuantity 는 매번 다시 계산합니다.
func (l *Ledger) TotalQuantity() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range l.items {
		sum = sum.Add(it.Quantity)
	}
	return sum
}

// TotalAmount 는 Σ 수량 × 판매가 입니다.
func (l *Ledger) TotalAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range l.items {
		sum = sum.Add(it.Amount())
	}
	return sum
}
