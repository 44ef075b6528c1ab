package entry

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"lensorder/ledger"
)

// openEdit 는 주문목록 커서 위치의 줄에 대해 수정 대화상자를 엽니다.
func (c *Controller) openEdit(kind EditKind) {
	items := c.ledger.Items()
	if c.ledgerCursor < 0 || c.ledgerCursor >= len(items) {
		return
	}
	c.overlay = &EditOverlay{Kind: kind, ItemID: items[c.ledgerCursor].ID}
}

func (c *Controller) handleEditKey(o *EditOverlay, k Key) {
	switch {
	case k.isNumeric():
		if k.Rune == '.' && strings.ContainsRune(o.Value, '.') {
			return
		}
		o.Value += string(k.Rune)
	case k.isErase():
		if o.Value != "" {
			o.Value = o.Value[:len(o.Value)-1]
		}
	case k.Code == KeyEnter:
		c.confirmEdit(o)
	case k.Code == KeyEscape:
		c.overlay = nil
	}
}

// confirmEdit 는 입력값을 반영합니다. 빈 값은 변경 없이 닫습니다.
// 잘못된 값이면 대화상자를 열어 둔 채 안내합니다.
func (c *Controller) confirmEdit(o *EditOverlay) {
	if o.Value == "" {
		c.overlay = nil
		return
	}
	v, err := decimal.NewFromString(strings.TrimSuffix(o.Value, "."))
	if err != nil {
		c.notify(NoticeWarn, o.Kind.String()+"을(를) 확인해주세요.")
		return
	}

	switch o.Kind {
	case EditQuantity:
		err = c.ledger.SetQuantity(o.ItemID, v)
	case EditPrice:
		err = c.ledger.SetUnitPrice(o.ItemID, v)
	}
	switch {
	case errors.Is(err, ledger.ErrInvalidQuantity):
		c.notify(NoticeWarn, "수량은 0보다 커야 합니다.")
		return
	case errors.Is(err, ledger.ErrInvalidPrice):
		c.notify(NoticeWarn, "단가는 0 이상이어야 합니다.")
		return
	case err != nil:
		c.notify(NoticeWarn, "주문 줄을 찾을 수 없습니다.")
	}
	c.overlay = nil
}
