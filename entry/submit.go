package entry

import (
	"errors"
	"fmt"

	"lensorder/api"
	"lensorder/model"
	"lensorder/stock"
)

var (
	ErrNoStore        = errors.New("entry: no store selected")
	ErrEmptyLedger    = errors.New("entry: no order lines")
	ErrSubmitInFlight = errors.New("entry: submit already in flight")
)

// Submit 은 주문 등록 버튼입니다. 전제 조건이 맞지 않으면 요청 없이 오류를 돌려줍니다.
func (c *Controller) Submit() ([]Effect, error) {
	err := c.beginSubmit()
	return c.flush(), err
}

// beginSubmit 은 주문목록을 요청으로 만들어 PostOrder 를 내보냅니다.
// 실패해도 주문목록과 선택 상태는 건드리지 않습니다.
func (c *Controller) beginSubmit() error {
	if c.submitting {
		return ErrSubmitInFlight
	}
	if c.store == nil {
		c.notify(NoticeWarn, noticeSubmitNeeds)
		return ErrNoStore
	}
	if c.ledger.Len() == 0 {
		c.notify(NoticeWarn, noticeSubmitNeeds)
		return ErrEmptyLedger
	}

	c.submitting = true
	c.emit(PostOrder{Request: c.buildRequest()})
	c.notify(NoticeInfo, "주문 등록 중...")
	return nil
}

// buildRequest 는 주문목록을 생성 요청으로 직렬화합니다.
// 단가는 수정 대화상자에서 바꾼 줄만 보냅니다.
func (c *Controller) buildRequest() model.CreateOrderRequest {
	req := model.CreateOrderRequest{
		StoreID:   c.store.ID,
		OrderType: c.orderType,
		Memo:      c.memo,
	}
	for _, it := range c.ledger.Items() {
		item := model.CreateOrderItem{
			ProductID: it.Product.ID,
			Quantity:  it.Quantity.InexactFloat64(),
			Sph:       it.Sph,
			Cyl:       it.Cyl,
			Axis:      it.Axis,
		}
		if it.PriceOverridden {
			price := it.Product.SellingPrice.InexactFloat64()
			item.UnitPrice = &price
		}
		req.Items = append(req.Items, item)
	}
	return req
}

// FinishSubmit 은 주문 생성 결과를 반영합니다.
// 성공하면 출력을 요청하고 화면을 초기화합니다. 실패하면 상태를 그대로 두어 다시 보낼 수 있게 합니다.
func (c *Controller) FinishSubmit(created model.CreatedOrder, err error) []Effect {
	c.submitting = false
	if err != nil {
		msg := noticeSubmitFailed
		var se *api.StatusError
		if errors.As(err, &se) && se.Message != "" {
			msg = noticeSubmitFailed + ": " + se.Message
		}
		c.notify(NoticeError, msg)
		return c.flush()
	}

	c.emit(PrintOrder{OrderID: created.ID, OrderNo: created.OrderNo})
	c.reset()
	c.notify(NoticeInfo, fmt.Sprintf("주문이 등록되었습니다. (주문번호 %s)", created.OrderNo))
	c.emit(Alert{Level: NoticeInfo})
	return c.flush()
}

// PrintFailed 는 주문서 출력 실패를 알립니다. 주문 자체는 이미 등록되어 있습니다.
func (c *Controller) PrintFailed(orderNo string, err error) []Effect {
	c.notify(NoticeError, fmt.Sprintf("주문서 출력 실패 (주문번호 %s): %v", orderNo, err))
	return c.flush()
}

// ApplyStock 은 재고 조회 결과를 반영합니다. 이전 상품의 늦은 응답은 버립니다.
// 조회에 실패하면 재고표는 비어 있는 채로 남습니다.
func (c *Controller) ApplyStock(gen uint64, resp model.DiopterGridResponse, err error) []Effect {
	if err != nil {
		if c.stock.Fail(gen) {
			c.notify(NoticeInfo, "재고 조회 실패")
		}
		return c.flush()
	}
	c.stock.Apply(gen, stock.Flatten(resp))
	return c.flush()
}
