package entry

import "lensorder/model"

// Effect 는 컨트롤러가 요청하는 외부 작업입니다. Session 이 비동기로 실행합니다.
type Effect interface {
	isEffect()
}

// LoadStock 은 상품의 도수표 재고 조회입니다. 결과는 Generation 과 함께 ApplyStock 으로 돌려줍니다.
type LoadStock struct {
	ProductID  int
	Generation uint64
}

// PostOrder 는 주문 생성 요청입니다. 결과는 FinishSubmit 으로 돌려줍니다.
type PostOrder struct {
	Request model.CreateOrderRequest
}

// PrintOrder 는 등록된 주문서 출력입니다.
type PrintOrder struct {
	OrderID int
	OrderNo string
}

// Alert 는 안내음입니다.
type Alert struct {
	Level NoticeLevel
}

func (LoadStock) isEffect() {}
func (PostOrder) isEffect() {}
func (PrintOrder) isEffect() {}
func (Alert) isEffect() {}
