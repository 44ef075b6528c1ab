package order

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"lensorder/database"
	"lensorder/diopter"
	"lensorder/ledger"
	"lensorder/model"
)

// RequestError 는 클라이언트에 그대로 보여줄 검증 오류입니다.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string { return e.Message }

func badRequest(msg string) error {
	return &RequestError{Status: http.StatusBadRequest, Message: msg}
}

// Create 는 주문 하나를 한 트랜잭션으로 등록합니다.
// 수량은 0.5 단위로 올림하고, 단가는 요청 단가가 없으면 상품 판매가를 씁니다.
func Create(db *sqlx.DB, req model.CreateOrderRequest, now time.Time) (*model.CreatedOrder, error) {
	if req.StoreID <= 0 {
		return nil, badRequest("가맹점을 선택해주세요")
	}
	if len(req.Items) == 0 {
		return nil, badRequest("상품을 추가해주세요")
	}

	tx, err := db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	store, err := database.GetStoreByID(tx, req.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, &RequestError{Status: http.StatusNotFound, Message: "가맹점을 찾을 수 없습니다."}
	}
	if !store.IsActive {
		return nil, badRequest("비활성 가맹점입니다.")
	}

	ids := make([]int, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := database.GetProductMap(tx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	total := decimal.Zero
	for i, it := range req.Items {
		p, ok := products[it.ProductID]
		if !ok {
			return nil, badRequest(fmt.Sprintf("상품을 찾을 수 없습니다. (%d)", it.ProductID))
		}

		qty := ledger.NormalizeQuantity(decimal.NewFromFloat(it.Quantity))
		if !qty.IsPositive() {
			return nil, badRequest(fmt.Sprintf("%d번째 품목의 수량이 올바르지 않습니다.", i+1))
		}

		unitPrice := p.SellingPrice
		if it.UnitPrice != nil {
			unitPrice = decimal.NewFromFloat(*it.UnitPrice)
			if unitPrice.IsNegative() {
				return nil, badRequest(fmt.Sprintf("%d번째 품목의 단가가 올바르지 않습니다.", i+1))
			}
		}

		sph, cyl, err := canonicalPair(it.Sph, it.Cyl)
		if err != nil {
			return nil, badRequest(fmt.Sprintf("%d번째 품목의 도수가 올바르지 않습니다.", i+1))
		}
		axis := it.Axis
		if axis == "" {
			axis = model.DefaultAxis
		}

		line := qty.Mul(unitPrice)
		total = total.Add(line)
		items = append(items, model.OrderItem{
			ProductID:  p.ID,
			Sph:        sph,
			Cyl:        cyl,
			Axis:       axis,
			Quantity:   qty,
			UnitPrice:  unitPrice,
			TotalPrice: line,
		})
	}

	seqName, prefix := database.OrderSequence(now)
	if err := database.EnsureSequenceInTx(tx, seqName); err != nil {
		return nil, err
	}
	orderNo, err := database.NextSequenceInTx(tx, seqName, prefix, 1)
	if err != nil {
		return nil, err
	}

	o := &model.Order{
		OrderNo:     orderNo,
		StoreID:     store.ID,
		OrderType:   req.OrderType.StorageKind(),
		Status:      "pending",
		Memo:        req.Memo,
		TotalAmount: total,
		OrderedAt:   now.Format("2006-01-02 15:04:05"),
	}
	orderID, err := database.InsertOrderInTx(tx, o)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := database.InsertOrderItemInTx(tx, orderID, it); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	log.Printf("INFO: order %s created (store=%s, items=%d, total=%s)", orderNo, store.Name, len(items), total.StringFixed(0))
	return &model.CreatedOrder{ID: orderID, OrderNo: orderNo}, nil
}

// canonicalPair 는 도수를 정규 문자열로 맞춥니다. 비어 있으면 그대로 둡니다.
func canonicalPair(sph, cyl string) (string, string, error) {
	out := [2]string{}
	for i, v := range [2]string{sph, cyl} {
		if v == "" {
			continue
		}
		c, ok := diopter.Canonical(v)
		if !ok {
			return "", "", fmt.Errorf("invalid diopter %q", v)
		}
		out[i] = c
	}
	return out[0], out[1], nil
}
