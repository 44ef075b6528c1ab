package model

import (
	"github.com/shopspring/decimal"
)

// OrderType 은 주문 구분입니다.
type OrderType string

const (
	OrderTypeStock  OrderType = "여벌"
	OrderTypeTinted OrderType = "착색"
	OrderTypeRx     OrderType = "RX"
	OrderTypeOther  OrderType = "기타"
)

// OrderTypes 는 화면 표시 순서입니다. (F7~F10)
var OrderTypes = []OrderType{OrderTypeStock, OrderTypeTinted, OrderTypeRx, OrderTypeOther}

// StorageKind 는 저장용 구분값입니다. RX 만 "rx", 나머지는 "stock" 입니다.
func (t OrderType) StorageKind() string {
	switch t {
	case OrderTypeRx, "rx":
		return "rx"
	default:
		return "stock"
	}
}

// DefaultAxis 는 축(AXIS) 자리표시값입니다.
const DefaultAxis = "0"

// OrderLineItem 은 주문 원장의 한 줄입니다.
// (Product.ID, Sph, Cyl) 조합은 원장 안에서 유일합니다.
type OrderLineItem struct {
	ID              string          `json:"id"`
	Product         LensProduct     `json:"product"`
	Sph             string          `json:"sph"`
	Cyl             string          `json:"cyl"`
	Axis            string          `json:"axis"`
	Quantity        decimal.Decimal `json:"quantity"`
	PriceOverridden bool            `json:"priceOverridden"`
}

// Amount 는 수량 × 판매가입니다.
func (i OrderLineItem) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.Product.SellingPrice)
}

// CreateOrderItem 은 주문 생성 요청의 품목입니다.
type CreateOrderItem struct {
	ProductID int      `json:"productId"`
	Quantity  float64  `json:"quantity"`
	Sph       string   `json:"sph"`
	Cyl       string   `json:"cyl"`
	Axis      string   `json:"axis"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
}

// CreateOrderRequest 는 POST /api/orders/create 본문입니다.
type CreateOrderRequest struct {
	StoreID   int               `json:"storeId"`
	OrderType OrderType         `json:"orderType"`
	Memo      string            `json:"memo"`
	Items     []CreateOrderItem `json:"items"`
}

// CreatedOrder 는 생성된 주문의 식별 정보입니다.
type CreatedOrder struct {
	ID      int    `json:"id"`
	OrderNo string `json:"orderNo"`
}

// CreateOrderResponse 는 주문 생성 성공 응답입니다.
type CreateOrderResponse struct {
	Order CreatedOrder `json:"order"`
}

// ErrorResponse 는 실패 시 공통 응답 형식입니다.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Order 는 orders 테이블 레코드입니다.
type Order struct {
	ID          int             `db:"id" json:"id"`
	OrderNo     string          `db:"order_no" json:"orderNo"`
	StoreID     int             `db:"store_id" json:"storeId"`
	StoreName   string          `db:"store_name" json:"storeName"`
	OrderType   string          `db:"order_type" json:"orderType"`
	Status      string          `db:"status" json:"status"`
	Memo        string          `db:"memo" json:"memo"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`
	OrderedAt   string          `db:"ordered_at" json:"orderedAt"`
	Items       []OrderItem     `db:"-" json:"items"`
}

// OrderItem 은 order_items 테이블 레코드입니다.
type OrderItem struct {
	ID          int             `db:"id" json:"id"`
	OrderID     int             `db:"order_id" json:"orderId"`
	ProductID   int             `db:"product_id" json:"productId"`
	ProductName string          `db:"product_name" json:"productName"`
	BrandName   string          `db:"brand_name" json:"brandName"`
	Sph         string          `db:"sph" json:"sph"`
	Cyl         string          `db:"cyl" json:"cyl"`
	Axis        string          `db:"axis" json:"axis"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unitPrice"`
	TotalPrice  decimal.Decimal `db:"total_price" json:"totalPrice"`
}
