package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lensorder/model"
)

// InsertOrderInTx 는 주문 헤더를 넣고 ID 를 반환합니다.
func InsertOrderInTx(tx *sqlx.Tx, o *model.Order) (int, error) {
	const q = `
		INSERT INTO orders (order_no, store_id, order_type, status, memo, total_amount, ordered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`
	var id int
	err := tx.Get(&id, tx.Rebind(q), o.OrderNo, o.StoreID, o.OrderType, o.Status, o.Memo, o.TotalAmount, o.OrderedAt)
	if err != nil {
		return 0, fmt.Errorf("InsertOrderInTx (%s) failed: %w", o.OrderNo, err)
	}
	return id, nil
}

// InsertOrderItemInTx 는 주문 품목 한 줄을 넣습니다.
func InsertOrderItemInTx(tx *sqlx.Tx, orderID int, it model.OrderItem) error {
	const q = `
		INSERT INTO order_items (order_id, product_id, sph, cyl, axis, quantity, unit_price, total_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.Exec(tx.Rebind(q), orderID, it.ProductID, it.Sph, it.Cyl, it.Axis, it.Quantity, it.UnitPrice, it.TotalPrice)
	if err != nil {
		return fmt.Errorf("InsertOrderItemInTx (order %d, product %d) failed: %w", orderID, it.ProductID, err)
	}
	return nil
}

// GetOrderByID 는 품목을 포함한 주문을 반환합니다. 없으면 nil 입니다.
func GetOrderByID(q DBTX, id int) (*model.Order, error) {
	var o model.Order
	const header = `
		SELECT o.id, o.order_no, o.store_id, s.name AS store_name, o.order_type, o.status,
			o.memo, o.total_amount, o.ordered_at
		FROM orders o JOIN stores s ON s.id = o.store_id
		WHERE o.id = ?`
	if err := q.Get(&o, q.Rebind(header), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetOrderByID (%d) failed: %w", id, err)
	}

	const items = `
		SELECT i.id, i.order_id, i.product_id, p.name AS product_name, b.name AS brand_name,
			i.sph, i.cyl, i.axis, i.quantity, i.unit_price, i.total_price
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		JOIN brands b ON b.id = p.brand_id
		WHERE i.order_id = ?
		ORDER BY i.id`
	if err := q.Select(&o.Items, q.Rebind(items), id); err != nil {
		return nil, fmt.Errorf("failed to get items of order %d: %w", id, err)
	}
	return &o, nil
}
