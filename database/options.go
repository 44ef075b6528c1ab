package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"lensorder/model"
)

// GetActiveOptionsByProduct 는 상품의 도수 옵션(재고)을 반환합니다.
func GetActiveOptionsByProduct(q DBTX, productID int) ([]model.ProductOption, error) {
	var options []model.ProductOption
	const query = `
		SELECT id, product_id, sph, cyl, stock, barcode, is_active
		FROM product_options
		WHERE product_id = ? AND is_active
		ORDER BY id`
	if err := q.Select(&options, q.Rebind(query), productID); err != nil {
		return nil, fmt.Errorf("failed to get options for product %d: %w", productID, err)
	}
	return options, nil
}

// UpsertOptionInTx 는 (상품, sph, cyl) 기준으로 재고를 덮어씁니다.
// sph, cyl 은 정규 도수 문자열이어야 합니다.
func UpsertOptionInTx(tx *sqlx.Tx, productID int, sph, cyl string, stock int, barcode string) error {
	const q = `
		INSERT INTO product_options (product_id, sph, cyl, stock, barcode, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (product_id, sph, cyl) DO UPDATE SET
			stock = excluded.stock,
			barcode = excluded.barcode`
	if _, err := tx.Exec(tx.Rebind(q), productID, sph, cyl, stock, barcode, true); err != nil {
		return fmt.Errorf("UpsertOptionInTx (%d %s/%s) failed: %w", productID, sph, cyl, err)
	}
	return nil
}
