package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"lensorder/model"
)

const productColumns = `
	p.id, p.name, p.brand_id, b.name AS brand_name, p.option_type, p.refractive_index,
	p.selling_price, p.purchase_price, p.is_active
`

// GetActiveBrands 는 사용 중인 브랜드를 표시 순서대로 반환합니다.
func GetActiveBrands(q DBTX) ([]model.Brand, error) {
	var brands []model.Brand
	const query = `SELECT id, name, display_order, is_active FROM brands WHERE is_active ORDER BY display_order, id`
	if err := q.Select(&brands, query); err != nil {
		return nil, fmt.Errorf("failed to get brands: %w", err)
	}
	return brands, nil
}

// GetActiveProducts 는 사용 중인 상품을 브랜드, 이름 순으로 반환합니다.
func GetActiveProducts(q DBTX) ([]model.LensProduct, error) {
	var products []model.LensProduct
	query := `SELECT ` + productColumns + `
		FROM products p JOIN brands b ON b.id = p.brand_id
		WHERE p.is_active AND b.is_active
		ORDER BY b.display_order, p.brand_id, p.display_order, p.name`
	if err := q.Select(&products, query); err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetProductByID 는 상품 하나를 반환합니다. 없으면 nil 입니다.
func GetProductByID(q DBTX, id int) (*model.LensProduct, error) {
	var p model.LensProduct
	query := `SELECT ` + productColumns + `
		FROM products p JOIN brands b ON b.id = p.brand_id
		WHERE p.id = ?`
	if err := q.Get(&p, q.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetProductByID (%d) failed: %w", id, err)
	}
	return &p, nil
}

// GetProductMap 은 ID 목록의 상품을 맵으로 반환합니다.
func GetProductMap(q DBTX, ids []int) (map[int]model.LensProduct, error) {
	out := make(map[int]model.LensProduct, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT `+productColumns+`
		FROM products p JOIN brands b ON b.id = p.brand_id
		WHERE p.id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}
	var products []model.LensProduct
	if err := q.Select(&products, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get products by id: %w", err)
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

// GetOrCreateBrandInTx 는 이름으로 브랜드를 찾고 없으면 만듭니다.
func GetOrCreateBrandInTx(tx *sqlx.Tx, name string, displayOrder int) (int, error) {
	var id int
	err := tx.Get(&id, tx.Rebind(`SELECT id FROM brands WHERE name = ?`), name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("GetOrCreateBrandInTx (%s) failed: %w", name, err)
	}
	const q = `INSERT INTO brands (name, display_order, is_active) VALUES (?, ?, ?) RETURNING id`
	if err := tx.Get(&id, tx.Rebind(q), name, displayOrder, true); err != nil {
		return 0, fmt.Errorf("CreateBrand (%s) failed: %w", name, err)
	}
	return id, nil
}

// ProductInput 은 시드 적재용 상품 입력값입니다.
type ProductInput struct {
	BrandID         int
	Name            string
	OptionType      string
	RefractiveIndex *string
	SellingPrice    decimal.Decimal
	PurchasePrice   decimal.Decimal
	DisplayOrder    int
}

// UpsertProductInTx 는 (브랜드, 이름) 기준으로 상품을 넣거나 갱신합니다.
func UpsertProductInTx(tx *sqlx.Tx, in ProductInput) (int, error) {
	const q = `
		INSERT INTO products (brand_id, name, option_type, refractive_index, selling_price, purchase_price, display_order, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (brand_id, name) DO UPDATE SET
			option_type = excluded.option_type,
			refractive_index = excluded.refractive_index,
			selling_price = excluded.selling_price,
			purchase_price = excluded.purchase_price
		RETURNING id`
	var id int
	err := tx.Get(&id, tx.Rebind(q), in.BrandID, in.Name, in.OptionType, in.RefractiveIndex,
		in.SellingPrice, in.PurchasePrice, in.DisplayOrder, true)
	if err != nil {
		return 0, fmt.Errorf("UpsertProductInTx (%s) failed: %w", in.Name, err)
	}
	return id, nil
}

// FindProductIDInTx 는 브랜드명과 상품명으로 상품 ID 를 찾습니다.
func FindProductIDInTx(tx *sqlx.Tx, brandName, productName string) (int, bool, error) {
	var id int
	const q = `SELECT p.id FROM products p JOIN brands b ON b.id = p.brand_id WHERE b.name = ? AND p.name = ?`
	err := tx.Get(&id, tx.Rebind(q), brandName, productName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("FindProductIDInTx failed: %w", err)
	}
	return id, true, nil
}
