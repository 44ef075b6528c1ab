package model

import "github.com/shopspring/decimal"

// Brand 는 brands 테이블의 레코드입니다.
type Brand struct {
	ID           int    `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	DisplayOrder int    `db:"display_order" json:"-"`
	IsActive     bool   `db:"is_active" json:"-"`
}

// LensProduct 는 주문 입력에서 선택하는 렌즈 상품입니다.
// Brand 는 표시용 브랜드명입니다.
type LensProduct struct {
	ID              int             `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Brand           string          `db:"brand_name" json:"brand"`
	BrandID         int             `db:"brand_id" json:"brandId"`
	OptionType      string          `db:"option_type" json:"optionType"`
	RefractiveIndex *string         `db:"refractive_index" json:"refractiveIndex"`
	SellingPrice    decimal.Decimal `db:"selling_price" json:"sellingPrice"`
	PurchasePrice   decimal.Decimal `db:"purchase_price" json:"purchasePrice"`
	IsActive        bool            `db:"is_active" json:"-"`
}

// ProductCatalog 는 GET /api/products 응답입니다.
type ProductCatalog struct {
	Brands   []Brand       `json:"brands"`
	Products []LensProduct `json:"products"`
}

// ProductsOfBrand 는 브랜드에 속한 상품만 순서대로 반환합니다.
func (c ProductCatalog) ProductsOfBrand(brandID int) []LensProduct {
	if brandID == 0 {
		return nil
	}
	var out []LensProduct
	for _, p := range c.Products {
		if p.BrandID == brandID {
			out = append(out, p)
		}
	}
	return out
}

// Product 는 ID 로 상품을 찾습니다.
func (c ProductCatalog) Product(id int) (LensProduct, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return LensProduct{}, false
}
