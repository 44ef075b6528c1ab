package model

// DiopterCell 은 도수표 한 칸의 재고 정보입니다.
type DiopterCell struct {
	Stock    int    `json:"stock"`
	OptionID int    `json:"optionId,omitempty"`
	Barcode  string `json:"barcode,omitempty"`
}

// DiopterGridStats 는 도수표 요약입니다. LowStock 은 재고 1~5 인 옵션 수입니다.
type DiopterGridStats struct {
	TotalOptions int `json:"totalOptions"`
	TotalStock   int `json:"totalStock"`
	OutOfStock   int `json:"outOfStock"`
	LowStock     int `json:"lowStock"`
}

// DiopterGridResponse 는 GET /api/products/diopter-grid 응답입니다.
// Grid 는 sph → cyl → 칸 입니다.
type DiopterGridResponse struct {
	ProductID   int                               `json:"productId,omitempty"`
	ProductName string                            `json:"productName,omitempty"`
	BrandName   string                            `json:"brandName,omitempty"`
	SphRange    []string                          `json:"sphRange,omitempty"`
	CylRange    []string                          `json:"cylRange,omitempty"`
	Grid        map[string]map[string]DiopterCell `json:"grid"`
	Stats       *DiopterGridStats                 `json:"stats,omitempty"`
}

// ProductOption 은 product_options 테이블 레코드입니다. 도수 하나당 한 행입니다.
type ProductOption struct {
	ID        int    `db:"id" json:"id"`
	ProductID int    `db:"product_id" json:"productId"`
	Sph       string `db:"sph" json:"sph"`
	Cyl       string `db:"cyl" json:"cyl"`
	Stock     int    `db:"stock" json:"stock"`
	Barcode   string `db:"barcode" json:"barcode"`
	IsActive  bool   `db:"is_active" json:"isActive"`
}
