package model

// Store 는 가맹점(거래처) 레코드입니다.
type Store struct {
	ID        int    `db:"id" json:"id"`
	Code      string `db:"code" json:"code"`
	Name      string `db:"name" json:"name"`
	Phone     string `db:"phone" json:"phone"`
	OwnerName string `db:"owner_name" json:"ownerName,omitempty"`
	Address   string `db:"address" json:"address,omitempty"`
	IsActive  bool   `db:"is_active" json:"isActive"`
}

// StoreList 는 GET /api/stores 응답입니다.
type StoreList struct {
	Stores []Store `json:"stores"`
}
