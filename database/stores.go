package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lensorder/model"
)

const storeColumns = `id, code, name, phone, owner_name, address, is_active`

// GetActiveStores 는 사용 중인 가맹점을 이름순으로 최대 limit 건 반환합니다.
func GetActiveStores(q DBTX, limit int) ([]model.Store, error) {
	var stores []model.Store
	query := `SELECT ` + storeColumns + ` FROM stores WHERE is_active ORDER BY name, id LIMIT ?`
	if err := q.Select(&stores, q.Rebind(query), limit); err != nil {
		return nil, fmt.Errorf("failed to get stores: %w", err)
	}
	return stores, nil
}

// GetStoreByID 는 가맹점 하나를 반환합니다. 없으면 nil 입니다.
func GetStoreByID(q DBTX, id int) (*model.Store, error) {
	var s model.Store
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = ?`
	if err := q.Get(&s, q.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetStoreByID (%d) failed: %w", id, err)
	}
	return &s, nil
}

// UpsertStoreInTx 는 가맹점 코드 기준으로 넣거나 갱신합니다.
func UpsertStoreInTx(tx *sqlx.Tx, s model.Store) error {
	const q = `
		INSERT INTO stores (code, name, phone, owner_name, address, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (code) DO UPDATE SET
			name = excluded.name,
			phone = excluded.phone,
			owner_name = excluded.owner_name,
			address = excluded.address,
			is_active = excluded.is_active`
	_, err := tx.Exec(tx.Rebind(q), s.Code, s.Name, s.Phone, s.OwnerName, s.Address, s.IsActive)
	if err != nil {
		return fmt.Errorf("UpsertStoreInTx (Code: %s, Name: %s) failed: %w", s.Code, s.Name, err)
	}
	return nil
}
