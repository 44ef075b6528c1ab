package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// OrderSequence 는 해당 월의 주문번호 시퀀스 이름과 접두어(MM)를 반환합니다.
// 주문번호는 MM + 월별 순번입니다. (2월 첫 주문 = "021")
func OrderSequence(t time.Time) (name, prefix string) {
	return "ORD" + t.Format("200601"), t.Format("01")
}

// EnsureSequenceInTx 는 시퀀스 행이 없으면 0 으로 만듭니다.
func EnsureSequenceInTx(tx *sqlx.Tx, name string) error {
	const q = `INSERT INTO code_sequences (name, last_no) VALUES (?, 0) ON CONFLICT (name) DO NOTHING`
	if _, err := tx.Exec(tx.Rebind(q), name); err != nil {
		return fmt.Errorf("failed to ensure sequence '%s': %w", name, err)
	}
	return nil
}

// NextSequenceInTx 는 시퀀스를 1 올리고 prefix + 번호 문자열을 반환합니다.
func NextSequenceInTx(tx *sqlx.Tx, name, prefix string, padding int) (string, error) {
	var lastNo int
	err := tx.Get(&lastNo, tx.Rebind("SELECT last_no FROM code_sequences WHERE name = ?"), name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("sequence '%s' not found", name)
		}
		return "", fmt.Errorf("failed to get sequence '%s': %w", name, err)
	}

	newNo := lastNo + 1
	_, err = tx.Exec(tx.Rebind(`UPDATE code_sequences SET last_no = ? WHERE name = ?`), newNo, name)
	if err != nil {
		return "", fmt.Errorf("failed to update sequence '%s': %w", name, err)
	}

	format := fmt.Sprintf("%s%%0%dd", prefix, padding)
	newCode := fmt.Sprintf(format, newNo)
	log.Printf("INFO: [Sequence] '%s' last_no %d -> %s", name, lastNo, newCode)
	return newCode, nil
}

// InitializeSequenceFromMaxOrderNo 는 이번 달 주문번호 중 가장 큰 순번으로 시퀀스를 맞춥니다.
// 시드나 수동 입력으로 orders 가 먼저 채워진 경우에 필요합니다.
func InitializeSequenceFromMaxOrderNo(tx *sqlx.Tx, now time.Time) error {
	name, prefix := OrderSequence(now)
	if err := EnsureSequenceInTx(tx, name); err != nil {
		return err
	}

	var orderNos []string
	const q = `SELECT order_no FROM orders WHERE order_no LIKE ? AND ordered_at LIKE ?`
	if err := tx.Select(&orderNos, tx.Rebind(q), prefix+"%", now.Format("2006-01")+"%"); err != nil {
		return fmt.Errorf("failed to read order numbers for '%s': %w", name, err)
	}

	maxNum := 0
	for _, no := range orderNos {
		if n, err := strconv.Atoi(strings.TrimPrefix(no, prefix)); err == nil && n > maxNum {
			maxNum = n
		}
	}

	var current int
	if err := tx.Get(&current, tx.Rebind("SELECT last_no FROM code_sequences WHERE name = ?"), name); err != nil {
		return fmt.Errorf("failed to get sequence '%s': %w", name, err)
	}
	if maxNum <= current {
		return nil
	}
	log.Printf("INFO: [Sequence] Setting '%s' last_no to %d", name, maxNum)
	_, err := tx.Exec(tx.Rebind(`UPDATE code_sequences SET last_no = ? WHERE name = ?`), maxNum, name)
	return err
}
