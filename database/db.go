package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// 지원하는 드라이버 이름
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// DBTX 는 *sqlx.DB 와 *sqlx.Tx 공통 인터페이스입니다.
// 쿼리는 '?' 로 쓰고 Rebind 로 드라이버에 맞춥니다.
type DBTX interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	Exec(query string, args ...interface{}) (sql.Result, error)
	Rebind(query string) string
	DriverName() string
}

// Open 은 설정된 드라이버로 DB 에 연결합니다.
func Open(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "", DriverSQLite:
		driver = DriverSQLite
		if dsn == "" {
			dsn = "./lensorder.db?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
		}
	case DriverPostgres, "postgres":
		driver = DriverPostgres
		if dsn == "" {
			return nil, fmt.Errorf("postgres requires a DSN")
		}
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error (%s): %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error (%s): %w", driver, err)
	}
	if driver == DriverSQLite {
		// sqlite 는 쓰기 잠금이 하나뿐입니다.
		db.SetMaxOpenConns(1)
	}
	log.Printf("INFO: database connected (driver=%s)", driver)
	return db, nil
}
