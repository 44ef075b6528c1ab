package loader

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"lensorder/database"
	"lensorder/parsers"
)

//go:embed schema_sqlite.sql
var schemaSQLite string

//go:embed schema_postgres.sql
var schemaPostgres string

// 시드 파일 이름 (seedDir 기준)
const (
	StoresFile   = "stores.csv"
	ProductsFile = "products.csv"
	OptionsFile  = "options.csv"
)

// InitDatabase 는 스키마를 적용하고 시드 CSV 를 적재한 뒤 주문번호 시퀀스를 맞춥니다.
// seedDir 이 비어 있거나 파일이 없으면 해당 시드는 건너뜁니다.
func InitDatabase(db *sqlx.DB, seedDir string) error {
	log.Println("Applying database schema...")
	if err := applySchema(db); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Println("Schema applied successfully.")

	if seedDir != "" {
		if err := LoadSeeds(db, seedDir); err != nil {
			return err
		}
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for sequence initialization: %w", err)
	}
	defer tx.Rollback()

	if err := database.InitializeSequenceFromMaxOrderNo(tx, time.Now()); err != nil {
		log.Printf("WARN: Failed to initialize order sequence: %v", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sequence initialization: %w", err)
	}
	log.Println("Code sequences initialized.")
	return nil
}

// LoadSeeds 는 stores.csv, products.csv, options.csv 를 순서대로 적재합니다.
func LoadSeeds(db *sqlx.DB, seedDir string) error {
	steps := []struct {
		file string
		load func(*sqlx.DB, string) (int, error)
	}{
		{StoresFile, loadStores},
		{ProductsFile, loadProducts},
		{OptionsFile, loadOptions},
	}
	for _, s := range steps {
		path := filepath.Join(seedDir, s.file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Printf("WARN: %s not found, skipping.", path)
			continue
		}
		log.Printf("Loading %s...", path)
		n, err := s.load(db, path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		log.Printf("Loaded %d rows from %s.", n, path)
	}
	return nil
}

func applySchema(db *sqlx.DB) error {
	schema := schemaSQLite
	if db.DriverName() == database.DriverPostgres {
		schema = schemaPostgres
	}
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

func openCSV(path string) (*os.File, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open file %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

func loadStores(db *sqlx.DB, path string) (int, error) {
	f, closeFn, err := openCSV(path)
	if err != nil {
		return 0, err
	}
	defer closeFn()

	r, err := parsers.DecodeKorean(f)
	if err != nil {
		return 0, err
	}
	stores, err := parsers.ParseStoreCSV(r)
	if err != nil {
		return 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range stores {
		if err := database.UpsertStoreInTx(tx, s); err != nil {
			return 0, err
		}
	}
	return len(stores), tx.Commit()
}

func loadProducts(db *sqlx.DB, path string) (int, error) {
	f, closeFn, err := openCSV(path)
	if err != nil {
		return 0, err
	}
	defer closeFn()

	r, err := parsers.DecodeKorean(f)
	if err != nil {
		return 0, err
	}
	records, err := parsers.ParseProductCSV(r)
	if err != nil {
		return 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	brandOrder := map[string]int{}
	for i, rec := range records {
		if _, ok := brandOrder[rec.Brand]; !ok {
			brandOrder[rec.Brand] = len(brandOrder) + 1
		}
		brandID, err := database.GetOrCreateBrandInTx(tx, rec.Brand, brandOrder[rec.Brand])
		if err != nil {
			return 0, err
		}
		_, err = database.UpsertProductInTx(tx, database.ProductInput{
			BrandID:         brandID,
			Name:            rec.Name,
			OptionType:      rec.OptionType,
			RefractiveIndex: rec.RefractiveIndex,
			SellingPrice:    rec.SellingPrice,
			PurchasePrice:   rec.PurchasePrice,
			DisplayOrder:    i + 1,
		})
		if err != nil {
			return 0, err
		}
	}
	return len(records), tx.Commit()
}

func loadOptions(db *sqlx.DB, path string) (int, error) {
	f, closeFn, err := openCSV(path)
	if err != nil {
		return 0, err
	}
	defer closeFn()

	r, err := parsers.DecodeKorean(f)
	if err != nil {
		return 0, err
	}
	records, err := parsers.ParseOptionCSV(r)
	if err != nil {
		return 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	type key struct{ brand, product string }
	ids := map[key]int{}
	n := 0
	for _, rec := range records {
		k := key{rec.Brand, rec.Product}
		id, ok := ids[k]
		if !ok {
			var found bool
			id, found, err = database.FindProductIDInTx(tx, rec.Brand, rec.Product)
			if err != nil {
				return 0, err
			}
			if !found {
				log.Printf("WARN: option for unknown product %s/%s (skip)", rec.Brand, rec.Product)
				continue
			}
			ids[k] = id
		}
		if err := database.UpsertOptionInTx(tx, id, rec.Sph, rec.Cyl, rec.Stock, rec.Barcode); err != nil {
			return 0, err
		}
		n++
	}
	return n, tx.Commit()
}
