package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"lensorder/diopter"
)

// OptionCSVRecord 는 도수별 재고 CSV 한 줄입니다. Sph/Cyl 은 정규 문자열입니다.
type OptionCSVRecord struct {
	Brand   string
	Product string
	Sph     string
	Cyl     string
	Stock   int
	Barcode string
}

// ParseOptionCSV 는 도수별 재고 CSV 를 읽습니다.
// 필수 헤더: brand, product, sph, cyl, stock / 선택: barcode
// cyl 이 비어 있으면 0.00 으로 봅니다.
func ParseOptionCSV(r io.Reader) ([]OptionCSVRecord, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV 파일이 비어 있습니다")
	}
	if err != nil {
		return nil, fmt.Errorf("CSV 헤더 읽기 실패: %w", err)
	}

	colIndex, err := getColIndex(header, []string{"brand", "product", "sph", "cyl", "stock"})
	if err != nil {
		return nil, err
	}

	var records []OptionCSVRecord
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: option csv line %d read error (skip): %v", line, err)
			continue
		}

		get := func(key string) string {
			if idx, ok := colIndex[key]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		o := OptionCSVRecord{
			Brand:   get("brand"),
			Product: get("product"),
			Barcode: get("barcode"),
		}
		if o.Brand == "" || o.Product == "" {
			log.Printf("WARN: option csv line %d has empty brand or product (skip)", line)
			continue
		}

		sph, ok := diopter.Canonical(get("sph"))
		if !ok {
			log.Printf("WARN: option csv line %d invalid sph %q (skip)", line, get("sph"))
			continue
		}
		cylRaw := get("cyl")
		if cylRaw == "" {
			cylRaw = "0"
		}
		cyl, ok := diopter.Canonical(cylRaw)
		if !ok {
			log.Printf("WARN: option csv line %d invalid cyl %q (skip)", line, cylRaw)
			continue
		}
		o.Sph, o.Cyl = sph, cyl

		o.Stock, err = strconv.Atoi(get("stock"))
		if err != nil || o.Stock < 0 {
			log.Printf("WARN: option csv line %d invalid stock %q, using 0", line, get("stock"))
			o.Stock = 0
		}
		records = append(records, o)
	}
	return records, nil
}
