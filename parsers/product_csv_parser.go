package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductCSVRecord 는 상품 CSV 한 줄입니다.
type ProductCSVRecord struct {
	Brand           string
	Name            string
	OptionType      string
	RefractiveIndex *string
	SellingPrice    decimal.Decimal
	PurchasePrice   decimal.Decimal
}

// ParseProductCSV 는 상품 CSV 를 읽습니다.
// 필수 헤더: brand, name, selling_price / 선택: option_type, refractive_index, purchase_price
func ParseProductCSV(r io.Reader) ([]ProductCSVRecord, error) {
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

	colIndex, err := getColIndex(header, []string{"brand", "name", "selling_price"})
	if err != nil {
		return nil, err
	}

	var records []ProductCSVRecord
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: product csv line %d read error (skip): %v", line, err)
			continue
		}

		get := func(key string) string {
			if idx, ok := colIndex[key]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		p := ProductCSVRecord{
			Brand:      get("brand"),
			Name:       get("name"),
			OptionType: get("option_type"),
		}
		if p.Brand == "" || p.Name == "" {
			log.Printf("WARN: product csv line %d has empty brand or name (skip)", line)
			continue
		}
		if p.OptionType == "" {
			p.OptionType = "안경렌즈 RX"
		}
		if ri := get("refractive_index"); ri != "" {
			p.RefractiveIndex = &ri
		}

		p.SellingPrice, err = parsePrice(get("selling_price"))
		if err != nil {
			log.Printf("WARN: product csv line %d invalid selling_price (skip): %v", line, err)
			continue
		}
		p.PurchasePrice, err = parsePrice(get("purchase_price"))
		if err != nil {
			log.Printf("WARN: product csv line %d invalid purchase_price, using 0: %v", line, err)
			p.PurchasePrice = decimal.Zero
		}
		records = append(records, p)
	}
	return records, nil
}

// parsePrice 는 "12,000" 같은 천 단위 구분 표기도 받습니다. 빈 값은 0 입니다.
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %s", s)
	}
	return d, nil
}
