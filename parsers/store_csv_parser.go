package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"lensorder/model"
)

// ParseStoreCSV 는 가맹점 CSV 를 읽습니다.
// 필수 헤더: code, name / 선택: phone, owner_name, address, is_active
func ParseStoreCSV(r io.Reader) ([]model.Store, error) {
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

	colIndex, err := getColIndex(header, []string{"code", "name"})
	if err != nil {
		return nil, err
	}

	var stores []model.Store
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: store csv line %d read error (skip): %v", line, err)
			continue
		}

		get := func(key string) string {
			if idx, ok := colIndex[key]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		s := model.Store{
			Code:      get("code"),
			Name:      get("name"),
			Phone:     get("phone"),
			OwnerName: get("owner_name"),
			Address:   get("address"),
			IsActive:  parseBool(get("is_active"), true),
		}
		if s.Code == "" || s.Name == "" {
			log.Printf("WARN: store csv line %d has empty code or name (skip)", line)
			continue
		}
		stores = append(stores, s)
	}
	return stores, nil
}
