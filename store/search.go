package store

import (
	"strings"

	"golang.org/x/text/cases"

	"lensorder/model"
)

// MaxSearchResults 는 검색 결과 최대 건수입니다.
const MaxSearchResults = 30

var fold = cases.Fold()

// Search 는 이름, 코드, 전화번호로 가맹점을 찾습니다.
// 대소문자를 구분하지 않고, 검색어와 전화번호의 '-' 는 무시합니다.
func Search(stores []model.Store, query string) []model.Store {
	q := strings.ReplaceAll(fold.String(strings.TrimSpace(query)), "-", "")
	if q == "" {
		return nil
	}

	var out []model.Store
	for _, s := range stores {
		if strings.Contains(fold.String(s.Name), q) ||
			strings.Contains(fold.String(s.Code), q) ||
			(s.Phone != "" && strings.Contains(strings.ReplaceAll(s.Phone, "-", ""), q)) {
			out = append(out, s)
			if len(out) == MaxSearchResults {
				break
			}
		}
	}
	return out
}
