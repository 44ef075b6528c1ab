package parsers

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// SkipBOM 은 UTF-8 BOM 을 건너뜁니다.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	if bytes.Equal(peeked, bom) {
		br.Discard(3)
	}
	return br
}

// DecodeKorean 은 입력이 UTF-8 이 아니면 EUC-KR(CP949) 로 보고 UTF-8 로 변환합니다.
// 엑셀에서 저장한 CSV 가 대개 EUC-KR 입니다.
func DecodeKorean(r io.Reader) (io.Reader, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if utf8.Valid(raw) {
		return SkipBOM(bytes.NewReader(raw)), nil
	}
	return transform.NewReader(bytes.NewReader(raw), korean.EUCKR.NewDecoder()), nil
}

// getColIndex 는 헤더 이름으로 열 번호를 찾습니다.
func getColIndex(header []string, required []string) (map[string]int, error) {
	colIndex := make(map[string]int)
	for i, colName := range header {
		colIndex[strings.ToLower(strings.TrimSpace(colName))] = i
	}
	for _, req := range required {
		if _, ok := colIndex[req]; !ok {
			return nil, fmt.Errorf("필수 헤더가 없습니다: %s", req)
		}
	}
	return colIndex, nil
}

// parseBool 은 "1", "true", "Y", "사용" 을 참으로 봅니다. 빈 값은 def 입니다.
func parseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def
	case "1", "true", "y", "yes", "사용":
		return true
	default:
		return false
	}
}
