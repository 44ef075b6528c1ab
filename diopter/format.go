package diopter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Format 은 부호를 명시한 소수 둘째 자리 문자열을 만듭니다. 0 은 "+0.00" 입니다.
func Format(d decimal.Decimal) string {
	q := d.Round(2)
	if q.IsNegative() {
		return q.StringFixed(2)
	}
	return "+" + q.StringFixed(2)
}

// Parse 는 "+1.50", "-0.25", "0", "1.5" 등을 읽습니다.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty diopter value")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid diopter value %q: %w", s, err)
	}
	return d, nil
}

// Canonical 은 임의 표기의 도수 문자열을 정규 문자열로 바꿉니다.
func Canonical(s string) (string, bool) {
	d, err := Parse(s)
	if err != nil {
		return "", false
	}
	return Format(d), true
}

// Legacy 는 3자리 관용 표기입니다. (0.25 → "025", 12.5 → "1250")
func Legacy(d decimal.Decimal) string {
	n := d.Abs().Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return fmt.Sprintf("%03d", n)
}

// Legacy 는 좌표를 관용 표기로 반환합니다. SPH 0 이하는 '-', CYL 은 항상 '-' 입니다.
func (c Coordinate) Legacy() (sph, cyl string) {
	sign := "+"
	if !c.Sph.IsPositive() {
		sign = "-"
	}
	return sign + Legacy(c.Sph), "-" + Legacy(c.Cyl)
}

// PlusCylinderLegacy 는 플러스 CYL 환산값을 관용 표기로 반환합니다.
func (c Coordinate) PlusCylinderLegacy() string {
	p := c.PlusCylinder()
	sign := "+"
	if p.Sph.IsNegative() {
		sign = "-"
	}
	return sign + Legacy(p.Sph) + "/+" + Legacy(p.Cyl)
}
