package units

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Korean)

// Amount 는 금액을 "30,000원" 형식으로 만듭니다.
func Amount(d decimal.Decimal) string {
	return printer.Sprintf("%v원", number.Decimal(d.Round(2).InexactFloat64(), number.MaxFractionDigits(2)))
}

// Number 는 천 단위 구분 기호를 붙입니다. 단위는 붙이지 않습니다.
func Number(d decimal.Decimal) string {
	return printer.Sprintf("%v", number.Decimal(d.Round(2).InexactFloat64(), number.MaxFractionDigits(2)))
}

// Quantity 는 수량을 "2" 또는 "1.5" 로 표시합니다.
func Quantity(d decimal.Decimal) string {
	return d.String()
}

// Count 는 "총 3개" 형식의 합계 문구입니다.
func Count(d decimal.Decimal) string {
	return "총 " + Quantity(d) + "개"
}
