package render

import (
	"fmt"
	"html"
	"strings"

	"lensorder/diopter"
	"lensorder/model"
	"lensorder/units"
)

var orderTypeLabels = map[string]string{
	"stock": "여벌",
	"rx":    "RX",
}

// RenderOrderSheetHTML 은 주문서(출력용) HTML 을 만듭니다.
// 도수는 관용 3자리 표기(-150 / -025)로 함께 표시합니다.
func RenderOrderSheetHTML(o *model.Order) string {
	var sb strings.Builder
	esc := html.EscapeString

	sb.WriteString(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>주문서 `)
	sb.WriteString(esc(o.OrderNo))
	sb.WriteString(`</title>
<style>
  body { font-family: sans-serif; font-size: 12px; margin: 16px; }
  h1 { font-size: 18px; margin: 0 0 8px; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #333; padding: 3px 6px; }
  td.num { text-align: right; }
  .meta td { border: none; padding: 1px 8px 1px 0; }
</style>
</head>
<body>
<h1>주문서</h1>
<table class="meta">`)

	label := orderTypeLabels[o.OrderType]
	if label == "" {
		label = o.OrderType
	}
	fmt.Fprintf(&sb, `
  <tr><td>주문번호</td><td>%s</td><td>주문일시</td><td>%s</td></tr>
  <tr><td>가맹점</td><td>%s</td><td>구분</td><td>%s</td></tr>`,
		esc(o.OrderNo), esc(o.OrderedAt), esc(o.StoreName), esc(label))
	if o.Memo != "" {
		fmt.Fprintf(&sb, `
  <tr><td>메모</td><td colspan="3">%s</td></tr>`, esc(o.Memo))
	}
	sb.WriteString(`
</table>
<br>
<table>
  <thead>
    <tr><th>No</th><th>브랜드</th><th>상품</th><th>SPH</th><th>CYL</th><th>AXIS</th><th>수량</th><th>단가</th><th>금액</th></tr>
  </thead>
  <tbody>`)

	if len(o.Items) == 0 {
		sb.WriteString(`
    <tr><td colspan="9">품목이 없습니다.</td></tr>`)
	}
	total := o.TotalAmount
	for i, it := range o.Items {
		fmt.Fprintf(&sb, `
    <tr><td class="num">%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td class="num">%s</td><td class="num">%s</td><td class="num">%s</td></tr>`,
			i+1, esc(it.BrandName), esc(it.ProductName),
			esc(legacySph(it.Sph)), esc(legacyCyl(it.Cyl)), esc(it.Axis),
			units.Quantity(it.Quantity), units.Number(it.UnitPrice), units.Number(it.TotalPrice))
	}

	fmt.Fprintf(&sb, `
  </tbody>
  <tfoot>
    <tr><td colspan="8">합계</td><td class="num">%s</td></tr>
  </tfoot>
</table>
</body>
</html>
`, units.Amount(total))
	return sb.String()
}

func legacySph(s string) string {
	d, err := diopter.Parse(s)
	if err != nil {
		return s
	}
	sign := "+"
	if !d.IsPositive() {
		sign = "-"
	}
	return sign + diopter.Legacy(d)
}

func legacyCyl(s string) string {
	d, err := diopter.Parse(s)
	if err != nil {
		return s
	}
	return "-" + diopter.Legacy(d)
}
