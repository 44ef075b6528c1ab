package stock

import (
	"log"

	"lensorder/diopter"
	"lensorder/model"
)

// Grid 는 sph → cyl → 재고 수량입니다. 키는 정규 도수 문자열입니다.
type Grid map[string]map[string]int

// Flatten 은 diopter-grid 응답을 Grid 로 바꿉니다.
// 서버가 "1.5" 나 "-0.00" 처럼 보내도 정규 문자열로 맞춥니다.
func Flatten(resp model.DiopterGridResponse) Grid {
	g := make(Grid, len(resp.Grid))
	for sphKey, row := range resp.Grid {
		sph, ok := diopter.Canonical(sphKey)
		if !ok {
			log.Printf("WARN: skip invalid sph key in diopter grid: %q", sphKey)
			continue
		}
		dst, ok := g[sph]
		if !ok {
			dst = make(map[string]int, len(row))
			g[sph] = dst
		}
		for cylKey, cell := range row {
			cyl, ok := diopter.Canonical(cylKey)
			if !ok {
				log.Printf("WARN: skip invalid cyl key in diopter grid: %q/%q", sphKey, cylKey)
				continue
			}
			dst[cyl] += cell.Stock
		}
	}
	return g
}

// Cache 는 선택된 상품 하나의 재고표를 보관합니다.
// 상품이 바뀌면 Begin 으로 세대를 올리고, 이전 세대의 응답은 버립니다.
type Cache struct {
	productID int
	gen       uint64
	grid      Grid
	loading   bool
}

func NewCache() *Cache {
	return &Cache{}
}

// Begin 은 새 상품의 조회를 시작합니다. 기존 재고표는 즉시 비웁니다.
func (c *Cache) Begin(productID int) uint64 {
	c.gen++
	c.productID = productID
	c.grid = nil
	c.loading = productID != 0
	return c.gen
}

// Reset 은 상품 선택 해제 시 호출합니다. 진행 중인 응답도 무효가 됩니다.
func (c *Cache) Reset() {
	c.Begin(0)
}

// Apply 는 최신 세대의 응답만 반영합니다.
func (c *Cache) Apply(gen uint64, g Grid) bool {
	if gen != c.gen {
		log.Printf("INFO: drop stale stock response (gen %d, current %d)", gen, c.gen)
		return false
	}
	c.grid = g
	c.loading = false
	return true
}

// Fail 은 조회 실패를 기록합니다. 재고표는 빈 상태로 남습니다.
func (c *Cache) Fail(gen uint64) bool {
	if gen != c.gen {
		return false
	}
	c.grid = Grid{}
	c.loading = false
	return true
}

// Lookup 은 좌표의 재고를 반환합니다. 없으면 false 입니다.
func (c *Cache) Lookup(coord diopter.Coordinate) (int, bool) {
	row, ok := c.grid[coord.SphString()]
	if !ok {
		return 0, false
	}
	n, ok := row[coord.CylString()]
	return n, ok
}

func (c *Cache) ProductID() int { return c.productID }
func (c *Cache) Generation() uint64 { return c.gen }
func (c *Cache) Loading() bool { return c.loading }
