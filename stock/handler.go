package stock

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"lensorder/database"
	"lensorder/diopter"
	"lensorder/model"
)

// LowStockThreshold 이하(1 이상)는 재고 부족으로 집계합니다.
const LowStockThreshold = 5

// BuildGrid 는 옵션 목록으로 도수표 응답을 만듭니다.
func BuildGrid(product *model.LensProduct, options []model.ProductOption) model.DiopterGridResponse {
	resp := model.DiopterGridResponse{
		Grid:  make(map[string]map[string]model.DiopterCell),
		Stats: &model.DiopterGridStats{},
	}
	if product != nil {
		resp.ProductID = product.ID
		resp.ProductName = product.Name
		resp.BrandName = product.Brand
	}

	sphSet := map[string]struct{}{}
	cylSet := map[string]struct{}{}
	for _, o := range options {
		row, ok := resp.Grid[o.Sph]
		if !ok {
			row = make(map[string]model.DiopterCell)
			resp.Grid[o.Sph] = row
		}
		row[o.Cyl] = model.DiopterCell{Stock: o.Stock, OptionID: o.ID, Barcode: o.Barcode}
		sphSet[o.Sph] = struct{}{}
		cylSet[o.Cyl] = struct{}{}

		resp.Stats.TotalOptions++
		resp.Stats.TotalStock += o.Stock
		switch {
		case o.Stock == 0:
			resp.Stats.OutOfStock++
		case o.Stock <= LowStockThreshold:
			resp.Stats.LowStock++
		}
	}
	resp.SphRange = sortedDiopters(sphSet)
	resp.CylRange = sortedDiopters(cylSet)
	if len(resp.CylRange) == 0 {
		resp.CylRange = []string{diopter.Format(decimal.Zero)}
	}
	return resp
}

func sortedDiopters(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		a, errA := diopter.Parse(out[i])
		b, errB := diopter.Parse(out[j])
		if errA != nil || errB != nil {
			return out[i] < out[j]
		}
		return a.LessThan(b)
	})
	return out
}

// DiopterGridHandler 는 GET /api/products/diopter-grid?productId= 입니다.
func DiopterGridHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := strconv.Atoi(r.URL.Query().Get("productId"))
		if err != nil || productID <= 0 {
			writeJSONError(w, "productId 가 올바르지 않습니다.", http.StatusBadRequest)
			return
		}

		product, err := database.GetProductByID(db, productID)
		if err != nil {
			log.Printf("ERROR: diopter grid product lookup failed: %v", err)
			writeJSONError(w, "Failed to fetch diopter grid", http.StatusInternalServerError)
			return
		}
		if product == nil {
			writeJSONError(w, "상품을 찾을 수 없습니다.", http.StatusNotFound)
			return
		}

		options, err := database.GetActiveOptionsByProduct(db, productID)
		if err != nil {
			log.Printf("ERROR: diopter grid options failed: %v", err)
			writeJSONError(w, "Failed to fetch diopter grid", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(BuildGrid(product, options)); err != nil {
			log.Printf("WARN: failed to encode diopter grid: %v", err)
		}
	}
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: message})
}
