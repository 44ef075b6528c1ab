package product

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"lensorder/database"
	"lensorder/model"
)

// LoadCatalog 는 사용 중인 브랜드와 상품을 읽습니다.
func LoadCatalog(q database.DBTX) (model.ProductCatalog, error) {
	brands, err := database.GetActiveBrands(q)
	if err != nil {
		return model.ProductCatalog{}, err
	}
	products, err := database.GetActiveProducts(q)
	if err != nil {
		return model.ProductCatalog{}, err
	}
	if brands == nil {
		brands = []model.Brand{}
	}
	if products == nil {
		products = []model.LensProduct{}
	}
	return model.ProductCatalog{Brands: brands, Products: products}, nil
}

// CatalogHandler 는 GET /api/products 입니다.
func CatalogHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog, err := LoadCatalog(db)
		if err != nil {
			log.Printf("ERROR: load catalog failed: %v", err)
			writeJSONError(w, "상품 목록을 불러오지 못했습니다.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(catalog); err != nil {
			log.Printf("WARN: failed to encode catalog: %v", err)
		}
	}
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: message})
}
