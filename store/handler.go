package store

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"

	"lensorder/database"
	"lensorder/model"
)

const (
	defaultLimit = 1000
	maxLimit     = 10000
)

// ListStoresHandler 는 GET /api/stores?limit=N 입니다.
func ListStoresHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				writeJSONError(w, "limit 이 올바르지 않습니다.", http.StatusBadRequest)
				return
			}
			limit = min(n, maxLimit)
		}

		stores, err := database.GetActiveStores(db, limit)
		if err != nil {
			log.Printf("ERROR: list stores failed: %v", err)
			writeJSONError(w, "가맹점 목록을 불러오지 못했습니다.", http.StatusInternalServerError)
			return
		}
		if stores == nil {
			stores = []model.Store{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.StoreList{Stores: stores})
	}
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: message})
}
