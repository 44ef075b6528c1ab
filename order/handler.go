package order

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"lensorder/database"
	"lensorder/model"
	"lensorder/render"
)

// RegisterRoutes 는 주문 관련 경로를 등록합니다.
func RegisterRoutes(r chi.Router, db *sqlx.DB) {
	r.Post("/api/orders/create", CreateOrderHandler(db))
	r.Get("/api/orders/{id}", GetOrderHandler(db))
	r.Get("/orders/{id}/print", PrintViewHandler(db))
}

// CreateOrderHandler 는 POST /api/orders/create 입니다.
func CreateOrderHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "요청 형식이 올바르지 않습니다.", http.StatusBadRequest)
			return
		}

		created, err := Create(db, req, time.Now())
		if err != nil {
			var reqErr *RequestError
			if errors.As(err, &reqErr) {
				writeJSONError(w, reqErr.Message, reqErr.Status)
				return
			}
			log.Printf("ERROR: failed to create order: %v", err)
			writeJSONError(w, "주문 등록에 실패했습니다.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.CreateOrderResponse{Order: *created})
	}
}

// GetOrderHandler 는 GET /api/orders/{id} 입니다.
func GetOrderHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, ok := loadOrder(w, r, db)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(o)
	}
}

// PrintViewHandler 는 GET /orders/{id}/print 입니다. 출력용 주문서 HTML 을 반환합니다.
func PrintViewHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, ok := loadOrder(w, r, db)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(render.RenderOrderSheetHTML(o)))
	}
}

func loadOrder(w http.ResponseWriter, r *http.Request, db *sqlx.DB) (*model.Order, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeJSONError(w, "주문 ID 가 올바르지 않습니다.", http.StatusBadRequest)
		return nil, false
	}
	o, err := database.GetOrderByID(db, id)
	if err != nil {
		log.Printf("ERROR: failed to load order %d: %v", id, err)
		writeJSONError(w, "주문을 불러오지 못했습니다.", http.StatusInternalServerError)
		return nil, false
	}
	if o == nil {
		writeJSONError(w, "주문을 찾을 수 없습니다.", http.StatusNotFound)
		return nil, false
	}
	return o, true
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: message})
}
