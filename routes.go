package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"lensorder/loader"
	"lensorder/order"
	"lensorder/product"
	"lensorder/stock"
	"lensorder/store"
)

// SetupRoutes 는 주문 입력 화면이 쓰는 API 와 출력 화면 경로를 등록합니다.
func SetupRoutes(dbConn *sqlx.DB) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/products", product.CatalogHandler(dbConn))
	r.Get("/api/products/diopter-grid", stock.DiopterGridHandler(dbConn))
	r.Get("/api/stores", store.ListStoresHandler(dbConn))

	order.RegisterRoutes(r, dbConn)

	r.Get("/api/config", GetConfigHandler())
	r.Post("/api/config", SaveConfigHandler())

	r.Post("/api/seeds/reload", loader.ReloadSeedHandler(dbConn))
	return r
}
