package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"lensorder/config"
	"lensorder/database"
	"lensorder/loader"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "설정 파일 경로")
	flag.Parse()

	config.SetPath(*configPath)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
		cfg = config.GetConfig()
	}

	// 금액과 수량은 JSON 숫자로 내보냅니다.
	decimal.MarshalJSONWithoutQuotes = true

	log.Println("Connecting to database...")
	dbConn, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	if err := loader.InitDatabase(dbConn, cfg.SeedDir); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	r := SetupRoutes(dbConn)

	log.Printf("Starting server on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}
