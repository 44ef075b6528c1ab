package loader

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"lensorder/config"
	"lensorder/model"
)

// ReloadSeedHandler 는 설정된 시드 폴더의 CSV 를 다시 적재합니다.
func ReloadSeedHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seedDir := config.GetConfig().SeedDir
		log.Printf("HTTP request received: reloading seeds from %s", seedDir)
		if seedDir == "" {
			writeJSONError(w, "시드 폴더가 설정되지 않았습니다.", http.StatusBadRequest)
			return
		}

		if err := LoadSeeds(db, seedDir); err != nil {
			log.Printf("ERROR: failed to reload seeds: %v", err)
			writeJSONError(w, "시드 데이터를 불러오지 못했습니다.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "시드 데이터를 다시 불러왔습니다."})
	}
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: message})
}
