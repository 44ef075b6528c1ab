package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"

	"lensorder/config"
	"lensorder/model"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: message})
}

// GetConfigHandler 는 현재 설정을 반환합니다.
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(config.GetConfig())
	}
}

// SaveConfigHandler 는 설정을 저장합니다. DB 설정은 재시작 후 반영됩니다.
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			writeJSONError(w, "요청 형식이 올바르지 않습니다.", http.StatusBadRequest)
			return
		}

		if err := validateFolderPath(newCfg.SeedDir); err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if newCfg.APIBaseURL != "" {
			if u, err := url.Parse(newCfg.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
				writeJSONError(w, "API 주소가 올바르지 않습니다: "+newCfg.APIBaseURL, http.StatusBadRequest)
				return
			}
		}
		if newCfg.StoreLimit < 0 || newCfg.RequestTimeoutSec < 0 {
			writeJSONError(w, "설정 값은 0 이상이어야 합니다.", http.StatusBadRequest)
			return
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("ERROR: failed to save config: %v", err)
			writeJSONError(w, "설정 저장에 실패했습니다.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "설정을 저장했습니다."})
	}
}

func validateFolderPath(path string) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("지정한 폴더를 찾을 수 없습니다: " + path)
		}
		log.Printf("WARN: failed to check folder path: %v", err)
		return errors.New("폴더 경로를 확인하지 못했습니다.")
	}
	if !info.IsDir() {
		return errors.New("지정한 경로가 폴더가 아닙니다: " + path)
	}
	return nil
}
