package config

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

type Config struct {
	// 서버
	ListenAddr string `json:"listenAddr"`
	DBDriver   string `json:"dbDriver"`
	DBDSN      string `json:"dbDsn"`
	SeedDir    string `json:"seedDir"`

	// 입력 화면
	APIBaseURL        string `json:"apiBaseUrl"`
	StoreLimit        int    `json:"storeLimit"`
	RequestTimeoutSec int    `json:"requestTimeoutSec"`
	SoundEnabled      bool   `json:"soundEnabled"`

	// 출력
	PrintEnabled  bool   `json:"printEnabled"`
	PrintSpoolDir string `json:"printSpoolDir"`
	PrintCommand  string `json:"printCommand"`
	BrowserBin    string `json:"browserBin"`
}

var (
	cfg  = withDefaults(Config{})
	mu   sync.RWMutex
	path = DefaultPath
)

const DefaultPath = "./lensorder_config.json"

// SetPath 는 설정 파일 경로를 바꿉니다. (-config 플래그)
func SetPath(p string) {
	mu.Lock()
	defer mu.Unlock()
	if p == "" {
		p = DefaultPath
	}
	path = p
}

func withDefaults(c Config) Config {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.DBDriver == "" {
		c.DBDriver = "sqlite3"
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = "http://localhost:8080"
	}
	if c.StoreLimit == 0 {
		c.StoreLimit = 1000
	}
	if c.RequestTimeoutSec == 0 {
		c.RequestTimeoutSec = 10
	}
	if c.PrintSpoolDir == "" {
		c.PrintSpoolDir = "./print_spool"
	}
	return c
}

// RequestTimeout 은 API 호출 제한 시간입니다.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = withDefaults(Config{})
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	cfg = withDefaults(tempCfg)
	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	newCfg = withDefaults(newCfg)
	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
