package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Google API
	// 本番ではデフォルトのGoogleエンドポイントを使用する。
	// テスト・ステージング用にオーバーライド可能。
	GoogleUserInfoURL string
	GoogleTasksURL    string
	GoogleTimeout     time.Duration

	// Rate Limit
	RateLimitGeneral int

	// Tags
	TagsDefaultLimit int

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

const (
	defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
	defaultGoogleTasksURL    = "https://www.googleapis.com/tasks/v1/lists/@default/tasks"
)

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.GoogleUserInfoURL = getEnvString("GOOGLE_USERINFO_URL", defaultGoogleUserInfoURL)
	cfg.GoogleTasksURL = getEnvString("GOOGLE_TASKS_URL", defaultGoogleTasksURL)
	cfg.GoogleTimeout = getEnvDuration("GOOGLE_TIMEOUT", 10*time.Second)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.TagsDefaultLimit = getEnvInt("TAGS_DEFAULT_LIMIT", 100)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
