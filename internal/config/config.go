package config

import (
	"fmt"
	"os"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	AdminPassword     string // 管理画面パスワード（平文、開発用）
	AdminPasswordHash string // bcryptハッシュ。設定されていれば優先
	JWTSecret         string // admin_tokenクッキーの署名シークレット
	SessionTTL        time.Duration

	WataAPIURL string // 決済APIベースURL
	WataAPIKey string // 未設定ならモック決済
	WataShopID string

	PublicBaseURL string // return_url/notification_urlの組み立てに使う
	RedisAddr     string // 未設定ならメニューキャッシュ無効

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SessionTTL:        30 * 24 * time.Hour,

		WataAPIURL: getenv("WATA_API_URL", "https://api.watapay.io/v1"),
		WataAPIKey: os.Getenv("WATA_API_KEY"),
		WataShopID: os.Getenv("WATA_SHOP_ID"),

		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),

		GoEnv: getenv("GO_ENV", "dev"),
	}

	//必須チェック
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
