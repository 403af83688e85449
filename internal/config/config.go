// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// 開発時のみ許容されるフォールバック値。release モードでは Validate が拒否します。
const (
	DefaultJWTSecret      = "your-secret-key"
	DefaultPasswordPepper = "default-pepper"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// データストア設定
	DatabaseURL     string // Postgres接続DSN
	RedisURL        string // Todoリストキャッシュ用Redis接続URL
	CacheTTLSeconds int    // キャッシュTTL（秒）

	// 認証設定
	JWTSecret      string // トークン署名用の秘密鍵
	PasswordPepper string // パスワードに連結する固定シークレット
	BcryptCost     int    // bcryptのコストファクター
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env.local ファイルを読み込む（存在しない場合はスキップ）
	loadEnvFile()

	config := &Config{
		// サーバー設定
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// CORS設定
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		// データストア設定
		DatabaseURL:     getEnv("DATABASE_URL", "postgres://localhost:5432/todo?sslmode=disable"),
		RedisURL:        getEnv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		CacheTTLSeconds: getEnvAsInt("CACHE_TTL_SECONDS", 60),

		// 認証設定
		JWTSecret:      getEnv("JWT_SECRET", DefaultJWTSecret),
		PasswordPepper: getEnv("PASSWORD_PEPPER", DefaultPasswordPepper),
		BcryptCost:     getEnvAsInt("BCRYPT_COST", 12),
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
// ローカル開発ではフォールバック値を許容しますが、
// 本番環境では既知のデフォルトシークレットのまま起動させません。
func (c *Config) Validate() error {
	if c.GinMode == "release" {
		if c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret {
			return fmt.Errorf("JWT_SECRET is required in release mode")
		}
		if c.PasswordPepper == "" || c.PasswordPepper == DefaultPasswordPepper {
			return fmt.Errorf("PASSWORD_PEPPER is required in release mode")
		}
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required in release mode")
		}
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required in release mode")
		}
	}

	// ハッシュ1回あたりのレイテンシを予測可能に保つため、コストは bcrypt の範囲内に収める
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}

	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt は環境変数を整数として取得します。
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
