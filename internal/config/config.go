package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string // サーバーポート（8080）
	GoEnv    string // development/production
	LogLevel string
	LogDir   string // 空ならファイル出力しない

	DatabaseURL      string // あれば最優先
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	JWTSecret        string        // access token署名シークレット
	JWTExpiresIn     time.Duration // access tokenの有効期限
	JWTRefreshSecret string        // refresh token署名シークレット
	JWTRefreshTTL    time.Duration // refresh tokenの有効期限

	BcryptRounds int

	RefreshCleanupInterval time.Duration
	AuthRateLimitPerMinute int
	MetricsEnabled         bool
}

// IsProductionは本番モードかどうか
func (c Config) IsProduction() bool {
	return c.GoEnv == EnvProduction
}

// DSNはgorm(postgres)用の接続文字列
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// Loadは.env（あれば）と環境変数から設定を読む
func Load() (Config, error) {
	// .envが無いのはエラーにしない
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnvは環境変数だけから設定を組み立てる
func FromEnv() (Config, error) {
	cfg := Config{
		Port:     getenv("PORT", "8080"),
		GoEnv:    getenv("GO_ENV", EnvDevelopment),
		LogLevel: getenv("LOG_LEVEL", "info"),
		LogDir:   os.Getenv("LOG_DIR"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "shop"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
	}

	var err error
	if cfg.PostgresPort, err = atoiDefault("POSTGRES_PORT", 5432); err != nil {
		return Config{}, err
	}
	if cfg.JWTExpiresIn, err = durationDefault("JWT_EXPIRES_IN", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.JWTRefreshTTL, err = durationDefault("JWT_REFRESH_EXPIRES_IN", 30*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.BcryptRounds, err = atoiDefault("BCRYPT_ROUNDS", 12); err != nil {
		return Config{}, err
	}
	if cfg.RefreshCleanupInterval, err = durationDefault("REFRESH_CLEANUP_INTERVAL", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.AuthRateLimitPerMinute, err = atoiDefault("RATE_LIMIT_AUTH_PER_MINUTE", 10); err != nil {
		return Config{}, err
	}
	if cfg.MetricsEnabled, err = boolDefault("METRICS_ENABLED", true); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validateは必須チェックと範囲チェック
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTRefreshSecret == "" {
		return fmt.Errorf("JWT_REFRESH_SECRET is required")
	}
	// access/refreshは別の鍵にする
	if c.JWTSecret == c.JWTRefreshSecret {
		return fmt.Errorf("JWT_REFRESH_SECRET must differ from JWT_SECRET")
	}
	if c.JWTExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive")
	}
	if c.JWTRefreshTTL <= 0 {
		return fmt.Errorf("JWT_REFRESH_EXPIRES_IN must be positive")
	}
	if c.BcryptRounds < bcrypt.MinCost || c.BcryptRounds > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_ROUNDS must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.RefreshCleanupInterval <= 0 {
		return fmt.Errorf("REFRESH_CLEANUP_INTERVAL must be positive")
	}
	if c.AuthRateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_AUTH_PER_MINUTE must be positive")
	}
	switch c.GoEnv {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("GO_ENV must be %q or %q", EnvDevelopment, EnvProduction)
	}
	return nil
}

// ParseDurationはGoのdurationに加えて"30d"のような日数指定も受け付ける
func ParseDuration(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if days, ok := strings.CutSuffix(v, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q: %w", v, err)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(v)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func boolDefault(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be bool: %w", key, err)
	}
	return b, nil
}
