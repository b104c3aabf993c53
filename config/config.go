package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	S3       S3Config
	CORS     CORSConfig
	Cart     CartConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type LogConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Storage backends for the cart snapshot.
const (
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageS3       = "s3"
	StorageMemory   = "memory"
	StorageNone     = "none"
)

type CartConfig struct {
	StorageBackend     string
	StorageKey         string
	ThresholdAmount    decimal.Decimal
	ThresholdPercent   decimal.Decimal
	Coupons            map[string]decimal.Decimal
	CheckpointSchedule string // cron spec for re-saving the cart, "off" disables
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", ""),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "grocery"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "ap-northeast-2"),
			Bucket:          getEnv("AWS_S3_BUCKET", "grocery-cart"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Prefix:          getEnv("AWS_S3_PREFIX", "snapshots/"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Cart: CartConfig{
			StorageBackend:     strings.ToLower(getEnv("CART_STORAGE_BACKEND", StorageRedis)),
			StorageKey:         getEnv("CART_STORAGE_KEY", "cart"),
			ThresholdAmount:    parseDecimal(getEnv("CART_DISCOUNT_THRESHOLD", "200"), decimal.NewFromInt(200)),
			ThresholdPercent:   parseDecimal(getEnv("CART_DISCOUNT_PERCENT", "10"), decimal.NewFromInt(10)),
			Coupons:            ParseCoupons(getEnv("CART_COUPONS", "SAVE10:10,SAVE20:20")),
			CheckpointSchedule: getEnv("CART_CHECKPOINT_SCHEDULE", "@every 5m"),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// ParseCoupons reads "CODE:percent" pairs separated by commas.
// Codes keep their case; malformed pairs are skipped.
func ParseCoupons(s string) map[string]decimal.Decimal {
	coupons := make(map[string]decimal.Decimal)
	for _, pair := range parseSlice(s) {
		code, percent, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || code == "" {
			log.Printf("Invalid coupon entry %q, skipping", pair)
			continue
		}
		value, err := decimal.NewFromString(strings.TrimSpace(percent))
		if err != nil || value.IsNegative() {
			log.Printf("Invalid coupon percent %q for %s, skipping", percent, code)
			continue
		}
		coupons[code] = value
	}
	return coupons
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseDecimal(s string, fallback decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.Printf("Invalid decimal %s, using default %s", s, fallback)
		return fallback
	}
	return d
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
