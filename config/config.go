package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"hotel/constants"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

type RedisConfig struct {
	Addr     string
	User     string
	Password string
	DB       int
}

// Config là toàn bộ cấu hình của service, đọc từ biến môi trường
type Config struct {
	Env            string
	Port           string
	DBDriver       string
	DB             DBConfig
	Redis          RedisConfig
	CacheTTL       time.Duration
	SecretKey      string
	AccessTokenTTL time.Duration
	LogLevel       string
	LogFile        string
	SeedData       bool
	AdminEmail     string
	AdminPassword  string
	CORSOrigins    []string
	AuditSchedule  string
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

// Load nạp .env (nếu có) rồi đọc cấu hình từ môi trường
func Load() (*Config, error) {
	LoadEnv()
	return FromEnv(os.LookupEnv)
}

// FromEnv đọc cấu hình qua lookup, dùng giá trị mặc định khi biến không được đặt
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	r := envReader{lookup: lookup}

	cfg := &Config{
		Env:           r.str("ENV", "dev"),
		Port:          r.str("PORT", "8080"),
		DBDriver:      strings.ToLower(r.str("DB_DRIVER", DriverPostgres)),
		SecretKey:     r.str("SECRET_KEY_ACCESS_TOKEN", ""),
		LogLevel:      r.str("LOG_LEVEL", "info"),
		LogFile:       r.str("LOG_FILE", ""),
		AdminEmail:    r.str("ADMIN_EMAIL", "admin@hotel.com"),
		AdminPassword: r.str("ADMIN_PASSWORD", "password"),
		AuditSchedule: r.str("AUDIT_SCHEDULE", "@every 1h"),
		Redis: RedisConfig{
			Addr:     r.str("REDIS_ADDR", ""),
			User:     r.str("REDIS_USER", ""),
			Password: r.str("REDIS_PASSWORD", ""),
			DB:       r.integer("REDIS_DB", 0),
		},
		CacheTTL:       r.duration("CACHE_TTL", constants.DefaultCacheTTL),
		AccessTokenTTL: r.duration("ACCESS_TOKEN_TTL", 24*time.Hour),
		SeedData:       r.boolean("SEED_DATA", true),
		CORSOrigins:    r.list("CORS_ORIGINS"),
	}

	// DB_* có thể đặt riêng theo môi trường, ví dụ DEV_DB_HOST, PROD_DB_HOST
	prefix := strings.ToUpper(cfg.Env) + "_"
	cfg.DB = DBConfig{
		Host:     r.scoped(prefix, "DB_HOST", "localhost"),
		Port:     r.scoped(prefix, "DB_PORT", "5432"),
		User:     r.scoped(prefix, "DB_USER", "postgres"),
		Password: r.scoped(prefix, "DB_PASSWORD", ""),
		Name:     r.scoped(prefix, "DB_NAME", "hotel"),
		SSLMode:  r.scoped(prefix, "DB_SSLMODE", "disable"),
		TimeZone: r.scoped(prefix, "DB_TIMEZONE", "Asia/Ho_Chi_Minh"),
	}

	if r.err != nil {
		return nil, r.err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY_ACCESS_TOKEN is required")
	}
	switch c.DBDriver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	return nil
}

type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *envReader) str(key, def string) string {
	if v, ok := r.lookup(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *envReader) scoped(prefix, key, def string) string {
	if v, ok := r.lookup(prefix + key); ok && v != "" {
		return strings.TrimSpace(v)
	}
	return r.str(key, def)
}

func (r *envReader) integer(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return n
}

func (r *envReader) boolean(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return b
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return d
}

// list tách danh sách phân cách bởi dấu phẩy, rỗng nghĩa là không giới hạn
func (r *envReader) list(key string) []string {
	var out []string
	for _, part := range strings.Split(r.str(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (r *envReader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}
