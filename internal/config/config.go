package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	AppPort         string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	StripeSecretKey string
	RedisAddr       string // empty disables the product cache
	RedisPass       string
	RedisDB         int
	CORSOrigins     []string
	IsProd          bool
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function and reports every missing
// required key at once.
func FromEnv(getenv func(string) string) (*Config, error) {
	mongoURI := getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = getenv("MONGO_URL")
	}

	cfg := &Config{
		AppPort:         getenv("APP_PORT"),
		MongoURI:        mongoURI,
		MongoDB:         getenv("MONGO_DB"),
		JWTSecret:       getenv("JWT_SECRET"),
		StripeSecretKey: getenv("STRIPE_SECRET_KEY"),
		RedisAddr:       getenv("REDIS_ADDR"),
		RedisPass:       getenv("REDIS_PASS"),
		IsProd:          getenv("IS_PROD") == "true",
		CORSOrigins:     splitList(getenv("CORS_ORIGINS")),
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8000"
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	if v := getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: REDIS_DB must be an integer: %w", err)
		}
		cfg.RedisDB = n
	}

	var missing []string
	required := []struct{ key, val string }{
		{"MONGO_URI", cfg.MongoURI},
		{"MONGO_DB", cfg.MongoDB},
		{"JWT_SECRET", cfg.JWTSecret},
		{"STRIPE_SECRET_KEY", cfg.StripeSecretKey},
	}
	for _, r := range required {
		if r.val == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
