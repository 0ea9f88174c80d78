package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Redis  RedisConfig
	Server ServerConfig
	Game   GameConfig
	LLM    LLMConfig
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
	OpTimeout   time.Duration
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
	TrustedProxies []string
	BurstPerMinute int
}

type GameConfig struct {
	SecretPhraseHash   string
	AttemptTTL         time.Duration
	RateLimitMax       int64
	RateLimitWindow    time.Duration
	LeaderboardSize    int
	LeaderboardRefresh time.Duration
	BountyAmount       string
	BountyCurrency     string
}

type LLMConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	secretHash := getEnv("SECRET_PHRASE_HASH", "")
	if secretHash == "" {
		return nil, fmt.Errorf("SECRET_PHRASE_HASH is required")
	}

	env := getEnv("ENV", "development")

	cfg := &Config{
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", "localhost:6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
			PoolSize:    getEnvAsInt("REDIS_POOL_SIZE", 25),
			DialTimeout: getEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			OpTimeout:   getEnvAsDuration("REDIS_OP_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: parseAllowedOrigins(env),
			TrustedProxies: parseCSV(getEnv("TRUSTED_PROXIES", "")),
			BurstPerMinute: getEnvAsInt("BURST_REQUESTS_PER_MINUTE", 120),
		},
		Game: GameConfig{
			SecretPhraseHash:   strings.ToLower(secretHash),
			AttemptTTL:         getEnvAsDuration("ATTEMPT_TTL", 24*time.Hour),
			RateLimitMax:       int64(getEnvAsInt("RATE_LIMIT_MAX", 10)),
			RateLimitWindow:    getEnvAsDuration("RATE_LIMIT_WINDOW", 60*time.Second),
			LeaderboardSize:    getEnvAsInt("LEADERBOARD_SIZE", 10),
			LeaderboardRefresh: getEnvAsDuration("LEADERBOARD_REFRESH", 30*time.Second),
			BountyAmount:       getEnv("BOUNTY_AMOUNT", "10000"),
			BountyCurrency:     getEnv("BOUNTY_CURRENCY", "USDC"),
		},
		LLM: LLMConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", 10*time.Second),
		},
	}

	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	if err := validateSecretHash(cfg.Game.SecretPhraseHash); err != nil {
		return nil, err
	}

	if cfg.Game.RateLimitMax < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be at least 1")
	}

	return cfg, nil
}

// validateSecretHash ensures the configured digest is a full SHA-256 hex
// string. A truncated or non-hex value would make the phrase unwinnable.
func validateSecretHash(h string) error {
	if len(h) != 64 {
		return fmt.Errorf("SECRET_PHRASE_HASH must be 64 hex characters (got %d)", len(h))
	}
	if _, err := hex.DecodeString(h); err != nil {
		return fmt.Errorf("SECRET_PHRASE_HASH is not valid hex: %w", err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func parseAllowedOrigins(env string) []string {
	if env == "production" {
		originsStr := getEnv("ALLOWED_ORIGINS", "")
		if originsStr == "" {
			return []string{} // Default to no origins in production
		}
		return parseCSV(originsStr)
	}

	// Development: allow localhost variants
	return []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:5173", // Vite default
		"http://127.0.0.1:3000",
		"http://127.0.0.1:8080",
		"http://127.0.0.1:5173",
	}
}
