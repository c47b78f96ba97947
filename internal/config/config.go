package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	AllowedOrigins []string
	DatabaseURL    string
	DBMaxOpenConns int
	RedisURL       string
	NATSURL        string
	EventSubject   string
	JWTSecret      string

	AIProvider    string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	AIModel       string
	AIMaxTokens   int
	AITemperature float32
	AITimeout     time.Duration

	PredictionCacheTTL   time.Duration
	PredictionRateLimit  int
	PredictionRateWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// PredictionCreatedSubject is the NATS subject for stored predictions.
func (c Config) PredictionCreatedSubject() string {
	if c.EventSubject == "" {
		return ""
	}
	return c.EventSubject + ".predictions.created"
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CAREERPREP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Career Prep API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cors.origins", "*")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("events.subject", "careerprep")
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.max_tokens", 800)
	v.SetDefault("ai.temperature", 0.3)
	v.SetDefault("ai.timeout", "30s")
	v.SetDefault("prediction.cache_ttl", "10m")
	v.SetDefault("prediction.rate_limit", 5)
	v.SetDefault("prediction.rate_window", "1m")

	aiTimeout, err := parseDuration(v, "ai.timeout")
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := parseDuration(v, "prediction.cache_ttl")
	if err != nil {
		return Config{}, err
	}
	rateWindow, err := parseDuration(v, "prediction.rate_window")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:              v.GetString("app.name"),
		AppEnv:               v.GetString("app.env"),
		AppPort:              v.GetString("app.port"),
		AllowedOrigins:       splitList(v.GetString("cors.origins")),
		DatabaseURL:          v.GetString("database.url"),
		DBMaxOpenConns:       v.GetInt("database.max_open_conns"),
		RedisURL:             v.GetString("redis.url"),
		NATSURL:              v.GetString("nats.url"),
		EventSubject:         strings.Trim(v.GetString("events.subject"), "."),
		JWTSecret:            v.GetString("jwt.secret"),
		AIProvider:           strings.ToLower(strings.TrimSpace(v.GetString("ai.provider"))),
		OpenAIAPIKey:         v.GetString("openai.api_key"),
		OpenAIBaseURL:        v.GetString("openai.base_url"),
		AIModel:              v.GetString("ai.model"),
		AIMaxTokens:          v.GetInt("ai.max_tokens"),
		AITemperature:        float32(v.GetFloat64("ai.temperature")),
		AITimeout:            aiTimeout,
		PredictionCacheTTL:   cacheTTL,
		PredictionRateLimit:  v.GetInt("prediction.rate_limit"),
		PredictionRateWindow: rateWindow,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}
	if cfg.AIProvider != "openai" {
		return Config{}, fmt.Errorf("unsupported ai provider %q", cfg.AIProvider)
	}
	if cfg.AIMaxTokens <= 0 {
		cfg.AIMaxTokens = 800
	}
	if cfg.PredictionRateLimit <= 0 {
		cfg.PredictionRateLimit = 5
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
