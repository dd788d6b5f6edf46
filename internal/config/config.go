package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centralizes the service configuration.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	TelegramBotToken      string `env:"TELEGRAM_BOT_TOKEN,required"`
	TelegramBaseURL       string `env:"TELEGRAM_BASE_URL" envDefault:"https://api.telegram.org"`
	TelegramWebhookSecret string `env:"TELEGRAM_WEBHOOK_SECRET"`

	LLMAPIKey  string `env:"LLM_API_KEY,required"`
	LLMBaseURL string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel   string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	RAGBaseURL   string `env:"RAG_BASE_URL" envDefault:"https://api.cloudflare.com/client/v4"`
	RAGAccountID string `env:"RAG_ACCOUNT_ID"`
	RAGAPIToken  string `env:"RAG_API_TOKEN"`
	RAGName      string `env:"RAG_NAME"`

	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"zh-TW"`
	Timezone        string `env:"TIMEZONE" envDefault:"Asia/Taipei"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	PricingCacheTTLSeconds int `env:"PRICING_CACHE_TTL_SECONDS" envDefault:"300"`
	UpdateDedupTTLMinutes  int `env:"UPDATE_DEDUP_TTL_MINUTES" envDefault:"1440"`

	AdminJWTSecret     string `env:"ADMIN_JWT_SECRET"`
	AdminJWTTTLMinutes int    `env:"ADMIN_JWT_TTL_MINUTES" envDefault:"60"`

	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"true"`
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) PricingCacheTTL() time.Duration {
	return time.Duration(c.PricingCacheTTLSeconds) * time.Second
}

func (c *Config) UpdateDedupTTL() time.Duration {
	return time.Duration(c.UpdateDedupTTLMinutes) * time.Minute
}

func (c *Config) AdminJWTTTL() time.Duration {
	return time.Duration(c.AdminJWTTTLMinutes) * time.Minute
}

// AdminTokenConfig is the subset needed to mint admin tokens offline.
type AdminTokenConfig struct {
	AdminJWTSecret     string `env:"ADMIN_JWT_SECRET,required"`
	AdminJWTTTLMinutes int    `env:"ADMIN_JWT_TTL_MINUTES" envDefault:"60"`
}

func LoadAdminTokenConfig() (*AdminTokenConfig, error) {
	var cfg AdminTokenConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
