package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"debt-planner/payoff"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Environment string `yaml:"environment"` // "development", "production" or "test"
	LogLevel    string `yaml:"log_level"`

	HTTP struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"http"`

	// Redis is optional; without an address results are cached in memory.
	Redis struct {
		Addr     string        `yaml:"addr"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"redis"`

	RateLimit struct {
		Capacity int           `yaml:"capacity"`
		Refill   time.Duration `yaml:"refill"`
	} `yaml:"rate_limit"`

	OpenAI struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`

	Planner struct {
		CurrencySymbol   string          `yaml:"currency_symbol"`
		MaterialInterest decimal.Decimal `yaml:"material_interest"`
		MaterialMonths   int             `yaml:"material_months"`
		MaxMonths        int             `yaml:"max_months"`
	} `yaml:"planner"`
}

func defaults() *Config {
	cfg := &Config{
		Environment: "development",
		LogLevel:    "info",
	}
	cfg.HTTP.Addr = ":8080"
	cfg.HTTP.ReadTimeout = 15 * time.Second
	cfg.HTTP.WriteTimeout = 15 * time.Second
	cfg.HTTP.IdleTimeout = 60 * time.Second
	cfg.Redis.CacheTTL = 24 * time.Hour
	cfg.RateLimit.Capacity = 5
	cfg.RateLimit.Refill = time.Minute
	cfg.OpenAI.Model = "gpt-4o-mini"
	cfg.Planner.CurrencySymbol = payoff.DefaultCurrencySymbol
	cfg.Planner.MaterialInterest = payoff.DefaultMaterialInterest
	cfg.Planner.MaterialMonths = payoff.DefaultMaterialMonths
	cfg.Planner.MaxMonths = payoff.MaxMonths
	return cfg
}

// Load reads config from an optional YAML file and an optional .env file,
// then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// Real environment variables win over .env values.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("ENVIRONMENT", &cfg.Environment)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("HTTP_ADDR", &cfg.HTTP.Addr)
	setString("REDIS_ADDR", &cfg.Redis.Addr)
	setString("REDIS_PASSWORD", &cfg.Redis.Password)
	setString("OPENAI_API_KEY", &cfg.OpenAI.APIKey)
	setString("OPENAI_MODEL", &cfg.OpenAI.Model)
	setString("CURRENCY_SYMBOL", &cfg.Planner.CurrencySymbol)

	ints := map[string]*int{
		"REDIS_DB":            &cfg.Redis.DB,
		"RATE_LIMIT_CAPACITY": &cfg.RateLimit.Capacity,
		"MATERIAL_MONTHS":     &cfg.Planner.MaterialMonths,
		"MAX_MONTHS":          &cfg.Planner.MaxMonths,
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"CACHE_TTL":         &cfg.Redis.CacheTTL,
		"RATE_LIMIT_REFILL": &cfg.RateLimit.Refill,
	}
	for key, dst := range durations {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}

	if v := os.Getenv("MATERIAL_INTEREST"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("MATERIAL_INTEREST: %w", err)
		}
		cfg.Planner.MaterialInterest = d
	}
	return nil
}

func (c *Config) validate() error {
	if c.RateLimit.Capacity <= 0 {
		return fmt.Errorf("rate_limit.capacity must be positive")
	}
	if c.RateLimit.Refill <= 0 {
		return fmt.Errorf("rate_limit.refill must be positive")
	}
	if c.Planner.MaxMonths <= 0 || c.Planner.MaxMonths > payoff.MaxMonths {
		return fmt.Errorf("planner.max_months must be between 1 and %d", payoff.MaxMonths)
	}
	if c.Planner.MaterialInterest.IsNegative() {
		return fmt.Errorf("planner.material_interest must not be negative")
	}
	return nil
}

// PayoffOptions translates planner settings into simulator options.
func (c *Config) PayoffOptions() payoff.Options {
	return payoff.Options{
		MaxMonths:        c.Planner.MaxMonths,
		MaterialInterest: c.Planner.MaterialInterest,
		MaterialMonths:   c.Planner.MaterialMonths,
		CurrencySymbol:   c.Planner.CurrencySymbol,
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
