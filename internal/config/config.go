package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvProduction is the environment name that forbids serving without an
// upstream credential.
const EnvProduction = "production"

// Config holds all user-facing configuration for side-quest.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	LLM      LLMConfig      `toml:"llm"`
	Breaker  BreakerConfig  `toml:"breaker"`
	Fallback FallbackConfig `toml:"fallback"`
}

type ServerConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`
}

type LLMConfig struct {
	BaseURL           string  `toml:"base_url"`
	Model             string  `toml:"model"`
	Temperature       float64 `toml:"temperature"`
	TimeoutMS         int     `toml:"timeout_ms"`
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// APIKey is only ever read from the environment.
	APIKey string `toml:"-"`
}

type BreakerConfig struct {
	CooldownMinutes int `toml:"cooldown_minutes"`
}

type FallbackConfig struct {
	CatalogPath string `toml:"catalog_path"`
	RecentSize  int    `toml:"recent_size"`
	Rerolls     int    `toml:"rerolls"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{Host: "localhost", Port: 8080, Environment: "development"},
		LLM: LLMConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4.1-mini",
			Temperature: 0.8,
			TimeoutMS:   7000,
		},
		Breaker:  BreakerConfig{CooldownMinutes: 15},
		Fallback: FallbackConfig{RecentSize: 5, Rerolls: 3},
	}
}

// Load reads a TOML config file and then applies environment overrides. If
// the file does not exist, built-in defaults are used without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("SIDEQUEST_ENV"); v != "" {
		c.Server.Environment = v
	}
}

// Production reports whether the server runs as a production deployment.
func (c *Config) Production() bool {
	return c.Server.Environment == EnvProduction
}

// Timeout is the deadline for one quest's online generation.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.LLM.TimeoutMS) * time.Millisecond
}

// Cooldown is how long the breaker stays open after a quota error.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Breaker.CooldownMinutes) * time.Minute
}
