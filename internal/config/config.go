package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"SoilShear/internal/calc/mohr"
	"SoilShear/internal/calc/predict"
)

type Config struct {
	Server ServerConfig
	Limit  LimitConfig
	Mohr   MohrConfig
	Render RenderConfig
	Models map[string]predict.LinearModel
}

type ServerConfig struct {
	Addr            string
	CertFile        string        `mapstructure:"cert_file"`
	KeyFile         string        `mapstructure:"key_file"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// TLS reports whether both certificate and key are configured.
func (s ServerConfig) TLS() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

// LimitConfig is the per-IP token bucket.
type LimitConfig struct {
	Rate  float64
	Burst int
}

type MohrConfig struct {
	Samples int
	Sigma1  float64
	Sigma3  float64
}

type RenderConfig struct {
	FontPath string `mapstructure:"font_path"`
	Title    string
}

// Load reads .env (if present), then configuration file and environment.
// Env var overrides use prefix SOILSHEAR_, e.g. SOILSHEAR_SERVER_ADDR.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env: %v", err)
	}

	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cert_file", "")
	v.SetDefault("server.key_file", "")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("limit.rate", 5.0)
	v.SetDefault("limit.burst", 10)
	v.SetDefault("mohr.samples", mohr.DefaultSamples)
	v.SetDefault("mohr.sigma1", mohr.DefaultSigma1)
	v.SetDefault("mohr.sigma3", mohr.DefaultSigma3)
	v.SetDefault("render.font_path", "")
	v.SetDefault("render.title", "Demi-cercle de Mohr et enveloppe de Coulomb")

	if cfgPath := os.Getenv("SOILSHEAR_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	v.SetEnvPrefix("SOILSHEAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Mohr.Samples < 2 {
		return fmt.Errorf("mohr.samples must be at least 2, got %d", c.Mohr.Samples)
	}
	if c.Limit.Rate <= 0 || c.Limit.Burst <= 0 {
		return fmt.Errorf("limit.rate and limit.burst must be positive")
	}
	if (c.Server.CertFile == "") != (c.Server.KeyFile == "") {
		return fmt.Errorf("server.cert_file and server.key_file must be set together")
	}
	return nil
}

// Table builds the model table from the models.* section.
func (c Config) Table() (predict.Table, error) {
	return predict.LinearTable(c.Models)
}

func (c Config) Stresses() mohr.Stresses {
	return mohr.Stresses{Sigma1: c.Mohr.Sigma1, Sigma3: c.Mohr.Sigma3}
}
