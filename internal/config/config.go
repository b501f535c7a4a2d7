package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DevSecret is the fallback signing secret for local development. Validate
// refuses to start a production server with it.
const DevSecret = "super-secret-change-me"

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Env             string   `mapstructure:"ENV"`
	DatabaseURL     string   `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins     []string `mapstructure:"CORS_ORIGINS"`
	JWTSecret       string   `mapstructure:"JWT_SECRET"`
	JWTAlgorithm    string   `mapstructure:"JWT_ALGORITHM"`
	TokenTTLMinutes int      `mapstructure:"TOKEN_TTL_MINUTES"`
	SeedOnBoot      bool     `mapstructure:"SEED_ON_BOOT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("JWT_SECRET", DevSecret)
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("TOKEN_TTL_MINUTES", 60)
	v.SetDefault("SEED_ON_BOOT", true)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("JWT_ALGORITHM")
	v.BindEnv("TOKEN_TTL_MINUTES")
	v.BindEnv("SEED_ON_BOOT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() && cfg.JWTSecret == DevSecret {
		log.Println("WARNING: Server is signing tokens with the built-in development secret.")
		log.Println("WARNING: Set JWT_SECRET before exposing this server to anyone.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TokenTTL returns the configured access-token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Validate checks that the configuration is safe to run. Tokens signed under
// one algorithm must stay verifiable across restarts, so the algorithm is
// pinned at startup; production additionally refuses the development secret.
func (c *Config) Validate() error {
	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("JWT_ALGORITHM must be HS256, HS384, or HS512, got %q", c.JWTAlgorithm)
	}

	if c.IsProduction() && c.JWTSecret == DevSecret {
		return fmt.Errorf("JWT_SECRET must be set in production; refusing to sign tokens with the development secret")
	}

	if c.TokenTTLMinutes < 0 {
		return fmt.Errorf("TOKEN_TTL_MINUTES must not be negative, got %d", c.TokenTTLMinutes)
	}

	return nil
}
