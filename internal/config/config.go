// engine/internal/config/config.go
package config

import (
	"os"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Host           string   `yaml:"host"`
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"app"`

	Store struct {
		Path              string `yaml:"path"`
		BusyTimeoutMS     int    `yaml:"busy_timeout_ms"`
		CheckpointMinutes int    `yaml:"checkpoint_minutes"`
	} `yaml:"store"`

	Auth struct {
		JWTSecret      string `yaml:"jwt_secret"`
		TokenTTLHours  int    `yaml:"token_ttl_hours"`
		KeyringAccount string `yaml:"keyring_account"`
	} `yaml:"auth"`

	Listing struct {
		DefaultPageSize int `yaml:"default_page_size"`
		MaxPageSize     int `yaml:"max_page_size"`
		ExcerptLength   int `yaml:"excerpt_length"`
	} `yaml:"listing"`

	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	Analytics struct {
		RecentLimit int `yaml:"recent_limit"`
	} `yaml:"analytics"`
}

func Default() Config {
	var cfg Config
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = 38471
	cfg.App.AllowedOrigins = []string{"http://localhost:5173"}

	cfg.Store.Path = "jobboard.db"
	cfg.Store.BusyTimeoutMS = 5000
	cfg.Store.CheckpointMinutes = 30

	cfg.Auth.TokenTTLHours = 24 * 7
	cfg.Auth.KeyringAccount = "jobboard:jwt"

	cfg.Listing.DefaultPageSize = 10
	cfg.Listing.MaxPageSize = 100
	cfg.Listing.ExcerptLength = 200

	cfg.RateLimit.RequestsPerSecond = 20
	cfg.RateLimit.Burst = 40

	cfg.Analytics.RecentLimit = 5
	return cfg
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} with its value; unset variables are left as written.
func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := os.LookupEnv(m[2 : len(m)-1]); ok {
			return v
		}
		return m
	})
}

// Load reads path over the defaults. A .env file in the working directory is
// loaded first so ${VAR} references can point at it.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal([]byte(expandEnv(string(b))), &cfg)
	applyEnv(&cfg)
	return cfg, err
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("JOBBOARD_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("JOBBOARD_DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
}
