package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// InsecureJWTSecret is used when no secret is configured. Never deploy with it.
const InsecureJWTSecret = "change_this_in_prod"

// Config is the full application configuration.
type Config struct {
	Server   Server   `koanf:"server"`
	Auth     Auth     `koanf:"auth"`
	Database Database `koanf:"database"`
	Log      Log      `koanf:"log"`
	Storage  Storage  `koanf:"storage"`
	Jobs     Jobs     `koanf:"jobs"`
}

type Server struct {
	Port           int    `koanf:"port"`
	AllowedOrigins string `koanf:"allowed_origins"` // comma separated, "*" for any
	BodyLimitMB    int    `koanf:"body_limit_mb"`
}

type Auth struct {
	JWTSecret string `koanf:"jwt_secret"`
}

// IsInsecure reports whether the fallback secret is in use.
func (a Auth) IsInsecure() bool {
	return a.JWTSecret == InsecureJWTSecret
}

type Database struct {
	URL             string `koanf:"url"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"` // minutes
	ConnectTimeout  int    `koanf:"connect_timeout"`   // seconds spent retrying at startup
	SlowQueryMS     int    `koanf:"slow_query_ms"`
}

type Log struct {
	Level string `koanf:"level"` // debug, info, warn, error
}

type Storage struct {
	UploadDir       string `koanf:"upload_dir"`
	CloudflareID    string `koanf:"cloudflare_account_id"`
	AccessKeyID     string `koanf:"r2_access_key_id"`
	AccessKeySecret string `koanf:"r2_access_key_secret"`
	Bucket          string `koanf:"r2_bucket_name"`
	CDNBaseURL      string `koanf:"cdn_base_url"`
}

type Jobs struct {
	BountyExpiryInterval time.Duration `koanf:"bounty_expiry_interval"` // 0 disables
}

func defaults() Config {
	return Config{
		Server: Server{Port: 4000, AllowedOrigins: "*", BodyLimitMB: 8},
		Database: Database{
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30,
			ConnectTimeout:  30,
			SlowQueryMS:     200,
		},
		Log:     Log{Level: "info"},
		Storage: Storage{UploadDir: "uploads"},
	}
}

// Load reads .env, then the optional TOML file at path, then environment overrides.
// A missing JWT secret falls back to InsecureJWTSecret; callers should warn.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("error loading config %s: %w", path, err)
			}
		} else if err := k.Unmarshal("", &cfg); err != nil {
			return nil, fmt.Errorf("error unmarshaling config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = InsecureJWTSecret
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Server.Port)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET_KEY", "JWT_SECRET")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Server.AllowedOrigins, "ALLOWED_ORIGINS")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Storage.UploadDir, "UPLOAD_DIR")
	setString(&cfg.Storage.CloudflareID, "CLOUDFLARE_ACCOUNT_ID")
	setString(&cfg.Storage.AccessKeyID, "R2_ACCESS_KEY_ID")
	setString(&cfg.Storage.AccessKeySecret, "R2_ACCESS_KEY_SECRET")
	setString(&cfg.Storage.Bucket, "R2_BUCKET_NAME")
	setString(&cfg.Storage.CDNBaseURL, "CDN_BASE_URL")

	if v := os.Getenv("BOUNTY_EXPIRY_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid BOUNTY_EXPIRY_INTERVAL %q: %w", v, err)
		}
		cfg.Jobs.BountyExpiryInterval = d
	}
	return nil
}

// setString takes the first non-empty variable among names.
func setString(dst *string, names ...string) {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
			return
		}
	}
}

// Origins splits AllowedOrigins for the CORS middleware.
func (s Server) Origins() string {
	parts := strings.Split(s.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}
