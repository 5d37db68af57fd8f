package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Sync       SyncConfig       `yaml:"sync"`
	Security   SecurityConfig   `yaml:"security"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Reminder   ReminderConfig   `yaml:"reminder"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the local store connection configuration. The DSN is
// a SQLite file path unless it carries a postgres:// scheme.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// SyncConfig holds the remote spreadsheet-endpoint sync configuration. The
// endpoint URL itself lives in the store (it is user-configurable at
// runtime); DefaultEndpointURL only seeds it on first start.
type SyncConfig struct {
	DefaultEndpointURL string        `yaml:"default_endpoint_url"`
	SyncOnStart        bool          `yaml:"sync_on_start"`
	PushQueueSize      int           `yaml:"push_queue_size"`
	TimeoutSeconds     int           `yaml:"timeout_seconds"`
	Timeout            time.Duration `yaml:"-"` // Ignored by YAML parser
}

// SecurityConfig holds the dashboard credential check and the public-view
// disclosure PIN. Both are shared secrets; there are no per-user accounts.
type SecurityConfig struct {
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
	PublicPIN     string `yaml:"public_pin"`
}

// PushConfig holds the VAPID keys for maintenance-due web push reminders.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig sizes the reminder worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// ReminderConfig controls the daily due-date scan. The schedule is a cron
// expression evaluated against the local store only; the remote endpoint is
// never polled.
type ReminderConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// ApplyDefaults fills every unset field with its documented default.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "pm-dashboard.db"
	}

	if cfg.Sync.PushQueueSize <= 0 {
		cfg.Sync.PushQueueSize = 32
	}
	if cfg.Sync.TimeoutSeconds <= 0 {
		cfg.Sync.TimeoutSeconds = 30
	}
	cfg.Sync.Timeout = time.Duration(cfg.Sync.TimeoutSeconds) * time.Second

	if cfg.Security.AdminUsername == "" {
		cfg.Security.AdminUsername = "admin"
	}
	if cfg.Security.AdminPassword == "" {
		cfg.Security.AdminPassword = "tci@1234"
	}
	if cfg.Security.PublicPIN == "" {
		cfg.Security.PublicPIN = "1234"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if cfg.Reminder.Schedule == "" {
		cfg.Reminder.Schedule = "0 8 * * *"
	}
}
