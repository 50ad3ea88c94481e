package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultSessionTTLMinutes   = 60
	defaultAuditRetentionDays  = 90
	defaultRegisterPerMin      = 5
	defaultLoginPerMin         = 10
	defaultAchievementsPerMin  = 20
	defaultNutritionCacheBytes = 10 * 1024 * 1024
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	BasePath    string `toml:"base_path"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost      string `toml:"postgres_host"`
	PostgresPort      string `toml:"postgres_port"`
	PostgresDBName    string `toml:"postgres_db_name"`
	PostgresUser      string `toml:"postgres_user"`
	PostgresBootstrap bool   `toml:"postgres_bootstrap_schema"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// sessions and rate limits
	SessionTTLMinutes           int `toml:"session_ttl_minutes"`
	RegisterRateLimitPerMin     int `toml:"register_rate_limit_per_min"`
	LoginRateLimitPerMin        int `toml:"login_rate_limit_per_min"`
	AchievementsRateLimitPerMin int `toml:"achievements_rate_limit_per_min"`
	// audit
	AuditRetentionDays   int    `toml:"audit_retention_days"`
	AuditBackupSocketDir string `toml:"audit_backup_socket_dir"`
	// status probe user
	StatusProbeUsername string `toml:"status_probe_username"`
	// nutrition
	NutritionApiBaseURL    string `toml:"nutrition_api_base_url"`
	NutritionCacheSizeByte int    `toml:"nutrition_cache_size_bytes"`
	// reminders
	RemindersEnabled bool `toml:"reminders_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env %s missing", env)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return t.Get(env)
}

// Parse is Load for an in-memory TOML document.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return t.Get(env)
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 3000
	}
	if c.SessionTTLMinutes <= 0 {
		c.SessionTTLMinutes = defaultSessionTTLMinutes
	}
	if c.RegisterRateLimitPerMin <= 0 {
		c.RegisterRateLimitPerMin = defaultRegisterPerMin
	}
	if c.LoginRateLimitPerMin <= 0 {
		c.LoginRateLimitPerMin = defaultLoginPerMin
	}
	if c.AchievementsRateLimitPerMin <= 0 {
		c.AchievementsRateLimitPerMin = defaultAchievementsPerMin
	}
	// 0 explicitly disables audit retention, only negatives fall back
	if c.AuditRetentionDays < 0 {
		c.AuditRetentionDays = defaultAuditRetentionDays
	}
	if c.AuditBackupSocketDir == "" {
		c.AuditBackupSocketDir = os.TempDir()
	}
	if c.StatusProbeUsername == "" {
		c.StatusProbeUsername = "gold"
	}
	if c.NutritionApiBaseURL == "" {
		c.NutritionApiBaseURL = "https://api.calorieninjas.com"
	}
	if c.NutritionCacheSizeByte <= 0 {
		c.NutritionCacheSizeByte = defaultNutritionCacheBytes
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
}
