package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	DB         DBConfig         `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cron       CronConfig       `mapstructure:"cron"`
	Abuse      AbuseConfig      `mapstructure:"abuse"`
	Validation ValidationConfig `mapstructure:"validation"`
	StatsCache StatsCacheConfig `mapstructure:"stats_cache"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

// RedisConfig is optional: an empty Addr leaves the service on in-process
// rate-limit state and disables the stats cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CronConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	AbusePrune        string `mapstructure:"abuse_prune"`
	StatsCacheRefresh string `mapstructure:"stats_cache_refresh"`
}

type AbuseConfig struct {
	Window              time.Duration `mapstructure:"window"`
	MaxRequests         int           `mapstructure:"max_requests"`
	MaxWriteRequests    int           `mapstructure:"max_write_requests"`
	SuspiciousThreshold int           `mapstructure:"suspicious_threshold"`
	BlockDuration       time.Duration `mapstructure:"block_duration"`
	MinFormFillTime     time.Duration `mapstructure:"min_form_fill_time"`
	MaxBodyBytes        int64         `mapstructure:"max_body_bytes"`
	UserAgentCheck      bool          `mapstructure:"user_agent_check"`
	StateTTL            time.Duration `mapstructure:"state_ttl"`
}

type ValidationConfig struct {
	MaxNameLen  int `mapstructure:"max_name_len"`
	MaxTextLen  int `mapstructure:"max_text_len"`
	MaxURLLen   int `mapstructure:"max_url_len"`
	MaxNotesLen int `mapstructure:"max_notes_len"`
}

type StatsCacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.abuse_prune", "@every 5m")
	v.SetDefault("cron.stats_cache_refresh", "@every 1m")
	v.SetDefault("abuse.window", "1m")
	v.SetDefault("abuse.max_requests", 60)
	v.SetDefault("abuse.max_write_requests", 10)
	v.SetDefault("abuse.suspicious_threshold", 200)
	v.SetDefault("abuse.block_duration", "15m")
	v.SetDefault("abuse.min_form_fill_time", "3s")
	v.SetDefault("abuse.max_body_bytes", 65536)
	v.SetDefault("abuse.user_agent_check", true)
	v.SetDefault("abuse.state_ttl", "30m")
	v.SetDefault("validation.max_name_len", 100)
	v.SetDefault("validation.max_text_len", 2000)
	v.SetDefault("validation.max_url_len", 500)
	v.SetDefault("validation.max_notes_len", 1000)
	v.SetDefault("stats_cache.enabled", true)
	v.SetDefault("stats_cache.ttl", "1m")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
