package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Log         struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Alerts struct {
		DropThreshold     float64 `yaml:"drop_threshold"`      // pct cutoff, default -5
		StreakMin         int     `yaml:"streak_min"`          // default 5
		DaysBack          int     `yaml:"days_back"`           // business days, default 7
		SectorPressureMin int     `yaml:"sector_pressure_min"` // default 3
		RepeatMin         int     `yaml:"repeat_min"`          // default 2
	} `yaml:"alerts"`
	Universe struct {
		ListURLs []string      `yaml:"list_urls"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"universe"`
	Prices struct {
		BaseURL        string        `yaml:"base_url"`
		Period         string        `yaml:"period"`   // passed through, default "1y"
		Interval       string        `yaml:"interval"` // passed through, default "1d"
		Timeout        time.Duration `yaml:"timeout"`
		MaxConcurrency int           `yaml:"max_concurrency"`
		RatePerSec     float64       `yaml:"rate_per_sec"`
		Indexes        []string      `yaml:"indexes"` // market overview tickers
	} `yaml:"prices"`
	Sectors struct {
		CacheTTL time.Duration `yaml:"cache_ttl"`
		Delay    time.Duration `yaml:"delay"` // pause between lookups
	} `yaml:"sectors"`
	TriggerLog struct {
		Dir string `yaml:"dir"`
	} `yaml:"trigger_log"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		MaxAttempts  int      `yaml:"max_attempts"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled      bool          `yaml:"enabled"`
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Database     string        `yaml:"database"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		AsyncInsert  bool          `yaml:"async_insert"`
		WaitForAsync bool          `yaml:"wait_for_async_insert"`
		DialTimeout  time.Duration `yaml:"dial_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"clickhouse"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	Email struct {
		Enabled  bool   `yaml:"enabled"`
		SMTPHost string `yaml:"smtp_host"`
		SMTPPort int    `yaml:"smtp_port"`
		From     string `yaml:"from"`
		To       string `yaml:"to"`
		Password string `yaml:"password"`
		Subject  string `yaml:"subject"`
	} `yaml:"email"`
	Schedule struct {
		Spec       string `yaml:"spec"` // cron spec, empty disables scheduling
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.Email.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}
	if v := os.Getenv("TRIGGER_LOG_DIR"); v != "" {
		c.TriggerLog.Dir = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Alerts.DropThreshold == 0 {
		c.Alerts.DropThreshold = -5
	}
	if c.Alerts.StreakMin == 0 {
		c.Alerts.StreakMin = 5
	}
	if c.Alerts.DaysBack == 0 {
		c.Alerts.DaysBack = 7
	}
	if c.Alerts.SectorPressureMin == 0 {
		c.Alerts.SectorPressureMin = 3
	}
	if c.Alerts.RepeatMin == 0 {
		c.Alerts.RepeatMin = 2
	}
	if c.Prices.Period == "" {
		c.Prices.Period = "1y"
	}
	if c.Prices.Interval == "" {
		c.Prices.Interval = "1d"
	}
	if c.Prices.Timeout == 0 {
		c.Prices.Timeout = 15 * time.Second
	}
	if c.Prices.MaxConcurrency == 0 {
		c.Prices.MaxConcurrency = 8
	}
	if c.Prices.RatePerSec == 0 {
		c.Prices.RatePerSec = 5
	}
	if len(c.Prices.Indexes) == 0 {
		c.Prices.Indexes = []string{"SPY", "QQQ"}
	}
	if c.Sectors.CacheTTL == 0 {
		c.Sectors.CacheTTL = 7 * 24 * time.Hour
	}
	if c.Sectors.Delay == 0 {
		c.Sectors.Delay = 250 * time.Millisecond
	}
	if c.Universe.Timeout == 0 {
		c.Universe.Timeout = 30 * time.Second
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 465
	}
	if c.Email.Subject == "" {
		c.Email.Subject = "Daily Stock Alert Summary"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Alerts.DropThreshold >= 0 {
		return fmt.Errorf("alerts.drop_threshold must be negative, got %v", c.Alerts.DropThreshold)
	}
	if c.Alerts.StreakMin < 1 {
		return fmt.Errorf("alerts.streak_min must be >= 1")
	}
	if c.Alerts.DaysBack < 1 {
		return fmt.Errorf("alerts.days_back must be >= 1")
	}
	if c.TriggerLog.Dir == "" {
		return fmt.Errorf("trigger_log.dir is required")
	}
	if len(c.Universe.ListURLs) == 0 {
		return fmt.Errorf("universe.list_urls cannot be empty")
	}
	if c.Prices.BaseURL == "" {
		return fmt.Errorf("prices.base_url is required")
	}
	if c.Email.Enabled {
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("email.smtp_host is required when email is enabled")
		}
		if c.Email.From == "" || c.Email.To == "" {
			return fmt.Errorf("email.from and email.to are required when email is enabled")
		}
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	return nil
}
