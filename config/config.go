package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const envPrefix = "STAYBOOK"

// Ledger drivers.
const (
	LedgerMemory   = "memory"
	LedgerFile     = "file"
	LedgerPostgres = "postgres"
	LedgerSQLite   = "sqlite"
)

type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Log          LogConfig          `yaml:"log"`
	Catalog      CatalogConfig      `yaml:"catalog"`
	Ledger       LedgerConfig       `yaml:"ledger"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Kafka        KafkaConfig        `yaml:"kafka"`
	Notification NotificationConfig `yaml:"notification"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type CatalogConfig struct {
	Size int `yaml:"size"`
	// Seed makes generation reproducible across restarts; 0 means unseeded.
	Seed uint64 `yaml:"seed"`
}

type LedgerConfig struct {
	Driver     string `yaml:"driver"`
	FileDir    string `yaml:"file_dir" split_words:"true"`
	SQLitePath string `yaml:"sqlite_path" split_words:"true"`
}

// Durable reports whether records survive a restart with this driver.
func (l LedgerConfig) Durable() bool {
	return l.Driver != LedgerMemory
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode" split_words:"true"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Addr        string `yaml:"addr"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	ListingsTTL int    `yaml:"listings_ttl_seconds" split_words:"true"`
}

type KafkaConfig struct {
	Enabled            bool     `yaml:"enabled"`
	Brokers            []string `yaml:"brokers"`
	NotificationsTopic string   `yaml:"notifications_topic" split_words:"true"`
	GroupID            string   `yaml:"group_id" split_words:"true"`
	PublishRetries     int      `yaml:"publish_retries" split_words:"true"`
}

type NotificationConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds" split_words:"true"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Catalog.Size == 0 {
		c.Catalog.Size = 5000
	}
	if c.Ledger.Driver == "" {
		c.Ledger.Driver = LedgerMemory
	}
	c.Ledger.Driver = strings.ToLower(c.Ledger.Driver)
	if c.Ledger.FileDir == "" {
		c.Ledger.FileDir = "data"
	}
	if c.Ledger.SQLitePath == "" {
		c.Ledger.SQLitePath = "data/ledger.db"
	}
	if c.Redis.ListingsTTL == 0 {
		c.Redis.ListingsTTL = 60
	}
	if c.Kafka.NotificationsTopic == "" {
		c.Kafka.NotificationsTopic = "booking-notifications"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "staybooking-notifier"
	}
	if c.Kafka.PublishRetries == 0 {
		c.Kafka.PublishRetries = 3
	}
	if c.Notification.TimeoutSeconds == 0 {
		c.Notification.TimeoutSeconds = 10
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Catalog.Size <= 0 {
		return fmt.Errorf("catalog size must be positive, got %d", c.Catalog.Size)
	}
	switch c.Ledger.Driver {
	case LedgerMemory, LedgerFile, LedgerPostgres, LedgerSQLite:
	default:
		return fmt.Errorf("unknown ledger driver %q", c.Ledger.Driver)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka enabled without brokers")
	}
	if c.Kafka.PublishRetries < 1 {
		return fmt.Errorf("kafka publish_retries must be at least 1")
	}
	return nil
}
