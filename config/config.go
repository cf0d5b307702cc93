package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API      APIConfig      `yaml:"api"`
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Session  SessionConfig  `yaml:"session"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Worker   WorkerConfig   `yaml:"worker"`
	Log      LogConfig      `yaml:"log"`
}

// APIConfig points at the booking backend.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

// SessionConfig selects where the signed-in identity is persisted.
// Driver is one of "file", "redis" or "postgres".
type SessionConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	Key    string `yaml:"key"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr                string `yaml:"addr"`
	Password            string `yaml:"password"`
	DB                  int    `yaml:"db"`
	LocationsTTLSeconds int    `yaml:"locations_ttl_seconds"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type WorkerConfig struct {
	StatusSyncSchedule string `yaml:"status_sync_schedule"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	SessionDriverFile     = "file"
	SessionDriverRedis    = "redis"
	SessionDriverPostgres = "postgres"

	DefaultSessionKey = "auth_session"
)

// LoadConfig reads the YAML file at path, preloading a .env file when one
// exists, then applies AIRBOOKING_* environment overrides and defaults.
// A missing file is not an error: defaults and the environment still apply.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("AIRBOOKING_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("AIRBOOKING_HTTP_ADDRESS"); v != "" {
		c.HTTP.Address = v
	}
	if v := os.Getenv("AIRBOOKING_SESSION_DRIVER"); v != "" {
		c.Session.Driver = v
	}
	if v := os.Getenv("AIRBOOKING_SESSION_PATH"); v != "" {
		c.Session.Path = v
	}
	if v := os.Getenv("AIRBOOKING_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("AIRBOOKING_KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("AIRBOOKING_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("AIRBOOKING_API_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSeconds = n
		}
	}
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:9000"
	}
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Session.Driver == "" {
		c.Session.Driver = SessionDriverFile
	}
	if c.Session.Key == "" {
		c.Session.Key = DefaultSessionKey
	}
	if c.Session.Path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			c.Session.Path = dir + "/airbooking"
		} else {
			c.Session.Path = ".airbooking"
		}
	}
	if c.Redis.LocationsTTLSeconds == 0 {
		c.Redis.LocationsTTLSeconds = 3600
	}
	if c.Kafka.BookingEventsTopic == "" {
		c.Kafka.BookingEventsTopic = "booking-events"
	}
	if c.Kafka.NotificationsTopic == "" {
		c.Kafka.NotificationsTopic = "booking-notifications"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "airbooking-worker"
	}
	if c.Worker.StatusSyncSchedule == "" {
		c.Worker.StatusSyncSchedule = "@every 5m"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Validate rejects configurations the wiring cannot start with.
func (c *Config) Validate() error {
	switch c.Session.Driver {
	case SessionDriverFile, SessionDriverRedis, SessionDriverPostgres:
	default:
		return fmt.Errorf("unknown session driver %q", c.Session.Driver)
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must not be negative")
	}
	return nil
}
