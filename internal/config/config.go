package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"GovtJobsScanner/internal/domain"
)

const (
	defaultTimezone   = "Asia/Kolkata"
	configPathEnv     = "GOVTJOBS_CONFIG"
	storageDriverEnv  = "STORAGE_DRIVER"
	mongoURIEnv       = "MONGO_URI"
	mongoDatabaseEnv  = "MONGO_DATABASE"
	databaseDSNEnv    = "DATABASE_DSN"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	natsURLEnv        = "NATS_URL"
	logLevelEnv       = "LOG_LEVEL"
	serverAddrEnv     = "SERVER_ADDR"
)

// Storage drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	HTTP          HTTPConfig         `yaml:"http"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
	Sources       []SourceConfig     `yaml:"sources"`
	Storage       StorageConfig      `yaml:"storage"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
	Events        EventsConfig       `yaml:"events"`
	Server        ServerConfig       `yaml:"server"`
	Videos        VideoConfig        `yaml:"videos"`
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// HTTPConfig bounds outbound requests.
type HTTPConfig struct {
	UserAgent     string        `yaml:"userAgent"`
	SourceTimeout time.Duration `yaml:"sourceTimeout"`
	DetailTimeout time.Duration `yaml:"detailTimeout"`
}

// PipelineConfig tunes the harvest loop.
type PipelineConfig struct {
	PolitenessDelay time.Duration `yaml:"politenessDelay"`
	PartitionPrefix string        `yaml:"partitionPrefix"`
}

// SourceConfig overrides one built-in source by id.
type SourceConfig struct {
	ID       string `yaml:"id"`
	URL      string `yaml:"url"`
	BaseURL  string `yaml:"baseUrl"`
	Disabled bool   `yaml:"disabled"`
}

// StorageConfig selects and configures the record store.
type StorageConfig struct {
	Driver   string         `yaml:"driver"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// MongoConfig describes MongoDB connection details.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// PostgresConfig describes Postgres connection details.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// SchedulerConfig defines when the harvester should run.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Enabled reports whether both credentials are present.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// EventsConfig configures the message bus.
type EventsConfig struct {
	NATS NATSConfig `yaml:"nats"`
}

// NATSConfig is disabled when URL is empty.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// ServerConfig configures the trigger API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// VideoConfig lists channel feeds to ingest.
type VideoConfig struct {
	Channels []string      `yaml:"channels"`
	Lookback time.Duration `yaml:"lookback"`
	FeedBase string        `yaml:"feedBase"`
}

// Load reads .env, the YAML configuration (if present) and applies environment overrides.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: cannot read .env: %v", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		fileCfg, err := ReadFile(path)
		if err != nil {
			log.Printf("config: %v (falling back to defaults)", err)
		} else {
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// ReadFile parses a YAML config file without defaults applied.
func ReadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return fileCfg, nil
}

// Validate checks what the given run mode needs before anything is fetched.
func (c Config) Validate(mode domain.RunMode) error {
	for _, src := range c.Sources {
		if !domain.SourceID(src.ID).Valid() {
			return fmt.Errorf("%w: unknown source %q", domain.ErrConfigMissing, src.ID)
		}
	}

	if mode != domain.ModeCommit {
		return nil
	}

	switch c.Storage.Driver {
	case DriverMongo:
		if c.Storage.Mongo.URI == "" {
			return fmt.Errorf("%w: %s is not set", domain.ErrConfigMissing, mongoURIEnv)
		}
		if c.Storage.Mongo.Database == "" {
			return fmt.Errorf("%w: %s is not set", domain.ErrConfigMissing, mongoDatabaseEnv)
		}
	case DriverPostgres:
		if c.Storage.Postgres.DSN == "" {
			return fmt.Errorf("%w: %s is not set", domain.ErrConfigMissing, databaseDSNEnv)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", domain.ErrConfigMissing, c.Storage.Driver)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(storageDriverEnv); v != "" {
		c.Storage.Driver = v
	}

	if v := os.Getenv(mongoURIEnv); v != "" {
		c.Storage.Mongo.URI = v
	}

	if v := os.Getenv(mongoDatabaseEnv); v != "" {
		c.Storage.Mongo.Database = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Storage.Postgres.DSN = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(natsURLEnv); v != "" {
		c.Events.NATS.URL = v
	}

	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to UTC", tz)
		loc = time.UTC
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.HTTP.UserAgent != "" {
		base.HTTP.UserAgent = override.HTTP.UserAgent
	}
	if override.HTTP.SourceTimeout > 0 {
		base.HTTP.SourceTimeout = override.HTTP.SourceTimeout
	}
	if override.HTTP.DetailTimeout > 0 {
		base.HTTP.DetailTimeout = override.HTTP.DetailTimeout
	}

	if override.Pipeline.PolitenessDelay > 0 {
		base.Pipeline.PolitenessDelay = override.Pipeline.PolitenessDelay
	}
	if override.Pipeline.PartitionPrefix != "" {
		base.Pipeline.PartitionPrefix = override.Pipeline.PartitionPrefix
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	if override.Storage.Driver != "" {
		base.Storage.Driver = override.Storage.Driver
	}
	if override.Storage.Mongo.URI != "" {
		base.Storage.Mongo.URI = override.Storage.Mongo.URI
	}
	if override.Storage.Mongo.Database != "" {
		base.Storage.Mongo.Database = override.Storage.Mongo.Database
	}
	if override.Storage.Postgres.DSN != "" {
		base.Storage.Postgres.DSN = override.Storage.Postgres.DSN
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Events.NATS.URL != "" {
		base.Events.NATS.URL = override.Events.NATS.URL
	}
	if override.Events.NATS.Subject != "" {
		base.Events.NATS.Subject = override.Events.NATS.Subject
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}

	if len(override.Videos.Channels) > 0 {
		base.Videos.Channels = override.Videos.Channels
	}
	if override.Videos.Lookback > 0 {
		base.Videos.Lookback = override.Videos.Lookback
	}
	if override.Videos.FeedBase != "" {
		base.Videos.FeedBase = override.Videos.FeedBase
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		HTTP: HTTPConfig{
			SourceTimeout: 15 * time.Second,
			DetailTimeout: 12 * time.Second,
		},
		Pipeline: PipelineConfig{
			PolitenessDelay: 3 * time.Second,
			PartitionPrefix: domain.DefaultPartitionPrefix,
		},
		Storage: StorageConfig{
			Driver: DriverMongo,
			Mongo:  MongoConfig{Database: "govtjobs"},
		},
		Scheduler: SchedulerConfig{CronExpression: "0 8 * * *", Timezone: defaultTimezone},
		Events:    EventsConfig{NATS: NATSConfig{Subject: "govtjobs"}},
		Server:    ServerConfig{Addr: ":8080"},
		Videos: VideoConfig{
			Channels: []string{
				"UCThcPY3lO1htOqtcHaCwU8g",
				"UCAyYBPzFioHUxvVZEn4rMJA",
				"UCx-7YPrGnNC81ahyqvqu27g",
				"UCEHZeAjdkSE3vHzQ0ntdKRA",
			},
			Lookback: 24 * time.Hour,
		},
	}
}
