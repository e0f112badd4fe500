package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr string

	// booking site
	BaseURL     string
	HTTPTimeout time.Duration

	// accounts: either the static lists or the database
	Usernames   []string
	Passwords   []string
	DatabaseURL string
	CredEncKey  []byte

	// cooldown
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CooldownTTL   time.Duration
	KeyVersion    string

	// dispatch
	AMQPURL        string
	AMQPQueue      string
	CookieHashKey  []byte
	CookieBlockKey []byte
	TaskMaxAge     time.Duration

	// slack
	VerificationToken string
	TeamID            string
	BotToken          string
	BookingChannels   []string
	NotifyChannel     string

	EmbargoStart string
	EmbargoEnd   string

	// scheduler
	ScheduleAt   string
	PollInterval time.Duration

	Logger LoggerConfig
}

type LoggerConfig struct {
	Level       string
	Format      string
	ServiceName string
	AddSource   bool
	LogFile     string
	MaxSize     int
	MaxBackups  int
	MaxAge      int
	Compress    bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("OLS_BASE_URL", "")
	v.SetDefault("OLS_TIMEOUT", "30s")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_EXPIRE_SECONDS", 3600)
	v.SetDefault("REDIS_KEY_VERSION", "1")
	v.SetDefault("AMQP_QUEUE", "courtbot.tasks")
	v.SetDefault("TASK_MAX_AGE", "10m")
	v.SetDefault("SCHEDULE_AT", "08:00")
	v.SetDefault("SCHED_POLL_SECONDS", 30)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_SERVICE_NAME", "courtbot")
	v.SetDefault("LOG_MAX_SIZE", 10)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE", 28)
}

// FromEnv reads the process environment, after loading a .env file from the
// working directory when one exists.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	v := viper.New()
	v.AutomaticEnv()
	return Load(v)
}

// Load builds a Config from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	setDefaults(v)

	cfg := Config{
		ListenAddr:        trimmed(v, "LISTEN_ADDR"),
		BaseURL:           trimmed(v, "OLS_BASE_URL"),
		Usernames:         list(v, "MIT_RECREATION_USERNAMES"),
		Passwords:         list(v, "MIT_RECREATION_PASSWORDS"),
		DatabaseURL:       trimmed(v, "DATABASE_URL"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		KeyVersion:        trimmed(v, "REDIS_KEY_VERSION"),
		AMQPURL:           trimmed(v, "AMQP_URL"),
		AMQPQueue:         trimmed(v, "AMQP_QUEUE"),
		VerificationToken: trimmed(v, "SLACK_VERIFICATION_TOKEN"),
		TeamID:            trimmed(v, "SLACK_TEAM_ID"),
		BotToken:          trimmed(v, "SLACK_API_TOKEN"),
		BookingChannels:   list(v, "SLACK_VALID_CHANNELS"),
		NotifyChannel:     trimmed(v, "SLACK_NOTIFY_CHANNEL"),
		EmbargoStart:      trimmed(v, "EMBARGO_START"),
		EmbargoEnd:        trimmed(v, "EMBARGO_END"),
		ScheduleAt:        trimmed(v, "SCHEDULE_AT"),
		Logger: LoggerConfig{
			Level:       trimmed(v, "LOG_LEVEL"),
			Format:      trimmed(v, "LOG_FORMAT"),
			ServiceName: trimmed(v, "LOG_SERVICE_NAME"),
			AddSource:   v.GetBool("LOG_ADD_SOURCE"),
			LogFile:     trimmed(v, "LOG_FILE"),
			MaxSize:     v.GetInt("LOG_MAX_SIZE"),
			MaxBackups:  v.GetInt("LOG_MAX_BACKUPS"),
			MaxAge:      v.GetInt("LOG_MAX_AGE"),
			Compress:    v.GetBool("LOG_COMPRESS"),
		},
	}
	if host := trimmed(v, "REDIS_HOST"); host != "" {
		cfg.RedisAddr = fmt.Sprintf("%s:%d", host, v.GetInt("REDIS_PORT"))
	}
	if cfg.NotifyChannel == "" && len(cfg.BookingChannels) > 0 {
		cfg.NotifyChannel = cfg.BookingChannels[0]
	}

	var err error
	if cfg.HTTPTimeout, err = duration(v, "OLS_TIMEOUT"); err != nil {
		return Config{}, err
	}
	if cfg.TaskMaxAge, err = duration(v, "TASK_MAX_AGE"); err != nil {
		return Config{}, err
	}

	ttl := v.GetInt("REDIS_EXPIRE_SECONDS")
	if ttl < 1 {
		return Config{}, fmt.Errorf("invalid REDIS_EXPIRE_SECONDS")
	}
	cfg.CooldownTTL = time.Duration(ttl) * time.Second

	pollSec := v.GetInt("SCHED_POLL_SECONDS")
	if pollSec < 1 {
		return Config{}, fmt.Errorf("invalid SCHED_POLL_SECONDS")
	}
	cfg.PollInterval = time.Duration(pollSec) * time.Second

	if cfg.CredEncKey, err = optionalB64(v, "CRED_ENC_KEY"); err != nil {
		return Config{}, err
	}
	if cfg.CookieHashKey, err = optionalB64(v, "COOKIE_HASH_KEY"); err != nil {
		return Config{}, err
	}
	if cfg.CookieBlockKey, err = optionalB64(v, "COOKIE_BLOCK_KEY"); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate checks settings that only make sense together.
func (c Config) Validate() error {
	if len(c.Usernames) != len(c.Passwords) {
		return fmt.Errorf("MIT_RECREATION_USERNAMES and MIT_RECREATION_PASSWORDS differ in length (%d vs %d)", len(c.Usernames), len(c.Passwords))
	}
	if c.DatabaseURL != "" && len(c.CredEncKey) != 32 {
		return fmt.Errorf("CRED_ENC_KEY must decode to 32 bytes when DATABASE_URL is set (got %d)", len(c.CredEncKey))
	}
	if c.AMQPURL != "" {
		if len(c.CookieHashKey) == 0 || len(c.CookieBlockKey) == 0 {
			return fmt.Errorf("COOKIE_HASH_KEY and COOKIE_BLOCK_KEY are required with AMQP_URL")
		}
		switch len(c.CookieBlockKey) {
		case 16, 24, 32:
		default:
			return fmt.Errorf("COOKIE_BLOCK_KEY must decode to 16, 24 or 32 bytes (got %d)", len(c.CookieBlockKey))
		}
	}
	if (c.EmbargoStart == "") != (c.EmbargoEnd == "") {
		return fmt.Errorf("EMBARGO_START and EMBARGO_END must be set together")
	}
	if _, err := time.Parse("15:04", c.ScheduleAt); err != nil {
		return fmt.Errorf("SCHEDULE_AT must be HH:MM: %w", err)
	}
	return nil
}

// HasAccounts reports whether any account source is configured.
func (c Config) HasAccounts() bool {
	return len(c.Usernames) > 0 || c.DatabaseURL != ""
}

func trimmed(v *viper.Viper, k string) string {
	return strings.TrimSpace(v.GetString(k))
}

func list(v *viper.Viper, k string) []string {
	raw := trimmed(v, k)
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func duration(v *viper.Viper, k string) (time.Duration, error) {
	d, err := time.ParseDuration(trimmed(v, k))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", k)
	}
	return d, nil
}

func optionalB64(v *viper.Viper, k string) ([]byte, error) {
	s := trimmed(v, k)
	if s == "" {
		return nil, nil
	}
	// allow pointing to a file for k8s secret mounts
	if b, err := os.ReadFile(s); err == nil {
		s = strings.TrimSpace(string(b))
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	b, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
