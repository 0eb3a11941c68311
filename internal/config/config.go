package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/septivank/danube-levels-bot/tools/timeparser"
)

// Config holds all application configuration
type Config struct {
	ServiceName     string
	LogLevel        string
	CredentialsFile string
	Source          SourceConfig
	Schedule        ScheduleConfig
	Twitter         TwitterConfig
	RabbitMQ        RabbitMQConfig
	Speech          SpeechConfig
}

// SourceConfig holds the status page settings
type SourceConfig struct {
	URL     string
	Timeout time.Duration
}

// ScheduleConfig holds the daily trigger settings
type ScheduleConfig struct {
	At       timeparser.Clock
	Location *time.Location
	Interval time.Duration
}

// TwitterConfig holds publishing API settings
type TwitterConfig struct {
	Timeout   time.Duration
	MaxLength int
}

// RabbitMQConfig holds the optional readings fan-out settings.
// An empty URL disables the fan-out.
type RabbitMQConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

// SpeechConfig holds narration settings. An empty TTSURL disables narration.
type SpeechConfig struct {
	TTSURL        string
	Language      string
	UploadURL     string
	UploadTimeout time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	at, err := timeparser.ParseClock(getEnv("SCHEDULE_AT", "15:00"))
	if err != nil {
		return nil, fmt.Errorf("SCHEDULE_AT is invalid: %w", err)
	}

	tzName := getEnv("SCHEDULE_TIMEZONE", "Europe/Sofia")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("SCHEDULE_TIMEZONE %q is invalid: %w", tzName, err)
	}

	cfg := &Config{
		ServiceName:     getEnv("SERVICE_NAME", "danube-levels-bot"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CredentialsFile: getEnv("CREDENTIALS_FILE", ""),
		Source: SourceConfig{
			URL:     getEnv("SOURCE_URL", "http://appd-bg.org/bg/level_bg.php"),
			Timeout: getEnvAsDuration("SOURCE_TIMEOUT", 30*time.Second),
		},
		Schedule: ScheduleConfig{
			At:       at,
			Location: loc,
			Interval: 24 * time.Hour,
		},
		Twitter: TwitterConfig{
			Timeout:   getEnvAsDuration("TWITTER_TIMEOUT", 30*time.Second),
			MaxLength: getEnvAsInt("TWITTER_MAX_LENGTH", 280),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        getEnv("RABBITMQ_URL", ""),
			Exchange:   getEnv("RABBITMQ_EXCHANGE", "danube-levels.events.exchange"),
			RoutingKey: getEnv("RABBITMQ_ROUTING_KEY", "levels.published"),
		},
		Speech: SpeechConfig{
			TTSURL:        getEnv("TTS_URL", ""),
			Language:      getEnv("TTS_LANGUAGE", "ru"),
			UploadURL:     getEnv("UPLOAD_URL", "https://upload.clyp.it/upload"),
			UploadTimeout: getEnvAsDuration("UPLOAD_TIMEOUT", 120*time.Second),
		},
	}

	// Validate required fields
	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("CREDENTIALS_FILE is required but not set in environment variables")
	}
	if cfg.Twitter.MaxLength <= 0 {
		return nil, fmt.Errorf("TWITTER_MAX_LENGTH must be positive, got %d", cfg.Twitter.MaxLength)
	}
	if cfg.Speech.Language != "ru" && cfg.Speech.Language != "fr" {
		return nil, fmt.Errorf("TTS_LANGUAGE must be \"ru\" or \"fr\", got %q", cfg.Speech.Language)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
