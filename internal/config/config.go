package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	DBPath          string        `env:"DB_PATH" envDefault:"file:nahuatl.db"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"INFO"`
	LogColors       bool          `env:"LOG_COLORS" envDefault:"true"`
	AudioDir        string        `env:"AUDIO_DIR" envDefault:"web/audio"`
	DeviceSecret    string        `env:"DEVICE_SECRET" envDefault:"change-me-in-production"`
	DeviceCookieTTL time.Duration `env:"DEVICE_COOKIE_TTL" envDefault:"8760h"`
	SecureCookies   bool          `env:"SECURE_COOKIES" envDefault:"false"`
	PINLength       int           `env:"PIN_LENGTH" envDefault:"4"`
	PINShakeWindow  time.Duration `env:"PIN_SHAKE_WINDOW" envDefault:"500ms"`
	LessonReward    int           `env:"LESSON_REWARD" envDefault:"10"`
	ScreenIdleTTL   time.Duration `env:"SCREEN_IDLE_TTL" envDefault:"30m"`
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
	WorkerCount     int           `env:"WORKER_COUNT" envDefault:"1"`
	WorkerQueueSize int           `env:"WORKER_QUEUE_SIZE" envDefault:"8"`
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying the defaults declared on Config.
func Load() (Config, error) {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if len(c.DeviceSecret) < 16 {
		errs = append(errs, errors.New("DEVICE_SECRET must be at least 16 characters"))
	}
	if c.DeviceCookieTTL <= 0 {
		errs = append(errs, errors.New("DEVICE_COOKIE_TTL must be positive"))
	}
	if c.PINLength < 4 || c.PINLength > 6 {
		errs = append(errs, fmt.Errorf("PIN_LENGTH must be between 4 and 6 (got %d)", c.PINLength))
	}
	if c.PINShakeWindow <= 0 {
		errs = append(errs, errors.New("PIN_SHAKE_WINDOW must be positive"))
	}
	if c.LessonReward < 0 {
		errs = append(errs, fmt.Errorf("LESSON_REWARD cannot be negative (got %d)", c.LessonReward))
	}
	if c.ScreenIdleTTL <= 0 {
		errs = append(errs, errors.New("SCREEN_IDLE_TTL must be positive"))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, errors.New("SWEEP_INTERVAL must be positive"))
	}
	if c.WorkerCount < 1 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT must be at least 1 (got %d)", c.WorkerCount))
	}
	if c.WorkerQueueSize < 1 {
		errs = append(errs, fmt.Errorf("WORKER_QUEUE_SIZE must be at least 1 (got %d)", c.WorkerQueueSize))
	}

	return errors.Join(errs...)
}
