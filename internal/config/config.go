package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed
// into Config.
var ErrParsingConfig = errors.New("config: failed to parse environment")

// Config is the process configuration read from the environment.
type Config struct {
	WebhookURL     string        `env:"FORMSTEPS_WEBHOOK_URL"`
	WebhookTimeout time.Duration `env:"FORMSTEPS_WEBHOOK_TIMEOUT" envDefault:"15s"`
	Definition     string        `env:"FORMSTEPS_DEFINITION"`
	LogLevel       string        `env:"FORMSTEPS_LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"FORMSTEPS_LOG_FORMAT" envDefault:"console"`
	ThemeVariant   string        `env:"FORMSTEPS_THEME_VARIANT" envDefault:"light"`
	SinkAddr       string        `env:"FORMSTEPS_SINK_ADDR" envDefault:":8089"`
	SinkPath       string        `env:"FORMSTEPS_SINK_PATH" envDefault:"/webhook/closed-deal"`
}

// Load reads the given .env files, skipping any that do not exist, and parses
// the environment into a Config. Variables already set in the process win
// over values from the files.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("config: stat %s: %w", file, err)
		}
		if err := godotenv.Load(file); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if cfg.WebhookTimeout <= 0 {
		return Config{}, fmt.Errorf("%w: FORMSTEPS_WEBHOOK_TIMEOUT must be positive", ErrParsingConfig)
	}
	return cfg, nil
}
