package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken         string        `envconfig:"BOT_TOKEN" required:"true"`
	ChatID           int64         `envconfig:"CHAT_ID" required:"true"` // owner chat for reminders and commands
	DBPath           string        `envconfig:"DB_PATH" default:"./data/skulbell.db"`
	SeedFile         string        `envconfig:"SEED_FILE" default:""`            // optional YAML, applied when the store is empty
	DigestCron       string        `envconfig:"DIGEST_CRON" default:"0 7 * * *"` // morning digest of today's lectures
	DispatchInterval time.Duration `envconfig:"DISPATCH_INTERVAL" default:"30s"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr         string        `envconfig:"HTTP_ADDR" default:":8080"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
