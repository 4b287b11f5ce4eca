package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken    string `env:"BOT_TOKEN,required"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Classifier
	OpenAIKey       string `env:"OPENAI_API_KEY,required"`
	OpenAIModel     string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	ClassifyRetries int    `env:"CLASSIFY_RETRIES" envDefault:"1"`

	// Source channel to watch for photo posts (username, without @)
	ChannelUsername string `env:"CHANNEL_USERNAME" envDefault:"Gopaska_boutique_Italyclothing"`

	// Photos older than this many days are ignored on ingest and purged from storage
	RetentionDays int `env:"RETENTION_DAYS" envDefault:"35"`

	// Max photos returned per filter query
	ResultLimit int `env:"RESULT_LIMIT" envDefault:"10"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// RetentionWindow returns the retention threshold as a duration.
func (c *Config) RetentionWindow() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}
