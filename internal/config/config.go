package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything one tracker run needs. The API key is passed
// explicitly to the collector at construction time; nothing reads it from
// the environment after this point.
type Config struct {
	APIKey         string `envconfig:"YOUTUBE_API_KEY"`
	CollectorMode  string `envconfig:"COLLECTOR_MODE" default:"rest"`
	MaxVideos      int    `envconfig:"MAX_RECENT_VIDEOS" default:"10"`
	TimeoutSeconds int    `envconfig:"HTTP_TIMEOUT_SECONDS" default:"10"`

	InputPath  string `envconfig:"INPUT_PATH" default:"input/channels.csv"`
	OutputPath string `envconfig:"OUTPUT_PATH" default:"data/channel_comparison.csv"`

	Port      string `envconfig:"PORT" default:"8080"`
	Dashboard bool   `envconfig:"DASHBOARD" default:"true"`
}

// Load parses the environment into a Config
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Timeout returns the per-request network bound
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
