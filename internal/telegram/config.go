package telegram

import "time"

type Config struct {
	Enabled      bool          `yaml:"enabled"`
	Token        string        `yaml:"token"`
	PollInterval time.Duration `yaml:"pollInterval"`

	// MaxRows limits /list output, telegram rejects long messages.
	MaxRows int `yaml:"maxRows"`
}
