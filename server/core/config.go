package core

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds relay settings. Environment variables set the defaults and
// command-line flags override them.
type Config struct {
	Port     uint   `env:"LEAPDASH_PORT" envDefault:"7373"`
	TickRate int    `env:"LEAPDASH_TICK_RATE" envDefault:"20"`
	Name     string `env:"LEAPDASH_NAME" envDefault:"Leapdash Relay"`
	Version  string `env:"LEAPDASH_VERSION"` // required client version, empty accepts any
	Level    string `env:"LEAPDASH_LEVEL" envDefault:"demo"`
	MaxPeers int    `env:"LEAPDASH_MAX_PEERS" envDefault:"16"`
}

// LoadConfig reads the environment, then applies args on top.
func LoadConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if fs == nil {
		return cfg, nil
	}
	fs.UintVar(&cfg.Port, "port", cfg.Port, "relay port")
	fs.IntVar(&cfg.TickRate, "tickrate", cfg.TickRate, "snapshot rate (updates per second)")
	fs.StringVar(&cfg.Name, "name", cfg.Name, "relay display name")
	fs.StringVar(&cfg.Version, "version", cfg.Version, "required client version (empty = accept any)")
	fs.StringVar(&cfg.Level, "level", cfg.Level, "level every peer plays")
	fs.IntVar(&cfg.MaxPeers, "maxpeers", cfg.MaxPeers, "maximum joined peers")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if cfg.TickRate <= 0 {
		return Config{}, fmt.Errorf("tick rate must be positive, got %d", cfg.TickRate)
	}
	return cfg, nil
}
