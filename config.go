package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration read from a YAML file. Command-line
// flags override individual fields.
type Config struct {
	Socket    string `yaml:"socket"`
	WebSocket string `yaml:"websocket"` // listen address; empty disables
	Catalog   string `yaml:"catalog"`
	Seed      uint64 `yaml:"seed"` // 0 draws from the crypto source
	LogLevel  string `yaml:"logLevel"`

	RoleStrictness int               `yaml:"roleStrictness"`
	Filters        map[string]string `yaml:"filters"`
}

func defaultConfig() Config {
	return Config{
		Socket:   "/tmp/vimy-rat.sock",
		Catalog:  "catalog.yaml",
		LogLevel: "info",
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return cfg, nil
}

type flags struct {
	fs *flag.FlagSet

	config    string
	socket    string
	websocket string
	catalog   string
	seed      uint64
	logLevel  string
}

func newFlags() *flags {
	f := &flags{fs: flag.NewFlagSet("vimy-rat", flag.ContinueOnError)}
	f.fs.StringVar(&f.config, "config", "vimy-rat.yaml", "path to YAML config")
	f.fs.StringVar(&f.socket, "socket", "", "unix socket path")
	f.fs.StringVar(&f.websocket, "ws", "", "websocket listen address, e.g. :8090")
	f.fs.StringVar(&f.catalog, "catalog", "", "unit catalog (.yaml or .yaml.zst)")
	f.fs.Uint64Var(&f.seed, "seed", 0, "random seed, 0 for crypto randomness")
	f.fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	return f
}

func (f *flags) parse(args []string) error {
	return f.fs.Parse(args)
}

// apply overwrites cfg with every flag set on the command line.
func (f *flags) apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "socket":
			cfg.Socket = f.socket
		case "ws":
			cfg.WebSocket = f.websocket
		case "catalog":
			cfg.Catalog = f.catalog
		case "seed":
			cfg.Seed = f.seed
		case "log-level":
			cfg.LogLevel = f.logLevel
		}
	})
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}
