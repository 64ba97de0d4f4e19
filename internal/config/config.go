package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the agent configuration, read from config.toml in the data
// directory. Every field has a working default so the agent runs with no
// file at all; env vars override the listen port for parity with the
// deployment scripts.
type Config struct {
	Listen  string        `toml:"listen"`
	Device  DeviceConfig  `toml:"device"`
	Spooler SpoolerConfig `toml:"spooler"`
}

type DeviceConfig struct {
	// Port pins the serial device (e.g. COM3, /dev/rfcomm0) instead of
	// relying on detection.
	Port string `toml:"port"`
	Baud int    `toml:"baud"`
}

type SpoolerConfig struct {
	// Queue names the OS print queue; empty means the system default.
	Queue string `toml:"queue"`
}

func Default() Config {
	return Config{
		Listen: ":3519",
		Device: DeviceConfig{Baud: 9600},
	}
}

// Load reads config.toml from dir if present and applies env overrides.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if port := os.Getenv("POS_PRINT_PORT"); port != "" {
		cfg.Listen = ":" + port
	}
	if dev := os.Getenv("POS_PRINTER_DEVICE"); dev != "" {
		cfg.Device.Port = dev
	}
	return cfg, nil
}
