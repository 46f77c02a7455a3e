// Package config loads oscbridge settings from defaults, an optional TOML
// file, optional .env files and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/chabad360/oscbridge/receiver"
)

const (
	EnvPort          = "OSCBRIDGE_PORT"
	EnvAddressFamily = "OSCBRIDGE_ADDRESS_FAMILY"
	EnvMode          = "OSCBRIDGE_MODE"
	EnvDebugPrint    = "OSCBRIDGE_DEBUG_PRINT"
	EnvBindAddress   = "OSCBRIDGE_BIND_ADDRESS"
	EnvMetricsAddr   = "OSCBRIDGE_METRICS_ADDR"
	EnvSenderHost    = "OSCBRIDGE_SENDER_HOST"
	EnvSenderPort    = "OSCBRIDGE_SENDER_PORT"
)

// DefaultEnvFile is read by Load when no env files are given.
const DefaultEnvFile = ".env"

// Config is the resolved configuration. The top-level receiver fields
// describe the default receiver, and are inherited by [[receivers]] entries
// that leave them unset.
type Config struct {
	Port            int    `toml:"port"`
	AddressFamily   string `toml:"address_family"`
	ConcurrencyMode string `toml:"concurrency_mode"`
	DebugPrint      bool   `toml:"debug_print"`
	BindAddress     string `toml:"bind_address"`

	// MetricsAddr serves Prometheus metrics when set.
	MetricsAddr string `toml:"metrics_addr"`
	// Workers bounds concurrent cooperative receives; 0 means one per
	// cooperative receiver.
	Workers int `toml:"workers"`

	Host      HostConfig      `toml:"host"`
	Sender    SenderConfig    `toml:"sender"`
	Receivers []ReceiverEntry `toml:"receivers"`
}

type HostConfig struct {
	Rate time.Duration `toml:"rate"`
}

type SenderConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ReceiverEntry is one [[receivers]] table. Nil fields inherit.
type ReceiverEntry struct {
	Name            string  `toml:"name"`
	Port            *int    `toml:"port"`
	AddressFamily   *string `toml:"address_family"`
	ConcurrencyMode *string `toml:"concurrency_mode"`
	DebugPrint      *bool   `toml:"debug_print"`
	BindAddress     *string `toml:"bind_address"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:            receiver.DefaultPort,
		AddressFamily:   string(receiver.IPv4),
		ConcurrencyMode: string(receiver.Cooperative),
		Host:            HostConfig{Rate: 10 * time.Millisecond},
		Sender:          SenderConfig{Host: "127.0.0.1", Port: receiver.DefaultPort},
	}
}

// Load resolves the configuration. path may be empty to skip the TOML file.
// Missing env files are ignored; variables already set in the environment
// win over env files.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
		if !md.IsDefined("sender", "port") && md.IsDefined("port") {
			cfg.Sender.Port = cfg.Port
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config parse failed (%s): unknown keys %v", path, undecoded)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("env file %s: %w", f, err)
		}
		present = append(present, f)
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("env file load failed: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v, ok := lookup(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		cfg.Port = port
	}
	if v, ok := lookup(EnvAddressFamily); ok {
		cfg.AddressFamily = v
	}
	if v, ok := lookup(EnvMode); ok {
		cfg.ConcurrencyMode = v
	}
	if v, ok := lookup(EnvDebugPrint); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebugPrint, err)
		}
		cfg.DebugPrint = b
	}
	if v, ok := lookup(EnvBindAddress); ok {
		cfg.BindAddress = v
	}
	if v, ok := lookup(EnvMetricsAddr); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := lookup(EnvSenderHost); ok {
		cfg.Sender.Host = v
	}
	if v, ok := lookup(EnvSenderPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSenderPort, err)
		}
		cfg.Sender.Port = port
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// ReceiverConfigs returns one receiver.Config per [[receivers]] entry, or
// the default receiver when there are none.
func (c Config) ReceiverConfigs() ([]receiver.Config, error) {
	base, err := c.receiverConfig(ReceiverEntry{})
	if err != nil {
		return nil, err
	}
	if len(c.Receivers) == 0 {
		return []receiver.Config{base}, nil
	}

	out := make([]receiver.Config, 0, len(c.Receivers))
	for i, e := range c.Receivers {
		rc, err := c.receiverConfig(e)
		if err != nil {
			return nil, fmt.Errorf("receivers[%d]: %w", i, err)
		}
		out = append(out, rc)
	}
	return out, nil
}

func (c Config) receiverConfig(e ReceiverEntry) (receiver.Config, error) {
	port, family, mode, debug, bind := c.Port, c.AddressFamily, c.ConcurrencyMode, c.DebugPrint, c.BindAddress
	if e.Port != nil {
		port = *e.Port
	}
	if e.AddressFamily != nil {
		family = *e.AddressFamily
	}
	if e.ConcurrencyMode != nil {
		mode = *e.ConcurrencyMode
	}
	if e.DebugPrint != nil {
		debug = *e.DebugPrint
	}
	if e.BindAddress != nil {
		bind = *e.BindAddress
	}

	f, err := receiver.ParseAddressFamily(family)
	if err != nil {
		return receiver.Config{}, err
	}
	m, err := receiver.ParseMode(mode)
	if err != nil {
		return receiver.Config{}, err
	}

	rc := receiver.Config{
		Name:          strings.TrimSpace(e.Name),
		Port:          port,
		AddressFamily: f,
		BindAddress:   bind,
		Mode:          m,
		DebugPrint:    debug,
	}
	return rc, rc.Validate()
}

// Validate checks every receiver and the ambient settings.
func (c Config) Validate() error {
	rcs, err := c.ReceiverConfigs()
	if err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}

	names := make(map[string]bool, len(rcs))
	for i, rc := range rcs {
		if rc.Name == "" {
			continue
		}
		if names[rc.Name] {
			return fmt.Errorf("config invalid: receivers[%d]: duplicate name %q", i, rc.Name)
		}
		names[rc.Name] = true
	}

	if c.Workers < 0 {
		return fmt.Errorf("config invalid: workers must be >= 0, got %d", c.Workers)
	}
	if c.Host.Rate < 0 {
		return fmt.Errorf("config invalid: host rate must be >= 0, got %v", c.Host.Rate)
	}
	if c.Sender.Port < 0 || c.Sender.Port > 65535 {
		return fmt.Errorf("config invalid: sender: %w: %d", receiver.ErrInvalidPort, c.Sender.Port)
	}
	return nil
}
