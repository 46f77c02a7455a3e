package receiver

import (
	"errors"
	"fmt"
	"strings"
)

// AddressFamily selects the IP version a receiver binds to. Receivers bound to
// one family never see traffic sent to the other.
type AddressFamily string

const (
	IPv4 AddressFamily = "ipv4"
	IPv6 AddressFamily = "ipv6"
)

// Mode selects how a receiver bridges its blocking reads into the host cycle.
type Mode string

const (
	// Cooperative polls one in-flight receive per host cycle.
	Cooperative Mode = "cooperative"
	// Threaded reads continuously on its own goroutine into a shared Inbox.
	Threaded Mode = "threaded"
)

// DefaultPort is the port used when none is configured.
const DefaultPort = 1234

var (
	ErrUnsupportedMode   = errors.New("unsupported concurrency mode")
	ErrUnsupportedFamily = errors.New("unsupported address family")
	ErrInvalidPort       = errors.New("invalid port")
)

// Config describes one receiver.
type Config struct {
	// Name identifies the receiver in events, logs and metrics.
	Name          string
	Port          int
	AddressFamily AddressFamily
	// BindAddress overrides the family's default bind host (0.0.0.0 or ::1).
	BindAddress string
	Mode        Mode
	// DebugPrint logs every decoded message.
	DebugPrint bool
}

// DefaultConfig returns the configuration of an IPv4 cooperative receiver on
// DefaultPort.
func DefaultConfig() Config {
	return Config{
		Port:          DefaultPort,
		AddressFamily: IPv4,
		Mode:          Cooperative,
	}
}

// ParseMode parses a concurrency mode name.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case Cooperative, "async", "poll":
		return Cooperative, nil
	case Threaded, "thread":
		return Threaded, nil
	}
	return "", fmt.Errorf("ParseMode: %w: %q", ErrUnsupportedMode, raw)
}

// ParseAddressFamily parses an address family name.
func ParseAddressFamily(raw string) (AddressFamily, error) {
	switch AddressFamily(strings.ToLower(strings.TrimSpace(raw))) {
	case IPv4, "v4", "4":
		return IPv4, nil
	case IPv6, "v6", "6":
		return IPv6, nil
	}
	return "", fmt.Errorf("ParseAddressFamily: %w: %q", ErrUnsupportedFamily, raw)
}

// Validate reports the first invalid field of c.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("Validate: %w: %d", ErrInvalidPort, c.Port)
	}
	switch c.AddressFamily {
	case IPv4, IPv6:
	default:
		return fmt.Errorf("Validate: %w: %q", ErrUnsupportedFamily, c.AddressFamily)
	}
	switch c.Mode {
	case Cooperative, Threaded:
	default:
		return fmt.Errorf("Validate: %w: %q", ErrUnsupportedMode, c.Mode)
	}
	return nil
}

// withDefaults fills empty fields.
func (c Config) withDefaults() Config {
	if c.AddressFamily == "" {
		c.AddressFamily = IPv4
	}
	if c.Mode == "" {
		c.Mode = Cooperative
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("osc-%d", c.Port)
	}
	return c
}
