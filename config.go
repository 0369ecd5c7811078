package valuation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of the valuation core. It is constructed once at
// the process boundary and passed explicitly: the core itself keeps no
// process-wide state.
type Config struct {
	// Currency is the fallback currency for PnL amounts when an instrument
	// carries none. Default "USD".
	Currency string `yaml:"currency"`
	// DefaultSession is assumed for quotes that carry no session. The default
	// is Closed: without better information the last trade is not trusted.
	DefaultSession Session `yaml:"default_session"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{Currency: "USD", DefaultSession: Closed}
}

// LoadConfig reads a YAML configuration file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %q: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

// withDefaults fills zero fields so a partially filled Config still behaves.
func (c Config) withDefaults() Config {
	if c.Currency == "" {
		c.Currency = "USD"
	}
	if c.DefaultSession == SessionUnknown {
		c.DefaultSession = Closed
	}
	return c
}

// UnmarshalYAML decodes a session from its string spelling.
func (s *Session) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseSession(value.Value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML encodes a session as its string spelling.
func (s Session) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}
