package configs

import (
	"strings"
)

// DefaultServerAddress is the listen address of the template server.
const DefaultServerAddress = ":8080"

// ServerConfig holds configuration settings for the template server.
type ServerConfig struct {
	Address   string           `json:"address"`   // Listen address
	Converter *ConverterConfig `json:"converter"` // Defaults for conversions requested without overrides
}

// ServerConfigOpt defines a function type for applying options to ServerConfig.
type ServerConfigOpt func(*ServerConfig) error

// NewServerConfig creates a new ServerConfig by applying the given options.
// Returns an error if any option returns an error.
func NewServerConfig(opts ...ServerConfigOpt) (*ServerConfig, error) {
	converter, err := NewConverterConfig()
	if err != nil {
		return nil, err
	}
	cfg := &ServerConfig{
		Address:   DefaultServerAddress,
		Converter: converter,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithAddress returns a ServerConfigOpt that sets the Address field
// to the first non-empty string provided in addrs.
func WithAddress(addrs ...string) ServerConfigOpt {
	return func(cfg *ServerConfig) error {
		for _, addr := range addrs {
			if strings.TrimSpace(addr) != "" {
				cfg.Address = addr
				break
			}
		}
		return nil
	}
}

// WithConverter returns a ServerConfigOpt that applies converter options
// to the default conversion settings.
func WithConverter(opts ...ConverterConfigOpt) ServerConfigOpt {
	return func(cfg *ServerConfig) error {
		for _, opt := range opts {
			if err := opt(cfg.Converter); err != nil {
				return err
			}
		}
		return nil
	}
}
