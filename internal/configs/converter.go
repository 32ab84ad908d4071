package configs

import (
	"strings"
	"time"

	"github.com/sbilibin2017/prometheus2zabbix/internal/encoder"
	"github.com/sbilibin2017/prometheus2zabbix/internal/template"
)

// Defaults for ConverterConfig.
const (
	DefaultMetricsURL = "http://localhost:9000/metrics"
	DefaultTimeout    = 10 * time.Second
	DefaultRetries    = 3
	DefaultLogLevel   = "info"
)

// ConverterConfig holds configuration parameters for a metrics to template conversion.
type ConverterConfig struct {
	URL                string         `json:"url"`                 // Metrics endpoint
	TemplateName       string         `json:"name"`                // Template display name
	GroupName          string         `json:"group"`               // Template group
	MasterKey          string         `json:"master_key"`          // Key of the raw data item
	Tag                string         `json:"tag"`                 // Application tag value, empty for none
	Output             string         `json:"output"`              // Output file, empty for stdout
	Format             encoder.Format `json:"format"`              // Output format
	DeterministicUUIDs bool           `json:"deterministic_uuids"` // Derive identifiers from node identity
	UUIDSeed           string         `json:"uuid_seed"`           // Seed for deterministic identifiers
	Timeout            time.Duration  `json:"timeout"`             // Fetch timeout
	Retries            int            `json:"retries"`             // Fetch retry attempts
	LogLevel           string         `json:"log_level"`           // zap log level
}

// ConverterConfigOpt defines a function type for applying configuration options to ConverterConfig.
type ConverterConfigOpt func(*ConverterConfig) error

// NewConverterConfig creates a new ConverterConfig with defaults and the given options applied.
// Returns error if any option fails.
func NewConverterConfig(opts ...ConverterConfigOpt) (*ConverterConfig, error) {
	cfg := &ConverterConfig{
		URL:          DefaultMetricsURL,
		TemplateName: template.DefaultTemplateName,
		GroupName:    template.DefaultGroupName,
		MasterKey:    template.DefaultMasterKey,
		Format:       encoder.FormatYAML,
		Timeout:      DefaultTimeout,
		Retries:      DefaultRetries,
		LogLevel:     DefaultLogLevel,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Template returns the builder configuration described by cfg.
func (cfg *ConverterConfig) Template() template.Config {
	return template.Config{
		TemplateName: cfg.TemplateName,
		GroupName:    cfg.GroupName,
		MasterKey:    cfg.MasterKey,
		Tags:         template.ApplicationTags(cfg.Tag),
	}
}

// firstNonEmpty returns the first value that is not blank.
func firstNonEmpty(values []string) (string, bool) {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// WithURL sets URL to the first non-empty value in urls.
func WithURL(urls ...string) ConverterConfigOpt {
	return func(cfg *ConverterConfig) error {
		if v, ok := firstNonEmpty(urls); ok {
			cfg.URL = v
		}
		return nil
	}
}

// WithTemplateName sets TemplateName to the first non-empty value in names.
func WithTemplateName(names ...string) ConverterConfigOpt {
	return func(cfg *ConverterConfig) error {
		if v, ok := firstNonEmpty(names); ok {
			cfg.TemplateName = v
		}
		return nil
	}
}

// WithGroupName sets GroupName to the first non-empty value in names.
func WithGroupName(names ...string) ConverterConfigOpt {
	return func(cfg *ConverterConfig) error {
		if v, ok := firstNonEmpty(names); ok {
			cfg.GroupName = v
		}
		return nil
	}
}

// WithMasterKey sets MasterKey to the first non-empty value in keys.
func WithMasterKey(keys ...string) ConverterConfigOpt {
	return func(cfg *ConverterConfig) error {
		if v, ok := firstNonEmpty(keys); ok {
			cfg.MasterKey = v
		}
		return nil
	}
}

// WithTag sets Tag to the first non-empty value in tags.
func WithTag(tags ...string) ConverterConfigOpt {
	return func(cfg *ConverterConfig) error {
		if v, ok := firstNonEmpty(tags); ok {
			cfg.Tag = v
		}
		return nil
	}
}

// WithOutput sets Output to the first non-empty value in paths.
func WithOutput(paths ...string) ConverterConfigOpt {
	return func(cfg *ConverterConfig) error {
		if v, ok := firstNonEmpty(paths); ok {
			cfg.Output = v
		}
		return nil
	}
}

// WithFormat sets Format to the first non-empty value in formats.
// Returns an error if that value is not a known format.
func WithFormat(formats ...string) ConverterConfigOpt {
	return func(cfg *ConverterConfig) error {
		v, ok := firstNonEmpty(formats)
		if !ok {
			return nil
		}
		format, err := encoder.ParseFormat(v)
		if err != nil {
			return err
		}
		cfg.Format = format
		return nil
	}
}

// WithDeterministicUUIDs enables deterministic identifiers if any value is true.
func WithDeterministicUUIDs(values ...bool) ConverterConfigOpt {
	return func(cfg *ConverterConfig) error {
		for _, v := range values {
			if v {
				cfg.DeterministicUUIDs = true
				break
			}
		}
		return nil
	}
}

// WithUUIDSeed sets UUIDSeed to the first non-empty value in seeds.
func WithUUIDSeed(seeds ...string) ConverterConfigOpt {
	return func(cfg *ConverterConfig) error {
		if v, ok := firstNonEmpty(seeds); ok {
			cfg.UUIDSeed = v
		}
		return nil
	}
}

// WithTimeout sets Timeout to the first positive value in timeouts.
func WithTimeout(timeouts ...time.Duration) ConverterConfigOpt {
	return func(cfg *ConverterConfig) error {
		for _, t := range timeouts {
			if t > 0 {
				cfg.Timeout = t
				break
			}
		}
		return nil
	}
}

// WithRetries sets Retries to the first non-negative value in retries.
// Negative values mean "not set".
func WithRetries(retries ...int) ConverterConfigOpt {
	return func(cfg *ConverterConfig) error {
		for _, r := range retries {
			if r >= 0 {
				cfg.Retries = r
				break
			}
		}
		return nil
	}
}

// WithLogLevel sets LogLevel to the first non-empty value in levels.
func WithLogLevel(levels ...string) ConverterConfigOpt {
	return func(cfg *ConverterConfig) error {
		if v, ok := firstNonEmpty(levels); ok {
			cfg.LogLevel = v
		}
		return nil
	}
}
