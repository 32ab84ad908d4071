package configs

import (
	"testing"
	"time"

	"github.com/sbilibin2017/prometheus2zabbix/internal/encoder"
	"github.com/sbilibin2017/prometheus2zabbix/internal/models"
	"github.com/sbilibin2017/prometheus2zabbix/internal/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConverterConfig(t *testing.T) {
	tests := []struct {
		name     string
		opts     []ConverterConfigOpt
		expected ConverterConfig
	}{
		{
			name: "no options - use defaults",
			opts: nil,
			expected: ConverterConfig{
				URL:          DefaultMetricsURL,
				TemplateName: template.DefaultTemplateName,
				GroupName:    template.DefaultGroupName,
				MasterKey:    template.DefaultMasterKey,
				Format:       encoder.FormatYAML,
				Timeout:      DefaultTimeout,
				Retries:      DefaultRetries,
				LogLevel:     DefaultLogLevel,
			},
		},
		{
			name: "all custom values",
			opts: []ConverterConfigOpt{
				WithURL("https://app:8443/metrics"),
				WithTemplateName("Template App"),
				WithGroupName("Templates/Custom"),
				WithMasterKey("app_raw"),
				WithTag("app"),
				WithOutput("/tmp/app.yaml"),
				WithFormat("json"),
				WithDeterministicUUIDs(true),
				WithUUIDSeed("prod"),
				WithTimeout(30 * time.Second),
				WithRetries(0),
				WithLogLevel("debug"),
			},
			expected: ConverterConfig{
				URL:                "https://app:8443/metrics",
				TemplateName:       "Template App",
				GroupName:          "Templates/Custom",
				MasterKey:          "app_raw",
				Tag:                "app",
				Output:             "/tmp/app.yaml",
				Format:             encoder.FormatJSON,
				DeterministicUUIDs: true,
				UUIDSeed:           "prod",
				Timeout:            30 * time.Second,
				Retries:            0,
				LogLevel:           "debug",
			},
		},
		{
			name: "first valid wins",
			opts: []ConverterConfigOpt{
				WithURL("", "  ", "http://flag:1/metrics", "http://env:2/metrics"),
				WithTemplateName("", "Template Env"),
				WithTimeout(0, -time.Second, 5*time.Second),
				WithRetries(-1, 7),
				WithDeterministicUUIDs(false, false),
				WithFormat("", "yaml"),
			},
			expected: ConverterConfig{
				URL:          "http://flag:1/metrics",
				TemplateName: "Template Env",
				GroupName:    template.DefaultGroupName,
				MasterKey:    template.DefaultMasterKey,
				Format:       encoder.FormatYAML,
				Timeout:      5 * time.Second,
				Retries:      7,
				LogLevel:     DefaultLogLevel,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConverterConfig(tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *cfg)
		})
	}
}

func TestNewConverterConfig_InvalidFormat(t *testing.T) {
	cfg, err := NewConverterConfig(WithFormat("xml"))
	assert.ErrorIs(t, err, encoder.ErrUnknownFormat)
	assert.Nil(t, cfg)
}

func TestConverterConfig_Template(t *testing.T) {
	cfg, err := NewConverterConfig(WithTemplateName("T"), WithMasterKey("raw"), WithTag("svc"))
	require.NoError(t, err)

	assert.Equal(t, template.Config{
		TemplateName: "T",
		GroupName:    template.DefaultGroupName,
		MasterKey:    "raw",
		Tags:         []models.Tag{{Tag: "Application", Value: "svc"}},
	}, cfg.Template())

	cfg, err = NewConverterConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg.Template().Tags)
}
