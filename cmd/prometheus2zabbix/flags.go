package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sbilibin2017/prometheus2zabbix/internal/configs"
	"github.com/spf13/pflag"
)

var (
	metricsURL         string
	templateName       string
	masterKey          string
	applicationTag     string
	groupName          string
	outputPath         string
	format             string
	deterministicUUIDs bool
	uuidSeed           string
	timeout            time.Duration
	retries            int
	configFilePath     string
	logLevel           string
)

func init() {
	registerFlags(pflag.CommandLine)
}

// registerFlags binds the command-line flags to fs.
func registerFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&metricsURL, "url", "u", "", "Prometheus metrics endpoint (default "+configs.DefaultMetricsURL+")")
	fs.StringVarP(&templateName, "name", "n", "", "template name")
	fs.StringVarP(&masterKey, "master-key", "m", "", "key of the raw data item")
	fs.StringVarP(&applicationTag, "tag", "t", "", "Application tag value attached to items")
	fs.StringVarP(&groupName, "group", "g", "", "template group name")
	fs.StringVarP(&outputPath, "output", "o", "", "output file, stdout when empty")
	fs.StringVarP(&format, "format", "f", "", "output format: yaml or json")
	fs.BoolVar(&deterministicUUIDs, "deterministic-uuids", false, "derive identifiers from the template content")
	fs.StringVar(&uuidSeed, "uuid-seed", "", "seed for deterministic identifiers")
	fs.DurationVar(&timeout, "timeout", configs.DefaultTimeout, "metrics fetch timeout")
	fs.IntVar(&retries, "retries", configs.DefaultRetries, "metrics fetch retry attempts")
	fs.StringVarP(&configFilePath, "config", "c", "", "path to JSON config file")
	fs.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// fileConfig is the JSON config file layout.
type fileConfig struct {
	URL                *string `json:"url,omitempty"`
	TemplateName       *string `json:"name,omitempty"`
	GroupName          *string `json:"group,omitempty"`
	MasterKey          *string `json:"master_key,omitempty"`
	Tag                *string `json:"tag,omitempty"`
	Output             *string `json:"output,omitempty"`
	Format             *string `json:"format,omitempty"`
	DeterministicUUIDs *bool   `json:"deterministic_uuids,omitempty"`
	UUIDSeed           *string `json:"uuid_seed,omitempty"`
	Timeout            *string `json:"timeout,omitempty"`
	Retries            *int    `json:"retries,omitempty"`
	LogLevel           *string `json:"log_level,omitempty"`
}

// readFileConfig loads the JSON config file at path.
func readFileConfig(path string) (*fileConfig, error) {
	cfgBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	var cfg fileConfig
	if err := json.Unmarshal(cfgBytes, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config JSON: %w", err)
	}
	return &cfg, nil
}

// deref returns the value behind p, or the zero value.
func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// explicit returns v when the flag name was set on the command line.
func explicit[T any](fs *pflag.FlagSet, name string, v T) T {
	var zero T
	if fs.Changed(name) {
		return v
	}
	return zero
}

func parseFlags() (*configs.ConverterConfig, error) {
	pflag.Parse()
	return loadConfig(pflag.CommandLine)
}

// loadConfig resolves the converter configuration from parsed flags,
// environment variables and the optional config file. Flags given
// explicitly win over the environment, which wins over the file.
func loadConfig(fs *pflag.FlagSet) (*configs.ConverterConfig, error) {
	if len(fs.Args()) > 0 {
		return nil, errors.New("unknown flags or arguments are provided")
	}

	path := explicit(fs, "config", configFilePath)
	if path == "" {
		path = os.Getenv("CONFIG")
	}
	file := &fileConfig{}
	if path != "" {
		var err error
		if file, err = readFileConfig(path); err != nil {
			return nil, err
		}
	}

	var fileTimeout time.Duration
	if file.Timeout != nil {
		d, err := time.ParseDuration(*file.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout in config file: %w", err)
		}
		fileTimeout = d
	}

	flagRetries := -1
	if fs.Changed("retries") {
		flagRetries = retries
	}
	deterministic := deref(file.DeterministicUUIDs)
	if fs.Changed("deterministic-uuids") {
		deterministic = deterministicUUIDs
	}

	fileRetries := -1
	if file.Retries != nil {
		fileRetries = *file.Retries
	}

	return configs.NewConverterConfig(
		configs.WithURL(metricsURL, os.Getenv("METRICS_URL"), deref(file.URL)),
		configs.WithTemplateName(templateName, os.Getenv("TEMPLATE_NAME"), deref(file.TemplateName)),
		configs.WithGroupName(groupName, os.Getenv("TEMPLATE_GROUP"), deref(file.GroupName)),
		configs.WithMasterKey(masterKey, os.Getenv("MASTER_KEY"), deref(file.MasterKey)),
		configs.WithTag(applicationTag, os.Getenv("APPLICATION_TAG"), deref(file.Tag)),
		configs.WithOutput(outputPath, os.Getenv("OUTPUT"), deref(file.Output)),
		configs.WithFormat(format, os.Getenv("FORMAT"), deref(file.Format)),
		configs.WithDeterministicUUIDs(deterministic),
		configs.WithUUIDSeed(uuidSeed, deref(file.UUIDSeed)),
		configs.WithTimeout(explicit(fs, "timeout", timeout), fileTimeout),
		configs.WithRetries(flagRetries, fileRetries),
		configs.WithLogLevel(logLevel, os.Getenv("LOG_LEVEL"), deref(file.LogLevel)),
	)
}
