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
	addr               string
	templateName       string
	masterKey          string
	applicationTag     string
	groupName          string
	format             string
	deterministicUUIDs bool
	uuidSeed           string
	timeout            time.Duration
	configFilePath     string
	logLevel           string
)

func init() {
	registerFlags(pflag.CommandLine)
}

// registerFlags binds the command-line flags to fs.
func registerFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&addr, "address", "a", "", "server address to listen on (default "+configs.DefaultServerAddress+")")
	fs.StringVarP(&templateName, "name", "n", "", "default template name")
	fs.StringVarP(&masterKey, "master-key", "m", "", "default key of the raw data item")
	fs.StringVarP(&applicationTag, "tag", "t", "", "default Application tag value")
	fs.StringVarP(&groupName, "group", "g", "", "default template group name")
	fs.StringVarP(&format, "format", "f", "", "default output format: yaml or json")
	fs.BoolVar(&deterministicUUIDs, "deterministic-uuids", false, "derive identifiers from the template content")
	fs.StringVar(&uuidSeed, "uuid-seed", "", "seed for deterministic identifiers")
	fs.DurationVar(&timeout, "timeout", configs.DefaultTimeout, "metrics fetch timeout")
	fs.StringVarP(&configFilePath, "config", "c", "", "path to JSON config file")
	fs.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// fileConfig is the JSON config file layout.
type fileConfig struct {
	Address      *string `json:"address,omitempty"`
	TemplateName *string `json:"name,omitempty"`
	GroupName    *string `json:"group,omitempty"`
	MasterKey    *string `json:"master_key,omitempty"`
	Tag          *string `json:"tag,omitempty"`
	Format       *string `json:"format,omitempty"`
	LogLevel     *string `json:"log_level,omitempty"`
}

func parseFlags() (*configs.ServerConfig, error) {
	pflag.Parse()
	return loadConfig(pflag.CommandLine)
}

// loadConfig resolves the server configuration. Flags win over the
// environment, which wins over the config file.
func loadConfig(fs *pflag.FlagSet) (*configs.ServerConfig, error) {
	if len(fs.Args()) > 0 {
		return nil, errors.New("unknown flags or arguments are provided")
	}

	path := configFilePath
	if path == "" {
		path = os.Getenv("CONFIG")
	}

	var file fileConfig
	if path != "" {
		cfgBytes, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := json.Unmarshal(cfgBytes, &file); err != nil {
			return nil, fmt.Errorf("error parsing config JSON: %w", err)
		}
	}

	var flagTimeout time.Duration
	if fs.Changed("timeout") {
		flagTimeout = timeout
	}

	return configs.NewServerConfig(
		configs.WithAddress(addr, os.Getenv("ADDRESS"), deref(file.Address)),
		configs.WithConverter(
			configs.WithTemplateName(templateName, os.Getenv("TEMPLATE_NAME"), deref(file.TemplateName)),
			configs.WithGroupName(groupName, os.Getenv("TEMPLATE_GROUP"), deref(file.GroupName)),
			configs.WithMasterKey(masterKey, os.Getenv("MASTER_KEY"), deref(file.MasterKey)),
			configs.WithTag(applicationTag, os.Getenv("APPLICATION_TAG"), deref(file.Tag)),
			configs.WithFormat(format, os.Getenv("FORMAT"), deref(file.Format)),
			configs.WithDeterministicUUIDs(deterministicUUIDs),
			configs.WithUUIDSeed(uuidSeed),
			configs.WithTimeout(flagTimeout),
			configs.WithLogLevel(logLevel, os.Getenv("LOG_LEVEL"), deref(file.LogLevel)),
		),
	)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
