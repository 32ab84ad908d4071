package template

import "github.com/sbilibin2017/prometheus2zabbix/internal/models"

// Defaults applied when a Config field is left empty.
const (
	DefaultTemplateName = "Template My Application"
	DefaultGroupName    = "Templates/Application"
	DefaultMasterKey    = "http_raw_prometheus_metrics"
	ApplicationTagName  = "Application"
)

// Config describes the template a Builder produces.
type Config struct {
	TemplateName string       // Display name of the template.
	GroupName    string       // Template group.
	MasterKey    string       // Key of the raw data item.
	Tags         []models.Tag // Tags attached to every generated item and prototype.
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		TemplateName: DefaultTemplateName,
		GroupName:    DefaultGroupName,
		MasterKey:    DefaultMasterKey,
	}
}

// ApplicationTags returns the single Application tag for value, or no tags
// when value is empty.
func ApplicationTags(value string) []models.Tag {
	if value == "" {
		return nil
	}
	return []models.Tag{{Tag: ApplicationTagName, Value: value}}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TemplateName == "" {
		c.TemplateName = d.TemplateName
	}
	if c.GroupName == "" {
		c.GroupName = d.GroupName
	}
	if c.MasterKey == "" {
		c.MasterKey = d.MasterKey
	}
	return c
}
