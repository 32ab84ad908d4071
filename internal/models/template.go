package models

// Zabbix export format version produced by the builder.
const ExportVersion = "6.0"

// Item types.
const (
	ItemTypeHTTPAgent = "HTTP_AGENT" // Item polls an HTTP endpoint.
	ItemTypeDependent = "DEPENDENT"  // Item derives its value from a master item.
)

// Value types.
const (
	ValueTypeFloat = "FLOAT"
	ValueTypeText  = "TEXT"
)

// Preprocessing step types.
const (
	PreprocessingPrometheusPattern = "PROMETHEUS_PATTERN"
	PreprocessingPrometheusToJSON  = "PROMETHEUS_TO_JSON"
)

// Export is the root of a Zabbix template export document.
type Export struct {
	ZabbixExport ZabbixExport `yaml:"zabbix_export" json:"zabbix_export"`
}

// ZabbixExport holds the exported groups and templates.
type ZabbixExport struct {
	Version   string      `yaml:"version" json:"version"`
	Groups    []Group     `yaml:"groups" json:"groups"`
	Templates []*Template `yaml:"templates" json:"templates"`
}

// Group is a template group.
type Group struct {
	UUID string `yaml:"uuid" json:"uuid"`
	Name string `yaml:"name" json:"name"`
}

// GroupRef links a template to a group by name.
type GroupRef struct {
	Name string `yaml:"name" json:"name"`
}

// Template is a single Zabbix template.
type Template struct {
	UUID           string           `yaml:"uuid" json:"uuid"`
	Template       string           `yaml:"template" json:"template"`
	Name           string           `yaml:"name" json:"name"`
	Groups         []GroupRef       `yaml:"groups" json:"groups"`
	Items          []*Item          `yaml:"items" json:"items"`
	DiscoveryRules []*DiscoveryRule `yaml:"discovery_rules" json:"discovery_rules"`
}

// Item is a plain template item. The raw data item and every unlabeled
// metric become one.
type Item struct {
	UUID          string          `yaml:"uuid" json:"uuid"`
	Name          string          `yaml:"name" json:"name"`
	Type          string          `yaml:"type" json:"type"`
	Key           string          `yaml:"key" json:"key"`
	Delay         string          `yaml:"delay,omitempty" json:"delay,omitempty"`
	History       string          `yaml:"history,omitempty" json:"history,omitempty"`
	Trends        string          `yaml:"trends,omitempty" json:"trends,omitempty"`
	ValueType     string          `yaml:"value_type" json:"value_type"`
	Description   string          `yaml:"description,omitempty" json:"description,omitempty"`
	URL           string          `yaml:"url,omitempty" json:"url,omitempty"`
	Preprocessing []Preprocessing `yaml:"preprocessing,omitempty" json:"preprocessing,omitempty"`
	MasterItem    *MasterItem     `yaml:"master_item,omitempty" json:"master_item,omitempty"`
	Tags          Tags            `yaml:"tags,omitempty" json:"tags,omitzero"`
}

// ItemPrototype is an item definition expanded once per discovered entity.
type ItemPrototype Item

// DiscoveryRule enumerates the label combinations of a labeled metric.
type DiscoveryRule struct {
	UUID           string           `yaml:"uuid" json:"uuid"`
	Name           string           `yaml:"name" json:"name"`
	Type           string           `yaml:"type" json:"type"`
	Key            string           `yaml:"key" json:"key"`
	Delay          string           `yaml:"delay,omitempty" json:"delay,omitempty"`
	MasterItem     *MasterItem      `yaml:"master_item,omitempty" json:"master_item,omitempty"`
	Preprocessing  []Preprocessing  `yaml:"preprocessing,omitempty" json:"preprocessing,omitempty"`
	LLDMacroPaths  []MacroPath      `yaml:"lld_macro_paths" json:"lld_macro_paths"`
	ItemPrototypes []*ItemPrototype `yaml:"item_prototypes" json:"item_prototypes"`
}

// MacroPath maps an LLD macro to a JSONPath in the discovered data.
type MacroPath struct {
	LLDMacro string `yaml:"lld_macro" json:"lld_macro"`
	Path     string `yaml:"path" json:"path"`
}

// Preprocessing is a single preprocessing step.
type Preprocessing struct {
	Type       string   `yaml:"type" json:"type"`
	Parameters []string `yaml:"parameters" json:"parameters"`
}

// MasterItem references the item a dependent item reads from. It names the
// master by key only.
type MasterItem struct {
	Key string `yaml:"key" json:"key"`
}

// Tags is the tag list of an item. A nil list is left out of the export,
// an empty one is written as [].
type Tags []Tag

// IsZero reports whether t is nil. Both encoders consult it when omitting.
func (t Tags) IsZero() bool {
	return t == nil
}

// Tag is a name/value tag attached to items.
type Tag struct {
	Tag   string `yaml:"tag" json:"tag"`
	Value string `yaml:"value" json:"value"`
}

// Template returns the single template of the export, or nil.
func (e *Export) Template() *Template {
	if e == nil || len(e.ZabbixExport.Templates) == 0 {
		return nil
	}
	return e.ZabbixExport.Templates[0]
}
