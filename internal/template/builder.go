// Package template maps metric family schemas to a Zabbix template export.
package template

import (
	"net/url"

	"github.com/sbilibin2017/prometheus2zabbix/internal/identifier"
	"github.com/sbilibin2017/prometheus2zabbix/internal/models"
)

// Builder assembles template exports.
type Builder struct {
	cfg Config
	gen identifier.Generator
}

// NewBuilder creates a Builder. Empty Config fields fall back to DefaultConfig.
func NewBuilder(cfg Config, gen identifier.Generator) *Builder {
	return &Builder{
		cfg: cfg.withDefaults(),
		gen: gen,
	}
}

// Build returns the template export for families. Unlabeled families become
// items, labeled families become discovery rules; input order is kept.
func (b *Builder) Build(families []models.MetricFamilySchema, source *url.URL) *models.Export {
	tmpl := &models.Template{
		UUID:           b.gen.Next("template", b.cfg.TemplateName),
		Template:       b.cfg.TemplateName,
		Name:           b.cfg.TemplateName,
		Groups:         []models.GroupRef{{Name: b.cfg.GroupName}},
		Items:          []*models.Item{b.buildRawItem(source)},
		DiscoveryRules: []*models.DiscoveryRule{},
	}

	for _, family := range families {
		if family.IsLabeled() {
			tmpl.DiscoveryRules = append(tmpl.DiscoveryRules, b.buildDiscoveryRule(family))
			continue
		}
		tmpl.Items = append(tmpl.Items, b.buildItem(family))
	}

	return &models.Export{
		ZabbixExport: models.ZabbixExport{
			Version: models.ExportVersion,
			Groups: []models.Group{{
				UUID: b.gen.Next("group", b.cfg.GroupName),
				Name: b.cfg.GroupName,
			}},
			Templates: []*models.Template{tmpl},
		},
	}
}

// buildRawItem creates the HTTP agent item holding the unparsed payload.
func (b *Builder) buildRawItem(source *url.URL) *models.Item {
	return &models.Item{
		UUID:      b.gen.Next("item", b.cfg.MasterKey),
		Name:      b.cfg.MasterKey,
		Type:      models.ItemTypeHTTPAgent,
		Key:       b.cfg.MasterKey,
		History:   "0",
		Trends:    "0",
		ValueType: models.ValueTypeText,
		URL:       PlaceholderURL(source),
	}
}

func (b *Builder) buildItem(family models.MetricFamilySchema) *models.Item {
	return &models.Item{
		UUID:        b.gen.Next("item", family.Name),
		Name:        family.Name,
		Type:        models.ItemTypeDependent,
		Key:         family.Name,
		Delay:       "0",
		ValueType:   models.ValueTypeFloat,
		Description: family.Help,
		Preprocessing: []models.Preprocessing{{
			Type:       models.PreprocessingPrometheusPattern,
			Parameters: []string{family.Name, "value", ""},
		}},
		MasterItem: b.masterItem(),
		Tags:       b.tags(),
	}
}

func (b *Builder) buildDiscoveryRule(family models.MetricFamilySchema) *models.DiscoveryRule {
	key := DiscoveryKey(family.Name)

	macros := make([]models.MacroPath, 0, len(family.LabelNames)+2)
	macros = append(macros,
		models.MacroPath{LLDMacro: MacroHelp, Path: "$.help"},
		models.MacroPath{LLDMacro: MacroMetric, Path: "$.name"},
	)
	for _, label := range family.LabelNames {
		macros = append(macros, models.MacroPath{
			LLDMacro: MacroName(label),
			Path:     MacroPath(label),
		})
	}

	return &models.DiscoveryRule{
		UUID:       b.gen.Next("discovery_rule", key),
		Name:       "Discovery " + family.Name,
		Type:       models.ItemTypeDependent,
		Key:        key,
		Delay:      "0",
		MasterItem: b.masterItem(),
		Preprocessing: []models.Preprocessing{{
			Type:       models.PreprocessingPrometheusToJSON,
			Parameters: []string{family.Name},
		}},
		LLDMacroPaths:  macros,
		ItemPrototypes: []*models.ItemPrototype{b.buildItemPrototype(family)},
	}
}

func (b *Builder) buildItemPrototype(family models.MetricFamilySchema) *models.ItemPrototype {
	key := ItemKey(family.Name, family.LabelNames)
	return &models.ItemPrototype{
		UUID:        b.gen.Next("item_prototype", key),
		Name:        key,
		Type:        models.ItemTypeDependent,
		Key:         key,
		Delay:       "0",
		Trends:      "0",
		ValueType:   models.ValueTypeFloat,
		Description: MacroHelp,
		Preprocessing: []models.Preprocessing{{
			Type:       models.PreprocessingPrometheusPattern,
			Parameters: []string{MacroMetric + "{" + LabelFilter(family.LabelNames) + "}", "value", ""},
		}},
		MasterItem: b.masterItem(),
		Tags:       b.tags(),
	}
}

// masterItem returns a fresh reference so that no two nodes share a pointer.
func (b *Builder) masterItem() *models.MasterItem {
	return &models.MasterItem{Key: b.cfg.MasterKey}
}

// tags returns a fresh tag list; generated items always carry one, even
// when it is empty.
func (b *Builder) tags() models.Tags {
	return append(models.Tags{}, b.cfg.Tags...)
}
