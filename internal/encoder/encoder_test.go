package encoder

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sbilibin2017/prometheus2zabbix/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testExport() *models.Export {
	return &models.Export{
		ZabbixExport: models.ZabbixExport{
			Version: models.ExportVersion,
			Groups:  []models.Group{{UUID: "g1", Name: "Templates/Application"}},
			Templates: []*models.Template{{
				UUID:     "t1",
				Template: "Template My Application",
				Name:     "Template My Application",
				Groups:   []models.GroupRef{{Name: "Templates/Application"}},
				Items: []*models.Item{{
					UUID:      "i1",
					Name:      "http_raw_prometheus_metrics",
					Type:      models.ItemTypeHTTPAgent,
					Key:       "http_raw_prometheus_metrics",
					History:   "0",
					Trends:    "0",
					ValueType: models.ValueTypeText,
					URL:       "http://{HOST.NAME}:9000/metrics",
				}},
				DiscoveryRules: []*models.DiscoveryRule{{
					UUID:       "d1",
					Name:       "Discovery http_requests_total",
					Type:       models.ItemTypeDependent,
					Key:        "http_requests_total.discovery",
					Delay:      "0",
					MasterItem: &models.MasterItem{Key: "http_raw_prometheus_metrics"},
					Preprocessing: []models.Preprocessing{{
						Type:       models.PreprocessingPrometheusToJSON,
						Parameters: []string{"http_requests_total"},
					}},
					LLDMacroPaths: []models.MacroPath{
						{LLDMacro: "{#HELP}", Path: "$.help"},
						{LLDMacro: "{#METRIC}", Path: "$.name"},
						{LLDMacro: "{#CODE}", Path: `$.labels["code"]`},
					},
					ItemPrototypes: []*models.ItemPrototype{{
						UUID:      "p1",
						Name:      `http_requests_total[code="{#CODE}"]`,
						Type:      models.ItemTypeDependent,
						Key:       `http_requests_total[code="{#CODE}"]`,
						Delay:     "0",
						Trends:    "0",
						ValueType: models.ValueTypeFloat,
						Preprocessing: []models.Preprocessing{{
							Type:       models.PreprocessingPrometheusPattern,
							Parameters: []string{`{#METRIC}{code="{#CODE}"}`, "value", ""},
						}},
						MasterItem: &models.MasterItem{Key: "http_raw_prometheus_metrics"},
						Tags:       []models.Tag{{Tag: "Application", Value: "app"}},
					}},
				}},
			}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{input: "yaml", expected: FormatYAML},
		{input: "YML", expected: FormatYAML},
		{input: " json ", expected: FormatJSON},
		{input: "xml", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "application/yaml", FormatYAML.ContentType())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
}

func TestEncode_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testExport(), FormatYAML))

	out := buf.String()
	assert.Contains(t, out, "zabbix_export:\n  version: \"6.0\"\n")
	assert.Contains(t, out, "discovery_rules:")
	assert.Contains(t, out, "lld_macro_paths:")
	assert.Contains(t, out, "item_prototypes:")
	assert.Contains(t, out, "master_item:")
	assert.Contains(t, out, "type: HTTP_AGENT")
	assert.Contains(t, out, "type: PROMETHEUS_TO_JSON")

	var decoded models.Export
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testExport(), &decoded)
}

func TestEncode_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testExport(), FormatJSON))

	assert.Contains(t, buf.String(), `"url": "http://{HOST.NAME}:9000/metrics"`)
	assert.Contains(t, buf.String(), `"key": "http_requests_total[code=\"{#CODE}\"]"`)

	var decoded models.Export
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testExport(), &decoded)
}

func TestEncode_Tags(t *testing.T) {
	export := &models.Export{
		ZabbixExport: models.ZabbixExport{
			Version: models.ExportVersion,
			Templates: []*models.Template{{
				Items: []*models.Item{
					{Key: "http_raw_prometheus_metrics", Type: models.ItemTypeHTTPAgent},
					{Key: "up", Type: models.ItemTypeDependent, Tags: models.Tags{}},
				},
			}},
		},
	}

	tests := []struct {
		format   Format
		wantTags string
	}{
		{format: FormatYAML, wantTags: "tags: []"},
		{format: FormatJSON, wantTags: `"tags": []`},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, export, tt.format))

			out := buf.String()
			assert.Contains(t, out, tt.wantTags)
			assert.Equal(t, 1, strings.Count(out, "tags"), "only the item with a tag list writes one")
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, testExport(), Format("toml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Zero(t, buf.Len())
}
