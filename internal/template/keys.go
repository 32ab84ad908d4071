package template

import "strings"

// Placeholder the monitoring server resolves to the host the template is
// linked to.
const HostPlaceholder = "{HOST.NAME}"

// Macros every discovery rule defines.
const (
	MacroHelp   = "{#HELP}"
	MacroMetric = "{#METRIC}"
)

// MacroName returns the LLD macro that carries the value of label.
func MacroName(label string) string {
	return "{#" + strings.ToUpper(label) + "}"
}

// MacroPath returns the JSONPath of label inside a PROMETHEUS_TO_JSON entry.
func MacroPath(label string) string {
	return `$.labels["` + label + `"]`
}

// LabelFilter joins label="{#LABEL}" pairs in label order.
func LabelFilter(labels []string) string {
	pairs := make([]string, 0, len(labels))
	for _, l := range labels {
		pairs = append(pairs, l+`="`+MacroName(l)+`"`)
	}
	return strings.Join(pairs, ",")
}

// ItemKey builds the key of an item prototype: name[l1="{#L1}",l2="{#L2}"].
func ItemKey(name string, labels []string) string {
	return name + "[" + LabelFilter(labels) + "]"
}

// DiscoveryKey builds the key of the discovery rule for a metric.
func DiscoveryKey(name string) string {
	return name + ".discovery"
}
