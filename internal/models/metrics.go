package models

// Metric family types as reported by the exposition format.
const (
	Counter   MetricType = "counter"   // Counter represents a cumulative metric type.
	Gauge     MetricType = "gauge"     // Gauge represents a value at a specific point in time.
	Histogram MetricType = "histogram" // Histogram represents bucketed observations.
	Summary   MetricType = "summary"   // Summary represents quantile observations.
	Untyped   MetricType = "untyped"   // Untyped represents a metric without type information.
)

// MetricType is the type of a metric family.
type MetricType string

// MetricFamilySchema describes one metric family as observed through its
// first sample.
type MetricFamilySchema struct {
	Type       MetricType `json:"type"`   // Family type.
	Name       string     `json:"name"`   // Name of the representative sample.
	Help       string     `json:"help"`   // Help text of the family.
	LabelNames []string   `json:"labels"` // Label names of the first sample, in exposition order.
}

// IsLabeled reports whether the family carries at least one label.
func (s MetricFamilySchema) IsLabeled() bool {
	return len(s.LabelNames) > 0
}
