package schema

import (
	"errors"
	"fmt"

	dto "github.com/prometheus/client_model/go"
	"github.com/sbilibin2017/prometheus2zabbix/internal/models"
)

// ErrEmptyFamily is returned for a metric family without samples.
var ErrEmptyFamily = errors.New("metric family has no samples")

// Label names the text format adds to histogram and summary samples.
const (
	BucketLabel   = "le"
	QuantileLabel = "quantile"
)

// FromMetricFamilies converts parsed families into schemas, keeping their
// order. Name and labels come from the first sample of each family only.
func FromMetricFamilies(families []*dto.MetricFamily) ([]models.MetricFamilySchema, error) {
	schemas := make([]models.MetricFamilySchema, 0, len(families))
	for _, family := range families {
		s, err := FromMetricFamily(family)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

// FromMetricFamily converts a single family.
func FromMetricFamily(family *dto.MetricFamily) (models.MetricFamilySchema, error) {
	if len(family.GetMetric()) == 0 {
		return models.MetricFamilySchema{}, fmt.Errorf("%w: %s", ErrEmptyFamily, family.GetName())
	}

	first := family.GetMetric()[0]
	labels := make([]string, 0, len(first.GetLabel())+1)
	for _, lp := range first.GetLabel() {
		labels = append(labels, lp.GetName())
	}

	s := models.MetricFamilySchema{
		Type: metricType(family.GetType()),
		Name: family.GetName(),
		Help: family.GetHelp(),
	}

	// The parser folds le and quantile into the sample values, so their
	// position in the text is gone and they always follow the other labels.
	switch family.GetType() {
	case dto.MetricType_HISTOGRAM, dto.MetricType_GAUGE_HISTOGRAM:
		if len(first.GetHistogram().GetBucket()) > 0 {
			s.Name += "_bucket"
			labels = append(labels, BucketLabel)
		} else {
			s.Name += "_count"
		}
	case dto.MetricType_SUMMARY:
		if len(first.GetSummary().GetQuantile()) > 0 {
			labels = append(labels, QuantileLabel)
		} else {
			s.Name += "_count"
		}
	}

	if len(labels) > 0 {
		s.LabelNames = labels
	}
	return s, nil
}

func metricType(t dto.MetricType) models.MetricType {
	switch t {
	case dto.MetricType_COUNTER:
		return models.Counter
	case dto.MetricType_GAUGE:
		return models.Gauge
	case dto.MetricType_HISTOGRAM, dto.MetricType_GAUGE_HISTOGRAM:
		return models.Histogram
	case dto.MetricType_SUMMARY:
		return models.Summary
	default:
		return models.Untyped
	}
}
