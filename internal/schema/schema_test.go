package schema

import (
	"errors"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/sbilibin2017/prometheus2zabbix/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

func TestFromMetricFamilies_Exposition(t *testing.T) {
	families, err := Parse(strings.NewReader(exposition))
	require.NoError(t, err)

	schemas, err := FromMetricFamilies(families)
	require.NoError(t, err)

	assert.Equal(t, []models.MetricFamilySchema{
		{
			Type:       models.Counter,
			Name:       "http_requests_total",
			Help:       "count",
			LabelNames: []string{"method", "code"},
		},
		{
			Type: models.Gauge,
			Name: "up",
			Help: "target up",
		},
		{
			Type:       models.Summary,
			Name:       "rpc_duration_seconds",
			Help:       "rpc latency",
			LabelNames: []string{"service", "quantile"},
		},
		{
			Type:       models.Histogram,
			Name:       "request_size_bytes_bucket",
			LabelNames: []string{"path", "le"},
		},
		{
			Type: models.Untyped,
			Name: "untyped_metric",
		},
	}, schemas)
}

func TestFromMetricFamily(t *testing.T) {
	tests := []struct {
		name     string
		family   *dto.MetricFamily
		expected models.MetricFamilySchema
	}{
		{
			name: "summary without quantiles",
			family: &dto.MetricFamily{
				Name: proto.String("gc_duration_seconds"),
				Help: proto.String("gc"),
				Type: dto.MetricType_SUMMARY.Enum(),
				Metric: []*dto.Metric{{
					Summary: &dto.Summary{
						SampleCount: proto.Uint64(3),
						SampleSum:   proto.Float64(1.5),
					},
				}},
			},
			expected: models.MetricFamilySchema{
				Type: models.Summary,
				Name: "gc_duration_seconds_count",
				Help: "gc",
			},
		},
		{
			name: "histogram without buckets",
			family: &dto.MetricFamily{
				Name: proto.String("latency_seconds"),
				Type: dto.MetricType_HISTOGRAM.Enum(),
				Metric: []*dto.Metric{{
					Label: []*dto.LabelPair{
						{Name: proto.String("route"), Value: proto.String("/")},
					},
					Histogram: &dto.Histogram{
						SampleCount: proto.Uint64(1),
						SampleSum:   proto.Float64(0.2),
					},
				}},
			},
			expected: models.MetricFamilySchema{
				Type:       models.Histogram,
				Name:       "latency_seconds_count",
				LabelNames: []string{"route"},
			},
		},
		{
			name: "gauge histogram is reported as histogram",
			family: &dto.MetricFamily{
				Name: proto.String("queue_wait"),
				Type: dto.MetricType_GAUGE_HISTOGRAM.Enum(),
				Metric: []*dto.Metric{{
					Histogram: &dto.Histogram{
						Bucket: []*dto.Bucket{
							{UpperBound: proto.Float64(1), CumulativeCount: proto.Uint64(1)},
						},
					},
				}},
			},
			expected: models.MetricFamilySchema{
				Type:       models.Histogram,
				Name:       "queue_wait_bucket",
				LabelNames: []string{"le"},
			},
		},
		{
			name: "only the first sample is observed",
			family: &dto.MetricFamily{
				Name: proto.String("jobs"),
				Type: dto.MetricType_GAUGE.Enum(),
				Metric: []*dto.Metric{
					{
						Label: []*dto.LabelPair{
							{Name: proto.String("queue"), Value: proto.String("a")},
						},
						Gauge: &dto.Gauge{Value: proto.Float64(1)},
					},
					{
						Label: []*dto.LabelPair{
							{Name: proto.String("queue"), Value: proto.String("b")},
							{Name: proto.String("worker"), Value: proto.String("w1")},
						},
						Gauge: &dto.Gauge{Value: proto.Float64(2)},
					},
				},
			},
			expected: models.MetricFamilySchema{
				Type:       models.Gauge,
				Name:       "jobs",
				LabelNames: []string{"queue"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FromMetricFamily(tt.family)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestFromMetricFamilies_EmptyFamily(t *testing.T) {
	families := []*dto.MetricFamily{
		{
			Name:   proto.String("ok"),
			Type:   dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(1)}}},
		},
		{
			Name: proto.String("broken"),
			Type: dto.MetricType_GAUGE.Enum(),
		},
	}

	schemas, err := FromMetricFamilies(families)
	assert.True(t, errors.Is(err, ErrEmptyFamily))
	assert.Contains(t, err.Error(), "broken")
	assert.Nil(t, schemas)
}

func TestFromMetricFamilies_SyntheticLabelsLast(t *testing.T) {
	input := "# TYPE s summary\n" +
		"s{quantile=\"0.5\",svc=\"a\"} 1\n" +
		"s_count{svc=\"a\"} 1\n" +
		"# TYPE h histogram\n" +
		"h_bucket{le=\"+Inf\",path=\"/\"} 1\n" +
		"h_count{path=\"/\"} 1\n"

	families, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	schemas, err := FromMetricFamilies(families)
	require.NoError(t, err)
	require.Len(t, schemas, 2)

	assert.Equal(t, []string{"svc", QuantileLabel}, schemas[0].LabelNames)
	assert.Equal(t, []string{"path", BucketLabel}, schemas[1].LabelNames)
}
