package schema

import (
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exposition = `# HELP http_requests_total count
# TYPE http_requests_total counter
http_requests_total{method="get",code="200"} 10
http_requests_total{method="post",code="500",handler="x"} 1
# HELP up target up
# TYPE up gauge
up 1
# HELP rpc_duration_seconds rpc latency
# TYPE rpc_duration_seconds summary
rpc_duration_seconds{service="a",quantile="0.5"} 1
rpc_duration_seconds_sum{service="a"} 2
rpc_duration_seconds_count{service="a"} 3
# TYPE request_size_bytes histogram
request_size_bytes_bucket{path="/",le="1"} 1
request_size_bytes_bucket{path="/",le="+Inf"} 2
request_size_bytes_sum{path="/"} 3
request_size_bytes_count{path="/"} 2
untyped_metric 7
`

func familyNames(families []*dto.MetricFamily) []string {
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	return names
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:  "typed families keep text order",
			input: exposition,
			expected: []string{
				"http_requests_total",
				"up",
				"rpc_duration_seconds",
				"request_size_bytes",
				"untyped_metric",
			},
		},
		{
			name:     "untyped samples are not sorted",
			input:    "zeta 1\nalpha 2\nmiddle{a=\"b\"} 3\n",
			expected: []string{"zeta", "alpha", "middle"},
		},
		{
			name:     "whitespace and comments",
			input:    "\n# a comment\n  # TYPE b gauge\nb 1\n# HELP a doc\na {x=\"y\"} 2\n",
			expected: []string{"b", "a"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "quoted names inside braces keep text order",
			input:    "{\"z.metric\"} 1\n{\"a.metric\"} 2\n",
			expected: []string{"z.metric", "a.metric"},
		},
		{
			name:     "quoted names with labels and metadata",
			input:    "# TYPE \"y.total\" counter\n{\"y.total\",code=\"200\"} 1\n{\"b.gauge\",zone=\"eu\"} 2\n",
			expected: []string{"y.total", "b.gauge"},
		},
		{
			name:     "help for a metric without samples is ignored",
			input:    "# HELP ghost nothing here\nreal 1\n",
			expected: []string{"real"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			families, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, familyNames(families))
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse(strings.NewReader("metric{ 1\n"))
	assert.Error(t, err)
}

func TestLineMetricName(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{line: "# HELP foo some help", expected: "foo"},
		{line: "  #  TYPE   foo counter", expected: "foo"},
		{line: "# just a comment", expected: ""},
		{line: "#", expected: ""},
		{line: "foo_bucket{le=\"1\"} 2", expected: "foo_bucket"},
		{line: "foo 1", expected: "foo"},
		{line: "foo\t1", expected: "foo"},
		{line: "   ", expected: ""},
		{line: `# HELP "my.metric" quoted`, expected: "my.metric"},
		{line: "#\tTYPE\tfoo gauge", expected: "foo"},
		{line: "# HELP", expected: ""},
		{line: `{"z.metric"} 1`, expected: "z.metric"},
		{line: `{ "with space", le="1"} 1`, expected: "with space"},
		{line: `{"esc\"aped"} 1`, expected: `esc"aped`},
		{line: `{job="x"} 1`, expected: ""},
		{line: `{"unterminated} 1`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, lineMetricName(tt.line))
		})
	}
}
