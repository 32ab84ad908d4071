// Package schema turns Prometheus exposition text into metric family schemas.
package schema

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
)

// Sample name suffixes the text format adds to histogram and summary families.
var sampleSuffixes = []string{"_bucket", "_count", "_sum", "_created", "_gcount", "_gsum"}

// Parse parses exposition text and returns its metric families in the order
// in which they first appear in the text.
func Parse(r io.Reader) ([]*dto.MetricFamily, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read metrics: %w", err)
	}

	parser := expfmt.NewTextParser(model.UTF8Validation)
	byName, err := parser.TextToMetricFamilies(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse metrics: %w", err)
	}

	families := make([]*dto.MetricFamily, 0, len(byName))
	for _, name := range appearanceOrder(data, byName) {
		families = append(families, byName[name])
	}
	return families, nil
}

// appearanceOrder lists the keys of byName ordered by the first line that
// mentions each family. Families that cannot be located in the text follow
// in name order.
func appearanceOrder(data []byte, byName map[string]*dto.MetricFamily) []string {
	order := make([]string, 0, len(byName))
	seen := make(map[string]bool, len(byName))

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		name := familyName(lineMetricName(scanner.Text()), byName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		order = append(order, name)
	}

	var rest []string
	for name := range byName {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(order, rest...)
}

// lineMetricName extracts the metric name a text format line refers to.
// Quoted names are accepted both after HELP/TYPE and as the first entry
// inside the braces of a sample line.
func lineMetricName(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}

	if strings.HasPrefix(line, "#") {
		rest := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		i := strings.IndexAny(rest, " \t")
		if i < 0 {
			return ""
		}
		if keyword := rest[:i]; keyword != "HELP" && keyword != "TYPE" {
			return ""
		}
		rest = strings.TrimSpace(rest[i:])
		if strings.HasPrefix(rest, `"`) {
			return unquoteName(rest)
		}
		if fields := strings.Fields(rest); len(fields) > 0 {
			return fields[0]
		}
		return ""
	}

	if strings.HasPrefix(line, "{") {
		rest := strings.TrimSpace(line[1:])
		if strings.HasPrefix(rest, `"`) {
			return unquoteName(rest)
		}
		return ""
	}

	if end := strings.IndexAny(line, "{ \t"); end >= 0 {
		line = line[:end]
	}
	return line
}

// unquoteName reads the double-quoted name at the start of s, resolving the
// escapes the text format allows.
func unquoteName(s string) string {
	var sb strings.Builder
	escaped := false
	for _, r := range s[1:] {
		switch {
		case escaped:
			if r == 'n' {
				r = '\n'
			}
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			return sb.String()
		default:
			sb.WriteRune(r)
		}
	}
	return ""
}

// familyName resolves a sample name to the family it belongs to.
func familyName(name string, byName map[string]*dto.MetricFamily) string {
	if name == "" {
		return ""
	}
	if _, ok := byName[name]; ok {
		return name
	}
	for _, suffix := range sampleSuffixes {
		base, found := strings.CutSuffix(name, suffix)
		if !found {
			continue
		}
		if _, ok := byName[base]; ok {
			return base
		}
	}
	return ""
}
