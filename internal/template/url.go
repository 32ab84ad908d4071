package template

import (
	"net/url"
	"strings"
)

// PlaceholderURL rewrites source so that its host is HostPlaceholder.
// Scheme, explicit port and path are kept; userinfo, query and fragment
// are dropped.
func PlaceholderURL(source *url.URL) string {
	if source == nil {
		return ""
	}

	var sb strings.Builder
	if source.Scheme != "" {
		sb.WriteString(source.Scheme)
		sb.WriteString("://")
	}
	sb.WriteString(HostPlaceholder)
	if port := source.Port(); port != "" {
		sb.WriteString(":")
		sb.WriteString(port)
	}
	sb.WriteString(source.EscapedPath())
	return sb.String()
}
