package services

import "strings"

// NormalizeURL turns a bare social profile link into an absolute https URL.
// Values that already carry an http or https scheme are returned unchanged;
// otherwise a leading "www." is dropped before "https://" is prefixed.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	if strings.HasPrefix(lower, "www.") {
		raw = raw[len("www."):]
	}
	return "https://" + raw
}
