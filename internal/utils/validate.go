package utils

import (
	"net/url"
	"time"
)

// IsHTTPURL reports whether s is a well-formed http:// or https:// URL.
// URLs are validated, never sanitized.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// IsCalendarDate reports whether s is a literal YYYY-MM-DD calendar date.
func IsCalendarDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// NowUTC is the single clock used for persisted timestamps. Truncated to
// seconds so stored and serialized values round-trip identically.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
