package utils

import "testing"

func TestIsHTTPURL(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://example.com/path?x=1",
		"https://sub.example.com:8443/v",
	}
	for _, u := range valid {
		if !IsHTTPURL(u) {
			t.Fatalf("expected %q to be valid", u)
		}
	}

	invalid := []string{
		"",
		"ftp://example.com",
		"javascript:alert(1)",
		"example.com",
		"http://",
	}
	for _, u := range invalid {
		if IsHTTPURL(u) {
			t.Fatalf("expected %q to be invalid", u)
		}
	}
}

func TestIsCalendarDate(t *testing.T) {
	valid := []string{"2026-01-01", "2026-12-31", "2024-02-29"}
	for _, d := range valid {
		if !IsCalendarDate(d) {
			t.Fatalf("expected %q to be valid", d)
		}
	}

	invalid := []string{"", "2026-13-01", "2026-02-30", "01/02/2026", "2026-1-1", "tomorrow"}
	for _, d := range invalid {
		if IsCalendarDate(d) {
			t.Fatalf("expected %q to be invalid", d)
		}
	}
}

func TestNowUTCSecondPrecision(t *testing.T) {
	now := NowUTC()
	if now.Location() != nil && now.Location().String() != "UTC" {
		t.Fatalf("expected UTC, got %s", now.Location())
	}
	if now.Nanosecond() != 0 {
		t.Fatalf("expected second precision, got %d ns", now.Nanosecond())
	}
}
