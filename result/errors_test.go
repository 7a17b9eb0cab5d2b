package result

import (
	"testing"

	"github.com/lukemcguire/lycheereport/lychee"
)

func entry(text string, code int, details string) lychee.FailureEntry {
	return lychee.FailureEntry{
		URL:    "https://example.com",
		Status: lychee.Status{Text: text, Code: code, Details: details},
	}
}

func TestClassifyFailure(t *testing.T) {
	codes, err := ParseCodes([]string{"404", "500..503"})
	if err != nil {
		t.Fatalf("ParseCodes: %v", err)
	}

	tests := []struct {
		name  string
		entry lychee.FailureEntry
		opts  Options
		want  Verdict
	}{
		{
			name:  "timeout ignored when flag set",
			entry: entry("Timeout", 0, ""),
			opts:  Options{Codes: codes, IgnoreTimeouts: true},
			want:  VerdictIgnoredTimeout,
		},
		{
			name:  "timeout reported when flag unset",
			entry: entry("Timeout", 0, ""),
			opts:  Options{Codes: codes},
			want:  VerdictStatus,
		},
		{
			name:  "timeout with details reported when flag unset",
			entry: entry("Timeout", 0, "operation timed out"),
			opts:  Options{Codes: codes},
			want:  VerdictDetails,
		},
		{
			name:  "timeout ignore beats error code",
			entry: entry("Timeout", 404, ""),
			opts:  Options{Codes: codes, IgnoreTimeouts: true},
			want:  VerdictIgnoredTimeout,
		},
		{
			name:  "only exact Timeout text is ignored",
			entry: entry("Timeout after 20s", 0, ""),
			opts:  Options{Codes: codes, IgnoreTimeouts: true},
			want:  VerdictStatus,
		},
		{
			name:  "allow-listed code",
			entry: entry("Not Found", 404, ""),
			opts:  Options{Codes: codes},
			want:  VerdictErrorCode,
		},
		{
			name:  "allow-listed code beats cached text",
			entry: entry("Cached: Not Found", 404, ""),
			opts:  Options{Codes: codes},
			want:  VerdictErrorCode,
		},
		{
			name:  "allow-listed code beats network error ignore",
			entry: entry("Network error", 502, "bad gateway"),
			opts:  Options{Codes: codes, IgnoreNoCodeNetErr: true},
			want:  VerdictErrorCode,
		},
		{
			name:  "cached without listed code discarded",
			entry: entry("Cached: Forbidden", 403, ""),
			opts:  Options{Codes: codes},
			want:  VerdictCached,
		},
		{
			name:  "network error ignored when flag set",
			entry: entry("Network error", 0, "connection refused"),
			opts:  Options{Codes: codes, IgnoreNoCodeNetErr: true},
			want:  VerdictIgnoredNetworkError,
		},
		{
			name:  "network error reported with details when flag unset",
			entry: entry("Network error", 0, "connection refused"),
			opts:  Options{Codes: codes},
			want:  VerdictDetails,
		},
		{
			name:  "unlisted code without details",
			entry: entry("Forbidden", 403, ""),
			opts:  Options{Codes: codes},
			want:  VerdictStatus,
		},
		{
			name:  "zero code is treated as absent",
			entry: entry("Unsupported", 0, ""),
			opts:  Options{Codes: CodeSet{spans: []span{{0, 0}}}},
			want:  VerdictStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyFailure(tt.entry, tt.opts)
			if got != tt.want {
				t.Errorf("ClassifyFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerdict_Broken(t *testing.T) {
	tests := []struct {
		verdict Verdict
		want    bool
	}{
		{VerdictIgnoredTimeout, false},
		{VerdictCached, false},
		{VerdictIgnoredNetworkError, false},
		{VerdictErrorCode, true},
		{VerdictStatus, true},
		{VerdictDetails, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.verdict), func(t *testing.T) {
			if got := tt.verdict.Broken(); got != tt.want {
				t.Errorf("Broken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatVerdict(t *testing.T) {
	tests := []struct {
		verdict Verdict
		want    string
	}{
		{VerdictIgnoredTimeout, "Ignored timeout"},
		{VerdictCached, "Cached result"},
		{VerdictIgnoredNetworkError, "Ignored network error"},
		{VerdictErrorCode, "Error code"},
		{VerdictStatus, "Status"},
		{VerdictDetails, "Status with details"},
		{Verdict("bogus"), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(string(tt.verdict), func(t *testing.T) {
			if got := FormatVerdict(tt.verdict); got != tt.want {
				t.Errorf("FormatVerdict(%v) = %v, want %v", tt.verdict, got, tt.want)
			}
		})
	}
}
