package result

import (
	"strings"

	"github.com/lukemcguire/lycheereport/lychee"
)

// Verdict records which rule decided the fate of a failure entry.
type Verdict string

const (
	VerdictIgnoredTimeout      Verdict = "ignored_timeout"
	VerdictCached              Verdict = "cached"
	VerdictIgnoredNetworkError Verdict = "ignored_network_error"
	VerdictErrorCode           Verdict = "error_code"
	VerdictStatus              Verdict = "status"
	VerdictDetails             Verdict = "details"
)

// Lychee status texts the rules match on.
const (
	statusTimeout      = "Timeout"
	statusCached       = "Cached"
	statusNetworkError = "Network error"
)

// Options controls which failures are filtered out as noise.
type Options struct {
	Codes              CodeSet // Status codes that always count as broken
	IgnoreTimeouts     bool    // Discard entries whose text is exactly "Timeout"
	IgnoreNoCodeNetErr bool    // Discard network errors that no code matched
}

// Broken reports whether the verdict keeps the entry in the report.
func (v Verdict) Broken() bool {
	switch v {
	case VerdictErrorCode, VerdictStatus, VerdictDetails:
		return true
	default:
		return false
	}
}

// ClassifyFailure applies the filtering rules in order; the first match wins.
// An allow-listed code therefore beats a "Cached" status text.
func ClassifyFailure(entry lychee.FailureEntry, opts Options) Verdict {
	status := entry.Status

	if status.Text == statusTimeout && opts.IgnoreTimeouts {
		return VerdictIgnoredTimeout
	}

	if status.Code != 0 && opts.Codes.Contains(status.Code) {
		return VerdictErrorCode
	}

	if strings.Contains(status.Text, statusCached) {
		return VerdictCached
	}

	if strings.Contains(status.Text, statusNetworkError) && opts.IgnoreNoCodeNetErr {
		return VerdictIgnoredNetworkError
	}

	if status.Details == "" {
		return VerdictStatus
	}
	return VerdictDetails
}

// FormatVerdict returns a human-readable label for a verdict.
func FormatVerdict(v Verdict) string {
	switch v {
	case VerdictIgnoredTimeout:
		return "Ignored timeout"
	case VerdictCached:
		return "Cached result"
	case VerdictIgnoredNetworkError:
		return "Ignored network error"
	case VerdictErrorCode:
		return "Error code"
	case VerdictStatus:
		return "Status"
	case VerdictDetails:
		return "Status with details"
	default:
		return "Unknown"
	}
}
