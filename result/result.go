package result

import "strconv"

// Exit statuses for a finished run.
const (
	ExitOK     = 0 // No broken links
	ExitBroken = 1 // Broken links found and reported
)

// LinkResult is a failure entry that survived classification.
type LinkResult struct {
	URL     string  // The URL lychee failed to check
	Status  string  // Lychee status text
	Code    int     // HTTP status code (0 if none)
	Details string  // Extra error detail (empty if none)
	Verdict Verdict // Rule that kept the entry
}

// Detail returns the code for error-code verdicts, the details otherwise,
// or an empty string when the entry is reported with its status text only.
func (l LinkResult) Detail() string {
	switch l.Verdict {
	case VerdictErrorCode:
		return strconv.Itoa(l.Code)
	case VerdictDetails:
		return l.Details
	default:
		return ""
	}
}

// Describe renders "<status>: <detail>" or just the status.
func (l LinkResult) Describe() string {
	if detail := l.Detail(); detail != "" {
		return l.Status + ": " + detail
	}
	return l.Status
}

// FileReport lists the broken links found in one source file, in log order.
type FileReport struct {
	File  string
	Links []LinkResult
}

// FileSuggestions lists replacement candidates for broken links in one file.
type FileSuggestions struct {
	File        string
	Suggestions []Suggestion
}

// Suggestion pairs a broken URL with its proposed replacement.
type Suggestion struct {
	Original   string
	Suggestion string
}

// String renders "original - suggestion".
func (s Suggestion) String() string {
	return s.Original + " - " + s.Suggestion
}

// Stats contains aggregate counts for one analysis.
type Stats struct {
	Files     int // Files listed in fail_map
	Checked   int // Failure entries examined
	Broken    int // Entries kept as broken
	Discarded int // Entries filtered out as noise
}

// Report is the complete output of one analysis.
type Report struct {
	Broken      []FileReport      // Files with at least one broken link
	Suggestions []FileSuggestions // Suggestions for confirmed broken URLs only
	Stats       Stats
}

// HasBrokenLinks reports whether any file has a broken link.
func (r *Report) HasBrokenLinks() bool {
	return r != nil && len(r.Broken) > 0
}

// ExitCode maps the report to a process exit status.
func (r *Report) ExitCode() int {
	if r.HasBrokenLinks() {
		return ExitBroken
	}
	return ExitOK
}

// Links flattens the broken links of every file, tagging each with its file.
func (r *Report) Links() []FileLink {
	if r == nil {
		return nil
	}
	links := make([]FileLink, 0, r.Stats.Broken)
	for _, file := range r.Broken {
		for _, link := range file.Links {
			links = append(links, FileLink{File: file.File, LinkResult: link})
		}
	}
	return links
}

// FileLink is a LinkResult together with the file it was found in.
type FileLink struct {
	File string
	LinkResult
}
