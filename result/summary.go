package result

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultSummaryPath is where the GitHub job summary is written.
const DefaultSummaryPath = "github_job_summary.md"

const (
	summarySuccess = "# :heavy_check_mark: No links broken."
	summaryFailure = "# :x:  Broken links found!\n"
	suggestionNote = "The link checker proposed replacements for some of the broken links above. " +
		"Review each suggestion before applying it.\n"
)

// WriteSummary renders the report as a Markdown job summary.
func WriteSummary(w io.Writer, res *Report) error {
	bw := bufio.NewWriter(w)
	writef := func(format string, a ...any) { _, _ = fmt.Fprintf(bw, format, a...) }

	if !res.HasBrokenLinks() {
		writef("%s", summarySuccess)
		return flushSummary(bw)
	}

	writef("%s", summaryFailure)
	for _, file := range res.Broken {
		writef("\n---\n\n")
		writef("## Broken links in \"%s\"\n\n", file.File)
		for i, link := range file.Links {
			if i > 0 {
				writef("\n---\n\n")
			}
			writef("Broken link: **<%s>** %s\n", link.URL, codeSpan(link.Describe()))
		}
	}
	writef("\n---\n")

	if len(res.Suggestions) > 0 {
		writef("\n## Fix Suggestions\n\n%s", suggestionNote)
		for _, file := range res.Suggestions {
			writef("\n## Suggestions for the \"%s\"\n\n", file.File)
			for _, s := range file.Suggestions {
				writef("* %s\n", s)
			}
		}
	}

	return flushSummary(bw)
}

// codeSpan wraps text in an inline code span on a single line. The fence is
// one backtick longer than the longest run inside text.
func codeSpan(text string) string {
	text = strings.Join(strings.Fields(text), " ")

	longest, run := 0, 0
	for _, r := range text {
		if r != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	fence := strings.Repeat("`", longest+1)

	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		text = " " + text + " "
	}
	return fence + text + fence
}

func flushSummary(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// SaveSummary writes the summary to path, replacing any previous content.
func SaveSummary(path string, res *Report) error {
	return SaveFile(path, res, WriteSummary)
}
