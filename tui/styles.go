package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lukemcguire/lycheereport/result"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	successStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	fileStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle         = lipgloss.NewStyle().Faint(true)
	urlStyle         = lipgloss.NewStyle()
	statusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderSummary produces a Lip Gloss styled summary of the report: one table
// per broken file, then the suggestions and the closing tally.
func RenderSummary(res *result.Report) string {
	if res == nil {
		return errorStyle.Render("No results available.")
	}

	var builder strings.Builder

	if !res.HasBrokenLinks() {
		builder.WriteString(successStyle.Render("No links broken."))
		builder.WriteString("\n")
		builder.WriteString(dimStyle.Render(fmt.Sprintf(
			"Checked %d failed links, %d filtered as noise",
			res.Stats.Checked,
			res.Stats.Discarded,
		)))
		builder.WriteString("\n")
		return builder.String()
	}

	for _, file := range res.Broken {
		builder.WriteString(fileStyle.Render(fmt.Sprintf("## %s (%d)", file.File, len(file.Links))))
		builder.WriteString("\n")

		rows := make([][]string, 0, len(file.Links))
		for _, link := range file.Links {
			rows = append(rows, []string{link.URL, link.Describe(), result.FormatVerdict(link.Verdict)})
		}

		fileTable := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("URL", "Status", "Rule").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				if col == 1 { // Status column
					return statusErrorStyle
				}
				return urlStyle
			}).
			Rows(rows...)

		builder.WriteString(fileTable.Render())
		builder.WriteString("\n\n")
	}

	if len(res.Suggestions) > 0 {
		builder.WriteString(headerStyle.Render("Fix Suggestions"))
		builder.WriteString("\n")
		for _, file := range res.Suggestions {
			builder.WriteString(fileStyle.Render(file.File))
			builder.WriteString("\n")
			for _, s := range file.Suggestions {
				builder.WriteString("  " + s.String() + "\n")
			}
		}
		builder.WriteString("\n")
	}

	builder.WriteString(titleStyle.Render(fmt.Sprintf(
		"Found %d broken links in %d files (%d failed links checked, %d filtered)",
		res.Stats.Broken,
		len(res.Broken),
		res.Stats.Checked,
		res.Stats.Discarded,
	)))
	builder.WriteString("\n")

	return builder.String()
}
