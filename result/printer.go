package result

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	fileStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

const separator = "---"

// PrintResults logs the report as console lines: errors for broken links,
// info for the success case, suggestions and the closing tally.
func PrintResults(log *zap.Logger, res *Report) {
	if !res.HasBrokenLinks() {
		log.Info(successStyle.Render("No links broken. Exiting..."))
		return
	}

	log.Error(errorStyle.Render("Broken links found!"))
	for _, file := range res.Broken {
		log.Error(separator)
		log.Error(fileStyle.Render(fmt.Sprintf(`Broken links in "%s":`, file.File)))
		for _, link := range file.Links {
			log.Error(separator)
			log.Error(errorStyle.Render("Broken link: " + link.URL))
			log.Error(errorStyle.Render(link.Describe()))
		}
	}
	log.Error(separator)

	if len(res.Suggestions) > 0 {
		log.Info(hintStyle.Render("Fix suggestions found:"))
		for _, file := range res.Suggestions {
			log.Info(fmt.Sprintf(`Suggestions for "%s":`, file.File))
			for _, s := range file.Suggestions {
				log.Info(s.String())
			}
		}
	}

	log.Info(fmt.Sprintf("Checked %d failed links in %d files: %d broken, %d filtered",
		res.Stats.Checked, res.Stats.Files, res.Stats.Broken, res.Stats.Discarded))
}
