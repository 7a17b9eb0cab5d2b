package result

import (
	"github.com/lukemcguire/lycheereport/lychee"
	"go.uber.org/zap"
)

// Analyze classifies every failure entry in doc and cross-references the
// suggestions against the links that survived.
func Analyze(doc *lychee.Document, opts Options, log *zap.Logger) *Report {
	if log == nil {
		log = zap.NewNop()
	}

	rep := &Report{Stats: Stats{Files: len(doc.FailMap)}}
	broken := NewBrokenSet(doc.FailMap.Len())

	for _, group := range doc.FailMap {
		var links []LinkResult
		for _, entry := range group.Items {
			rep.Stats.Checked++

			verdict := ClassifyFailure(entry, opts)
			if !verdict.Broken() {
				rep.Stats.Discarded++
				log.Debug("Skipping link",
					zap.String("file", group.File),
					zap.String("url", entry.URL),
					zap.String("verdict", string(verdict)))
				continue
			}

			broken.Add(entry.URL)
			links = append(links, LinkResult{
				URL:     entry.URL,
				Status:  entry.Status.Text,
				Code:    entry.Status.Code,
				Details: entry.Status.Details,
				Verdict: verdict,
			})
		}

		if len(links) > 0 {
			rep.Broken = append(rep.Broken, FileReport{File: group.File, Links: links})
			rep.Stats.Broken += len(links)
		}
	}

	if rep.HasBrokenLinks() {
		rep.Suggestions = CrossReference(doc.SuggestionMap, broken)
	}
	return rep
}

// CrossReference keeps only suggestions whose original URL is broken,
// grouped per file in log order. Files left with none are dropped.
func CrossReference(suggestions lychee.FileMap[lychee.Suggestion], broken *BrokenSet) []FileSuggestions {
	var out []FileSuggestions
	for _, group := range suggestions {
		var kept []Suggestion
		for _, s := range group.Items {
			if !broken.Contains(s.Original) {
				continue
			}
			kept = append(kept, Suggestion{Original: s.Original, Suggestion: s.Suggestion})
		}
		if len(kept) > 0 {
			out = append(out, FileSuggestions{File: group.File, Suggestions: kept})
		}
	}
	return out
}
