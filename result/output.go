package result

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// exportRecord is the flat per-link shape shared by the JSON and CSV exports.
type exportRecord struct {
	File       string  `json:"file"`
	URL        string  `json:"url"`
	Status     string  `json:"status"`
	StatusCode int     `json:"status_code,omitempty"`
	Details    string  `json:"details,omitempty"`
	Verdict    Verdict `json:"verdict"`
}

func exportRecords(res *Report) []exportRecord {
	links := res.Links()
	records := make([]exportRecord, 0, len(links))
	for _, link := range links {
		records = append(records, exportRecord{
			File:       link.File,
			URL:        link.URL,
			Status:     link.Status,
			StatusCode: link.Code,
			Details:    link.Details,
			Verdict:    link.Verdict,
		})
	}
	return records
}

// WriteJSON writes the broken links as a formatted JSON array to the writer.
// Uses flat array format (not wrapped with metadata) for simpler CI integration.
func WriteJSON(w io.Writer, res *Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exportRecords(res)); err != nil {
		return fmt.Errorf("write json output: %w", err)
	}
	return nil
}

// WriteCSV writes the broken links as CSV to the writer.
// Always includes a header row, even if there are no broken links.
// Column order: file, url, status, status_code, details, verdict
func WriteCSV(w io.Writer, res *Report) error {
	cw := csv.NewWriter(w)

	header := []string{"file", "url", "status", "status_code", "details", "verdict"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range exportRecords(res) {
		record := []string{
			rec.File,
			rec.URL,
			rec.Status,
			statusCodeStr(rec.StatusCode),
			rec.Details,
			string(rec.Verdict),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record for %s: %w", rec.URL, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

// statusCodeStr converts an HTTP status code to a string.
// Returns empty string for 0 (no HTTP status).
func statusCodeStr(code int) string {
	if code == 0 {
		return ""
	}
	return strconv.Itoa(code)
}

// SaveFile creates path and streams the output of write into it.
func SaveFile(path string, res *Report, write func(io.Writer, *Report) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", path, closeErr))
		}
	}()
	return write(file, res)
}
