// Package bulk parses recipient rosters uploaded as CSV for batch
// certificate generation.
package bulk

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// Expected header, in order. Column matching is positional; the header
// row itself is recognized by its first cell and skipped.
var Header = []string{
	"Full Name",
	"College Name",
	"Activity",
	"Activity Date (YYYY-MM-DD)",
	"Certificate Text (Optional)",
}

const dateLayout = "2006-01-02"

// Row is one roster entry.
type Row struct {
	FullName        string
	CollegeName     string
	Activity        string
	ActivityDate    time.Time
	CertificateText string
}

// RowError reports a rejected line without aborting the batch.
type RowError struct {
	Line int    `json:"line"`
	Err  string `json:"error"`
}

// ParseCSV reads a roster. Malformed rows are collected as RowErrors
// rather than failing the whole upload; only unreadable input is an
// error. A missing activity date defaults to now.
func ParseCSV(r io.Reader, now func() time.Time) ([]Row, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []Row
	var rowErrs []RowError

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV at line %d: %w", line, err)
		}

		if isBlank(record) {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), Header[0]) {
			continue
		}

		row, err := parseRow(record, now)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err.Error()})
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

func parseRow(record []string, now func() time.Time) (Row, error) {
	if len(record) < 3 {
		return Row{}, fmt.Errorf("expected at least 3 columns, got %d", len(record))
	}

	row := Row{
		FullName:    strings.TrimSpace(record[0]),
		CollegeName: strings.TrimSpace(record[1]),
		Activity:    strings.TrimSpace(record[2]),
	}
	if row.FullName == "" {
		return Row{}, fmt.Errorf("full name is required")
	}
	if row.Activity == "" {
		return Row{}, fmt.Errorf("activity is required")
	}

	if len(record) > 3 && strings.TrimSpace(record[3]) != "" {
		date, err := time.Parse(dateLayout, strings.TrimSpace(record[3]))
		if err != nil {
			return Row{}, fmt.Errorf("invalid activity date %q: expected YYYY-MM-DD", record[3])
		}
		row.ActivityDate = date
	} else {
		row.ActivityDate = now()
	}

	if len(record) > 4 {
		row.CertificateText = strings.TrimSpace(record[4])
	}
	return row, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
