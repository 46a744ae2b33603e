package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter flattens a week grid into one record per session.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render writes a header row followed by the sessions of each day. The day
// name is repeated in the first column so the file sorts and filters cleanly
// in spreadsheet tools; the grid title has no place in CSV and is ignored.
func (e *CSVExporter) Render(grid WeekGrid) ([]byte, error) {
	if len(grid.Columns) == 0 {
		return nil, fmt.Errorf("csv export needs at least one column")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	header := append([]string{"Day"}, grid.Columns...)
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, day := range grid.Days {
		for _, row := range day.Rows {
			record := make([]string, 0, len(grid.Columns)+1)
			record = append(record, day.Day)
			for i := range grid.Columns {
				if i < len(row) {
					record = append(record, row[i])
				} else {
					record = append(record, "")
				}
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
