package models

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseCSV reads the whole file into ordered rows of named fields. The first
// record is the header; header names are lower-cased and trimmed. Short rows
// simply lack the trailing fields.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return []Row{}, nil
	}
	return recordsToRows(records), nil
}

// ParseExcel reads the first sheet of an .xlsx workbook the same way ParseCSV
// reads a delimited file.
func ParseExcel(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []Row{}, nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return []Row{}, nil
	}
	return recordsToRows(records), nil
}

func recordsToRows(records [][]string) []Row {
	header := make([]string, len(records[0]))
	for i, cell := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(cell))
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := Row{}
		for i, cell := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}
	return rows
}
