package loader

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"assetmerge/internal/domain"
)

// ParseCSV decodes a comma-separated file. The first record is the header
// line; header names are trimmed and columns with blank headers are dropped.
func ParseCSV(data []byte) (*Table, error) {
	return parseDelimited(data, ',')
}

// ParseTSV decodes a tab-separated file
func ParseTSV(data []byte) (*Table, error) {
	return parseDelimited(data, '\t')
}

func parseDelimited(data []byte, comma rune) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	// Ragged exports are common; pad or truncate against the header instead
	// of failing the whole file.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		return nil, parseError("csv", err)
	}

	table := &Table{}
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(stripBOM(name))
		columns[i] = name
		if name != "" {
			table.addColumn(name)
		}
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError("csv", err)
		}

		row := domain.NewRow()
		for i, cell := range record {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			row.Set(columns[i], domain.StringValue(cell))
		}
		table.addRow(row)
	}

	return table, nil
}

// stripBOM removes a UTF-8 byte order mark; Excel prepends one to the first
// header of exported CSVs.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
