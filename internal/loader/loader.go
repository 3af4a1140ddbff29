// Package loader parses uploaded inventory files into rows of named fields.
//
// Three tabular formats are supported: CSV/TSV with a header line, JSON
// arrays of flat objects, and YAML lists of flat mappings. Column order is
// preserved in every format because downstream identity extraction treats
// the row's own column order as the priority signal. Header names are
// trimmed and fully-empty rows are discarded before they reach the resolver.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"assetmerge/internal/domain"
)

// Table is one parsed inventory file: the column names in file order and the
// surviving (non-empty) rows.
type Table struct {
	Columns []string
	Rows    []domain.Row
}

// Parse decodes an inventory file by extension, falling back to CSV for
// unknown extensions since CSV is what inventory tools overwhelmingly export.
func Parse(filename string, data []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".tsv":
		return ParseTSV(data)
	default:
		return ParseCSV(data)
	}
}

// Supported reports whether the filename extension is one the loader will
// try to parse. Used by the drop-directory watcher to ignore noise.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".tsv", ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// addColumn tracks first-seen column order across rows
func (t *Table) addColumn(name string) {
	for _, c := range t.Columns {
		if c == name {
			return
		}
	}
	t.Columns = append(t.Columns, name)
}

// addRow keeps a row only when it carries content
func (t *Table) addRow(row domain.Row) {
	if row.IsEmpty() {
		return
	}
	t.Rows = append(t.Rows, row)
}

func parseError(format string, err error) error {
	return fmt.Errorf("parse %s: %w", format, err)
}
