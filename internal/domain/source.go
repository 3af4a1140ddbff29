package domain

import (
	"time"

	"github.com/google/uuid"
)

// SourceKind identifies how a source entered the system
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindScan SourceKind = "scan"
)

// sourcePalette holds the display colors assigned to sources, cycling by
// import position. Presentation only; never part of identity.
var sourcePalette = []string{
	"#3b82f6", // blue
	"#10b981", // emerald
	"#f59e0b", // amber
	"#8b5cf6", // violet
	"#ef4444", // red
	"#06b6d4", // cyan
	"#ec4899", // pink
	"#84cc16", // lime
}

// ColorForIndex returns the palette color for the nth imported source
func ColorForIndex(index int) string {
	if index < 0 {
		index = 0
	}
	return sourcePalette[index%len(sourcePalette)]
}

// Source is one imported inventory dataset. The row payload is immutable
// after creation; only the label may change.
type Source struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Filename  string     `json:"filename"`
	Kind      SourceKind `json:"kind"`
	Color     string     `json:"color"`
	Columns   []string   `json:"columns"`
	Rows      []Row      `json:"rows"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewSource creates a source with a fresh identifier and the palette color
// for its import position
func NewSource(label, filename string, kind SourceKind, position int, columns []string, rows []Row) *Source {
	if label == "" {
		label = filename
	}
	return &Source{
		ID:        uuid.NewString(),
		Label:     label,
		Filename:  filename,
		Kind:      kind,
		Color:     ColorForIndex(position),
		Columns:   columns,
		Rows:      rows,
		CreatedAt: time.Now(),
	}
}

// RowCount returns the number of rows the source contributed
func (s *Source) RowCount() int {
	return len(s.Rows)
}
