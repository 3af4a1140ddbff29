// Package repository defines the data access interfaces for assetmerge.
//
// This package provides the storage abstraction for imported sources. The
// actual implementation is in the sqlite subpackage, which defaults to an
// in-memory database: sources live for the server session and the resolved
// asset view is always recomputed, never stored.
package repository

import (
	"context"

	"assetmerge/internal/domain"
)

// SourceStore defines source persistence for one server session
type SourceStore interface {
	// CreateSource stores a source at the given import position
	CreateSource(ctx context.Context, src *domain.Source, position int) error
	// GetSource returns a source by ID, or nil when absent
	GetSource(ctx context.Context, id string) (*domain.Source, error)
	// ListSources returns all sources in import order
	ListSources(ctx context.Context) ([]*domain.Source, error)
	// DeleteSource removes a source and reports whether it existed
	DeleteSource(ctx context.Context, id string) (bool, error)
	// UpdateSourceLabel changes a source's display label
	UpdateSourceLabel(ctx context.Context, id, label string) (bool, error)
	// CountSources returns the number of stored sources
	CountSources(ctx context.Context) (int, error)
	// NextPosition returns the import position for the next source
	NextPosition(ctx context.Context) (int, error)

	// Close releases resources
	Close() error
}
