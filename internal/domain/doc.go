// Package domain defines the core domain types for the assetmerge inventory
// reconciliation system.
//
// This package contains the fundamental entities that flow through the
// import-resolve-query pipeline, independent of storage, transport, and
// presentation concerns.
//
// # Core Types
//
// Value is a tagged scalar (string, number, boolean, or absent) representing
// a single cell of an imported inventory. Rows carry arbitrary column names,
// so no schema is known in advance; Value keeps the raw shape while exposing
// a uniform string view for identity extraction.
//
// Row is an ordered mapping of column name to Value, preserving the column
// order of the originating file. Column order matters: identity extraction
// picks the first matching column in the row's own order.
//
// Source is one imported dataset (an uploaded file or a network scan). Its
// row payload is immutable after creation; only the display label can change.
//
// Asset is the resolved entity: one logical device inferred from one or more
// sources, with first-writer-wins identity fields and full per-row
// provenance.
//
// # Design Principles
//
// - Immutable payloads where possible
// - No database or external dependencies
// - Pure domain logic without infrastructure concerns
package domain
