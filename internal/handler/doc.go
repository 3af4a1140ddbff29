// Package handler implements HTTP request handlers for the inventory API.
//
// This package provides the HTTP layer for source management, the resolved
// asset view, CSV export, and scan triggers.
//
// # Handlers
//
// InventoryHandler covers the full API surface: source upload, listing,
// deletion and relabeling; the filtered and paginated asset view; CSV export;
// and background subnet scans.
//
// Middleware provides request logging, panic recovery, and CORS support.
//
// # API Design
//
// All handlers follow REST conventions:
// - GET for retrieval
// - POST for creation
// - PUT for updates
// - DELETE for removal
//
// Errors are returned as JSON with an {error, details} structure and
// appropriate HTTP status codes.
//
// # Server-Sent Events
//
// The /events endpoint streams inventory changes via SSE, so clients can
// refresh the asset view as sources are added, removed, or relabeled.
package handler
