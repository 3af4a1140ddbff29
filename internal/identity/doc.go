// Package identity implements the record-linkage core of assetmerge.
//
// Imported inventories name the same device differently: one file carries a
// MAC address, another only a hostname, a third an IP and a serial number.
// This package infers identity without a shared key, in three stages:
//
// Normalization maps raw field values to canonical identity values (or
// rejects them as unusable): MACs lose separators and casing, hostnames fold
// case and shed placeholder tokens, IPs pass a loose syntactic check.
// Normalizers are pure and total; malformed input degrades a row's
// identifying power instead of failing the import.
//
// Extraction locates identity-bearing columns in rows with heterogeneous
// header naming, using fixed per-field alias lists matched loosely (case,
// whitespace, hyphens, and underscores ignored). The first matching column
// in the row's own order wins.
//
// Resolution folds every row of every source, in order, into a list of
// assets. Each row is linked to an existing asset through the first matching
// key in MAC > hostname > IP > generic-id priority, or creates a new one.
// Fields are first-writer-wins and newly learned keys are indexed so the
// asset becomes reachable through them too.
//
// The fold is single-pass and non-transitive: a row whose MAC matches one
// existing asset and whose hostname matches a different one attaches to the
// MAC match only, and the two assets are never merged. True transitive
// merging would need a union-find over key co-occurrences and is left as a
// possible opt-in.
package identity
