package identity

import (
	"strings"

	"assetmerge/internal/domain"
)

// Cardinality selects assets by how many sources observed them
type Cardinality string

const (
	// CardinalityAll keeps every asset
	CardinalityAll Cardinality = "all"
	// CardinalityUnique keeps assets seen by exactly one source
	CardinalityUnique Cardinality = "unique"
	// CardinalitySynced keeps assets seen by more than one source
	CardinalitySynced Cardinality = "synced"
)

// Query filters a resolved asset list. All predicates are ANDed; zero values
// mean "no constraint".
type Query struct {
	// Text matches case-insensitively against hostname, IP, manufacturer,
	// and ID, and against the MAC with separators stripped from the term.
	Text string
	// Sources lists source IDs the asset must all contain.
	Sources []string
	// Cardinality selects by source count.
	Cardinality Cardinality
}

// Filter returns the subsequence of assets matching the query, preserving
// resolution order.
func Filter(assets []*domain.Asset, q Query) []*domain.Asset {
	term := strings.ToLower(strings.TrimSpace(q.Text))
	macTerm := macSeparators.Replace(term)

	out := make([]*domain.Asset, 0, len(assets))
	for _, a := range assets {
		if term != "" && !matchesText(a, term, macTerm) {
			continue
		}
		if !containsAll(a, q.Sources) {
			continue
		}
		switch q.Cardinality {
		case CardinalityUnique:
			if a.Synced() {
				continue
			}
		case CardinalitySynced:
			if !a.Synced() {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

func matchesText(a *domain.Asset, term, macTerm string) bool {
	if strings.Contains(strings.ToLower(a.Hostname), term) ||
		strings.Contains(strings.ToLower(a.IP), term) ||
		strings.Contains(strings.ToLower(a.Manufacturer), term) ||
		strings.Contains(strings.ToLower(a.ID), term) {
		return true
	}
	// Canonical MACs carry no separators, so the term sheds its own before
	// comparison; "AA:BB" finds "aabb...".
	return macTerm != "" && strings.Contains(a.MAC, macTerm)
}

func containsAll(a *domain.Asset, sources []string) bool {
	for _, id := range sources {
		if !a.HasSource(id) {
			return false
		}
	}
	return true
}
