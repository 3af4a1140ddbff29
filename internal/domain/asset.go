package domain

import "strings"

// MatchType labels the strongest identity field an asset carries
type MatchType string

const (
	MatchTypeMAC      MatchType = "MAC"
	MatchTypeHostname MatchType = "HOSTNAME"
	MatchTypeIP       MatchType = "IP"
	MatchTypeNone     MatchType = ""
)

// Origin is one provenance record: a full copy of a contributing row plus
// metadata about the source it came from. Origins are not deduplicated by
// source; a source contributing three rows yields three origins.
type Origin struct {
	SourceID    string `json:"source_id"`
	SourceLabel string `json:"source_label"`
	SourceColor string `json:"source_color"`
	Row         Row    `json:"row"`
}

// Asset is one resolved logical device, merged from every row that shares an
// identity key with it. Identity fields are first-writer-wins: once set by a
// contributing row they are never overwritten.
type Asset struct {
	ID           string `json:"id"`
	MAC          string `json:"mac,omitempty"`
	Hostname     string `json:"hostname,omitempty"`
	IP           string `json:"ip,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`

	// Sources lists contributing source IDs, deduplicated.
	Sources []string `json:"sources"`
	// Origins holds one provenance record per contributing row, in
	// resolution order.
	Origins []Origin `json:"origins"`
}

// HasSource reports whether the source already contributed to this asset
func (a *Asset) HasSource(sourceID string) bool {
	for _, id := range a.Sources {
		if id == sourceID {
			return true
		}
	}
	return false
}

// AddSource records a contributing source, keeping the list deduplicated
func (a *Asset) AddSource(sourceID string) {
	if !a.HasSource(sourceID) {
		a.Sources = append(a.Sources, sourceID)
	}
}

// Synced reports whether more than one source observed this asset
func (a *Asset) Synced() bool {
	return len(a.Sources) > 1
}

// MatchType returns the strongest identity field present, in MAC > hostname >
// IP priority, or MatchTypeNone when only a generic ID identifies the asset
func (a *Asset) MatchType() MatchType {
	switch {
	case a.MAC != "":
		return MatchTypeMAC
	case a.Hostname != "":
		return MatchTypeHostname
	case a.IP != "":
		return MatchTypeIP
	default:
		return MatchTypeNone
	}
}

// PrimaryIdentifier returns the display identifier: the formatted MAC when
// one is known, otherwise the asset's raw ID
func (a *Asset) PrimaryIdentifier() string {
	if a.MAC != "" {
		return FormatMAC(a.MAC)
	}
	return a.ID
}

// FormatMAC renders a canonical 12-hex MAC as colon-separated upper-case
// pairs for display. Formatting never participates in identity comparison.
func FormatMAC(mac string) string {
	if len(mac) != 12 {
		return strings.ToUpper(mac)
	}
	up := strings.ToUpper(mac)
	parts := make([]string, 0, 6)
	for i := 0; i < 12; i += 2 {
		parts = append(parts, up[i:i+2])
	}
	return strings.Join(parts, ":")
}
