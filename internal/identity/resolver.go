package identity

import (
	"github.com/google/uuid"

	"assetmerge/internal/domain"
)

// candidates holds a row's extracted and normalized identity fields.
// An empty string means the field is absent or unusable.
type candidates struct {
	mac          string
	hostname     string
	ip           string
	id           string
	manufacturer string
}

// extractCandidates runs extraction and normalization for one row
func extractCandidates(row domain.Row) candidates {
	var c candidates
	if raw, ok := Extract(row, MACAliases); ok {
		c.mac, _ = NormalizeMAC(raw)
	}
	if raw, ok := Extract(row, HostnameAliases); ok {
		c.hostname, _ = NormalizeHostname(raw)
	}
	if raw, ok := Extract(row, IPAliases); ok {
		c.ip, _ = NormalizeIP(raw)
	}
	if raw, ok := Extract(row, IDAliases); ok {
		c.id, _ = NormalizeID(raw)
	}
	if raw, ok := Extract(row, ManufacturerAliases); ok {
		c.manufacturer = raw
	}
	return c
}

// noSignal reports whether the row carries no linkable identity at all
func (c candidates) noSignal() bool {
	return c.mac == "" && c.hostname == "" && c.ip == "" && c.id == ""
}

// indexes maps canonical identity values to asset list positions, one map
// per field type. They are owned by a single Resolve pass and never escape.
type indexes struct {
	mac      map[string]int
	hostname map[string]int
	ip       map[string]int
	id       map[string]int
}

func newIndexes() *indexes {
	return &indexes{
		mac:      make(map[string]int),
		hostname: make(map[string]int),
		ip:       make(map[string]int),
		id:       make(map[string]int),
	}
}

// lookup resolves a row to an existing asset position by checking fields in
// strict MAC > hostname > IP > generic-id priority, stopping at the first
// field whose value is both present and indexed. Lower-priority fields are
// not consulted once a higher-priority match is found, which is what makes
// the fold non-transitive (see package doc).
func (ix *indexes) lookup(c candidates) (int, bool) {
	if c.mac != "" {
		if pos, ok := ix.mac[c.mac]; ok {
			return pos, true
		}
	}
	if c.hostname != "" {
		if pos, ok := ix.hostname[c.hostname]; ok {
			return pos, true
		}
	}
	if c.ip != "" {
		if pos, ok := ix.ip[c.ip]; ok {
			return pos, true
		}
	}
	if c.id != "" {
		if pos, ok := ix.id[c.id]; ok {
			return pos, true
		}
	}
	return 0, false
}

// Resolve folds all rows of all sources, in source order and row order, into
// a deduplicated asset list. The fold is deterministic: the same ordered
// input always produces the same assets, IDs, and provenance ordering.
func Resolve(sources []*domain.Source) []*domain.Asset {
	assets := make([]*domain.Asset, 0)
	ix := newIndexes()

	for _, src := range sources {
		for _, row := range src.Rows {
			c := extractCandidates(row)
			if c.noSignal() {
				// Nothing to link on and nothing worth creating.
				continue
			}

			origin := domain.Origin{
				SourceID:    src.ID,
				SourceLabel: src.Label,
				SourceColor: src.Color,
				Row:         row.Clone(),
			}

			if pos, ok := ix.lookup(c); ok {
				mergeRow(assets[pos], pos, c, origin, ix)
				continue
			}

			assets = append(assets, createAsset(len(assets), c, origin, ix))
		}
	}

	return assets
}

// mergeRow attaches a row to an existing asset: provenance is appended,
// unset fields are filled first-writer-wins, and newly learned identity
// values are indexed so the asset becomes reachable through them too.
func mergeRow(asset *domain.Asset, pos int, c candidates, origin domain.Origin, ix *indexes) {
	asset.Origins = append(asset.Origins, origin)
	asset.AddSource(origin.SourceID)

	if asset.MAC == "" && c.mac != "" {
		asset.MAC = c.mac
		ix.mac[c.mac] = pos
	}
	if asset.Hostname == "" && c.hostname != "" {
		asset.Hostname = c.hostname
		ix.hostname[c.hostname] = pos
	}
	if asset.IP == "" && c.ip != "" {
		asset.IP = c.ip
		ix.ip[c.ip] = pos
	}
	if asset.Manufacturer == "" && c.manufacturer != "" {
		asset.Manufacturer = c.manufacturer
	}
}

// createAsset builds a new asset from a row with no existing match and
// registers every present identity value at the new position.
func createAsset(pos int, c candidates, origin domain.Origin, ix *indexes) *domain.Asset {
	asset := &domain.Asset{
		ID:           assetID(c),
		MAC:          c.mac,
		Hostname:     c.hostname,
		IP:           c.ip,
		Manufacturer: c.manufacturer,
		Sources:      []string{origin.SourceID},
		Origins:      []domain.Origin{origin},
	}

	if c.mac != "" {
		ix.mac[c.mac] = pos
	}
	if c.hostname != "" {
		ix.hostname[c.hostname] = pos
	}
	if c.ip != "" {
		ix.ip[c.ip] = pos
	}
	if c.id != "" {
		ix.id[c.id] = pos
	}

	return asset
}

// assetID picks the asset identifier: the first present identity value in
// priority order. Rows with no signal never reach here, so the synthetic
// fallback only guards against future callers.
func assetID(c candidates) string {
	switch {
	case c.mac != "":
		return c.mac
	case c.hostname != "":
		return c.hostname
	case c.ip != "":
		return c.ip
	case c.id != "":
		return c.id
	default:
		return uuid.NewString()
	}
}
