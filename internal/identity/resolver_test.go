package identity

import (
	"reflect"
	"testing"

	"assetmerge/internal/domain"
)

func makeSource(label string, rows ...domain.Row) *domain.Source {
	return domain.NewSource(label, label+".csv", domain.SourceKindFile, 0, nil, rows)
}

func TestResolveMergesSharedMACAcrossFormats(t *testing.T) {
	a := makeSource("a", makeRow("MAC Address", "AA:BB:CC:DD:EE:FF", "Hostname", "srv-01"))
	b := makeSource("b", makeRow("physical_address", "aa-bb-cc-dd-ee-ff", "IP", "10.0.0.5"))

	assets := Resolve([]*domain.Source{a, b})

	if len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(assets))
	}
	asset := assets[0]
	if asset.MAC != "aabbccddeeff" {
		t.Errorf("expected canonical MAC, got %q", asset.MAC)
	}
	if len(asset.Sources) != 2 {
		t.Errorf("expected 2 sources, got %d", len(asset.Sources))
	}
	if len(asset.Origins) != 2 {
		t.Errorf("expected 2 origins, got %d", len(asset.Origins))
	}
}

func TestResolveSameSourceCountsOnce(t *testing.T) {
	src := makeSource("dupes",
		makeRow("mac", "AA:BB:CC:DD:EE:01"),
		makeRow("mac", "aa-bb-cc-dd-ee-01"),
	)

	assets := Resolve([]*domain.Source{src})

	if len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(assets))
	}
	if len(assets[0].Sources) != 1 {
		t.Errorf("expected deduplicated source list, got %d entries", len(assets[0].Sources))
	}
	if len(assets[0].Origins) != 2 {
		t.Errorf("expected one origin per row, got %d", len(assets[0].Origins))
	}
}

func TestResolveFirstWriterWins(t *testing.T) {
	src := makeSource("s",
		makeRow("mac", "AA:BB:CC:DD:EE:02"),
		makeRow("mac", "AA:BB:CC:DD:EE:02", "hostname", "first-name"),
		makeRow("mac", "AA:BB:CC:DD:EE:02", "hostname", "second-name"),
	)

	assets := Resolve([]*domain.Source{src})

	if len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(assets))
	}
	if assets[0].Hostname != "first-name" {
		t.Errorf("expected hostname from first supplying row, got %q", assets[0].Hostname)
	}
}

func TestResolveLearnedKeyLinksLaterRows(t *testing.T) {
	// Row 1 creates the asset keyed by MAC and registers its hostname.
	// Row 2 has no MAC but the registered hostname, so it merges in.
	a := makeSource("a", makeRow("MAC", "AA:BB:CC:DD:EE:01", "Host", "srv1"))
	b := makeSource("b", makeRow("Hostname", "srv1", "IP", "10.0.0.5"))

	assets := Resolve([]*domain.Source{a, b})

	if len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(assets))
	}
	asset := assets[0]
	if asset.MAC != "aabbccddee01" {
		t.Errorf("MAC = %q, want aabbccddee01", asset.MAC)
	}
	if asset.Hostname != "srv1" {
		t.Errorf("Hostname = %q, want srv1", asset.Hostname)
	}
	if asset.IP != "10.0.0.5" {
		t.Errorf("IP = %q, want 10.0.0.5", asset.IP)
	}
	if len(asset.Sources) != 2 {
		t.Errorf("expected 2 sources, got %d", len(asset.Sources))
	}
}

func TestResolvePriorityOrderIsNonTransitive(t *testing.T) {
	// Asset A is created with MAC m1, asset B with hostname h1. A third row
	// carries both keys; MAC wins, so it attaches to A and B stays separate
	// even though the row proves they are the same device.
	a := makeSource("a", makeRow("mac", "AA:BB:CC:DD:EE:10"))
	b := makeSource("b", makeRow("hostname", "h1"))
	c := makeSource("c", makeRow("mac", "AA:BB:CC:DD:EE:10", "hostname", "h1"))

	assets := Resolve([]*domain.Source{a, b, c})

	if len(assets) != 2 {
		t.Fatalf("expected 2 assets (no transitive merge), got %d", len(assets))
	}
	macAsset, hostAsset := assets[0], assets[1]
	if len(macAsset.Origins) != 2 {
		t.Errorf("MAC asset should hold the bridging row, got %d origins", len(macAsset.Origins))
	}
	if len(hostAsset.Origins) != 1 {
		t.Errorf("hostname asset should stay untouched, got %d origins", len(hostAsset.Origins))
	}
}

func TestResolveDropsNoSignalRows(t *testing.T) {
	src := makeSource("s",
		makeRow("Notes", "decommissioned"),
		makeRow("mac", "", "hostname", "", "ip", "", "id", ""),
		makeRow("hostname", "unknown", "ip", "0.0.0.0"),
		makeRow("mac", "AA:BB:CC:DD:EE:20"),
	)

	assets := Resolve([]*domain.Source{src})

	if len(assets) != 1 {
		t.Fatalf("expected only the mac row to survive, got %d assets", len(assets))
	}
	if len(assets[0].Origins) != 1 {
		t.Errorf("dropped rows must leave no provenance, got %d origins", len(assets[0].Origins))
	}
}

func TestResolveIDPriority(t *testing.T) {
	tests := []struct {
		name string
		row  domain.Row
		want string
	}{
		{"mac wins", makeRow("mac", "AA:BB:CC:DD:EE:30", "hostname", "h", "ip", "1.2.3.4", "serial", "s1"), "aabbccddee30"},
		{"hostname next", makeRow("hostname", "H-Name", "ip", "1.2.3.4", "serial", "s1"), "h-name"},
		{"ip next", makeRow("ip", "1.2.3.4", "serial", "s1"), "1.2.3.4"},
		{"generic id last", makeRow("serial", "s1"), "s1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assets := Resolve([]*domain.Source{makeSource("s", tt.row)})
			if len(assets) != 1 {
				t.Fatalf("expected 1 asset, got %d", len(assets))
			}
			if assets[0].ID != tt.want {
				t.Errorf("ID = %q, want %q", assets[0].ID, tt.want)
			}
		})
	}
}

func TestResolveGenericIDLinksRows(t *testing.T) {
	a := makeSource("a", makeRow("Asset Tag", "TAG-7", "Manufacturer", "Dell"))
	b := makeSource("b", makeRow("asset_tag", "TAG-7", "vendor", "HP"))

	assets := Resolve([]*domain.Source{a, b})

	if len(assets) != 1 {
		t.Fatalf("expected tag-linked rows to merge, got %d assets", len(assets))
	}
	// First writer wins on manufacturer; no voting.
	if assets[0].Manufacturer != "Dell" {
		t.Errorf("Manufacturer = %q, want Dell", assets[0].Manufacturer)
	}
}

func TestResolveDeterministic(t *testing.T) {
	sources := []*domain.Source{
		makeSource("a",
			makeRow("mac", "AA:BB:CC:DD:EE:40", "hostname", "alpha"),
			makeRow("hostname", "beta", "ip", "10.1.0.2"),
		),
		makeSource("b",
			makeRow("ip", "10.1.0.2", "serial", "sn-9"),
			makeRow("hostname", "alpha"),
		),
	}

	first := Resolve(sources)
	second := Resolve(sources)

	if len(first) != len(second) {
		t.Fatalf("asset counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("asset %d ID differs: %q vs %q", i, first[i].ID, second[i].ID)
		}
		if !reflect.DeepEqual(first[i].Sources, second[i].Sources) {
			t.Errorf("asset %d sources differ", i)
		}
		if len(first[i].Origins) != len(second[i].Origins) {
			t.Errorf("asset %d origin counts differ", i)
		}
	}
}

func TestResolveProvenanceCopiesRow(t *testing.T) {
	row := makeRow("mac", "AA:BB:CC:DD:EE:50", "Location", "rack 4")
	src := makeSource("s", row)

	assets := Resolve([]*domain.Source{src})

	if len(assets) != 1 || len(assets[0].Origins) != 1 {
		t.Fatal("expected one asset with one origin")
	}
	origin := assets[0].Origins[0]
	if origin.SourceID != src.ID || origin.SourceLabel != "s" {
		t.Errorf("origin metadata wrong: %+v", origin)
	}
	if loc, ok := origin.Row.Get("Location").Text(); !ok || loc != "rack 4" {
		t.Errorf("origin row lost raw cells: %q", loc)
	}
}
