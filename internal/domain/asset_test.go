package domain

import "testing"

func TestFormatMAC(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"aabbccddeeff", "AA:BB:CC:DD:EE:FF"},
		{"0b5aa8000102", "0B:5A:A8:00:01:02"},
		// Non-canonical input passes through upper-cased rather than panicking
		{"aabb", "AABB"},
	}

	for _, tt := range tests {
		if got := FormatMAC(tt.in); got != tt.want {
			t.Errorf("FormatMAC(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAssetMatchType(t *testing.T) {
	tests := []struct {
		name  string
		asset Asset
		want  MatchType
	}{
		{"mac wins", Asset{MAC: "aabbccddeeff", Hostname: "h", IP: "1.2.3.4"}, MatchTypeMAC},
		{"hostname next", Asset{Hostname: "h", IP: "1.2.3.4"}, MatchTypeHostname},
		{"ip next", Asset{IP: "1.2.3.4"}, MatchTypeIP},
		{"generic only", Asset{ID: "tag-1"}, MatchTypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.asset.MatchType(); got != tt.want {
				t.Errorf("MatchType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssetPrimaryIdentifier(t *testing.T) {
	withMAC := Asset{ID: "aabbccddeeff", MAC: "aabbccddeeff"}
	if got := withMAC.PrimaryIdentifier(); got != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("PrimaryIdentifier() = %q, want formatted MAC", got)
	}

	withoutMAC := Asset{ID: "srv-01", Hostname: "srv-01"}
	if got := withoutMAC.PrimaryIdentifier(); got != "srv-01" {
		t.Errorf("PrimaryIdentifier() = %q, want raw ID", got)
	}
}

func TestAssetSources(t *testing.T) {
	a := Asset{}
	a.AddSource("s1")
	a.AddSource("s2")
	a.AddSource("s1")

	if len(a.Sources) != 2 {
		t.Errorf("expected deduplicated sources, got %v", a.Sources)
	}
	if !a.Synced() {
		t.Error("expected Synced with two sources")
	}

	single := Asset{Sources: []string{"s1"}}
	if single.Synced() {
		t.Error("expected not Synced with one source")
	}
}
