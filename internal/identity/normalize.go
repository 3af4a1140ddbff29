package identity

import (
	"regexp"
	"strings"
)

// macSeparators strips the separator styles seen in the wild:
// aa:bb:cc:dd:ee:ff, aa-bb-cc-dd-ee-ff, aabb.ccdd.eeff
var macSeparators = strings.NewReplacer(":", "", "-", "", ".", "")

// ipPattern is deliberately syntactic: four dot-separated 1-3 digit groups.
// Out-of-range octets like 999 pass; inventories are messy and a loose match
// keeps more rows linkable.
var ipPattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// NormalizeMAC canonicalizes a raw MAC address to 12 lower-case hex
// characters with no separators. Returns false for anything that does not
// reduce to 12 hex characters, and for the all-zero / all-f placeholder
// values that inventory tools emit for unknown hardware.
func NormalizeMAC(raw string) (string, bool) {
	s := macSeparators.Replace(strings.TrimSpace(raw))
	s = strings.ToLower(s)
	if len(s) != 12 {
		return "", false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", false
		}
	}
	if s == "000000000000" || s == "ffffffffffff" {
		return "", false
	}
	return s, true
}

// NormalizeHostname lower-cases and trims a hostname. The literal tokens
// "null", "undefined", and "unknown" are placeholder noise, not names.
func NormalizeHostname(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "", "null", "undefined", "unknown":
		return "", false
	}
	return s, true
}

// NormalizeIP trims an IPv4 address without case folding. The unspecified
// and loopback addresses carry no identity and are rejected.
func NormalizeIP(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "0.0.0.0" || s == "127.0.0.1" {
		return "", false
	}
	if !ipPattern.MatchString(s) {
		return "", false
	}
	return s, true
}

// NormalizeID trims a generic asset/serial identifier. Any non-empty string
// is usable; there is no garbage filtering for last-resort keys.
func NormalizeID(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	return s, s != ""
}
