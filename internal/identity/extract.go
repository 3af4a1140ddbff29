package identity

import (
	"strings"

	"assetmerge/internal/domain"
)

// Header alias lists, one per semantic field. Aliases are matched against
// column names after canonicalHeader folding, so "MAC Address",
// "mac_address", and "Mac-Address" all hit "macaddress". List order carries
// no priority; the row's own column order decides which column wins.
var (
	MACAliases = []string{
		"mac", "macaddress", "physicaladdress", "ethernet",
		"hwaddress", "hardwareaddress", "physical",
	}
	HostnameAliases = []string{
		"hostname", "host", "computername", "name", "assetname",
		"devicename", "systemname", "computer", "device", "system",
	}
	IPAliases = []string{
		"ip", "ipaddress", "ipv4", "address", "ipv4address",
		"internetaddress", "ipaddr",
	}
	IDAliases = []string{
		"id", "assetid", "serial", "serialnumber", "tag", "assettag",
	}
	ManufacturerAliases = []string{
		"manufacturer", "mfg", "vendor", "make", "devicevendor",
		"hardwarevendor", "manuf",
	}
)

// canonicalHeader folds a column name for alias comparison: lower-cased with
// whitespace, hyphens, and underscores removed.
func canonicalHeader(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, c := range strings.ToLower(name) {
		switch c {
		case ' ', '\t', '-', '_':
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Extract locates the field in a row by its header aliases and returns the
// cell's trimmed string form. The first column in the row's own order whose
// canonical name equals any canonical alias is the match; if that cell is
// blank the field is absent, with no fallback to later matching columns.
func Extract(row domain.Row, aliases []string) (string, bool) {
	wanted := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		wanted[canonicalHeader(a)] = true
	}
	for _, col := range row.Columns {
		if !wanted[canonicalHeader(col)] {
			continue
		}
		return row.Get(col).Text()
	}
	return "", false
}
