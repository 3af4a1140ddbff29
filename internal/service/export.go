package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"assetmerge/internal/domain"
)

// exportHeader is the flat record layout consumed by spreadsheet tooling
var exportHeader = []string{
	"Status", "Identifier", "Match Type", "Hostname", "IP Address",
	"Manufacturer", "Source Count", "Sources",
}

// WriteCSV streams the resolved asset view as a flat CSV report: one record
// per asset with its sync status, primary identifier, and source roll-up.
func (s *InventoryService) WriteCSV(ctx context.Context, w io.Writer) error {
	assets, err := s.Assets(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for _, a := range assets {
		if err := cw.Write(exportRecord(a)); err != nil {
			return fmt.Errorf("write export record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func exportRecord(a *domain.Asset) []string {
	status := "Unique"
	if a.Synced() {
		status = "Synced"
	}

	manufacturer := a.Manufacturer
	if manufacturer == "" {
		manufacturer = "Unknown"
	}

	labels := make([]string, 0, len(a.Sources))
	seen := make(map[string]bool)
	for _, origin := range a.Origins {
		if seen[origin.SourceID] {
			continue
		}
		seen[origin.SourceID] = true
		labels = append(labels, origin.SourceLabel)
	}

	return []string{
		status,
		a.PrimaryIdentifier(),
		string(a.MatchType()),
		a.Hostname,
		a.IP,
		manufacturer,
		strconv.Itoa(len(a.Sources)),
		strings.Join(labels, ", "),
	}
}
