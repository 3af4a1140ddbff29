// Package scanner discovers hosts on a subnet with nmap and feeds the
// results into the inventory as one more tabular source. Scan rows carry the
// same identity columns as uploaded files, so a scan merges with file
// inventories through the ordinary resolution pass.
package scanner

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	nmap "github.com/Ullaakut/nmap/v3"

	"assetmerge/internal/domain"
	"assetmerge/internal/loader"
	"assetmerge/internal/service"
)

// scanColumns matches the identity aliases the extractor recognizes
var scanColumns = []string{"IP Address", "MAC Address", "Hostname", "Manufacturer"}

// Config holds scan settings
type Config struct {
	// Ports are probed on each host. Empty means nmap's default set.
	Ports string
	// Timeout bounds the whole scan.
	Timeout time.Duration
	// SkipHostDiscovery treats every address as up (-Pn), for networks
	// that block ICMP.
	SkipHostDiscovery bool
}

// DefaultConfig returns sensible defaults for homelab scanning
func DefaultConfig() Config {
	return Config{
		Ports:   "22,80,443,445,3389,5900,8080,9100",
		Timeout: 10 * time.Minute,
	}
}

// Scanner runs nmap subnet scans and imports the results as sources
type Scanner struct {
	svc      *service.InventoryService
	eventBus *service.EventBus
	config   Config

	mu       sync.Mutex
	scanning bool
}

// New creates a new scanner
func New(svc *service.InventoryService, eventBus *service.EventBus, config Config) *Scanner {
	return &Scanner{
		svc:      svc,
		eventBus: eventBus,
		config:   config,
	}
}

// ScanSubnet scans a CIDR range and registers the live hosts as a new
// inventory source. Only one scan runs at a time.
func (s *Scanner) ScanSubnet(ctx context.Context, cidr string) error {
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	s.scanning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
	}()

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	log.Printf("Scanning %s (ports=%s)", cidr, s.config.Ports)
	s.eventBus.Publish(service.Event{
		Type:    service.EventScanStarted,
		Payload: map[string]string{"cidr": cidr},
	})

	table, err := s.run(ctx, cidr)
	if err != nil {
		s.eventBus.Publish(service.Event{
			Type:    service.EventScanFailed,
			Payload: map[string]string{"cidr": cidr, "error": err.Error()},
		})
		return fmt.Errorf("scan %s: %w", cidr, err)
	}

	if len(table.Rows) == 0 {
		log.Printf("Scan of %s found no live hosts", cidr)
		s.eventBus.Publish(service.Event{
			Type:    service.EventScanCompleted,
			Payload: map[string]any{"cidr": cidr, "hosts": 0},
		})
		return nil
	}

	label := fmt.Sprintf("Scan %s", cidr)
	if _, err := s.svc.ImportTable(ctx, cidr, label, domain.SourceKindScan, table); err != nil {
		s.eventBus.Publish(service.Event{
			Type:    service.EventScanFailed,
			Payload: map[string]string{"cidr": cidr, "error": err.Error()},
		})
		return fmt.Errorf("import scan results for %s: %w", cidr, err)
	}

	log.Printf("Scan of %s complete: %d hosts", cidr, len(table.Rows))
	s.eventBus.Publish(service.Event{
		Type:    service.EventScanCompleted,
		Payload: map[string]any{"cidr": cidr, "hosts": len(table.Rows)},
	})
	return nil
}

func (s *Scanner) run(ctx context.Context, cidr string) (*loader.Table, error) {
	opts := []nmap.Option{
		nmap.WithTargets(cidr),
	}
	if s.config.Ports != "" {
		opts = append(opts, nmap.WithPorts(s.config.Ports))
	}
	if s.config.SkipHostDiscovery {
		opts = append(opts, nmap.WithSkipHostDiscovery())
	}

	sc, err := nmap.NewScanner(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create nmap scanner: %w", err)
	}

	result, warnings, err := sc.Run()
	if err != nil {
		return nil, fmt.Errorf("run nmap: %w", err)
	}
	if warnings != nil && len(*warnings) > 0 {
		log.Printf("Scan warnings for %s: %v", cidr, *warnings)
	}

	return resultTable(result), nil
}

// resultTable flattens live hosts into inventory rows. MAC and vendor come
// from ARP and are only present when nmap runs with raw socket privileges on
// the local segment.
func resultTable(result *nmap.Run) *loader.Table {
	table := &loader.Table{Columns: append([]string(nil), scanColumns...)}
	if result == nil {
		return table
	}

	for _, host := range result.Hosts {
		if host.Status.State != "up" || len(host.Addresses) == 0 {
			continue
		}

		var ip, mac, vendor string
		for _, addr := range host.Addresses {
			switch addr.AddrType {
			case "ipv4":
				if ip == "" {
					ip = addr.Addr
				}
			case "mac":
				mac = addr.Addr
				vendor = addr.Vendor
			}
		}
		if ip == "" {
			ip = host.Addresses[0].Addr
		}

		var hostname string
		if len(host.Hostnames) > 0 {
			hostname = host.Hostnames[0].Name
		}

		row := domain.NewRow()
		row.Set("IP Address", domain.StringValue(ip))
		if mac != "" {
			row.Set("MAC Address", domain.StringValue(mac))
		}
		if hostname != "" {
			row.Set("Hostname", domain.StringValue(hostname))
		}
		if vendor != "" {
			row.Set("Manufacturer", domain.StringValue(vendor))
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}
