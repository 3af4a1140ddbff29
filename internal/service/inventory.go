package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"assetmerge/internal/domain"
	"assetmerge/internal/identity"
	"assetmerge/internal/loader"
	"assetmerge/internal/repository"
)

var (
	// ErrSourceLimit is returned when the configured source cap is reached
	ErrSourceLimit = errors.New("source limit reached")
	// ErrSourceNotFound is returned for operations on unknown source IDs
	ErrSourceNotFound = errors.New("source not found")
)

// InventoryService orchestrates the import-resolve pipeline: sources come in
// from uploads, drop-directory imports, and scans; every change to the
// source set triggers a full re-resolution of the asset view.
type InventoryService struct {
	store      repository.SourceStore
	eventBus   *EventBus
	maxSources int

	// mu serializes mutations and resolution so concurrent uploads cannot
	// interleave a fold.
	mu     sync.Mutex
	assets []*domain.Asset
	stale  bool
}

// NewInventoryService creates a new inventory service
func NewInventoryService(store repository.SourceStore, eventBus *EventBus, maxSources int) *InventoryService {
	return &InventoryService{
		store:      store,
		eventBus:   eventBus,
		maxSources: maxSources,
		stale:      true,
	}
}

// ImportFile parses an uploaded inventory file and registers it as a source
func (s *InventoryService) ImportFile(ctx context.Context, filename, label string, data []byte) (*domain.Source, error) {
	table, err := loader.Parse(filename, data)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", filename, err)
	}
	return s.ImportTable(ctx, filename, label, domain.SourceKindFile, table)
}

// ImportTable registers already-parsed rows as a source. Scan results enter
// through here as well, with kind SourceKindScan.
func (s *InventoryService) ImportTable(ctx context.Context, filename, label string, kind domain.SourceKind, table *loader.Table) (*domain.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.store.CountSources(ctx)
	if err != nil {
		return nil, err
	}
	if s.maxSources > 0 && count >= s.maxSources {
		return nil, fmt.Errorf("%w (max %d)", ErrSourceLimit, s.maxSources)
	}

	position, err := s.store.NextPosition(ctx)
	if err != nil {
		return nil, err
	}

	src := domain.NewSource(label, filename, kind, position, table.Columns, table.Rows)
	if err := s.store.CreateSource(ctx, src, position); err != nil {
		return nil, err
	}

	s.stale = true
	log.Printf("Imported source %q (%s): %d rows", src.Label, src.ID, src.RowCount())

	s.eventBus.Publish(Event{
		Type: EventSourceAdded,
		Payload: map[string]any{
			"source_id": src.ID,
			"label":     src.Label,
			"rows":      src.RowCount(),
		},
	})
	if err := s.resolveLocked(ctx); err != nil {
		return nil, err
	}

	return src, nil
}

// RemoveSource deletes a source and rebuilds the asset view
func (s *InventoryService) RemoveSource(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existed, err := s.store.DeleteSource(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, id)
	}

	s.stale = true
	s.eventBus.Publish(Event{
		Type:    EventSourceRemoved,
		Payload: map[string]string{"source_id": id},
	})
	if err := s.resolveLocked(ctx); err != nil {
		return err
	}

	return nil
}

// RelabelSource changes a source's display label. Labels are presentation
// only; the resolved assets keep their existing provenance labels until the
// next rebuild, so a rebuild is triggered here too.
func (s *InventoryService) RelabelSource(ctx context.Context, id, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.store.UpdateSourceLabel(ctx, id, label)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, id)
	}

	s.stale = true
	s.eventBus.Publish(Event{
		Type:    EventSourceRelabeled,
		Payload: map[string]string{"source_id": id, "label": label},
	})
	if err := s.resolveLocked(ctx); err != nil {
		return err
	}

	return nil
}

// Sources returns all sources in import order
func (s *InventoryService) Sources(ctx context.Context) ([]*domain.Source, error) {
	return s.store.ListSources(ctx)
}

// GetSource returns one source, or ErrSourceNotFound
func (s *InventoryService) GetSource(ctx context.Context, id string) (*domain.Source, error) {
	src, err := s.store.GetSource(ctx, id)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, id)
	}
	return src, nil
}

// Assets returns the resolved asset view, rebuilding it if the source set
// changed since the last resolution
func (s *InventoryService) Assets(ctx context.Context) ([]*domain.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale {
		if err := s.resolveLocked(ctx); err != nil {
			return nil, err
		}
	}
	return s.assets, nil
}

// Query returns the filtered asset view, preserving resolution order
func (s *InventoryService) Query(ctx context.Context, q identity.Query) ([]*domain.Asset, error) {
	assets, err := s.Assets(ctx)
	if err != nil {
		return nil, err
	}
	return identity.Filter(assets, q), nil
}

// resolveLocked rebuilds the asset view from scratch. Callers hold s.mu.
// The previous asset list is discarded, never patched.
func (s *InventoryService) resolveLocked(ctx context.Context) error {
	sources, err := s.store.ListSources(ctx)
	if err != nil {
		return err
	}

	s.assets = identity.Resolve(sources)
	s.stale = false

	rowCount := 0
	for _, src := range sources {
		rowCount += src.RowCount()
	}
	log.Printf("Resolved %d assets from %d sources (%d rows)", len(s.assets), len(sources), rowCount)

	s.eventBus.Publish(Event{
		Type: EventAssetsResolved,
		Payload: map[string]int{
			"assets":  len(s.assets),
			"sources": len(sources),
		},
	})

	return nil
}
