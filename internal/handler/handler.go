package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"assetmerge/internal/domain"
	"assetmerge/internal/identity"
	"assetmerge/internal/service"
)

// maxUploadBytes caps a single inventory file upload
const maxUploadBytes = 16 << 20

// SubnetScanner allows scanning network subnets for hosts
type SubnetScanner interface {
	ScanSubnet(ctx context.Context, cidr string) error
}

// InventoryHandler handles inventory API requests
type InventoryHandler struct {
	svc      *service.InventoryService
	scanner  SubnetScanner
	pageSize int
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(svc *service.InventoryService, pageSize int) *InventoryHandler {
	if pageSize <= 0 {
		pageSize = 500
	}
	return &InventoryHandler{svc: svc, pageSize: pageSize}
}

// SetSubnetScanner sets the subnet scanner
func (h *InventoryHandler) SetSubnetScanner(s SubnetScanner) {
	h.scanner = s
}

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// UploadSource accepts a multipart inventory file and registers it as a source
func (h *InventoryHandler) UploadSource(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, "Invalid multipart form", err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, "File required", "Upload the inventory file in the \"file\" form field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		writeError(w, "Failed to read upload", err.Error(), http.StatusBadRequest)
		return
	}
	if len(data) > maxUploadBytes {
		writeError(w, "File too large", fmt.Sprintf("Uploads are limited to %d bytes", maxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	label := r.FormValue("label")

	src, err := h.svc.ImportFile(r.Context(), header.Filename, label, data)
	if err != nil {
		if errors.Is(err, service.ErrSourceLimit) {
			writeError(w, "Source limit reached", err.Error(), http.StatusConflict)
			return
		}
		log.Printf("Failed to import %s: %v", header.Filename, err)
		writeError(w, "Failed to import file", err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, src, http.StatusCreated)
}

// ListSources returns all sources in import order
func (h *InventoryHandler) ListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.svc.Sources(r.Context())
	if err != nil {
		log.Printf("Failed to list sources: %v", err)
		writeError(w, "Failed to list sources", err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, sources, http.StatusOK)
}

// GetSource returns a single source with its rows
func (h *InventoryHandler) GetSource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	src, err := h.svc.GetSource(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSourceNotFound) {
			writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to get source: %v", err)
		writeError(w, "Failed to get source", err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, src, http.StatusOK)
}

// DeleteSource removes a source and rebuilds the asset view
func (h *InventoryHandler) DeleteSource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.svc.RemoveSource(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrSourceNotFound) {
			writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to delete source: %v", err)
		writeError(w, "Failed to delete source", err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RelabelRequest is the body for label updates
type RelabelRequest struct {
	Label string `json:"label"`
}

// RelabelSource changes a source's display label
func (h *InventoryHandler) RelabelSource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req RelabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Label) == "" {
		writeError(w, "Label required", "Provide a non-empty label", http.StatusBadRequest)
		return
	}

	if err := h.svc.RelabelSource(r.Context(), id, strings.TrimSpace(req.Label)); err != nil {
		if errors.Is(err, service.ErrSourceNotFound) {
			writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to relabel source: %v", err)
		writeError(w, "Failed to relabel source", err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AssetPage is one page of the resolved asset view
type AssetPage struct {
	Assets   []*domain.Asset `json:"assets"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Pages    int             `json:"pages"`
}

// ListAssets returns the filtered, paginated asset view
func (h *InventoryHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	q := identity.Query{
		Text:        r.URL.Query().Get("q"),
		Cardinality: identity.CardinalityAll,
	}

	if raw := r.URL.Query().Get("sources"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				q.Sources = append(q.Sources, id)
			}
		}
	}

	switch match := r.URL.Query().Get("match"); match {
	case "", string(identity.CardinalityAll):
	case string(identity.CardinalityUnique):
		q.Cardinality = identity.CardinalityUnique
	case string(identity.CardinalitySynced):
		q.Cardinality = identity.CardinalitySynced
	default:
		writeError(w, "Invalid match filter", fmt.Sprintf("Unknown match value %q", match), http.StatusBadRequest)
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, "Invalid page", fmt.Sprintf("Page must be a positive integer, got %q", raw), http.StatusBadRequest)
			return
		}
		page = n
	}

	assets, err := h.svc.Query(r.Context(), q)
	if err != nil {
		log.Printf("Failed to query assets: %v", err)
		writeError(w, "Failed to query assets", err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, paginate(assets, page, h.pageSize), http.StatusOK)
}

func paginate(assets []*domain.Asset, page, pageSize int) AssetPage {
	total := len(assets)
	pages := (total + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	out := assets[start:end]
	if out == nil {
		out = []*domain.Asset{}
	}

	return AssetPage{
		Assets:   out,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Pages:    pages,
	}
}

// ExportCSV streams the resolved asset view as a CSV download
func (h *InventoryHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("assets-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.svc.WriteCSV(r.Context(), w); err != nil {
		// Headers are already sent; the truncated body is all we can signal
		log.Printf("Failed to export CSV: %v", err)
	}
}

// ScanRequest is the body for subnet scan requests
type ScanRequest struct {
	CIDR string `json:"cidr"`
}

// TriggerScan starts a background subnet scan that imports its results as a
// new source when it completes
func (h *InventoryHandler) TriggerScan(w http.ResponseWriter, r *http.Request) {
	if h.scanner == nil {
		writeError(w, "Scanner not configured", "No subnet scanner is registered", http.StatusServiceUnavailable)
		return
	}

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.CIDR == "" {
		writeError(w, "CIDR required", "Provide a CIDR range to scan (e.g., 192.168.0.0/24)", http.StatusBadRequest)
		return
	}

	go func() {
		if err := h.scanner.ScanSubnet(context.Background(), req.CIDR); err != nil {
			log.Printf("Subnet scan failed: %v", err)
		}
	}()

	writeJSON(w, map[string]string{
		"status": "scan_started",
		"cidr":   req.CIDR,
	}, http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, msg, details string, status int) {
	writeJSON(w, ErrorResponse{Error: msg, Details: details}, status)
}
