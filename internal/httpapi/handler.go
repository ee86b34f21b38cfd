// Package httpapi exposes the box packer over HTTP, mirroring the single
// entrypoint, switch-routed handler the original Cloud Function used.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/palletize/cargopack/internal/boxpacker"
	"github.com/palletize/cargopack/internal/packer"
	"github.com/palletize/cargopack/internal/visualization"
)

// Handler is the HTTP entry point for the packing API. It is safe for
// concurrent use across requests.
type Handler struct {
	logger packer.Logger
	vizMu  sync.RWMutex
	viz    map[string]visualization.Data
}

// New builds a Handler. A nil logger defaults to a no-op sink.
func New(logger packer.Logger) *Handler {
	if logger == nil {
		logger = packer.NoopLogger()
	}
	return &Handler{logger: logger, viz: make(map[string]visualization.Data)}
}

// ServeHTTP routes requests the way the original Cloud Function did: a
// single handler switching on path and method rather than a router library.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	switch {
	case r.URL.Path == "/pack" && r.Method == http.MethodPost:
		h.handlePack(w, r)
	case strings.HasPrefix(r.URL.Path, "/pack/") && strings.HasSuffix(r.URL.Path, "/view") && r.Method == http.MethodGet:
		h.handleView(w, r)
	case r.URL.Path == "/healthz":
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handlePack(w http.ResponseWriter, r *http.Request) {
	var req PackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 || len(req.Boxes) == 0 {
		http.Error(w, "items and boxes are required", http.StatusBadRequest)
		return
	}

	items := make([]*packer.Item, len(req.Items))
	for i, d := range req.Items {
		items[i] = d.toItem()
	}
	boxes := make([]*packer.Box, len(req.Boxes))
	for i, d := range req.Boxes {
		boxes[i] = d.toBox()
	}

	result, err := boxpacker.Pack(items, boxes, boxpacker.Options{Logger: h.logger})
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	resp := PackResponse{}
	var totalVolume, itemVolume int
	for _, pb := range result.Packed {
		resp.PackedBoxes = append(resp.PackedBoxes, buildPackedBoxDTO(pb))
		totalVolume += pb.Box.Volume()
		itemVolume += pb.ItemVolume()
	}
	for _, it := range result.Unpacked {
		resp.UnpackedItems = append(resp.UnpackedItems, itemToDTO(it))
	}
	resp.TotalVolume = totalVolume
	if totalVolume > 0 {
		resp.Utilization = float64(itemVolume) / float64(totalVolume) * 100
	}

	if len(result.Packed) > 0 {
		vizID := uuid.New().String()
		h.vizMu.Lock()
		h.viz[vizID] = visualization.Data{RequestID: vizID, Boxes: result.Packed}
		h.vizMu.Unlock()
		resp.VisualizationID = vizID
	}

	h.logger.Debug("pack request served", "items", len(req.Items), "boxes_used", len(result.Packed), "unpacked", len(result.Unpacked))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/pack/"), "/view")

	h.vizMu.RLock()
	data, ok := h.viz[id]
	h.vizMu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	html, err := visualization.GenerateHTML(data)
	if err != nil {
		http.Error(w, "failed to render visualization", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}
