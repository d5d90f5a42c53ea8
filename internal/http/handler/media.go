package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AssetStreamer is the slice of the media client this handler needs.
type AssetStreamer interface {
	StreamAsset(ctx context.Context, assetID, variant string, w http.ResponseWriter) error
}

type MediaHandler struct {
	Media AssetStreamer
}

// Get proxies asset bytes from the media server. ?type=thumbnail (default)
// or ?type=full.
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetID")
	if assetID == "" {
		http.Error(w, "missing asset id", http.StatusBadRequest)
		return
	}

	variant := r.URL.Query().Get("type")
	if variant == "" {
		variant = "thumbnail"
	}
	if variant != "thumbnail" && variant != "full" {
		http.Error(w, "invalid type", http.StatusBadRequest)
		return
	}

	if err := h.Media.StreamAsset(r.Context(), assetID, variant, w); err != nil {
		// Headers may already be gone if the copy broke mid-stream.
		http.Error(w, "media fetch failed", http.StatusBadGateway)
		return
	}
}
