package web

import (
	"net/http"
	"net/url"

	"bar-inventory/internal/app"

	"github.com/go-chi/chi/v5"
)

// pathParam returns a decoded URL parameter. Location names contain spaces and accents.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// ── Items ─────────────────────────────────────────────────────────────────────

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListItems(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetItem(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// saveItem handles POST /api/items (create) and PUT /api/items/{id} (replace).
func (h *Handler) saveItem(w http.ResponseWriter, r *http.Request) {
	var req app.SaveItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := pathParam(r, "id")
	if id != "" {
		req.ID = id
	}
	res, err := h.svc.SaveItem(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if id == "" {
		writeCreated(w, res)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteItem(r.Context(), pathParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Stock edits ───────────────────────────────────────────────────────────────

// setStock handles PUT /api/items/{id}/stock/{location} with body {"quantity": "12,5"}.
func (h *Handler) setStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity string `json:"quantity"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	res, err := h.svc.SetStock(r.Context(), app.SetStockRequest{
		ItemID:   pathParam(r, "id"),
		Location: pathParam(r, "location"),
		Quantity: body.Quantity,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) resetItem(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ResetItem(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// bulkUpdate handles POST /api/stock/bulk, the endpoint used by scales and terminals.
func (h *Handler) bulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req app.BulkUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.BulkUpdate(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) resetAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ResetAll(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) restoreSeed(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.RestoreSeed(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// ── Barcode ───────────────────────────────────────────────────────────────────

func (h *Handler) lookupBarcode(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.LookupBarcode(r.Context(), pathParam(r, "code"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) scanReceive(w http.ResponseWriter, r *http.Request) {
	var req app.ScanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.ScanReceive(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}
