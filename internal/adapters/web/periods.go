package web

import (
	"fmt"
	"net/http"
	"strconv"

	"bar-inventory/internal/app"
)

// ── Period close ──────────────────────────────────────────────────────────────

func (h *Handler) previewAnalysis(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.PreviewAnalysis(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// closeSnapshot handles POST /api/periods/snapshot with optional crate tallies.
func (h *Handler) closeSnapshot(w http.ResponseWriter, r *http.Request) {
	var req app.SnapshotRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.CloseSnapshot(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeCreated(w, res)
}

// closeAnalysis handles POST /api/periods/analysis with {"reset_ledger": bool}.
func (h *Handler) closeAnalysis(w http.ResponseWriter, r *http.Request) {
	var req app.AnalysisRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.CloseAnalysis(r.Context(), req)
	if err != nil {
		if res != nil {
			// The record was written; res.Warning carries the failed follow-up step.
			h.log.WithError(err).Warn("analysis closed with errors")
			writeJSON(w, res)
			return
		}
		h.writeServiceError(w, r, err)
		return
	}
	writeCreated(w, res)
}

// ── Reorder ───────────────────────────────────────────────────────────────────

func (h *Handler) smartReorder(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.SmartReorder(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) draftReorder(w http.ResponseWriter, r *http.Request) {
	var req app.DraftReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.DraftReorder(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeCreated(w, res)
}

// stats handles GET /api/stats?record=<id>&category=<name>.
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.svc.Stats(r.Context(), q.Get("record"), q.Get("category"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// ── History ───────────────────────────────────────────────────────────────────

// listRecords handles GET /api/records?type=analysis|snapshot.
func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListRecords(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetRecord(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteRecord(r.Context(), pathParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteAllRecords(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.DeleteAllRecords(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]int{"deleted": n})
}

// exportRecord handles GET /api/records/{id}/export?format=csv|xlsx as a download.
func (h *Handler) exportRecord(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ExportRecord(r.Context(), pathParam(r, "id"), r.URL.Query().Get("format"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", strconv.Quote(res.Filename)))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	_, _ = w.Write(res.Data)
}
