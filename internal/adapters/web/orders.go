package web

import (
	"net/http"

	"bar-inventory/internal/app"
)

// listOrders handles GET /api/orders?status=Pending|Completed|Archived.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListOrders(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetOrder(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// saveOrder handles POST /api/orders (create) and PUT /api/orders/{id} (edit a Pending order).
func (h *Handler) saveOrder(w http.ResponseWriter, r *http.Request) {
	var req app.SaveOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := pathParam(r, "id")
	if id != "" {
		req.ID = id
	}
	res, err := h.svc.SaveOrder(r.Context(), req)
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

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteOrder(r.Context(), pathParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) receiveOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ReceiveOrder(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) archiveOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ArchiveOrder(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) archiveCompleted(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ArchiveCompleted(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}
