package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"bar-inventory/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Options configures the HTTP adapter.
type Options struct {
	AllowedOrigins string
	JWTSecret      string // empty disables auth
	OperatorPIN    string
	UploadDir      string // defaults to os.TempDir()
	MaxBodyBytes   int64  // defaults to 1 MiB
}

// Handler holds the ApplicationService, the chi router, and the pending capture store.
type Handler struct {
	svc         app.ApplicationService
	router      chi.Router
	pending     *pendingStore
	jwtSecret   string
	operatorPIN string
	uploadDir   string // directory for delivery note photos awaiting confirmation
	log         logrus.FieldLogger
}

// NewHandler creates and wires the chi router with all routes. Background maintenance
// goroutines stop when ctx is cancelled.
func NewHandler(ctx context.Context, svc app.ApplicationService, opts Options, log logrus.FieldLogger) http.Handler {
	if opts.UploadDir == "" {
		opts.UploadDir = os.TempDir()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	log = log.WithField("module", "web")

	h := &Handler{
		svc:         svc,
		pending:     newPendingStore(),
		jwtSecret:   opts.JWTSecret,
		operatorPIN: opts.OperatorPIN,
		uploadDir:   opts.UploadDir,
		log:         log,
	}

	h.pending.startPurge(ctx, h.removeUpload)
	h.startUploadCleanup(ctx)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(opts.AllowedOrigins))

	// ── Public ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Post("/api/auth/logout", h.logout)
	r.With(RequestBodyLimit(opts.MaxBodyBytes)).Post("/api/auth/login", h.login)

	// ── Reads ─────────────────────────────────────────────────────────────────
	r.Get("/api/items", h.listItems)
	r.Get("/api/items/{id}", h.getItem)
	r.Get("/api/barcodes/{code}", h.lookupBarcode)
	r.Get("/api/orders", h.listOrders)
	r.Get("/api/orders/{id}", h.getOrder)
	r.Get("/api/periods/preview", h.previewAnalysis)
	r.Get("/api/reorder", h.smartReorder)
	r.Get("/api/stats", h.stats)
	r.Get("/api/records", h.listRecords)
	r.Get("/api/records/{id}", h.getRecord)
	r.Get("/api/records/{id}/export", h.exportRecord)

	// ── Writes (JWT when configured) ──────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		// Photo upload: body limit is managed inside the handler.
		r.Post("/api/orders/capture", h.captureOrder)

		r.Group(func(r chi.Router) {
			r.Use(RequestBodyLimit(opts.MaxBodyBytes))

			r.Get("/api/auth/me", h.me)

			r.Post("/api/items", h.saveItem)
			r.Put("/api/items/{id}", h.saveItem)
			r.Delete("/api/items/{id}", h.deleteItem)
			r.Put("/api/items/{id}/stock/{location}", h.setStock)
			r.Post("/api/items/{id}/reset", h.resetItem)
			r.Post("/api/stock/bulk", h.bulkUpdate)
			r.Post("/api/stock/reset", h.resetAll)
			r.Post("/api/stock/scan", h.scanReceive)
			r.Post("/api/catalog/restore", h.restoreSeed)

			r.Post("/api/orders", h.saveOrder)
			r.Put("/api/orders/{id}", h.saveOrder)
			r.Delete("/api/orders/{id}", h.deleteOrder)
			r.Post("/api/orders/{id}/receive", h.receiveOrder)
			r.Post("/api/orders/{id}/archive", h.archiveOrder)
			r.Post("/api/orders/archive-completed", h.archiveCompleted)
			r.Post("/api/orders/capture/confirm", h.confirmCapture)

			r.Post("/api/periods/snapshot", h.closeSnapshot)
			r.Post("/api/periods/analysis", h.closeAnalysis)
			r.Post("/api/reorder/draft", h.draftReorder)

			r.Delete("/api/records", h.deleteAllRecords)
			r.Delete("/api/records/{id}", h.deleteRecord)
		})
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
		Auth   bool   `json:"auth"`
	}
	writeJSON(w, response{Status: "ok", Auth: h.jwtSecret != ""})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
