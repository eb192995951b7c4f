package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"bar-inventory/internal/app"
	"bar-inventory/internal/core"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	maxUploadSize    = 10 << 20 // 10 MB
	uploadCleanupAge = 30 * time.Minute
	pendingTTL       = 15 * time.Minute
)

// allowedMIMETypes is the whitelist for delivery note photos.
var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// pendingCapture is a captured order held server-side until the operator confirms or cancels.
type pendingCapture struct {
	Order        core.PurchaseOrder
	AttachmentID string
	CreatedAt    time.Time
}

// pendingStore is a thread-safe in-memory store with TTL expiry.
type pendingStore struct {
	mu      sync.Mutex
	entries map[string]pendingCapture
}

func newPendingStore() *pendingStore {
	return &pendingStore{entries: make(map[string]pendingCapture)}
}

func (s *pendingStore) put(token string, p pendingCapture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = p
}

func (s *pendingStore) get(token string) (pendingCapture, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.entries[token]
	if !ok {
		return pendingCapture{}, false
	}
	if time.Since(p.CreatedAt) > pendingTTL {
		delete(s.entries, token)
		return pendingCapture{}, false
	}
	return p, true
}

// take removes and returns the entry, so a token confirms at most once.
func (s *pendingStore) take(token string) (pendingCapture, bool) {
	p, ok := s.get(token)
	if ok {
		s.delete(token)
	}
	return p, ok
}

func (s *pendingStore) delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
}

// purgeExpired drops expired entries and hands each one to onEvict.
func (s *pendingStore) purgeExpired(onEvict func(pendingCapture)) {
	s.mu.Lock()
	var expired []pendingCapture
	for token, p := range s.entries {
		if time.Since(p.CreatedAt) > pendingTTL {
			expired = append(expired, p)
			delete(s.entries, token)
		}
	}
	s.mu.Unlock()
	for _, p := range expired {
		onEvict(p)
	}
}

// startPurge starts a background goroutine that evicts expired entries every 5 minutes.
func (s *pendingStore) startPurge(ctx context.Context, onEvict func(pendingCapture)) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.purgeExpired(onEvict)
			}
		}
	}()
}

func (h *Handler) removeUpload(p pendingCapture) {
	if p.AttachmentID == "" {
		return
	}
	if err := os.Remove(filepath.Join(h.uploadDir, p.AttachmentID)); err != nil && !os.IsNotExist(err) {
		h.log.WithField("attachment", p.AttachmentID).WithError(err).Warn("failed to remove upload")
	}
}

// captureResponse is returned by POST /api/orders/capture.
type captureResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	*app.CaptureResult
}

// captureOrder handles POST /api/orders/capture. It reads a delivery note photo into a
// candidate order and holds it behind a token.
func (h *Handler) captureOrder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, r, "request too large or malformed", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	f, fh, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, "no file provided", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		writeError(w, r, "failed to read uploaded file", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > maxUploadSize {
		writeError(w, r, fmt.Sprintf("file exceeds maximum size of %d MB", maxUploadSize>>20),
			"FILE_TOO_LARGE", http.StatusRequestEntityTooLarge)
		return
	}

	mimeType := strings.ToLower(strings.TrimSpace(http.DetectContentType(data)))
	if !allowedMIMETypes[mimeType] {
		writeError(w, r, fmt.Sprintf("file type %q not allowed; accepted: jpeg, png, webp", mimeType),
			"UNSUPPORTED_TYPE", http.StatusUnsupportedMediaType)
		return
	}

	// Save to upload directory with UUID filename until the capture is confirmed.
	attachmentID := uuid.NewString()
	if err := os.WriteFile(filepath.Join(h.uploadDir, attachmentID), data, 0600); err != nil {
		writeError(w, r, "failed to save uploaded file", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	res, err := h.svc.CaptureOrder(r.Context(), app.Attachment{MimeType: mimeType, Data: data})
	if err != nil {
		h.removeUpload(pendingCapture{AttachmentID: attachmentID})
		h.writeServiceError(w, r, err)
		return
	}

	token := uuid.NewString()
	now := time.Now()
	h.pending.put(token, pendingCapture{Order: res.Order, AttachmentID: attachmentID, CreatedAt: now})
	h.log.WithFields(logrus.Fields{
		"file":      fh.Filename,
		"lines":     len(res.Order.Lines),
		"unmatched": len(res.Unmatched),
	}).Info("delivery note captured")
	writeJSON(w, captureResponse{Token: token, ExpiresAt: now.Add(pendingTTL).UTC(), CaptureResult: res})
}

// confirmCapture handles POST /api/orders/capture/confirm with
// {"token": "...", "action": "confirm"|"cancel", "order": {...optional edits}}.
func (h *Handler) confirmCapture(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token  string                `json:"token"`
		Action string                `json:"action"`
		Order  *app.SaveOrderRequest `json:"order"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Action != "confirm" && req.Action != "cancel" {
		writeError(w, r, `action must be "confirm" or "cancel"`, "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	p, ok := h.pending.take(req.Token)
	if !ok {
		writeError(w, r, "capture not found or expired", "NOT_FOUND", http.StatusNotFound)
		return
	}
	defer h.removeUpload(p)

	if req.Action == "cancel" {
		writeJSON(w, map[string]any{"cancelled": true})
		return
	}

	save := captureToRequest(p.Order)
	if req.Order != nil {
		save = *req.Order
		save.ID = ""
	}
	res, err := h.svc.SaveOrder(r.Context(), save)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeCreated(w, res)
}

func captureToRequest(o core.PurchaseOrder) app.SaveOrderRequest {
	req := app.SaveOrderRequest{OrderDate: o.OrderDate, SupplierName: o.SupplierName}
	for _, l := range o.Lines {
		req.Lines = append(req.Lines, app.OrderLineInput{
			InventoryItemID: l.InventoryItemID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
		})
	}
	return req
}

// startUploadCleanup runs a background goroutine that deletes uploaded files older than
// uploadCleanupAge every 10 minutes.
func (h *Handler) startUploadCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			entries, err := os.ReadDir(h.uploadDir)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() || uuid.Validate(entry.Name()) != nil {
					continue
				}
				info, err := entry.Info()
				if err != nil {
					continue
				}
				if time.Since(info.ModTime()) > uploadCleanupAge {
					os.Remove(filepath.Join(h.uploadDir, entry.Name()))
				}
			}
		}
	}()
}
