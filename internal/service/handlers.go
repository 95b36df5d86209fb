package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/okayfine/billsplit/internal/calculator"
	"github.com/okayfine/billsplit/internal/export"
	"github.com/okayfine/billsplit/internal/extraction"
	"github.com/okayfine/billsplit/internal/ledger"
	"github.com/okayfine/billsplit/internal/metrics"
	"github.com/okayfine/billsplit/internal/models"
)

// maxUploadBytes bounds one uploaded bill file (10 MiB).
const maxUploadBytes = 10 << 20

// LedgerService implements the HTTP API over the session registry.
type LedgerService struct {
	registry  *Registry
	extractor *extraction.Client
}

// NewLedgerService creates a LedgerService with the given extraction
// client.
func NewLedgerService(extractor *extraction.Client) *LedgerService {
	return &LedgerService{
		registry:  NewRegistry(),
		extractor: extractor,
	}
}

type itemRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type userRequest struct {
	Name string `json:"name"`
}

type ledgerResponse struct {
	LedgerID string        `json:"ledger_id"`
	Items    []models.Item `json:"items"`
	Users    []models.User `json:"users"`
}

type uploadResponse struct {
	Items    []models.Item `json:"items"`
	Fallback bool          `json:"fallback"`
}

// CreateLedger starts a new empty ledger session.
func (s *LedgerService) CreateLedger(w http.ResponseWriter, r *http.Request) {
	id := s.registry.Create()
	slog.Info("ledger created", "ledger_id", id)
	writeJSON(w, http.StatusCreated, map[string]string{"ledger_id": id})
}

// GetLedger returns the full item and user sequences of one ledger.
func (s *LedgerService) GetLedger(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	session, err := s.registry.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	var resp ledgerResponse
	session.Do(func(l *ledger.Ledger) {
		resp = ledgerResponse{LedgerID: id, Items: l.Items(), Users: l.Users()}
	})
	writeJSON(w, http.StatusOK, resp)
}

// DeleteLedger discards a ledger session. Like RemoveItem, deletion is
// idempotent: an absent ID still yields 204 rather than 404, so retried
// deletes stay safe.
func (s *LedgerService) DeleteLedger(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	s.registry.Delete(id)
	slog.Info("ledger deleted", "ledger_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// ResetLedger clears a ledger's items and users in place.
func (s *LedgerService) ResetLedger(w http.ResponseWriter, r *http.Request) {
	session, err := s.registry.Get(r.URL.Query().Get(":id"))
	if err != nil {
		writeError(w, err)
		return
	}
	session.Do(func(l *ledger.Ledger) { l.Reset() })
	w.WriteHeader(http.StatusNoContent)
}

// AddItem appends a manually entered item.
func (s *LedgerService) AddItem(w http.ResponseWriter, r *http.Request) {
	session, err := s.registry.Get(r.URL.Query().Get(":id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid item body")
		return
	}

	var item models.Item
	session.Do(func(l *ledger.Ledger) {
		item = l.AddItem(req.Name, req.Price)
	})
	metrics.ObserveLedgerOp("add_item", "ok")
	slog.Info("item added", "item_id", item.ID, "name", item.Name, "price", item.Price)
	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem replaces an item's name and price.
func (s *LedgerService) UpdateItem(w http.ResponseWriter, r *http.Request) {
	session, err := s.registry.Get(r.URL.Query().Get(":id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid item body")
		return
	}

	itemID := r.URL.Query().Get(":item_id")
	var item models.Item
	var opErr error
	session.Do(func(l *ledger.Ledger) {
		item, opErr = l.UpdateItem(itemID, req.Name, req.Price)
	})
	if opErr != nil {
		metrics.ObserveLedgerOp("update_item", "not_found")
		writeError(w, opErr)
		return
	}
	metrics.ObserveLedgerOp("update_item", "ok")
	writeJSON(w, http.StatusOK, item)
}

// RemoveItem deletes an item. Idempotent.
func (s *LedgerService) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session, err := s.registry.Get(r.URL.Query().Get(":id"))
	if err != nil {
		writeError(w, err)
		return
	}
	itemID := r.URL.Query().Get(":item_id")
	session.Do(func(l *ledger.Ledger) { l.RemoveItem(itemID) })
	metrics.ObserveLedgerOp("remove_item", "ok")
	w.WriteHeader(http.StatusNoContent)
}

// AddUser appends a user.
func (s *LedgerService) AddUser(w http.ResponseWriter, r *http.Request) {
	session, err := s.registry.Get(r.URL.Query().Get(":id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid user body")
		return
	}

	var user models.User
	session.Do(func(l *ledger.Ledger) {
		user = l.AddUser(req.Name)
	})
	metrics.ObserveLedgerOp("add_user", "ok")
	slog.Info("user added", "user_id", user.ID, "name", user.Name)
	writeJSON(w, http.StatusCreated, user)
}

// RemoveUser deletes a user and cascades the removal through every
// item's assignment set.
func (s *LedgerService) RemoveUser(w http.ResponseWriter, r *http.Request) {
	session, err := s.registry.Get(r.URL.Query().Get(":id"))
	if err != nil {
		writeError(w, err)
		return
	}
	userID := r.URL.Query().Get(":user_id")
	session.Do(func(l *ledger.Ledger) { l.RemoveUser(userID) })
	metrics.ObserveLedgerOp("remove_user", "ok")
	slog.Info("user removed", "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

// ToggleAssignment flips one user's membership in one item's assignment
// set and returns the updated item.
func (s *LedgerService) ToggleAssignment(w http.ResponseWriter, r *http.Request) {
	session, err := s.registry.Get(r.URL.Query().Get(":id"))
	if err != nil {
		writeError(w, err)
		return
	}

	itemID := r.URL.Query().Get(":item_id")
	userID := r.URL.Query().Get(":user_id")

	var item models.Item
	var opErr error
	session.Do(func(l *ledger.Ledger) {
		item, opErr = l.ToggleAssignment(itemID, userID)
	})
	if opErr != nil {
		metrics.ObserveLedgerOp("toggle_assignment", "not_found")
		writeError(w, opErr)
		return
	}
	metrics.ObserveLedgerOp("toggle_assignment", "ok")
	writeJSON(w, http.StatusOK, item)
}

// GetShares computes and returns the current breakdown.
func (s *LedgerService) GetShares(w http.ResponseWriter, r *http.Request) {
	session, err := s.registry.Get(r.URL.Query().Get(":id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var breakdown models.Breakdown
	session.Do(func(l *ledger.Ledger) {
		breakdown = calculator.ComputeShares(l.Items(), l.Users())
	})
	writeJSON(w, http.StatusOK, breakdown)
}

// GetSummary renders the shareable plain-text summary.
func (s *LedgerService) GetSummary(w http.ResponseWriter, r *http.Request) {
	session, err := s.registry.Get(r.URL.Query().Get(":id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var text string
	session.Do(func(l *ledger.Ledger) {
		items := l.Items()
		text = export.RenderSummary(items, calculator.ComputeShares(items, l.Users()))
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

// Upload sends a bill file to the extraction service and appends the
// resulting items to the ledger. On extraction failure the sample items
// are appended instead and the response flags the fallback.
func (s *LedgerService) Upload(w http.ResponseWriter, r *http.Request) {
	session, err := s.registry.Get(r.URL.Query().Get(":id"))
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "missing file upload")
		return
	}
	defer file.Close()

	mediaType := header.Header.Get("Content-Type")
	result := s.extractor.Extract(r.Context(), file, header.Filename, mediaType)
	metrics.ObserveExtraction(result.Fallback)

	var added []models.Item
	session.Do(func(l *ledger.Ledger) {
		added = l.AddItems(result.Items)
	})

	slog.Info("upload processed",
		"filename", header.Filename,
		"media_type", mediaType,
		"items_added", len(added),
		"fallback", result.Fallback,
	)
	writeJSON(w, http.StatusOK, uploadResponse{Items: added, Fallback: result.Fallback})
}

// Health reports liveness.
func (s *LedgerService) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrLedgerNotFound),
		errors.Is(err, ledger.ErrItemNotFound),
		errors.Is(err, ledger.ErrUserNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
