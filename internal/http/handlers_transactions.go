package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"moneydash/internal/api"
	"moneydash/internal/core"
	applog "moneydash/internal/log"
)

// handler deadline for operations that call the remote API.
const requestTimeout = 20 * time.Second

func contextWithTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req api.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Description = sanitizeInput(req.Description)

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	if err := s.store.Create(ctx, req); err != nil {
		writeStoreError(ctx, w, err, applog.OpCreate)
		return
	}
	writeJSON(w, http.StatusCreated, transactionsResponse{
		Transactions: s.store.Transactions(),
		LastSync:     s.store.LastSync(),
	})
}

// handleTransactionByID routes /api/transactions/{id} deletes and
// /api/transactions/{id}/toggle settlement flips.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id, action, ok := parseIDPath(r.URL.Path)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	switch {
	case action == "" && r.Method == http.MethodDelete:
		if err := s.store.Delete(ctx, id); err != nil {
			writeStoreError(ctx, w, err, applog.OpDelete)
			return
		}
		writeJSON(w, http.StatusOK, transactionsResponse{
			Transactions: s.store.Transactions(),
			LastSync:     s.store.LastSync(),
		})
	case action == "toggle" && r.Method == http.MethodPost:
		if err := s.store.TogglePaid(ctx, id); err != nil {
			writeStoreError(ctx, w, err, applog.OpToggle)
			return
		}
		writeJSON(w, http.StatusOK, transactionsResponse{
			Transactions: s.store.Transactions(),
			LastSync:     s.store.LastSync(),
		})
	case action == "":
		methodNotAllowed(w, http.MethodDelete)
	case action == "toggle":
		methodNotAllowed(w, http.MethodPost)
	default:
		writeError(w, http.StatusNotFound, "unknown action")
	}
}

// writeStoreError maps store failures onto HTTP statuses: validation
// errors are the caller's fault, auth failures mean the session token
// expired, anything else is an upstream problem.
func writeStoreError(ctx context.Context, w http.ResponseWriter, err error, op string) {
	sl := applog.NewStructuredLogger(applog.FromContext(ctx))
	sl.LogError(ctx, "Store operation failed", err, applog.ComponentHTTP, op, applog.NewFields())

	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrInvalidDay),
		errors.Is(err, core.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.IsAuth() {
			writeError(w, http.StatusUnauthorized, "session expired, sign in again")
			return
		}
		writeError(w, http.StatusBadGateway, apiErr.Error())
		return
	}

	writeError(w, http.StatusBadGateway, "upstream request failed")
}
