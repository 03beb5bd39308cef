package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"log/slog"
)

// ContextKey type for context keys
type ContextKey string

const requestIDKey ContextKey = "request_id"

// extractClientIP resolves the client address, honoring proxy headers.
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// parseIDPath splits "/api/transactions/{id}" or
// "/api/transactions/{id}/toggle" into the id and trailing action.
func parseIDPath(path string) (int64, string, bool) {
	rest := strings.TrimPrefix(path, "/api/transactions/")
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return 0, "", false
	}
	idPart, action, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id < 1 {
		return 0, "", false
	}
	return id, action, true
}

// parsePeriodPath splits "/api/budget/{period}" or
// "/api/budget/{period}/salary" into the period name and trailing
// action.
func parsePeriodPath(path string) (string, string, bool) {
	rest := strings.TrimPrefix(path, "/api/budget/")
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return "", "", false
	}
	period, action, _ := strings.Cut(rest, "/")
	return period, action, true
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
