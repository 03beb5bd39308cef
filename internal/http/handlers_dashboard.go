package http

import (
	"net/http"
	"strconv"
	"time"

	"moneydash/internal/budget"
	"moneydash/internal/core"
	applog "moneydash/internal/log"
)

type summaryResponse struct {
	budget.Summary
	FormattedTotal string    `json:"formatted_total"`
	MonthLabel     string    `json:"month_label"`
	LastSync       time.Time `json:"last_sync"`
}

// handleSummary returns the realized running totals for the cached
// transaction list.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	sum := s.store.Summary()
	now := s.store.Now()
	writeJSON(w, http.StatusOK, summaryResponse{
		Summary:        sum,
		FormattedTotal: sum.Total.FormatBRL(),
		MonthLabel:     core.MonthLabel(now.Year(), now.Month()),
		LastSync:       s.store.LastSync(),
	})
}

// handleMonthlyChart returns the trailing six-month cash-flow series.
func (s *Server) handleMonthlyChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, s.store.MonthlySeries())
}

type transactionsResponse struct {
	Transactions []core.Transaction `json:"transactions"`
	LastSync     time.Time          `json:"last_sync"`
}

// handleTransactions serves the full cached list on GET and creates a
// transaction on POST.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, transactionsResponse{
			Transactions: s.store.Transactions(),
			LastSync:     s.store.LastSync(),
		})
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// handleRecentTransactions serves the most recently settled
// transactions, five by default.
func (s *Server) handleRecentTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, s.store.RecentSettled(limit))
}

// handleRefresh forces a wholesale refetch of the transaction list.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	if err := s.store.Refresh(ctx); err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Refresh failed", applog.FieldOperation, applog.OpRefresh, applog.FieldError, err.Error())
		writeError(w, http.StatusBadGateway, "refresh failed, showing last known data")
		return
	}
	writeJSON(w, http.StatusOK, transactionsResponse{
		Transactions: s.store.Transactions(),
		LastSync:     s.store.LastSync(),
	})
}
