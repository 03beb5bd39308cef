package http

import (
	"encoding/json"
	"net/http"

	"moneydash/internal/budget"
	"moneydash/internal/core"
	applog "moneydash/internal/log"
)

type salaryRequest struct {
	Amount core.Money `json:"amount"`
}

type fixedExpenseRequest struct {
	Name   string     `json:"name"`
	Amount core.Money `json:"amount"`
	Day    int        `json:"day"`
}

// handleBudget routes the pay-period endpoints:
//
//	GET  /api/budget/{period}          budget view
//	PUT  /api/budget/{period}/salary   salary upsert
//	POST /api/budget/{period}/expenses fixed expense
func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	name, action, ok := parsePeriodPath(r.URL.Path)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing pay period")
		return
	}
	period, err := budget.ParsePayPeriod(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.store.PeriodView(period))
	case action == "salary" && r.Method == http.MethodPut:
		s.upsertSalary(w, r, period)
	case action == "expenses" && r.Method == http.MethodPost:
		s.addFixedExpense(w, r, period)
	case action == "":
		methodNotAllowed(w, http.MethodGet)
	case action == "salary":
		methodNotAllowed(w, http.MethodPut)
	case action == "expenses":
		methodNotAllowed(w, http.MethodPost)
	default:
		writeError(w, http.StatusNotFound, "unknown action")
	}
}

func (s *Server) upsertSalary(w http.ResponseWriter, r *http.Request, period budget.PayPeriod) {
	var req salaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	if err := s.store.UpsertSalary(ctx, period, req.Amount); err != nil {
		writeStoreError(ctx, w, err, applog.OpUpsert)
		return
	}
	writeJSON(w, http.StatusOK, s.store.PeriodView(period))
}

func (s *Server) addFixedExpense(w http.ResponseWriter, r *http.Request, period budget.PayPeriod) {
	var req fixedExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = sanitizeInput(req.Name)

	// The due day must fall inside the period it is added to, or the
	// bill would silently land in a different budget column.
	spec := period.Spec()
	if req.Day < spec.DayStart || req.Day > spec.DayEnd {
		writeError(w, http.StatusBadRequest, "day outside the pay period")
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	if err := s.store.AddFixedExpense(ctx, req.Name, req.Amount, req.Day); err != nil {
		writeStoreError(ctx, w, err, applog.OpCreate)
		return
	}
	writeJSON(w, http.StatusCreated, s.store.PeriodView(period))
}
