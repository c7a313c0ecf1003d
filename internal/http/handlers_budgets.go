package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"wonderfinance/internal/core"
	"wonderfinance/internal/storage"
)

type budgetRequest struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Period   string          `json:"period"`
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Period == "" {
		req.Period = string(core.PeriodMonthly)
	}

	b := core.Budget{
		UserEmail: userEmail(r),
		Category:  req.Category,
		Amount:    req.Amount,
		Period:    core.BudgetPeriod(req.Period),
	}
	if err := s.deps.Budgets.Create(r.Context(), b); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "budget created"})
}

type budgetResponse struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Period      string          `json:"period"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percentage_used"`
	Status      string          `json:"status"`
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	overview, err := s.deps.Budgets.Overview(r.Context(), userEmail(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]budgetResponse, 0, len(overview))
	for _, o := range overview {
		out = append(out, budgetResponse{
			Category:    o.Budget.Category,
			Amount:      o.Budget.Amount,
			Period:      string(o.Budget.Period),
			Spent:       o.Status.Spent,
			Remaining:   o.Status.Remaining,
			PercentUsed: o.Status.PercentUsed,
			Status:      o.Status.Status,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"budgets": out})
}

type budgetUpdateRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Period *string          `json:"period"`
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	upd := storage.BudgetUpdate{Amount: req.Amount}
	if req.Period != nil {
		p := core.BudgetPeriod(*req.Period)
		upd.Period = &p
	}

	err := s.deps.Budgets.Update(r.Context(), userEmail(r), chi.URLParam(r, "category"), upd)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "budget updated"})
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Budgets.Delete(r.Context(), userEmail(r), chi.URLParam(r, "category"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "budget deleted"})
}

func (s *Server) handleBudgetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.deps.Budgets.Analysis(r.Context(), userEmail(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analysis": analysis})
}
