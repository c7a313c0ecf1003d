package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"wonderfinance/internal/core"
)

type suggestRequest struct {
	Question string `json:"question"`
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	advice, err := s.deps.Insights.Suggest(r.Context(), userEmail(r), req.Question)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{Advice: advice})
}

type analyzeTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"transaction_type"`
	Description string          `json:"description"`
}

func (s *Server) handleAnalyzeTransaction(w http.ResponseWriter, r *http.Request) {
	var req analyzeTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Category == "" || req.Amount.IsZero() {
		writeError(w, http.StatusBadRequest, "amount and category are required")
		return
	}

	tx := core.Transaction{
		UserEmail:   userEmail(r),
		Amount:      req.Amount,
		Category:    req.Category,
		Type:        core.TransactionType(req.Type),
		Description: req.Description,
		Date:        time.Now(),
	}
	advice, err := s.deps.Insights.AnalyzeTransaction(r.Context(), userEmail(r), tx)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{Advice: advice})
}

func (s *Server) handleBudgetInsights(w http.ResponseWriter, r *http.Request) {
	advice, err := s.deps.Insights.BudgetInsights(r.Context(), userEmail(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{Advice: advice})
}
