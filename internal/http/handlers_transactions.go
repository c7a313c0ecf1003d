package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"wonderfinance/internal/core"
)

type transactionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Category    string           `json:"category"`
	Type        string           `json:"transaction_type"`
	Date        *time.Time       `json:"date"`
	Description string           `json:"description"`
	Tags        []string         `json:"tags"`
	Symbol      string           `json:"symbol"`
	Quantity    decimal.Decimal  `json:"quantity"`
	AssetType   string           `json:"asset_type"`
}

type transactionResponse struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"transaction_type"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Symbol      string          `json:"symbol,omitempty"`
	Quantity    decimal.Decimal `json:"quantity,omitempty"`
	AssetType   string          `json:"asset_type,omitempty"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Type:        string(tx.Type),
		Date:        tx.Date,
		Description: tx.Description,
		Tags:        tx.Tags,
		Symbol:      tx.Symbol,
		Quantity:    tx.Quantity,
		AssetType:   tx.AssetType,
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	draft := core.TransactionDraft{
		UserEmail:   userEmail(r),
		Amount:      req.Amount,
		Category:    req.Category,
		Type:        core.TransactionType(req.Type),
		Description: req.Description,
		Tags:        req.Tags,
		Symbol:      req.Symbol,
		Quantity:    req.Quantity,
		AssetType:   req.AssetType,
	}
	if req.Date != nil {
		draft.Date = *req.Date
	}

	tx, err := s.deps.Transactions.Create(r.Context(), draft)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days := queryInt(q.Get("days"), 0)
	limit := queryInt(q.Get("limit"), 0)

	txs, err := s.deps.Transactions.List(r.Context(), userEmail(r), q.Get("category"), days, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": out,
		"count":        len(out),
	})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.deps.Transactions.Delete(r.Context(), userEmail(r), id); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}

func (s *Server) handleTransactionAnalysis(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r.URL.Query().Get("days"), 30)

	report, err := s.deps.Transactions.Trends(r.Context(), userEmail(r), days)
	if errors.Is(err, core.ErrNoTransactions) {
		writeJSON(w, http.StatusOK, map[string]string{"message": core.ErrNoTransactions.Error()})
		return
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func queryInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
