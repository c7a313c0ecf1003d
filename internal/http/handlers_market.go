package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wonderfinance/internal/core"
	"wonderfinance/internal/market"
)

func (s *Server) handleStockQuote(w http.ResponseWriter, r *http.Request) {
	s.handleQuote(w, r, core.AssetStock)
}

func (s *Server) handleCryptoQuote(w http.ResponseWriter, r *http.Request) {
	s.handleQuote(w, r, core.AssetCrypto)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request, assetType string) {
	symbol := chi.URLParam(r, "symbol")

	quote, err := s.deps.Quoter.QuoteAsset(r.Context(), assetType, symbol)
	if errors.Is(err, market.ErrSymbolNotFound) {
		writeError(w, http.StatusNotFound, "symbol not found")
		return
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	report, err := s.deps.Portfolio.Portfolio(r.Context(), userEmail(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	trending, err := s.deps.Portfolio.TrendingAssets(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trending)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	rec, err := s.deps.Portfolio.Recommendations(r.Context(), userEmail(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
