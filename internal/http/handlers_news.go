package http

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"wonderfinance/internal/market"
	"wonderfinance/internal/news"
)

const defaultHeadlineLimit = 20

// marketIndices are the benchmark indices shown in market updates.
var marketIndices = []struct {
	Symbol string
	Name   string
}{
	{"^GSPC", "S&P 500"},
	{"^DJI", "Dow Jones"},
	{"^IXIC", "Nasdaq"},
	{"^NSEI", "Nifty 50"},
	{"^BSESN", "Sensex"},
}

func (s *Server) handleLatestNews(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r.URL.Query().Get("limit"), defaultHeadlineLimit)

	articles, err := s.deps.News.Latest(r.Context(), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"articles": articles,
		"count":    len(articles),
	})
}

type indexQuote struct {
	Name string `json:"name"`
	market.Quote
}

// handleMarketUpdates quotes the benchmark indices concurrently. Indices
// whose lookup fails are dropped rather than failing the response.
func (s *Server) handleMarketUpdates(w http.ResponseWriter, r *http.Request) {
	quotes := make([]*indexQuote, len(marketIndices))

	g, gctx := errgroup.WithContext(r.Context())
	g.SetLimit(4)
	for i, index := range marketIndices {
		i, index := i, index
		g.Go(func() error {
			quote, err := s.deps.Indices.Price(gctx, index.Symbol)
			if err != nil {
				return nil
			}
			quotes[i] = &indexQuote{Name: index.Name, Quote: quote}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]indexQuote, 0, len(quotes))
	for _, q := range quotes {
		if q != nil {
			out = append(out, *q)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"indices":    out,
		"updated_at": time.Now().UTC(),
	})
}

func (s *Server) handleEconomicIndicators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"indicators": news.EconomicIndicators(),
	})
}
