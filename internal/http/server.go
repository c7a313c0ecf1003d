// Package http exposes the REST API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"wonderfinance/internal/auth"
	"wonderfinance/internal/market"
	"wonderfinance/internal/news"
	"wonderfinance/internal/services"
)

// Headlines is the slice of the news client the server needs.
type Headlines interface {
	Latest(ctx context.Context, limit int) ([]news.Article, error)
}

// Deps bundles everything the server serves from.
type Deps struct {
	Tokens       *auth.TokenManager
	Users        *services.UserService
	Transactions *services.TransactionService
	Budgets      *services.BudgetService
	Portfolio    *services.PortfolioService
	Insights     *services.InsightsService
	Quoter       services.AssetQuoter
	News         Headlines
	Indices      market.PriceSource
	CORSOrigins  []string
}

type Server struct {
	http.Server
	deps    Deps
	limiter *rateLimiter
}

func NewServer(addr string, deps Deps) *Server {
	s := &Server{
		Server:  http.Server{Addr: addr},
		deps:    deps,
		limiter: newRateLimiter(),
	}

	r := chi.NewRouter()
	r.Use(s.withRequestLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", handleWelcome)
	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	r.Route("/users", func(users chi.Router) {
		users.Post("/register", s.handleRegister)
		users.Post("/login", s.handleLogin)
		users.Group(func(private chi.Router) {
			private.Use(s.withAuth)
			private.Get("/profile", s.handleGetProfile)
			private.Put("/profile", s.handleUpdateProfile)
		})
	})

	r.Group(func(private chi.Router) {
		private.Use(s.withAuth)

		private.Route("/transactions", func(tx chi.Router) {
			tx.Post("/", s.handleCreateTransaction)
			tx.Get("/", s.handleListTransactions)
			tx.Get("/analysis", s.handleTransactionAnalysis)
			tx.Delete("/{id}", s.handleDeleteTransaction)
		})

		private.Route("/budgets", func(b chi.Router) {
			b.Post("/", s.handleCreateBudget)
			b.Get("/", s.handleListBudgets)
			b.Get("/analysis", s.handleBudgetAnalysis)
			b.Put("/{category}", s.handleUpdateBudget)
			b.Delete("/{category}", s.handleDeleteBudget)
		})

		private.Route("/market", func(m chi.Router) {
			m.Get("/stock/{symbol}", s.handleStockQuote)
			m.Get("/crypto/{symbol}", s.handleCryptoQuote)
			m.Get("/portfolio", s.handlePortfolio)
			m.Get("/trending", s.handleTrending)
			m.Get("/recommendations", s.handleRecommendations)
		})

		private.Route("/news", func(n chi.Router) {
			n.Get("/latest", s.handleLatestNews)
			n.Get("/market-updates", s.handleMarketUpdates)
			n.Get("/economic-indicators", s.handleEconomicIndicators)
		})

		private.Route("/ai", func(ai chi.Router) {
			ai.Post("/suggest", s.handleSuggest)
			ai.Post("/analyze-transaction", s.handleAnalyzeTransaction)
			ai.Get("/budget-insights", s.handleBudgetInsights)
		})
	})

	s.Handler = r
	s.ReadHeaderTimeout = 10 * time.Second
	return s
}

// Shutdown stops the listener and the rate limiter's cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.stop()
	return s.Server.Shutdown(ctx)
}

func handleWelcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "Wonder Finance API",
		"version": "1.0",
		"docs":    "/healthz for liveness, /readyz for readiness",
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
