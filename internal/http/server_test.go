package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"wonderfinance/internal/auth"
	"wonderfinance/internal/market"
	"wonderfinance/internal/news"
	"wonderfinance/internal/services"
	"wonderfinance/internal/storage"
)

type fakeQuoter struct {
	prices map[string]decimal.Decimal
}

func (q *fakeQuoter) QuoteAsset(ctx context.Context, assetType, symbol string) (market.Quote, error) {
	price, ok := q.prices[symbol]
	if !ok {
		return market.Quote{}, market.ErrSymbolNotFound
	}
	return market.Quote{Symbol: symbol, Price: price}, nil
}

type fakeIndices struct{}

func (fakeIndices) Price(ctx context.Context, symbol string) (market.Quote, error) {
	return market.Quote{Symbol: symbol, Price: decimal.NewFromInt(5000)}, nil
}

type fakeNews struct{}

func (fakeNews) Latest(ctx context.Context, limit int) ([]news.Article, error) {
	return []news.Article{{Title: "Markets rally", Source: "Reuters"}}, nil
}

type fakeAdvisor struct {
	err error
}

func (a *fakeAdvisor) Advise(ctx context.Context, prompt string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	return "Save more.", nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo, err := storage.New(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	quoter := &fakeQuoter{prices: map[string]decimal.Decimal{
		"AAPL":    decimal.RequireFromString("250"),
		"bitcoin": decimal.RequireFromString("60000"),
	}}

	srv := NewServer(":0", Deps{
		Tokens:       tokens,
		Users:        services.NewUserService(repo, tokens),
		Transactions: services.NewTransactionService(repo, nil),
		Budgets:      services.NewBudgetService(repo),
		Portfolio:    services.NewPortfolioService(repo, quoter),
		Insights:     services.NewInsightsService(repo, &fakeAdvisor{}),
		Quoter:       quoter,
		News:         fakeNews{},
		Indices:      fakeIndices{},
		CORSOrigins:  []string{"http://localhost:3000"},
	})
	t.Cleanup(func() { srv.Shutdown(context.Background()) })

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var payload map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return resp, payload
}

func register(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/users/register", "",
		map[string]string{"email": "jane@example.com", "password": "s3cret"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, body %v", resp.StatusCode, payload)
	}
	token, _ := payload["access_token"].(string)
	if token == "" {
		t.Fatal("register returned no token")
	}
	return token
}

func TestRegisterLoginFlow(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts)

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/users/login", "",
		map[string]string{"email": "jane@example.com", "password": "s3cret"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, body %v", resp.StatusCode, payload)
	}

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/users/login", "",
		map[string]string{"email": "jane@example.com", "password": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", resp.StatusCode)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/users/register", "",
		map[string]string{"email": "jane@example.com", "password": "s3cret"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register status = %d, want 400", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, url := range []string{"/transactions", "/budgets", "/market/portfolio", "/users/profile"} {
		resp, _ := doJSON(t, http.MethodGet, ts.URL+url, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s status = %d, want 401", url, resp.StatusCode)
		}
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	ts := newTestServer(t)
	token := register(t, ts)

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/transactions", token,
		map[string]any{"category": "groceries", "transaction_type": "expense"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if payload["error"] != "missing field: amount" {
		t.Fatalf("error = %v, want missing field: amount", payload["error"])
	}
}

func TestTransactionLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := register(t, ts)

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/transactions", token, map[string]any{
		"amount":           "120.50",
		"category":         "groceries",
		"transaction_type": "expense",
		"description":      "weekly shop",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %v", resp.StatusCode, payload)
	}
	id := int64(payload["id"].(float64))

	resp, payload = doJSON(t, http.MethodGet, ts.URL+"/transactions", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	if payload["count"].(float64) != 1 {
		t.Fatalf("count = %v, want 1", payload["count"])
	}

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/transactions/%d", ts.URL, id), token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/transactions/%d", ts.URL, id), token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestTransactionAnalysisNoData(t *testing.T) {
	ts := newTestServer(t)
	token := register(t, ts)

	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/transactions/analysis", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if payload["message"] != "no transaction data available" {
		t.Fatalf("message = %v", payload["message"])
	}
}

func TestBudgetLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := register(t, ts)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/budgets", token,
		map[string]any{"category": "groceries", "amount": "1000"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	// Spend past the target so the status flips.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/transactions", token, map[string]any{
		"amount": "1200", "category": "groceries", "transaction_type": "expense",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("spend status = %d", resp.StatusCode)
	}

	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/budgets", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	budgets := payload["budgets"].([]any)
	if len(budgets) != 1 {
		t.Fatalf("expected 1 budget, got %d", len(budgets))
	}
	entry := budgets[0].(map[string]any)
	if entry["status"] != "over_budget" {
		t.Fatalf("status = %v, want over_budget", entry["status"])
	}

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/budgets/groceries", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
}

func TestStockQuoteEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := register(t, ts)

	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/market/stock/AAPL", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if payload["symbol"] != "AAPL" {
		t.Fatalf("symbol = %v", payload["symbol"])
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/market/stock/UNKNOWN", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown symbol status = %d, want 404", resp.StatusCode)
	}
}

func TestMarketUpdatesEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := register(t, ts)

	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/news/market-updates", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	indices := payload["indices"].([]any)
	if len(indices) != 5 {
		t.Fatalf("expected 5 indices, got %d", len(indices))
	}
}

func TestEconomicIndicatorsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := register(t, ts)

	resp, payload := doJSON(t, http.MethodGet, ts.URL+"/news/economic-indicators", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(payload["indicators"].([]any)) == 0 {
		t.Fatal("expected indicators")
	}
}

func TestSuggestRequiresQuestion(t *testing.T) {
	ts := newTestServer(t)
	token := register(t, ts)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/ai/suggest", token, map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	resp, payload := doJSON(t, http.MethodPost, ts.URL+"/ai/suggest", token,
		map[string]string{"question": "How do I save?"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if payload["advice"] != "Save more." {
		t.Fatalf("advice = %v", payload["advice"])
	}
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status = %d", path, resp.StatusCode)
		}
	}
}
