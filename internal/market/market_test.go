package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"wonderfinance/internal/core"
)

func TestAlphaVantagePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "GLOBAL_QUOTE" {
			t.Errorf("function = %q, want GLOBAL_QUOTE", got)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("symbol = %q, want AAPL", got)
		}
		w.Write([]byte(`{"Global Quote": {
			"01. symbol": "AAPL",
			"05. price": "231.5900",
			"09. change": "2.1400",
			"10. change percent": "0.9329%"
		}}`))
	}))
	defer srv.Close()

	quote, err := NewAlphaVantage(srv.URL, "demo").Price(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if !quote.Price.Equal(decimal.RequireFromString("231.59")) {
		t.Fatalf("price = %s, want 231.59", quote.Price)
	}
	if !quote.ChangePercent.Equal(decimal.RequireFromString("0.9329")) {
		t.Fatalf("change percent = %s, want 0.9329", quote.ChangePercent)
	}
}

func TestAlphaVantageUnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Global Quote": {}}`))
	}))
	defer srv.Close()

	_, err := NewAlphaVantage(srv.URL, "demo").Price(context.Background(), "NOPE")
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestCoinGeckoPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != "bitcoin" {
			t.Errorf("ids = %q, want bitcoin", got)
		}
		w.Write([]byte(`{"bitcoin": {"usd": 64250.12, "usd_24h_change": -1.83}}`))
	}))
	defer srv.Close()

	quote, err := NewCoinGecko(srv.URL).Price(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if !quote.Price.Equal(decimal.RequireFromString("64250.12")) {
		t.Fatalf("price = %s, want 64250.12", quote.Price)
	}
}

func TestCoinGeckoUnknownCoin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewCoinGecko(srv.URL).Price(context.Background(), "nocoin")
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
}

type countingSource struct {
	calls atomic.Int64
	quote Quote
}

func (s *countingSource) Price(ctx context.Context, symbol string) (Quote, error) {
	s.calls.Add(1)
	return s.quote, nil
}

func TestQuoterCachesBySymbol(t *testing.T) {
	stocks := &countingSource{quote: Quote{Symbol: "AAPL", Price: decimal.NewFromInt(200)}}
	q := NewQuoter(stocks, &countingSource{}, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := q.QuoteAsset(context.Background(), core.AssetStock, "AAPL"); err != nil {
			t.Fatalf("QuoteAsset: %v", err)
		}
	}
	if n := stocks.calls.Load(); n != 1 {
		t.Fatalf("upstream called %d times, want 1", n)
	}
}

func TestQuoterRejectsUnknownAssetType(t *testing.T) {
	q := NewQuoter(&countingSource{}, &countingSource{}, time.Minute)
	if _, err := q.QuoteAsset(context.Background(), "bond", "X"); err == nil {
		t.Fatal("expected error for unsupported asset type")
	}
}
