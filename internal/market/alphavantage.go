package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AlphaVantage serves stock quotes from the Alpha Vantage GLOBAL_QUOTE
// endpoint.
type AlphaVantage struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewAlphaVantage(baseURL, apiKey string) *AlphaVantage {
	return &AlphaVantage{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *AlphaVantage) Price(ctx context.Context, symbol string) (Quote, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		a.baseURL+"/query?"+q.Encode(), nil)
	if err != nil {
		return Quote{}, fmt.Errorf("build stock quote request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("fetch stock quote for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("stock quote API returned status %d for %s", resp.StatusCode, symbol)
	}

	var payload struct {
		GlobalQuote map[string]string `json:"Global Quote"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Quote{}, fmt.Errorf("decode stock quote for %s: %w", symbol, err)
	}

	// Alpha Vantage answers an empty object for unknown symbols.
	price, ok := payload.GlobalQuote["05. price"]
	if !ok || price == "" {
		return Quote{}, ErrSymbolNotFound
	}

	quote := Quote{Symbol: symbol}
	if quote.Price, err = decimal.NewFromString(price); err != nil {
		return Quote{}, fmt.Errorf("parse stock price %q for %s: %w", price, symbol, err)
	}
	if change := payload.GlobalQuote["09. change"]; change != "" {
		if quote.Change, err = decimal.NewFromString(change); err != nil {
			return Quote{}, fmt.Errorf("parse stock change %q for %s: %w", change, symbol, err)
		}
	}
	if percent := strings.TrimSuffix(payload.GlobalQuote["10. change percent"], "%"); percent != "" {
		if quote.ChangePercent, err = decimal.NewFromString(percent); err != nil {
			return Quote{}, fmt.Errorf("parse stock change percent %q for %s: %w", percent, symbol, err)
		}
	}
	return quote, nil
}
