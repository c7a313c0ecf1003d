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

// CoinGecko serves crypto quotes from the CoinGecko simple price endpoint.
// Symbols are CoinGecko coin ids ("bitcoin", "ethereum").
type CoinGecko struct {
	baseURL    string
	httpClient *http.Client
}

func NewCoinGecko(baseURL string) *CoinGecko {
	return &CoinGecko{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *CoinGecko) Price(ctx context.Context, symbol string) (Quote, error) {
	id := strings.ToLower(symbol)

	q := url.Values{}
	q.Set("ids", id)
	q.Set("vs_currencies", "usd")
	q.Set("include_24hr_change", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v3/simple/price?"+q.Encode(), nil)
	if err != nil {
		return Quote{}, fmt.Errorf("build crypto quote request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("fetch crypto quote for %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("crypto quote API returned status %d for %s", resp.StatusCode, id)
	}

	var payload map[string]struct {
		USD       decimal.Decimal `json:"usd"`
		USDChange decimal.Decimal `json:"usd_24h_change"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Quote{}, fmt.Errorf("decode crypto quote for %s: %w", id, err)
	}

	// Unknown coins are simply absent from the response object.
	coin, ok := payload[id]
	if !ok {
		return Quote{}, ErrSymbolNotFound
	}

	return Quote{
		Symbol:        symbol,
		Price:         coin.USD,
		ChangePercent: coin.USDChange,
	}, nil
}
