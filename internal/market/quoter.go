package market

import (
	"context"
	"fmt"
	"time"

	"wonderfinance/internal/cache"
	"wonderfinance/internal/core"
)

// Quoter routes quote requests to the right price source by asset type
// and caches answers so bursts of portfolio valuations reuse one lookup.
type Quoter struct {
	stocks PriceSource
	crypto PriceSource
	quotes *cache.TTLCache[Quote]
}

func NewQuoter(stocks, crypto PriceSource, cacheTTL time.Duration) *Quoter {
	return &Quoter{
		stocks: stocks,
		crypto: crypto,
		quotes: cache.New[Quote](256, cacheTTL),
	}
}

// QuoteAsset returns the current quote for a symbol of the given asset type.
func (q *Quoter) QuoteAsset(ctx context.Context, assetType, symbol string) (Quote, error) {
	key := assetType + ":" + symbol
	if quote, ok := q.quotes.Get(key); ok {
		return quote, nil
	}

	var source PriceSource
	switch assetType {
	case core.AssetStock:
		source = q.stocks
	case core.AssetCrypto:
		source = q.crypto
	default:
		return Quote{}, fmt.Errorf("unsupported asset type %q", assetType)
	}

	quote, err := source.Price(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}

	q.quotes.Set(key, quote)
	return quote, nil
}
