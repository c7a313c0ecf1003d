// Package market fetches live prices for stocks and cryptocurrencies.
package market

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrSymbolNotFound = errors.New("symbol not found")

// Quote is the current price of one asset.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// PriceSource returns the current quote for a symbol. Implementations
// return ErrSymbolNotFound when the upstream does not know the symbol.
type PriceSource interface {
	Price(ctx context.Context, symbol string) (Quote, error)
}
