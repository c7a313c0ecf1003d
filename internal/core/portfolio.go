package core

import (
	"github.com/shopspring/decimal"
)

// Position is the aggregated holding for one investment symbol: total
// quantity and total amount invested across all of its transactions.
type Position struct {
	Symbol    string          `json:"symbol"`
	AssetType string          `json:"asset_type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Invested  decimal.Decimal `json:"total_invested"`
}

// AggregatePositions groups investment transactions by symbol, summing
// quantity and invested amount per group. Symbols keep first-encounter order.
// The first asset type seen for a symbol is retained; later records that
// disagree do not overwrite it. Transactions without a symbol are skipped.
func AggregatePositions(transactions []Transaction) []Position {
	var order []string
	bySymbol := make(map[string]*Position)

	for _, tx := range transactions {
		if tx.Symbol == "" {
			continue
		}

		pos, ok := bySymbol[tx.Symbol]
		if !ok {
			pos = &Position{Symbol: tx.Symbol, AssetType: tx.AssetType}
			bySymbol[tx.Symbol] = pos
			order = append(order, tx.Symbol)
		}
		pos.Quantity = pos.Quantity.Add(tx.Quantity)
		pos.Invested = pos.Invested.Add(tx.Amount)
	}

	positions := make([]Position, 0, len(order))
	for _, symbol := range order {
		positions = append(positions, *bySymbol[symbol])
	}
	return positions
}
