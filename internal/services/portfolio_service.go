package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"wonderfinance/internal/core"
	"wonderfinance/internal/market"
	"wonderfinance/internal/storage"
)

// At most this many quote lookups run concurrently per request.
const maxQuoteConcurrency = 4

// AssetQuoter resolves current prices by asset type.
type AssetQuoter interface {
	QuoteAsset(ctx context.Context, assetType, symbol string) (market.Quote, error)
}

// PortfolioService values investment holdings against live market prices.
type PortfolioService struct {
	repo   *storage.Repository
	quoter AssetQuoter
}

func NewPortfolioService(repo *storage.Repository, quoter AssetQuoter) *PortfolioService {
	return &PortfolioService{repo: repo, quoter: quoter}
}

// Holding is one valued position. Error carries a per-symbol annotation when
// its price lookup failed; the rest of the portfolio is still returned.
type Holding struct {
	Symbol            string          `json:"symbol"`
	AssetType         string          `json:"asset_type"`
	Quantity          decimal.Decimal `json:"quantity"`
	Invested          decimal.Decimal `json:"total_invested"`
	CurrentValue      decimal.Decimal `json:"current_value"`
	ProfitLoss        decimal.Decimal `json:"profit_loss"`
	ProfitLossPercent decimal.Decimal `json:"profit_loss_percent"`
	Error             string          `json:"error,omitempty"`
}

// PortfolioReport is the full valued portfolio. Totals cover only holdings
// whose prices resolved.
type PortfolioReport struct {
	Holdings        []Holding       `json:"holdings"`
	TotalInvested   decimal.Decimal `json:"total_invested"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalProfitLoss decimal.Decimal `json:"total_profit_loss"`
}

// Portfolio aggregates the owner's investment transactions into positions
// and values each at the current market price. Quotes run concurrently.
func (s *PortfolioService) Portfolio(ctx context.Context, email string) (PortfolioReport, error) {
	txs, err := s.repo.ListTransactions(ctx, storage.TransactionFilter{
		UserEmail: email,
		Types:     []core.TransactionType{core.TypeInvestment},
	})
	if err != nil {
		return PortfolioReport{}, fmt.Errorf("list investments: %w", err)
	}

	positions := core.AggregatePositions(txs)
	holdings := make([]Holding, len(positions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxQuoteConcurrency)
	for i, pos := range positions {
		i, pos := i, pos
		g.Go(func() error {
			h := Holding{
				Symbol:    pos.Symbol,
				AssetType: pos.AssetType,
				Quantity:  pos.Quantity,
				Invested:  pos.Invested,
			}

			quote, err := s.quoter.QuoteAsset(gctx, pos.AssetType, pos.Symbol)
			if err != nil {
				h.Error = fmt.Sprintf("price unavailable: %v", err)
				holdings[i] = h
				return nil
			}

			h.CurrentValue = quote.Price.Mul(pos.Quantity)
			h.ProfitLoss = h.CurrentValue.Sub(pos.Invested)
			if !pos.Invested.IsZero() {
				h.ProfitLossPercent = h.ProfitLoss.Div(pos.Invested).Mul(decimal.NewFromInt(100))
			}
			holdings[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PortfolioReport{}, err
	}

	report := PortfolioReport{Holdings: holdings}
	for _, h := range holdings {
		if h.Error != "" {
			continue
		}
		report.TotalInvested = report.TotalInvested.Add(h.Invested)
		report.TotalValue = report.TotalValue.Add(h.CurrentValue)
		report.TotalProfitLoss = report.TotalProfitLoss.Add(h.ProfitLoss)
	}
	return report, nil
}

var (
	trendingStocks = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "TSLA"}
	trendingCrypto = []string{"bitcoin", "ethereum", "solana"}
)

// TrendingAssets quotes a fixed watchlist of popular stocks and coins.
// Symbols whose lookup fails are dropped from the answer.
func (s *PortfolioService) TrendingAssets(ctx context.Context) (map[string][]market.Quote, error) {
	var (
		mu     sync.Mutex
		stocks []market.Quote
		crypto []market.Quote
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxQuoteConcurrency)
	for _, symbol := range trendingStocks {
		symbol := symbol
		g.Go(func() error {
			quote, err := s.quoter.QuoteAsset(gctx, core.AssetStock, symbol)
			if err != nil {
				return nil
			}
			mu.Lock()
			stocks = append(stocks, quote)
			mu.Unlock()
			return nil
		})
	}
	for _, symbol := range trendingCrypto {
		symbol := symbol
		g.Go(func() error {
			quote, err := s.quoter.QuoteAsset(gctx, core.AssetCrypto, symbol)
			if err != nil {
				return nil
			}
			mu.Lock()
			crypto = append(crypto, quote)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return map[string][]market.Quote{
		"stocks": stocks,
		"crypto": crypto,
	}, nil
}

// Allocation is one slice of a recommended portfolio split.
type Allocation struct {
	Asset   string `json:"asset"`
	Percent int    `json:"percent"`
	Note    string `json:"note"`
}

// Recommendation maps a risk tolerance to a suggested allocation.
type Recommendation struct {
	RiskTolerance int          `json:"risk_tolerance"`
	Profile       string       `json:"profile"`
	Allocations   []Allocation `json:"allocations"`
}

// Recommendations derives a rule-based allocation from the user's stored
// risk tolerance.
func (s *PortfolioService) Recommendations(ctx context.Context, email string) (Recommendation, error) {
	user, err := s.repo.GetUser(ctx, email)
	if err != nil {
		return Recommendation{}, err
	}

	rec := Recommendation{RiskTolerance: user.RiskTolerance}
	switch {
	case user.RiskTolerance <= 3:
		rec.Profile = "conservative"
		rec.Allocations = []Allocation{
			{Asset: "fixed deposits", Percent: 50, Note: "capital preservation"},
			{Asset: "index funds", Percent: 30, Note: "broad market exposure"},
			{Asset: "blue-chip stocks", Percent: 15, Note: "stable dividend payers"},
			{Asset: "gold", Percent: 5, Note: "inflation hedge"},
		}
	case user.RiskTolerance <= 7:
		rec.Profile = "balanced"
		rec.Allocations = []Allocation{
			{Asset: "index funds", Percent: 40, Note: "core holding"},
			{Asset: "stocks", Percent: 30, Note: "growth"},
			{Asset: "fixed deposits", Percent: 20, Note: "stability"},
			{Asset: "crypto", Percent: 10, Note: "high risk, small slice"},
		}
	default:
		rec.Profile = "aggressive"
		rec.Allocations = []Allocation{
			{Asset: "stocks", Percent: 50, Note: "growth focus"},
			{Asset: "index funds", Percent: 25, Note: "diversification"},
			{Asset: "crypto", Percent: 20, Note: "speculative upside"},
			{Asset: "fixed deposits", Percent: 5, Note: "emergency buffer"},
		}
	}
	return rec, nil
}
