package entity

// PoolSummary is the card-level description of a liquidity pool. Figures are
// pre-formatted display strings; Encrypted only controls labelling.
type PoolSummary struct {
	Name      string `json:"name"`
	Pair      string `json:"pair"`
	TVL       string `json:"tvl"`
	APR       string `json:"apr"`
	Volume24h string `json:"volume24h"`
	Encrypted bool   `json:"encrypted"`
}

// ChartPoint is a single sample of a time series chart.
type ChartPoint struct {
	Time   string  `json:"time"`
	Value  float64 `json:"value"`
	Volume float64 `json:"volume,omitempty"`
}

// TokenInfo describes one side of a pool pair.
type TokenInfo struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Change24h string `json:"change24h"`
	Balance   string `json:"balance"`
}

// TokenPairInfo groups both sides of a pair.
type TokenPairInfo struct {
	TokenA TokenInfo `json:"tokenA"`
	TokenB TokenInfo `json:"tokenB"`
}

// LiquidityShare is the share of pool liquidity held in one token.
type LiquidityShare struct {
	Symbol  string  `json:"symbol"`
	Percent float64 `json:"percent"`
}

// PoolDetail extends a PoolSummary with the figures shown in the detail dialog.
// It is derived from the summary on every open and never stored.
type PoolDetail struct {
	PoolSummary

	TotalLiquidity        string           `json:"totalLiquidity"`
	Fees24h               string           `json:"fees24h"`
	Fees7d                string           `json:"fees7d"`
	Volume7d              string           `json:"volume7d"`
	PriceChange24h        string           `json:"priceChange24h"`
	PriceChange7d         string           `json:"priceChange7d"`
	LiquidityProviders    int              `json:"liquidityProviders"`
	Transactions24h       int              `json:"transactions24h"`
	AverageTradeSize      string           `json:"averageTradeSize"`
	ImpermanentLoss       string           `json:"impermanentLoss"`
	ChartData             []ChartPoint     `json:"chartData"`
	TokenInfo             TokenPairInfo    `json:"tokenInfo"`
	LiquidityDistribution []LiquidityShare `json:"liquidityDistribution"`
}
