package entity

// DetailMetric is a headline figure inside the detail dialog.
type DetailMetric struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Caption  string `json:"caption,omitempty"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// OverviewTab is the payload of the overview tab.
type OverviewTab struct {
	KeyMetrics []DetailMetric `json:"keyMetrics"`
	PriceChart ChartView      `json:"priceChart"`
	Stats      []DetailMetric `json:"stats"`
}

// AnalyticsTab is the payload of the analytics tab.
type AnalyticsTab struct {
	VolumeChart           ChartView        `json:"volumeChart"`
	LiquidityDistribution []LiquidityShare `json:"liquidityDistribution"`
}

// TokensTab is the payload of the tokens tab.
type TokensTab struct {
	TokenA TokenInfo `json:"tokenA"`
	TokenB TokenInfo `json:"tokenB"`
}

// PositionsTab is the payload of the positions tab.
type PositionsTab struct {
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// RawPoolData holds the ciphertexts shown by the raw-data toggle.
type RawPoolData struct {
	TVL       string `json:"tvl"`
	APR       string `json:"apr"`
	Volume24h string `json:"volume24h"`
	Proof     string `json:"proof"`
}

// PoolDetailView is the dialog as rendered for one pool card. Detail and the
// tab payload are only present while the dialog is open.
type PoolDetailView struct {
	Index            int           `json:"index"`
	Pool             PoolSummary   `json:"pool"`
	Phase            DetailPhase   `json:"phase"`
	Open             bool          `json:"open"`
	Tab              DetailTab     `json:"tab,omitempty"`
	RawDataAvailable bool          `json:"rawDataAvailable"`
	RawDataShown     bool          `json:"rawDataShown"`
	Detail           *PoolDetail   `json:"detail,omitempty"`
	Overview         *OverviewTab  `json:"overview,omitempty"`
	Analytics        *AnalyticsTab `json:"analytics,omitempty"`
	Tokens           *TokensTab    `json:"tokens,omitempty"`
	Positions        *PositionsTab `json:"positions,omitempty"`
	RawData          *RawPoolData  `json:"rawData,omitempty"`
}
