package entity

// ChartType selects how a chart series is drawn.
type ChartType string

const (
	ChartArea ChartType = "area"
	ChartLine ChartType = "line"
)

// ChartView is a titled chart series.
type ChartView struct {
	Title  string       `json:"title"`
	Type   ChartType    `json:"type"`
	Points []ChartPoint `json:"points"`
}

// Trend direction of a metric change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// MetricCardView is one headline figure on the dashboard.
type MetricCardView struct {
	Title      string  `json:"title"`
	Value      string  `json:"value"`
	Change     float64 `json:"change"`
	ChangeText string  `json:"changeText"`
	Trend      Trend   `json:"trend"`
	Encrypted  bool    `json:"encrypted"`
	Loading    bool    `json:"loading"`
}

// PoolCardView is a pool summary as listed on the dashboard.
type PoolCardView struct {
	Index        int         `json:"index"`
	Pool         PoolSummary `json:"pool"`
	PrivacyLevel string      `json:"privacyLevel"`
}

// FooterView is the status strip at the bottom of the page.
type FooterView struct {
	FHEStatus string `json:"fheStatus"`
	LastSync  string `json:"lastSync"`
	PoweredBy string `json:"poweredBy"`
}

// DashboardView is the composed dashboard page.
type DashboardView struct {
	Title         string           `json:"title"`
	Subtitle      string           `json:"subtitle"`
	Connected     bool             `json:"connected"`
	WalletAddress string           `json:"walletAddress,omitempty"`
	Metrics       []MetricCardView `json:"metrics"`
	Charts        []ChartView      `json:"charts"`
	Pools         []PoolCardView   `json:"pools"`
	Footer        FooterView       `json:"footer"`
}
