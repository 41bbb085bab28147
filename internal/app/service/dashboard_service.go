package service

import (
	"context"
	"strconv"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/domain/entity"
	"holo_vault_analyzer/internal/pkg/utils"
)

const (
	DashboardTitle    = "Holo Vault Analyzer"
	DashboardSubtitle = "Privacy-preserving AMM analytics with FHE encryption"
	ConnectWalletText = "Connect Wallet"

	PrivacyFullyEncrypted = "Fully Encrypted"
	PrivacyPublic         = "Public"
)

// Scale of the on-chain uint8 analytics figures.
const (
	tvlUnitUSD    = 1_000_000
	volumeUnitUSD = 100_000
	aprUnitBP     = 10
)

// chartSamples is the demo series behind the dashboard and detail charts.
var chartSamples = []entity.ChartPoint{
	{Time: "00:00", Value: 2400, Volume: 120},
	{Time: "04:00", Value: 1398, Volume: 98},
	{Time: "08:00", Value: 9800, Volume: 180},
	{Time: "12:00", Value: 3908, Volume: 156},
	{Time: "16:00", Value: 4800, Volume: 201},
	{Time: "20:00", Value: 3800, Volume: 167},
	{Time: "24:00", Value: 4300, Volume: 189},
}

// ChartSamples returns a copy of the demo chart series.
func ChartSamples() []entity.ChartPoint {
	out := make([]entity.ChartPoint, len(chartSamples))
	copy(out, chartSamples)
	return out
}

// VolumeSeries re-plots a series with its volume as the value.
func VolumeSeries(points []entity.ChartPoint) []entity.ChartPoint {
	out := make([]entity.ChartPoint, len(points))
	for i, p := range points {
		out[i] = entity.ChartPoint{Time: p.Time, Value: p.Volume, Volume: p.Volume}
	}
	return out
}

// DemoAnalytics are the figures shown once a wallet connects.
func DemoAnalytics() entity.DecryptedAnalytics {
	return entity.DecryptedAnalytics{
		TotalTVL:       141_200_000,
		TotalVolume24h: 9_300_000,
		AverageAPR:     849,
		ActivePools:    12,
		TotalUsers:     156,
	}
}

// DecodeAnalytics scales the raw contract figures to dollars and basis points.
func DecodeAnalytics(a entity.GlobalAnalytics) entity.DecryptedAnalytics {
	return entity.DecryptedAnalytics{
		TotalTVL:       uint64(a.TotalTVL) * tvlUnitUSD,
		TotalVolume24h: uint64(a.TotalVolume24h) * volumeUnitUSD,
		AverageAPR:     uint64(a.AverageAPR) * aprUnitBP,
		ActivePools:    uint64(a.ActivePools),
		TotalUsers:     uint64(a.TotalUsers),
	}
}

type metricSpec struct {
	title     string
	change    float64
	encrypted bool
	value     func(entity.DecryptedAnalytics) string
}

var metricSpecs = []metricSpec{
	{"Total Value Locked", 12.5, true, func(a entity.DecryptedAnalytics) string { return utils.FormatUSDMillions(a.TotalTVL) }},
	{"24h Trading Volume", -2.1, true, func(a entity.DecryptedAnalytics) string { return utils.FormatUSDMillions(a.TotalVolume24h) }},
	{"Active Pools", 8.3, false, func(a entity.DecryptedAnalytics) string { return strconv.FormatUint(a.ActivePools, 10) }},
	{"Average APR", 1.7, true, func(a entity.DecryptedAnalytics) string { return utils.FormatBasisPoints(a.AverageAPR) }},
}

// PrivacyLabel is the privacy caption of a pool card.
func PrivacyLabel(encrypted bool) string {
	if encrypted {
		return PrivacyFullyEncrypted
	}
	return PrivacyPublic
}

// ComposeDashboard builds the page from its inputs. Without a connected wallet
// every metric value reads "Connect Wallet".
func ComposeDashboard(wallet port.WalletState, snap entity.AnalyticsSnapshot, useDemo bool, pools []entity.PoolSummary) entity.DashboardView {
	var figures entity.DecryptedAnalytics
	if wallet.Connected && snap.Analytics != nil {
		if useDemo {
			figures = DemoAnalytics()
		} else {
			figures = DecodeAnalytics(*snap.Analytics)
		}
	}

	metrics := make([]entity.MetricCardView, 0, len(metricSpecs))
	for _, ms := range metricSpecs {
		card := entity.MetricCardView{
			Title:      ms.title,
			Value:      ConnectWalletText,
			Change:     ms.change,
			ChangeText: utils.FormatChange(ms.change),
			Trend:      entity.TrendUp,
			Encrypted:  ms.encrypted,
			Loading:    wallet.Connected && snap.Loading,
		}
		if ms.change < 0 {
			card.Trend = entity.TrendDown
		}
		if wallet.Connected {
			card.Value = ms.value(figures)
		}
		metrics = append(metrics, card)
	}

	samples := ChartSamples()
	cards := make([]entity.PoolCardView, len(pools))
	for i, p := range pools {
		cards[i] = entity.PoolCardView{Index: i, Pool: p, PrivacyLevel: PrivacyLabel(p.Encrypted)}
	}

	view := entity.DashboardView{
		Title:     DashboardTitle,
		Subtitle:  DashboardSubtitle,
		Connected: wallet.Connected,
		Metrics:   metrics,
		Charts: []entity.ChartView{
			{Title: "TVL Trend (7 Days)", Type: entity.ChartArea, Points: samples},
			{Title: "Volume Analysis", Type: entity.ChartLine, Points: VolumeSeries(samples)},
		},
		Pools: cards,
		Footer: entity.FooterView{
			FHEStatus: "FHE Computing: Active",
			LastSync:  "Last sync: 2s ago",
			PoweredBy: "Powered by Fully Homomorphic Encryption",
		},
	}
	if wallet.Connected {
		view.WalletAddress = wallet.Address
	}
	return view
}

type dashboardServiceImpl struct {
	analytics port.AnalyticsService
	pools     port.PoolProvider
	useDemo   bool
	logger    port.Logger
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(analytics port.AnalyticsService, pools port.PoolProvider, useDemo bool, logger port.Logger) port.DashboardService {
	return &dashboardServiceImpl{analytics: analytics, pools: pools, useDemo: useDemo, logger: logger}
}

// Build composes the dashboard for wallet. A pool provider failure renders
// the page without pool cards.
func (s *dashboardServiceImpl) Build(ctx context.Context, wallet port.WalletState) entity.DashboardView {
	snap := s.analytics.Snapshot(ctx)
	pools, err := s.pools.Pools()
	if err != nil {
		s.logger.Error("Failed to load pools for dashboard", "error", err)
		pools = nil
	}
	return ComposeDashboard(wallet, snap, s.useDemo, pools)
}
