package service

import (
	"context"
	"errors"
	"testing"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/domain/entity"
	"holo_vault_analyzer/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalytics struct {
	snap entity.AnalyticsSnapshot
}

func (s stubAnalytics) Snapshot(context.Context) entity.AnalyticsSnapshot { return s.snap }
func (s stubAnalytics) Load(context.Context) error                        { return nil }

func TestComposeDashboardDisconnected(t *testing.T) {
	for _, snap := range []entity.AnalyticsSnapshot{
		{Loading: true},
		{Analytics: sampleAnalytics()},
	} {
		view := ComposeDashboard(port.WalletState{}, snap, true, demoPools())
		require.Len(t, view.Metrics, 4)
		for _, m := range view.Metrics {
			assert.Equal(t, ConnectWalletText, m.Value, m.Title)
			assert.False(t, m.Loading, m.Title)
		}
		assert.False(t, view.Connected)
		assert.Empty(t, view.WalletAddress)
	}
}

func TestComposeDashboardConnectedDemo(t *testing.T) {
	wallet := port.WalletState{Connected: true, Address: "0x00000000000000000000000000000000000000b0"}
	view := ComposeDashboard(wallet, entity.AnalyticsSnapshot{Analytics: sampleAnalytics()}, true, demoPools())

	want := []struct {
		title, value, change string
		trend                entity.Trend
		encrypted            bool
	}{
		{"Total Value Locked", "$141.2M", "+12.50%", entity.TrendUp, true},
		{"24h Trading Volume", "$9.3M", "-2.10%", entity.TrendDown, true},
		{"Active Pools", "12", "+8.30%", entity.TrendUp, false},
		{"Average APR", "8.49%", "+1.70%", entity.TrendUp, true},
	}
	require.Len(t, view.Metrics, len(want))
	for i, w := range want {
		m := view.Metrics[i]
		assert.Equal(t, w.title, m.Title)
		assert.Equal(t, w.value, m.Value)
		assert.Equal(t, w.change, m.ChangeText)
		assert.Equal(t, w.trend, m.Trend)
		assert.Equal(t, w.encrypted, m.Encrypted)
	}
	assert.Equal(t, wallet.Address, view.WalletAddress)
}

func TestComposeDashboardConnectedOnChain(t *testing.T) {
	view := ComposeDashboard(port.WalletState{Connected: true}, entity.AnalyticsSnapshot{Analytics: sampleAnalytics()}, false, nil)
	assert.Equal(t, "$141.0M", view.Metrics[0].Value)
	assert.Equal(t, "$9.3M", view.Metrics[1].Value)
	assert.Equal(t, "12", view.Metrics[2].Value)
	assert.Equal(t, "8.50%", view.Metrics[3].Value)
}

func TestComposeDashboardConnectedLoading(t *testing.T) {
	view := ComposeDashboard(port.WalletState{Connected: true}, entity.AnalyticsSnapshot{Loading: true}, true, nil)
	for _, m := range view.Metrics {
		assert.True(t, m.Loading)
	}
}

func TestComposeDashboardChartsAndPools(t *testing.T) {
	view := ComposeDashboard(port.WalletState{}, entity.AnalyticsSnapshot{}, true, demoPools())

	require.Len(t, view.Charts, 2)
	assert.Equal(t, "TVL Trend (7 Days)", view.Charts[0].Title)
	assert.Equal(t, entity.ChartArea, view.Charts[0].Type)
	assert.Equal(t, 9800.0, view.Charts[0].Points[2].Value)
	assert.Equal(t, "Volume Analysis", view.Charts[1].Title)
	assert.Equal(t, entity.ChartLine, view.Charts[1].Type)
	assert.Equal(t, 180.0, view.Charts[1].Points[2].Value)

	require.Len(t, view.Pools, 3)
	assert.Equal(t, PrivacyFullyEncrypted, view.Pools[0].PrivacyLevel)
	assert.Equal(t, PrivacyPublic, view.Pools[2].PrivacyLevel)
	assert.Equal(t, 2, view.Pools[2].Index)

	assert.Equal(t, DashboardTitle, view.Title)
	assert.Equal(t, "FHE Computing: Active", view.Footer.FHEStatus)
}

func TestDashboardServiceBuild(t *testing.T) {
	svc := NewDashboardService(stubAnalytics{snap: entity.AnalyticsSnapshot{Analytics: sampleAnalytics()}}, staticPools{pools: demoPools()}, true, logger.Nop())
	view := svc.Build(context.Background(), port.WalletState{Connected: true})
	assert.Equal(t, "$141.2M", view.Metrics[0].Value)
	assert.Len(t, view.Pools, 3)

	broken := NewDashboardService(stubAnalytics{}, staticPools{err: errors.New("bad file")}, true, logger.Nop())
	view = broken.Build(context.Background(), port.WalletState{})
	assert.Empty(t, view.Pools)
	assert.Len(t, view.Metrics, 4)
}
