package service

import (
	"context"
	"testing"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/domain/entity"
	"holo_vault_analyzer/internal/infrastructure/fhe"
	"holo_vault_analyzer/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPoolDetailIsDeterministic(t *testing.T) {
	for _, pool := range append(demoPools(), entity.PoolSummary{Name: "DAI/FRAX", Pair: "Dai • Frax"}) {
		a := BuildPoolDetail(pool)
		b := BuildPoolDetail(pool)
		assert.Equal(t, a, b, pool.Name)
		assert.Equal(t, pool, a.PoolSummary)
	}
}

func TestBuildPoolDetailTokens(t *testing.T) {
	d := BuildPoolDetail(demoPools()[0])
	assert.Equal(t, entity.TokenInfo{Symbol: "ETH", Name: "Ethereum", Price: "$2,450.67", Change24h: "+1.23%", Balance: "18.45 ETH"}, d.TokenInfo.TokenA)
	assert.Equal(t, entity.TokenInfo{Symbol: "USDC", Name: "USD Coin", Price: "$1.00", Change24h: "0.00%", Balance: "45,230 USDC"}, d.TokenInfo.TokenB)
	assert.Equal(t, "$45.2M", d.TotalLiquidity)
	assert.Equal(t, 1247, d.LiquidityProviders)
	assert.Len(t, d.ChartData, 7)
	assert.Equal(t, []entity.LiquidityShare{{Symbol: "ETH", Percent: 40.8}, {Symbol: "USDC", Percent: 59.2}}, d.LiquidityDistribution)

	unknown := BuildPoolDetail(entity.PoolSummary{Name: "DAI/FRAX", Pair: "Dai • Frax"})
	assert.Equal(t, "Dai", unknown.TokenInfo.TokenA.Name)
	assert.Equal(t, "Frax", unknown.TokenInfo.TokenB.Name)
	assert.Equal(t, "N/A", unknown.TokenInfo.TokenB.Price)
}

func newDetailService() port.PoolDetailService {
	return NewPoolDetailService(staticPools{pools: demoPools()}, fhe.NewMockEncryptor(), logger.Nop())
}

func TestPoolDetailServicePool(t *testing.T) {
	svc := newDetailService()
	pool, err := svc.Pool(1)
	require.NoError(t, err)
	assert.Equal(t, "BTC/ETH", pool.Name)

	for _, idx := range []int{-1, 3} {
		_, err := svc.Pool(idx)
		assert.ErrorIs(t, err, entity.ErrPoolNotFound)
	}
}

func TestPoolDetailViewClosed(t *testing.T) {
	svc := newDetailService()
	pool := demoPools()[0]
	view, err := svc.View(context.Background(), 0, pool, entity.NewPoolDetailState(true), port.WalletState{})
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseClosed, view.Phase)
	assert.Nil(t, view.Detail)
	assert.Nil(t, view.Overview)
	assert.True(t, view.RawDataAvailable)
}

func TestPoolDetailViewTabs(t *testing.T) {
	svc := newDetailService()
	pool := demoPools()[0]
	st := entity.NewPoolDetailState(true)
	st.Open()
	ctx := context.Background()

	view, err := svc.View(ctx, 0, pool, st, port.WalletState{})
	require.NoError(t, err)
	require.NotNil(t, view.Overview)
	assert.Equal(t, "Price Chart (24h)", view.Overview.PriceChart.Title)
	assert.Equal(t, "+2.34% from yesterday", view.Overview.KeyMetrics[0].Caption)
	assert.Equal(t, "3456 transactions", view.Overview.KeyMetrics[1].Caption)
	assert.Equal(t, "$12,450 fees today", view.Overview.KeyMetrics[2].Caption)
	assert.Equal(t, "1247", view.Overview.KeyMetrics[3].Value)
	assert.Nil(t, view.Analytics)

	require.NoError(t, st.SelectTab(entity.TabAnalytics))
	view, err = svc.View(ctx, 0, pool, st, port.WalletState{})
	require.NoError(t, err)
	require.NotNil(t, view.Analytics)
	assert.Equal(t, 120.0, view.Analytics.VolumeChart.Points[0].Value)
	assert.Nil(t, view.Overview)

	require.NoError(t, st.SelectTab(entity.TabTokens))
	view, err = svc.View(ctx, 0, pool, st, port.WalletState{})
	require.NoError(t, err)
	require.NotNil(t, view.Tokens)
	assert.Equal(t, "ETH", view.Tokens.TokenA.Symbol)

	require.NoError(t, st.SelectTab(entity.TabPositions))
	view, err = svc.View(ctx, 0, pool, st, port.WalletState{})
	require.NoError(t, err)
	require.NotNil(t, view.Positions)
	assert.Equal(t, "No positions found", view.Positions.Message)
	assert.Equal(t, "Connect your wallet to view your positions", view.Positions.Hint)

	view, err = svc.View(ctx, 0, pool, st, port.WalletState{Connected: true})
	require.NoError(t, err)
	assert.Empty(t, view.Positions.Hint)
	assert.Equal(t, entity.PhaseOpenPositions, view.Phase)
}

func TestPoolDetailViewRawData(t *testing.T) {
	svc := newDetailService()
	pool := demoPools()[0]
	st := entity.NewPoolDetailState(true)
	st.Open()
	_, err := st.ToggleRawData()
	require.NoError(t, err)

	view, err := svc.View(context.Background(), 0, pool, st, port.WalletState{})
	require.NoError(t, err)
	require.NotNil(t, view.RawData)
	assert.Regexp(t, `^encrypted_45200000_\d+$`, view.RawData.TVL)
	assert.Regexp(t, `^encrypted_1234_\d+$`, view.RawData.APR)
	assert.Regexp(t, `^encrypted_2100000_\d+$`, view.RawData.Volume24h)
	assert.Regexp(t, `^proof_45200000_\d+$`, view.RawData.Proof)

	enc := fhe.NewMockEncryptor()
	tvl, err := enc.DecryptValue(context.Background(), view.RawData.TVL)
	require.NoError(t, err)
	assert.Equal(t, uint64(45_200_000), tvl)
}
