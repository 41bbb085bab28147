package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/domain/entity"
	"holo_vault_analyzer/internal/pkg/utils"
)

type tokenQuote struct {
	name    string
	price   string
	change  string
	balance string
}

var tokenQuotes = map[string]tokenQuote{
	"ETH":  {name: "Ethereum", price: "$2,450.67", change: "+1.23%", balance: "18.45 ETH"},
	"USDC": {name: "USD Coin", price: "$1.00", change: "0.00%", balance: "45,230 USDC"},
	"BTC":  {name: "Bitcoin", price: "$67,250.00", change: "+0.85%", balance: "0.62 BTC"},
	"USDT": {name: "Tether", price: "$1.00", change: "0.00%", balance: "67,100 USDT"},
}

// tokenFor resolves one side of a pair. pairName is the matching segment of the
// pool's pair caption, used when the symbol is not in the quote table.
func tokenFor(symbol, pairName string) entity.TokenInfo {
	if q, ok := tokenQuotes[symbol]; ok {
		return entity.TokenInfo{Symbol: symbol, Name: q.name, Price: q.price, Change24h: q.change, Balance: q.balance}
	}
	name := pairName
	if name == "" {
		name = symbol
	}
	return entity.TokenInfo{Symbol: symbol, Name: name, Price: "N/A", Change24h: "0.00%", Balance: "0 " + symbol}
}

func splitPair(pool entity.PoolSummary) (symA, symB, nameA, nameB string) {
	symbols := strings.SplitN(pool.Name, "/", 2)
	symA = strings.TrimSpace(symbols[0])
	if len(symbols) > 1 {
		symB = strings.TrimSpace(symbols[1])
	}
	names := strings.SplitN(pool.Pair, "•", 2)
	nameA = strings.TrimSpace(names[0])
	if len(names) > 1 {
		nameB = strings.TrimSpace(names[1])
	}
	return symA, symB, nameA, nameB
}

// BuildPoolDetail derives the detail dialog data from a pool summary. The
// result depends only on pool.
func BuildPoolDetail(pool entity.PoolSummary) entity.PoolDetail {
	symA, symB, nameA, nameB := splitPair(pool)
	return entity.PoolDetail{
		PoolSummary:        pool,
		TotalLiquidity:     pool.TVL,
		Fees24h:            "$12,450",
		Fees7d:             "$89,230",
		Volume7d:           "$15.2M",
		PriceChange24h:     "+2.34%",
		PriceChange7d:      "+8.67%",
		LiquidityProviders: 1247,
		Transactions24h:    3456,
		AverageTradeSize:   "$2,340",
		ImpermanentLoss:    "0.12%",
		ChartData:          ChartSamples(),
		TokenInfo: entity.TokenPairInfo{
			TokenA: tokenFor(symA, nameA),
			TokenB: tokenFor(symB, nameB),
		},
		LiquidityDistribution: []entity.LiquidityShare{
			{Symbol: symA, Percent: 40.8},
			{Symbol: symB, Percent: 59.2},
		},
	}
}

func overviewTab(d entity.PoolDetail) *entity.OverviewTab {
	return &entity.OverviewTab{
		KeyMetrics: []entity.DetailMetric{
			{Title: "Total Value Locked", Value: d.TVL, Caption: d.PriceChange24h + " from yesterday"},
			{Title: "24h Volume", Value: d.Volume24h, Caption: strconv.Itoa(d.Transactions24h) + " transactions"},
			{Title: "APR", Value: d.APR, Caption: d.Fees24h + " fees today", Emphasis: true},
			{Title: "Liquidity Providers", Value: strconv.Itoa(d.LiquidityProviders), Caption: "Active providers"},
		},
		PriceChart: entity.ChartView{Title: "Price Chart (24h)", Type: entity.ChartArea, Points: d.ChartData},
		Stats: []entity.DetailMetric{
			{Title: "7d Volume", Value: d.Volume7d},
			{Title: "Average Trade Size", Value: d.AverageTradeSize},
			{Title: "Impermanent Loss", Value: d.ImpermanentLoss},
		},
	}
}

func positionsTab(wallet port.WalletState) *entity.PositionsTab {
	if wallet.Connected {
		return &entity.PositionsTab{Message: "No positions found"}
	}
	return &entity.PositionsTab{Message: "No positions found", Hint: "Connect your wallet to view your positions"}
}

type poolDetailServiceImpl struct {
	pools     port.PoolProvider
	encryptor port.Encryptor
	logger    port.Logger
}

// NewPoolDetailService creates a pool detail service.
func NewPoolDetailService(pools port.PoolProvider, encryptor port.Encryptor, logger port.Logger) port.PoolDetailService {
	return &poolDetailServiceImpl{pools: pools, encryptor: encryptor, logger: logger}
}

// Pool returns the pool card at index.
func (s *poolDetailServiceImpl) Pool(index int) (entity.PoolSummary, error) {
	pools, err := s.pools.Pools()
	if err != nil {
		return entity.PoolSummary{}, err
	}
	if index < 0 || index >= len(pools) {
		return entity.PoolSummary{}, fmt.Errorf("pool %d: %w", index, entity.ErrPoolNotFound)
	}
	return pools[index], nil
}

// View renders the dialog for st. The detail is derived anew on every call and
// only the active tab carries a payload.
func (s *poolDetailServiceImpl) View(ctx context.Context, index int, pool entity.PoolSummary, st *entity.PoolDetailState, wallet port.WalletState) (entity.PoolDetailView, error) {
	view := entity.PoolDetailView{
		Index:            index,
		Pool:             pool,
		Phase:            st.Phase(),
		Open:             st.IsOpen(),
		RawDataAvailable: st.RawDataAvailable(),
		RawDataShown:     st.RawDataShown(),
	}
	if !st.IsOpen() {
		return view, nil
	}

	detail := BuildPoolDetail(pool)
	view.Detail = &detail
	view.Tab = st.Tab()

	switch st.Tab() {
	case entity.TabAnalytics:
		view.Analytics = &entity.AnalyticsTab{
			VolumeChart:           entity.ChartView{Title: "Volume Analysis", Type: entity.ChartLine, Points: VolumeSeries(detail.ChartData)},
			LiquidityDistribution: detail.LiquidityDistribution,
		}
	case entity.TabTokens:
		view.Tokens = &entity.TokensTab{TokenA: detail.TokenInfo.TokenA, TokenB: detail.TokenInfo.TokenB}
	case entity.TabPositions:
		view.Positions = positionsTab(wallet)
	default:
		view.Overview = overviewTab(detail)
	}

	if st.RawDataShown() {
		raw, err := s.rawData(ctx, pool)
		if err != nil {
			return entity.PoolDetailView{}, err
		}
		view.RawData = raw
	}
	return view, nil
}

// rawData encrypts the pool's display figures. Unparseable figures encrypt as
// zero.
func (s *poolDetailServiceImpl) rawData(ctx context.Context, pool entity.PoolSummary) (*entity.RawPoolData, error) {
	tvl, err := utils.ParseUSDDisplay(pool.TVL)
	if err != nil {
		s.logger.Warn("Pool TVL is not numeric", "pool", pool.Name, "error", err)
	}
	volume, err := utils.ParseUSDDisplay(pool.Volume24h)
	if err != nil {
		s.logger.Warn("Pool volume is not numeric", "pool", pool.Name, "error", err)
	}
	apr, err := utils.ParsePercentBasisPoints(pool.APR)
	if err != nil {
		s.logger.Warn("Pool APR is not numeric", "pool", pool.Name, "error", err)
	}

	raw := &entity.RawPoolData{}
	if raw.TVL, err = s.encryptor.EncryptValue(ctx, tvl); err != nil {
		return nil, fmt.Errorf("failed to encrypt TVL: %w", err)
	}
	if raw.APR, err = s.encryptor.EncryptValue(ctx, apr); err != nil {
		return nil, fmt.Errorf("failed to encrypt APR: %w", err)
	}
	if raw.Volume24h, err = s.encryptor.EncryptValue(ctx, volume); err != nil {
		return nil, fmt.Errorf("failed to encrypt volume: %w", err)
	}
	if raw.Proof, err = s.encryptor.GenerateProof(ctx, tvl); err != nil {
		return nil, fmt.Errorf("failed to generate proof: %w", err)
	}
	return raw, nil
}
