package entity

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// GlobalAnalytics mirrors the getGlobalAnalytics tuple. The contract encodes the
// figures as uint8, so only 0-255 is representable.
type GlobalAnalytics struct {
	TotalTVL       uint8    `json:"totalTVL"`
	TotalVolume24h uint8    `json:"totalVolume24h"`
	AverageAPR     uint8    `json:"averageAPR"`
	ActivePools    uint8    `json:"activePools"`
	TotalUsers     uint8    `json:"totalUsers"`
	LastCalculated *big.Int `json:"lastCalculated"`
}

// DecryptedAnalytics holds the figures shown on the dashboard once a wallet is
// connected. AverageAPR is in basis points.
type DecryptedAnalytics struct {
	TotalTVL       uint64 `json:"totalTVL"`
	TotalVolume24h uint64 `json:"totalVolume24h"`
	AverageAPR     uint64 `json:"averageAPR"`
	ActivePools    uint64 `json:"activePools"`
	TotalUsers     uint64 `json:"totalUsers"`
}

// AnalyticsSnapshot is the state of the global analytics read. Analytics is nil
// while Loading.
type AnalyticsSnapshot struct {
	Analytics *GlobalAnalytics `json:"analytics,omitempty"`
	Loading   bool             `json:"loading"`
	FetchedAt time.Time        `json:"fetchedAt,omitempty"`
}

// PoolInfo mirrors the getPoolInfo tuple.
type PoolInfo struct {
	PoolID        uint64         `json:"poolId"`
	Name          string         `json:"name"`
	TokenPair     string         `json:"tokenPair"`
	PoolAddress   common.Address `json:"poolAddress"`
	TVL           uint8          `json:"tvl"`
	Volume24h     uint8          `json:"volume24h"`
	APR           uint8          `json:"apr"`
	ProviderCount uint8          `json:"providerCount"`
	IsActive      bool           `json:"isActive"`
	IsEncrypted   bool           `json:"isEncrypted"`
	LastUpdated   *big.Int       `json:"lastUpdated"`
}

// UserPosition mirrors the getUserPosition tuple.
type UserPosition struct {
	User            common.Address `json:"user"`
	PositionID      uint64         `json:"positionId"`
	LiquidityAmount uint8          `json:"liquidityAmount"`
	SharePercentage uint8          `json:"sharePercentage"`
	RewardsEarned   uint8          `json:"rewardsEarned"`
	IsActive        bool           `json:"isActive"`
	Timestamp       *big.Int       `json:"timestamp"`
}
