package port

import (
	"context"

	"holo_vault_analyzer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// AnalyticsService tracks the global analytics read.
type AnalyticsService interface {
	// Snapshot returns the latest analytics, or Loading when none has resolved.
	Snapshot(ctx context.Context) entity.AnalyticsSnapshot
	// Load performs one read and stores the result. A failed read leaves the
	// snapshot untouched.
	Load(ctx context.Context) error
}

// DashboardService composes the dashboard page.
type DashboardService interface {
	Build(ctx context.Context, wallet WalletState) entity.DashboardView
}

// WalletState is the wallet connection of the current session.
type WalletState struct {
	Connected bool
	Address   string
}

// PoolDetailService renders the pool detail dialog.
type PoolDetailService interface {
	// Pool returns the pool card at index, or entity.ErrPoolNotFound.
	Pool(index int) (entity.PoolSummary, error)
	View(ctx context.Context, index int, pool entity.PoolSummary, st *entity.PoolDetailState, wallet WalletState) (entity.PoolDetailView, error)
}

// PoolService reads pools from the contract and submits encrypted writes.
type PoolService interface {
	PoolsOnChain(ctx context.Context, ids []uint64) ([]entity.PoolInfo, error)
	CreatePool(ctx context.Context, wallet WalletState, in entity.CreatePoolInput) (common.Hash, error)
	AddPosition(ctx context.Context, wallet WalletState, in entity.AddPositionInput) (common.Hash, error)
	UpdatePoolData(ctx context.Context, wallet WalletState, in entity.UpdatePoolDataInput) (common.Hash, error)
}
