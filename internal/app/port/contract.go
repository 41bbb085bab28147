package port

import (
	"context"

	"holo_vault_analyzer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// ContractReader exposes the view functions of the HoloVaultAnalyzer contract.
// Implementations hold no mutable cross-call state.
type ContractReader interface {
	GetGlobalAnalytics(ctx context.Context) (*entity.GlobalAnalytics, error)
	GetPoolInfo(ctx context.Context, poolID uint64) (*entity.PoolInfo, error)
	GetUserPosition(ctx context.Context, user common.Address, positionID uint64) (*entity.UserPosition, error)
	GetUserReputation(ctx context.Context, user common.Address) (uint8, error)
	Owner(ctx context.Context) (common.Address, error)
	Verifier(ctx context.Context) (common.Address, error)
}

// ContractWriter submits HoloVaultAnalyzer transactions. Each call is a single
// best-effort submission returning the transaction hash; failures are
// *entity.TransactionError.
type ContractWriter interface {
	CreatePool(ctx context.Context, req entity.CreatePoolRequest) (common.Hash, error)
	AddUserPosition(ctx context.Context, req entity.AddPositionRequest) (common.Hash, error)
	SetAuthorizedProvider(ctx context.Context, provider common.Address, authorized bool) (common.Hash, error)
	PausePool(ctx context.Context, poolID uint64) (common.Hash, error)
	UnpausePool(ctx context.Context, poolID uint64) (common.Hash, error)
	UpdatePoolData(ctx context.Context, req entity.UpdatePoolDataRequest) (common.Hash, error)
	UpdateUserReputation(ctx context.Context, user common.Address, reputation []byte) (common.Hash, error)
	TransferOwnership(ctx context.Context, newOwner common.Address) (common.Hash, error)
}

// ContractEventSource decodes the contract events emitted by a transaction.
type ContractEventSource interface {
	TransactionEvents(ctx context.Context, txHash common.Hash) ([]entity.ContractEvent, error)
}

// ContractClient is the full capability over the HoloVaultAnalyzer contract.
type ContractClient interface {
	ContractReader
	ContractWriter
	ContractEventSource
}
