package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// fakeContract overrides the ContractClient methods the services use. Calling
// anything else panics on the nil embedded interface.
type fakeContract struct {
	port.ContractClient

	mu          sync.Mutex
	analytics   *entity.GlobalAnalytics
	analyticsFn func() error
	reads       atomic.Int32
	pools       map[uint64]entity.PoolInfo
	created     []entity.CreatePoolRequest
	positions   []entity.AddPositionRequest
	updates     []entity.UpdatePoolDataRequest
	writeErr    error
}

func (f *fakeContract) GetGlobalAnalytics(context.Context) (*entity.GlobalAnalytics, error) {
	f.reads.Add(1)
	if f.analyticsFn != nil {
		if err := f.analyticsFn(); err != nil {
			return nil, err
		}
	}
	if f.analytics == nil {
		return nil, errors.New("execution reverted")
	}
	res := *f.analytics
	return &res, nil
}

func (f *fakeContract) GetPoolInfo(ctx context.Context, poolID uint64) (*entity.PoolInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, ok := f.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("pool %d: %w", poolID, entity.ErrPoolNotFound)
	}
	return &info, nil
}

func (f *fakeContract) CreatePool(_ context.Context, req entity.CreatePoolRequest) (common.Hash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return common.Hash{}, &entity.TransactionError{Method: "createPool", Err: f.writeErr}
	}
	f.created = append(f.created, req)
	return common.BigToHash(big.NewInt(int64(len(f.created)))), nil
}

func (f *fakeContract) AddUserPosition(_ context.Context, req entity.AddPositionRequest) (common.Hash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return common.Hash{}, &entity.TransactionError{Method: "addUserPosition", Err: f.writeErr}
	}
	f.positions = append(f.positions, req)
	return common.BigToHash(big.NewInt(100)), nil
}

func (f *fakeContract) UpdatePoolData(_ context.Context, req entity.UpdatePoolDataRequest) (common.Hash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, req)
	return common.BigToHash(big.NewInt(200)), nil
}

type staticPools struct {
	pools []entity.PoolSummary
	err   error
}

func (s staticPools) Pools() ([]entity.PoolSummary, error) {
	return s.pools, s.err
}

func demoPools() []entity.PoolSummary {
	return []entity.PoolSummary{
		{Name: "ETH/USDC", Pair: "Ethereum • USDC", TVL: "$45.2M", APR: "12.34%", Volume24h: "$2.1M", Encrypted: true},
		{Name: "BTC/ETH", Pair: "Bitcoin • Ethereum", TVL: "$28.7M", APR: "8.91%", Volume24h: "$1.8M", Encrypted: true},
		{Name: "USDC/USDT", Pair: "USDC • Tether", TVL: "$67.1M", APR: "4.23%", Volume24h: "$5.4M", Encrypted: false},
	}
}
