package client

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"sync"
	"time"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/domain/entity"
	"holo_vault_analyzer/internal/infrastructure/fhe"
	"holo_vault_analyzer/internal/pkg/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// MockHoloVaultClient is an in-memory stand-in for the deployed contract. Reads
// return deterministic values and writes produce synthetic transaction hashes
// whose events can be queried back.
type MockHoloVaultClient struct {
	mu         sync.Mutex
	address    common.Address
	owner      common.Address
	verifier   common.Address
	analytics  entity.GlobalAnalytics
	pools      map[uint64]*entity.PoolInfo
	nextPoolID uint64
	positions  map[common.Address][]entity.UserPosition
	reputation map[common.Address]uint8
	providers  map[common.Address]bool
	events     map[common.Hash][]entity.ContractEvent
	nonce      uint64
	block      uint64
	now        func() time.Time
	decryptor  port.Encryptor
	logger     port.Logger
}

var _ port.ContractClient = (*MockHoloVaultClient)(nil)

// NewMockHoloVaultClient seeds the mock with the demo analytics figures.
func NewMockHoloVaultClient(address common.Address, log port.Logger) *MockHoloVaultClient {
	if log == nil {
		log = logger.Nop()
	}
	return &MockHoloVaultClient{
		address:  address,
		owner:    common.HexToAddress("0x000000000000000000000000000000000000dEaD"),
		verifier: common.HexToAddress("0x0000000000000000000000000000000000000F4E"),
		analytics: entity.GlobalAnalytics{
			TotalTVL:       141,
			TotalVolume24h: 93,
			AverageAPR:     85,
			ActivePools:    12,
			TotalUsers:     156,
			LastCalculated: big.NewInt(0),
		},
		pools:      make(map[uint64]*entity.PoolInfo),
		positions:  make(map[common.Address][]entity.UserPosition),
		reputation: make(map[common.Address]uint8),
		providers:  make(map[common.Address]bool),
		events:     make(map[common.Hash][]entity.ContractEvent),
		block:      1,
		now:        time.Now,
		decryptor:  fhe.NewMockEncryptor(),
		logger:     log,
	}
}

func (m *MockHoloVaultClient) GetGlobalAnalytics(ctx context.Context) (*entity.GlobalAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	res := m.analytics
	res.LastCalculated = new(big.Int).Set(m.analytics.LastCalculated)
	return &res, nil
}

func (m *MockHoloVaultClient) GetPoolInfo(ctx context.Context, poolID uint64) (*entity.PoolInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pools[poolID]
	if !ok {
		return nil, fmt.Errorf("pool %d: %w", poolID, entity.ErrPoolNotFound)
	}
	res := *p
	res.LastUpdated = new(big.Int).Set(p.LastUpdated)
	return &res, nil
}

func (m *MockHoloVaultClient) GetUserPosition(ctx context.Context, user common.Address, positionID uint64) (*entity.UserPosition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pos := range m.positions[user] {
		if pos.PositionID == positionID {
			res := pos
			return &res, nil
		}
	}
	// Unset storage reads as zero on chain.
	return &entity.UserPosition{User: user, PositionID: positionID, Timestamp: big.NewInt(0)}, nil
}

func (m *MockHoloVaultClient) GetUserReputation(ctx context.Context, user common.Address) (uint8, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reputation[user], nil
}

func (m *MockHoloVaultClient) Owner(context.Context) (common.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owner, nil
}

func (m *MockHoloVaultClient) Verifier(context.Context) (common.Address, error) {
	return m.verifier, nil
}

// submit records one synthetic transaction. Callers hold m.mu.
func (m *MockHoloVaultClient) submit(method string, events ...entity.ContractEvent) common.Hash {
	m.nonce++
	m.block++
	hash := crypto.Keccak256Hash([]byte(method), new(big.Int).SetUint64(m.nonce).Bytes())
	for i := range events {
		events[i].Address = m.address
		events[i].TxHash = hash
		events[i].BlockNumber = m.block
		events[i].LogIndex = uint(i)
	}
	m.events[hash] = events
	m.logger.Info("Mock contract transaction submitted", "method", method, "tx_hash", hash.Hex())
	return hash
}

// fail logs a rejected write and wraps it as a TransactionError.
func (m *MockHoloVaultClient) fail(method string, err error) error {
	m.logger.Error("Contract write failed", "method", method, "contract", m.address.Hex(), "error", err)
	return &entity.TransactionError{Method: method, Err: err}
}

func (m *MockHoloVaultClient) CreatePool(ctx context.Context, req entity.CreatePoolRequest) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.Hash{}, m.fail(MethodCreatePool, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextPoolID
	m.nextPoolID++
	m.pools[id] = &entity.PoolInfo{
		PoolID:      id,
		Name:        req.Name,
		TokenPair:   req.TokenPair,
		PoolAddress: req.PoolAddress,
		IsActive:    true,
		IsEncrypted: true,
		LastUpdated: big.NewInt(m.now().Unix()),
	}
	if m.analytics.ActivePools < ^uint8(0) {
		m.analytics.ActivePools++
	}
	return m.submit(MethodCreatePool, entity.ContractEvent{
		Name: EventPoolCreated,
		Fields: map[string]interface{}{
			"poolId":      new(big.Int).SetUint64(id),
			"poolAddress": req.PoolAddress,
			"name":        req.Name,
		},
	}), nil
}

func (m *MockHoloVaultClient) AddUserPosition(ctx context.Context, req entity.AddPositionRequest) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.Hash{}, m.fail(MethodAddUserPosition, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	pool, ok := m.pools[req.PoolID]
	if !ok {
		return common.Hash{}, m.fail(MethodAddUserPosition, fmt.Errorf("pool %d: %w", req.PoolID, entity.ErrPoolNotFound))
	}
	if !pool.IsActive {
		return common.Hash{}, m.fail(MethodAddUserPosition, fmt.Errorf("pool %d is paused", req.PoolID))
	}
	pool.ProviderCount++
	pool.LastUpdated = big.NewInt(m.now().Unix())
	return m.submit(MethodAddUserPosition), nil
}

func (m *MockHoloVaultClient) SetAuthorizedProvider(ctx context.Context, provider common.Address, authorized bool) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.Hash{}, m.fail(MethodSetAuthorizedProvider, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[provider] = authorized
	return m.submit(MethodSetAuthorizedProvider, entity.ContractEvent{
		Name:   EventProviderAuthorized,
		Fields: map[string]interface{}{"provider": provider, "authorized": authorized},
	}), nil
}

func (m *MockHoloVaultClient) setActive(ctx context.Context, method string, poolID uint64, active bool) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.Hash{}, m.fail(method, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pool, ok := m.pools[poolID]
	if !ok {
		return common.Hash{}, m.fail(method, fmt.Errorf("pool %d: %w", poolID, entity.ErrPoolNotFound))
	}
	pool.IsActive = active
	return m.submit(method), nil
}

func (m *MockHoloVaultClient) PausePool(ctx context.Context, poolID uint64) (common.Hash, error) {
	return m.setActive(ctx, MethodPausePool, poolID, false)
}

func (m *MockHoloVaultClient) UnpausePool(ctx context.Context, poolID uint64) (common.Hash, error) {
	return m.setActive(ctx, MethodUnpausePool, poolID, true)
}

func (m *MockHoloVaultClient) UpdatePoolData(ctx context.Context, req entity.UpdatePoolDataRequest) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.Hash{}, m.fail(MethodUpdatePoolData, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pool, ok := m.pools[req.PoolID]
	if !ok {
		return common.Hash{}, m.fail(MethodUpdatePoolData, fmt.Errorf("pool %d: %w", req.PoolID, entity.ErrPoolNotFound))
	}
	pool.LastUpdated = big.NewInt(m.now().Unix())
	// Ciphertext handles are opaque, so the event carries zeroed figures.
	return m.submit(MethodUpdatePoolData, entity.ContractEvent{
		Name: EventPoolUpdated,
		Fields: map[string]interface{}{
			"poolId": new(big.Int).SetUint64(req.PoolID),
			"tvl":    big.NewInt(0),
			"volume": big.NewInt(0),
			"apr":    big.NewInt(0),
		},
	}), nil
}

func (m *MockHoloVaultClient) UpdateUserReputation(ctx context.Context, user common.Address, reputation []byte) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.Hash{}, m.fail(MethodUpdateUserReputation, err)
	}
	v, err := m.decryptor.DecryptValue(ctx, string(reputation))
	if err != nil {
		return common.Hash{}, m.fail(MethodUpdateUserReputation, err)
	}
	if v > math.MaxUint8 {
		return common.Hash{}, m.fail(MethodUpdateUserReputation, fmt.Errorf("reputation %d exceeds uint8", v))
	}
	rep := uint8(v)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.reputation[user] = rep
	return m.submit(MethodUpdateUserReputation, entity.ContractEvent{
		Name:   EventReputationUpdated,
		Fields: map[string]interface{}{"user": user, "reputation": big.NewInt(int64(rep))},
	}), nil
}

func (m *MockHoloVaultClient) TransferOwnership(ctx context.Context, newOwner common.Address) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.Hash{}, m.fail(MethodTransferOwnership, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owner = newOwner
	return m.submit(MethodTransferOwnership), nil
}

func (m *MockHoloVaultClient) TransactionEvents(ctx context.Context, txHash common.Hash) ([]entity.ContractEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	events, ok := m.events[txHash]
	if !ok {
		return nil, fmt.Errorf("receipt for %s not found", txHash.Hex())
	}
	out := make([]entity.ContractEvent, len(events))
	copy(out, events)
	return out, nil
}
