package client

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/domain/entity"
	"holo_vault_analyzer/internal/pkg/logger"
	"holo_vault_analyzer/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/time/rate"
)

const defaultRPCCallTimeout = 10 * time.Second

// RPCBackend is the subset of *ethclient.Client used by the contract client.
type RPCBackend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Options configures a HoloVaultClient.
type Options struct {
	Address common.Address
	// PrivateKey signs writes. Without it the client is read-only.
	PrivateKey     *ecdsa.PrivateKey
	ChainID        *big.Int
	GasLimit       uint64
	RPCCallTimeout time.Duration
	RateLimit      float64
	BurstLimit     int
	Metrics        *metrics.Metrics
	Logger         port.Logger
}

// HoloVaultClient implements port.ContractClient against an EVM node.
type HoloVaultClient struct {
	backend        RPCBackend
	address        common.Address
	abi            abi.ABI
	key            *ecdsa.PrivateKey
	from           common.Address
	chainID        *big.Int
	gasLimit       uint64
	rpcCallTimeout time.Duration
	limiter        *rate.Limiter
	metrics        *metrics.Metrics
	logger         port.Logger
}

var _ port.ContractClient = (*HoloVaultClient)(nil)

// NewHoloVaultClient binds the HoloVaultAnalyzer ABI to address on backend.
func NewHoloVaultClient(backend RPCBackend, opts Options) *HoloVaultClient {
	c := &HoloVaultClient{
		backend:        backend,
		address:        opts.Address,
		abi:            ParsedABI(),
		key:            opts.PrivateKey,
		chainID:        opts.ChainID,
		gasLimit:       opts.GasLimit,
		rpcCallTimeout: opts.RPCCallTimeout,
		metrics:        opts.Metrics,
		logger:         opts.Logger,
	}
	if c.logger == nil {
		c.logger = logger.Nop()
	}
	if c.rpcCallTimeout <= 0 {
		c.rpcCallTimeout = defaultRPCCallTimeout
	}
	if opts.RateLimit > 0 {
		burst := opts.BurstLimit
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	} else {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
	}
	if c.key != nil {
		c.from = crypto.PubkeyToAddress(c.key.PublicKey)
	}
	if c.chainID == nil {
		c.chainID = big.NewInt(1)
	}
	return c
}

// Address returns the bound contract address.
func (c *HoloVaultClient) Address() common.Address {
	return c.address
}

// call packs method, executes an eth_call and unpacks the outputs.
func (c *HoloVaultClient) call(ctx context.Context, method string, args ...interface{}) (out []interface{}, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveContractCall(method, "read", err, time.Since(start)) }()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait for %s: %w", method, err)
	}

	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	raw, err := c.backend.CallContract(callCtx, ethereum.CallMsg{To: &c.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("eth_call %s on %s failed: %w", method, c.address.Hex(), err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("eth_call %s on %s returned no data", method, c.address.Hex())
	}

	out, err = c.abi.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w. Raw: %s", method, err, hexutil.Encode(raw))
	}
	return out, nil
}

// GetGlobalAnalytics implements port.ContractReader.
func (c *HoloVaultClient) GetGlobalAnalytics(ctx context.Context) (*entity.GlobalAnalytics, error) {
	out, err := c.call(ctx, MethodGetGlobalAnalytics)
	if err != nil {
		return nil, err
	}
	d := decoder{method: MethodGetGlobalAnalytics, values: out}
	res := &entity.GlobalAnalytics{
		TotalTVL:       d.asUint8(0),
		TotalVolume24h: d.asUint8(1),
		AverageAPR:     d.asUint8(2),
		ActivePools:    d.asUint8(3),
		TotalUsers:     d.asUint8(4),
		LastCalculated: d.asBigInt(5),
	}
	if d.err != nil {
		return nil, d.err
	}
	return res, nil
}

// GetPoolInfo implements port.ContractReader.
func (c *HoloVaultClient) GetPoolInfo(ctx context.Context, poolID uint64) (*entity.PoolInfo, error) {
	out, err := c.call(ctx, MethodGetPoolInfo, new(big.Int).SetUint64(poolID))
	if err != nil {
		return nil, err
	}
	d := decoder{method: MethodGetPoolInfo, values: out}
	res := &entity.PoolInfo{
		PoolID:        poolID,
		Name:          d.asString(0),
		TokenPair:     d.asString(1),
		PoolAddress:   d.asAddress(2),
		TVL:           d.asUint8(3),
		Volume24h:     d.asUint8(4),
		APR:           d.asUint8(5),
		ProviderCount: d.asUint8(6),
		IsActive:      d.asBool(7),
		IsEncrypted:   d.asBool(8),
		LastUpdated:   d.asBigInt(9),
	}
	if d.err != nil {
		return nil, d.err
	}
	return res, nil
}

// GetUserPosition implements port.ContractReader.
func (c *HoloVaultClient) GetUserPosition(ctx context.Context, user common.Address, positionID uint64) (*entity.UserPosition, error) {
	out, err := c.call(ctx, MethodGetUserPosition, user, new(big.Int).SetUint64(positionID))
	if err != nil {
		return nil, err
	}
	d := decoder{method: MethodGetUserPosition, values: out}
	res := &entity.UserPosition{
		User:            user,
		PositionID:      positionID,
		LiquidityAmount: d.asUint8(0),
		SharePercentage: d.asUint8(1),
		RewardsEarned:   d.asUint8(2),
		IsActive:        d.asBool(3),
		Timestamp:       d.asBigInt(4),
	}
	if d.err != nil {
		return nil, d.err
	}
	return res, nil
}

// GetUserReputation implements port.ContractReader.
func (c *HoloVaultClient) GetUserReputation(ctx context.Context, user common.Address) (uint8, error) {
	out, err := c.call(ctx, MethodGetUserReputation, user)
	if err != nil {
		return 0, err
	}
	d := decoder{method: MethodGetUserReputation, values: out}
	rep := d.asUint8(0)
	return rep, d.err
}

// Owner implements port.ContractReader.
func (c *HoloVaultClient) Owner(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, MethodOwner)
	if err != nil {
		return common.Address{}, err
	}
	d := decoder{method: MethodOwner, values: out}
	addr := d.asAddress(0)
	return addr, d.err
}

// Verifier implements port.ContractReader.
func (c *HoloVaultClient) Verifier(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, MethodVerifier)
	if err != nil {
		return common.Address{}, err
	}
	d := decoder{method: MethodVerifier, values: out}
	addr := d.asAddress(0)
	return addr, d.err
}

// transact signs and submits one transaction. Any failure is logged once and
// returned as *entity.TransactionError.
func (c *HoloVaultClient) transact(ctx context.Context, method string, args ...interface{}) (hash common.Hash, err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveContractCall(method, "write", err, time.Since(start))
		if err != nil {
			c.logger.Error("Contract write failed", "method", method, "contract", c.address.Hex(), "error", err)
			err = &entity.TransactionError{Method: method, Err: err}
		}
	}()

	if c.key == nil {
		return common.Hash{}, entity.ErrReadOnlyClient
	}

	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return common.Hash{}, fmt.Errorf("rate limiter wait: %w", err)
	}

	nonce, err := c.backend.PendingNonceAt(ctx, c.from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce for %s: %w", c.from.Hex(), err)
	}
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to suggest gas price: %w", err)
	}
	gas := c.gasLimit
	if gas == 0 {
		gas, err = c.backend.EstimateGas(ctx, ethereum.CallMsg{From: c.from, To: &c.address, GasPrice: gasPrice, Data: data})
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", err)
		}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       &c.address,
		Value:    new(big.Int),
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	c.logger.Info("Contract transaction submitted", "method", method, "tx_hash", signed.Hash().Hex(), "nonce", nonce)
	return signed.Hash(), nil
}

// CreatePool implements port.ContractWriter.
func (c *HoloVaultClient) CreatePool(ctx context.Context, req entity.CreatePoolRequest) (common.Hash, error) {
	return c.transact(ctx, MethodCreatePool, req.Name, req.TokenPair, req.PoolAddress, req.InitialTVL, req.InputProof)
}

// AddUserPosition implements port.ContractWriter.
func (c *HoloVaultClient) AddUserPosition(ctx context.Context, req entity.AddPositionRequest) (common.Hash, error) {
	return c.transact(ctx, MethodAddUserPosition, new(big.Int).SetUint64(req.PoolID), req.LiquidityAmount, req.SharePercentage, req.InputProof)
}

// SetAuthorizedProvider implements port.ContractWriter.
func (c *HoloVaultClient) SetAuthorizedProvider(ctx context.Context, provider common.Address, authorized bool) (common.Hash, error) {
	return c.transact(ctx, MethodSetAuthorizedProvider, provider, authorized)
}

// PausePool implements port.ContractWriter.
func (c *HoloVaultClient) PausePool(ctx context.Context, poolID uint64) (common.Hash, error) {
	return c.transact(ctx, MethodPausePool, new(big.Int).SetUint64(poolID))
}

// UnpausePool implements port.ContractWriter.
func (c *HoloVaultClient) UnpausePool(ctx context.Context, poolID uint64) (common.Hash, error) {
	return c.transact(ctx, MethodUnpausePool, new(big.Int).SetUint64(poolID))
}

// UpdatePoolData implements port.ContractWriter.
func (c *HoloVaultClient) UpdatePoolData(ctx context.Context, req entity.UpdatePoolDataRequest) (common.Hash, error) {
	return c.transact(ctx, MethodUpdatePoolData, new(big.Int).SetUint64(req.PoolID), req.NewTVL, req.NewVolume, req.NewAPR, req.InputProof)
}

// UpdateUserReputation implements port.ContractWriter.
func (c *HoloVaultClient) UpdateUserReputation(ctx context.Context, user common.Address, reputation []byte) (common.Hash, error) {
	return c.transact(ctx, MethodUpdateUserReputation, user, reputation)
}

// TransferOwnership implements port.ContractWriter.
func (c *HoloVaultClient) TransferOwnership(ctx context.Context, newOwner common.Address) (common.Hash, error) {
	return c.transact(ctx, MethodTransferOwnership, newOwner)
}

// TransactionEvents implements port.ContractEventSource. Logs emitted by other
// contracts are skipped.
func (c *HoloVaultClient) TransactionEvents(ctx context.Context, txHash common.Hash) ([]entity.ContractEvent, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	receipt, err := c.backend.TransactionReceipt(callCtx, txHash)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch receipt for %s: %w", txHash.Hex(), err)
	}

	events := make([]entity.ContractEvent, 0, len(receipt.Logs))
	for _, lg := range receipt.Logs {
		if lg == nil || lg.Address != c.address {
			continue
		}
		ev, err := DecodeLog(*lg)
		if err != nil {
			if errors.Is(err, entity.ErrUnknownEvent) {
				c.logger.Debug("Skipping unknown contract log", "tx_hash", txHash.Hex(), "log_index", lg.Index)
				continue
			}
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// decoder pulls typed values out of an unpacked output list and remembers the
// first mismatch.
type decoder struct {
	method string
	values []interface{}
	err    error
}

func (d *decoder) at(i int) interface{} {
	if d.err != nil {
		return nil
	}
	if i >= len(d.values) {
		d.err = fmt.Errorf("%s returned %d values, need index %d", d.method, len(d.values), i)
		return nil
	}
	return d.values[i]
}

func (d *decoder) mismatch(i int, want string, got interface{}) {
	if d.err == nil {
		d.err = fmt.Errorf("%s output %d: expected %s, got %T", d.method, i, want, got)
	}
}

func (d *decoder) asUint8(i int) uint8 {
	v := d.at(i)
	if d.err != nil {
		return 0
	}
	u, ok := v.(uint8)
	if !ok {
		d.mismatch(i, "uint8", v)
	}
	return u
}

func (d *decoder) asBigInt(i int) *big.Int {
	v := d.at(i)
	if d.err != nil {
		return nil
	}
	b, ok := v.(*big.Int)
	if !ok {
		d.mismatch(i, "*big.Int", v)
	}
	return b
}

func (d *decoder) asString(i int) string {
	v := d.at(i)
	if d.err != nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.mismatch(i, "string", v)
	}
	return s
}

func (d *decoder) asBool(i int) bool {
	v := d.at(i)
	if d.err != nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		d.mismatch(i, "bool", v)
	}
	return b
}

func (d *decoder) asAddress(i int) common.Address {
	v := d.at(i)
	if d.err != nil {
		return common.Address{}
	}
	a, ok := v.(common.Address)
	if !ok {
		d.mismatch(i, "address", v)
	}
	return a
}
