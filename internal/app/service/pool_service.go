package service

import (
	"context"
	"fmt"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrentReads = 5

type poolServiceImpl struct {
	contract      port.ContractClient
	encryptor     port.Encryptor
	maxConcurrent int
	logger        port.Logger
}

// NewPoolService creates a PoolService. maxConcurrent bounds parallel
// getPoolInfo calls.
func NewPoolService(contract port.ContractClient, encryptor port.Encryptor, maxConcurrent int, logger port.Logger) port.PoolService {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentReads
	}
	return &poolServiceImpl{contract: contract, encryptor: encryptor, maxConcurrent: maxConcurrent, logger: logger}
}

// PoolsOnChain reads every id concurrently. Results keep the order of ids; the
// first failure cancels the remaining reads.
func (s *poolServiceImpl) PoolsOnChain(ctx context.Context, ids []uint64) ([]entity.PoolInfo, error) {
	results := make([]entity.PoolInfo, len(ids))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.maxConcurrent)
	for i, id := range ids {
		eg.Go(func() error {
			info, err := s.contract.GetPoolInfo(egCtx, id)
			if err != nil {
				return fmt.Errorf("pool %d: %w", id, err)
			}
			results[i] = *info
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		s.logger.Warn("On-chain pool read failed", "ids", ids, "error", err)
		return nil, err
	}
	return results, nil
}

// sealed is an encrypted value and the proof bound to it, as contract bytes.
type sealed struct {
	handle []byte
	proof  []byte
}

func (s *poolServiceImpl) seal(ctx context.Context, value uint64) (sealed, error) {
	ct, err := s.encryptor.EncryptValue(ctx, value)
	if err != nil {
		return sealed{}, fmt.Errorf("failed to encrypt value: %w", err)
	}
	proof, err := s.encryptor.GenerateProof(ctx, value)
	if err != nil {
		return sealed{}, fmt.Errorf("failed to generate proof: %w", err)
	}
	return sealed{handle: []byte(ct), proof: []byte(proof)}, nil
}

func (s *poolServiceImpl) encrypt(ctx context.Context, value uint64) ([]byte, error) {
	ct, err := s.encryptor.EncryptValue(ctx, value)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt value: %w", err)
	}
	return []byte(ct), nil
}

// CreatePool encrypts the initial TVL and submits createPool for a connected
// wallet.
func (s *poolServiceImpl) CreatePool(ctx context.Context, wallet port.WalletState, in entity.CreatePoolInput) (common.Hash, error) {
	if !wallet.Connected {
		return common.Hash{}, entity.ErrWalletNotConnected
	}
	tvl, err := s.seal(ctx, in.InitialTVL)
	if err != nil {
		return common.Hash{}, err
	}
	hash, err := s.contract.CreatePool(ctx, entity.CreatePoolRequest{
		Name:        in.Name,
		TokenPair:   in.TokenPair,
		PoolAddress: in.PoolAddress,
		InitialTVL:  tvl.handle,
		InputProof:  tvl.proof,
	})
	if err != nil {
		return common.Hash{}, err
	}
	s.logger.Info("Pool creation submitted", "name", in.Name, "wallet", wallet.Address, "tx_hash", hash.Hex())
	return hash, nil
}

// AddPosition encrypts the amounts and submits addUserPosition for a
// connected wallet. The proof covers the liquidity amount.
func (s *poolServiceImpl) AddPosition(ctx context.Context, wallet port.WalletState, in entity.AddPositionInput) (common.Hash, error) {
	if !wallet.Connected {
		return common.Hash{}, entity.ErrWalletNotConnected
	}
	liquidity, err := s.seal(ctx, in.LiquidityAmount)
	if err != nil {
		return common.Hash{}, err
	}
	share, err := s.encrypt(ctx, in.SharePercentage)
	if err != nil {
		return common.Hash{}, err
	}
	hash, err := s.contract.AddUserPosition(ctx, entity.AddPositionRequest{
		PoolID:          in.PoolID,
		LiquidityAmount: liquidity.handle,
		SharePercentage: share,
		InputProof:      liquidity.proof,
	})
	if err != nil {
		return common.Hash{}, err
	}
	s.logger.Info("Position submitted", "pool_id", in.PoolID, "wallet", wallet.Address, "tx_hash", hash.Hex())
	return hash, nil
}

// UpdatePoolData encrypts the new figures and submits updatePoolData for a
// connected wallet. The proof covers the TVL.
func (s *poolServiceImpl) UpdatePoolData(ctx context.Context, wallet port.WalletState, in entity.UpdatePoolDataInput) (common.Hash, error) {
	if !wallet.Connected {
		return common.Hash{}, entity.ErrWalletNotConnected
	}
	tvl, err := s.seal(ctx, in.NewTVL)
	if err != nil {
		return common.Hash{}, err
	}
	volume, err := s.encrypt(ctx, in.NewVolume)
	if err != nil {
		return common.Hash{}, err
	}
	apr, err := s.encrypt(ctx, in.NewAPR)
	if err != nil {
		return common.Hash{}, err
	}
	hash, err := s.contract.UpdatePoolData(ctx, entity.UpdatePoolDataRequest{
		PoolID:     in.PoolID,
		NewTVL:     tvl.handle,
		NewVolume:  volume,
		NewAPR:     apr,
		InputProof: tvl.proof,
	})
	if err != nil {
		return common.Hash{}, err
	}
	s.logger.Info("Pool data update submitted", "pool_id", in.PoolID, "wallet", wallet.Address, "tx_hash", hash.Hex())
	return hash, nil
}
