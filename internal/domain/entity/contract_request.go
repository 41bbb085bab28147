package entity

import "github.com/ethereum/go-ethereum/common"

// CreatePoolRequest carries the createPool arguments. InitialTVL and InputProof
// are the encrypted handle and proof bytes.
type CreatePoolRequest struct {
	Name        string
	TokenPair   string
	PoolAddress common.Address
	InitialTVL  []byte
	InputProof  []byte
}

// AddPositionRequest carries the addUserPosition arguments.
type AddPositionRequest struct {
	PoolID          uint64
	LiquidityAmount []byte
	SharePercentage []byte
	InputProof      []byte
}

// UpdatePoolDataRequest carries the updatePoolData arguments.
type UpdatePoolDataRequest struct {
	PoolID     uint64
	NewTVL     []byte
	NewVolume  []byte
	NewAPR     []byte
	InputProof []byte
}

// ContractEvent is a decoded HoloVaultAnalyzer log.
type ContractEvent struct {
	Name        string                 `json:"name"`
	Address     common.Address         `json:"address"`
	TxHash      common.Hash            `json:"txHash"`
	BlockNumber uint64                 `json:"blockNumber"`
	LogIndex    uint                   `json:"logIndex"`
	Fields      map[string]interface{} `json:"fields"`
}

// CreatePoolInput is a createPool request with a plaintext initial TVL. The
// TVL is encrypted and proven before submission.
type CreatePoolInput struct {
	Name        string         `json:"name" binding:"required"`
	TokenPair   string         `json:"tokenPair" binding:"required"`
	PoolAddress common.Address `json:"poolAddress"`
	InitialTVL  uint64         `json:"initialTVL"`
}

// AddPositionInput is an addUserPosition request with plaintext amounts.
type AddPositionInput struct {
	PoolID          uint64 `json:"poolId"`
	LiquidityAmount uint64 `json:"liquidityAmount"`
	SharePercentage uint64 `json:"sharePercentage"`
}

// UpdatePoolDataInput is an updatePoolData request with plaintext figures.
type UpdatePoolDataInput struct {
	PoolID    uint64 `json:"poolId"`
	NewTVL    uint64 `json:"newTVL"`
	NewVolume uint64 `json:"newVolume"`
	NewAPR    uint64 `json:"newAPR"`
}
