package restapi

import (
	"fmt"
	"net/http"
	"strconv"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
)

// TxResponse carries the hash of a submitted transaction.
type TxResponse struct {
	TxHash string `json:"txHash"`
}

// SetProviderRequest is the body of POST /contract/providers.
type SetProviderRequest struct {
	Provider   string `json:"provider" binding:"required"`
	Authorized bool   `json:"authorized"`
}

// UpdateReputationRequest is the body of POST /contract/reputation.
type UpdateReputationRequest struct {
	User       string `json:"user" binding:"required"`
	Reputation uint64 `json:"reputation"`
}

// TransferOwnershipRequest is the body of POST /contract/ownership.
type TransferOwnershipRequest struct {
	NewOwner string `json:"newOwner" binding:"required"`
}

// ContractHandler exposes the contract accessor: reads, encrypted writes,
// admin writes and transaction event decoding.
type ContractHandler struct {
	contract  port.ContractClient
	pools     port.PoolService
	encryptor port.Encryptor
}

// NewContractHandler creates a new ContractHandler.
func NewContractHandler(contract port.ContractClient, pools port.PoolService, encryptor port.Encryptor) *ContractHandler {
	return &ContractHandler{contract: contract, pools: pools, encryptor: encryptor}
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

func parseUintParam(c *gin.Context, name string) (uint64, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, c.Param(name))
	}
	return v, nil
}

// requireWallet aborts with 401 unless the session has a connected wallet.
func requireWallet(c *gin.Context) (port.WalletState, bool) {
	wallet := sessionFrom(c).Wallet()
	if !wallet.Connected {
		respondError(c, entity.ErrWalletNotConnected, http.StatusUnauthorized)
		return wallet, false
	}
	return wallet, true
}

func respondTx(c *gin.Context, hash common.Hash, err error) {
	if err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, TxResponse{TxHash: hash.Hex()})
}

// GetPoolInfo reads one pool from the contract.
func (h *ContractHandler) GetPoolInfo(c *gin.Context) {
	poolID, err := parseUintParam(c, "poolId")
	if err != nil {
		badRequest(c, err)
		return
	}
	info, err := h.contract.GetPoolInfo(c.Request.Context(), poolID)
	if err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetUserPosition reads one position of a user.
func (h *ContractHandler) GetUserPosition(c *gin.Context) {
	user, err := parseAddress(c.Param("address"))
	if err != nil {
		badRequest(c, err)
		return
	}
	positionID, err := parseUintParam(c, "positionId")
	if err != nil {
		badRequest(c, err)
		return
	}
	pos, err := h.contract.GetUserPosition(c.Request.Context(), user, positionID)
	if err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, pos)
}

// GetUserReputation reads a user's reputation.
func (h *ContractHandler) GetUserReputation(c *gin.Context) {
	user, err := parseAddress(c.Param("address"))
	if err != nil {
		badRequest(c, err)
		return
	}
	rep, err := h.contract.GetUserReputation(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Hex(), "reputation": rep})
}

// GetRoles returns the owner and verifier addresses.
func (h *ContractHandler) GetRoles(c *gin.Context) {
	ctx := c.Request.Context()
	owner, err := h.contract.Owner(ctx)
	if err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}
	verifier, err := h.contract.Verifier(ctx)
	if err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, gin.H{"owner": owner.Hex(), "verifier": verifier.Hex()})
}

// CreatePool submits createPool with an encrypted initial TVL.
func (h *ContractHandler) CreatePool(c *gin.Context) {
	var in entity.CreatePoolInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	hash, err := h.pools.CreatePool(c.Request.Context(), sessionFrom(c).Wallet(), in)
	respondTx(c, hash, err)
}

// AddPosition submits addUserPosition with encrypted amounts.
func (h *ContractHandler) AddPosition(c *gin.Context) {
	var in entity.AddPositionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	hash, err := h.pools.AddPosition(c.Request.Context(), sessionFrom(c).Wallet(), in)
	respondTx(c, hash, err)
}

// UpdatePoolData submits updatePoolData for :poolId.
func (h *ContractHandler) UpdatePoolData(c *gin.Context) {
	poolID, err := parseUintParam(c, "poolId")
	if err != nil {
		badRequest(c, err)
		return
	}
	var in entity.UpdatePoolDataInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	in.PoolID = poolID
	hash, err := h.pools.UpdatePoolData(c.Request.Context(), sessionFrom(c).Wallet(), in)
	respondTx(c, hash, err)
}

// PausePool submits pausePool.
func (h *ContractHandler) PausePool(c *gin.Context) {
	if _, ok := requireWallet(c); !ok {
		return
	}
	poolID, err := parseUintParam(c, "poolId")
	if err != nil {
		badRequest(c, err)
		return
	}
	hash, err := h.contract.PausePool(c.Request.Context(), poolID)
	respondTx(c, hash, err)
}

// UnpausePool submits unpausePool.
func (h *ContractHandler) UnpausePool(c *gin.Context) {
	if _, ok := requireWallet(c); !ok {
		return
	}
	poolID, err := parseUintParam(c, "poolId")
	if err != nil {
		badRequest(c, err)
		return
	}
	hash, err := h.contract.UnpausePool(c.Request.Context(), poolID)
	respondTx(c, hash, err)
}

// SetAuthorizedProvider submits setAuthorizedProvider.
func (h *ContractHandler) SetAuthorizedProvider(c *gin.Context) {
	if _, ok := requireWallet(c); !ok {
		return
	}
	var req SetProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	provider, err := parseAddress(req.Provider)
	if err != nil {
		badRequest(c, err)
		return
	}
	hash, err := h.contract.SetAuthorizedProvider(c.Request.Context(), provider, req.Authorized)
	respondTx(c, hash, err)
}

// UpdateUserReputation encrypts the reputation and submits
// updateUserReputation.
func (h *ContractHandler) UpdateUserReputation(c *gin.Context) {
	if _, ok := requireWallet(c); !ok {
		return
	}
	var req UpdateReputationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := parseAddress(req.User)
	if err != nil {
		badRequest(c, err)
		return
	}
	ct, err := h.encryptor.EncryptValue(c.Request.Context(), req.Reputation)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	hash, err := h.contract.UpdateUserReputation(c.Request.Context(), user, []byte(ct))
	respondTx(c, hash, err)
}

// TransferOwnership submits transferOwnership.
func (h *ContractHandler) TransferOwnership(c *gin.Context) {
	if _, ok := requireWallet(c); !ok {
		return
	}
	var req TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	newOwner, err := parseAddress(req.NewOwner)
	if err != nil {
		badRequest(c, err)
		return
	}
	hash, err := h.contract.TransferOwnership(c.Request.Context(), newOwner)
	respondTx(c, hash, err)
}

// TransactionEvents decodes the contract events of a transaction.
func (h *ContractHandler) TransactionEvents(c *gin.Context) {
	raw, err := hexutil.Decode(c.Param("hash"))
	if err != nil || len(raw) != common.HashLength {
		badRequest(c, fmt.Errorf("invalid transaction hash %q", c.Param("hash")))
		return
	}
	events, err := h.contract.TransactionEvents(c.Request.Context(), common.BytesToHash(raw))
	if err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
