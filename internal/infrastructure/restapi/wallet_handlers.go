package restapi

import (
	"fmt"
	"net/http"

	"holo_vault_analyzer/internal/app/port"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// ConnectWalletRequest is the body of POST /wallet/connect.
type ConnectWalletRequest struct {
	Address string `json:"address" binding:"required"`
}

// WalletResponse reports the session's wallet connection.
type WalletResponse struct {
	SessionID string `json:"sessionId"`
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
}

// WalletHandler manages the wallet connection of a session.
type WalletHandler struct {
	logger port.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(logger port.Logger) *WalletHandler {
	return &WalletHandler{logger: logger}
}

func walletResponse(c *gin.Context) WalletResponse {
	sess := sessionFrom(c)
	w := sess.Wallet()
	return WalletResponse{SessionID: sess.ID, Connected: w.Connected, Address: w.Address}
}

// GetWallet returns the connection state.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	c.JSON(http.StatusOK, walletResponse(c))
}

// Connect binds a wallet address to the session.
func (h *WalletHandler) Connect(c *gin.Context) {
	var req ConnectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !common.IsHexAddress(req.Address) {
		badRequest(c, fmt.Errorf("invalid wallet address %q", req.Address))
		return
	}
	sess := sessionFrom(c)
	sess.Connect(common.HexToAddress(req.Address))
	h.logger.Info("Wallet connected", "session_id", sess.ID, "address", req.Address)
	c.JSON(http.StatusOK, walletResponse(c))
}

// Disconnect clears the session's wallet.
func (h *WalletHandler) Disconnect(c *gin.Context) {
	sess := sessionFrom(c)
	sess.Disconnect()
	h.logger.Info("Wallet disconnected", "session_id", sess.ID)
	c.JSON(http.StatusOK, walletResponse(c))
}
