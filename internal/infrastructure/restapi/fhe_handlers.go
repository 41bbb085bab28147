package restapi

import (
	"net/http"

	"holo_vault_analyzer/internal/app/port"

	"github.com/gin-gonic/gin"
)

// ValueRequest carries a plaintext value.
type ValueRequest struct {
	Value *uint64 `json:"value" binding:"required"`
}

// CiphertextRequest carries a ciphertext to decrypt.
type CiphertextRequest struct {
	Ciphertext string `json:"ciphertext" binding:"required"`
}

// FHEHandler exposes the Encryptor.
type FHEHandler struct {
	encryptor port.Encryptor
}

// NewFHEHandler creates a new FHEHandler.
func NewFHEHandler(encryptor port.Encryptor) *FHEHandler {
	return &FHEHandler{encryptor: encryptor}
}

// Encrypt returns the ciphertext of value.
func (h *FHEHandler) Encrypt(c *gin.Context) {
	var req ValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ct, err := h.encryptor.EncryptValue(c.Request.Context(), *req.Value)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ciphertext": ct})
}

// Decrypt recovers the plaintext of a ciphertext.
func (h *FHEHandler) Decrypt(c *gin.Context) {
	var req CiphertextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	v, err := h.encryptor.DecryptValue(c.Request.Context(), req.Ciphertext)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": v})
}

// Proof returns an input proof for value.
func (h *FHEHandler) Proof(c *gin.Context) {
	var req ValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	proof, err := h.encryptor.GenerateProof(c.Request.Context(), *req.Value)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proof": proof})
}
