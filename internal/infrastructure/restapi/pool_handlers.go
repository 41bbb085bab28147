package restapi

import (
	"fmt"
	"net/http"
	"strconv"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/app/service"
	"holo_vault_analyzer/internal/domain/entity"
	"holo_vault_analyzer/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SelectTabRequest is the body of PUT /pools/:index/detail/tab.
type SelectTabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

// PoolHandler serves pool cards, the per-session detail dialog and batch
// on-chain pool reads.
type PoolHandler struct {
	pools   port.PoolProvider
	details port.PoolDetailService
	onchain port.PoolService
}

// NewPoolHandler creates a new PoolHandler.
func NewPoolHandler(pools port.PoolProvider, details port.PoolDetailService, onchain port.PoolService) *PoolHandler {
	return &PoolHandler{pools: pools, details: details, onchain: onchain}
}

// ListPools returns the pool cards.
func (h *PoolHandler) ListPools(c *gin.Context) {
	pools, err := h.pools.Pools()
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	cards := make([]entity.PoolCardView, len(pools))
	for i, p := range pools {
		cards[i] = entity.PoolCardView{Index: i, Pool: p, PrivacyLevel: service.PrivacyLabel(p.Encrypted)}
	}
	c.JSON(http.StatusOK, gin.H{"pools": cards})
}

// PoolsOnChain reads the pools listed in ?ids= from the contract.
func (h *PoolHandler) PoolsOnChain(c *gin.Context) {
	ids, err := utils.ParseUint64List(c.Query("ids"))
	if err != nil {
		badRequest(c, err)
		return
	}
	if len(ids) == 0 {
		badRequest(c, fmt.Errorf("query parameter ids is required"))
		return
	}
	pools, err := h.onchain.PoolsOnChain(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pools": pools})
}

// detail applies op to the session's dialog for the pool at :index and
// renders the result.
func (h *PoolHandler) detail(c *gin.Context, op func(*entity.PoolDetailState) error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid pool index %q", c.Param("index")))
		return
	}
	pool, err := h.details.Pool(index)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}

	sess := sessionFrom(c)
	wallet := sess.Wallet()
	var view entity.PoolDetailView
	err = sess.WithDetail(pool, func(st *entity.PoolDetailState) error {
		if op != nil {
			if err := op(st); err != nil {
				return err
			}
		}
		var viewErr error
		view, viewErr = h.details.View(c.Request.Context(), index, pool, st, wallet)
		return viewErr
	})
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetDetail renders the dialog without changing it.
func (h *PoolHandler) GetDetail(c *gin.Context) {
	h.detail(c, nil)
}

// OpenDetail opens the dialog on the overview tab.
func (h *PoolHandler) OpenDetail(c *gin.Context) {
	h.detail(c, func(st *entity.PoolDetailState) error {
		st.Open()
		return nil
	})
}

// CloseDetail closes the dialog.
func (h *PoolHandler) CloseDetail(c *gin.Context) {
	h.detail(c, func(st *entity.PoolDetailState) error {
		st.Close()
		return nil
	})
}

// SelectTab switches the active tab.
func (h *PoolHandler) SelectTab(c *gin.Context) {
	var req SelectTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	tab, err := entity.ParseDetailTab(req.Tab)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.detail(c, func(st *entity.PoolDetailState) error {
		return st.SelectTab(tab)
	})
}

// ToggleRawData shows or hides the encrypted figures.
func (h *PoolHandler) ToggleRawData(c *gin.Context) {
	h.detail(c, func(st *entity.PoolDetailState) error {
		_, err := st.ToggleRawData()
		return err
	})
}
