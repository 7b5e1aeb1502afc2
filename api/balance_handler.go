package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"scrypto/service"
)

type BalanceHandler struct {
	escrowService     service.EscrowService
	rewardPoolService service.RewardPoolService
}

func NewBalanceHandler(escrowService service.EscrowService, rewardPoolService service.RewardPoolService) *BalanceHandler {
	return &BalanceHandler{
		escrowService:     escrowService,
		rewardPoolService: rewardPoolService,
	}
}

// GetBalance returns the caller's balance, crediting the starting balance on
// first access
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	balance, err := h.escrowService.GetOrCreateBalance(c.Request.Context(), GetWallet(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wallet_address": GetWallet(c),
		"balance":        balance,
	})
}

// GetTreasury returns the platform treasury balance
func (h *BalanceHandler) GetTreasury(c *gin.Context) {
	balance, err := h.escrowService.GetTreasuryBalance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// GetRewardPool returns the reward pool total
func (h *BalanceHandler) GetRewardPool(c *gin.Context) {
	pool, err := h.rewardPoolService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": pool.TotalAmount})
}

type contributeRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ContributeRewardPool adds an external contribution to the reward pool
func (h *BalanceHandler) ContributeRewardPool(c *gin.Context) {
	var req contributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}
	if err := h.rewardPoolService.Contribute(c.Request.Context(), req.Amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "contributed"})
}
