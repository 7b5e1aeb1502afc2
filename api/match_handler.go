package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"scrypto/models"
	"scrypto/service"
)

type MatchHandler struct {
	matchService  service.MatchService
	escrowService service.EscrowService
}

func NewMatchHandler(matchService service.MatchService, escrowService service.EscrowService) *MatchHandler {
	return &MatchHandler{
		matchService:  matchService,
		escrowService: escrowService,
	}
}

type createMatchRequest struct {
	OtherWallet  string    `json:"other_wallet" binding:"required"`
	TeachSkillID uuid.UUID `json:"teach_skill_id" binding:"required"`
	LearnSkillID uuid.UUID `json:"learn_skill_id" binding:"required"`
}

// CreateMatch proposes a bilateral skill exchange with the caller as user A
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	match, err := h.matchService.CreateMatch(c.Request.Context(), GetWallet(c), req.OtherWallet, req.TeachSkillID, req.LearnSkillID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, match)
}

// ListMatches returns the caller's matches, newest first
func (h *MatchHandler) ListMatches(c *gin.Context) {
	matches, err := h.matchService.GetMatchesByWallet(c.Request.Context(), GetWallet(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// FindPotential returns complementary pairings for the caller
func (h *MatchHandler) FindPotential(c *gin.Context) {
	matches, err := h.matchService.FindPotentialMatches(c.Request.Context(), GetWallet(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"potential_matches": matches})
}

// GetMatch returns a single match
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return
	}
	match, err := h.matchService.GetMatch(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if match == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	c.JSON(http.StatusOK, match)
}

// AcceptMatch lets the invited party accept a pending match
func (h *MatchHandler) AcceptMatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return
	}
	match, err := h.matchService.AcceptMatch(c.Request.Context(), id, GetWallet(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

type updateStatusRequest struct {
	Status models.MatchStatus `json:"status" binding:"required"`
}

// UpdateStatus transitions a match along its state machine
func (h *MatchHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	match, err := h.matchService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

type stakeRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// Stake debits the caller's balance and locks the amount in escrow
func (h *MatchHandler) Stake(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return
	}
	var req stakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.escrowService.Stake(c.Request.Context(), id, GetWallet(c), req.Amount); err != nil {
		respondError(c, err)
		return
	}
	bothStaked, err := h.escrowService.BothStaked(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":      "staked",
		"both_staked": bothStaked,
	})
}

// ListDeposits returns all escrow deposits for a match
func (h *MatchHandler) ListDeposits(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return
	}
	deposits, err := h.escrowService.GetDeposits(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposits": deposits})
}
