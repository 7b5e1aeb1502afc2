package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"scrypto/service"
)

type ReputationHandler struct {
	reputationService service.ReputationService
	badgeService      service.BadgeService
}

func NewReputationHandler(reputationService service.ReputationService, badgeService service.BadgeService) *ReputationHandler {
	return &ReputationHandler{
		reputationService: reputationService,
		badgeService:      badgeService,
	}
}

// Leaderboard returns the top wallets by reputation score
func (h *ReputationHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.reputationService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// Rank returns the caller's leaderboard position
func (h *ReputationHandler) Rank(c *gin.Context) {
	rank, err := h.reputationService.Rank(c.Request.Context(), GetWallet(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if rank == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "wallet not ranked yet"})
		return
	}
	c.JSON(http.StatusOK, rank)
}

// GetReputation returns the caller's reputation accumulator
func (h *ReputationHandler) GetReputation(c *gin.Context) {
	rep, err := h.reputationService.GetByWallet(c.Request.Context(), GetWallet(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if rep == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no reputation yet"})
		return
	}
	c.JSON(http.StatusOK, rep)
}

// ListBadges returns the caller's badges
func (h *ReputationHandler) ListBadges(c *gin.Context) {
	badges, err := h.badgeService.GetBadges(c.Request.Context(), GetWallet(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// CheckBadges re-evaluates badge rules for the caller and returns any newly
// awarded badge types
func (h *ReputationHandler) CheckBadges(c *gin.Context) {
	awarded, err := h.badgeService.CheckAndAward(c.Request.Context(), GetWallet(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"awarded": awarded})
}
