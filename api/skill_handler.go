package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scrypto/service"
)

type SkillHandler struct {
	skillService service.SkillService
}

func NewSkillHandler(skillService service.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

// ListSkills returns the skill catalog
func (h *SkillHandler) ListSkills(c *gin.Context) {
	skills, err := h.skillService.ListSkills(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

type addSkillRequest struct {
	SkillID uuid.UUID `json:"skill_id" binding:"required"`
}

// AddTaughtSkill marks a skill as taught by the caller
func (h *SkillHandler) AddTaughtSkill(c *gin.Context) {
	var req addSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.skillService.AddUserSkill(c.Request.Context(), GetWallet(c), req.SkillID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "added"})
}

// AddWantedSkill marks a skill as wanted by the caller
func (h *SkillHandler) AddWantedSkill(c *gin.Context) {
	var req addSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.skillService.AddWantedSkill(c.Request.Context(), GetWallet(c), req.SkillID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "added"})
}

// ListTaughtSkills returns the skills the caller teaches
func (h *SkillHandler) ListTaughtSkills(c *gin.Context) {
	skills, err := h.skillService.GetUserSkills(c.Request.Context(), GetWallet(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// ListWantedSkills returns the skills the caller wants to learn
func (h *SkillHandler) ListWantedSkills(c *gin.Context) {
	skills, err := h.skillService.GetWantedSkills(c.Request.Context(), GetWallet(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}
