package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scrypto/service"
)

type SessionHandler struct {
	sessionService service.SessionService
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

type createSessionRequest struct {
	MatchID uuid.UUID `json:"match_id" binding:"required"`
}

// CreateSession opens the learning session for a fully staked match
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	session, err := h.sessionService.CreateSession(c.Request.Context(), req.MatchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// ListSessions returns the caller's sessions, newest first
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionService.GetSessionsByWallet(c.Request.Context(), GetWallet(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

type satisfactionRequest struct {
	Satisfied *bool `json:"satisfied" binding:"required"`
}

// MarkSatisfaction records the caller's satisfaction vote; the second vote
// resolves the session
func (h *SessionHandler) MarkSatisfaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	var req satisfactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	session, err := h.sessionService.MarkSatisfaction(c.Request.Context(), id, GetWallet(c), *req.Satisfied)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
