package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"scrypto/service"
)

// Services bundles everything the HTTP surface needs
type Services struct {
	Escrow     service.EscrowService
	Session    service.SessionService
	Match      service.MatchService
	Skill      service.SkillService
	Reputation service.ReputationService
	Badge      service.BadgeService
	RewardPool service.RewardPoolService
}

// Server wraps the gin engine with lifecycle management
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and wires all handlers
func NewServer(addr string, environment string, svcs Services) *Server {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	balanceHandler := NewBalanceHandler(svcs.Escrow, svcs.RewardPool)
	matchHandler := NewMatchHandler(svcs.Match, svcs.Escrow)
	sessionHandler := NewSessionHandler(svcs.Session)
	reputationHandler := NewReputationHandler(svcs.Reputation, svcs.Badge)
	skillHandler := NewSkillHandler(svcs.Skill)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Pool and treasury totals are public reads
		api.GET("/treasury", balanceHandler.GetTreasury)
		api.GET("/reward-pool", balanceHandler.GetRewardPool)
		api.POST("/reward-pool/contributions", balanceHandler.ContributeRewardPool)
		api.GET("/skills", skillHandler.ListSkills)
		api.GET("/leaderboard", reputationHandler.Leaderboard)

		wallet := api.Group("", WalletRequired())
		{
			wallet.GET("/balance", balanceHandler.GetBalance)

			wallet.POST("/matches", matchHandler.CreateMatch)
			wallet.GET("/matches", matchHandler.ListMatches)
			wallet.GET("/matches/potential", matchHandler.FindPotential)
			wallet.GET("/matches/:id", matchHandler.GetMatch)
			wallet.POST("/matches/:id/accept", matchHandler.AcceptMatch)
			wallet.POST("/matches/:id/status", matchHandler.UpdateStatus)
			wallet.POST("/matches/:id/stake", matchHandler.Stake)
			wallet.GET("/matches/:id/deposits", matchHandler.ListDeposits)

			wallet.POST("/sessions", sessionHandler.CreateSession)
			wallet.GET("/sessions", sessionHandler.ListSessions)
			wallet.POST("/sessions/:id/satisfaction", sessionHandler.MarkSatisfaction)

			wallet.GET("/leaderboard/rank", reputationHandler.Rank)
			wallet.GET("/reputation", reputationHandler.GetReputation)
			wallet.GET("/badges", reputationHandler.ListBadges)
			wallet.POST("/badges/check", reputationHandler.CheckBadges)

			wallet.POST("/skills/mine", skillHandler.AddTaughtSkill)
			wallet.POST("/skills/wanted", skillHandler.AddWantedSkill)
			wallet.GET("/skills/mine", skillHandler.ListTaughtSkills)
			wallet.GET("/skills/wanted", skillHandler.ListWantedSkills)
		}
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Start begins serving; it blocks until the server stops
func (s *Server) Start() error {
	log.WithField("addr", s.httpServer.Addr).Info("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
