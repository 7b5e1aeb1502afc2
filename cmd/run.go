package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"scrypto/api"
	"scrypto/config"
	"scrypto/database"
	"scrypto/events"
	"scrypto/repository"
	"scrypto/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	log.Info("Starting skill exchange service...")

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus := events.NewBus()
	registerEventLoggers(eventBus)

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	escrowService := service.NewEscrowService(uowFactory, cfg.StartingBalance)
	sessionService := service.NewSessionService(uowFactory)
	matchService := service.NewMatchService(uowFactory)
	skillService := service.NewSkillService(uowFactory)
	reputationService := service.NewReputationService(uowFactory)
	badgeService := service.NewBadgeService(uowFactory)
	rewardPoolService := service.NewRewardPoolService(uowFactory)

	server := api.NewServer(cfg.ListenAddr, cfg.Environment, api.Services{
		Escrow:     escrowService,
		Session:    sessionService,
		Match:      matchService,
		Skill:      skillService,
		Reputation: reputationService,
		Badge:      badgeService,
		RewardPool: rewardPoolService,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	log.WithField("environment", cfg.Environment).Info("Service is running")

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down HTTP server")
	}

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}
