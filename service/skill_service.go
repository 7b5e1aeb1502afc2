package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"scrypto/models"
)

type skillService struct {
	uowFactory UnitOfWorkFactory
}

// NewSkillService creates a new skill service
func NewSkillService(uowFactory UnitOfWorkFactory) SkillService {
	return &skillService{
		uowFactory: uowFactory,
	}
}

func (s *skillService) ListSkills(ctx context.Context) ([]*models.Skill, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	skills, err := uow.SkillRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	return skills, nil
}

func (s *skillService) AddUserSkill(ctx context.Context, wallet string, skillID uuid.UUID) error {
	return s.addSkill(ctx, wallet, skillID, false)
}

func (s *skillService) AddWantedSkill(ctx context.Context, wallet string, skillID uuid.UUID) error {
	return s.addSkill(ctx, wallet, skillID, true)
}

func (s *skillService) addSkill(ctx context.Context, wallet string, skillID uuid.UUID, wanted bool) error {
	wallet = strings.ToLower(wallet)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	skill, err := uow.SkillRepository().GetByID(ctx, skillID)
	if err != nil {
		return fmt.Errorf("failed to get skill: %w", err)
	}
	if skill == nil {
		return fmt.Errorf("skill %s: %w", skillID, ErrNotFound)
	}

	if wanted {
		err = uow.SkillRepository().AddWantedSkill(ctx, wallet, skillID)
	} else {
		err = uow.SkillRepository().AddUserSkill(ctx, wallet, skillID)
	}
	if err != nil {
		return fmt.Errorf("failed to add skill: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *skillService) GetUserSkills(ctx context.Context, wallet string) ([]*models.UserSkill, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	skills, err := uow.SkillRepository().GetUserSkills(ctx, strings.ToLower(wallet))
	if err != nil {
		return nil, fmt.Errorf("failed to get user skills: %w", err)
	}

	return skills, nil
}

func (s *skillService) GetWantedSkills(ctx context.Context, wallet string) ([]*models.WantedSkill, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	skills, err := uow.SkillRepository().GetWantedSkills(ctx, strings.ToLower(wallet))
	if err != nil {
		return nil, fmt.Errorf("failed to get wanted skills: %w", err)
	}

	return skills, nil
}
