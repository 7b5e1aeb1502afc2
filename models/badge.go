package models

import (
	"time"

	"github.com/google/uuid"
)

// BadgeType identifies an achievement badge
type BadgeType string

const (
	BadgeRisingStar         BadgeType = "rising_star"
	BadgeTrustedTeacher     BadgeType = "trusted_teacher"
	BadgeSatisfactionMentor BadgeType = "satisfaction_mentor"
	BadgeTopProvider        BadgeType = "top_provider"
	BadgeStreakMaster       BadgeType = "streak_master"
)

// BadgeInfo holds the display metadata for a badge type
type BadgeInfo struct {
	Name        string
	Description string
}

// BadgeCatalog maps badge types to their display metadata
var BadgeCatalog = map[BadgeType]BadgeInfo{
	BadgeRisingStar: {
		Name:        "Rising Star",
		Description: "Completed first successful session",
	},
	BadgeTrustedTeacher: {
		Name:        "Trusted Teacher",
		Description: "Completed 10+ successful sessions",
	},
	BadgeSatisfactionMentor: {
		Name:        "100% Satisfaction Mentor",
		Description: "Achieved 100% satisfaction rate across 5+ sessions",
	},
	BadgeTopProvider: {
		Name:        "Top Skill Provider",
		Description: "Ranked in the top 10 on the leaderboard",
	},
	BadgeStreakMaster: {
		Name:        "Streak Master",
		Description: "Maintained 5+ session satisfaction streak",
	},
}

// UserBadge is an awarded achievement, immutable once created.
// At most one badge per (wallet, badge_type) pair.
type UserBadge struct {
	ID            uuid.UUID `db:"id"`
	WalletAddress string    `db:"wallet_address"`
	BadgeType     BadgeType `db:"badge_type"`
	BadgeName     string    `db:"badge_name"`
	Description   *string   `db:"description"`
	EarnedAt      time.Time `db:"earned_at"`
}

// QualifyingBadges computes the badge types a wallet currently earns from
// its reputation snapshot and leaderboard position. BadgeStreakMaster has
// no awarding rule yet and is never returned.
func QualifyingBadges(rep *UserReputation, topTen bool) []BadgeType {
	if rep == nil {
		return nil
	}

	var earned []BadgeType
	if rep.SuccessfulSessions >= 1 {
		earned = append(earned, BadgeRisingStar)
	}
	if rep.SuccessfulSessions >= 10 {
		earned = append(earned, BadgeTrustedTeacher)
	}
	if rep.TotalSessions >= 5 && rep.SuccessfulSessions == rep.TotalSessions {
		earned = append(earned, BadgeSatisfactionMentor)
	}
	if topTen {
		earned = append(earned, BadgeTopProvider)
	}
	return earned
}
