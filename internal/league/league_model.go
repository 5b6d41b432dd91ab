// league/model.go
package league

import (
	"time"

	"gorm.io/gorm"
)

// Team order strategies.
const (
	OrderManual = "manual"
	OrderRandom = "random"
)

// Player pool assembly strategies.
const (
	PoolAllSignups  = "all_signups"
	PoolAllEligible = "all_eligible"
	PoolOpsSelected = "ops_selected"
)

// Draft modes.
const (
	DraftModeManual = "manual"
	DraftModeSnake  = "snake"
)

// SeasonPlan is the per-league configuration, keyed 1:1 by competition.
type SeasonPlan struct {
	gorm.Model
	CompetitionID         uint       `json:"competition_id" gorm:"uniqueIndex;not null"`
	SignupClosesAt        *time.Time `json:"signup_closes_at"`
	CaptainSignupClosesAt *time.Time `json:"captain_signup_closes_at"`
	DesiredCaptainCount   int        `json:"desired_captain_count"`
	Rounds                int        `json:"rounds" gorm:"default:1"`
	TeamOrderStrategy     string     `json:"team_order_strategy" gorm:"default:'manual'"`
	PlayerPoolStrategy    string     `json:"player_pool_strategy" gorm:"default:'all_signups'"`
	DraftMode             string     `json:"draft_mode" gorm:"default:'manual'"`
	UpdatedByUserID       uint       `json:"updated_by_user_id"`
}

// SignupIntent records a player's interest in a league, unique per
// (competition, user).
type SignupIntent struct {
	gorm.Model
	CompetitionID uint   `json:"competition_id" gorm:"uniqueIndex:idx_signup;not null"`
	UserID        uint   `json:"user_id" gorm:"uniqueIndex:idx_signup;not null"`
	WantsCaptain  bool   `json:"wants_captain"`
	Note          string `json:"note"`
}

// NormalizeTeamOrderStrategy coerces unknown values to manual. Silent
// fallback instead of a validation error keeps old clients working.
func NormalizeTeamOrderStrategy(s string) string {
	switch s {
	case OrderManual, OrderRandom:
		return s
	}
	return OrderManual
}

// NormalizePlayerPoolStrategy coerces unknown values to all_signups.
func NormalizePlayerPoolStrategy(s string) string {
	switch s {
	case PoolAllSignups, PoolAllEligible, PoolOpsSelected:
		return s
	}
	return PoolAllSignups
}

// NormalizeDraftMode coerces unknown values to manual.
func NormalizeDraftMode(s string) string {
	switch s {
	case DraftModeManual, DraftModeSnake:
		return s
	}
	return DraftModeManual
}
