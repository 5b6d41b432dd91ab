// competition/model.go
package competition

import (
	"time"

	"gorm.io/gorm"
)

// Competition types. The type is fixed at creation; only DVHL competitions
// carry a season plan and a draft.
const (
	TypeSingleGame = "single_game"
	TypeTournament = "tournament"
	TypeDVHL       = "dvhl"
)

// Competition is a single game, a tournament, or a DVHL league.
type Competition struct {
	gorm.Model
	Type     string    `json:"type" gorm:"not null;index"`
	Title    string    `json:"title" gorm:"not null"`
	StartsAt time.Time `json:"starts_at"`
	Teams    []Team    `json:"teams,omitempty"`
}

// Team belongs to exactly one competition.
type Team struct {
	gorm.Model
	CompetitionID uint             `json:"competition_id" gorm:"index;not null"`
	Name          string           `json:"name" gorm:"not null"`
	ColorTag      string           `json:"color_tag"`
	RosterMode    string           `json:"roster_mode"`
	Members       []TeamMembership `json:"members,omitempty"`
}

// TeamMembership links a user to a team. Created by direct assignment or by a
// draft pick; unique per (team, user).
type TeamMembership struct {
	gorm.Model
	TeamID uint `json:"team_id" gorm:"uniqueIndex:idx_team_member;not null"`
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_team_member;not null"`
}

// IsValidType reports whether t is one of the known competition types.
func IsValidType(t string) bool {
	switch t {
	case TypeSingleGame, TypeTournament, TypeDVHL:
		return true
	}
	return false
}
