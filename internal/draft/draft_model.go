// draft/model.go
package draft

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Draft session statuses. Closing is terminal for a session row; relaunching
// a league creates a fresh row with a new generation.
const (
	SessionOpen   = "open"
	SessionClosed = "closed"
)

// UintSlice is a JSONB column holding an ordered list of IDs.
type UintSlice []uint

func (s UintSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan unmarshals a JSONB column into the slice.
func (s *UintSlice) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("UintSlice: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, s)
}

// Contains reports whether id is present.
func (s UintSlice) Contains(id uint) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// CaptainControl holds the single captain and the substitute bench for one
// team. Captaincy grants pick authority; the sub-pool is independent of the
// draft.
type CaptainControl struct {
	gorm.Model
	TeamID          uint      `json:"team_id" gorm:"uniqueIndex;not null"`
	CaptainUserID   *uint     `json:"captain_user_id"`
	SubPoolUserIDs  UintSlice `json:"sub_pool_user_ids" gorm:"type:jsonb;default:'[]'"`
	UpdatedByUserID uint      `json:"updated_by_user_id"`
}

// DraftSession coordinates pick order and the undrafted pool for one league.
// The pool is a static snapshot for the session's lifetime; picks are checked
// against the pick log, never by mutating the pool.
type DraftSession struct {
	gorm.Model
	CompetitionID    uint      `json:"competition_id" gorm:"index;not null"`
	Generation       string    `json:"generation" gorm:"uniqueIndex;not null"`
	PickOrderTeamIDs UintSlice `json:"pick_order_team_ids" gorm:"type:jsonb;default:'[]'"`
	PoolUserIDs      UintSlice `json:"pool_user_ids" gorm:"type:jsonb;default:'[]'"`
	DraftMode        string    `json:"draft_mode"`
	Rounds           int       `json:"rounds"`
	Status           string    `json:"status" gorm:"default:'open';index"`
	CreatedByUserID  uint      `json:"created_by_user_id"`
	Version          uint      `json:"-" gorm:"default:1"` // optimistic lock counter
}

// DraftPick is one row of the append-only pick log. A user is picked at most
// once per session generation, across all teams.
type DraftPick struct {
	gorm.Model
	CompetitionID uint      `json:"competition_id" gorm:"uniqueIndex:idx_pick;not null"`
	Generation    string    `json:"generation" gorm:"uniqueIndex:idx_pick;not null"`
	UserID        uint      `json:"user_id" gorm:"uniqueIndex:idx_pick;not null"`
	TeamID        uint      `json:"team_id" gorm:"index;not null"`
	PickedAt      time.Time `json:"picked_at"`
	ActorUserID   uint      `json:"actor_user_id"`
}
