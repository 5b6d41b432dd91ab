// roster/model.go
package roster

import (
	"gorm.io/gorm"
)

// Sub-rosters are the color groups jersey uniqueness is scoped by.
const (
	SubRosterGold  = "gold"
	SubRosterWhite = "white"
	SubRosterBlack = "black"
)

const (
	ActivityActive   = "active"
	ActivityInactive = "inactive"
)

// Jersey numbers are constrained to this closed range. Controllers validate
// the range; the allocator only checks uniqueness.
const (
	MinJerseyNumber = 1
	MaxJerseyNumber = 99
)

// Jersey number request statuses.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Player is the authoritative roster record for one club member. Soft-deleted
// only, since historical competition memberships reference it.
type Player struct {
	gorm.Model
	UserID                       uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	FullName                     string `json:"full_name" gorm:"not null"`
	RosterID                     string `json:"roster_id" gorm:"index;not null"`
	JerseyNumber                 *int   `json:"jersey_number"`
	PrimarySubRoster             string `json:"primary_sub_roster"`
	AllowCrossColorJerseyOverlap bool   `json:"allow_cross_color_jersey_overlap"`
	ActivityStatus               string `json:"activity_status" gorm:"default:'active'"`
	Version                      uint   `json:"-" gorm:"default:1"` // optimistic lock counter
}

// RetiredNumber marks a jersey number that is no longer freely assignable
// within a roster; requests for it require operator review.
type RetiredNumber struct {
	gorm.Model
	RosterID string `json:"roster_id" gorm:"uniqueIndex:idx_retired;not null"`
	Number   int    `json:"number" gorm:"uniqueIndex:idx_retired;not null"`
	Reason   string `json:"reason"`
}

// JerseyNumberRequest is a self-service number change awaiting review.
// Requests are never deleted; rejected and approved rows remain for audit.
type JerseyNumberRequest struct {
	gorm.Model
	PublicID              string `json:"public_id" gorm:"uniqueIndex;not null"`
	UserID                uint   `json:"user_id" gorm:"index;not null"`
	RosterID              string `json:"roster_id" gorm:"not null"`
	PrimarySubRoster      string `json:"primary_sub_roster"`
	CurrentJerseyNumber   *int   `json:"current_jersey_number"`
	RequestedJerseyNumber int    `json:"requested_jersey_number" gorm:"not null"`
	RequiresApproval      bool   `json:"requires_approval"`
	ApprovalReason        string `json:"approval_reason"`
	// ConflictUserID is the active holder whose number this request would
	// override, recorded at filing. Approval authorizes only this conflict.
	ConflictUserID *uint `json:"conflict_user_id,omitempty"`
	Status                string `json:"status" gorm:"default:'pending';index"`
	ReviewedByUserID      *uint  `json:"reviewed_by_user_id"`
	ReviewNotes           string `json:"review_notes"`
}
