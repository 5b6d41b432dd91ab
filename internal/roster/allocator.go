package roster

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/jverbeek/hockeyclub/internal/metrics"
)

// ErrPlayerNotFound is returned when the target player does not exist at call
// time.
var ErrPlayerNotFound = errors.New("player not found")

// Allocator enforces jersey-number uniqueness while mutating the
// authoritative player record. Number range validation is the caller's job.
type Allocator struct {
	players PlayerRepository
	log     *logrus.Logger
}

// NewAllocator creates an Allocator backed by the given player repository.
func NewAllocator(players PlayerRepository, log *logrus.Logger) *Allocator {
	return &Allocator{players: players, log: log}
}

// AssignInput carries the fields an assignment writes. PrimarySubRoster and
// the cross-color overlap flag are read from the stored player, not supplied
// by the caller.
type AssignInput struct {
	UserID         uint
	FullName       string
	RosterID       string
	JerseyNumber   *int
	ActivityStatus string
	// ForceOverride accepts any collision; operator use only.
	ForceOverride bool
	// OverrideConflictUserID accepts a collision with this one holder and no
	// other. An approved jersey number request authorizes exactly the conflict
	// that was on file when the request was created.
	OverrideConflictUserID *uint
}

// NumberConflict describes the player blocking an assignment.
type NumberConflict struct {
	Name         string `json:"name"`
	UserID       uint   `json:"user_id"`
	JerseyNumber int    `json:"jersey_number"`
	SubRoster    string `json:"sub_roster"`
}

// AssignResult is the outcome of an assignment attempt. When OK is false,
// Conflict names the blocking player and nothing was persisted.
type AssignResult struct {
	OK       bool            `json:"ok"`
	Conflict *NumberConflict `json:"conflict,omitempty"`
}

// Assign validates the requested number against every other active player on
// the roster and persists the update when it is free. A collision is allowed
// when the caller forces the override, or when both players opted into
// cross-color overlap and wear different sub-rosters. Same-sub-roster
// collisions are never permitted without an override.
func (a *Allocator) Assign(in AssignInput) (AssignResult, error) {
	target, err := a.players.GetPlayerByUserID(in.UserID)
	if err != nil {
		return AssignResult{}, err
	}
	if target == nil {
		return AssignResult{}, ErrPlayerNotFound
	}

	if in.JerseyNumber != nil {
		others, err := a.players.ListActivePlayersByRoster(in.RosterID)
		if err != nil {
			return AssignResult{}, err
		}
		for i := range others {
			other := &others[i]
			if other.UserID == in.UserID {
				continue
			}
			if other.JerseyNumber == nil || *other.JerseyNumber != *in.JerseyNumber {
				continue
			}
			if in.ForceOverride {
				continue
			}
			if in.OverrideConflictUserID != nil && other.UserID == *in.OverrideConflictUserID {
				continue
			}
			if target.AllowCrossColorJerseyOverlap && other.AllowCrossColorJerseyOverlap &&
				other.PrimarySubRoster != target.PrimarySubRoster {
				continue
			}
			metrics.JerseyConflicts.Inc()
			a.log.WithFields(logrus.Fields{
				"user_id":       in.UserID,
				"roster_id":     in.RosterID,
				"jersey_number": *in.JerseyNumber,
				"held_by":       other.UserID,
			}).Info("jersey number conflict")
			return AssignResult{
				OK: false,
				Conflict: &NumberConflict{
					Name:         other.FullName,
					UserID:       other.UserID,
					JerseyNumber: *other.JerseyNumber,
					SubRoster:    other.PrimarySubRoster,
				},
			}, nil
		}
	}

	target.FullName = in.FullName
	target.RosterID = in.RosterID
	target.JerseyNumber = in.JerseyNumber
	target.ActivityStatus = in.ActivityStatus
	if err := a.players.SavePlayer(target); err != nil {
		return AssignResult{}, err
	}
	return AssignResult{OK: true}, nil
}
