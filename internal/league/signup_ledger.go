package league

import (
	"errors"
	"time"

	"github.com/jverbeek/hockeyclub/internal/metrics"
)

// ErrSignupWindowClosed is returned when a signup arrives after the plan's
// deadline. Admin exemption is decided at the call site, not here.
var ErrSignupWindowClosed = errors.New("signup window has closed")

// Ledger records player interest in a league. The captain-interest flag locks
// at the captain deadline while the general note stays open: captain interest
// locks first, plain interest stays editable.
type Ledger struct {
	repo LeagueRepository
	now  func() time.Time
}

// NewLedger creates a Ledger. The clock is injectable for tests.
func NewLedger(repo LeagueRepository) *Ledger {
	return &Ledger{repo: repo, now: time.Now}
}

// UpsertIntent records or updates a signup. bypassWindow skips the general
// signup deadline (admins submitting on a player's behalf); the captain
// freeze still applies.
func (l *Ledger) UpsertIntent(competitionID, userID uint, wantsCaptain bool, note string, bypassWindow bool) (*SignupIntent, error) {
	plan, err := l.repo.GetPlan(competitionID)
	if err != nil {
		return nil, err
	}

	now := l.now()
	if !bypassWindow && plan != nil && plan.SignupClosesAt != nil && now.After(*plan.SignupClosesAt) {
		return nil, ErrSignupWindowClosed
	}

	existing, err := l.repo.GetIntent(competitionID, userID)
	if err != nil {
		return nil, err
	}

	captainLocked := plan != nil && plan.CaptainSignupClosesAt != nil && now.After(*plan.CaptainSignupClosesAt)
	if captainLocked {
		if existing != nil {
			wantsCaptain = existing.WantsCaptain
		} else {
			// No recorded interest before the captain deadline counts as no.
			wantsCaptain = false
		}
	}

	intent := existing
	if intent == nil {
		intent = &SignupIntent{CompetitionID: competitionID, UserID: userID}
	}
	intent.WantsCaptain = wantsCaptain
	intent.Note = note
	if err := l.repo.SaveIntent(intent); err != nil {
		return nil, err
	}
	if existing == nil {
		metrics.SignupsRecorded.Inc()
	}
	return intent, nil
}

// CaptainVolunteers returns the signups that registered captain interest, in
// signup order. The operator uses this against the plan's desired captain
// count.
func (l *Ledger) CaptainVolunteers(competitionID uint) ([]SignupIntent, error) {
	intents, err := l.repo.ListIntents(competitionID)
	if err != nil {
		return nil, err
	}
	volunteers := intents[:0:0]
	for _, it := range intents {
		if it.WantsCaptain {
			volunteers = append(volunteers, it)
		}
	}
	return volunteers, nil
}
