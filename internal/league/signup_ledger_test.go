package league

import (
	"errors"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func planWith(repo *mockLeagueRepo, competitionID uint, signupCloses, captainCloses *time.Time) {
	repo.plans[competitionID] = &SeasonPlan{
		CompetitionID:         competitionID,
		SignupClosesAt:        signupCloses,
		CaptainSignupClosesAt: captainCloses,
		Rounds:                3,
	}
}

func TestUpsertIntentRecordsSignup(t *testing.T) {
	repo := newMockLeagueRepo()
	ledger := NewLedger(repo)

	intent, err := ledger.UpsertIntent(1, 10, true, "can only play Sundays", false)
	if err != nil {
		t.Fatalf("UpsertIntent: %v", err)
	}
	if !intent.WantsCaptain || intent.Note != "can only play Sundays" {
		t.Errorf("intent not recorded as submitted: %+v", intent)
	}

	ids, _ := repo.ListSignupUserIDs(1)
	if len(ids) != 1 || ids[0] != 10 {
		t.Errorf("expected user 10 in signup list, got %v", ids)
	}
}

func TestUpsertIntentRejectsAfterWindowCloses(t *testing.T) {
	repo := newMockLeagueRepo()
	closes := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)
	planWith(repo, 1, &closes, nil)

	ledger := NewLedger(repo)
	ledger.now = fixedClock(closes.Add(time.Hour))

	_, err := ledger.UpsertIntent(1, 10, false, "", false)
	if !errors.Is(err, ErrSignupWindowClosed) {
		t.Fatalf("expected ErrSignupWindowClosed, got %v", err)
	}
	if intents, _ := repo.ListIntents(1); len(intents) != 0 {
		t.Errorf("late signup must not be stored, got %d rows", len(intents))
	}
}

func TestUpsertIntentBypassSkipsWindow(t *testing.T) {
	repo := newMockLeagueRepo()
	closes := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)
	planWith(repo, 1, &closes, nil)

	ledger := NewLedger(repo)
	ledger.now = fixedClock(closes.Add(time.Hour))

	intent, err := ledger.UpsertIntent(1, 10, true, "added by ops", true)
	if err != nil {
		t.Fatalf("UpsertIntent with bypass: %v", err)
	}
	if !intent.WantsCaptain {
		t.Errorf("bypass before the captain deadline must keep wantsCaptain")
	}
}

func TestUpsertIntentFreezesCaptainFlagAfterDeadline(t *testing.T) {
	repo := newMockLeagueRepo()
	captainCloses := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	planWith(repo, 1, nil, &captainCloses)

	ledger := NewLedger(repo)
	ledger.now = fixedClock(captainCloses.Add(-time.Hour))
	if _, err := ledger.UpsertIntent(1, 10, true, "early signup", false); err != nil {
		t.Fatalf("signup before deadline: %v", err)
	}

	// After the captain deadline the flag keeps its stored value while the
	// note stays editable.
	ledger.now = fixedClock(captainCloses.Add(time.Hour))
	intent, err := ledger.UpsertIntent(1, 10, false, "changed my availability", false)
	if err != nil {
		t.Fatalf("late update: %v", err)
	}
	if !intent.WantsCaptain {
		t.Errorf("captain flag must stay true after the deadline")
	}
	if intent.Note != "changed my availability" {
		t.Errorf("note must still update, got %q", intent.Note)
	}

	// The freeze also blocks turning the flag on late.
	if _, err := ledger.UpsertIntent(1, 11, false, "", false); err != nil {
		t.Fatalf("signup: %v", err)
	}
	// user 11 never asked before the deadline; asking now is ignored
	intent, err = ledger.UpsertIntent(1, 11, true, "", false)
	if err != nil {
		t.Fatalf("late update: %v", err)
	}
	if intent.WantsCaptain {
		t.Errorf("captain flag must stay false when it was false at the deadline")
	}
}

func TestUpsertIntentNewSignupAfterCaptainDeadlineForcesFalse(t *testing.T) {
	repo := newMockLeagueRepo()
	captainCloses := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	planWith(repo, 1, nil, &captainCloses)

	ledger := NewLedger(repo)
	ledger.now = fixedClock(captainCloses.Add(time.Hour))

	intent, err := ledger.UpsertIntent(1, 20, true, "", false)
	if err != nil {
		t.Fatalf("UpsertIntent: %v", err)
	}
	if intent.WantsCaptain {
		t.Errorf("first signup after the captain deadline must not register captain interest")
	}
}

func TestUpsertIntentUpdatesExistingRow(t *testing.T) {
	repo := newMockLeagueRepo()
	ledger := NewLedger(repo)

	first, err := ledger.UpsertIntent(1, 10, false, "first note", false)
	if err != nil {
		t.Fatalf("first signup: %v", err)
	}
	second, err := ledger.UpsertIntent(1, 10, true, "second note", false)
	if err != nil {
		t.Fatalf("second signup: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected the same row to be updated, got ids %d and %d", first.ID, second.ID)
	}
	if intents, _ := repo.ListIntents(1); len(intents) != 1 {
		t.Errorf("expected one stored intent, got %d", len(intents))
	}
}

func TestCaptainVolunteersFiltersAndKeepsOrder(t *testing.T) {
	repo := newMockLeagueRepo()
	ledger := NewLedger(repo)

	for _, s := range []struct {
		userID       uint
		wantsCaptain bool
	}{
		{10, true}, {11, false}, {12, true}, {13, false}, {14, true},
	} {
		if _, err := ledger.UpsertIntent(1, s.userID, s.wantsCaptain, "", false); err != nil {
			t.Fatalf("signup %d: %v", s.userID, err)
		}
	}

	volunteers, err := ledger.CaptainVolunteers(1)
	if err != nil {
		t.Fatalf("CaptainVolunteers: %v", err)
	}
	want := []uint{10, 12, 14}
	if len(volunteers) != len(want) {
		t.Fatalf("expected %d volunteers, got %d", len(want), len(volunteers))
	}
	for i, v := range volunteers {
		if v.UserID != want[i] {
			t.Errorf("volunteer %d: expected user %d, got %d", i, want[i], v.UserID)
		}
	}
}
