package roster

import (
	"errors"
	"testing"
)

func setupAllocator() (*Allocator, *mockPlayerRepo) {
	repo := newMockPlayerRepo()
	return NewAllocator(repo, testLogger()), repo
}

func TestAllocator_Assign_FreeNumber(t *testing.T) {
	alloc, repo := setupAllocator()
	repo.add(Player{UserID: 1, FullName: "Player A", RosterID: "main", PrimarySubRoster: SubRosterGold, ActivityStatus: ActivityActive})

	result, err := alloc.Assign(AssignInput{
		UserID: 1, FullName: "Player A", RosterID: "main",
		JerseyNumber: intPtr(12), ActivityStatus: ActivityActive,
	})
	if err != nil {
		t.Fatalf("Assign should succeed: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected OK, got conflict %+v", result.Conflict)
	}

	saved, _ := repo.GetPlayerByUserID(1)
	if saved.JerseyNumber == nil || *saved.JerseyNumber != 12 {
		t.Errorf("expected jersey number 12 persisted, got %v", saved.JerseyNumber)
	}
}

func TestAllocator_Assign_SameSubRosterConflict(t *testing.T) {
	alloc, repo := setupAllocator()
	repo.add(Player{UserID: 1, FullName: "Player A", RosterID: "main", JerseyNumber: intPtr(12), PrimarySubRoster: SubRosterGold, ActivityStatus: ActivityActive})
	repo.add(Player{UserID: 2, FullName: "Player B", RosterID: "main", PrimarySubRoster: SubRosterGold, ActivityStatus: ActivityActive})

	result, err := alloc.Assign(AssignInput{
		UserID: 2, FullName: "Player B", RosterID: "main",
		JerseyNumber: intPtr(12), ActivityStatus: ActivityActive,
	})
	if err != nil {
		t.Fatalf("Assign should not error on conflict: %v", err)
	}
	if result.OK {
		t.Fatal("expected conflict, got OK")
	}
	if result.Conflict == nil || result.Conflict.Name != "Player A" {
		t.Errorf("conflict should name Player A, got %+v", result.Conflict)
	}

	// Nothing persisted.
	saved, _ := repo.GetPlayerByUserID(2)
	if saved.JerseyNumber != nil {
		t.Errorf("roster should be unchanged, player B has number %d", *saved.JerseyNumber)
	}
}

func TestAllocator_Assign_SameSubRosterConflictEvenWithOverlapFlags(t *testing.T) {
	alloc, repo := setupAllocator()
	repo.add(Player{UserID: 1, FullName: "Player A", RosterID: "main", JerseyNumber: intPtr(9), PrimarySubRoster: SubRosterGold, AllowCrossColorJerseyOverlap: true, ActivityStatus: ActivityActive})
	repo.add(Player{UserID: 2, FullName: "Player B", RosterID: "main", PrimarySubRoster: SubRosterGold, AllowCrossColorJerseyOverlap: true, ActivityStatus: ActivityActive})

	result, err := alloc.Assign(AssignInput{
		UserID: 2, FullName: "Player B", RosterID: "main",
		JerseyNumber: intPtr(9), ActivityStatus: ActivityActive,
	})
	if err != nil {
		t.Fatalf("Assign should not error: %v", err)
	}
	if result.OK {
		t.Fatal("same sub-roster collision must conflict even when both opted into overlap")
	}
}

func TestAllocator_Assign_CrossColorBothOptedIn(t *testing.T) {
	alloc, repo := setupAllocator()
	repo.add(Player{UserID: 1, FullName: "Player A", RosterID: "main", JerseyNumber: intPtr(7), PrimarySubRoster: SubRosterGold, AllowCrossColorJerseyOverlap: true, ActivityStatus: ActivityActive})
	repo.add(Player{UserID: 2, FullName: "Player B", RosterID: "main", PrimarySubRoster: SubRosterWhite, AllowCrossColorJerseyOverlap: true, ActivityStatus: ActivityActive})

	result, err := alloc.Assign(AssignInput{
		UserID: 2, FullName: "Player B", RosterID: "main",
		JerseyNumber: intPtr(7), ActivityStatus: ActivityActive,
	})
	if err != nil {
		t.Fatalf("Assign should succeed: %v", err)
	}
	if !result.OK {
		t.Fatalf("cross-color overlap with both opted in should succeed, got %+v", result.Conflict)
	}
}

func TestAllocator_Assign_CrossColorOneSideNotOptedIn(t *testing.T) {
	for _, tc := range []struct {
		name        string
		holderOptIn bool
		targetOptIn bool
	}{
		{"holder not opted in", false, true},
		{"target not opted in", true, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			alloc, repo := setupAllocator()
			repo.add(Player{UserID: 1, FullName: "Player A", RosterID: "main", JerseyNumber: intPtr(7), PrimarySubRoster: SubRosterGold, AllowCrossColorJerseyOverlap: tc.holderOptIn, ActivityStatus: ActivityActive})
			repo.add(Player{UserID: 2, FullName: "Player B", RosterID: "main", PrimarySubRoster: SubRosterWhite, AllowCrossColorJerseyOverlap: tc.targetOptIn, ActivityStatus: ActivityActive})

			result, err := alloc.Assign(AssignInput{
				UserID: 2, FullName: "Player B", RosterID: "main",
				JerseyNumber: intPtr(7), ActivityStatus: ActivityActive,
			})
			if err != nil {
				t.Fatalf("Assign should not error: %v", err)
			}
			if result.OK {
				t.Fatal("expected conflict when either side has not opted in")
			}
			if result.Conflict.Name != "Player A" {
				t.Errorf("conflict should name the holder, got %q", result.Conflict.Name)
			}
		})
	}
}

func TestAllocator_Assign_ForceOverride(t *testing.T) {
	alloc, repo := setupAllocator()
	repo.add(Player{UserID: 1, FullName: "Player A", RosterID: "main", JerseyNumber: intPtr(12), PrimarySubRoster: SubRosterGold, ActivityStatus: ActivityActive})
	repo.add(Player{UserID: 2, FullName: "Player B", RosterID: "main", PrimarySubRoster: SubRosterGold, ActivityStatus: ActivityActive})

	result, err := alloc.Assign(AssignInput{
		UserID: 2, FullName: "Player B", RosterID: "main",
		JerseyNumber: intPtr(12), ActivityStatus: ActivityActive,
		ForceOverride: true,
	})
	if err != nil {
		t.Fatalf("Assign should succeed: %v", err)
	}
	if !result.OK {
		t.Fatal("force override must accept the collision")
	}
}

func TestAllocator_Assign_OverrideConflictUserID(t *testing.T) {
	alloc, repo := setupAllocator()
	repo.add(Player{UserID: 1, FullName: "Player A", RosterID: "main", JerseyNumber: intPtr(12), PrimarySubRoster: SubRosterGold, ActivityStatus: ActivityActive})
	repo.add(Player{UserID: 2, FullName: "Player B", RosterID: "main", PrimarySubRoster: SubRosterWhite, ActivityStatus: ActivityActive})

	holder := uint(1)
	result, err := alloc.Assign(AssignInput{
		UserID: 2, FullName: "Player B", RosterID: "main",
		JerseyNumber: intPtr(12), ActivityStatus: ActivityActive,
		OverrideConflictUserID: &holder,
	})
	if err != nil {
		t.Fatalf("Assign should succeed: %v", err)
	}
	if !result.OK {
		t.Fatal("the named holder's collision must be accepted")
	}

	// The override names one holder only; anyone else still blocks.
	repo.add(Player{UserID: 3, FullName: "Player C", RosterID: "main", PrimarySubRoster: SubRosterBlack, ActivityStatus: ActivityActive})
	notTheHolder := uint(1)
	result, err = alloc.Assign(AssignInput{
		UserID: 3, FullName: "Player C", RosterID: "main",
		JerseyNumber: intPtr(12), ActivityStatus: ActivityActive,
		OverrideConflictUserID: &notTheHolder,
	})
	if err != nil {
		t.Fatalf("Assign should not error: %v", err)
	}
	if result.OK {
		t.Fatal("a collision with an unnamed holder must still conflict")
	}
}

func TestAllocator_Assign_Idempotent(t *testing.T) {
	alloc, repo := setupAllocator()
	repo.add(Player{UserID: 1, FullName: "Player A", RosterID: "main", PrimarySubRoster: SubRosterGold, ActivityStatus: ActivityActive})

	in := AssignInput{
		UserID: 1, FullName: "Player A", RosterID: "main",
		JerseyNumber: intPtr(21), ActivityStatus: ActivityActive,
	}
	for i := 0; i < 2; i++ {
		result, err := alloc.Assign(in)
		if err != nil || !result.OK {
			t.Fatalf("call %d: expected OK, got result=%+v err=%v", i+1, result, err)
		}
	}

	saved, _ := repo.GetPlayerByUserID(1)
	if saved.JerseyNumber == nil || *saved.JerseyNumber != 21 {
		t.Errorf("expected number 21 after repeated assign, got %v", saved.JerseyNumber)
	}
	if saved.FullName != "Player A" || saved.RosterID != "main" || saved.ActivityStatus != ActivityActive {
		t.Errorf("observable state changed across identical assigns: %+v", saved)
	}
}

func TestAllocator_Assign_InactiveHolderIgnored(t *testing.T) {
	alloc, repo := setupAllocator()
	repo.add(Player{UserID: 1, FullName: "Player A", RosterID: "main", JerseyNumber: intPtr(12), PrimarySubRoster: SubRosterGold, ActivityStatus: ActivityInactive})
	repo.add(Player{UserID: 2, FullName: "Player B", RosterID: "main", PrimarySubRoster: SubRosterGold, ActivityStatus: ActivityActive})

	result, err := alloc.Assign(AssignInput{
		UserID: 2, FullName: "Player B", RosterID: "main",
		JerseyNumber: intPtr(12), ActivityStatus: ActivityActive,
	})
	if err != nil {
		t.Fatalf("Assign should succeed: %v", err)
	}
	if !result.OK {
		t.Fatal("numbers held by inactive players do not block the allocator")
	}
}

func TestAllocator_Assign_UnknownPlayer(t *testing.T) {
	alloc, _ := setupAllocator()
	_, err := alloc.Assign(AssignInput{UserID: 99, FullName: "Ghost", RosterID: "main", ActivityStatus: ActivityActive})
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestAllocator_Assign_ClearNumber(t *testing.T) {
	alloc, repo := setupAllocator()
	repo.add(Player{UserID: 1, FullName: "Player A", RosterID: "main", JerseyNumber: intPtr(12), PrimarySubRoster: SubRosterGold, ActivityStatus: ActivityActive})

	result, err := alloc.Assign(AssignInput{
		UserID: 1, FullName: "Player A", RosterID: "main",
		JerseyNumber: nil, ActivityStatus: ActivityActive,
	})
	if err != nil || !result.OK {
		t.Fatalf("clearing a number should succeed: result=%+v err=%v", result, err)
	}
	saved, _ := repo.GetPlayerByUserID(1)
	if saved.JerseyNumber != nil {
		t.Errorf("expected cleared number, got %d", *saved.JerseyNumber)
	}
}
