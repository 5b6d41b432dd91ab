package league

import (
	"io"

	"github.com/sirupsen/logrus"
)

// mockLeagueRepo is an in-memory LeagueRepository for tests.
type mockLeagueRepo struct {
	plans   map[uint]*SeasonPlan
	intents []*SignupIntent
	nextID  uint
	saveErr error
}

func newMockLeagueRepo() *mockLeagueRepo {
	return &mockLeagueRepo{plans: make(map[uint]*SeasonPlan), nextID: 1}
}

func (m *mockLeagueRepo) GetPlan(competitionID uint) (*SeasonPlan, error) {
	p, ok := m.plans[competitionID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockLeagueRepo) SavePlan(plan *SeasonPlan) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if plan.ID == 0 {
		plan.ID = m.nextID
		m.nextID++
	}
	cp := *plan
	m.plans[plan.CompetitionID] = &cp
	return nil
}

func (m *mockLeagueRepo) GetIntent(competitionID, userID uint) (*SignupIntent, error) {
	for _, it := range m.intents {
		if it.CompetitionID == competitionID && it.UserID == userID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockLeagueRepo) SaveIntent(intent *SignupIntent) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	for i, it := range m.intents {
		if it.CompetitionID == intent.CompetitionID && it.UserID == intent.UserID {
			intent.ID = it.ID
			cp := *intent
			m.intents[i] = &cp
			return nil
		}
	}
	intent.ID = m.nextID
	m.nextID++
	cp := *intent
	m.intents = append(m.intents, &cp)
	return nil
}

func (m *mockLeagueRepo) ListIntents(competitionID uint) ([]SignupIntent, error) {
	var out []SignupIntent
	for _, it := range m.intents {
		if it.CompetitionID == competitionID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *mockLeagueRepo) ListSignupUserIDs(competitionID uint) ([]uint, error) {
	var out []uint
	for _, it := range m.intents {
		if it.CompetitionID == competitionID {
			out = append(out, it.UserID)
		}
	}
	return out, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
