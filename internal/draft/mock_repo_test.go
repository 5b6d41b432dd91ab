package draft

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jverbeek/hockeyclub/internal/competition"
	"github.com/jverbeek/hockeyclub/internal/league"
	apperrors "github.com/jverbeek/hockeyclub/pkg/errors"
)

// mockDraftRepo is an in-memory DraftRepository for tests.
type mockDraftRepo struct {
	sessions []*DraftSession
	picks    []*DraftPick
	controls map[uint]*CaptainControl
	nextID   uint
	saveErr  error
}

func newMockDraftRepo() *mockDraftRepo {
	return &mockDraftRepo{controls: make(map[uint]*CaptainControl), nextID: 1}
}

func (m *mockDraftRepo) GetCurrentSession(competitionID uint) (*DraftSession, error) {
	var latest *DraftSession
	for _, s := range m.sessions {
		if s.CompetitionID == competitionID {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (m *mockDraftRepo) CreateSession(session *DraftSession) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	session.ID = m.nextID
	m.nextID++
	session.Version = 1
	cp := *session
	m.sessions = append(m.sessions, &cp)
	return nil
}

func (m *mockDraftRepo) SaveSession(session *DraftSession) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	for i, s := range m.sessions {
		if s.ID == session.ID && s.Version == session.Version {
			session.Version++
			cp := *session
			m.sessions[i] = &cp
			return nil
		}
	}
	return apperrors.ErrOptimisticLock
}

func (m *mockDraftRepo) ListSessions(competitionID uint) ([]DraftSession, error) {
	var out []DraftSession
	for i := len(m.sessions) - 1; i >= 0; i-- {
		if m.sessions[i].CompetitionID == competitionID {
			out = append(out, *m.sessions[i])
		}
	}
	return out, nil
}

func (m *mockDraftRepo) AppendPick(pick *DraftPick) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	pick.ID = m.nextID
	m.nextID++
	cp := *pick
	m.picks = append(m.picks, &cp)
	return nil
}

func (m *mockDraftRepo) ListPicks(competitionID uint, generation string) ([]DraftPick, error) {
	var out []DraftPick
	for _, p := range m.picks {
		if p.CompetitionID == competitionID && p.Generation == generation {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockDraftRepo) GetCaptainControl(teamID uint) (*CaptainControl, error) {
	c, ok := m.controls[teamID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.SubPoolUserIDs = append(UintSlice{}, c.SubPoolUserIDs...)
	return &cp, nil
}

func (m *mockDraftRepo) SaveCaptainControl(control *CaptainControl) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if control.ID == 0 {
		control.ID = m.nextID
		m.nextID++
	}
	cp := *control
	cp.SubPoolUserIDs = append(UintSlice{}, control.SubPoolUserIDs...)
	m.controls[control.TeamID] = &cp
	return nil
}

// mockTeamDirectory serves a single competition and its teams.
type mockTeamDirectory struct {
	comp        *competition.Competition
	teams       []competition.Team
	memberships []competition.TeamMembership
}

func (m *mockTeamDirectory) GetCompetitionByID(id uint) (*competition.Competition, error) {
	if m.comp == nil || m.comp.ID != id {
		return nil, nil
	}
	return m.comp, nil
}

func (m *mockTeamDirectory) GetTeamsByCompetition(competitionID uint) ([]competition.Team, error) {
	return m.teams, nil
}

func (m *mockTeamDirectory) GetMembershipsByCompetition(competitionID uint) ([]competition.TeamMembership, error) {
	return m.memberships, nil
}

// mockPlanSource serves one plan and a signup list.
type mockPlanSource struct {
	plan    *league.SeasonPlan
	signups []uint
}

func (m *mockPlanSource) GetPlan(competitionID uint) (*league.SeasonPlan, error) {
	return m.plan, nil
}

func (m *mockPlanSource) ListSignupUserIDs(competitionID uint) ([]uint, error) {
	return m.signups, nil
}

type mockEligibilitySource struct {
	ids []uint
}

func (m *mockEligibilitySource) ListEligibleUserIDs() ([]uint, error) {
	return m.ids, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func dvhl(id uint) *competition.Competition {
	c := &competition.Competition{Type: competition.TypeDVHL, Title: "Winter League"}
	c.ID = id
	return c
}

func teamList(ids ...uint) []competition.Team {
	teams := make([]competition.Team, 0, len(ids))
	for _, id := range ids {
		t := competition.Team{CompetitionID: 1, Name: "Team"}
		t.ID = id
		teams = append(teams, t)
	}
	return teams
}
