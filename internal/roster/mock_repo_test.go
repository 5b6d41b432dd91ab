package roster

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// mockPlayerRepo is an in-memory PlayerRepository for tests.
type mockPlayerRepo struct {
	players map[uint]*Player
	retired []RetiredNumber
	nextID  uint
	saveErr error
}

func newMockPlayerRepo() *mockPlayerRepo {
	return &mockPlayerRepo{players: make(map[uint]*Player), nextID: 1}
}

func (m *mockPlayerRepo) add(p Player) *Player {
	p.ID = m.nextID
	m.nextID++
	if p.Version == 0 {
		p.Version = 1
	}
	cp := p
	m.players[p.UserID] = &cp
	return &cp
}

func (m *mockPlayerRepo) GetPlayerByUserID(userID uint) (*Player, error) {
	p, ok := m.players[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockPlayerRepo) ListActivePlayersByRoster(rosterID string) ([]Player, error) {
	var out []Player
	for _, p := range m.players {
		if p.RosterID == rosterID && p.ActivityStatus == ActivityActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPlayerRepo) ListPlayersByRoster(rosterID string) ([]Player, error) {
	var out []Player
	for _, p := range m.players {
		if p.RosterID == rosterID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPlayerRepo) ListEligibleUserIDs() ([]uint, error) {
	var ids []uint
	for _, p := range m.players {
		if p.ActivityStatus == ActivityActive {
			ids = append(ids, p.UserID)
		}
	}
	return ids, nil
}

func (m *mockPlayerRepo) SavePlayer(p *Player) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if p.ID == 0 {
		p.ID = m.nextID
		m.nextID++
		p.Version = 1
	} else {
		p.Version++
	}
	cp := *p
	m.players[p.UserID] = &cp
	return nil
}

func (m *mockPlayerRepo) ListRetiredNumbers(rosterID string) ([]RetiredNumber, error) {
	var out []RetiredNumber
	for _, rn := range m.retired {
		if rn.RosterID == rosterID {
			out = append(out, rn)
		}
	}
	return out, nil
}

// mockRequestRepo is an in-memory JerseyRequestRepository for tests.
type mockRequestRepo struct {
	requests map[string]*JerseyNumberRequest
	nextID   uint
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[string]*JerseyNumberRequest), nextID: 1}
}

func (m *mockRequestRepo) CreateRequest(req *JerseyNumberRequest) error {
	if req.PublicID == "" {
		req.PublicID = fmt.Sprintf("req-%d", m.nextID)
	}
	req.ID = m.nextID
	m.nextID++
	cp := *req
	m.requests[req.PublicID] = &cp
	return nil
}

func (m *mockRequestRepo) GetRequestByPublicID(publicID string) (*JerseyNumberRequest, error) {
	req, ok := m.requests[publicID]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (m *mockRequestRepo) UpdateRequest(req *JerseyNumberRequest) error {
	cp := *req
	m.requests[req.PublicID] = &cp
	return nil
}

func (m *mockRequestRepo) ListRequests(status string) ([]JerseyNumberRequest, error) {
	var out []JerseyNumberRequest
	for _, req := range m.requests {
		if status == "" || req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func intPtr(n int) *int { return &n }
