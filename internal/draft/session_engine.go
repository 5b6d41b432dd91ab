package draft

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jverbeek/hockeyclub/internal/competition"
	"github.com/jverbeek/hockeyclub/internal/league"
	"github.com/jverbeek/hockeyclub/internal/metrics"
)

var (
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrNotALeague          = errors.New("competition is not a draft league")
	ErrInvalidRounds       = errors.New("rounds must be at least 1")
	ErrUnknownTeam         = errors.New("team does not belong to the competition")
	ErrNoActiveSession     = errors.New("no draft session exists for the competition")
	ErrDraftNotOpen        = errors.New("draft session is not open")
	ErrTeamNotInDraft      = errors.New("team is not part of the pick order")
	ErrPlayerNotInPool     = errors.New("player is not in the draft pool")
	ErrAlreadyPicked       = errors.New("player was already picked in this draft")
)

// TeamDirectory is the slice of the competition registry the engine needs.
type TeamDirectory interface {
	GetCompetitionByID(id uint) (*competition.Competition, error)
	GetTeamsByCompetition(competitionID uint) ([]competition.Team, error)
	GetMembershipsByCompetition(competitionID uint) ([]competition.TeamMembership, error)
}

// PlanSource provides the season plan and the signup pool.
type PlanSource interface {
	GetPlan(competitionID uint) (*league.SeasonPlan, error)
	ListSignupUserIDs(competitionID uint) ([]uint, error)
}

// EligibilitySource lists every globally eligible (active) player.
type EligibilitySource interface {
	ListEligibleUserIDs() ([]uint, error)
}

// Engine drives the draft session state machine: no-session → open → closed.
// Starting while closed creates a fresh session under a new generation, so
// relaunching a league never overwrites pick history.
type Engine struct {
	repo     DraftRepository
	teams    TeamDirectory
	plans    PlanSource
	eligible EligibilitySource
	log      *logrus.Logger

	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
}

// NewEngine creates a draft Engine. Clock and shuffle are injectable for
// tests; the defaults are time.Now and rand.Shuffle.
func NewEngine(repo DraftRepository, teams TeamDirectory, plans PlanSource, eligible EligibilitySource, log *logrus.Logger) *Engine {
	return &Engine{
		repo:     repo,
		teams:    teams,
		plans:    plans,
		eligible: eligible,
		log:      log,
		now:      time.Now,
		shuffle:  rand.Shuffle,
	}
}

// StartInput carries the operator's choices for a new session. Zero values
// defer to the season plan.
type StartInput struct {
	CompetitionID      uint
	PickOrderTeamIDs   []uint
	PoolUserIDs        []uint
	DraftMode          string
	Rounds             int
	IncludeAllEligible bool
	ActorUserID        uint
}

// Start materializes a new open draft session from the plan plus live signup
// and eligibility data. An explicit pick order wins over the plan's strategy;
// an explicit pool wins over the plan's base set. Existing team members are
// always unioned in so a mid-season restart keeps rosters pickable.
func (e *Engine) Start(in StartInput) (*DraftSession, error) {
	comp, err := e.teams.GetCompetitionByID(in.CompetitionID)
	if err != nil {
		return nil, err
	}
	if comp == nil {
		return nil, ErrCompetitionNotFound
	}
	if comp.Type != competition.TypeDVHL {
		return nil, ErrNotALeague
	}

	plan, err := e.plans.GetPlan(in.CompetitionID)
	if err != nil {
		return nil, err
	}

	rounds := in.Rounds
	if rounds < 1 {
		if plan != nil && plan.Rounds >= 1 {
			rounds = plan.Rounds
		} else {
			return nil, ErrInvalidRounds
		}
	}

	draftMode := in.DraftMode
	if draftMode == "" && plan != nil {
		draftMode = plan.DraftMode
	}
	draftMode = league.NormalizeDraftMode(draftMode)

	teams, err := e.teams.GetTeamsByCompetition(in.CompetitionID)
	if err != nil {
		return nil, err
	}
	order, err := e.resolveOrder(in.PickOrderTeamIDs, teams, plan)
	if err != nil {
		return nil, err
	}

	memberships, err := e.teams.GetMembershipsByCompetition(in.CompetitionID)
	if err != nil {
		return nil, err
	}
	pool, err := e.resolvePool(in, plan, memberships)
	if err != nil {
		return nil, err
	}

	session := &DraftSession{
		CompetitionID:    in.CompetitionID,
		Generation:       uuid.NewString(),
		PickOrderTeamIDs: order,
		PoolUserIDs:      pool,
		DraftMode:        draftMode,
		Rounds:           rounds,
		Status:           SessionOpen,
		CreatedByUserID:  in.ActorUserID,
	}
	if err := e.repo.CreateSession(session); err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{
		"competition_id": in.CompetitionID,
		"generation":     session.Generation,
		"teams":          len(order),
		"pool":           len(pool),
		"rounds":         rounds,
		"draft_mode":     draftMode,
	}).Info("draft session started")
	return session, nil
}

// Pick validates a pick against the open session and appends it to the pick
// log. It does NOT create the team membership: the caller assigns membership
// as a second step, so a membership failure never erases the pick record.
func (e *Engine) Pick(competitionID, teamID, userID, actorUserID uint) (*DraftPick, error) {
	session, err := e.repo.GetCurrentSession(competitionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	if session.Status != SessionOpen {
		return nil, ErrDraftNotOpen
	}
	if !session.PickOrderTeamIDs.Contains(teamID) {
		return nil, ErrTeamNotInDraft
	}
	if !session.PoolUserIDs.Contains(userID) {
		return nil, ErrPlayerNotInPool
	}

	picks, err := e.repo.ListPicks(competitionID, session.Generation)
	if err != nil {
		return nil, err
	}
	for i := range picks {
		if picks[i].UserID == userID {
			return nil, ErrAlreadyPicked
		}
	}

	pick := &DraftPick{
		CompetitionID: competitionID,
		Generation:    session.Generation,
		UserID:        userID,
		TeamID:        teamID,
		PickedAt:      e.now(),
		ActorUserID:   actorUserID,
	}
	if err := e.repo.AppendPick(pick); err != nil {
		return nil, err
	}
	metrics.DraftPicksRecorded.Inc()
	return pick, nil
}

// Close marks the current session closed. Closing an already closed session
// is a no-op.
func (e *Engine) Close(competitionID, actorUserID uint) (*DraftSession, error) {
	session, err := e.repo.GetCurrentSession(competitionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	if session.Status == SessionClosed {
		return session, nil
	}
	session.Status = SessionClosed
	if err := e.repo.SaveSession(session); err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{
		"competition_id": competitionID,
		"generation":     session.Generation,
		"closed_by":      actorUserID,
	}).Info("draft session closed")
	return session, nil
}

// ExpectedNextTeam computes whose turn it is from the pick count: straight
// rotation in manual mode, reversed on every other round in snake mode.
// Advisory only; Pick does not enforce turn order, since operators fix
// mistakes out of order.
func ExpectedNextTeam(session *DraftSession, pickCount int) (uint, bool) {
	n := len(session.PickOrderTeamIDs)
	if n == 0 {
		return 0, false
	}
	round := pickCount / n
	if round >= session.Rounds {
		return 0, false // draft complete
	}
	idx := pickCount % n
	if session.DraftMode == league.DraftModeSnake && round%2 == 1 {
		idx = n - 1 - idx
	}
	return session.PickOrderTeamIDs[idx], true
}

func (e *Engine) resolveOrder(explicit []uint, teams []competition.Team, plan *league.SeasonPlan) (UintSlice, error) {
	if len(explicit) > 0 {
		known := make(map[uint]bool, len(teams))
		for i := range teams {
			known[teams[i].ID] = true
		}
		order := make(UintSlice, 0, len(explicit))
		for _, id := range explicit {
			if !known[id] {
				return nil, ErrUnknownTeam
			}
			order = append(order, id)
		}
		return order, nil
	}

	order := make(UintSlice, 0, len(teams))
	for i := range teams {
		order = append(order, teams[i].ID)
	}
	if plan != nil && league.NormalizeTeamOrderStrategy(plan.TeamOrderStrategy) == league.OrderRandom {
		e.shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}
	return order, nil
}

func (e *Engine) resolvePool(in StartInput, plan *league.SeasonPlan, memberships []competition.TeamMembership) (UintSlice, error) {
	var base []uint
	var err error
	if len(in.PoolUserIDs) > 0 {
		base = in.PoolUserIDs
	} else {
		strategy := league.PoolAllSignups
		if plan != nil {
			strategy = league.NormalizePlayerPoolStrategy(plan.PlayerPoolStrategy)
		}
		switch strategy {
		case league.PoolAllEligible:
			base, err = e.eligible.ListEligibleUserIDs()
		case league.PoolOpsSelected:
			for i := range memberships {
				base = append(base, memberships[i].UserID)
			}
		default: // all_signups
			base, err = e.plans.ListSignupUserIDs(in.CompetitionID)
		}
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[uint]bool)
	pool := make(UintSlice, 0, len(base)+len(memberships))
	add := func(ids []uint) {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				pool = append(pool, id)
			}
		}
	}
	add(base)
	memberIDs := make([]uint, 0, len(memberships))
	for i := range memberships {
		memberIDs = append(memberIDs, memberships[i].UserID)
	}
	add(memberIDs)
	if in.IncludeAllEligible {
		eligible, err := e.eligible.ListEligibleUserIDs()
		if err != nil {
			return nil, err
		}
		add(eligible)
	}
	return pool, nil
}
