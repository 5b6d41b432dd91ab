package league

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidRounds       = errors.New("rounds must be at least 1")
	ErrInvalidCaptainCount = errors.New("desired captain count cannot be negative")
)

// PlanManager stores per-league configuration.
type PlanManager struct {
	repo LeagueRepository
	log  *logrus.Logger
}

// NewPlanManager creates a PlanManager.
func NewPlanManager(repo LeagueRepository, log *logrus.Logger) *PlanManager {
	return &PlanManager{repo: repo, log: log}
}

// PlanInput carries the full plan; upsert replaces the whole record.
type PlanInput struct {
	CompetitionID         uint
	SignupClosesAt        *time.Time
	CaptainSignupClosesAt *time.Time
	DesiredCaptainCount   int
	Rounds                int
	TeamOrderStrategy     string
	PlayerPoolStrategy    string
	DraftMode             string
	ActorUserID           uint
}

// UpsertPlan validates the invariants and normalizes the strategy enums.
// Unknown strategy values fall back to safe defaults rather than failing;
// that keeps the operator forms forgiving about stale option values.
func (m *PlanManager) UpsertPlan(in PlanInput) (*SeasonPlan, error) {
	if in.Rounds < 1 {
		return nil, ErrInvalidRounds
	}
	if in.DesiredCaptainCount < 0 {
		return nil, ErrInvalidCaptainCount
	}

	plan, err := m.repo.GetPlan(in.CompetitionID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		plan = &SeasonPlan{CompetitionID: in.CompetitionID}
	}

	plan.SignupClosesAt = in.SignupClosesAt
	plan.CaptainSignupClosesAt = in.CaptainSignupClosesAt
	plan.DesiredCaptainCount = in.DesiredCaptainCount
	plan.Rounds = in.Rounds
	plan.TeamOrderStrategy = NormalizeTeamOrderStrategy(in.TeamOrderStrategy)
	plan.PlayerPoolStrategy = NormalizePlayerPoolStrategy(in.PlayerPoolStrategy)
	plan.DraftMode = NormalizeDraftMode(in.DraftMode)
	plan.UpdatedByUserID = in.ActorUserID

	if err := m.repo.SavePlan(plan); err != nil {
		return nil, err
	}
	m.log.WithFields(logrus.Fields{
		"competition_id": in.CompetitionID,
		"rounds":         plan.Rounds,
		"draft_mode":     plan.DraftMode,
	}).Info("season plan saved")
	return plan, nil
}
