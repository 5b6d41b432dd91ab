package league

import (
	"errors"

	"gorm.io/gorm"
)

// LeagueRepository defines the interface for season plan and signup intent
// data operations.
type LeagueRepository interface {
	GetPlan(competitionID uint) (*SeasonPlan, error)
	// SavePlan replaces the whole plan record for its competition.
	SavePlan(plan *SeasonPlan) error

	GetIntent(competitionID, userID uint) (*SignupIntent, error)
	SaveIntent(intent *SignupIntent) error
	ListIntents(competitionID uint) ([]SignupIntent, error)
	ListSignupUserIDs(competitionID uint) ([]uint, error)
}

type leagueRepository struct {
	db *gorm.DB
}

// NewLeagueRepository creates a new instance of LeagueRepository.
func NewLeagueRepository(db *gorm.DB) LeagueRepository {
	return &leagueRepository{db: db}
}

func (r *leagueRepository) GetPlan(competitionID uint) (*SeasonPlan, error) {
	var plan SeasonPlan
	if err := r.db.Where("competition_id = ?", competitionID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *leagueRepository) SavePlan(plan *SeasonPlan) error {
	return r.db.Save(plan).Error
}

func (r *leagueRepository) GetIntent(competitionID, userID uint) (*SignupIntent, error) {
	var intent SignupIntent
	err := r.db.Where("competition_id = ? AND user_id = ?", competitionID, userID).
		First(&intent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &intent, nil
}

func (r *leagueRepository) SaveIntent(intent *SignupIntent) error {
	return r.db.Save(intent).Error
}

func (r *leagueRepository) ListIntents(competitionID uint) ([]SignupIntent, error) {
	var intents []SignupIntent
	err := r.db.Where("competition_id = ?", competitionID).
		Order("created_at ASC").
		Find(&intents).Error
	return intents, err
}

func (r *leagueRepository) ListSignupUserIDs(competitionID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&SignupIntent{}).
		Where("competition_id = ?", competitionID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
