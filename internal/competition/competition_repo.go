package competition

import (
	"errors"

	"gorm.io/gorm"
)

// CompetitionRepository defines the interface for competition, team, and
// membership data operations.
type CompetitionRepository interface {
	CreateCompetition(comp *Competition) error
	GetCompetitionByID(id uint) (*Competition, error)
	GetAllCompetitions(compType string) ([]Competition, error)

	CreateTeam(team *Team) error
	GetTeamByID(id uint) (*Team, error)
	// GetTeamsByCompetition returns the competition's teams in creation order.
	GetTeamsByCompetition(competitionID uint) ([]Team, error)

	AddMembership(teamID, userID uint) error
	RemoveMembership(teamID, userID uint) error
	GetMembershipsByCompetition(competitionID uint) ([]TeamMembership, error)
	IsTeamMember(teamID, userID uint) (bool, error)
}

type competitionRepository struct {
	db *gorm.DB
}

// NewCompetitionRepository creates a new instance of CompetitionRepository.
func NewCompetitionRepository(db *gorm.DB) CompetitionRepository {
	return &competitionRepository{db: db}
}

func (r *competitionRepository) CreateCompetition(comp *Competition) error {
	return r.db.Create(comp).Error
}

func (r *competitionRepository) GetCompetitionByID(id uint) (*Competition, error) {
	var comp Competition
	if err := r.db.Preload("Teams", func(db *gorm.DB) *gorm.DB {
		return db.Order("teams.id ASC")
	}).First(&comp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comp, nil
}

func (r *competitionRepository) GetAllCompetitions(compType string) ([]Competition, error) {
	var comps []Competition
	query := r.db.Order("starts_at DESC")
	if compType != "" {
		query = query.Where("type = ?", compType)
	}
	if err := query.Find(&comps).Error; err != nil {
		return nil, err
	}
	return comps, nil
}

func (r *competitionRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

func (r *competitionRepository) GetTeamByID(id uint) (*Team, error) {
	var team Team
	if err := r.db.Preload("Members").First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *competitionRepository) GetTeamsByCompetition(competitionID uint) ([]Team, error) {
	var teams []Team
	err := r.db.Where("competition_id = ?", competitionID).Order("id ASC").Find(&teams).Error
	return teams, err
}

func (r *competitionRepository) AddMembership(teamID, userID uint) error {
	var count int64
	if err := r.db.Model(&TeamMembership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // already a member
	}
	return r.db.Create(&TeamMembership{TeamID: teamID, UserID: userID}).Error
}

func (r *competitionRepository) RemoveMembership(teamID, userID uint) error {
	return r.db.Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&TeamMembership{}).Error
}

func (r *competitionRepository) GetMembershipsByCompetition(competitionID uint) ([]TeamMembership, error) {
	var memberships []TeamMembership
	err := r.db.
		Joins("JOIN teams ON teams.id = team_memberships.team_id").
		Where("teams.competition_id = ?", competitionID).
		Find(&memberships).Error
	return memberships, err
}

func (r *competitionRepository) IsTeamMember(teamID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&TeamMembership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}
