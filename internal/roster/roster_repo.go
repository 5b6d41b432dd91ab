package roster

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/jverbeek/hockeyclub/pkg/errors"
)

// PlayerRepository defines the interface for player data operations.
type PlayerRepository interface {
	GetPlayerByUserID(userID uint) (*Player, error)
	// ListActivePlayersByRoster returns every active player sharing the roster.
	ListActivePlayersByRoster(rosterID string) ([]Player, error)
	// ListPlayersByRoster returns every player sharing the roster regardless
	// of activity status.
	ListPlayersByRoster(rosterID string) ([]Player, error)
	// ListEligibleUserIDs returns the user IDs of all active players.
	ListEligibleUserIDs() ([]uint, error)
	// SavePlayer creates or updates a player. Updates compare the version
	// counter and fail with ErrOptimisticLock on a concurrent write.
	SavePlayer(p *Player) error
	ListRetiredNumbers(rosterID string) ([]RetiredNumber, error)
}

// JerseyRequestRepository defines the interface for jersey number request
// data operations. Requests are append-plus-update only, never deleted.
type JerseyRequestRepository interface {
	CreateRequest(req *JerseyNumberRequest) error
	GetRequestByPublicID(publicID string) (*JerseyNumberRequest, error)
	UpdateRequest(req *JerseyNumberRequest) error
	ListRequests(status string) ([]JerseyNumberRequest, error)
}

type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new instance of PlayerRepository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) GetPlayerByUserID(userID uint) (*Player, error) {
	var p Player
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *playerRepository) ListActivePlayersByRoster(rosterID string) ([]Player, error) {
	var players []Player
	err := r.db.
		Where("roster_id = ? AND activity_status = ?", rosterID, ActivityActive).
		Find(&players).Error
	return players, err
}

func (r *playerRepository) ListPlayersByRoster(rosterID string) ([]Player, error) {
	var players []Player
	err := r.db.Where("roster_id = ?", rosterID).Find(&players).Error
	return players, err
}

func (r *playerRepository) ListEligibleUserIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&Player{}).
		Where("activity_status = ?", ActivityActive).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *playerRepository) SavePlayer(p *Player) error {
	if p.ID == 0 {
		p.Version = 1
		return r.db.Create(p).Error
	}
	currentVersion := p.Version
	p.Version++
	res := r.db.Model(&Player{}).
		Where("id = ? AND version = ?", p.ID, currentVersion).
		Select("full_name", "roster_id", "jersey_number", "primary_sub_roster",
			"allow_cross_color_jersey_overlap", "activity_status", "version",
			"updated_at").
		Updates(p)
	if res.Error != nil {
		p.Version = currentVersion
		return res.Error
	}
	if res.RowsAffected == 0 {
		p.Version = currentVersion
		return apperrors.ErrOptimisticLock
	}
	return nil
}

func (r *playerRepository) ListRetiredNumbers(rosterID string) ([]RetiredNumber, error) {
	var retired []RetiredNumber
	err := r.db.Where("roster_id = ?", rosterID).Find(&retired).Error
	return retired, err
}

type jerseyRequestRepository struct {
	db *gorm.DB
}

// NewJerseyRequestRepository creates a new instance of JerseyRequestRepository.
func NewJerseyRequestRepository(db *gorm.DB) JerseyRequestRepository {
	return &jerseyRequestRepository{db: db}
}

func (r *jerseyRequestRepository) CreateRequest(req *JerseyNumberRequest) error {
	return r.db.Create(req).Error
}

func (r *jerseyRequestRepository) GetRequestByPublicID(publicID string) (*JerseyNumberRequest, error) {
	var req JerseyNumberRequest
	if err := r.db.Where("public_id = ?", publicID).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *jerseyRequestRepository) UpdateRequest(req *JerseyNumberRequest) error {
	return r.db.Save(req).Error
}

func (r *jerseyRequestRepository) ListRequests(status string) ([]JerseyNumberRequest, error) {
	var reqs []JerseyNumberRequest
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&reqs).Error
	return reqs, err
}
