package draft

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/jverbeek/hockeyclub/pkg/errors"
)

// DraftRepository defines the interface for draft session, pick log, and
// captain control data operations.
type DraftRepository interface {
	// GetCurrentSession returns the latest session for the competition, open
	// or closed, or nil when none was ever started.
	GetCurrentSession(competitionID uint) (*DraftSession, error)
	CreateSession(session *DraftSession) error
	// SaveSession compares the version counter and fails with
	// ErrOptimisticLock on a concurrent write.
	SaveSession(session *DraftSession) error
	ListSessions(competitionID uint) ([]DraftSession, error)

	AppendPick(pick *DraftPick) error
	ListPicks(competitionID uint, generation string) ([]DraftPick, error)

	GetCaptainControl(teamID uint) (*CaptainControl, error)
	SaveCaptainControl(control *CaptainControl) error
}

type draftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a new instance of DraftRepository.
func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) GetCurrentSession(competitionID uint) (*DraftSession, error) {
	var session DraftSession
	err := r.db.Where("competition_id = ?", competitionID).
		Order("id DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *draftRepository) CreateSession(session *DraftSession) error {
	session.Version = 1
	return r.db.Create(session).Error
}

func (r *draftRepository) SaveSession(session *DraftSession) error {
	currentVersion := session.Version
	session.Version++
	res := r.db.Model(&DraftSession{}).
		Where("id = ? AND version = ?", session.ID, currentVersion).
		Select("status", "version", "updated_at").
		Updates(session)
	if res.Error != nil {
		session.Version = currentVersion
		return res.Error
	}
	if res.RowsAffected == 0 {
		session.Version = currentVersion
		return apperrors.ErrOptimisticLock
	}
	return nil
}

func (r *draftRepository) ListSessions(competitionID uint) ([]DraftSession, error) {
	var sessions []DraftSession
	err := r.db.Where("competition_id = ?", competitionID).
		Order("id DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *draftRepository) AppendPick(pick *DraftPick) error {
	return r.db.Create(pick).Error
}

func (r *draftRepository) ListPicks(competitionID uint, generation string) ([]DraftPick, error) {
	var picks []DraftPick
	err := r.db.Where("competition_id = ? AND generation = ?", competitionID, generation).
		Order("picked_at ASC").
		Find(&picks).Error
	return picks, err
}

func (r *draftRepository) GetCaptainControl(teamID uint) (*CaptainControl, error) {
	var control CaptainControl
	if err := r.db.Where("team_id = ?", teamID).First(&control).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &control, nil
}

func (r *draftRepository) SaveCaptainControl(control *CaptainControl) error {
	return r.db.Save(control).Error
}
