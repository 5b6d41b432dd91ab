package draft

import "github.com/sirupsen/logrus"

// CaptainRegistry manages the single captain and the substitute bench per
// team.
type CaptainRegistry struct {
	repo DraftRepository
	log  *logrus.Logger
}

// NewCaptainRegistry creates a CaptainRegistry.
func NewCaptainRegistry(repo DraftRepository, log *logrus.Logger) *CaptainRegistry {
	return &CaptainRegistry{repo: repo, log: log}
}

// SetCaptain replaces the team's captain atomically; a nil captainUserID
// clears it. The sub-pool is untouched either way.
func (cr *CaptainRegistry) SetCaptain(teamID uint, captainUserID *uint, updatedByUserID uint) (*CaptainControl, error) {
	control, err := cr.loadOrInit(teamID)
	if err != nil {
		return nil, err
	}
	control.CaptainUserID = captainUserID
	control.UpdatedByUserID = updatedByUserID
	if err := cr.repo.SaveCaptainControl(control); err != nil {
		return nil, err
	}
	cr.log.WithFields(logrus.Fields{
		"team_id":    teamID,
		"captain":    captainUserID,
		"updated_by": updatedByUserID,
	}).Info("captain updated")
	return control, nil
}

// AddSubPoolMember adds a user to the team's bench. Adding an existing member
// is a no-op.
func (cr *CaptainRegistry) AddSubPoolMember(teamID, userID, updatedByUserID uint) (*CaptainControl, error) {
	control, err := cr.loadOrInit(teamID)
	if err != nil {
		return nil, err
	}
	if control.SubPoolUserIDs.Contains(userID) {
		return control, nil
	}
	control.SubPoolUserIDs = append(control.SubPoolUserIDs, userID)
	control.UpdatedByUserID = updatedByUserID
	if err := cr.repo.SaveCaptainControl(control); err != nil {
		return nil, err
	}
	return control, nil
}

// RemoveSubPoolMember removes a user from the team's bench. Removing an
// absent member is a no-op.
func (cr *CaptainRegistry) RemoveSubPoolMember(teamID, userID, updatedByUserID uint) (*CaptainControl, error) {
	control, err := cr.loadOrInit(teamID)
	if err != nil {
		return nil, err
	}
	if !control.SubPoolUserIDs.Contains(userID) {
		return control, nil
	}
	kept := make(UintSlice, 0, len(control.SubPoolUserIDs)-1)
	for _, id := range control.SubPoolUserIDs {
		if id != userID {
			kept = append(kept, id)
		}
	}
	control.SubPoolUserIDs = kept
	control.UpdatedByUserID = updatedByUserID
	if err := cr.repo.SaveCaptainControl(control); err != nil {
		return nil, err
	}
	return control, nil
}

// IsCaptainOfTeam reports whether userID is the registered captain of teamID.
func (cr *CaptainRegistry) IsCaptainOfTeam(userID, teamID uint) (bool, error) {
	control, err := cr.repo.GetCaptainControl(teamID)
	if err != nil {
		return false, err
	}
	if control == nil || control.CaptainUserID == nil {
		return false, nil
	}
	return *control.CaptainUserID == userID, nil
}

func (cr *CaptainRegistry) loadOrInit(teamID uint) (*CaptainControl, error) {
	control, err := cr.repo.GetCaptainControl(teamID)
	if err != nil {
		return nil, err
	}
	if control == nil {
		control = &CaptainControl{TeamID: teamID, SubPoolUserIDs: UintSlice{}}
	}
	return control, nil
}
