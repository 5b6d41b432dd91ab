package roster

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jverbeek/hockeyclub/internal/metrics"
)

var (
	ErrNumberUnavailable      = errors.New("jersey number is not available")
	ErrRequestNotFound        = errors.New("jersey number request not found")
	ErrRequestAlreadyReviewed = errors.New("jersey number request was already reviewed")
	ErrInvalidDecision        = errors.New("review decision must be approved or rejected")
)

// NumberOption is one row of the available-number menu.
type NumberOption struct {
	Number           int    `json:"number"`
	Taken            bool   `json:"taken"`
	RequiresApproval bool   `json:"requires_approval"`
	ApprovalReason   string `json:"approval_reason,omitempty"`
}

// RequestResult is the outcome of CreateRequest. Exactly one of AutoGranted
// or Request is meaningful: an auto-grant never materializes a pending row.
type RequestResult struct {
	AutoGranted bool                 `json:"auto_granted"`
	Request     *JerseyNumberRequest `json:"request,omitempty"`
}

// ReviewResult is the outcome of Review. Conflict is set when an approval
// failed because the roster changed since the request was filed; the request
// stays pending in that case.
type ReviewResult struct {
	Request  *JerseyNumberRequest `json:"request"`
	Conflict *NumberConflict      `json:"conflict,omitempty"`
}

// RequestWorkflow wraps the Allocator for self-service number changes:
// safe numbers are granted immediately, risky ones queue for operator review.
type RequestWorkflow struct {
	players   PlayerRepository
	requests  JerseyRequestRepository
	allocator *Allocator
	log       *logrus.Logger
}

// NewRequestWorkflow creates a RequestWorkflow.
func NewRequestWorkflow(players PlayerRepository, requests JerseyRequestRepository, allocator *Allocator, log *logrus.Logger) *RequestWorkflow {
	return &RequestWorkflow{players: players, requests: requests, allocator: allocator, log: log}
}

// AvailableNumbers builds the menu of numbers 1–99 for a candidate in the
// given roster and sub-roster. A number held by an active player in the same
// sub-roster is taken outright; one held in another sub-roster, held by an
// inactive player, or retired is offerable but flagged for review.
func (w *RequestWorkflow) AvailableNumbers(rosterID, subRoster string) ([]NumberOption, error) {
	active, err := w.players.ListActivePlayersByRoster(rosterID)
	if err != nil {
		return nil, err
	}
	retired, err := w.players.ListRetiredNumbers(rosterID)
	if err != nil {
		return nil, err
	}

	options := make([]NumberOption, 0, MaxJerseyNumber)
	for n := MinJerseyNumber; n <= MaxJerseyNumber; n++ {
		opt := NumberOption{Number: n}
		for i := range active {
			p := &active[i]
			if p.JerseyNumber == nil || *p.JerseyNumber != n {
				continue
			}
			if p.PrimarySubRoster == subRoster {
				opt.Taken = true
				opt.RequiresApproval = false
				opt.ApprovalReason = ""
				break
			}
			opt.RequiresApproval = true
			opt.ApprovalReason = fmt.Sprintf("worn by %s in the %s group", p.FullName, p.PrimarySubRoster)
		}
		if !opt.Taken {
			for i := range retired {
				if retired[i].Number == n {
					opt.RequiresApproval = true
					opt.ApprovalReason = "retired number"
					break
				}
			}
		}
		options = append(options, opt)
	}

	// Numbers held by inactive players are free in the active scan above but
	// still sensitive: the holder may be reactivated.
	inactiveHeld, err := w.inactiveHeldNumbers(rosterID)
	if err != nil {
		return nil, err
	}
	for i := range options {
		opt := &options[i]
		if opt.Taken || opt.RequiresApproval {
			continue
		}
		if holder, ok := inactiveHeld[opt.Number]; ok {
			opt.RequiresApproval = true
			opt.ApprovalReason = fmt.Sprintf("held by inactive player %s", holder)
		}
	}
	return options, nil
}

// CreateRequest resolves the requested number against the menu. When no
// approval is needed it calls the Allocator immediately and no pending row is
// created. Otherwise a pending JerseyNumberRequest is stored for review.
func (w *RequestWorkflow) CreateRequest(userID uint, requestedNumber int) (RequestResult, error) {
	player, err := w.players.GetPlayerByUserID(userID)
	if err != nil {
		return RequestResult{}, err
	}
	if player == nil {
		return RequestResult{}, ErrPlayerNotFound
	}

	options, err := w.AvailableNumbers(player.RosterID, player.PrimarySubRoster)
	if err != nil {
		return RequestResult{}, err
	}
	var chosen *NumberOption
	for i := range options {
		if options[i].Number == requestedNumber {
			chosen = &options[i]
			break
		}
	}
	if chosen == nil || chosen.Taken {
		return RequestResult{}, ErrNumberUnavailable
	}

	if !chosen.RequiresApproval {
		result, err := w.allocator.Assign(AssignInput{
			UserID:         userID,
			FullName:       player.FullName,
			RosterID:       player.RosterID,
			JerseyNumber:   &requestedNumber,
			ActivityStatus: player.ActivityStatus,
		})
		if err != nil {
			return RequestResult{}, err
		}
		if !result.OK {
			// Roster moved between menu and assign.
			return RequestResult{}, ErrNumberUnavailable
		}
		metrics.JerseyAutoGrants.Inc()
		w.log.WithFields(logrus.Fields{
			"user_id":       userID,
			"jersey_number": requestedNumber,
		}).Info("jersey number auto-granted")
		return RequestResult{AutoGranted: true}, nil
	}

	conflictUserID, err := w.activeHolderUserID(player.RosterID, requestedNumber, userID)
	if err != nil {
		return RequestResult{}, err
	}
	req := &JerseyNumberRequest{
		PublicID:              uuid.NewString(),
		UserID:                userID,
		RosterID:              player.RosterID,
		PrimarySubRoster:      player.PrimarySubRoster,
		CurrentJerseyNumber:   player.JerseyNumber,
		RequestedJerseyNumber: requestedNumber,
		RequiresApproval:      true,
		ApprovalReason:        chosen.ApprovalReason,
		ConflictUserID:        conflictUserID,
		Status:                RequestPending,
	}
	if err := w.requests.CreateRequest(req); err != nil {
		return RequestResult{}, err
	}
	return RequestResult{Request: req}, nil
}

// Review applies an operator decision to a pending request. Approval
// re-resolves the player and assigns, overriding only the conflicting holder
// recorded at filing: the review authorizes the conflict that triggered the
// request and nothing else. Any conflict that appeared since the request was
// filed leaves the request pending with the conflict surfaced. Rejection only
// flips the status; the roster is untouched.
func (w *RequestWorkflow) Review(publicID, decision string, reviewerUserID uint, notes string) (ReviewResult, error) {
	if decision != RequestApproved && decision != RequestRejected {
		return ReviewResult{}, ErrInvalidDecision
	}
	req, err := w.requests.GetRequestByPublicID(publicID)
	if err != nil {
		return ReviewResult{}, err
	}
	if req == nil {
		return ReviewResult{}, ErrRequestNotFound
	}
	if req.Status != RequestPending {
		return ReviewResult{}, ErrRequestAlreadyReviewed
	}

	if decision == RequestApproved {
		player, err := w.players.GetPlayerByUserID(req.UserID)
		if err != nil {
			return ReviewResult{}, err
		}
		if player == nil {
			return ReviewResult{}, ErrPlayerNotFound
		}
		number := req.RequestedJerseyNumber
		result, err := w.allocator.Assign(AssignInput{
			UserID:                 req.UserID,
			FullName:               player.FullName,
			RosterID:               player.RosterID,
			JerseyNumber:           &number,
			ActivityStatus:         player.ActivityStatus,
			OverrideConflictUserID: req.ConflictUserID,
		})
		if err != nil {
			return ReviewResult{}, err
		}
		if !result.OK {
			// A conflict not on file at creation; leave the request pending.
			return ReviewResult{Request: req, Conflict: result.Conflict}, ErrNumberUnavailable
		}
	}

	req.Status = decision
	req.ReviewedByUserID = &reviewerUserID
	req.ReviewNotes = notes
	if err := w.requests.UpdateRequest(req); err != nil {
		return ReviewResult{}, err
	}
	return ReviewResult{Request: req}, nil
}

// activeHolderUserID returns the active player currently wearing number on
// the roster, excluding the requester. Inactive and retired holders are not
// returned; those never collide at assign time.
func (w *RequestWorkflow) activeHolderUserID(rosterID string, number int, requesterUserID uint) (*uint, error) {
	active, err := w.players.ListActivePlayersByRoster(rosterID)
	if err != nil {
		return nil, err
	}
	for i := range active {
		p := &active[i]
		if p.UserID == requesterUserID {
			continue
		}
		if p.JerseyNumber != nil && *p.JerseyNumber == number {
			holder := p.UserID
			return &holder, nil
		}
	}
	return nil, nil
}

func (w *RequestWorkflow) inactiveHeldNumbers(rosterID string) (map[int]string, error) {
	// The active-roster listing excludes these, so fetch the full roster via
	// the player repo's broader listing.
	all, err := w.players.ListPlayersByRoster(rosterID)
	if err != nil {
		return nil, err
	}
	held := make(map[int]string)
	for i := range all {
		p := &all[i]
		if p.ActivityStatus != ActivityInactive || p.JerseyNumber == nil {
			continue
		}
		held[*p.JerseyNumber] = p.FullName
	}
	return held, nil
}
