package draft

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jverbeek/hockeyclub/internal/middleware"
	"github.com/jverbeek/hockeyclub/internal/user"
	"github.com/jverbeek/hockeyclub/pkg/events"
	"github.com/jverbeek/hockeyclub/pkg/responses"
	"github.com/jverbeek/hockeyclub/pkg/rmiddleware"
	"github.com/jverbeek/hockeyclub/pkg/validator"
)

// MembershipWriter is the slice of the competition registry the controller
// uses to complete a pick.
type MembershipWriter interface {
	AddMembership(teamID, userID uint) error
}

// DraftController handles draft session, pick, and captain HTTP requests.
type DraftController struct {
	repo        DraftRepository
	engine      *Engine
	registry    *CaptainRegistry
	memberships MembershipWriter
	dispatcher  events.Dispatcher
}

// NewDraftController creates a new draft controller.
func NewDraftController(repo DraftRepository, engine *Engine, registry *CaptainRegistry, memberships MembershipWriter, dispatcher events.Dispatcher) *DraftController {
	return &DraftController{
		repo:        repo,
		engine:      engine,
		registry:    registry,
		memberships: memberships,
		dispatcher:  dispatcher,
	}
}

// --- DTOs ---

type StartDraftRequest struct {
	PickOrderTeamIDs   []uint `json:"pick_order_team_ids"`
	PoolUserIDs        []uint `json:"pool_user_ids"`
	DraftMode          string `json:"draft_mode" binding:"omitempty,oneof=manual snake"`
	Rounds             int    `json:"rounds" binding:"omitempty,gte=1"`
	IncludeAllEligible bool   `json:"include_all_eligible"`
}

type PickRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
	UserID uint `json:"user_id" binding:"required"`
}

type SetCaptainRequest struct {
	// CaptainUserID nil clears the captain.
	CaptainUserID *uint `json:"captain_user_id"`
}

type SubPoolRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// StartDraft godoc
// @Summary Start a draft session (operator)
// @Description Materializes pick order and player pool from the season plan plus live signup data. Starting over a closed session begins a new generation; history is kept.
// @Tags Draft
// @Accept json
// @Produce json
// @Param competition_id path int true "Competition ID"
// @Param draft body StartDraftRequest true "Draft setup"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /leagues/{competition_id}/draft [post]
// @Security BearerAuth
func (dc *DraftController) StartDraft(c *gin.Context) {
	competitionID, err := parseIDParam(c, "competition_id")
	if err != nil {
		responses.BadRequest(c, "Invalid competition ID")
		return
	}
	actorID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	var req StartDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	session, err := dc.engine.Start(StartInput{
		CompetitionID:      competitionID,
		PickOrderTeamIDs:   req.PickOrderTeamIDs,
		PoolUserIDs:        req.PoolUserIDs,
		DraftMode:          req.DraftMode,
		Rounds:             req.Rounds,
		IncludeAllEligible: req.IncludeAllEligible,
		ActorUserID:        actorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCompetitionNotFound):
			responses.NotFound(c, "Competition")
		case errors.Is(err, ErrNotALeague), errors.Is(err, ErrInvalidRounds), errors.Is(err, ErrUnknownTeam):
			responses.BadRequest(c, err.Error())
		default:
			responses.InternalServerError(c, "Failed to start draft")
		}
		return
	}

	dc.dispatcher.Dispatch(context.Background(),
		events.New(events.TypeDraftStarted, competitionID, 0, 0, actorID))
	responses.SendOutcome(c, http.StatusCreated, responses.CodeDraftStarted, "Draft started", session)
}

// GetDraft godoc
// @Summary Get the current draft session with its pick log
// @Tags Draft
// @Produce json
// @Param competition_id path int true "Competition ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /leagues/{competition_id}/draft [get]
// @Security BearerAuth
func (dc *DraftController) GetDraft(c *gin.Context) {
	competitionID, err := parseIDParam(c, "competition_id")
	if err != nil {
		responses.BadRequest(c, "Invalid competition ID")
		return
	}
	session, err := dc.repo.GetCurrentSession(competitionID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch draft session")
		return
	}
	if session == nil {
		responses.NotFound(c, "Draft session")
		return
	}
	picks, err := dc.repo.ListPicks(competitionID, session.Generation)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch picks")
		return
	}

	payload := gin.H{"session": session, "picks": picks}
	if next, ok := ExpectedNextTeam(session, len(picks)); ok {
		payload["expected_next_team_id"] = next
	}
	responses.SendSuccess(c, http.StatusOK, "", payload)
}

// Pick godoc
// @Summary Record a draft pick
// @Description Allowed for league managers and for the registered captain of the target team. Appends to the pick log, then assigns team membership.
// @Tags Draft
// @Accept json
// @Produce json
// @Param competition_id path int true "Competition ID"
// @Param pick body PickRequest true "Pick"
// @Success 201 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /leagues/{competition_id}/draft/picks [post]
// @Security BearerAuth
func (dc *DraftController) Pick(c *gin.Context) {
	competitionID, err := parseIDParam(c, "competition_id")
	if err != nil {
		responses.BadRequest(c, "Invalid competition ID")
		return
	}
	actorID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	var req PickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	allowed := rmiddleware.HasRole(c, user.RoleLeagueManager) || rmiddleware.HasRole(c, user.RoleAdmin)
	if !allowed {
		isCaptain, err := dc.registry.IsCaptainOfTeam(actorID, req.TeamID)
		if err != nil {
			responses.InternalServerError(c, "Failed to verify captaincy")
			return
		}
		allowed = isCaptain
	}
	if !allowed {
		responses.Forbidden(c, "Only league managers or the team captain can pick")
		return
	}

	pick, err := dc.engine.Pick(competitionID, req.TeamID, req.UserID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoActiveSession), errors.Is(err, ErrDraftNotOpen):
			responses.SendErrorCode(c, http.StatusConflict, responses.CodeDraftNotOpen,
				"Draft session is not open", nil)
		case errors.Is(err, ErrAlreadyPicked):
			responses.SendErrorCode(c, http.StatusConflict, responses.CodePlayerAlreadyDrafted,
				"Player was already picked in this draft", nil)
		case errors.Is(err, ErrTeamNotInDraft), errors.Is(err, ErrPlayerNotInPool):
			responses.SendError(c, http.StatusConflict, err.Error())
		default:
			responses.InternalServerError(c, "Failed to record pick")
		}
		return
	}

	// Second step of the pick protocol: the membership. A failure here leaves
	// the pick in the log so the roster can be reconstructed by replay.
	if err := dc.memberships.AddMembership(req.TeamID, req.UserID); err != nil {
		responses.SendErrorCode(c, http.StatusInternalServerError, responses.CodeDraftPickSaved,
			"Pick recorded but membership assignment failed; replay the pick log", pick)
		return
	}

	dc.dispatcher.Dispatch(context.Background(),
		events.New(events.TypeDraftPickSaved, competitionID, req.TeamID, req.UserID, actorID))
	responses.SendOutcome(c, http.StatusCreated, responses.CodeDraftPickSaved, "Pick saved", pick)
}

// CloseDraft godoc
// @Summary Close the current draft session (operator)
// @Description Idempotent: closing an already closed session succeeds.
// @Tags Draft
// @Produce json
// @Param competition_id path int true "Competition ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /leagues/{competition_id}/draft/close [post]
// @Security BearerAuth
func (dc *DraftController) CloseDraft(c *gin.Context) {
	competitionID, err := parseIDParam(c, "competition_id")
	if err != nil {
		responses.BadRequest(c, "Invalid competition ID")
		return
	}
	actorID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	session, err := dc.engine.Close(competitionID, actorID)
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			responses.NotFound(c, "Draft session")
			return
		}
		responses.InternalServerError(c, "Failed to close draft")
		return
	}

	dc.dispatcher.Dispatch(context.Background(),
		events.New(events.TypeDraftClosed, competitionID, 0, 0, actorID))
	responses.SendOutcome(c, http.StatusOK, responses.CodeDraftClosed, "Draft closed", session)
}

// SetCaptain godoc
// @Summary Set or clear a team's captain (operator)
// @Tags Draft
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param captain body SetCaptainRequest true "Captain"
// @Success 200 {object} responses.SuccessResponse
// @Router /teams/{team_id}/captain [put]
// @Security BearerAuth
func (dc *DraftController) SetCaptain(c *gin.Context) {
	teamID, err := parseIDParam(c, "team_id")
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}
	actorID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	var req SetCaptainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	control, err := dc.registry.SetCaptain(teamID, req.CaptainUserID, actorID)
	if err != nil {
		responses.InternalServerError(c, "Failed to update captain")
		return
	}

	var captainID uint
	if req.CaptainUserID != nil {
		captainID = *req.CaptainUserID
	}
	dc.dispatcher.Dispatch(context.Background(),
		events.New(events.TypeCaptainChanged, 0, teamID, captainID, actorID))
	responses.SendOutcome(c, http.StatusOK, responses.CodeCaptainSaved, "Captain updated", control)
}

// AddSubPoolMember godoc
// @Summary Add a player to a team's substitute bench
// @Description Allowed for league managers and the team captain. Idempotent.
// @Tags Draft
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param member body SubPoolRequest true "Member"
// @Success 200 {object} responses.SuccessResponse
// @Router /teams/{team_id}/subpool [post]
// @Security BearerAuth
func (dc *DraftController) AddSubPoolMember(c *gin.Context) {
	dc.mutateSubPool(c, true)
}

// RemoveSubPoolMember godoc
// @Summary Remove a player from a team's substitute bench
// @Description Allowed for league managers and the team captain. Idempotent.
// @Tags Draft
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param member body SubPoolRequest true "Member"
// @Success 200 {object} responses.SuccessResponse
// @Router /teams/{team_id}/subpool/remove [post]
// @Security BearerAuth
func (dc *DraftController) RemoveSubPoolMember(c *gin.Context) {
	dc.mutateSubPool(c, false)
}

func (dc *DraftController) mutateSubPool(c *gin.Context, add bool) {
	teamID, err := parseIDParam(c, "team_id")
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}
	actorID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	var req SubPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	allowed := rmiddleware.HasRole(c, user.RoleLeagueManager) || rmiddleware.HasRole(c, user.RoleAdmin)
	if !allowed {
		isCaptain, err := dc.registry.IsCaptainOfTeam(actorID, teamID)
		if err != nil {
			responses.InternalServerError(c, "Failed to verify captaincy")
			return
		}
		allowed = isCaptain
	}
	if !allowed {
		responses.Forbidden(c, "Only league managers or the team captain can manage the bench")
		return
	}

	var control *CaptainControl
	if add {
		control, err = dc.registry.AddSubPoolMember(teamID, req.UserID, actorID)
	} else {
		control, err = dc.registry.RemoveSubPoolMember(teamID, req.UserID, actorID)
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to update sub-pool")
		return
	}
	responses.SendOutcome(c, http.StatusOK, responses.CodeSubPoolUpdated, "Sub-pool updated", control)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
