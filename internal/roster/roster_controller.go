package roster

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jverbeek/hockeyclub/internal/middleware"
	"github.com/jverbeek/hockeyclub/pkg/events"
	"github.com/jverbeek/hockeyclub/pkg/responses"
	"github.com/jverbeek/hockeyclub/pkg/validator"
)

// RosterController handles player and jersey number HTTP requests.
type RosterController struct {
	players    PlayerRepository
	alloc      *Allocator
	workflow   *RequestWorkflow
	dispatcher events.Dispatcher
}

// NewRosterController creates a new roster controller.
func NewRosterController(players PlayerRepository, alloc *Allocator, workflow *RequestWorkflow, dispatcher events.Dispatcher) *RosterController {
	return &RosterController{players: players, alloc: alloc, workflow: workflow, dispatcher: dispatcher}
}

// --- DTOs ---

type CreatePlayerRequest struct {
	UserID                       uint   `json:"user_id" binding:"required"`
	FullName                     string `json:"full_name" binding:"required,min=2,max=120"`
	RosterID                     string `json:"roster_id" binding:"required,max=60"`
	JerseyNumber                 *int   `json:"jersey_number" binding:"omitempty,gte=1,lte=99"`
	PrimarySubRoster             string `json:"primary_sub_roster" binding:"omitempty,oneof=gold white black"`
	AllowCrossColorJerseyOverlap bool   `json:"allow_cross_color_jersey_overlap"`
}

type AssignNumberRequest struct {
	FullName       string `json:"full_name" binding:"required,min=2,max=120"`
	RosterID       string `json:"roster_id" binding:"required,max=60"`
	JerseyNumber   *int   `json:"jersey_number" binding:"omitempty,gte=1,lte=99"`
	ActivityStatus string `json:"activity_status" binding:"required,oneof=active inactive"`
	ForceOverride  bool   `json:"force_override"`
}

type CreateNumberRequestRequest struct {
	JerseyNumber int `json:"jersey_number" binding:"required,gte=1,lte=99"`
}

type ReviewNumberRequestRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	Notes    string `json:"notes" binding:"max=500"`
}

// CreatePlayer godoc
// @Summary Register a player on a roster
// @Description Creates the authoritative roster record for a club member. The initial jersey number, if given, is validated through the allocator.
// @Tags Roster
// @Accept json
// @Produce json
// @Param player body CreatePlayerRequest true "Player"
// @Success 201 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /players [post]
// @Security BearerAuth
func (rc *RosterController) CreatePlayer(c *gin.Context) {
	var req CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	existing, err := rc.players.GetPlayerByUserID(req.UserID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check player")
		return
	}
	if existing != nil {
		responses.SendError(c, http.StatusConflict, "Player already registered")
		return
	}

	player := &Player{
		UserID:                       req.UserID,
		FullName:                     req.FullName,
		RosterID:                     req.RosterID,
		PrimarySubRoster:             req.PrimarySubRoster,
		AllowCrossColorJerseyOverlap: req.AllowCrossColorJerseyOverlap,
		ActivityStatus:               ActivityActive,
	}
	if err := rc.players.SavePlayer(player); err != nil {
		responses.InternalServerError(c, "Failed to create player")
		return
	}

	if req.JerseyNumber != nil {
		result, err := rc.alloc.Assign(AssignInput{
			UserID:         req.UserID,
			FullName:       req.FullName,
			RosterID:       req.RosterID,
			JerseyNumber:   req.JerseyNumber,
			ActivityStatus: ActivityActive,
		})
		if err != nil {
			responses.InternalServerError(c, "Failed to assign jersey number")
			return
		}
		if !result.OK {
			// Player exists without a number; the conflict is reported so the
			// operator can pick another.
			responses.SendErrorCode(c, http.StatusConflict, responses.CodeJerseyNumberUnavailable,
				"Jersey number is already taken", result.Conflict)
			return
		}
	}
	responses.SendSuccess(c, http.StatusCreated, "Player registered", player)
}

// AssignNumber godoc
// @Summary Assign a jersey number (operator)
// @Description Validates the number against the roster scope and persists the player record. force_override accepts a known collision.
// @Tags Roster
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param assignment body AssignNumberRequest true "Assignment"
// @Success 200 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /players/{user_id}/jersey [put]
// @Security BearerAuth
func (rc *RosterController) AssignNumber(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}
	var req AssignNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	result, err := rc.alloc.Assign(AssignInput{
		UserID:         uint(userID),
		FullName:       req.FullName,
		RosterID:       req.RosterID,
		JerseyNumber:   req.JerseyNumber,
		ActivityStatus: req.ActivityStatus,
		ForceOverride:  req.ForceOverride,
	})
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			responses.NotFound(c, "Player")
			return
		}
		responses.InternalServerError(c, "Failed to assign jersey number")
		return
	}
	if !result.OK {
		responses.SendErrorCode(c, http.StatusConflict, responses.CodeJerseyNumberUnavailable,
			"Jersey number is already taken by "+result.Conflict.Name, result.Conflict)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	rc.dispatcher.Dispatch(context.Background(),
		events.New(events.TypeJerseyNumberAssigned, 0, 0, uint(userID), actorID))
	responses.SendOutcome(c, http.StatusOK, responses.CodeJerseyNumberSaved, "Jersey number saved", nil)
}

// AvailableNumbers godoc
// @Summary List available jersey numbers
// @Tags Roster
// @Produce json
// @Param roster_id path string true "Roster ID"
// @Param sub_roster query string false "Sub-roster color group"
// @Success 200 {object} responses.SuccessResponse
// @Router /rosters/{roster_id}/numbers [get]
// @Security BearerAuth
func (rc *RosterController) AvailableNumbers(c *gin.Context) {
	rosterID := c.Param("roster_id")
	subRoster := c.Query("sub_roster")
	options, err := rc.workflow.AvailableNumbers(rosterID, subRoster)
	if err != nil {
		responses.InternalServerError(c, "Failed to compute available numbers")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", options)
}

// CreateNumberRequest godoc
// @Summary Request a jersey number (self-service)
// @Description Auto-grants safe numbers immediately; sensitive numbers create a pending request for operator review.
// @Tags Roster
// @Accept json
// @Produce json
// @Param request body CreateNumberRequestRequest true "Request"
// @Success 200 {object} responses.SuccessResponse
// @Success 201 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /jersey-requests [post]
// @Security BearerAuth
func (rc *RosterController) CreateNumberRequest(c *gin.Context) {
	actorID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	var req CreateNumberRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	result, err := rc.workflow.CreateRequest(actorID, req.JerseyNumber)
	if err != nil {
		switch {
		case errors.Is(err, ErrPlayerNotFound):
			responses.NotFound(c, "Player")
		case errors.Is(err, ErrNumberUnavailable):
			responses.SendErrorCode(c, http.StatusConflict, responses.CodeJerseyNumberUnavailable,
				"Jersey number is not available", nil)
		default:
			responses.InternalServerError(c, "Failed to create jersey number request")
		}
		return
	}
	if result.AutoGranted {
		responses.SendOutcome(c, http.StatusOK, responses.CodeJerseyNumberSaved, "Jersey number saved", nil)
		return
	}
	responses.SendOutcome(c, http.StatusCreated, responses.CodeJerseyRequestPending,
		"Jersey number request submitted for review", result.Request)
}

// ReviewNumberRequest godoc
// @Summary Review a jersey number request (operator)
// @Tags Roster
// @Accept json
// @Produce json
// @Param request_id path string true "Request public ID"
// @Param review body ReviewNumberRequestRequest true "Decision"
// @Success 200 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /jersey-requests/{request_id}/review [post]
// @Security BearerAuth
func (rc *RosterController) ReviewNumberRequest(c *gin.Context) {
	actorID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	var req ReviewNumberRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	result, err := rc.workflow.Review(c.Param("request_id"), req.Decision, actorID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			responses.NotFound(c, "Jersey number request")
		case errors.Is(err, ErrRequestAlreadyReviewed):
			responses.SendError(c, http.StatusConflict, "Request was already reviewed")
		case errors.Is(err, ErrNumberUnavailable):
			responses.SendErrorCode(c, http.StatusConflict, responses.CodeJerseyNumberUnavailable,
				"Roster changed since the request was filed; request remains pending", result.Conflict)
		default:
			responses.InternalServerError(c, "Failed to review request")
		}
		return
	}

	rc.dispatcher.Dispatch(context.Background(),
		events.New(events.TypeJerseyRequestReviewed, 0, 0, result.Request.UserID, actorID))
	responses.SendOutcome(c, http.StatusOK, responses.CodeJerseyRequestReviewed, "Request reviewed", result.Request)
}

// ListNumberRequests godoc
// @Summary List jersey number requests (operator)
// @Tags Roster
// @Produce json
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Success 200 {object} responses.SuccessResponse
// @Router /jersey-requests [get]
// @Security BearerAuth
func (rc *RosterController) ListNumberRequests(c *gin.Context) {
	reqs, err := rc.workflow.requests.ListRequests(c.Query("status"))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch requests")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", reqs)
}
