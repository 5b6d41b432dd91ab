package league

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jverbeek/hockeyclub/internal/middleware"
	"github.com/jverbeek/hockeyclub/internal/user"
	"github.com/jverbeek/hockeyclub/pkg/events"
	"github.com/jverbeek/hockeyclub/pkg/responses"
	"github.com/jverbeek/hockeyclub/pkg/rmiddleware"
	"github.com/jverbeek/hockeyclub/pkg/validator"
)

// LeagueController handles season plan and signup HTTP requests.
type LeagueController struct {
	repo       LeagueRepository
	plans      *PlanManager
	ledger     *Ledger
	dispatcher events.Dispatcher
}

// NewLeagueController creates a new league controller.
func NewLeagueController(repo LeagueRepository, plans *PlanManager, ledger *Ledger, dispatcher events.Dispatcher) *LeagueController {
	return &LeagueController{repo: repo, plans: plans, ledger: ledger, dispatcher: dispatcher}
}

// --- DTOs ---

type UpsertPlanRequest struct {
	SignupClosesAt        *time.Time `json:"signup_closes_at"`
	CaptainSignupClosesAt *time.Time `json:"captain_signup_closes_at"`
	DesiredCaptainCount   int        `json:"desired_captain_count" binding:"gte=0"`
	Rounds                int        `json:"rounds" binding:"required,gte=1"`
	TeamOrderStrategy     string     `json:"team_order_strategy"`
	PlayerPoolStrategy    string     `json:"player_pool_strategy"`
	DraftMode             string     `json:"draft_mode"`
}

type UpsertIntentRequest struct {
	WantsCaptain bool   `json:"wants_captain"`
	Note         string `json:"note" binding:"max=500"`
	// UserID lets an operator sign a player up on their behalf; players
	// submitting for themselves leave it empty.
	UserID uint `json:"user_id"`
}

// UpsertPlan godoc
// @Summary Create or replace a season plan
// @Tags League
// @Accept json
// @Produce json
// @Param competition_id path int true "Competition ID"
// @Param plan body UpsertPlanRequest true "Plan"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /leagues/{competition_id}/plan [put]
// @Security BearerAuth
func (lc *LeagueController) UpsertPlan(c *gin.Context) {
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
	var req UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	plan, err := lc.plans.UpsertPlan(PlanInput{
		CompetitionID:         competitionID,
		SignupClosesAt:        req.SignupClosesAt,
		CaptainSignupClosesAt: req.CaptainSignupClosesAt,
		DesiredCaptainCount:   req.DesiredCaptainCount,
		Rounds:                req.Rounds,
		TeamOrderStrategy:     req.TeamOrderStrategy,
		PlayerPoolStrategy:    req.PlayerPoolStrategy,
		DraftMode:             req.DraftMode,
		ActorUserID:           actorID,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidRounds) || errors.Is(err, ErrInvalidCaptainCount) {
			responses.BadRequest(c, err.Error())
			return
		}
		responses.InternalServerError(c, "Failed to save season plan")
		return
	}

	lc.dispatcher.Dispatch(context.Background(),
		events.New(events.TypeSeasonPlanSaved, competitionID, 0, 0, actorID))
	responses.SendOutcome(c, http.StatusOK, responses.CodeSeasonPlanSaved, "Season plan saved", plan)
}

// GetPlan godoc
// @Summary Get a season plan
// @Tags League
// @Produce json
// @Param competition_id path int true "Competition ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /leagues/{competition_id}/plan [get]
// @Security BearerAuth
func (lc *LeagueController) GetPlan(c *gin.Context) {
	competitionID, err := parseIDParam(c, "competition_id")
	if err != nil {
		responses.BadRequest(c, "Invalid competition ID")
		return
	}
	plan, err := lc.repo.GetPlan(competitionID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch season plan")
		return
	}
	if plan == nil {
		responses.NotFound(c, "Season plan")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", plan)
}

// UpsertIntent godoc
// @Summary Sign up for a league
// @Description Records interest (and captain interest) inside the plan's open windows. League managers bypass the general window and may submit for another user.
// @Tags League
// @Accept json
// @Produce json
// @Param competition_id path int true "Competition ID"
// @Param intent body UpsertIntentRequest true "Intent"
// @Success 200 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /leagues/{competition_id}/signups [post]
// @Security BearerAuth
func (lc *LeagueController) UpsertIntent(c *gin.Context) {
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
	var req UpsertIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	isManager := rmiddleware.HasRole(c, user.RoleLeagueManager) || rmiddleware.HasRole(c, user.RoleAdmin)
	targetUserID := actorID
	if req.UserID != 0 && req.UserID != actorID {
		if !isManager {
			responses.Forbidden(c, "Only league managers can sign up other players")
			return
		}
		targetUserID = req.UserID
	}

	intent, err := lc.ledger.UpsertIntent(competitionID, targetUserID, req.WantsCaptain, req.Note, isManager)
	if err != nil {
		if errors.Is(err, ErrSignupWindowClosed) {
			responses.SendErrorCode(c, http.StatusConflict, responses.CodeSignupWindowClosed,
				"Signup window has closed", nil)
			return
		}
		responses.InternalServerError(c, "Failed to save signup")
		return
	}
	responses.SendOutcome(c, http.StatusOK, responses.CodeSignupSaved, "Signup saved", intent)
}

// ListIntents godoc
// @Summary List signups for a league (operator)
// @Tags League
// @Produce json
// @Param competition_id path int true "Competition ID"
// @Param captains query bool false "Only captain volunteers"
// @Success 200 {object} responses.SuccessResponse
// @Router /leagues/{competition_id}/signups [get]
// @Security BearerAuth
func (lc *LeagueController) ListIntents(c *gin.Context) {
	competitionID, err := parseIDParam(c, "competition_id")
	if err != nil {
		responses.BadRequest(c, "Invalid competition ID")
		return
	}
	if c.Query("captains") == "true" {
		volunteers, err := lc.ledger.CaptainVolunteers(competitionID)
		if err != nil {
			responses.InternalServerError(c, "Failed to fetch captain volunteers")
			return
		}
		responses.SendSuccess(c, http.StatusOK, "", volunteers)
		return
	}
	intents, err := lc.repo.ListIntents(competitionID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch signups")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", intents)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
