package competition

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jverbeek/hockeyclub/pkg/responses"
	"github.com/jverbeek/hockeyclub/pkg/validator"
)

// CompetitionController handles competition and team HTTP requests.
type CompetitionController struct {
	repo CompetitionRepository
}

// NewCompetitionController creates a new competition controller.
func NewCompetitionController(repo CompetitionRepository) *CompetitionController {
	return &CompetitionController{repo: repo}
}

// --- DTOs ---

type CreateCompetitionRequest struct {
	Type     string              `json:"type" binding:"required,oneof=single_game tournament dvhl"`
	Title    string              `json:"title" binding:"required,min=3,max=200"`
	StartsAt time.Time           `json:"starts_at" binding:"required"`
	Teams    []CreateTeamRequest `json:"teams" binding:"omitempty,dive"`
}

type CreateTeamRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	ColorTag   string `json:"color_tag" binding:"omitempty,max=30"`
	RosterMode string `json:"roster_mode" binding:"omitempty,max=30"`
}

type AddMemberRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// CreateCompetition godoc
// @Summary Create a competition
// @Description Creates a competition with optional initial teams. The type is immutable after creation.
// @Tags Competitions
// @Accept json
// @Produce json
// @Param competition body CreateCompetitionRequest true "Competition"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /competitions [post]
// @Security BearerAuth
func (cc *CompetitionController) CreateCompetition(c *gin.Context) {
	var req CreateCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	comp := Competition{
		Type:     req.Type,
		Title:    req.Title,
		StartsAt: req.StartsAt,
	}
	for _, t := range req.Teams {
		comp.Teams = append(comp.Teams, Team{
			Name:       t.Name,
			ColorTag:   t.ColorTag,
			RosterMode: t.RosterMode,
		})
	}

	if err := cc.repo.CreateCompetition(&comp); err != nil {
		responses.InternalServerError(c, "Failed to create competition")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Competition created", comp)
}

// GetCompetition godoc
// @Summary Get a competition
// @Tags Competitions
// @Produce json
// @Param competition_id path int true "Competition ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /competitions/{competition_id} [get]
func (cc *CompetitionController) GetCompetition(c *gin.Context) {
	id, err := parseIDParam(c, "competition_id")
	if err != nil {
		responses.BadRequest(c, "Invalid competition ID")
		return
	}
	comp, err := cc.repo.GetCompetitionByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch competition")
		return
	}
	if comp == nil {
		responses.NotFound(c, "Competition")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", comp)
}

// GetAllCompetitions godoc
// @Summary List competitions
// @Tags Competitions
// @Produce json
// @Param type query string false "Filter by type (single_game, tournament, dvhl)"
// @Success 200 {object} responses.SuccessResponse
// @Router /competitions [get]
func (cc *CompetitionController) GetAllCompetitions(c *gin.Context) {
	compType := c.Query("type")
	if compType != "" && !IsValidType(compType) {
		responses.BadRequest(c, "Unknown competition type")
		return
	}
	comps, err := cc.repo.GetAllCompetitions(compType)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch competitions")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", comps)
}

// AddTeam godoc
// @Summary Add a team to a competition
// @Tags Competitions
// @Accept json
// @Produce json
// @Param competition_id path int true "Competition ID"
// @Param team body CreateTeamRequest true "Team"
// @Success 201 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /competitions/{competition_id}/teams [post]
// @Security BearerAuth
func (cc *CompetitionController) AddTeam(c *gin.Context) {
	compID, err := parseIDParam(c, "competition_id")
	if err != nil {
		responses.BadRequest(c, "Invalid competition ID")
		return
	}
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	comp, err := cc.repo.GetCompetitionByID(compID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch competition")
		return
	}
	if comp == nil {
		responses.NotFound(c, "Competition")
		return
	}

	team := Team{
		CompetitionID: compID,
		Name:          req.Name,
		ColorTag:      req.ColorTag,
		RosterMode:    req.RosterMode,
	}
	if err := cc.repo.CreateTeam(&team); err != nil {
		responses.InternalServerError(c, "Failed to create team")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created", team)
}

// AddMember godoc
// @Summary Add a member to a team
// @Description Direct assignment outside the draft. Adding an existing member is a no-op.
// @Tags Competitions
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param member body AddMemberRequest true "Member"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /teams/{team_id}/members [post]
// @Security BearerAuth
func (cc *CompetitionController) AddMember(c *gin.Context) {
	teamID, err := parseIDParam(c, "team_id")
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}
	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	team, err := cc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}

	if err := cc.repo.AddMembership(teamID, req.UserID); err != nil {
		responses.InternalServerError(c, "Failed to add member")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member added", nil)
}

// RemoveMember godoc
// @Summary Remove a member from a team
// @Tags Competitions
// @Produce json
// @Param team_id path int true "Team ID"
// @Param user_id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /teams/{team_id}/members/{user_id} [delete]
// @Security BearerAuth
func (cc *CompetitionController) RemoveMember(c *gin.Context) {
	teamID, err := parseIDParam(c, "team_id")
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}
	if err := cc.repo.RemoveMembership(teamID, userID); err != nil {
		responses.InternalServerError(c, "Failed to remove member")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member removed", nil)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
