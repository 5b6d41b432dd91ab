package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jverbeek/hockeyclub/config"
	"github.com/jverbeek/hockeyclub/pkg/responses"
	"github.com/jverbeek/hockeyclub/pkg/token"
	"github.com/jverbeek/hockeyclub/pkg/utils"
	"github.com/jverbeek/hockeyclub/pkg/validator"
)

// UserController handles login and token refresh.
type UserController struct {
	repo UserRepository
	cfg  *config.Config
}

// NewUserController creates a new user controller.
func NewUserController(repo UserRepository, cfg *config.Config) *UserController {
	return &UserController{repo: repo, cfg: cfg}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login godoc
// @Summary Log in with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} responses.SuccessResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/login [post]
func (uc *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	u, err := uc.repo.GetUserByUsername(req.Username)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up user")
		return
	}
	if u == nil || !utils.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "Invalid username or password")
		return
	}

	uc.issueTokens(c, u)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "Refresh token"
// @Success 200 {object} responses.SuccessResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/refresh [post]
func (uc *UserController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorCode(c, http.StatusBadRequest, "", "Invalid request payload", validator.ParseError(err))
		return
	}

	userID, err := utils.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		responses.Unauthorized(c, "Invalid refresh token")
		return
	}
	u, err := uc.repo.GetUserByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up user")
		return
	}
	if u == nil {
		responses.Unauthorized(c, "Invalid refresh token")
		return
	}

	uc.issueTokens(c, u)
}

func (uc *UserController) issueTokens(c *gin.Context, u *User) {
	primaryRole := ""
	if len(u.Roles) > 0 {
		primaryRole = u.Roles[0].Name
	}

	access, err := token.GenerateJWT(u.ID, primaryRole, uc.cfg.JWT.AccessTokenSecret, uc.cfg.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue access token")
		return
	}
	refresh, err := utils.GenerateRefreshToken(u.ID, uc.cfg.JWT.RefreshTokenExpiryDays)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue refresh token")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged in", gin.H{
		"access_token":  access,
		"refresh_token": refresh,
		"user":          u,
	})
}
