package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Outcome codes returned in the "code" field of every mutating response. The
// mobile app and the site both key off these rather than the human message.
const (
	CodeJerseyNumberSaved       = "jersey_number_saved"
	CodeJerseyNumberUnavailable = "jersey_number_unavailable"
	CodeJerseyRequestPending    = "jersey_request_pending"
	CodeJerseyRequestReviewed   = "jersey_request_reviewed"
	CodeSeasonPlanSaved         = "season_plan_saved"
	CodeSignupSaved             = "signup_saved"
	CodeSignupWindowClosed      = "signup_window_closed"
	CodeCaptainSaved            = "captain_saved"
	CodeSubPoolUpdated          = "sub_pool_updated"
	CodeDraftStarted            = "draft_started"
	CodeDraftPickSaved          = "draft_pick_saved"
	CodePlayerAlreadyDrafted    = "player_already_drafted"
	CodeDraftNotOpen            = "draft_not_open"
	CodeDraftClosed             = "draft_closed"
)

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Status  string      `json:"status"` // always "success"
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Status  string      `json:"status"` // "error" for client faults, "fail" for server faults
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SendSuccess sends a success envelope without an outcome code.
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	SendOutcome(c, statusCode, "", message, data)
}

// SendOutcome sends a success envelope carrying a machine-readable outcome code.
func SendOutcome(c *gin.Context, statusCode int, code, message string, data interface{}) {
	if message == "" {
		message = "Operation completed successfully"
	}
	c.JSON(statusCode, SuccessResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// SendError sends an error envelope and aborts the request.
func SendError(c *gin.Context, statusCode int, message string) {
	SendErrorCode(c, statusCode, "", message, nil)
}

// SendErrorCode sends an error envelope with an outcome code and optional details.
func SendErrorCode(c *gin.Context, statusCode int, code, message string, details interface{}) {
	statusText := "error"
	if statusCode >= http.StatusInternalServerError {
		statusText = "fail"
	}
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Status:  statusText,
		Code:    code,
		Message: message,
		Details: details,
	})
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, resourceName string) {
	SendError(c, http.StatusNotFound, resourceName+" not found")
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized access"
	}
	SendError(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access to this resource is forbidden"
	}
	SendError(c, http.StatusForbidden, message)
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request payload or parameters"
	}
	SendError(c, http.StatusBadRequest, message)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "An unexpected error occurred on the server"
	}
	SendError(c, http.StatusInternalServerError, message)
}
