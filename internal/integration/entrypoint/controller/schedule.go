// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budget-engine/backend/internal/application/usecase/schedule"
	domainerror "github.com/budget-engine/backend/internal/domain/error"
	"github.com/budget-engine/backend/internal/integration/entrypoint/dto"
)

// ScheduleController handles recurrence expansion endpoints.
type ScheduleController struct {
	expander     *schedule.RecurrenceExpander
	debtExpander *schedule.DebtOccurrenceExpander
}

// NewScheduleController creates a new schedule controller instance.
func NewScheduleController(
	expander *schedule.RecurrenceExpander,
	debtExpander *schedule.DebtOccurrenceExpander,
) *ScheduleController {
	return &ScheduleController{
		expander:     expander,
		debtExpander: debtExpander,
	}
}

// ExpandOccurrences handles POST /occurrences/expand requests. The request
// carries either one recurring item or one debt and a date window; the
// response lists every occurrence date inside the window.
func (c *ScheduleController) ExpandOccurrences(ctx *gin.Context) {
	// Parse request body
	var req dto.ExpandOccurrencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}
	if err := req.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	windowStart, err := dto.ParseDate("window_start", req.WindowStart)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	windowEnd, err := dto.ParseDate("window_end", req.WindowEnd)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	// Expand whichever definition the request carries
	var dates []time.Time
	if req.Item != nil {
		item, convErr := req.Item.ToEntity()
		if convErr != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: convErr.Error()})
			return
		}
		dates, err = c.expander.Expand(item, windowStart, windowEnd)
	} else {
		debt, convErr := req.Debt.ToEntity()
		if convErr != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: convErr.Error()})
			return
		}
		dates, err = c.debtExpander.Expand(debt, windowStart, windowEnd)
	}
	if err != nil {
		c.handleScheduleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpandOccurrencesResponse(dates))
}

// handleScheduleError maps schedule errors to HTTP responses.
func (c *ScheduleController) handleScheduleError(ctx *gin.Context, err error) {
	var schedErr *domainerror.ScheduleError
	if errors.As(err, &schedErr) {
		statusCode := c.getStatusCodeForScheduleError(schedErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: schedErr.Message,
			Code:  string(schedErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForScheduleError maps schedule error codes to HTTP status codes.
func (c *ScheduleController) getStatusCodeForScheduleError(code domainerror.ScheduleErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingAnchor,
		domainerror.ErrCodeSemiMonthlyAnchors,
		domainerror.ErrCodeInvalidAnchorDay,
		domainerror.ErrCodeDebtMissingDueReference,
		domainerror.ErrCodeInvalidWindow:
		return http.StatusBadRequest
	case domainerror.ErrCodeUnknownFrequency:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
