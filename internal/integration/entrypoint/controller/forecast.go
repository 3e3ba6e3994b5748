package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budget-engine/backend/internal/application/usecase/forecast"
	"github.com/budget-engine/backend/internal/application/usecase/paycheck"
	"github.com/budget-engine/backend/internal/domain/entity"
	domainerror "github.com/budget-engine/backend/internal/domain/error"
	"github.com/budget-engine/backend/internal/integration/entrypoint/dto"
)

// ForecastController handles paycheck-period and breakdown endpoints.
type ForecastController struct {
	buildPeriodsUseCase *paycheck.BuildPeriodsUseCase
	computeUseCase      *forecast.ComputeBreakdownsUseCase
	getForecastUseCase  *forecast.GetForecastUseCase
}

// NewForecastController creates a new forecast controller instance.
func NewForecastController(
	buildPeriodsUseCase *paycheck.BuildPeriodsUseCase,
	computeUseCase *forecast.ComputeBreakdownsUseCase,
	getForecastUseCase *forecast.GetForecastUseCase,
) *ForecastController {
	return &ForecastController{
		buildPeriodsUseCase: buildPeriodsUseCase,
		computeUseCase:      computeUseCase,
		getForecastUseCase:  getForecastUseCase,
	}
}

// BuildPeriods handles POST /paycheck-periods requests. The request carries
// income definitions inline; nothing is persisted.
func (c *ForecastController) BuildPeriods(ctx *gin.Context) {
	// Parse request body
	var req dto.BuildPaycheckPeriodsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	referenceDate, err := dto.ParseDate("reference_date", req.ReferenceDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	items := make([]*entity.RecurringItem, 0, len(req.IncomeItems))
	for i := range req.IncomeItems {
		item, convErr := req.IncomeItems[i].ToEntity()
		if convErr != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: convErr.Error()})
			return
		}
		items = append(items, item)
	}

	// Execute use case
	output, err := c.buildPeriodsUseCase.Execute(ctx.Request.Context(), paycheck.BuildPeriodsInput{
		IncomeItems:   items,
		ReferenceDate: referenceDate,
	})
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBuildPaycheckPeriodsResponse(output.Periods, output.Warnings))
}

// ComputeBreakdowns handles POST /forecast/breakdowns requests. The full
// financial snapshot arrives inline; periods are derived from the income
// items among the recurring definitions.
func (c *ForecastController) ComputeBreakdowns(ctx *gin.Context) {
	// Parse request body
	var req dto.ComputeBreakdownsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input, err := req.ToComputeInput()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	incomeItems := make([]*entity.RecurringItem, 0, len(input.RecurringItems))
	for _, item := range input.RecurringItems {
		if item.IsIncome() {
			incomeItems = append(incomeItems, item)
		}
	}

	// Build periods, then compute breakdowns over them
	periods, err := c.buildPeriodsUseCase.Execute(ctx.Request.Context(), paycheck.BuildPeriodsInput{
		IncomeItems:   incomeItems,
		ReferenceDate: input.Now,
	})
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}
	input.Periods = periods.Periods

	output, err := c.computeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToForecastResponse(output.Breakdowns, periods.Warnings, false))
}

// GetForecast handles GET /forecast/breakdowns requests for a stored user.
// The reference date defaults to today and can be overridden by query param.
func (c *ForecastController) GetForecast(ctx *gin.Context) {
	if c.getForecastUseCase == nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Stored forecasts are unavailable without a database",
		})
		return
	}

	userIDStr := ctx.Query("user_id")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid user_id format",
		})
		return
	}

	referenceDate := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := ctx.Query("reference_date"); raw != "" {
		referenceDate, err = dto.ParseDate("reference_date", raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
	}

	// Execute use case
	output, err := c.getForecastUseCase.Execute(ctx.Request.Context(), forecast.GetForecastInput{
		UserID:        userID,
		ReferenceDate: referenceDate,
	})
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToForecastResponse(output.Breakdowns, output.Warnings, output.FromCache))
}

// handleForecastError maps forecast and schedule errors to HTTP responses.
func (c *ForecastController) handleForecastError(ctx *gin.Context, err error) {
	var forecastErr *domainerror.ForecastError
	if errors.As(err, &forecastErr) {
		statusCode := c.getStatusCodeForForecastError(forecastErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: forecastErr.Message,
			Code:  string(forecastErr.Code),
		})
		return
	}

	var schedErr *domainerror.ScheduleError
	if errors.As(err, &schedErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
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

// getStatusCodeForForecastError maps forecast error codes to HTTP status codes.
func (c *ForecastController) getStatusCodeForForecastError(code domainerror.ForecastErrorCode) int {
	switch code {
	case domainerror.ErrCodeNegativeAvailable,
		domainerror.ErrCodeReservedExceedsAvailable,
		domainerror.ErrCodeMissingReferenceDate,
		domainerror.ErrCodeTooManyManualPlans:
		return http.StatusBadRequest
	case domainerror.ErrCodePreferencesNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
