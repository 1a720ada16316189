package api

import (
	"net/http"

	"github.com/lurelab/lurelab-backend/dto"
	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/pure_utils"
	"github.com/lurelab/lurelab-backend/usecases"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func handleSubmitReport(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.SubmitReportBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		employeeId, err := uuid.Parse(body.EmployeeId)
		if err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "invalid employee_id"))
			return
		}

		result, err := uc.NewReportUsecase().SubmitReport(ctx, models.SubmitReportInput{
			EmployeeId:         employeeId,
			ClaimedChannelType: models.ChannelTypeFrom(body.ChannelType),
			WindowStart:        body.WindowStart,
			WindowEnd:          body.WindowEnd,
		})
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, dto.SubmitReportResponse{
			Message:   result.Message,
			AttemptId: result.Attempt.Id.String(),
		})
	}
}

func handleListReportAttempts(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		employeeId, err := uuid.Parse(c.Query("employee_id"))
		if err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "invalid employee_id"))
			return
		}

		attempts, err := uc.NewReportUsecase().ListAttempts(ctx, employeeId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, pure_utils.Map(attempts, dto.AdaptReportAttemptDto))
	}
}

func handleVerifyReport(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		attemptId, err := uuidParam(c, "attemptId")
		if presentError(ctx, c, err) {
			return
		}
		var body dto.VerifyReportBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		eventId, err := uuid.Parse(body.EventId)
		if err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "invalid event_id"))
			return
		}

		attempt, err := uc.NewReportUsecase().Verify(ctx, attemptId, eventId, body.Note)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptReportAttemptDto(attempt))
	}
}

func handleValidateReportWithoutEvent(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		attemptId, err := uuidParam(c, "attemptId")
		if presentError(ctx, c, err) {
			return
		}
		var body dto.ReviewReportBody
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&body); err != nil {
				presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
				return
			}
		}

		attempt, err := uc.NewReportUsecase().ValidateWithoutEvent(ctx, attemptId, body.Note)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptReportAttemptDto(attempt))
	}
}

func handleRejectReport(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		attemptId, err := uuidParam(c, "attemptId")
		if presentError(ctx, c, err) {
			return
		}
		var body dto.ReviewReportBody
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&body); err != nil {
				presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
				return
			}
		}

		attempt, err := uc.NewReportUsecase().Reject(ctx, attemptId, body.Note)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptReportAttemptDto(attempt))
	}
}
