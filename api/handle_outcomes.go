package api

import (
	"net/http"
	"time"

	"github.com/lurelab/lurelab-backend/dto"
	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/pure_utils"
	"github.com/lurelab/lurelab-backend/usecases"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.Wrapf(models.BadParameterError, "invalid %s", name)
	}
	return id, nil
}

func handleRecordFailure(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		employeeId, err := uuidParam(c, "employeeId")
		if presentError(ctx, c, err) {
			return
		}
		eventId, err := uuidParam(c, "eventId")
		if presentError(ctx, c, err) {
			return
		}

		var body dto.RecordFailureBody
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&body); err != nil {
				presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
				return
			}
		}

		outcome, err := uc.NewOutcomeUsecase().RecordFailure(ctx, employeeId, eventId, body.FailedAt, body.Severe)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptParticipantOutcomeDto(outcome))
	}
}

func handleRecordReport(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		employeeId, err := uuidParam(c, "employeeId")
		if presentError(ctx, c, err) {
			return
		}
		eventId, err := uuidParam(c, "eventId")
		if presentError(ctx, c, err) {
			return
		}

		var body dto.RecordReportBody
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&body); err != nil {
				presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
				return
			}
		}
		reportedAt := pure_utils.PtrValueOrDefault(body.ReportedAt, time.Now())

		outcome, err := uc.NewOutcomeUsecase().RecordReport(ctx, employeeId, eventId, reportedAt)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptParticipantOutcomeDto(outcome))
	}
}

func handleSetResult(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		employeeId, err := uuidParam(c, "employeeId")
		if presentError(ctx, c, err) {
			return
		}
		eventId, err := uuidParam(c, "eventId")
		if presentError(ctx, c, err) {
			return
		}

		var body dto.SetResultBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		outcome, err := uc.NewOutcomeUsecase().SetResult(ctx, models.SetResultInput{
			EmployeeId:      employeeId,
			EventId:         eventId,
			Result:          models.OutcomeResultFrom(body.Result),
			FailedAt:        body.FailedAt,
			ReportedAt:      body.ReportedAt,
			IsSevereFailure: body.IsSevereFailure,
			HasFailedBefore: body.HasFailedBefore,
		})
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptParticipantOutcomeDto(outcome))
	}
}

func handleListOutcomes(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		filter, err := parseOutcomeFilter(c)
		if presentError(ctx, c, err) {
			return
		}

		outcomes, err := uc.NewOutcomeUsecase().ListOutcomes(ctx, filter)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, pure_utils.Map(outcomes, dto.AdaptParticipantOutcomeDto))
	}
}

func parseOutcomeFilter(c *gin.Context) (models.OutcomeFilter, error) {
	var filter models.OutcomeFilter

	if raw := c.Query("employee_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.Wrap(models.BadParameterError, "invalid employee_id")
		}
		filter.EmployeeId = &id
	}
	if raw := c.Query("area_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.Wrap(models.BadParameterError, "invalid area_id")
		}
		filter.AreaId = &id
	}
	if raw := c.Query("channel_type"); raw != "" {
		channelType := models.ChannelTypeFrom(raw)
		if channelType == models.ChannelUnknown {
			return filter, errors.Wrapf(models.BadParameterError, "unknown channel_type %s", raw)
		}
		filter.ChannelType = &channelType
	}
	if raw := c.Query("result"); raw != "" {
		result := models.OutcomeResultFrom(raw)
		if result == models.OutcomeUnknown {
			return filter, errors.Wrapf(models.BadParameterError, "unknown result %s", raw)
		}
		filter.Result = &result
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.Wrap(models.BadParameterError, "invalid from timestamp")
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.Wrap(models.BadParameterError, "invalid to timestamp")
		}
		filter.To = &to
	}
	return filter, nil
}
