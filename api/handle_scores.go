package api

import (
	"net/http"
	"strings"

	"github.com/lurelab/lurelab-backend/dto"
	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/usecases"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func handleGetScore(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		employeeId, err := uuidParam(c, "employeeId")
		if presentError(ctx, c, err) {
			return
		}

		score, err := uc.NewScoringUsecase().Score(ctx, employeeId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptRiskScoreDto(score))
	}
}

func handleGetAggregateScore(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var filter models.AggregateFilter
		if raw := c.Query("area_id"); raw != "" {
			areaId, err := uuid.Parse(raw)
			if err != nil {
				presentError(ctx, c, errors.Wrap(models.BadParameterError, "invalid area_id"))
				return
			}
			filter.AreaId = &areaId
		}
		if raw := c.Query("employee_ids"); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				id, err := uuid.Parse(strings.TrimSpace(part))
				if err != nil {
					presentError(ctx, c, errors.Wrap(models.BadParameterError, "invalid employee_ids"))
					return
				}
				filter.EmployeeIds = append(filter.EmployeeIds, id)
			}
		}

		aggregate, err := uc.NewScoringUsecase().AggregateScore(ctx, filter)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptAggregateScoreDto(aggregate))
	}
}
