package dto

import (
	"github.com/lurelab/lurelab-backend/models"
)

type RiskScoreDto struct {
	EmployeeId          string `json:"employee_id"`
	Points              int    `json:"points"`
	Tier                string `json:"tier"`
	PointsLostToFailure int    `json:"points_lost_to_failure"`
	PointsLostToScars   int    `json:"points_lost_to_scars"`
	PointsFromReports   int    `json:"points_from_reports"`
	OutcomeCount        int    `json:"outcome_count"`
}

func AdaptRiskScoreDto(score models.RiskScore) RiskScoreDto {
	return RiskScoreDto{
		EmployeeId:          score.EmployeeId.String(),
		Points:              score.Points,
		Tier:                string(score.Tier),
		PointsLostToFailure: score.PointsLostToFailure,
		PointsLostToScars:   score.PointsLostToScars,
		PointsFromReports:   score.PointsFromReports,
		OutcomeCount:        score.OutcomeCount,
	}
}

type AggregateScoreDto struct {
	Mean             float64 `json:"mean"`
	Median           float64 `json:"median"`
	P10              float64 `json:"p10"`
	EmployeeCount    int     `json:"employee_count"`
	OutcomeCount     int     `json:"outcome_count"`
	InsufficientData bool    `json:"insufficient_data"`
}

func AdaptAggregateScoreDto(aggregate models.AggregateScore) AggregateScoreDto {
	return AggregateScoreDto{
		Mean:             aggregate.Mean,
		Median:           aggregate.Median,
		P10:              aggregate.P10,
		EmployeeCount:    aggregate.EmployeeCount,
		OutcomeCount:     aggregate.OutcomeCount,
		InsufficientData: aggregate.InsufficientData,
	}
}
