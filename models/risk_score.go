package models

import "github.com/google/uuid"

type RiskTier string

const (
	RiskTierNone    RiskTier = "No risk"
	RiskTierLow     RiskTier = "Low"
	RiskTierMedium  RiskTier = "Medium"
	RiskTierHigh    RiskTier = "High"
	RiskTierMaximum RiskTier = "Maximum"
)

// RiskTierFor maps final points to a tier. Boundaries are inclusive on the
// lower tier: exactly 90 is Low, exactly 75 is Medium, exactly 50 is High.
func RiskTierFor(points int) RiskTier {
	switch {
	case points >= 100:
		return RiskTierNone
	case points >= 90:
		return RiskTierLow
	case points >= 75:
		return RiskTierMedium
	case points >= 50:
		return RiskTierHigh
	default:
		return RiskTierMaximum
	}
}

// Point values of the scoring formula. A severe failure (credentials
// entered) is penalized twice as heavily as a simple one (link clicked).
const (
	ScoreStartingPoints = 100
	ScoreFailurePenalty = 5
	ScoreSeverePenalty  = 10
	ScoreReportBonus    = 5
	ScoreMinPoints      = 0
	ScoreMaxPoints      = 100
)

// RiskScore is a derived, non persisted view over an employee's full outcome
// history. Points start at 100 and are clamped to [0, 100].
type RiskScore struct {
	EmployeeId          uuid.UUID
	Points              int
	PointsLostToFailure int
	PointsLostToScars   int
	PointsFromReports   int
	OutcomeCount        int
	Tier                RiskTier
}

// AggregateFilter selects the employees in scope for an aggregate score.
type AggregateFilter struct {
	AreaId      *uuid.UUID
	EmployeeIds []uuid.UUID
}

// AggregateScore summarizes per-employee scores over a population. When
// fewer outcomes than the configured minimum sample underlie the aggregate,
// InsufficientData is set and the statistics are zero.
type AggregateScore struct {
	Mean             float64
	Median           float64
	P10              float64
	EmployeeCount    int
	OutcomeCount     int
	InsufficientData bool
}

type ScoringConfig struct {
	MinAggregateSample int
}
