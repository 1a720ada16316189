package usecases

import (
	"context"
	"math"
	"slices"
	"sync"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories"
	"github.com/lurelab/lurelab-backend/usecases/executor_factory"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const maxParallelScoreComputations = 10

type ScoringUsecaseRepository interface {
	ListOutcomes(ctx context.Context, exec repositories.Executor,
		filter models.OutcomeFilter) ([]models.ParticipantOutcome, error)
	ListEmployeeIdsByArea(ctx context.Context, exec repositories.Executor,
		areaId uuid.UUID) ([]uuid.UUID, error)
}

// ScoringUsecase derives risk scores from the outcome history. Scores are
// never persisted: a changed outcome is reflected in the next read.
type ScoringUsecase struct {
	repository      ScoringUsecaseRepository
	executorFactory executor_factory.ExecutorFactory
	config          models.ScoringConfig
}

// Score computes the current risk score of one employee over their full
// outcome history.
//
// Starting from 100 points: an active FAILED outcome costs 10 points when
// severe, 5 otherwise. A failure scar on a row whose current result is no
// longer FAILED costs the same, so that reporting after falling for the lure
// softens but never erases the failure. An active REPORTED outcome earns 5
// points back. The result is clamped to [0, 100].
func (uc ScoringUsecase) Score(ctx context.Context, employeeId uuid.UUID) (models.RiskScore, error) {
	outcomes, err := uc.repository.ListOutcomes(ctx, uc.executorFactory.NewExecutor(),
		models.OutcomeFilter{EmployeeId: &employeeId})
	if err != nil {
		return models.RiskScore{}, err
	}
	return scoreFromOutcomes(employeeId, outcomes), nil
}

func scoreFromOutcomes(employeeId uuid.UUID, outcomes []models.ParticipantOutcome) models.RiskScore {
	score := models.RiskScore{
		EmployeeId:   employeeId,
		OutcomeCount: len(outcomes),
	}

	for _, outcome := range outcomes {
		penalty := models.ScoreFailurePenalty
		if outcome.IsSevereFailure {
			penalty = models.ScoreSeverePenalty
		}

		switch {
		case outcome.Result == models.OutcomeFailed:
			score.PointsLostToFailure += penalty
		case outcome.HasFailedBefore:
			score.PointsLostToScars += penalty
		}
		if outcome.Result == models.OutcomeReported {
			score.PointsFromReports += models.ScoreReportBonus
		}
	}

	points := models.ScoreStartingPoints -
		score.PointsLostToFailure -
		score.PointsLostToScars +
		score.PointsFromReports
	score.Points = min(max(points, models.ScoreMinPoints), models.ScoreMaxPoints)
	score.Tier = models.RiskTierFor(score.Points)
	return score
}

// AggregateScore computes mean, median and 10th percentile of the scores of
// a population, selected by area or by explicit employee list. Too small a
// sample returns InsufficientData instead of statistics that would identify
// individuals.
func (uc ScoringUsecase) AggregateScore(ctx context.Context, filter models.AggregateFilter) (models.AggregateScore, error) {
	exec := uc.executorFactory.NewExecutor()

	employeeIds := filter.EmployeeIds
	if len(employeeIds) == 0 {
		if filter.AreaId == nil {
			return models.AggregateScore{}, errors.Wrap(models.BadParameterError,
				"aggregate scope needs an area or an employee list")
		}
		var err error
		employeeIds, err = uc.repository.ListEmployeeIdsByArea(ctx, exec, *filter.AreaId)
		if err != nil {
			return models.AggregateScore{}, err
		}
	}

	scores := make([]models.RiskScore, len(employeeIds))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxParallelScoreComputations)
	for i, employeeId := range employeeIds {
		group.Go(func() error {
			outcomes, err := uc.repository.ListOutcomes(groupCtx, exec,
				models.OutcomeFilter{EmployeeId: &employeeId})
			if err != nil {
				return err
			}
			mu.Lock()
			scores[i] = scoreFromOutcomes(employeeId, outcomes)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return models.AggregateScore{}, err
	}

	outcomeCount := 0
	points := make([]float64, len(scores))
	for i, score := range scores {
		outcomeCount += score.OutcomeCount
		points[i] = float64(score.Points)
	}

	aggregate := models.AggregateScore{
		EmployeeCount: len(employeeIds),
		OutcomeCount:  outcomeCount,
	}
	if outcomeCount < uc.config.MinAggregateSample {
		aggregate.InsufficientData = true
		utils.LoggerFromContext(ctx).DebugContext(ctx,
			"Aggregate score sample too small", "outcome_count", outcomeCount)
		return aggregate, nil
	}

	slices.Sort(points)
	aggregate.Mean = roundTwoDecimals(mean(points))
	aggregate.Median = roundTwoDecimals(percentile(points, 50))
	aggregate.P10 = roundTwoDecimals(percentile(points, 10))
	return aggregate, nil
}

func mean(sorted []float64) float64 {
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	return sum / float64(len(sorted))
}

// percentile interpolates linearly between the two closest ranks of an
// ascending-sorted sample.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	return sorted[lower] + (rank-float64(lower))*(sorted[upper]-sorted[lower])
}

func roundTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}
