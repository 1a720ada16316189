package jobs

import (
	"context"

	"github.com/lurelab/lurelab-backend/usecases"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/cockroachdb/errors"
)

// ReportStalledVerdicts surfaces calls whose deferred verdict never landed
// (or landed unparsable), so that enrollments stuck in PENDING are visible
// to operators instead of rotting silently.
func ReportStalledVerdicts(ctx context.Context, uc usecases.Usecases) error {
	logger := utils.LoggerFromContext(ctx)
	exec := uc.NewExecutorFactory().NewExecutor()

	now := uc.Clock().Now()
	stalled, err := uc.Repositories.LurelabDbRepository.ListStalledCalls(ctx, exec,
		now, uc.CallConfig().StalledGrace)
	if err != nil {
		return err
	}

	for _, call := range stalled {
		verdict := "none"
		if call.Verdict != nil {
			verdict = string(*call.Verdict)
		}
		err := errors.Newf("call %s verdict stalled (due %s, verdict %s)",
			call.Id, call.VerdictDueAt, verdict)
		logger.ErrorContext(ctx, "Stalled call verdict",
			"call_id", call.Id,
			"employee_id", call.EmployeeId,
			"verdict_due_at", call.VerdictDueAt,
			"verdict", verdict)
		utils.LogAndReportSentryError(ctx, err)
	}

	if len(stalled) > 0 {
		logger.WarnContext(ctx, "Stalled verdict sweep found calls", "count", len(stalled))
	}
	return nil
}
