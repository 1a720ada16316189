package jobs

import (
	"context"

	"github.com/adhocore/gronx/pkg/tasker"
	"github.com/lurelab/lurelab-backend/usecases"
	"github.com/lurelab/lurelab-backend/utils"
)

func errToReturnCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

func RunScheduler(ctx context.Context, usecases usecases.Usecases) {
	taskr := tasker.New(tasker.Option{
		Verbose: true,
	}).WithContext(ctx)

	taskr.Task("*/5 * * * *", func(ctx context.Context) (int, error) {
		logger := utils.LoggerFromContext(ctx).With("job", "report_stalled_verdicts")
		ctx = utils.StoreLoggerInContext(ctx, logger)
		err := ReportStalledVerdicts(ctx, usecases)
		return errToReturnCode(err), err
	})

	taskr.Run()
}
