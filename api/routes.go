package api

import (
	"github.com/lurelab/lurelab-backend/usecases"

	"github.com/gin-gonic/gin"
)

func addRoutes(r *gin.Engine, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe)

	r.POST("/outcomes/:employeeId/:eventId/failure", handleRecordFailure(uc))
	r.POST("/outcomes/:employeeId/:eventId/report", handleRecordReport(uc))
	r.PUT("/outcomes/:employeeId/:eventId", handleSetResult(uc))
	r.GET("/outcomes", handleListOutcomes(uc))

	r.POST("/reports", handleSubmitReport(uc))
	r.GET("/reports", handleListReportAttempts(uc))
	r.POST("/reports/:attemptId/verify", handleVerifyReport(uc))
	r.POST("/reports/:attemptId/validate-without-event", handleValidateReportWithoutEvent(uc))
	r.POST("/reports/:attemptId/reject", handleRejectReport(uc))

	r.GET("/scores/:employeeId", handleGetScore(uc))
	r.GET("/scores", handleGetAggregateScore(uc))

	r.POST("/calls", handleStartCall(uc))
	r.POST("/calls/:callId/turns", handleSpokenTurn(uc))
	r.GET("/calls/:callId", handleGetCallStatus(uc))
}
