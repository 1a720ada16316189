package worker_jobs

import (
	"testing"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lurelab/lurelab-backend/mocks"
	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/usecases/executor_factory"
)

type followUpWorkerTestMocks struct {
	repo      *mocks.CallRepository
	generator *mocks.GenerativeTextRepository
	dispatch  *mocks.DispatchRepository
}

func followUpWorkerTestHarness(t *testing.T) (*FollowUpDispatchWorker, followUpWorkerTestMocks) {
	t.Helper()

	m := followUpWorkerTestMocks{
		repo:      new(mocks.CallRepository),
		generator: new(mocks.GenerativeTextRepository),
		dispatch:  new(mocks.DispatchRepository),
	}
	worker := NewFollowUpDispatchWorker(
		m.repo,
		m.generator,
		m.dispatch,
		executor_factory.NewExecutorFactoryStub(),
	)
	return worker, m
}

func followUpJob(callId uuid.UUID, channel models.ChannelType) *river.Job[models.FollowUpDispatchArgs] {
	return &river.Job[models.FollowUpDispatchArgs]{
		Args: models.FollowUpDispatchArgs{CallId: callId, Channel: channel},
	}
}

func TestFollowUpDispatchDeliversArtifact(t *testing.T) {
	worker, m := followUpWorkerTestHarness(t)
	callId, employeeId := uuid.New(), uuid.New()

	m.repo.On("GetCallById", mock.Anything, mock.Anything, callId).
		Return(models.Call{Id: callId, EmployeeId: employeeId}, nil)
	m.repo.On("GetEmployeeById", mock.Anything, mock.Anything, employeeId).
		Return(models.Employee{Id: employeeId, Email: "pat@example.com"}, nil)
	m.repo.On("ListCallTurns", mock.Anything, mock.Anything, callId).
		Return([]models.CallTurn{{CallId: callId}}, nil)
	m.generator.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("As discussed on our call, please confirm via this link.", nil)
	m.dispatch.On("Dispatch", mock.Anything, models.ChannelCallEmail, "pat@example.com",
		"As discussed on our call, please confirm via this link.").
		Return("receipt-1", nil)

	err := worker.Work(t.Context(), followUpJob(callId, models.ChannelCallEmail))

	assert.NoError(t, err)
	m.dispatch.AssertExpectations(t)
}

func TestFollowUpDispatchPicksChannelAddress(t *testing.T) {
	worker, m := followUpWorkerTestHarness(t)
	callId, employeeId := uuid.New(), uuid.New()

	m.repo.On("GetCallById", mock.Anything, mock.Anything, callId).
		Return(models.Call{Id: callId, EmployeeId: employeeId}, nil)
	m.repo.On("GetEmployeeById", mock.Anything, mock.Anything, employeeId).
		Return(models.Employee{
			Id:         employeeId,
			Email:      "pat@example.com",
			Phone:      "+33612345678",
			ChatHandle: "@pat",
		}, nil)
	m.repo.On("ListCallTurns", mock.Anything, mock.Anything, callId).
		Return([]models.CallTurn{}, nil)
	m.generator.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("please confirm the code", nil)
	m.dispatch.On("Dispatch", mock.Anything, models.ChannelCallSms, "+33612345678",
		mock.Anything).Return("receipt-2", nil)

	err := worker.Work(t.Context(), followUpJob(callId, models.ChannelCallSms))

	assert.NoError(t, err)
	m.dispatch.AssertExpectations(t)
}

func TestFollowUpDispatchCancelsWithoutRecipient(t *testing.T) {
	worker, m := followUpWorkerTestHarness(t)
	callId, employeeId := uuid.New(), uuid.New()

	m.repo.On("GetCallById", mock.Anything, mock.Anything, callId).
		Return(models.Call{Id: callId, EmployeeId: employeeId}, nil)
	m.repo.On("GetEmployeeById", mock.Anything, mock.Anything, employeeId).
		Return(models.Employee{Id: employeeId, Phone: "+33612345678"}, nil)

	err := worker.Work(t.Context(), followUpJob(callId, models.ChannelCallEmail))

	assert.Error(t, err)
	m.dispatch.AssertNotCalled(t, "Dispatch",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
