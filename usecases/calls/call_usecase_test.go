package calls

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lurelab/lurelab-backend/mocks"
	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/pure_utils"
	"github.com/lurelab/lurelab-backend/repositories/clock"
	"github.com/lurelab/lurelab-backend/usecases/executor_factory"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

var testCallConfig = models.CallConfig{
	VerdictDelay:    2 * time.Minute,
	StalledGrace:    5 * time.Minute,
	UpstreamTimeout: 10 * time.Second,
}

type callUsecaseTestMocks struct {
	repo      *mocks.CallRepository
	taskQueue *mocks.TaskQueueRepository
	generator *mocks.GenerativeTextRepository
	speech    *mocks.SpeechRepository
}

func callUsecaseTestHarness(t *testing.T) (CallUsecase, callUsecaseTestMocks) {
	t.Helper()

	m := callUsecaseTestMocks{
		repo:      new(mocks.CallRepository),
		taskQueue: new(mocks.TaskQueueRepository),
		generator: new(mocks.GenerativeTextRepository),
		speech:    new(mocks.SpeechRepository),
	}
	transactionFactory := &mocks.TransactionFactory{TxMock: new(mocks.Transaction)}
	transactionFactory.On("Transaction", mock.Anything, mock.Anything).Return(nil)

	uc := NewCallUsecase(
		m.repo,
		executor_factory.NewExecutorFactoryStub(),
		transactionFactory,
		m.taskQueue,
		m.generator,
		m.speech,
		NewRegistry(),
		clock.NewMock(testNow),
		testCallConfig,
	)
	return uc, m
}

func startCallInput(employeeId uuid.UUID) models.StartCallInput {
	return models.StartCallInput{
		EmployeeId:      employeeId,
		CallerPersonaId: uuid.New(),
		Objective:       "obtain the VPN one-time code",
		Pretext:         "IT support urgently rotating credentials",
		Difficulty:      models.DifficultyMedium,
		VoiceProfileId:  "voice-42",
	}
}

func enrollableEmployee(employeeId uuid.UUID) models.Employee {
	return models.Employee{
		Id:     employeeId,
		Phone:  "+33612345678",
		AreaId: pure_utils.Ptr(uuid.New()),
	}
}

func TestStartCallRejectsSelfCall(t *testing.T) {
	uc, _ := callUsecaseTestHarness(t)
	employeeId := uuid.New()

	input := startCallInput(employeeId)
	input.CallerPersonaId = employeeId

	_, err := uc.StartCall(t.Context(), input)
	assert.ErrorIs(t, err, models.ErrDuplicateParticipants)
}

func TestStartCallRejectsUnreachableEmployee(t *testing.T) {
	uc, m := callUsecaseTestHarness(t)
	employeeId := uuid.New()

	m.repo.On("GetEmployeeById", mock.Anything, mock.Anything, employeeId).
		Return(models.Employee{Id: employeeId, AreaId: pure_utils.Ptr(uuid.New())}, nil)

	_, err := uc.StartCall(t.Context(), startCallInput(employeeId))
	assert.ErrorIs(t, err, models.ErrRecipientNotEnrollable)
}

func TestStartCallSchedulesVerdictAndOpensConversation(t *testing.T) {
	uc, m := callUsecaseTestHarness(t)
	employeeId := uuid.New()
	input := startCallInput(employeeId)

	m.repo.On("GetEmployeeById", mock.Anything, mock.Anything, employeeId).
		Return(enrollableEmployee(employeeId), nil)
	m.repo.On("CreateSimulatedEvent", mock.Anything, mock.Anything, mock.Anything,
		models.CreateSimulatedEventInput{
			ChannelType: models.ChannelCall,
			Difficulty:  models.DifficultyMedium,
		}, testNow).Return(nil)
	m.repo.On("CreateOutcome", mock.Anything, mock.Anything,
		mock.MatchedBy(func(o models.ParticipantOutcome) bool {
			return o.EmployeeId == employeeId && o.Result == models.OutcomePending
		})).Return(nil)
	m.repo.On("CreateCall", mock.Anything, mock.Anything,
		mock.MatchedBy(func(c models.Call) bool {
			return c.Status == models.CallQueued &&
				c.VerdictDueAt.Equal(testNow.Add(testCallConfig.VerdictDelay))
		})).Return(nil)
	m.taskQueue.On("EnqueueCallVerdictTask", mock.Anything, mock.Anything, mock.Anything,
		testNow.Add(testCallConfig.VerdictDelay)).Return(nil)
	m.repo.On("UpdateCallStatus", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(nil)
	m.generator.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("Hello, this is Marc from IT support.", nil)
	m.speech.On("SynthesizeSpeech", mock.Anything, "Hello, this is Marc from IT support.", "voice-42").
		Return("calls/audio/opening.wav", nil)
	m.repo.On("CreateCallTurn", mock.Anything, mock.Anything,
		mock.MatchedBy(func(turn models.CallTurn) bool {
			return turn.TurnIndex == 0 && turn.Speaker == models.SpeakerCaller &&
				turn.AudioKey != nil
		})).Return(nil)
	m.repo.On("GetCallById", mock.Anything, mock.Anything, mock.Anything).
		Return(models.Call{Status: models.CallInProgress, EmployeeId: employeeId}, nil)

	call, err := uc.StartCall(t.Context(), input)

	assert.NoError(t, err)
	assert.Equal(t, models.CallInProgress, call.Status)
	m.repo.AssertExpectations(t)
	m.taskQueue.AssertExpectations(t)
}

func TestStartCallKeepsVerdictWhenUpstreamFails(t *testing.T) {
	uc, m := callUsecaseTestHarness(t)
	employeeId := uuid.New()

	m.repo.On("GetEmployeeById", mock.Anything, mock.Anything, employeeId).
		Return(enrollableEmployee(employeeId), nil)
	m.repo.On("CreateSimulatedEvent", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(nil)
	m.repo.On("CreateOutcome", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.repo.On("CreateCall", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.taskQueue.On("EnqueueCallVerdictTask", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything).Return(nil)
	m.repo.On("UpdateCallStatus", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(nil)
	m.generator.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("model overloaded"))
	m.repo.On("GetCallById", mock.Anything, mock.Anything, mock.Anything).
		Return(models.Call{Status: models.CallRinging, EmployeeId: employeeId}, nil)

	call, err := uc.StartCall(t.Context(), startCallInput(employeeId))

	// The call exists and its verdict timer is armed even though the
	// opening line could not be produced.
	assert.NoError(t, err)
	assert.Equal(t, models.CallRinging, call.Status)
	m.taskQueue.AssertExpectations(t)
	m.repo.AssertNotCalled(t, "CreateCallTurn", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleSpokenTurnRequiresCallInProgress(t *testing.T) {
	uc, m := callUsecaseTestHarness(t)
	callId := uuid.New()

	m.repo.On("GetCallById", mock.Anything, mock.Anything, callId).
		Return(models.Call{Id: callId, Status: models.CallRinging}, nil)

	_, err := uc.HandleSpokenTurn(t.Context(), callId, "hello?")
	assert.ErrorIs(t, err, models.UnprocessableEntityError)
}

func TestHandleSpokenTurnPersistsTranscriptBeforeReply(t *testing.T) {
	uc, m := callUsecaseTestHarness(t)
	callId := uuid.New()
	opening := models.CallTurn{CallId: callId, TurnIndex: 0, Speaker: models.SpeakerCaller}

	m.repo.On("GetCallById", mock.Anything, mock.Anything, callId).
		Return(models.Call{Id: callId, Status: models.CallInProgress}, nil)
	m.repo.On("ListCallTurns", mock.Anything, mock.Anything, callId).
		Return([]models.CallTurn{opening}, nil)
	m.repo.On("CreateCallTurn", mock.Anything, mock.Anything,
		mock.MatchedBy(func(turn models.CallTurn) bool {
			return turn.Speaker == models.SpeakerEmployee && turn.TurnIndex == 1 &&
				turn.Content == "who is calling?"
		})).Return(nil)
	m.generator.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("model overloaded"))

	_, err := uc.HandleSpokenTurn(t.Context(), callId, "who is calling?")

	// The reply failed but the employee's words are already on disk.
	assert.Error(t, err)
	m.repo.AssertExpectations(t)
}

func TestHandleSpokenTurnProducesReply(t *testing.T) {
	uc, m := callUsecaseTestHarness(t)
	callId := uuid.New()
	opening := models.CallTurn{CallId: callId, TurnIndex: 0, Speaker: models.SpeakerCaller}

	m.repo.On("GetCallById", mock.Anything, mock.Anything, callId).
		Return(models.Call{Id: callId, Status: models.CallInProgress, VoiceProfileId: "voice-42"}, nil)
	m.repo.On("ListCallTurns", mock.Anything, mock.Anything, callId).
		Return([]models.CallTurn{opening}, nil)
	m.repo.On("CreateCallTurn", mock.Anything, mock.Anything,
		mock.MatchedBy(func(turn models.CallTurn) bool {
			return turn.Speaker == models.SpeakerEmployee && turn.TurnIndex == 1
		})).Return(nil)
	m.generator.On("GenerateText", mock.Anything, mock.Anything,
		mock.MatchedBy(func(turns []models.CallTurn) bool {
			// The reply is generated from the transcript including the
			// utterance that was just persisted.
			return len(turns) == 2 && turns[1].Speaker == models.SpeakerEmployee
		})).Return("I just need you to confirm the code you received.", nil)
	m.speech.On("SynthesizeSpeech", mock.Anything, mock.Anything, "voice-42").
		Return("calls/audio/reply.wav", nil)
	m.repo.On("CreateCallTurn", mock.Anything, mock.Anything,
		mock.MatchedBy(func(turn models.CallTurn) bool {
			return turn.Speaker == models.SpeakerCaller && turn.TurnIndex == 2
		})).Return(nil)

	result, err := uc.HandleSpokenTurn(t.Context(), callId, "what do you need?")

	assert.NoError(t, err)
	assert.Equal(t, 2, result.TurnIndex)
	assert.Equal(t, "I just need you to confirm the code you received.", result.Text)
	assert.Equal(t, "calls/audio/reply.wav", result.AudioKey)
	m.repo.AssertExpectations(t)
}

func TestHandleSpokenTurnReusesInMemorySession(t *testing.T) {
	uc, m := callUsecaseTestHarness(t)
	callId := uuid.New()

	s := uc.registry.acquire(callId)
	s.turns = []models.CallTurn{
		{CallId: callId, TurnIndex: 0, Speaker: models.SpeakerCaller},
	}

	m.repo.On("GetCallById", mock.Anything, mock.Anything, callId).
		Return(models.Call{Id: callId, Status: models.CallInProgress}, nil)
	m.repo.On("CreateCallTurn", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.generator.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("and your employee number?", nil)
	m.speech.On("SynthesizeSpeech", mock.Anything, mock.Anything, mock.Anything).
		Return("calls/audio/next.wav", nil)

	_, err := uc.HandleSpokenTurn(t.Context(), callId, "it is 123456")

	assert.NoError(t, err)
	m.repo.AssertNotCalled(t, "ListCallTurns", mock.Anything, mock.Anything, mock.Anything)
}
