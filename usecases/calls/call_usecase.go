package calls

import (
	"context"
	"time"

	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/repositories"
	"github.com/lurelab/lurelab-backend/repositories/clock"
	"github.com/lurelab/lurelab-backend/usecases/executor_factory"
	"github.com/lurelab/lurelab-backend/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type CallUsecaseRepository interface {
	GetEmployeeById(ctx context.Context, exec repositories.Executor,
		employeeId uuid.UUID) (models.Employee, error)
	CreateSimulatedEvent(ctx context.Context, exec repositories.Executor,
		eventId uuid.UUID, input models.CreateSimulatedEventInput, createdAt time.Time) error
	CreateOutcome(ctx context.Context, exec repositories.Executor,
		outcome models.ParticipantOutcome) error
	CreateCall(ctx context.Context, exec repositories.Executor, call models.Call) error
	GetCallById(ctx context.Context, exec repositories.Executor,
		callId uuid.UUID) (models.Call, error)
	UpdateCallStatus(ctx context.Context, exec repositories.Executor,
		callId uuid.UUID, status models.CallStatus, at time.Time) error
	CreateCallTurn(ctx context.Context, exec repositories.Executor,
		turn models.CallTurn) error
	ListCallTurns(ctx context.Context, exec repositories.Executor,
		callId uuid.UUID) ([]models.CallTurn, error)
	CountCallTurns(ctx context.Context, exec repositories.Executor,
		callId uuid.UUID) (int, error)
}

type generativeTextClient interface {
	GenerateText(ctx context.Context, instruction string,
		conversation []models.CallTurn) (string, error)
}

type speechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, text, voiceProfileId string) (string, error)
}

// CallUsecase orchestrates live voice-phishing calls: dialing, the spoken
// exchange, and handing the deferred verdict to the task queue. The verdict
// itself runs in the worker, on the queue's own context, so it fires whether
// or not the call or this process is still alive.
type CallUsecase struct {
	repository         CallUsecaseRepository
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	taskQueue          repositories.TaskQueueRepository
	generator          generativeTextClient
	speech             speechSynthesizer
	registry           *Registry
	clock              clock.Clock
	config             models.CallConfig
}

func NewCallUsecase(
	repository CallUsecaseRepository,
	executorFactory executor_factory.ExecutorFactory,
	transactionFactory executor_factory.TransactionFactory,
	taskQueue repositories.TaskQueueRepository,
	generator generativeTextClient,
	speech speechSynthesizer,
	registry *Registry,
	clock clock.Clock,
	config models.CallConfig,
) CallUsecase {
	return CallUsecase{
		repository:         repository,
		executorFactory:    executorFactory,
		transactionFactory: transactionFactory,
		taskQueue:          taskQueue,
		generator:          generator,
		speech:             speech,
		registry:           registry,
		clock:              clock,
		config:             config,
	}
}

// StartCall validates the participants, persists the call with its simulated
// event and PENDING enrollment, schedules the one-shot verdict, then drives
// the call up to IN_PROGRESS with the opening caller line.
//
// The verdict task is enqueued in the same transaction as the call row: once
// a call exists, its verdict timer exists. An upstream failure while opening
// the conversation leaves the call short of IN_PROGRESS but never cancels
// the verdict.
func (uc CallUsecase) StartCall(ctx context.Context, input models.StartCallInput) (models.Call, error) {
	exec := uc.executorFactory.NewExecutor()
	logger := utils.LoggerFromContext(ctx)

	if input.CallerPersonaId == input.EmployeeId {
		return models.Call{}, errors.Wrapf(models.ErrDuplicateParticipants,
			"employee %s", input.EmployeeId)
	}

	employee, err := uc.repository.GetEmployeeById(ctx, exec, input.EmployeeId)
	if err != nil {
		return models.Call{}, err
	}
	if employee.Phone == "" || employee.AreaId == nil {
		return models.Call{}, errors.Wrapf(models.ErrRecipientNotEnrollable,
			"employee %s", input.EmployeeId)
	}

	now := uc.clock.Now()
	eventId := uuid.New()
	call := models.Call{
		Id:              uuid.New(),
		EmployeeId:      input.EmployeeId,
		EventId:         eventId,
		CallerPersonaId: input.CallerPersonaId,
		Objective:       input.Objective,
		Pretext:         input.Pretext,
		Difficulty:      input.Difficulty,
		VoiceProfileId:  input.VoiceProfileId,
		FollowUpChannel: input.FollowUpChannel,
		Status:          models.CallQueued,
		StartedAt:       now,
		VerdictDueAt:    now.Add(uc.config.VerdictDelay),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = uc.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		if err := uc.repository.CreateSimulatedEvent(ctx, tx, eventId,
			models.CreateSimulatedEventInput{
				ChannelType: models.ChannelCall,
				Difficulty:  input.Difficulty,
			}, now); err != nil {
			return err
		}
		if err := uc.repository.CreateOutcome(ctx, tx, models.ParticipantOutcome{
			Id:         uuid.New(),
			EmployeeId: input.EmployeeId,
			EventId:    eventId,
			Result:     models.OutcomePending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}); err != nil {
			return err
		}
		if err := uc.repository.CreateCall(ctx, tx, call); err != nil {
			return err
		}
		return uc.taskQueue.EnqueueCallVerdictTask(ctx, tx, call.Id, call.VerdictDueAt)
	})
	if err != nil {
		return models.Call{}, err
	}

	logger.InfoContext(ctx, "Call created",
		"call_id", call.Id, "employee_id", call.EmployeeId, "verdict_due_at", call.VerdictDueAt)

	for _, status := range []models.CallStatus{models.CallInitiated, models.CallRinging} {
		if err := uc.transitionCall(ctx, exec, &call, status, uc.clock.Now()); err != nil {
			return models.Call{}, err
		}
	}

	if err := uc.openConversation(ctx, exec, &call); err != nil {
		// The call row and its verdict timer are already committed. The
		// telephony layer can retry the opening through HandleSpokenTurn.
		utils.LogAndReportSentryError(ctx, err)
		logger.WarnContext(ctx, "Could not open call conversation",
			"call_id", call.Id, "error", err)
	}

	return uc.repository.GetCallById(ctx, exec, call.Id)
}

// transitionCall moves a call through the state machine, rejecting any write
// the transition table does not allow.
func (uc CallUsecase) transitionCall(ctx context.Context, exec repositories.Executor,
	call *models.Call, to models.CallStatus, at time.Time,
) error {
	if !models.CanTransitionCall(call.Status, to) {
		return errors.Wrapf(models.UnprocessableEntityError,
			"call %s cannot move from %s to %s", call.Id, call.Status, to)
	}
	if err := uc.repository.UpdateCallStatus(ctx, exec, call.Id, to, at); err != nil {
		return err
	}
	call.Status = to
	return nil
}

func (uc CallUsecase) openConversation(ctx context.Context, exec repositories.Executor,
	call *models.Call,
) error {
	upstreamCtx, cancel := context.WithTimeout(ctx, uc.config.UpstreamTimeout)
	defer cancel()

	text, err := uc.generator.GenerateText(upstreamCtx, CallerInstruction(*call), nil)
	if err != nil {
		return err
	}
	audioKey, err := uc.speech.SynthesizeSpeech(upstreamCtx, text, call.VoiceProfileId)
	if err != nil {
		return err
	}

	now := uc.clock.Now()
	opening := models.CallTurn{
		Id:        uuid.New(),
		CallId:    call.Id,
		TurnIndex: 0,
		Speaker:   models.SpeakerCaller,
		Content:   text,
		AudioKey:  &audioKey,
		CreatedAt: now,
	}
	if err := uc.repository.CreateCallTurn(ctx, exec, opening); err != nil {
		return err
	}
	if err := uc.transitionCall(ctx, exec, call, models.CallInProgress, now); err != nil {
		return err
	}

	s := uc.registry.acquire(call.Id)
	s.mu.Lock()
	s.turns = []models.CallTurn{opening}
	s.mu.Unlock()
	return nil
}

// HandleSpokenTurn ingests one transcribed employee utterance and produces
// the caller's reply. The employee turn is persisted before anything else
// (including before the reply is requested), so the stored transcript is
// never behind what was actually said.
func (uc CallUsecase) HandleSpokenTurn(ctx context.Context, callId uuid.UUID,
	transcript string,
) (models.SpokenTurnResult, error) {
	exec := uc.executorFactory.NewExecutor()

	call, err := uc.repository.GetCallById(ctx, exec, callId)
	if err != nil {
		return models.SpokenTurnResult{}, err
	}
	if call.Status != models.CallInProgress {
		return models.SpokenTurnResult{}, errors.Wrapf(models.UnprocessableEntityError,
			"call %s is %s, not %s", callId, call.Status, models.CallInProgress)
	}

	s := uc.registry.acquire(callId)
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.turns) == 0 {
		turns, err := uc.repository.ListCallTurns(ctx, exec, callId)
		if err != nil {
			return models.SpokenTurnResult{}, err
		}
		s.turns = turns
	}

	now := uc.clock.Now()
	employeeTurn := models.CallTurn{
		Id:        uuid.New(),
		CallId:    callId,
		TurnIndex: len(s.turns),
		Speaker:   models.SpeakerEmployee,
		Content:   transcript,
		CreatedAt: now,
	}
	if err := uc.repository.CreateCallTurn(ctx, exec, employeeTurn); err != nil {
		return models.SpokenTurnResult{}, err
	}
	s.turns = append(s.turns, employeeTurn)

	upstreamCtx, cancel := context.WithTimeout(ctx, uc.config.UpstreamTimeout)
	defer cancel()

	text, err := uc.generator.GenerateText(upstreamCtx, CallerInstruction(call), s.turns)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return models.SpokenTurnResult{}, err
	}
	audioKey, err := uc.speech.SynthesizeSpeech(upstreamCtx, text, call.VoiceProfileId)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return models.SpokenTurnResult{}, err
	}

	callerTurn := models.CallTurn{
		Id:        uuid.New(),
		CallId:    callId,
		TurnIndex: len(s.turns),
		Speaker:   models.SpeakerCaller,
		Content:   text,
		AudioKey:  &audioKey,
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.repository.CreateCallTurn(ctx, exec, callerTurn); err != nil {
		return models.SpokenTurnResult{}, err
	}
	s.turns = append(s.turns, callerTurn)

	return models.SpokenTurnResult{
		CallId:    callId,
		TurnIndex: callerTurn.TurnIndex,
		Text:      text,
		AudioKey:  audioKey,
	}, nil
}

func (uc CallUsecase) GetCallStatus(ctx context.Context, callId uuid.UUID) (models.CallStatusView, error) {
	exec := uc.executorFactory.NewExecutor()

	call, err := uc.repository.GetCallById(ctx, exec, callId)
	if err != nil {
		return models.CallStatusView{}, err
	}
	turnCount, err := uc.repository.CountCallTurns(ctx, exec, callId)
	if err != nil {
		return models.CallStatusView{}, err
	}
	return models.CallStatusView{
		Call:      call,
		TurnCount: turnCount,
	}, nil
}

// ReleaseSession drops the in-memory session of a finished call.
func (uc CallUsecase) ReleaseSession(callId uuid.UUID) {
	uc.registry.drop(callId)
}
