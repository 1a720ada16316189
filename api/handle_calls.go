package api

import (
	"net/http"

	"github.com/lurelab/lurelab-backend/dto"
	"github.com/lurelab/lurelab-backend/models"
	"github.com/lurelab/lurelab-backend/usecases"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func handleStartCall(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.StartCallBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		employeeId, err := uuid.Parse(body.EmployeeId)
		if err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "invalid employee_id"))
			return
		}
		callerPersonaId, err := uuid.Parse(body.CallerPersonaId)
		if err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "invalid caller_persona_id"))
			return
		}
		difficulty := models.DifficultyFrom(body.Difficulty)
		if difficulty == models.DifficultyUnknown {
			presentError(ctx, c, errors.Wrapf(models.BadParameterError,
				"unknown difficulty %s", body.Difficulty))
			return
		}
		var followUpChannel *models.ChannelType
		if body.FollowUpChannel != nil {
			channel := models.ChannelTypeFrom(*body.FollowUpChannel)
			if channel == models.ChannelUnknown {
				presentError(ctx, c, errors.Wrapf(models.BadParameterError,
					"unknown follow_up_channel %s", *body.FollowUpChannel))
				return
			}
			followUpChannel = &channel
		}

		call, err := uc.NewCallUsecase().StartCall(ctx, models.StartCallInput{
			EmployeeId:      employeeId,
			CallerPersonaId: callerPersonaId,
			Objective:       body.Objective,
			Pretext:         body.Pretext,
			Difficulty:      difficulty,
			VoiceProfileId:  body.VoiceProfileId,
			FollowUpChannel: followUpChannel,
		})
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, dto.AdaptCallDto(call))
	}
}

func handleSpokenTurn(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		callId, err := uuidParam(c, "callId")
		if presentError(ctx, c, err) {
			return
		}
		var body dto.SpokenTurnBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		transcript := body.Transcript
		if transcript == "" {
			if body.AudioKey == "" {
				presentError(ctx, c, errors.Wrap(models.BadParameterError,
					"either transcript or audio_key is required"))
				return
			}
			transcript, err = uc.Repositories.SpeechRepository.TranscribeSpeech(ctx, body.AudioKey)
			if err != nil {
				presentError(ctx, c, errors.Wrap(models.ErrUpstreamUnavailable, err.Error()))
				return
			}
		}

		result, err := uc.NewCallUsecase().HandleSpokenTurn(ctx, callId, transcript)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptSpokenTurnDto(result))
	}
}

func handleGetCallStatus(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		callId, err := uuidParam(c, "callId")
		if presentError(ctx, c, err) {
			return
		}

		view, err := uc.NewCallUsecase().GetCallStatus(ctx, callId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptCallStatusDto(view))
	}
}
