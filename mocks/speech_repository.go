package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SpeechRepository struct {
	mock.Mock
}

func (m *SpeechRepository) SynthesizeSpeech(ctx context.Context, text, voiceProfileId string) (string, error) {
	args := m.Called(ctx, text, voiceProfileId)
	return args.String(0), args.Error(1)
}

func (m *SpeechRepository) TranscribeSpeech(ctx context.Context, audioKey string) (string, error) {
	args := m.Called(ctx, audioKey)
	return args.String(0), args.Error(1)
}
