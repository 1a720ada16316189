package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lurelab/lurelab-backend/models"
)

type GenerativeTextRepository struct {
	mock.Mock
}

func (m *GenerativeTextRepository) GenerateText(ctx context.Context, instruction string,
	conversation []models.CallTurn,
) (string, error) {
	args := m.Called(ctx, instruction, conversation)
	return args.String(0), args.Error(1)
}

func (m *GenerativeTextRepository) JudgeObjective(ctx context.Context,
	instruction, prompt string,
) (models.ObjectiveJudgment, error) {
	args := m.Called(ctx, instruction, prompt)
	return args.Get(0).(models.ObjectiveJudgment), args.Error(1)
}
