package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lurelab/lurelab-backend/models"
)

type DispatchRepository struct {
	mock.Mock
}

func (m *DispatchRepository) Dispatch(ctx context.Context, channel models.ChannelType,
	recipient, content string,
) (string, error) {
	args := m.Called(ctx, channel, recipient, content)
	return args.String(0), args.Error(1)
}
