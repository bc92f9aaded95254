package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	models "school-dashboard/app/models/dashboard"
)

type MockRecordSource struct {
	mock.Mock
}

func (m *MockRecordSource) Fetch(ctx context.Context, endpoint string) ([]models.Record, error) {
	args := m.Called(ctx, endpoint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Record), args.Error(1)
}
