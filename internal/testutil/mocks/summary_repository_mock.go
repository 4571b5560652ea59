package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vytor/ergolog/internal/models"
)

// MockSummaryRepository is a mock implementation of repository.SummaryRepository
type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) Totals(ctx context.Context, period models.Period, limit, offset int) ([]models.SummaryRow, error) {
	args := m.Called(ctx, period, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SummaryRow), args.Error(1)
}

func (m *MockSummaryRepository) CountTotals(ctx context.Context, period models.Period) (int, error) {
	args := m.Called(ctx, period)
	return args.Int(0), args.Error(1)
}

func (m *MockSummaryRepository) Overall(ctx context.Context) (*models.OverallTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OverallTotals), args.Error(1)
}

func (m *MockSummaryRepository) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
