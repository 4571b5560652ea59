package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vytor/ergolog/internal/models"
)

// MockWorkoutRepository is a mock implementation of repository.WorkoutRepository
type MockWorkoutRepository struct {
	mock.Mock
}

func (m *MockWorkoutRepository) Get(ctx context.Context, id int64) (*models.Workout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) List(ctx context.Context, filter models.WorkoutFilter) ([]models.Workout, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) Count(ctx context.Context, filter models.WorkoutFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockWorkoutRepository) Insert(ctx context.Context, workout models.Workout) (int64, error) {
	args := m.Called(ctx, workout)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkoutRepository) ExistsByCardioLogID(ctx context.Context, cardioLogID string) (bool, error) {
	args := m.Called(ctx, cardioLogID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkoutRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
