package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vytor/ergolog/internal/models"
)

// MockEquipmentRepository is a mock implementation of repository.EquipmentRepository
type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) Get(ctx context.Context, id int64) (*models.EquipmentType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EquipmentType), args.Error(1)
}

func (m *MockEquipmentRepository) List(ctx context.Context) ([]models.EquipmentType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EquipmentType), args.Error(1)
}

func (m *MockEquipmentRepository) GetOrCreate(ctx context.Context, name string) (*models.EquipmentType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EquipmentType), args.Error(1)
}

func (m *MockEquipmentRepository) SetIncludeInTotals(ctx context.Context, id int64, include bool) error {
	args := m.Called(ctx, id, include)
	return args.Error(0)
}
