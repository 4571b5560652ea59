package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/vytor/ergolog/internal/worker"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueSummaryRefresh() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueImport(importer worker.Importer, filename string, data []byte) error {
	args := m.Called(importer, filename, data)
	return args.Error(0)
}
