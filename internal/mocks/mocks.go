package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealmate/backend/internal/model"
	"github.com/pageza/mealmate/backend/internal/service"
)

// MockGenerator is a mock implementation of service.Generator
type MockGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockGenerator) Generate(ctx context.Context, req service.GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockJournal is a mock implementation of service.Journal
type MockJournal struct {
	mock.Mock
}

// Record mocks the Record method
func (m *MockJournal) Record(ctx context.Context, s *model.Suggestion) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// Get mocks the Get method
func (m *MockJournal) Get(ctx context.Context, id uuid.UUID) (*model.Suggestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Suggestion), args.Error(1)
}

// Recent mocks the Recent method
func (m *MockJournal) Recent(ctx context.Context, limit int) ([]*model.Suggestion, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Suggestion), args.Error(1)
}

// MockArchiver is a mock implementation of service.Archiver
type MockArchiver struct {
	mock.Mock
}

// Archive mocks the Archive method
func (m *MockArchiver) Archive(ctx context.Context, s *model.Suggestion) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}
