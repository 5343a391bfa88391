package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockFlagRepository is a mock implementation of repository.FlagRepository
type MockFlagRepository struct {
	mock.Mock
}

func (m *MockFlagRepository) Get(ctx context.Context, deviceID, key string) (string, bool, error) {
	args := m.Called(ctx, deviceID, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockFlagRepository) Set(ctx context.Context, deviceID, key, value string) error {
	args := m.Called(ctx, deviceID, key, value)
	return args.Error(0)
}

func (m *MockFlagRepository) Delete(ctx context.Context, deviceID, key string) error {
	args := m.Called(ctx, deviceID, key)
	return args.Error(0)
}
