package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockFileStore struct {
	mock.Mock
}

func NewMockFileStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFileStore {
	m := &MockFileStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFileStore) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}
