package mocks

import (
	"context"

	"parking-lot-service/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockParkingLotCache struct {
	mock.Mock
}

func NewMockParkingLotCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockParkingLotCache {
	m := &MockParkingLotCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockParkingLotCache) Get(ctx context.Context, id uuid.UUID) (*model.DetailParkingLot, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.DetailParkingLot), args.Bool(1), args.Error(2)
}

func (m *MockParkingLotCache) Version(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockParkingLotCache) Set(ctx context.Context, id uuid.UUID, version int64, detail *model.DetailParkingLot) (bool, error) {
	args := m.Called(ctx, id, version, detail)
	return args.Bool(0), args.Error(1)
}

func (m *MockParkingLotCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
