package mocks

import (
	"context"

	"parking-lot-service/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockParkingLotService struct {
	mock.Mock
}

func NewMockParkingLotService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockParkingLotService {
	m := &MockParkingLotService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockParkingLotService) Create(ctx context.Context, req model.CreateParkingLotRequest) (*model.ParkingLot, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParkingLot), args.Error(1)
}

func (m *MockParkingLotService) Update(ctx context.Context, id uuid.UUID, req model.UpdateParkingLotRequest) (*model.ParkingLot, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParkingLot), args.Error(1)
}

func (m *MockParkingLotService) Detail(ctx context.Context, id uuid.UUID) (*model.DetailParkingLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DetailParkingLot), args.Error(1)
}

func (m *MockParkingLotService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.ParkingLotWithKeeperCount, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ParkingLotWithKeeperCount), args.Error(1)
}
