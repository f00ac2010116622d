package mocks

import (
	"context"

	"parking-lot-service/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockParkingLotRepository struct {
	mock.Mock
}

func NewMockParkingLotRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockParkingLotRepository {
	m := &MockParkingLotRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockParkingLotRepository) Detail(ctx context.Context, id uuid.UUID) ([]*model.ParkingLotDetailRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ParkingLotDetailRow), args.Error(1)
}

func (m *MockParkingLotRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.ParkingLotWithKeeperCount, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ParkingLotWithKeeperCount), args.Error(1)
}

func (m *MockParkingLotRepository) Create(ctx context.Context, tx pgx.Tx, lot *model.ParkingLot) (*model.ParkingLot, error) {
	args := m.Called(ctx, tx, lot)
	if rf, ok := args.Get(0).(func(context.Context, pgx.Tx, *model.ParkingLot) (*model.ParkingLot, error)); ok {
		return rf(ctx, tx, lot)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParkingLot), args.Error(1)
}

func (m *MockParkingLotRepository) Update(ctx context.Context, tx pgx.Tx, id uuid.UUID, params model.UpdateParkingLotParams) (*model.ParkingLot, error) {
	args := m.Called(ctx, tx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParkingLot), args.Error(1)
}
