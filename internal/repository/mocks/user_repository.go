package mocks

import (
	"context"

	"parking-lot-service/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) FindByIDForShare(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) AssignParkingLot(ctx context.Context, tx pgx.Tx, parkingLotID uuid.UUID, keeperIDs []uuid.UUID) error {
	args := m.Called(ctx, tx, parkingLotID, keeperIDs)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveParkingLot(ctx context.Context, tx pgx.Tx, parkingLotID uuid.UUID) error {
	args := m.Called(ctx, tx, parkingLotID)
	return args.Error(0)
}
