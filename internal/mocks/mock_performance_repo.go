package mocks

import (
	"context"

	"github.com/metinatakli/theatre-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPerformanceRepo struct {
	mock.Mock
	domain.PerformanceRepository
}

func (m *MockPerformanceRepo) Create(ctx context.Context, performance *domain.Performance) error {
	args := m.Called(ctx, performance)
	return args.Error(0)
}

func (m *MockPerformanceRepo) GetById(ctx context.Context, id int) (*domain.Performance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Performance), args.Error(1)
}

func (m *MockPerformanceRepo) GetAllWithAvailability(ctx context.Context) ([]domain.PerformanceSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PerformanceSummary), args.Error(1)
}

func (m *MockPerformanceRepo) GetTakenSeats(ctx context.Context, performanceId int) ([]domain.SeatPosition, error) {
	args := m.Called(ctx, performanceId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatPosition), args.Error(1)
}

func (m *MockPerformanceRepo) CountTickets(ctx context.Context, performanceId int) (int, error) {
	args := m.Called(ctx, performanceId)
	return args.Int(0), args.Error(1)
}

type MockPerformanceCache struct {
	mock.Mock
}

func (m *MockPerformanceCache) Get(ctx context.Context, id int) (*domain.Performance, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Performance), args.Bool(1), args.Error(2)
}

func (m *MockPerformanceCache) Set(ctx context.Context, performance *domain.Performance) error {
	args := m.Called(ctx, performance)
	return args.Error(0)
}
