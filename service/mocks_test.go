package service

import (
	"context"
	"time"

	"debt-planner/domain"
	"debt-planner/repository"

	"github.com/stretchr/testify/mock"
)

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Save(input domain.CalculationInput, result domain.CalculationResult) error {
	args := m.Called(input, result)
	return args.Error(0)
}

func (m *MockLoanRepository) Recent() []repository.Calculation {
	args := m.Called()
	if calcs := args.Get(0); calcs != nil {
		return calcs.([]repository.Calculation)
	}
	return nil
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

type MockNarrator struct {
	mock.Mock
}

func (m *MockNarrator) NarrateComparison(ctx context.Context, comparison domain.ComparisonResult) (string, error) {
	args := m.Called(ctx, comparison)
	return args.String(0), args.Error(1)
}
