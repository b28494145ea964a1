package service

import (
	"errors"
	"testing"

	"debt-planner/domain"
	"debt-planner/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCalculateLoan_WithInterest(t *testing.T) {
	mockRepo := new(MockLoanRepository)
	mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	service := NewLoanService(mockRepo)

	result, err := service.CalculateLoan(domain.CalculationInput{
		Amount:       decimal.NewFromInt(10000),
		InterestRate: decimal.NewFromInt(12),
		TermMonths:   24,
	})

	require.NoError(t, err)
	assert.Equal(t, "470.73", result.MonthlyPayment.StringFixed(2))
	assert.Equal(t, "11297.52", result.TotalPayment.StringFixed(2))
	assert.Equal(t, "1297.52", result.TotalInterest.StringFixed(2))
	mockRepo.AssertExpectations(t)
}

func TestCalculateLoan_ZeroInterest(t *testing.T) {
	mockRepo := new(MockLoanRepository)
	mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	service := NewLoanService(mockRepo)

	result, err := service.CalculateLoan(domain.CalculationInput{
		Amount:       decimal.NewFromInt(1200),
		InterestRate: decimal.Zero,
		TermMonths:   12,
	})

	require.NoError(t, err)
	assert.True(t, result.MonthlyPayment.Equal(decimal.NewFromInt(100)))
	assert.True(t, result.TotalInterest.IsZero())
}

func TestCalculateLoan_SaveFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockLoanRepository)
	mockRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("save error"))
	service := NewLoanService(mockRepo)

	_, err := service.CalculateLoan(domain.CalculationInput{
		Amount:       decimal.NewFromInt(5000),
		InterestRate: decimal.NewFromInt(8),
		TermMonths:   10,
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCalculateLoan_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input domain.CalculationInput
	}{
		{"zero amount", domain.CalculationInput{Amount: decimal.Zero, InterestRate: decimal.NewFromInt(10), TermMonths: 12}},
		{"amount too large", domain.CalculationInput{Amount: decimal.NewFromInt(2_000_000_000), InterestRate: decimal.NewFromInt(10), TermMonths: 12}},
		{"negative rate", domain.CalculationInput{Amount: decimal.NewFromInt(1000), InterestRate: decimal.NewFromInt(-1), TermMonths: 12}},
		{"zero term", domain.CalculationInput{Amount: decimal.NewFromInt(1000), InterestRate: decimal.NewFromInt(10), TermMonths: 0}},
		{"term too long", domain.CalculationInput{Amount: decimal.NewFromInt(1000), InterestRate: decimal.NewFromInt(10), TermMonths: 601}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockLoanRepository)
			service := NewLoanService(mockRepo)

			_, err := service.CalculateLoan(tt.input)

			assert.ErrorIs(t, err, domain.ErrValidation)
			mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestLoanService_History(t *testing.T) {
	calcs := []repository.Calculation{{Input: domain.CalculationInput{TermMonths: 12}}}
	mockRepo := new(MockLoanRepository)
	mockRepo.On("Recent").Return(calcs)

	assert.Equal(t, calcs, NewLoanService(mockRepo).History())
	mockRepo.AssertExpectations(t)
}
