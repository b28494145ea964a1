package service

import (
	"debt-planner/domain"
	"debt-planner/payoff"
	"debt-planner/repository"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type LoanService struct {
	repo repository.LoanRepository
}

// NewLoanService creates a new LoanService with the given repository.
func NewLoanService(repo repository.LoanRepository) *LoanService {
	return &LoanService{repo: repo}
}

// CalculateLoan calculates the installment, total payment and total interest
// of a single amortized loan.
func (s *LoanService) CalculateLoan(
	input domain.CalculationInput,
) (domain.CalculationResult, error) {

	if !input.Amount.IsPositive() {
		return domain.CalculationResult{}, domain.NewValidationError("amount", "must be greater than zero")
	}
	if input.Amount.GreaterThan(MaxLoanAmount) {
		return domain.CalculationResult{}, domain.NewValidationError("amount", "exceeds the maximum of %s", MaxLoanAmount)
	}
	if input.InterestRate.IsNegative() {
		return domain.CalculationResult{}, domain.NewValidationError("interest_rate", "must not be negative")
	}
	if input.InterestRate.GreaterThan(MaxInterestRate) {
		return domain.CalculationResult{}, domain.NewValidationError("interest_rate", "exceeds the maximum of %s%%", MaxInterestRate)
	}
	if input.TermMonths < MinTermMonths || input.TermMonths > MaxTermMonths {
		return domain.CalculationResult{}, domain.NewValidationError("term_months", "must be between %d and %d", MinTermMonths, MaxTermMonths)
	}

	installment, err := payoff.CalculateEMI(input.Amount, input.InterestRate, input.TermMonths)
	if err != nil {
		return domain.CalculationResult{}, err
	}

	total := installment.Mul(decimal.NewFromInt(int64(input.TermMonths)))
	result := domain.CalculationResult{
		MonthlyPayment: installment,
		TotalPayment:   total,
		TotalInterest:  total.Sub(input.Amount),
	}

	// not critical if it fails
	if err := s.repo.Save(input, result); err != nil {
		log.WithError(err).Warn("failed to save loan calculation")
	}

	return result, nil
}

// History returns the most recent calculations, oldest first.
func (s *LoanService) History() []repository.Calculation {
	return s.repo.Recent()
}
