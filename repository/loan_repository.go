package repository

import "debt-planner/domain"

type LoanRepository interface {
	Save(input domain.CalculationInput, result domain.CalculationResult) error
	Recent() []Calculation
}
