package payoff

import (
	"debt-planner/domain"

	"github.com/shopspring/decimal"
)

// MonthlyRate converts an annual percentage rate into a monthly fraction.
func MonthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.Div(monthsPerYear).Div(hundred)
}

// CalculateEMI returns the equated monthly installment that amortizes
// principal over months at annualRate percent, rounded to cents.
//
//	EMI = P·r·(1+r)^n / ((1+r)^n − 1)
//
// A zero rate degrades to P/n.
func CalculateEMI(principal, annualRate decimal.Decimal, months int) (decimal.Decimal, error) {
	if !principal.IsPositive() {
		return decimal.Zero, domain.NewValidationError("principal", "must be greater than zero")
	}
	if months <= 0 {
		return decimal.Zero, domain.NewValidationError("tenure_months", "must be greater than zero")
	}
	if annualRate.IsNegative() {
		return decimal.Zero, domain.NewValidationError("interest_rate", "must not be negative")
	}

	n := decimal.NewFromInt(int64(months))
	if annualRate.IsZero() {
		return roundMoney(principal.Div(n)), nil
	}

	r := MonthlyRate(annualRate)
	growth := decimal.NewFromInt(1).Add(r).Pow(n)
	emi := principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
	return roundMoney(emi), nil
}
