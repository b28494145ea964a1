package domain

import "github.com/shopspring/decimal"

// LoanInput is the terse form of a loan: what a borrower usually knows.
type LoanInput struct {
	Name                 string          `json:"name" yaml:"name"`
	OutstandingPrincipal decimal.Decimal `json:"outstanding_principal" yaml:"outstanding_principal"`
	InterestRateAnnual   decimal.Decimal `json:"interest_rate_annual" yaml:"interest_rate_annual"`
	RemainingMonths      int             `json:"remaining_months" yaml:"remaining_months"`
}

// CalculationInput is the single-loan calculator request.
type CalculationInput struct {
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TermMonths   int             `json:"term_months"`
}

type CalculationResult struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}
