package domain

import "github.com/shopspring/decimal"

type Strategy string

const (
	Snowball  Strategy = "snowball"  // smallest balance first
	Avalanche Strategy = "avalanche" // highest rate first
)

// LoanDetail is a fully specified loan as received from the caller.
// A zero MonthlyEMI is synthesized from principal, rate and tenure.
type LoanDetail struct {
	LoanID         string          `json:"loan_id" yaml:"loan_id"`
	LoanType       string          `json:"loan_type,omitempty" yaml:"loan_type"`
	LoanName       string          `json:"loan_name" yaml:"loan_name"`
	Principal      decimal.Decimal `json:"principal" yaml:"principal"`
	InterestRate   decimal.Decimal `json:"interest_rate" yaml:"interest_rate"`
	TenureMonths   int             `json:"tenure_months" yaml:"tenure_months"`
	CurrentBalance decimal.Decimal `json:"current_balance" yaml:"current_balance"`
	MonthlyEMI     decimal.Decimal `json:"monthly_emi" yaml:"monthly_emi"`
}

type MultiLoanInput struct {
	Loans        []LoanDetail    `json:"loans" yaml:"loans"`
	ExtraPayment decimal.Decimal `json:"extra_payment" yaml:"extra_payment"`
}

// LoanRecord is the simulation-ready form of a loan. Records are owned by
// exactly one simulation run.
type LoanRecord struct {
	ID             string
	Name           string
	AnnualRate     decimal.Decimal
	Balance        decimal.Decimal
	MonthlyRate    decimal.Decimal
	MinimumPayment decimal.Decimal
	PaidOff        bool
}

type PayoffStep struct {
	Month            int             `json:"month"`
	LoanID           string          `json:"loan_id"`
	LoanName         string          `json:"loan_name"`
	Payment          decimal.Decimal `json:"payment"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	IsPaidOff        bool            `json:"is_paid_off"`
}

type StrategyResult struct {
	StrategyType     Strategy        `json:"strategy_type"`
	PayoffOrder      []string        `json:"payoff_order"`
	TotalMonths      int             `json:"total_months"`
	TotalInterest    decimal.Decimal `json:"total_interest"`
	MonthlyBreakdown []PayoffStep    `json:"monthly_breakdown"`
	Summary          string          `json:"summary"`
}

type ComparisonResult struct {
	Snowball        StrategyResult  `json:"snowball"`
	Avalanche       StrategyResult  `json:"avalanche"`
	InterestSaved   decimal.Decimal `json:"interest_saved"`
	TimeSavedMonths int             `json:"time_saved_months"`
	Recommendation  string          `json:"recommendation"`
}

// DebtPlanResult is what the API returns for a comparison request.
type DebtPlanResult struct {
	Comparison  ComparisonResult `json:"comparison"`
	Explanation string           `json:"explanation,omitempty"`
}
