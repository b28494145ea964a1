package payoff

import (
	"errors"
	"fmt"
	"strings"

	"debt-planner/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IDGenerator produces synthetic loan ids for loans submitted without one.
type IDGenerator func() string

// ShortID is the default IDGenerator: the first 8 characters of a random UUID.
func ShortID() string {
	return uuid.NewString()[:8]
}

// Normalizer turns caller-supplied loans into simulation-ready records.
type Normalizer struct {
	newID IDGenerator
}

func NewNormalizer(newID IDGenerator) *Normalizer {
	if newID == nil {
		newID = ShortID
	}
	return &Normalizer{newID: newID}
}

// Synthesize expands terse loans into fully specified ones, computing the
// monthly installment from principal, rate and remaining tenure.
func (n *Normalizer) Synthesize(loans []domain.LoanInput) ([]domain.LoanDetail, error) {
	if len(loans) == 0 {
		return nil, domain.NewValidationError("loans", "at least one loan is required")
	}

	details := make([]domain.LoanDetail, 0, len(loans))
	for i, loan := range loans {
		field := fmt.Sprintf("loans[%d]", i)
		if err := validateTerms(field, loan.OutstandingPrincipal, loan.InterestRateAnnual, loan.RemainingMonths); err != nil {
			return nil, err
		}

		emi, err := CalculateEMI(loan.OutstandingPrincipal, loan.InterestRateAnnual, loan.RemainingMonths)
		if err != nil {
			return nil, prefixField(field, err)
		}

		name := strings.TrimSpace(loan.Name)
		if name == "" {
			name = fmt.Sprintf("Loan %d", i+1)
		}

		details = append(details, domain.LoanDetail{
			LoanID:         n.newID(),
			LoanType:       loanTypeSlug(name),
			LoanName:       name,
			Principal:      loan.OutstandingPrincipal,
			InterestRate:   loan.InterestRateAnnual,
			TenureMonths:   loan.RemainingMonths,
			CurrentBalance: loan.OutstandingPrincipal,
			MonthlyEMI:     emi,
		})
	}
	return details, nil
}

// Normalize validates fully specified loans and converts them into
// LoanRecords. Money is rounded to cents; a missing EMI is synthesized and a
// missing id becomes "loan-N" from the loan's position, so equal input
// always yields equal records.
func (n *Normalizer) Normalize(loans []domain.LoanDetail) ([]domain.LoanRecord, error) {
	if len(loans) == 0 {
		return nil, domain.NewValidationError("loans", "at least one loan is required")
	}

	seen := make(map[string]bool, len(loans))
	records := make([]domain.LoanRecord, 0, len(loans))
	for i, loan := range loans {
		field := fmt.Sprintf("loans[%d]", i)
		if err := validateTerms(field, loan.Principal, loan.InterestRate, loan.TenureMonths); err != nil {
			return nil, err
		}
		if !loan.CurrentBalance.IsPositive() {
			return nil, domain.NewValidationError(field+".current_balance", "must be greater than zero")
		}

		minimum := loan.MonthlyEMI
		switch {
		case minimum.IsNegative():
			return nil, domain.NewValidationError(field+".monthly_emi", "must be greater than zero")
		case minimum.IsZero():
			emi, err := CalculateEMI(loan.Principal, loan.InterestRate, loan.TenureMonths)
			if err != nil {
				return nil, prefixField(field, err)
			}
			minimum = emi
		}
		minimum = roundMoney(minimum)
		if !minimum.IsPositive() {
			return nil, domain.NewValidationError(field+".monthly_emi", "rounds to zero")
		}

		id := strings.TrimSpace(loan.LoanID)
		if id == "" {
			id = fmt.Sprintf("loan-%d", i+1)
		}
		if seen[id] {
			return nil, domain.NewValidationError(field+".loan_id", "duplicate loan id %q", id)
		}
		seen[id] = true

		name := strings.TrimSpace(loan.LoanName)
		if name == "" {
			name = fmt.Sprintf("Loan %d", i+1)
		}

		records = append(records, domain.LoanRecord{
			ID:             id,
			Name:           name,
			AnnualRate:     loan.InterestRate,
			Balance:        roundMoney(loan.CurrentBalance),
			MonthlyRate:    MonthlyRate(loan.InterestRate),
			MinimumPayment: minimum,
		})
	}
	return records, nil
}

func validateTerms(field string, principal, rate decimal.Decimal, months int) error {
	if !principal.IsPositive() {
		return domain.NewValidationError(field+".principal", "must be greater than zero")
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(MaxAnnualRate)) {
		return domain.NewValidationError(field+".interest_rate", "must be between 0 and %d percent", MaxAnnualRate)
	}
	if months <= 0 || months > MaxTenureMonths {
		return domain.NewValidationError(field+".tenure_months", "must be between 1 and %d", MaxTenureMonths)
	}
	return nil
}

func prefixField(prefix string, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return &domain.ValidationError{Field: prefix + "." + ve.Field, Reason: ve.Reason}
	}
	return err
}

func loanTypeSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
