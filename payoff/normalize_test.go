package payoff

import (
	"errors"
	"fmt"
	"testing"

	"debt-planner/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNormalizer_Synthesize(t *testing.T) {
	n := NewNormalizer(sequentialIDs())

	details, err := n.Synthesize([]domain.LoanInput{
		{Name: "Car Loan", OutstandingPrincipal: dec("10000"), InterestRateAnnual: dec("12"), RemainingMonths: 24},
		{Name: "", OutstandingPrincipal: dec("1200"), InterestRateAnnual: dec("0"), RemainingMonths: 12},
	})
	require.NoError(t, err)
	require.Len(t, details, 2)

	car := details[0]
	assert.Equal(t, "gen-1", car.LoanID)
	assert.Equal(t, "car_loan", car.LoanType)
	assert.Equal(t, "470.73", car.MonthlyEMI.StringFixed(2))
	assert.True(t, car.CurrentBalance.Equal(car.Principal))

	assert.Equal(t, "Loan 2", details[1].LoanName)
	assert.Equal(t, "100.00", details[1].MonthlyEMI.StringFixed(2))
}

func TestNormalizer_SynthesizeRejectsBadTerms(t *testing.T) {
	n := NewNormalizer(sequentialIDs())

	_, err := n.Synthesize([]domain.LoanInput{
		{Name: "Bad", OutstandingPrincipal: dec("1000"), InterestRateAnnual: dec("10"), RemainingMonths: 0},
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "loans[0].tenure_months", ve.Field)

	_, err = n.Synthesize(nil)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer(sequentialIDs())

	records, err := n.Normalize([]domain.LoanDetail{
		{
			LoanID: "home", LoanName: "Home", Principal: dec("500000"), InterestRate: dec("9"),
			TenureMonths: 240, CurrentBalance: dec("420000.456"), MonthlyEMI: dec("4498.63"),
		},
		{
			LoanName: "Personal", Principal: dec("10000"), InterestRate: dec("12"),
			TenureMonths: 24, CurrentBalance: dec("10000"),
		},
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	home := records[0]
	assert.Equal(t, "home", home.ID)
	assert.Equal(t, "420000.46", home.Balance.StringFixed(2))
	assert.Equal(t, "4498.63", home.MinimumPayment.StringFixed(2))
	assert.True(t, home.MonthlyRate.Equal(MonthlyRate(dec("9"))))
	assert.False(t, home.PaidOff)

	personal := records[1]
	assert.Equal(t, "loan-2", personal.ID)
	assert.Equal(t, "470.73", personal.MinimumPayment.StringFixed(2), "missing EMI is synthesized")
}

func TestNormalizer_NormalizeValidation(t *testing.T) {
	valid := domain.LoanDetail{
		LoanID: "a", LoanName: "A", Principal: dec("1000"), InterestRate: dec("10"),
		TenureMonths: 12, CurrentBalance: dec("800"), MonthlyEMI: dec("90"),
	}

	tests := []struct {
		name   string
		mutate func(*domain.LoanDetail)
		field  string
	}{
		{"zero principal", func(l *domain.LoanDetail) { l.Principal = decimal.Zero }, "loans[0].principal"},
		{"rate above bound", func(l *domain.LoanDetail) { l.InterestRate = dec("30.5") }, "loans[0].interest_rate"},
		{"negative rate", func(l *domain.LoanDetail) { l.InterestRate = dec("-1") }, "loans[0].interest_rate"},
		{"zero tenure", func(l *domain.LoanDetail) { l.TenureMonths = 0 }, "loans[0].tenure_months"},
		{"tenure above bound", func(l *domain.LoanDetail) { l.TenureMonths = 601 }, "loans[0].tenure_months"},
		{"zero balance", func(l *domain.LoanDetail) { l.CurrentBalance = decimal.Zero }, "loans[0].current_balance"},
		{"negative emi", func(l *domain.LoanDetail) { l.MonthlyEMI = dec("-10") }, "loans[0].monthly_emi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := valid
			tt.mutate(&loan)

			_, err := NewNormalizer(nil).Normalize([]domain.LoanDetail{loan})
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestNormalizer_NormalizeRejectsDuplicateIDs(t *testing.T) {
	loan := domain.LoanDetail{
		LoanID: "dup", LoanName: "A", Principal: dec("1000"), InterestRate: dec("10"),
		TenureMonths: 12, CurrentBalance: dec("800"), MonthlyEMI: dec("90"),
	}

	_, err := NewNormalizer(nil).Normalize([]domain.LoanDetail{loan, loan})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "loans[1].loan_id", ve.Field)
}

func TestNormalizer_NormalizeRejectsEmptyList(t *testing.T) {
	_, err := NewNormalizer(nil).Normalize(nil)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestShortID(t *testing.T) {
	a, b := ShortID(), ShortID()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}

func TestNormalizer_NormalizeAssignsPositionalIDs(t *testing.T) {
	loans := []domain.LoanDetail{
		{LoanName: "A", Principal: dec("1000"), InterestRate: dec("10"), TenureMonths: 12, CurrentBalance: dec("800")},
		{LoanID: "b", LoanName: "B", Principal: dec("2000"), InterestRate: dec("12"), TenureMonths: 12, CurrentBalance: dec("2000")},
	}

	first, err := NewNormalizer(nil).Normalize(loans)
	require.NoError(t, err)
	second, err := NewNormalizer(nil).Normalize(loans)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "loan-1", first[0].ID)
	assert.Equal(t, "b", first[1].ID)
}
