package payoff

import (
	"sort"
	"strings"

	"debt-planner/domain"
)

// ParseStrategy maps a strategy tag onto a domain.Strategy.
func ParseStrategy(tag string) (domain.Strategy, error) {
	switch s := domain.Strategy(strings.ToLower(strings.TrimSpace(tag))); s {
	case domain.Snowball, domain.Avalanche:
		return s, nil
	default:
		return "", domain.NewValidationError("strategy", "unknown strategy %q", tag)
	}
}

// OrderLoans returns a new slice ordered by the strategy's priority.
// Snowball sorts by ascending balance, avalanche by descending rate; ties
// keep their input order. The input slice is not modified.
func OrderLoans(loans []domain.LoanRecord, strategy domain.Strategy) ([]domain.LoanRecord, error) {
	ordered := cloneRecords(loans)

	switch strategy {
	case domain.Snowball:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Balance.LessThan(ordered[j].Balance)
		})
	case domain.Avalanche:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].AnnualRate.GreaterThan(ordered[j].AnnualRate)
		})
	default:
		return nil, domain.NewValidationError("strategy", "unknown strategy %q", strategy)
	}
	return ordered, nil
}

// cloneRecords copies records so that a run never aliases the caller's
// slice. decimal.Decimal values are immutable, so a struct copy is deep.
func cloneRecords(loans []domain.LoanRecord) []domain.LoanRecord {
	out := make([]domain.LoanRecord, len(loans))
	copy(out, loans)
	return out
}
