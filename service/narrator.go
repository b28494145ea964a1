package service

import (
	"context"
	"fmt"

	"debt-planner/domain"
	"debt-planner/payoff"
)

// Narrator turns a comparison into a short plain-language explanation.
type Narrator interface {
	NarrateComparison(ctx context.Context, comparison domain.ComparisonResult) (string, error)
}

// FallbackNarrator builds a deterministic explanation without any remote
// call. It is used when no LLM is configured or the LLM call fails.
type FallbackNarrator struct {
	CurrencySymbol string
}

func (n FallbackNarrator) NarrateComparison(_ context.Context, c domain.ComparisonResult) (string, error) {
	symbol := n.CurrencySymbol
	if symbol == "" {
		symbol = payoff.DefaultCurrencySymbol
	}

	return fmt.Sprintf(
		"With the snowball method you pay %s in interest and are debt-free in %d months (%.1f years). "+
			"With the avalanche method you pay %s in interest over %d months. %s",
		payoff.FormatMoney(symbol, c.Snowball.TotalInterest), c.Snowball.TotalMonths, float64(c.Snowball.TotalMonths)/12.0,
		payoff.FormatMoney(symbol, c.Avalanche.TotalInterest), c.Avalanche.TotalMonths,
		c.Recommendation,
	), nil
}
