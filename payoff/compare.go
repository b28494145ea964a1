package payoff

import (
	"fmt"

	"debt-planner/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Run orders loans for strategy and simulates the payoff.
func Run(loans []domain.LoanRecord, extraPayment decimal.Decimal, strategy domain.Strategy, opts Options) (domain.StrategyResult, error) {
	ordered, err := OrderLoans(loans, strategy)
	if err != nil {
		return domain.StrategyResult{}, err
	}
	return Simulate(ordered, extraPayment, strategy, opts)
}

// Compare simulates the snowball and avalanche strategies against
// independent copies of loans and diffs the outcomes.
//
// A positive InterestSaved or TimeSavedMonths means avalanche is cheaper or
// faster. If either run is degenerate its error is returned, snowball first.
func Compare(loans []domain.LoanRecord, extraPayment decimal.Decimal, opts Options) (domain.ComparisonResult, error) {
	opts = opts.withDefaults()

	var (
		g                         errgroup.Group
		snowball, avalanche       domain.StrategyResult
		snowballErr, avalancheErr error
	)
	snowballLoans, avalancheLoans := cloneRecords(loans), cloneRecords(loans)

	g.Go(func() error {
		snowball, snowballErr = Run(snowballLoans, extraPayment, domain.Snowball, opts)
		return snowballErr
	})
	g.Go(func() error {
		avalanche, avalancheErr = Run(avalancheLoans, extraPayment, domain.Avalanche, opts)
		return avalancheErr
	})
	if err := g.Wait(); err != nil {
		// Report in a fixed order so identical inputs fail identically.
		if snowballErr != nil {
			return domain.ComparisonResult{}, snowballErr
		}
		return domain.ComparisonResult{}, avalancheErr
	}

	interestSaved := snowball.TotalInterest.Sub(avalanche.TotalInterest)
	timeSaved := snowball.TotalMonths - avalanche.TotalMonths

	return domain.ComparisonResult{
		Snowball:        snowball,
		Avalanche:       avalanche,
		InterestSaved:   interestSaved,
		TimeSavedMonths: timeSaved,
		Recommendation:  recommend(interestSaved, timeSaved, opts),
	}, nil
}

func recommend(interestSaved decimal.Decimal, timeSaved int, opts Options) string {
	saved := FormatMoney(opts.CurrencySymbol, interestSaved)

	switch {
	case interestSaved.GreaterThan(opts.MaterialInterest) || timeSaved > opts.MaterialMonths:
		return fmt.Sprintf("Avalanche method recommended: Saves %s in interest and %d months compared to snowball method. "+
			"Focus on highest interest rate debts first.", saved, timeSaved)
	case timeSaved < 0:
		return fmt.Sprintf("Snowball method recommended: While avalanche saves %s in interest, snowball clears your debts %d months sooner "+
			"and its quick wins make it easier to stay motivated.", saved, -timeSaved)
	default:
		return fmt.Sprintf("Both methods are materially equivalent: Interest difference is only %s. "+
			"Choose snowball for motivation or avalanche for maximum savings.", saved)
	}
}
