package payoff

import (
	"debt-planner/domain"

	"github.com/shopspring/decimal"
)

type runState int

const (
	stateInit runState = iota
	stateRunning
	statePaidOff
	stateCapped
)

// simulation holds the mutable state of a single payoff run.
type simulation struct {
	strategy domain.Strategy
	opts     Options
	loans    []domain.LoanRecord
	state    runState

	// pool is the extra payment available to the focus loan this month.
	// Freed minimums are added only after a month completes.
	pool   decimal.Decimal
	focus  int
	unpaid int
	month  int

	totalInterest decimal.Decimal
	steps         []domain.PayoffStep
}

// Simulate runs the month-by-month payoff of ordered loans under one fixed
// priority order. The order is frozen for the entire run. The records are
// copied, so the caller's slice is never mutated.
//
// If loans are still outstanding after opts.MaxMonths months, Simulate
// returns a *domain.DegenerateSimulationError instead of a truncated plan.
func Simulate(ordered []domain.LoanRecord, extraPayment decimal.Decimal, strategy domain.Strategy, opts Options) (domain.StrategyResult, error) {
	sim := newSimulation(ordered, extraPayment, strategy, opts.withDefaults())
	sim.run()

	if sim.state == stateCapped {
		return domain.StrategyResult{}, sim.degenerateError()
	}
	return sim.result(), nil
}

func newSimulation(ordered []domain.LoanRecord, extraPayment decimal.Decimal, strategy domain.Strategy, opts Options) *simulation {
	loans := cloneRecords(ordered)
	unpaid := 0
	for i := range loans {
		loans[i].Balance = roundMoney(loans[i].Balance)
		loans[i].MinimumPayment = roundMoney(loans[i].MinimumPayment)
		if !loans[i].PaidOff {
			unpaid++
		}
	}

	return &simulation{
		strategy:      strategy,
		opts:          opts,
		loans:         loans,
		state:         stateInit,
		pool:          roundMoney(decimal.Max(extraPayment, decimal.Zero)),
		unpaid:        unpaid,
		totalInterest: decimal.Zero,
		steps:         make([]domain.PayoffStep, 0, len(loans)*12),
	}
}

func (s *simulation) run() {
	s.state = stateRunning
	for s.unpaid > 0 && s.month < s.opts.MaxMonths {
		s.runMonth()
	}

	if s.unpaid > 0 {
		s.state = stateCapped
		return
	}
	s.state = statePaidOff
}

func (s *simulation) runMonth() {
	s.month++
	s.advanceFocus()

	extra := s.pool
	freed := decimal.Zero

	for i := range s.loans {
		loan := &s.loans[i]
		if loan.PaidOff {
			continue
		}

		interest := roundMoney(loan.Balance.Mul(loan.MonthlyRate))
		owed := loan.Balance.Add(interest)

		due := loan.MinimumPayment
		if i == s.focus {
			due = due.Add(extra)
		}
		payment := roundMoney(decimal.Min(due, owed))
		balance := owed.Sub(payment)

		// A residual within epsilon is swept into this payment so the loan
		// closes at exactly zero and payments still reconcile.
		if balance.LessThanOrEqual(s.opts.PaidOffEpsilon) {
			payment = payment.Add(balance)
			balance = decimal.Zero
			loan.PaidOff = true
			freed = freed.Add(loan.MinimumPayment)
			s.unpaid--
		}
		loan.Balance = balance
		s.totalInterest = s.totalInterest.Add(interest)

		s.steps = append(s.steps, domain.PayoffStep{
			Month:            s.month,
			LoanID:           loan.ID,
			LoanName:         loan.Name,
			Payment:          payment,
			Interest:         interest,
			RemainingBalance: balance,
			IsPaidOff:        loan.PaidOff,
		})
	}

	s.pool = s.pool.Add(freed)
}

// advanceFocus moves the cursor forward past paid-off loans. It never
// moves backwards.
func (s *simulation) advanceFocus() {
	for s.focus < len(s.loans) && s.loans[s.focus].PaidOff {
		s.focus++
	}
}

func (s *simulation) payoffOrder() []string {
	ids := make([]string, len(s.loans))
	for i, loan := range s.loans {
		ids[i] = loan.ID
	}
	return ids
}

func (s *simulation) result() domain.StrategyResult {
	return domain.StrategyResult{
		StrategyType:     s.strategy,
		PayoffOrder:      s.payoffOrder(),
		TotalMonths:      s.month,
		TotalInterest:    s.totalInterest,
		MonthlyBreakdown: s.steps,
		Summary:          strategySummary(s.strategy, s.month, s.totalInterest, s.loans, s.opts.CurrencySymbol),
	}
}

func (s *simulation) degenerateError() *domain.DegenerateSimulationError {
	err := &domain.DegenerateSimulationError{
		Strategy:         s.strategy,
		Months:           s.month,
		RemainingBalance: decimal.Zero,
	}
	for _, loan := range s.loans {
		if loan.PaidOff {
			continue
		}
		err.UnpaidLoans = append(err.UnpaidLoans, loan.ID)
		err.RemainingBalance = err.RemainingBalance.Add(loan.Balance)
	}
	return err
}
