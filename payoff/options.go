package payoff

import "github.com/shopspring/decimal"

const (
	MoneyPlaces     = 2
	MaxMonths       = 600 // 50 years
	MaxTenureMonths = 600
	MaxAnnualRate   = 30
)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)

	DefaultPaidOffEpsilon   = decimal.New(1, -2) // 0.01
	DefaultMaterialInterest = decimal.NewFromInt(1000)
)

const (
	DefaultMaterialMonths = 3
	DefaultCurrencySymbol = "₹"
)

// Options tunes the simulator and comparator. Zero fields fall back to the
// package defaults.
type Options struct {
	MaxMonths        int
	PaidOffEpsilon   decimal.Decimal
	MaterialInterest decimal.Decimal
	MaterialMonths   int
	CurrencySymbol   string
}

func DefaultOptions() Options {
	return Options{
		MaxMonths:        MaxMonths,
		PaidOffEpsilon:   DefaultPaidOffEpsilon,
		MaterialInterest: DefaultMaterialInterest,
		MaterialMonths:   DefaultMaterialMonths,
		CurrencySymbol:   DefaultCurrencySymbol,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxMonths <= 0 {
		o.MaxMonths = d.MaxMonths
	}
	if !o.PaidOffEpsilon.IsPositive() {
		o.PaidOffEpsilon = d.PaidOffEpsilon
	}
	if !o.MaterialInterest.IsPositive() {
		o.MaterialInterest = d.MaterialInterest
	}
	if o.MaterialMonths <= 0 {
		o.MaterialMonths = d.MaterialMonths
	}
	if o.CurrencySymbol == "" {
		o.CurrencySymbol = d.CurrencySymbol
	}
	return o
}

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}
