package payoff

import (
	"fmt"
	"strings"

	"debt-planner/domain"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with thousands separators and two decimals.
func FormatMoney(symbol string, amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	amount = amount.Round(MoneyPlaces)
	whole := amount.Truncate(0)
	cents := amount.Sub(whole).Shift(MoneyPlaces).IntPart()
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, humanize.Comma(whole.IntPart()), cents)
}

func strategyDescription(strategy domain.Strategy) string {
	if strategy == domain.Snowball {
		return "Snowball Strategy: Pay off smallest balance first for psychological wins"
	}
	return "Avalanche Strategy: Pay off highest interest first to minimize total interest"
}

func strategySummary(strategy domain.Strategy, months int, totalInterest decimal.Decimal, loans []domain.LoanRecord, symbol string) string {
	names := make([]string, len(loans))
	for i, loan := range loans {
		names[i] = loan.Name
	}

	return fmt.Sprintf("%s\nTotal months to debt-free: %d\nTotal interest paid: %s\nPayoff order: %s",
		strategyDescription(strategy), months, FormatMoney(symbol, totalInterest), strings.Join(names, ", "))
}
