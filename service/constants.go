package service

import "github.com/shopspring/decimal"

const (
	MaxTermMonths      = 600 // 50 years
	MinTermMonths      = 1
	MaxDebtsPerRequest = 50 // max loans per request
)

var (
	MaxLoanAmount   = decimal.NewFromInt(1_000_000_000)
	MaxInterestRate = decimal.NewFromInt(1000) // single-loan calculator only
	MaxDebtAmount   = decimal.NewFromInt(100_000_000)
	MaxExtraPayment = decimal.NewFromInt(100_000_000)
)
