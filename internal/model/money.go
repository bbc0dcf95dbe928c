package model

import "github.com/shopspring/decimal"

func init() {
	// Upstream sends and expects money as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Money is an exact decimal amount in the resort currency.
type Money = decimal.Decimal

// Zero is the zero amount.
var Zero = decimal.Zero

// NewMoney builds an amount from a float literal. Use it for fixtures and tests only.
func NewMoney(v float64) Money { return decimal.NewFromFloat(v) }
