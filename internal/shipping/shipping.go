// Package shipping estimates delivery options from a postal code prefix.
// It is a pure function of its input and never fails.
package shipping

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Option is one named shipping choice with its price.
type Option struct {
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// Estimate returns the ordered shipping menu for a postal code. Only the
// first two digits matter, after stripping non-digit characters. Every menu
// carries exactly one free-shipping option.
func Estimate(postalCode string) []Option {
	prefix := digitsOnly(postalCode)
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}

	switch prefix {
	case "01": // São Paulo
		return []Option{
			{Label: "Entrega Normal (5 dias)", Price: decimal.NewFromFloat(15.90)},
			{Label: "Entrega Rápida (2 dias)", Price: decimal.NewFromFloat(29.90)},
			{Label: "Frete Grátis", Price: decimal.Zero},
		}
	case "20": // Rio de Janeiro
		return []Option{
			{Label: "Entrega Normal (7 dias)", Price: decimal.NewFromFloat(19.90)},
			{Label: "Entrega Expressa (3 dias)", Price: decimal.NewFromFloat(34.90)},
			{Label: "Frete Grátis", Price: decimal.Zero},
		}
	default:
		return []Option{
			{Label: "Entrega Normal (10 dias)", Price: decimal.NewFromFloat(24.90)},
			{Label: "Entrega Expressa (4 dias)", Price: decimal.NewFromFloat(39.90)},
			{Label: "Frete Grátis", Price: decimal.Zero},
		}
	}
}

// DefaultPrice picks the single price proposed when the caller does not
// choose an option: zero if any option is free, otherwise the minimum
// strictly-positive price. An empty menu yields zero.
func DefaultPrice(options []Option) decimal.Decimal {
	var minPositive *decimal.Decimal
	for _, opt := range options {
		if opt.Price.IsZero() {
			return decimal.Zero
		}
		if opt.Price.IsPositive() && (minPositive == nil || opt.Price.LessThan(*minPositive)) {
			p := opt.Price
			minPositive = &p
		}
	}
	if minPositive == nil {
		return decimal.Zero
	}
	return *minPositive
}

// Normalize strips everything but digits from a postal code.
func Normalize(postalCode string) string {
	return digitsOnly(postalCode)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
