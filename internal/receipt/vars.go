package receipt

import (
	"math"
	"strings"

	"github.com/jamshidbazarbaev5/thermal-printer/internal/format"
)

// Substitute resolves the closed placeholder vocabulary against a sale.
// Recognized tokens are replaced with pre-formatted strings; anything
// else ({{unknown}}, stray braces) passes through verbatim. No token
// depends on another, so a single replacer pass is enough.
func Substitute(text string, sale *Sale) string {
	if !strings.Contains(text, "{{") {
		return text
	}

	// Same fallback as the shift document: a date that does not parse
	// leaves a visible dash on the paper, not a blank.
	dateStr, timeStr := "-", "-"
	if t, err := format.ParseTime(sale.Date); err == nil {
		dateStr = t.Format("02.01.2006")
		timeStr = t.Format("15:04:05")
	}

	return strings.NewReplacer(
		"{{store_name}}", sale.Store,
		"{{store_address}}", sale.Address,
		"{{store_phone}}", sale.Phone,
		"{{receipt_number}}", sale.Number,
		"{{date}}", dateStr,
		"{{time}}", timeStr,
		"{{cashier}}", sale.Cashier,
		"{{payment_method}}", paymentMethods(sale.Payments),
		"{{payments}}", paymentsBlock(sale.Payments),
		"{{change}}", money(Change(sale)),
		"{{total}}", money(sale.TotalAmount),
		"{{footer_text}}", sale.FooterText,
	).Replace(text)
}

// Change is the clamped overpayment: max(0, sum(payments) - total).
// An underpaid or unpayable record yields zero, never a negative value.
func Change(sale *Sale) float64 {
	total, ok := format.Float(sale.TotalAmount)
	if !ok {
		return 0
	}
	paid := 0.0
	for _, p := range sale.Payments {
		if amount, ok := format.Float(p.Amount); ok {
			paid += amount
		}
	}
	return math.Max(0, paid-total)
}

func paymentMethods(payments []Payment) string {
	methods := make([]string, 0, len(payments))
	for _, p := range payments {
		if p.Method != "" {
			methods = append(methods, p.Method)
		}
	}
	return strings.Join(methods, ", ")
}

func paymentsBlock(payments []Payment) string {
	lines := make([]string, 0, len(payments))
	for _, p := range payments {
		lines = append(lines, p.Method+": "+money(p.Amount))
	}
	return strings.Join(lines, "\n")
}

// money is the substitution-level currency formatter: a field that does
// not parse renders as a zero amount instead of aborting the print.
func money(v interface{}) string {
	s, err := format.Currency(v)
	if err != nil {
		s, _ = format.Currency(0)
	}
	return s
}
