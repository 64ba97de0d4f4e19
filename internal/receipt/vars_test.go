package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSale() *Sale {
	return &Sale{
		ID:          "sale-1",
		Store:       "Do'kon 1",
		Address:     "Toshkent",
		Phone:       "+998 90 000 00 00",
		Number:      "000123",
		Date:        "2026-08-23 12:30:00",
		Cashier:     "Aziza",
		FooterText:  "Rahmat!",
		TotalAmount: 12000,
		Items: []SaleItem{
			{Name: "Non", Quantity: 2, Unit: "dona", Subtotal: 8000},
			{Name: "Suv", Quantity: 1, Subtotal: 4000},
		},
		Payments: []Payment{
			{Method: "Naqd", Amount: 15000},
		},
	}
}

func TestSubstitute(t *testing.T) {
	sale := testSale()

	tests := []struct {
		in   string
		want string
	}{
		{"{{store_name}}", "Do'kon 1"},
		{"Chek {{receipt_number}}", "Chek 000123"},
		{"{{date}} {{time}}", "23.08.2026 12:30:00"},
		{"Kassir: {{cashier}}", "Kassir: Aziza"},
		{"{{payment_method}}", "Naqd"},
		{"{{total}}", "12 000.00 UZS"},
		{"{{change}}", "3 000.00 UZS"},
		{"{{footer_text}}", "Rahmat!"},
		{"{{payments}}", "Naqd: 15 000.00 UZS"},
		{"no tokens here", "no tokens here"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Substitute(tt.in, sale), "template %q", tt.in)
	}
}

func TestSubstitute_UnknownTokenVerbatim(t *testing.T) {
	sale := testSale()
	assert.Equal(t, "{{mystery}} x", Substitute("{{mystery}} x", sale))
}

func TestSubstitute_MalformedDateRendersDash(t *testing.T) {
	sale := testSale()
	sale.Date = "not a date"
	assert.Equal(t, "- -", Substitute("{{date}} {{time}}", sale))

	sale.Date = nil
	assert.Equal(t, "Sana: -", Substitute("Sana: {{date}}", sale))
}

func TestChange_Clamped(t *testing.T) {
	sale := testSale()
	sale.Payments = []Payment{{Method: "Naqd", Amount: 15000}}
	assert.Equal(t, 3000.0, Change(sale))

	// Underpayment clamps to zero, never negative.
	sale.Payments = []Payment{{Method: "Naqd", Amount: 10000}}
	assert.Equal(t, 0.0, Change(sale))
}

func TestChange_NoPayments(t *testing.T) {
	sale := testSale()
	sale.Payments = nil
	assert.Equal(t, 0.0, Change(sale))
}

func TestChange_MalformedTotal(t *testing.T) {
	sale := testSale()
	sale.TotalAmount = "???"
	assert.Equal(t, 0.0, Change(sale))
}
