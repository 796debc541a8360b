package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected string
	}{
		{"Proposal value", decimal.NewFromInt(32500), "R$ 32.500,00"},
		{"Six digits", decimal.RequireFromString("240800"), "R$ 240.800,00"},
		{"Millions", decimal.RequireFromString("1234567.891"), "R$ 1.234.567,89"},
		{"Small", decimal.RequireFromString("0.5"), "R$ 0,50"},
		{"Zero", decimal.Zero, "R$ 0,00"},
		{"Negative", decimal.RequireFromString("-1234.56"), "-R$ 1.234,56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%s) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		input     string
		expected  string
		expectErr bool
	}{
		{input: "R$ 32.500,00", expected: "32500"},
		{input: "240.800,00", expected: "240800"},
		{input: "18200.50", expected: "18200.5"},
		{input: "-R$ 1.234,56", expected: "-1234.56"},
		{input: "R$", expectErr: true},
		{input: "abc", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCurrency(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("ParseCurrency(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCurrency(%q) error = %v", tt.input, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("ParseCurrency(%q) = %s, expected %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMeasurements(t *testing.T) {
	if got := Energy(15.7); got != "15.7 kWh/dia" {
		t.Errorf("Energy(15.7) = %q", got)
	}
	if got := Years(3.2); got != "3.2 anos" {
		t.Errorf("Years(3.2) = %q", got)
	}
	if got := Area(32); got != "32m²" {
		t.Errorf("Area(32) = %q", got)
	}
}
