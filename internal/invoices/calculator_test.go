package invoices

import (
	"testing"
	"time"

	pkgerrors "github.com/shivamcrackers/posbill-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

var frozenNow = time.Date(2025, time.November, 2, 18, 30, 15, 0, time.UTC)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(value)
}

func TestComputeEndToEndScenario(t *testing.T) {
	t.Parallel()

	lines := []LineInput{
		{ProductName: "Kulhar", Quantity: 4, DiscountPercent: decimal.Zero, UnitPrice: dec(t, "1.75")},
		{ProductName: "Water Bottle", Quantity: 2, DiscountPercent: decimal.NewFromInt(50), UnitPrice: decimal.NewFromInt(10)},
	}

	invoice, err := Compute(lines, decimal.NewFromInt(2), "Ravi", frozenNow)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if got := invoice.Rows[0].Amount.StringFixed(2); got != "7.00" {
		t.Fatalf("expected first line amount 7.00, got %s", got)
	}
	if got := invoice.Rows[1].Amount.StringFixed(2); got != "10.00" {
		t.Fatalf("expected second line amount 10.00, got %s", got)
	}
	if got := invoice.Subtotal.StringFixed(2); got != "17.00" {
		t.Fatalf("expected subtotal 17.00, got %s", got)
	}
	if got := invoice.Total.StringFixed(2); got != "15.00" {
		t.Fatalf("expected total 15.00, got %s", got)
	}
	if invoice.CustomerName != "Ravi" {
		t.Fatalf("unexpected customer name %q", invoice.CustomerName)
	}
	if !invoice.GeneratedAt.Equal(frozenNow) {
		t.Fatalf("expected computation timestamp, got %v", invoice.GeneratedAt)
	}
}

func TestComputeEmptyCart(t *testing.T) {
	t.Parallel()

	_, err := Compute(nil, decimal.Zero, "", frozenNow)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeEmptyCart {
		t.Fatalf("expected EMPTY_CART, got %v", err)
	}
}

func TestComputeDiscountBounds(t *testing.T) {
	t.Parallel()

	lines := []LineInput{
		{ProductName: "Kulhar", Quantity: 4, DiscountPercent: decimal.Zero, UnitPrice: dec(t, "1.75")},
	}
	subtotal := dec(t, "7.00")

	for _, discount := range []decimal.Decimal{decimal.Zero, subtotal} {
		if _, err := Compute(lines, discount, "", frozenNow); err != nil {
			t.Fatalf("discount %s should succeed: %v", discount, err)
		}
	}

	for _, discount := range []decimal.Decimal{dec(t, "-0.01"), subtotal.Add(dec(t, "0.01"))} {
		_, err := Compute(lines, discount, "", frozenNow)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInvalidDiscount {
			t.Fatalf("discount %s: expected INVALID_DISCOUNT, got %v", discount, err)
		}
	}
}

func TestComputeDiscountEqualToSubtotalYieldsZeroTotal(t *testing.T) {
	t.Parallel()

	lines := []LineInput{
		{ProductName: "Kulhar", Quantity: 2, DiscountPercent: decimal.Zero, UnitPrice: dec(t, "1.75")},
	}

	invoice, err := Compute(lines, dec(t, "3.50"), "", frozenNow)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !invoice.Total.IsZero() {
		t.Fatalf("expected zero total, got %s", invoice.Total)
	}
}

func TestComputeAbortsOnAnyInvalidLine(t *testing.T) {
	t.Parallel()

	valid := LineInput{ProductName: "Kulhar", Quantity: 1, DiscountPercent: decimal.Zero, UnitPrice: dec(t, "1.75")}
	invalid := []LineInput{
		{ProductName: "", Quantity: 1, DiscountPercent: decimal.Zero, UnitPrice: decimal.NewFromInt(1)},
		{ProductName: "X", Quantity: 0, DiscountPercent: decimal.Zero, UnitPrice: decimal.NewFromInt(1)},
		{ProductName: "X", Quantity: 1, DiscountPercent: decimal.NewFromInt(101), UnitPrice: decimal.NewFromInt(1)},
		{ProductName: "X", Quantity: 1, DiscountPercent: decimal.Zero, UnitPrice: decimal.NewFromInt(-1)},
	}

	for i, line := range invalid {
		_, err := Compute([]LineInput{valid, line}, decimal.Zero, "", frozenNow)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("case %d: expected VALIDATION_ERROR, got %v", i, err)
		}
	}
}

func TestComputeDefaultsCustomerName(t *testing.T) {
	t.Parallel()

	lines := []LineInput{
		{ProductName: "Kulhar", Quantity: 1, DiscountPercent: decimal.Zero, UnitPrice: dec(t, "1.75")},
	}

	for _, name := range []string{"", "   "} {
		invoice, err := Compute(lines, decimal.Zero, name, frozenNow)
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		if invoice.CustomerName != "Customer" {
			t.Fatalf("expected default customer name, got %q", invoice.CustomerName)
		}
	}
}

func TestComputeAccumulatesAtFullPrecision(t *testing.T) {
	t.Parallel()

	// Three lines whose individually rounded amounts would drift from the
	// full-precision subtotal.
	lines := []LineInput{
		{ProductName: "A", Quantity: 1, DiscountPercent: dec(t, "33.33"), UnitPrice: dec(t, "0.10")},
		{ProductName: "B", Quantity: 1, DiscountPercent: dec(t, "33.33"), UnitPrice: dec(t, "0.10")},
		{ProductName: "C", Quantity: 1, DiscountPercent: dec(t, "33.33"), UnitPrice: dec(t, "0.10")},
	}

	invoice, err := Compute(lines, decimal.Zero, "", frozenNow)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	// 3 × 0.066670 = 0.200010, not 3 × 0.07.
	if got := invoice.Subtotal.String(); got != "0.20001" {
		t.Fatalf("expected full-precision subtotal 0.20001, got %s", got)
	}
}
